// Package parse reads textual IR programs. The format is line
// oriented: one statement per line, # comments, procedures wrapped in
// proc name(param type, ...) { ... } with labels on their own lines.
//
//	proc max(a int, b int) {
//	    var r int
//	    r = a
//	    if a > b goto done
//	    r = b
//	done:
//	    return r
//	}
package parse

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cs-au-dk/kildall/ir"
)

// ParseFile reads a program from path.
func ParseFile(path string) (*ir.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	prog, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prog, nil
}

// ParseString reads a program from src.
func ParseString(src string) (*ir.Program, error) {
	return Parse(strings.NewReader(src))
}

// Parse reads a program from r.
func Parse(r io.Reader) (*ir.Program, error) {
	p := &parser{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.lineNo++
		if err := p.line(scanner.Text()); err != nil {
			return nil, fmt.Errorf("line %d: %w", p.lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if p.builder != nil {
		return nil, fmt.Errorf("unterminated proc %s", p.procName)
	}
	return ir.NewProgram(p.procs...), nil
}

type parser struct {
	lineNo   int
	procs    []*ir.Proc
	procName string
	builder  *ir.ProcBuilder

	// Pending multi-line switch, nil when not inside one.
	sw *switchClauses
}

type switchClauses struct {
	selector     *ir.Var
	caseValues   []int
	caseLabels   []string
	defaultLabel string
}

func (p *parser) line(text string) error {
	toks, err := lexLine(text)
	if err != nil {
		return err
	}
	if len(toks) == 0 {
		return nil
	}
	if p.sw != nil {
		return p.switchClause(toks)
	}
	if p.builder == nil {
		return p.procHeader(toks)
	}
	return p.stmt(toks)
}

func (p *parser) procHeader(toks []token) error {
	if !(len(toks) >= 4 && toks[0].text == "proc" && toks[1].kind == tokIdent &&
		toks[2].text == "(" && toks[len(toks)-1].text == "{" && toks[len(toks)-2].text == ")") {
		return fmt.Errorf("expected proc name(params) {, got %q", join(toks))
	}
	p.procName = toks[1].text
	p.builder = ir.NewProcBuilder(p.procName)

	params := toks[3 : len(toks)-2]
	for len(params) > 0 {
		if len(params) < 2 || params[0].kind != tokIdent || params[1].kind != tokIdent {
			return fmt.Errorf("expected parameter as name type, got %q", join(params))
		}
		typ, ok := ir.TypeFromString(params[1].text)
		if !ok {
			return fmt.Errorf("unknown type %q", params[1].text)
		}
		p.builder.Param(params[0].text, typ)
		params = params[2:]
		if len(params) > 0 {
			if params[0].text != "," {
				return fmt.Errorf("expected , between parameters, got %q", params[0].text)
			}
			params = params[1:]
		}
	}
	return nil
}

func (p *parser) stmt(toks []token) error {
	b := p.builder
	switch {
	case len(toks) == 1 && toks[0].text == "}":
		proc, err := b.Finish()
		if err != nil {
			return err
		}
		p.procs = append(p.procs, proc)
		p.builder = nil
		return nil

	case len(toks) == 2 && toks[0].kind == tokIdent && toks[1].text == ":":
		b.Label(toks[0].text)
		return nil

	case toks[0].text == "var":
		if len(toks) != 3 || toks[1].kind != tokIdent || toks[2].kind != tokIdent {
			return fmt.Errorf("expected var name type, got %q", join(toks))
		}
		typ, ok := ir.TypeFromString(toks[2].text)
		if !ok {
			return fmt.Errorf("unknown type %q", toks[2].text)
		}
		b.Declare(toks[1].text, typ)
		return nil

	case toks[0].text == "if":
		// if x OP y goto label
		if len(toks) != 6 || toks[1].kind != tokIdent || toks[2].kind != tokOp ||
			toks[3].kind != tokIdent || toks[4].text != "goto" || toks[5].kind != tokIdent {
			return fmt.Errorf("expected if x OP y goto label, got %q", join(toks))
		}
		op, ok := ir.BinaryOpFromString(toks[2].text)
		if !ok {
			return fmt.Errorf("unknown operator %q", toks[2].text)
		}
		b.If(ir.NewBinaryExp(op, b.Ref(toks[1].text), b.Ref(toks[3].text)), toks[5].text)
		return nil

	case toks[0].text == "goto":
		if len(toks) != 2 || toks[1].kind != tokIdent {
			return fmt.Errorf("expected goto label, got %q", join(toks))
		}
		b.Goto(toks[1].text)
		return nil

	case toks[0].text == "return":
		switch {
		case len(toks) == 1:
			b.Return(nil)
		case len(toks) == 2 && toks[1].kind == tokIdent:
			b.Return(b.Ref(toks[1].text))
		default:
			return fmt.Errorf("expected return or return x, got %q", join(toks))
		}
		return nil

	case len(toks) == 1 && toks[0].text == "nop":
		b.Emit(ir.NewNop())
		return nil

	case toks[0].text == "switch":
		if len(toks) != 3 || toks[1].kind != tokIdent || toks[2].text != "{" {
			return fmt.Errorf("expected switch x {, got %q", join(toks))
		}
		p.sw = &switchClauses{selector: b.Ref(toks[1].text)}
		return nil
	}
	return p.assignOrCall(toks)
}

func (p *parser) switchClause(toks []token) error {
	sw := p.sw
	switch {
	case len(toks) == 1 && toks[0].text == "}":
		if sw.defaultLabel == "" {
			return fmt.Errorf("switch on %s has no default clause", sw.selector)
		}
		p.builder.Switch(sw.selector, sw.caseValues, sw.caseLabels, sw.defaultLabel)
		p.sw = nil
		return nil

	case len(toks) == 5 && toks[0].text == "case" && toks[1].kind == tokNumber &&
		toks[2].text == ":" && toks[3].text == "goto" && toks[4].kind == tokIdent:
		sw.caseValues = append(sw.caseValues, toks[1].num)
		sw.caseLabels = append(sw.caseLabels, toks[4].text)
		return nil

	case len(toks) == 4 && toks[0].text == "default" && toks[1].text == ":" &&
		toks[2].text == "goto" && toks[3].kind == tokIdent:
		if sw.defaultLabel != "" {
			return fmt.Errorf("duplicate default clause")
		}
		sw.defaultLabel = toks[3].text
		return nil
	}
	return fmt.Errorf("expected case N: goto label, default: goto label or }, got %q", join(toks))
}

func (p *parser) assignOrCall(toks []token) error {
	b := p.builder

	// A bare call has no = sign: f(a, b)
	eq := -1
	for i, t := range toks {
		if t.kind == tokSymbol && t.text == "=" {
			eq = i
			break
		}
	}
	if eq < 0 {
		call, err := p.callExp(toks)
		if err != nil {
			return err
		}
		b.Emit(ir.NewCall(nil, call))
		return nil
	}

	lhs, err := p.lvalue(toks[:eq])
	if err != nil {
		return err
	}
	rhs := toks[eq+1:]

	// A call result lands in a plain variable through a call statement,
	// never an assignment.
	if len(rhs) >= 3 && rhs[0].kind == tokIdent && rhs[1].text == "(" && rhs[len(rhs)-1].text == ")" {
		v, ok := lhs.(*ir.Var)
		if !ok {
			return fmt.Errorf("call result must be stored in a plain variable")
		}
		call, err := p.callExp(rhs)
		if err != nil {
			return err
		}
		b.Emit(ir.NewCall(v, call))
		return nil
	}

	rv, err := p.rvalue(rhs)
	if err != nil {
		return err
	}
	b.Assign(lhs, rv)
	return nil
}

func (p *parser) lvalue(toks []token) (ir.LValue, error) {
	b := p.builder
	switch {
	case len(toks) == 1 && toks[0].kind == tokIdent:
		return b.Ref(toks[0].text), nil
	case len(toks) == 3 && toks[0].kind == tokIdent && toks[1].text == "." && toks[2].kind == tokIdent:
		return ir.NewFieldAccess(b.Ref(toks[0].text), toks[2].text), nil
	case len(toks) == 4 && toks[0].kind == tokIdent && toks[1].text == "[" &&
		toks[2].kind == tokIdent && toks[3].text == "]":
		return ir.NewArrayAccess(b.Ref(toks[0].text), b.Ref(toks[2].text)), nil
	}
	return nil, fmt.Errorf("bad assignment target %q", join(toks))
}

func (p *parser) rvalue(toks []token) (ir.RValue, error) {
	b := p.builder
	switch {
	case len(toks) == 1 && toks[0].kind == tokNumber:
		return ir.NewIntLiteral(toks[0].num), nil
	case len(toks) == 2 && toks[0].text == "-" && toks[1].kind == tokNumber:
		return ir.NewIntLiteral(-toks[1].num), nil
	case len(toks) == 1 && toks[0].kind == tokIdent:
		return b.Ref(toks[0].text), nil
	case len(toks) == 2 && toks[0].text == "new" && toks[1].kind == tokIdent:
		return ir.NewNewExp(toks[1].text), nil
	case len(toks) == 4 && toks[0].text == "(" && toks[1].kind == tokIdent &&
		toks[2].text == ")" && toks[3].kind == tokIdent:
		typ, ok := ir.TypeFromString(toks[1].text)
		if !ok {
			return nil, fmt.Errorf("unknown cast type %q", toks[1].text)
		}
		return ir.NewCastExp(typ, b.Ref(toks[3].text)), nil
	case len(toks) == 3 && toks[0].kind == tokIdent && toks[1].text == "." && toks[2].kind == tokIdent:
		return ir.NewFieldAccess(b.Ref(toks[0].text), toks[2].text), nil
	case len(toks) == 4 && toks[0].kind == tokIdent && toks[1].text == "[" &&
		toks[2].kind == tokIdent && toks[3].text == "]":
		return ir.NewArrayAccess(b.Ref(toks[0].text), b.Ref(toks[2].text)), nil
	case len(toks) == 3 && toks[0].kind == tokIdent && toks[1].kind == tokOp && toks[2].kind == tokIdent:
		op, ok := ir.BinaryOpFromString(toks[1].text)
		if !ok {
			return nil, fmt.Errorf("unknown operator %q", toks[1].text)
		}
		return ir.NewBinaryExp(op, b.Ref(toks[0].text), b.Ref(toks[2].text)), nil
	}
	return nil, fmt.Errorf("bad expression %q", join(toks))
}

func (p *parser) callExp(toks []token) (*ir.CallExp, error) {
	if !(len(toks) >= 3 && toks[0].kind == tokIdent &&
		toks[1].text == "(" && toks[len(toks)-1].text == ")") {
		return nil, fmt.Errorf("bad call %q", join(toks))
	}
	b := p.builder
	var args []*ir.Var
	inner := toks[2 : len(toks)-1]
	for len(inner) > 0 {
		if inner[0].kind != tokIdent {
			return nil, fmt.Errorf("call arguments must be variables, got %q", inner[0].text)
		}
		args = append(args, b.Ref(inner[0].text))
		inner = inner[1:]
		if len(inner) > 0 {
			if inner[0].text != "," {
				return nil, fmt.Errorf("expected , between arguments, got %q", inner[0].text)
			}
			inner = inner[1:]
		}
	}
	return ir.NewCallExp(toks[0].text, args), nil
}

func join(toks []token) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.text
	}
	return strings.Join(parts, " ")
}
