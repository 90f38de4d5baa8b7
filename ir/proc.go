package ir

import (
	"fmt"
)

// Proc is a single procedure: parameters, locals and a statement list with
// ascending indices. Procedures are immutable once built.
type Proc struct {
	name   string
	params []*Var
	vars   []*Var
	stmts  []Stmt
}

func (p *Proc) Name() string   { return p.name }
func (p *Proc) Params() []*Var { return p.params }
func (p *Proc) Vars() []*Var   { return p.vars }
func (p *Proc) Stmts() []Stmt  { return p.stmts }

func (p *Proc) String() string {
	return "proc " + p.name
}

// Program is an ordered collection of procedures.
type Program struct {
	procs  []*Proc
	byName map[string]*Proc
}

func NewProgram(procs ...*Proc) *Program {
	prog := &Program{byName: make(map[string]*Proc)}
	for _, p := range procs {
		prog.procs = append(prog.procs, p)
		prog.byName[p.name] = p
	}
	return prog
}

func (prog *Program) Procs() []*Proc { return prog.procs }

func (prog *Program) Proc(name string) (*Proc, bool) {
	p, ok := prog.byName[name]
	return p, ok
}

// ProcBuilder assembles a procedure statement by statement. Branch targets
// are referenced through labels and resolved when the procedure is finished,
// at which point every statement also receives its index.
type ProcBuilder struct {
	name    string
	params  []*Var
	vars    map[string]*Var
	order   []*Var
	stmts   []Stmt
	labels  map[string]int
	patches []patch
}

// patch records a branch target to resolve. caseIdx is the switch case the
// label belongs to, -1 for non-switch targets and -2 for a switch default.
type patch struct {
	stmt    Stmt
	label   string
	caseIdx int
}

func NewProcBuilder(name string) *ProcBuilder {
	return &ProcBuilder{
		name:   name,
		vars:   make(map[string]*Var),
		labels: make(map[string]int),
	}
}

// Param declares a formal parameter.
func (b *ProcBuilder) Param(name string, typ Type) *Var {
	v := b.declare(name, typ)
	b.params = append(b.params, v)
	return v
}

// Declare introduces a local variable with an explicit type.
func (b *ProcBuilder) Declare(name string, typ Type) *Var {
	return b.declare(name, typ)
}

func (b *ProcBuilder) declare(name string, typ Type) *Var {
	if v, ok := b.vars[name]; ok {
		v.typ = typ
		return v
	}
	v := NewVar(name, typ)
	b.vars[name] = v
	b.order = append(b.order, v)
	return v
}

// Ref resolves a variable by name, introducing it with type int when it was
// not declared before.
func (b *ProcBuilder) Ref(name string) *Var {
	if v, ok := b.vars[name]; ok {
		return v
	}
	return b.declare(name, Int)
}

// Label marks the position of the next emitted statement.
func (b *ProcBuilder) Label(name string) {
	b.labels[name] = len(b.stmts)
}

// Emit appends a statement without branch targets.
func (b *ProcBuilder) Emit(s Stmt) Stmt {
	b.stmts = append(b.stmts, s)
	return s
}

// Assign emits lhs = rhs.
func (b *ProcBuilder) Assign(lhs LValue, rhs RValue) *AssignStmt {
	s := NewAssign(lhs, rhs)
	b.Emit(s)
	return s
}

// If emits a conditional branch to the given label.
func (b *ProcBuilder) If(cond *BinaryExp, label string) *IfStmt {
	s := NewIf(cond)
	b.Emit(s)
	b.patches = append(b.patches, patch{stmt: s, label: label, caseIdx: -1})
	return s
}

// Goto emits an unconditional branch to the given label.
func (b *ProcBuilder) Goto(label string) *GotoStmt {
	s := NewGoto()
	b.Emit(s)
	b.patches = append(b.patches, patch{stmt: s, label: label, caseIdx: -1})
	return s
}

// Switch emits a multi-way branch. Case values map to labels; the default
// label is mandatory.
func (b *ProcBuilder) Switch(v *Var, caseValues []int, caseLabels []string, defaultLabel string) *SwitchStmt {
	s := NewSwitch(v)
	s.cases = make([]SwitchCase, len(caseValues))
	for i, value := range caseValues {
		s.cases[i] = SwitchCase{Value: value}
		b.patches = append(b.patches, patch{stmt: s, label: caseLabels[i], caseIdx: i})
	}
	b.patches = append(b.patches, patch{stmt: s, label: defaultLabel, caseIdx: -2})
	b.Emit(s)
	return s
}

// Return emits a return of the given variable, which may be nil.
func (b *ProcBuilder) Return(v *Var) *ReturnStmt {
	s := NewReturn(v)
	b.Emit(s)
	return s
}

// Finish resolves branch targets, assigns statement indices and yields the
// procedure.
func (b *ProcBuilder) Finish() (*Proc, error) {
	for i, s := range b.stmts {
		s.setIndex(i)
	}
	for _, p := range b.patches {
		pos, ok := b.labels[p.label]
		if !ok {
			return nil, fmt.Errorf("proc %s: undefined label %q", b.name, p.label)
		}
		if pos >= len(b.stmts) {
			return nil, fmt.Errorf("proc %s: label %q points past the last statement", b.name, p.label)
		}
		target := b.stmts[pos]
		switch s := p.stmt.(type) {
		case *IfStmt:
			s.target = target
		case *GotoStmt:
			s.target = target
		case *SwitchStmt:
			if p.caseIdx == -2 {
				s.defaultTarget = target
			} else {
				s.cases[p.caseIdx].Target = target
			}
		}
	}
	return &Proc{
		name:   b.name,
		params: b.params,
		vars:   b.order,
		stmts:  b.stmts,
	}, nil
}
