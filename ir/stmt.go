package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Stmt is implemented by every statement in the IR. Statements carry an
// ascending index within their procedure, assigned at construction time,
// which downstream passes use for deterministic ordering of results.
type Stmt interface {
	fmt.Stringer
	// Index is the position of the statement in its procedure, or a negative
	// value for synthetic statements that belong to no procedure.
	Index() int
	// Def yields the single definition target of the statement, if any.
	Def() (LValue, bool)
	// Uses lists the expressions the statement reads: first the variables
	// read by composite sub-expressions, then, for definition statements,
	// the defining expression itself as the final element.
	Uses() []Exp

	setIndex(int)
}

// stmtBase carries the index bookkeeping shared by all statements.
type stmtBase struct {
	index int
}

func (s *stmtBase) Index() int     { return s.index }
func (s *stmtBase) setIndex(i int) { s.index = i }

// AssignStmt stores the value of an expression into a variable, field or
// array element.
type AssignStmt struct {
	stmtBase
	lhs LValue
	rhs RValue
}

func NewAssign(lhs LValue, rhs RValue) *AssignStmt {
	return &AssignStmt{stmtBase: stmtBase{index: -1}, lhs: lhs, rhs: rhs}
}

func (s *AssignStmt) LValue() LValue { return s.lhs }
func (s *AssignStmt) RValue() RValue { return s.rhs }

func (s *AssignStmt) Def() (LValue, bool) { return s.lhs, true }

func (s *AssignStmt) Uses() []Exp {
	var uses []Exp
	for _, v := range operandsOf(s.lhs) {
		uses = append(uses, v)
	}
	for _, v := range operandsOf(s.rhs) {
		uses = append(uses, v)
	}
	return append(uses, s.rhs)
}

func (s *AssignStmt) String() string {
	return fmt.Sprintf("%s = %s", s.lhs, s.rhs)
}

// IfStmt branches on a relational condition. Control continues at the branch
// target when the condition holds and falls through otherwise.
type IfStmt struct {
	stmtBase
	cond   *BinaryExp
	target Stmt
}

func NewIf(cond *BinaryExp) *IfStmt {
	return &IfStmt{stmtBase: stmtBase{index: -1}, cond: cond}
}

func (s *IfStmt) Cond() *BinaryExp { return s.cond }
func (s *IfStmt) Target() Stmt     { return s.target }

func (s *IfStmt) Def() (LValue, bool) { return nil, false }

func (s *IfStmt) Uses() []Exp {
	var uses []Exp
	for _, v := range operandsOf(s.cond) {
		uses = append(uses, v)
	}
	return append(uses, s.cond)
}

func (s *IfStmt) String() string {
	return fmt.Sprintf("if %s goto %s", s.cond, describeTarget(s.target))
}

// GotoStmt transfers control unconditionally.
type GotoStmt struct {
	stmtBase
	target Stmt
}

func NewGoto() *GotoStmt {
	return &GotoStmt{stmtBase: stmtBase{index: -1}}
}

func (s *GotoStmt) Target() Stmt { return s.target }

func (s *GotoStmt) Def() (LValue, bool) { return nil, false }
func (s *GotoStmt) Uses() []Exp         { return nil }

func (s *GotoStmt) String() string {
	return "goto " + describeTarget(s.target)
}

// SwitchCase pairs a case value with its branch target.
type SwitchCase struct {
	Value  int
	Target Stmt
}

// SwitchStmt branches on the value of a variable over a list of integer
// cases with a mandatory default target.
type SwitchStmt struct {
	stmtBase
	v             *Var
	cases         []SwitchCase
	defaultTarget Stmt
}

func NewSwitch(v *Var) *SwitchStmt {
	return &SwitchStmt{stmtBase: stmtBase{index: -1}, v: v}
}

func (s *SwitchStmt) Var() *Var           { return s.v }
func (s *SwitchStmt) Cases() []SwitchCase { return s.cases }
func (s *SwitchStmt) DefaultTarget() Stmt { return s.defaultTarget }

func (s *SwitchStmt) Def() (LValue, bool) { return nil, false }
func (s *SwitchStmt) Uses() []Exp         { return []Exp{s.v} }

func (s *SwitchStmt) String() string {
	cases := make([]string, 0, len(s.cases)+1)
	for _, c := range s.cases {
		cases = append(cases, fmt.Sprintf("case %d: %s", c.Value, describeTarget(c.Target)))
	}
	cases = append(cases, "default: "+describeTarget(s.defaultTarget))
	return fmt.Sprintf("switch %s [%s]", s.v, strings.Join(cases, ", "))
}

// CallStmt invokes a procedure, optionally storing the result. Calls always
// have observable effects and are never removed by the analyses.
type CallStmt struct {
	stmtBase
	call   *CallExp
	result *Var
}

func NewCall(result *Var, call *CallExp) *CallStmt {
	return &CallStmt{stmtBase: stmtBase{index: -1}, call: call, result: result}
}

func (s *CallStmt) Call() *CallExp { return s.call }
func (s *CallStmt) Result() *Var   { return s.result }

func (s *CallStmt) Def() (LValue, bool) {
	if s.result != nil {
		return s.result, true
	}
	return nil, false
}

func (s *CallStmt) Uses() []Exp {
	var uses []Exp
	for _, v := range operandsOf(s.call) {
		uses = append(uses, v)
	}
	return append(uses, s.call)
}

func (s *CallStmt) String() string {
	if s.result != nil {
		return fmt.Sprintf("%s = %s", s.result, s.call)
	}
	return s.call.String()
}

// ReturnStmt leaves the procedure, optionally yielding a variable.
type ReturnStmt struct {
	stmtBase
	v *Var
}

func NewReturn(v *Var) *ReturnStmt {
	return &ReturnStmt{stmtBase: stmtBase{index: -1}, v: v}
}

func (s *ReturnStmt) Var() *Var { return s.v }

func (s *ReturnStmt) Def() (LValue, bool) { return nil, false }

func (s *ReturnStmt) Uses() []Exp {
	if s.v == nil {
		return nil
	}
	return []Exp{s.v}
}

func (s *ReturnStmt) String() string {
	if s.v == nil {
		return "return"
	}
	return "return " + s.v.Name()
}

// NopStmt does nothing. Control-flow graphs also use fresh nops as their
// entry and exit sentinels.
type NopStmt struct {
	stmtBase
}

func NewNop() *NopStmt {
	return &NopStmt{stmtBase: stmtBase{index: -1}}
}

func (s *NopStmt) Def() (LValue, bool) { return nil, false }
func (s *NopStmt) Uses() []Exp         { return nil }
func (s *NopStmt) String() string      { return "nop" }

func describeTarget(target Stmt) string {
	if target == nil {
		return "?"
	}
	return strconv.Itoa(target.Index())
}
