package ir

import (
	"fmt"
	"strconv"
	"strings"
)

type (
	// Exp is implemented by every expression in the IR.
	Exp interface {
		fmt.Stringer
	}

	// LValue is an expression that may appear as a definition target.
	LValue interface {
		Exp
		lvalue()
	}

	// RValue is an expression that may appear on the right-hand side of a
	// definition.
	RValue interface {
		Exp
		rvalue()
	}
)

// Var is a local variable or parameter. Variables are compared by pointer
// identity; a procedure never contains two distinct variables with the same
// name.
type Var struct {
	name string
	typ  Type
}

func NewVar(name string, typ Type) *Var {
	return &Var{name: name, typ: typ}
}

func (v *Var) Name() string   { return v.name }
func (v *Var) Type() Type     { return v.typ }
func (v *Var) String() string { return v.name }

func (*Var) lvalue() {}
func (*Var) rvalue() {}

// IntLiteral is an integer constant expression.
type IntLiteral struct {
	value int
}

func NewIntLiteral(value int) *IntLiteral {
	return &IntLiteral{value: value}
}

func (l *IntLiteral) Value() int     { return l.value }
func (l *IntLiteral) String() string { return strconv.Itoa(l.value) }

func (*IntLiteral) rvalue() {}

// BinaryOp enumerates the binary operators of the IR.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Rem
	Shl
	Shr
	And
	Or
	Xor
	Gt
	Lt
	Ge
	Le
	Eq
	Ne
)

var opNames = [...]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/", Rem: "%",
	Shl: "<<", Shr: ">>",
	And: "&", Or: "|", Xor: "^",
	Gt: ">", Lt: "<", Ge: ">=", Le: "<=", Eq: "==", Ne: "!=",
}

func (op BinaryOp) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "?"
}

// BinaryOpFromString resolves an operator tag from its textual form.
func BinaryOpFromString(s string) (BinaryOp, bool) {
	for op, name := range opNames {
		if name == s {
			return BinaryOp(op), true
		}
	}
	return 0, false
}

// IsRelational reports whether the operator produces a 0/1 truth value.
func (op BinaryOp) IsRelational() bool {
	switch op {
	case Gt, Lt, Ge, Le, Eq, Ne:
		return true
	}
	return false
}

// BinaryExp is a binary operation over two variables. The IR is three-address
// code, so operands are always variables, never nested expressions.
type BinaryExp struct {
	op   BinaryOp
	x, y *Var
}

func NewBinaryExp(op BinaryOp, x, y *Var) *BinaryExp {
	return &BinaryExp{op: op, x: x, y: y}
}

func (e *BinaryExp) Op() BinaryOp { return e.op }
func (e *BinaryExp) X() *Var      { return e.x }
func (e *BinaryExp) Y() *Var      { return e.y }

func (e *BinaryExp) String() string {
	return fmt.Sprintf("%s %s %s", e.x, e.op, e.y)
}

func (*BinaryExp) rvalue() {}

// FieldAccess reads or writes a field of the object held by a base variable.
// Evaluating one may trigger class initialization or fault on a nil base.
type FieldAccess struct {
	base  *Var
	field string
}

func NewFieldAccess(base *Var, field string) *FieldAccess {
	return &FieldAccess{base: base, field: field}
}

func (e *FieldAccess) Base() *Var    { return e.base }
func (e *FieldAccess) Field() string { return e.field }

func (e *FieldAccess) String() string {
	return fmt.Sprintf("%s.%s", e.base, e.field)
}

func (*FieldAccess) lvalue() {}
func (*FieldAccess) rvalue() {}

// ArrayAccess reads or writes an element of the array held by a base
// variable. Evaluating one may fault on a nil base or bad index.
type ArrayAccess struct {
	base, index *Var
}

func NewArrayAccess(base, index *Var) *ArrayAccess {
	return &ArrayAccess{base: base, index: index}
}

func (e *ArrayAccess) Base() *Var  { return e.base }
func (e *ArrayAccess) Index() *Var { return e.index }

func (e *ArrayAccess) String() string {
	return fmt.Sprintf("%s[%s]", e.base, e.index)
}

func (*ArrayAccess) lvalue() {}
func (*ArrayAccess) rvalue() {}

// CastExp converts a variable to a target type. May fault at runtime.
type CastExp struct {
	x      *Var
	target Type
}

func NewCastExp(target Type, x *Var) *CastExp {
	return &CastExp{x: x, target: target}
}

func (e *CastExp) X() *Var      { return e.x }
func (e *CastExp) Target() Type { return e.target }

func (e *CastExp) String() string {
	return fmt.Sprintf("(%s) %s", e.target, e.x)
}

func (*CastExp) rvalue() {}

// NewExp allocates a fresh object or array.
type NewExp struct {
	class string
}

func NewNewExp(class string) *NewExp {
	return &NewExp{class: class}
}

func (e *NewExp) Class() string { return e.class }

func (e *NewExp) String() string {
	return "new " + e.class
}

func (*NewExp) rvalue() {}

// CallExp invokes a procedure by name. Calls are not modeled by the
// analyses; their results are unconstrained.
type CallExp struct {
	callee string
	args   []*Var
}

func NewCallExp(callee string, args []*Var) *CallExp {
	return &CallExp{callee: callee, args: args}
}

func (e *CallExp) Callee() string { return e.callee }
func (e *CallExp) Args() []*Var   { return e.args }

func (e *CallExp) String() string {
	strs := make([]string, len(e.args))
	for i, a := range e.args {
		strs[i] = a.Name()
	}
	return fmt.Sprintf("%s(%s)", e.callee, strings.Join(strs, ", "))
}

func (*CallExp) rvalue() {}

// operandsOf collects the variables a composite expression reads. A plain
// variable or literal has no sub-operands; it stands for itself.
func operandsOf(e Exp) []*Var {
	switch e := e.(type) {
	case *BinaryExp:
		return []*Var{e.x, e.y}
	case *FieldAccess:
		if e.base != nil {
			return []*Var{e.base}
		}
	case *ArrayAccess:
		return []*Var{e.base, e.index}
	case *CastExp:
		return []*Var{e.x}
	case *CallExp:
		return e.args
	}
	return nil
}
