package lattice

import "strconv"

// valueKind discriminates the three variants of the constant propagation
// lattice.
type valueKind uint8

const (
	undef valueKind = iota
	constant
	nac
)

// Value is a member of the flat constant propagation lattice
//
//	⊥ (undef)  <  …, -1, 0, 1, …  <  NAC
//
// Values are immutable and compared structurally; two constants are equal
// exactly when their payloads are.
type Value struct {
	kind valueKind
	c    int
}

// Undef is the bottom element: no information about the variable yet.
func Undef() Value {
	return Value{kind: undef}
}

// NAC is the top element: the variable may vary at runtime.
func NAC() Value {
	return Value{kind: nac}
}

// MakeConstant produces the lattice member representing the constant c.
func MakeConstant(c int) Value {
	return Value{kind: constant, c: c}
}

// IsUndef is true only for the bottom element.
func (v Value) IsUndef() bool {
	return v.kind == undef
}

// IsNAC is true only for the top element.
func (v Value) IsNAC() bool {
	return v.kind == nac
}

// IsConstant is true only for constant members.
func (v Value) IsConstant() bool {
	return v.kind == constant
}

// Constant retrieves the payload of a constant member. Calling it on ⊥ or
// NAC is a contract violation.
func (v Value) Constant() int {
	if v.kind != constant {
		panic("called Constant() on a non-constant lattice value")
	}
	return v.c
}

// Meet computes v ⊓ w, the greatest lower bound in the information order:
// NAC absorbs everything, ⊥ is the identity and two distinct constants
// collapse to NAC.
func (v Value) Meet(w Value) Value {
	switch {
	case w.IsNAC() || v == w || v.IsUndef():
		return w
	case v.IsNAC():
		return NAC()
	case w.IsUndef():
		return v
	default:
		return NAC()
	}
}

// Leq computes v ⊑ w in the lattice order.
func (v Value) Leq(w Value) bool {
	return v.IsUndef() || v == w || w.IsNAC()
}

func (v Value) String() string {
	switch v.kind {
	case undef:
		return colorize.Element("⊥")
	case nac:
		return colorize.Element("NAC")
	default:
		return colorize.Const(strconv.Itoa(v.c))
	}
}
