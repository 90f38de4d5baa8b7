package lattice

import (
	"sort"
	"strings"

	"github.com/cs-au-dk/kildall/ir"
)

// Fact maps variables to abstract values at a program point. Any variable
// without a binding is implicitly ⊥. Facts are mutable and exclusively owned
// by one result table slot; sharing happens only through Copy.
type Fact struct {
	order []*ir.Var
	vals  map[*ir.Var]Value
}

func NewFact() *Fact {
	return &Fact{vals: make(map[*ir.Var]Value)}
}

// Get yields the value bound to x, or ⊥ when x is unbound.
func (f *Fact) Get(x *ir.Var) Value {
	if v, ok := f.vals[x]; ok {
		return v
	}
	return Undef()
}

// Update binds x to v, reporting whether the binding changed.
func (f *Fact) Update(x *ir.Var, v Value) bool {
	old, ok := f.vals[x]
	if !ok {
		f.order = append(f.order, x)
	}
	f.vals[x] = v
	return !ok || old != v
}

// Copy takes an independent snapshot of the fact.
func (f *Fact) Copy() *Fact {
	res := &Fact{
		order: make([]*ir.Var, len(f.order)),
		vals:  make(map[*ir.Var]Value, len(f.vals)),
	}
	copy(res.order, f.order)
	for x, v := range f.vals {
		res.vals[x] = v
	}
	return res
}

// CopyFrom folds every binding of other into f, reporting whether any
// binding of f changed. Bindings absent from other are left alone; since
// facts only move up the lattice during solving this never loses
// information.
func (f *Fact) CopyFrom(other *Fact) (changed bool) {
	other.ForEach(func(x *ir.Var, v Value) {
		if f.Update(x, v) {
			changed = true
		}
	})
	return
}

// ForEach visits the bindings in insertion order.
func (f *Fact) ForEach(do func(*ir.Var, Value)) {
	for _, x := range f.order {
		do(x, f.vals[x])
	}
}

// Len is the number of bound variables.
func (f *Fact) Len() int {
	return len(f.vals)
}

func (f *Fact) String() string {
	if len(f.vals) == 0 {
		return "[]"
	}
	strs := make([]string, 0, len(f.vals))
	f.ForEach(func(x *ir.Var, v Value) {
		strs = append(strs, colorize.Key(x.Name())+" -> "+v.String())
	})
	sort.Strings(strs)
	return "[" + strings.Join(strs, ", ") + "]"
}
