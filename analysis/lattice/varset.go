package lattice

import (
	"sort"
	"strings"

	"github.com/cs-au-dk/kildall/ir"
	"github.com/cs-au-dk/kildall/utils"

	"github.com/benbjohnson/immutable"
)

// VarSet is a member of the powerset lattice of variables: a mutable cell
// holding an immutable set. The backward liveness analysis uses it as its
// fact type.
type VarSet struct {
	m *immutable.Map[*ir.Var, struct{}]
}

func emptyVarMap() *immutable.Map[*ir.Var, struct{}] {
	return immutable.NewMap[*ir.Var, struct{}](utils.PointerHasher[*ir.Var]{})
}

func NewVarSet(xs ...*ir.Var) *VarSet {
	m := emptyVarMap()
	for _, x := range xs {
		m = m.Set(x, struct{}{})
	}
	return &VarSet{m: m}
}

// Contains reports membership of x.
func (s *VarSet) Contains(x *ir.Var) bool {
	_, ok := s.m.Get(x)
	return ok
}

// Add inserts x, reporting whether the set changed.
func (s *VarSet) Add(x *ir.Var) bool {
	if s.Contains(x) {
		return false
	}
	s.m = s.m.Set(x, struct{}{})
	return true
}

// Remove deletes x, reporting whether the set changed.
func (s *VarSet) Remove(x *ir.Var) bool {
	if !s.Contains(x) {
		return false
	}
	s.m = s.m.Delete(x)
	return true
}

// Union folds other into s, reporting whether s changed.
func (s *VarSet) Union(other *VarSet) (changed bool) {
	other.ForEach(func(x *ir.Var) {
		if s.Add(x) {
			changed = true
		}
	})
	return
}

// Copy takes an independent snapshot. The underlying structure is shared,
// which is safe because it is immutable.
func (s *VarSet) Copy() *VarSet {
	return &VarSet{m: s.m}
}

// CopyFrom replaces the contents of s with those of other, reporting whether
// s changed.
func (s *VarSet) CopyFrom(other *VarSet) bool {
	if s.Eq(other) {
		return false
	}
	s.m = other.m
	return true
}

// Eq reports whether two sets hold the same variables.
func (s *VarSet) Eq(other *VarSet) bool {
	if s.m.Len() != other.m.Len() {
		return false
	}
	eq := true
	s.ForEach(func(x *ir.Var) {
		if !other.Contains(x) {
			eq = false
		}
	})
	return eq
}

// ForEach visits every member in unspecified order.
func (s *VarSet) ForEach(do func(*ir.Var)) {
	iter := s.m.Iterator()
	for !iter.Done() {
		x, _, _ := iter.Next()
		do(x)
	}
}

// Len is the number of members.
func (s *VarSet) Len() int {
	return s.m.Len()
}

func (s *VarSet) String() string {
	strs := make([]string, 0, s.m.Len())
	s.ForEach(func(x *ir.Var) {
		strs = append(strs, colorize.Key(x.Name()))
	})
	sort.Strings(strs)
	return "{" + strings.Join(strs, ", ") + "}"
}
