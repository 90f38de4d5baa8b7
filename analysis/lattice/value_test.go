package lattice

import "testing"

func TestValueMeetTable(t *testing.T) {
	tests := []struct {
		a, b, expected Value
	}{
		{Undef(), Undef(), Undef()},
		{Undef(), NAC(), NAC()},
		{NAC(), Undef(), NAC()},
		{NAC(), NAC(), NAC()},
		{Undef(), MakeConstant(5), MakeConstant(5)},
		{MakeConstant(5), Undef(), MakeConstant(5)},
		{NAC(), MakeConstant(5), NAC()},
		{MakeConstant(5), NAC(), NAC()},
		{MakeConstant(5), MakeConstant(5), MakeConstant(5)},
		{MakeConstant(5), MakeConstant(6), NAC()},
	}

	for _, test := range tests {
		res := test.a.Meet(test.b)
		if res != test.expected {
			t.Errorf("%s ⊓ %s = %s, expected %s", test.a, test.b, res, test.expected)
		}
	}
}

func TestValueMeetLaws(t *testing.T) {
	samples := []Value{
		Undef(), NAC(),
		MakeConstant(-1), MakeConstant(0), MakeConstant(5), MakeConstant(6),
	}

	for _, a := range samples {
		if res := a.Meet(a); res != a {
			t.Errorf("%s ⊓ %s = %s, not idempotent", a, a, res)
		}
		for _, b := range samples {
			if ab, ba := a.Meet(b), b.Meet(a); ab != ba {
				t.Errorf("%s ⊓ %s = %s but %s ⊓ %s = %s", a, b, ab, b, a, ba)
			}
			for _, c := range samples {
				l := a.Meet(b).Meet(c)
				r := a.Meet(b.Meet(c))
				if l != r {
					t.Errorf("(%s ⊓ %s) ⊓ %s = %s but %s ⊓ (%s ⊓ %s) = %s",
						a, b, c, l, a, b, c, r)
				}
			}
		}
	}
}

func TestValueOrder(t *testing.T) {
	tests := []struct {
		a, b     Value
		expected bool
	}{
		{Undef(), Undef(), true},
		{Undef(), MakeConstant(7), true},
		{Undef(), NAC(), true},
		{MakeConstant(7), NAC(), true},
		{MakeConstant(7), MakeConstant(7), true},
		{MakeConstant(7), MakeConstant(8), false},
		{NAC(), MakeConstant(7), false},
		{NAC(), Undef(), false},
		{MakeConstant(7), Undef(), false},
	}

	for _, test := range tests {
		if res := test.a.Leq(test.b); res != test.expected {
			t.Errorf("%s ⊑ %s = %v, expected %v", test.a, test.b, res, test.expected)
		}
	}
}

func TestValueStructuralEquality(t *testing.T) {
	if MakeConstant(3) != MakeConstant(3) {
		t.Error("two constants with equal payloads must compare equal")
	}
	if MakeConstant(3) == MakeConstant(4) {
		t.Error("constants with distinct payloads must not compare equal")
	}
	if !MakeConstant(1).IsConstant() || Undef().IsConstant() || NAC().IsConstant() {
		t.Error("IsConstant must hold exactly for constant members")
	}
}
