package ir

// Type is the static type tag carried by every variable in the IR.
// The analysis only distinguishes integral-like scalars from everything else,
// so types are plain tags without any structure.
type Type int

const (
	Byte Type = iota
	Short
	Int
	Char
	Boolean
	Long
	Float
	Double
	Ref
)

var typeNames = [...]string{
	Byte:    "byte",
	Short:   "short",
	Int:     "int",
	Char:    "char",
	Boolean: "boolean",
	Long:    "long",
	Float:   "float",
	Double:  "double",
	Ref:     "ref",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// TypeFromString resolves a type tag from its textual name.
func TypeFromString(s string) (Type, bool) {
	for t, name := range typeNames {
		if name == s {
			return Type(t), true
		}
	}
	return 0, false
}

// IsIntegral reports whether a variable of this type can hold an abstract
// integer constant during analysis.
func (t Type) IsIntegral() bool {
	switch t {
	case Byte, Short, Int, Char, Boolean:
		return true
	}
	return false
}
