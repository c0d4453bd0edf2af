package domain

// Kind is the semantic type of a command constructor parameter.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Constructor is one candidate signature for building a command from positional arguments.
// Build receives the coerced arguments in declared order, one per entry in Params.
type Constructor struct {
	Params []Kind
	Build  func(args Args) Command
}

// Arity returns the number of declared parameters.
func (c Constructor) Arity() int {
	return len(c.Params)
}

// Args holds coerced constructor arguments. Accessors panic on a kind mismatch, which only happens when
// Build disagrees with its own Params.
type Args []any

func (a Args) Str(i int) string {
	return a[i].(string)
}

func (a Args) Bool(i int) bool {
	return a[i].(bool)
}

func (a Args) Int(i int) int {
	return a[i].(int)
}

func (a Args) Float(i int) float64 {
	return a[i].(float64)
}
