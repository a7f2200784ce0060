package marshal

// ElemType identifies the element type a native routine expects.
type ElemType int

const (
	Int32 ElemType = iota
	Int64
	Float64
	Complex128
)

// String returns the native spelling of the element type.
func (e ElemType) String() string {
	switch e {
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float64:
		return "double"
	case Complex128:
		return "double complex"
	default:
		return "unknown"
	}
}

// Mode declares how the native routine accesses an array argument.
type Mode int

const (
	// Input arrays are read-only; a materialized copy is discarded
	// after the call with no write-back.
	Input Mode = iota

	// InPlace arrays are mutated by the native routine and must alias
	// the caller's storage for the whole call.
	InPlace
)
