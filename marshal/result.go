package marshal

// Tuple is an ordered composite of the output values one native call
// produced. It exists only for the duration of that call's result.
type Tuple []any

// Append accumulates a new output value into an existing result,
// preserving declared output-parameter order:
//
//	Append(nil, v)          = v
//	Append(v, w)            = Tuple{v, w}
//	Append(Tuple{...}, w)   = Tuple{..., w}
//
// A single output stays bare rather than being wrapped in a one-element
// tuple.
func Append(existing, v any) any {
	switch r := existing.(type) {
	case nil:
		return v
	case Tuple:
		return append(r, v)
	default:
		return Tuple{existing, v}
	}
}
