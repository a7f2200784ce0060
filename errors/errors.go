package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in the call path the error occurred
type Phase string

const (
	PhaseAdapt    Phase = "adapt"    // array adaptation
	PhaseDispatch Phase = "dispatch" // variant selection
	PhaseHandle   Phase = "handle"   // opaque handle marshalling
	PhaseNative   Phase = "native"   // native routine execution
	PhaseDriver   Phase = "driver"   // high-level driver operations
)

// Kind categorizes the error
type Kind string

const (
	// Shape/type errors: the value is the wrong kind of thing.
	KindTypeMismatch Kind = "type_mismatch"
	KindNotArray     Kind = "not_array"
	KindBadRank      Kind = "bad_rank"
	KindNotWritable  Kind = "not_writable"

	// Size/value errors: the right kind of thing with the wrong shape.
	KindBadLength Kind = "bad_length"

	// Dispatch/configuration errors.
	KindNoVariant Kind = "no_variant"

	// Handle errors.
	KindBadHandle   Kind = "bad_handle"
	KindHandleState Kind = "handle_state"

	// Native and driver errors.
	KindStatus         Kind = "status"
	KindInvalidInput   Kind = "invalid_input"
	KindNotInitialized Kind = "not_initialized"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Elem   string // native element or handle type the caller was expected to supply
	Detail string
	Path   []string
	Status int // native status code, meaningful only for KindStatus
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.Elem != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.Elem != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", native type ")
			b.WriteString(e.Elem)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("native type ")
			b.WriteString(e.Elem)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Elem != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsShape reports whether the error is a shape/type error.
func (e *Error) IsShape() bool {
	switch e.Kind {
	case KindTypeMismatch, KindNotArray, KindBadRank, KindNotWritable, KindBadHandle:
		return true
	}
	return false
}

// IsValue reports whether the error is a size/value error.
func (e *Error) IsValue() bool {
	return e.Kind == KindBadLength
}

// Matches reports whether err is, or wraps, an *Error with the given
// phase and kind.
func Matches(err error, phase Phase, kind Kind) bool {
	var e *Error
	if !stderrors.As(err, &e) {
		return false
	}
	return e.Phase == phase && e.Kind == kind
}

// ShapeError reports whether err is a shape/type error.
func ShapeError(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.IsShape()
}

// ValueError reports whether err is a size/value error.
func ValueError(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.IsValue()
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the argument path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Elem sets the expected native type name
func (b *Builder) Elem(t string) *Builder {
	b.err.Elem = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeMismatch creates a shape error for a value of the wrong type
func TypeMismatch(phase Phase, path []string, goType, elem string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Elem:   elem,
	}
}

// NotArray creates a shape error for a value that is not array-like at all
func NotArray(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotArray,
		Path:   path,
		GoType: goType,
		Detail: "value is not array-like",
	}
}

// BadRank creates a shape error for an array of unacceptable rank
func BadRank(phase Phase, path []string, rank, minRank, maxRank int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBadRank,
		Path:   path,
		Detail: fmt.Sprintf("rank %d outside [%d, %d]", rank, minRank, maxRank),
		Value:  rank,
	}
}

// BadLength creates a value error, distinct from the shape errors above
func BadLength(phase Phase, path []string, length, required int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBadLength,
		Path:   path,
		Detail: fmt.Sprintf("length %d, require exactly %d", length, required),
		Value:  length,
	}
}

// NotWritable creates a shape error for an in-place argument that cannot
// alias a mutable contiguous buffer
func NotWritable(phase Phase, path []string, goType, elem string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotWritable,
		Path:   path,
		GoType: goType,
		Elem:   elem,
		Detail: "in-place argument must be a mutable contiguous buffer",
	}
}

// NoVariant creates a configuration error for an unavailable entry-point family
func NoVariant(family string) *Error {
	return &Error{
		Phase:  PhaseDispatch,
		Kind:   KindNoVariant,
		Detail: fmt.Sprintf("no compiled variant for family %q", family),
	}
}

// BadHandle creates a shape error for a value that is not a handle of the
// expected native type
func BadHandle(path []string, goType, want string) *Error {
	return &Error{
		Phase:  PhaseHandle,
		Kind:   KindBadHandle,
		Path:   path,
		GoType: goType,
		Elem:   want,
	}
}

// HandleState creates an error for a handle in the wrong lifecycle state
func HandleState(detail string) *Error {
	return &Error{
		Phase:  PhaseHandle,
		Kind:   KindHandleState,
		Detail: detail,
	}
}

// Status creates an error for a failed native call
func Status(op string, status int, name string) *Error {
	return &Error{
		Phase:  PhaseNative,
		Kind:   KindStatus,
		Detail: fmt.Sprintf("%s failed with %s", op, name),
		Status: status,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotInitialized creates a not-initialized error for a missing factorization
func NotInitialized(what string) *Error {
	return &Error{
		Phase:  PhaseDriver,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not computed", what),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
