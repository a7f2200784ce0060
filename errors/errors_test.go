package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestBuilderFields(t *testing.T) {
	err := New(PhaseAdapt, KindTypeMismatch).
		Path("argument", "Ax").
		GoType("[]string").
		Elem("float64").
		Detail("cannot convert %d elements", 3).
		Build()

	msg := err.Error()
	for _, want := range []string{"adapt", "type_mismatch", "argument.Ax", "[]string", "float64", "3 elements"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q missing %q", msg, want)
		}
	}
}

func TestMatchesUnwraps(t *testing.T) {
	inner := NoVariant("zl")
	wrapped := fmt.Errorf("calling solve: %w", inner)
	if !Matches(wrapped, PhaseDispatch, KindNoVariant) {
		t.Fatal("wrapped error must still match")
	}
	if Matches(wrapped, PhaseDispatch, KindBadHandle) {
		t.Fatal("kind must be compared")
	}
	if Matches(stderrors.New("plain"), PhaseDispatch, KindNoVariant) {
		t.Fatal("plain error must not match")
	}
}

func TestShapeValueSplit(t *testing.T) {
	shape := NotArray(PhaseAdapt, []string{"b"}, "int")
	value := BadLength(PhaseAdapt, []string{"control"}, 19, 20)

	if !ShapeError(shape) || ValueError(shape) {
		t.Fatalf("rank/type failures classify as shape errors: %v", shape)
	}
	if !ValueError(value) || ShapeError(value) {
		t.Fatalf("length failures classify as value errors: %v", value)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("short read")
	err := Wrap(PhaseDriver, KindInvalidInput, cause, "parsing size line")
	if !stderrors.Is(err, cause) {
		t.Fatal("cause must unwrap")
	}
	if !strings.Contains(err.Error(), "parsing size line") {
		t.Fatalf("detail lost: %v", err)
	}
}
