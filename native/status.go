package native

import "fmt"

// Status is the integer return code of every native routine. Zero means
// success, positive values are warnings and negative values are errors.
type Status int

const (
	StatusOK Status = 0

	WarningSingularMatrix       Status = 1
	WarningDeterminantUnderflow Status = 2
	WarningDeterminantOverflow  Status = 3

	ErrOutOfMemory           Status = -1
	ErrInvalidNumericObject  Status = -3
	ErrInvalidSymbolicObject Status = -4
	ErrArgumentMissing       Status = -5
	ErrNNonpositive          Status = -6
	ErrInvalidMatrix         Status = -8
	ErrDifferentPattern      Status = -11
	ErrInvalidSystem         Status = -13
	ErrInvalidPermutation    Status = -15
	ErrFileIO                Status = -17
	ErrOrderingFailed        Status = -18
	ErrInternal              Status = -911
)

var statusNames = map[Status]string{
	StatusOK:                    "UMFPACK_OK",
	WarningSingularMatrix:       "UMFPACK_WARNING_singular_matrix",
	WarningDeterminantUnderflow: "UMFPACK_WARNING_determinant_underflow",
	WarningDeterminantOverflow:  "UMFPACK_WARNING_determinant_overflow",
	ErrOutOfMemory:              "UMFPACK_ERROR_out_of_memory",
	ErrInvalidNumericObject:     "UMFPACK_ERROR_invalid_Numeric_object",
	ErrInvalidSymbolicObject:    "UMFPACK_ERROR_invalid_Symbolic_object",
	ErrArgumentMissing:          "UMFPACK_ERROR_argument_missing",
	ErrNNonpositive:             "UMFPACK_ERROR_n_nonpositive",
	ErrInvalidMatrix:            "UMFPACK_ERROR_invalid_matrix",
	ErrDifferentPattern:         "UMFPACK_ERROR_different_pattern",
	ErrInvalidSystem:            "UMFPACK_ERROR_invalid_system",
	ErrInvalidPermutation:       "UMFPACK_ERROR_invalid_permutation",
	ErrFileIO:                   "UMFPACK_ERROR_file_IO",
	ErrOrderingFailed:           "UMFPACK_ERROR_ordering_failed",
	ErrInternal:                 "UMFPACK_ERROR_internal_error",
}

// String returns the native symbolic name of the status code.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("UMFPACK_status(%d)", int(s))
}

// OK reports a clean return.
func (s Status) OK() bool { return s == StatusOK }

// Warning reports a successful return with a diagnostic attached.
func (s Status) Warning() bool { return s > 0 }

// Failed reports a hard error.
func (s Status) Failed() bool { return s < 0 }
