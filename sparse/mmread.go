package sparse

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sparsekit/umfbridge/errors"
	"github.com/sparsekit/umfbridge/native"
)

// Matrix Market field and symmetry qualifiers, lowercased as they
// appear in the banner line.
const (
	mmFieldReal    = "real"
	mmFieldComplex = "complex"
	mmFieldInteger = "integer"
	mmFieldPattern = "pattern"

	mmSymGeneral   = "general"
	mmSymSymmetric = "symmetric"
	mmSymSkew      = "skew-symmetric"
	mmSymHermitian = "hermitian"
)

// ReadMatrixMarket parses a sparse matrix in Matrix Market coordinate
// format. Symmetric, skew-symmetric and hermitian storage is expanded
// to general form. Pattern matrices get unit values.
func ReadMatrixMarket[I native.Index](r io.Reader) (*Matrix[I], error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !sc.Scan() {
		return nil, errors.InvalidInput(errors.PhaseDriver, "empty matrix market stream")
	}
	banner := strings.Fields(strings.ToLower(sc.Text()))
	if len(banner) != 5 || banner[0] != "%%matrixmarket" || banner[1] != "matrix" {
		return nil, errors.InvalidInput(errors.PhaseDriver, "missing %%MatrixMarket banner")
	}
	format, field, sym := banner[2], banner[3], banner[4]
	if format != "coordinate" {
		return nil, errors.InvalidInput(errors.PhaseDriver,
			fmt.Sprintf("unsupported matrix market format %q", format))
	}
	switch field {
	case mmFieldReal, mmFieldComplex, mmFieldInteger, mmFieldPattern:
	default:
		return nil, errors.InvalidInput(errors.PhaseDriver,
			fmt.Sprintf("unsupported matrix market field %q", field))
	}
	switch sym {
	case mmSymGeneral, mmSymSymmetric, mmSymSkew, mmSymHermitian:
	default:
		return nil, errors.InvalidInput(errors.PhaseDriver,
			fmt.Sprintf("unsupported matrix market symmetry %q", sym))
	}

	var nRow, nCol, nz int
	sized := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 3 {
			return nil, errors.InvalidInput(errors.PhaseDriver,
				fmt.Sprintf("malformed size line %q", line))
		}
		var err error
		if nRow, err = strconv.Atoi(parts[0]); err == nil {
			if nCol, err = strconv.Atoi(parts[1]); err == nil {
				nz, err = strconv.Atoi(parts[2])
			}
		}
		if err != nil {
			return nil, errors.Wrap(errors.PhaseDriver, errors.KindInvalidInput, err, "parsing size line")
		}
		sized = true
		break
	}
	if !sized {
		return nil, errors.InvalidInput(errors.PhaseDriver, "missing size line")
	}

	t := NewTriplet[I](nRow, nCol)
	read := 0
	for read < nz && sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		parts := strings.Fields(line)
		i, j, v, err := mmEntry(parts, field)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseDriver, errors.KindInvalidInput, err,
				fmt.Sprintf("entry %d", read+1))
		}
		if i < 1 || i > nRow || j < 1 || j > nCol {
			return nil, errors.InvalidInput(errors.PhaseDriver,
				fmt.Sprintf("entry %d at (%d,%d) out of range", read+1, i, j))
		}
		appendEntry(t, field, I(i-1), I(j-1), v)
		if i != j {
			switch sym {
			case mmSymSymmetric:
				appendEntry(t, field, I(j-1), I(i-1), v)
			case mmSymSkew:
				appendEntry(t, field, I(j-1), I(i-1), -v)
			case mmSymHermitian:
				appendEntry(t, field, I(j-1), I(i-1), complex(real(v), -imag(v)))
			}
		}
		read++
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.PhaseDriver, errors.KindInvalidInput, err, "reading matrix market stream")
	}
	if read < nz {
		return nil, errors.InvalidInput(errors.PhaseDriver,
			fmt.Sprintf("expected %d entries, got %d", nz, read))
	}
	return t.Compress()
}

func appendEntry[I native.Index](t *Triplet[I], field string, i, j I, v complex128) {
	if field == mmFieldComplex {
		t.AppendComplex(i, j, v)
		return
	}
	t.Append(i, j, real(v))
}

func mmEntry(parts []string, field string) (i, j int, v complex128, err error) {
	want := 3
	switch field {
	case mmFieldPattern:
		want = 2
	case mmFieldComplex:
		want = 4
	}
	if len(parts) != want {
		return 0, 0, 0, fmt.Errorf("expected %d fields, got %d", want, len(parts))
	}
	if i, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, err
	}
	if j, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, err
	}
	switch field {
	case mmFieldPattern:
		v = 1
	case mmFieldComplex:
		var re, im float64
		if re, err = strconv.ParseFloat(parts[2], 64); err != nil {
			return 0, 0, 0, err
		}
		if im, err = strconv.ParseFloat(parts[3], 64); err != nil {
			return 0, 0, 0, err
		}
		v = complex(re, im)
	default:
		var re float64
		if re, err = strconv.ParseFloat(parts[2], 64); err != nil {
			return 0, 0, 0, err
		}
		v = complex(re, 0)
	}
	return i, j, v, nil
}

// ReadMatrixMarketFile reads a Matrix Market file from disk.
func ReadMatrixMarketFile[I native.Index](path string) (*Matrix[I], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDriver, errors.KindInvalidInput, err, "opening matrix file")
	}
	defer f.Close()
	return ReadMatrixMarket[I](f)
}
