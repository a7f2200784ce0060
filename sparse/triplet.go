package sparse

import (
	"fmt"
	"sort"

	"github.com/sparsekit/umfbridge/errors"
	"github.com/sparsekit/umfbridge/native"
)

// Triplet accumulates matrix entries in coordinate form. Entries may
// arrive in any order and duplicates are summed during compression.
type Triplet[I native.Index] struct {
	NRow, NCol int
	Rows, Cols []I
	Vals       []float64
	// Imag holds imaginary parts, nil for real matrices. Once an entry
	// with a nonzero imaginary part is appended the triplet is complex.
	Imag []float64
}

// NewTriplet returns an empty builder for an nRow by nCol matrix.
func NewTriplet[I native.Index](nRow, nCol int) *Triplet[I] {
	return &Triplet[I]{NRow: nRow, NCol: nCol}
}

// Append adds one real entry.
func (t *Triplet[I]) Append(i, j I, v float64) {
	t.Rows = append(t.Rows, i)
	t.Cols = append(t.Cols, j)
	t.Vals = append(t.Vals, v)
	if t.Imag != nil {
		t.Imag = append(t.Imag, 0)
	}
}

// AppendComplex adds one complex entry, promoting the triplet to the
// complex domain on first use.
func (t *Triplet[I]) AppendComplex(i, j I, v complex128) {
	if t.Imag == nil {
		t.Imag = make([]float64, len(t.Vals))
	}
	t.Rows = append(t.Rows, i)
	t.Cols = append(t.Cols, j)
	t.Vals = append(t.Vals, real(v))
	t.Imag = append(t.Imag, imag(v))
}

// NNZ reports the number of appended entries, duplicates included.
func (t *Triplet[I]) NNZ() int { return len(t.Vals) }

// Compress converts the triplet to compressed column form. Entries in
// the same position are summed and each column's rows come out sorted.
func (t *Triplet[I]) Compress() (*Matrix[I], error) {
	if t.NRow <= 0 || t.NCol <= 0 {
		return nil, errors.InvalidInput(errors.PhaseDriver,
			fmt.Sprintf("triplet dimensions %dx%d must be positive", t.NRow, t.NCol))
	}
	nz := len(t.Vals)
	if len(t.Rows) != nz || len(t.Cols) != nz || (t.Imag != nil && len(t.Imag) != nz) {
		return nil, errors.InvalidInput(errors.PhaseDriver, "triplet slices have unequal lengths")
	}
	for k := 0; k < nz; k++ {
		if t.Rows[k] < 0 || int(t.Rows[k]) >= t.NRow || t.Cols[k] < 0 || int(t.Cols[k]) >= t.NCol {
			return nil, errors.InvalidInput(errors.PhaseDriver,
				fmt.Sprintf("entry %d at (%d,%d) out of range", k, t.Rows[k], t.Cols[k]))
		}
	}

	order := make([]int, nz)
	for k := range order {
		order[k] = k
	}
	sort.Slice(order, func(a, b int) bool {
		ka, kb := order[a], order[b]
		if t.Cols[ka] != t.Cols[kb] {
			return t.Cols[ka] < t.Cols[kb]
		}
		return t.Rows[ka] < t.Rows[kb]
	})

	m := &Matrix[I]{
		NRow: t.NRow,
		NCol: t.NCol,
		Ap:   make([]I, t.NCol+1),
	}
	if t.Imag != nil {
		m.Az = []float64{}
	}
	col := 0
	for _, k := range order {
		c, r := int(t.Cols[k]), t.Rows[k]
		for col < c {
			col++
			m.Ap[col] = I(len(m.Ai))
		}
		last := len(m.Ai) - 1
		if last >= int(m.Ap[col]) && m.Ai[last] == r {
			m.Ax[last] += t.Vals[k]
			if t.Imag != nil {
				m.Az[last] += t.Imag[k]
			}
			continue
		}
		m.Ai = append(m.Ai, r)
		m.Ax = append(m.Ax, t.Vals[k])
		if t.Imag != nil {
			m.Az = append(m.Az, t.Imag[k])
		}
	}
	for col < t.NCol {
		col++
		m.Ap[col] = I(len(m.Ai))
	}
	return m, nil
}
