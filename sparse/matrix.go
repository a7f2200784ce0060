package sparse

import (
	"fmt"
	"sort"

	"github.com/sparsekit/umfbridge/errors"
	"github.com/sparsekit/umfbridge/native"
)

// Kind selects the compression axis of a Matrix.
type Kind int

const (
	// CSC stores the matrix by columns. Ap has NCol+1 entries and Ai
	// holds row indices. This is the layout the native libraries take.
	CSC Kind = iota
	// CSR stores the matrix by rows. Ap has NRow+1 entries and Ai holds
	// column indices. The driver handles CSR input by factorizing the
	// transpose and flipping the system code.
	CSR
)

func (k Kind) String() string {
	if k == CSR {
		return "csr"
	}
	return "csc"
}

// Matrix is a sparse matrix in compressed form along one axis.
type Matrix[I native.Index] struct {
	Kind       Kind
	NRow, NCol int
	Ap         []I
	Ai         []I
	Ax         []float64
	// Az holds the imaginary parts for complex matrices, nil otherwise.
	Az []float64
}

// major is the number of compressed vectors, minor the index range
// within each vector.
func (m *Matrix[I]) major() int {
	if m.Kind == CSR {
		return m.NRow
	}
	return m.NCol
}

func (m *Matrix[I]) minor() int {
	if m.Kind == CSR {
		return m.NCol
	}
	return m.NRow
}

// NNZ reports the number of stored entries.
func (m *Matrix[I]) NNZ() int {
	if len(m.Ap) == 0 {
		return 0
	}
	return int(m.Ap[len(m.Ap)-1])
}

// Complex reports whether the matrix carries an imaginary part.
func (m *Matrix[I]) Complex() bool { return m.Az != nil }

// Square reports whether the matrix is square.
func (m *Matrix[I]) Square() bool { return m.NRow == m.NCol }

// Validate checks the compressed-form invariants: pointers of length
// major+1 starting at zero and non-decreasing, minor indices in range,
// and value slices covering every entry.
func (m *Matrix[I]) Validate() error {
	if m.NRow <= 0 || m.NCol <= 0 {
		return errors.InvalidInput(errors.PhaseDriver,
			fmt.Sprintf("matrix dimensions %dx%d must be positive", m.NRow, m.NCol))
	}
	if len(m.Ap) != m.major()+1 {
		return errors.BadLength(errors.PhaseDriver, []string{"Ap"}, len(m.Ap), m.major()+1)
	}
	if m.Ap[0] != 0 {
		return errors.InvalidInput(errors.PhaseDriver, "pointers must start at zero")
	}
	for j := 0; j < m.major(); j++ {
		if m.Ap[j+1] < m.Ap[j] {
			return errors.InvalidInput(errors.PhaseDriver,
				fmt.Sprintf("pointers decrease at %s vector %d", m.Kind, j))
		}
	}
	nz := m.NNZ()
	if len(m.Ai) < nz {
		return errors.BadLength(errors.PhaseDriver, []string{"Ai"}, len(m.Ai), nz)
	}
	if len(m.Ax) < nz {
		return errors.BadLength(errors.PhaseDriver, []string{"Ax"}, len(m.Ax), nz)
	}
	if m.Az != nil && len(m.Az) < nz {
		return errors.BadLength(errors.PhaseDriver, []string{"Az"}, len(m.Az), nz)
	}
	for _, r := range m.Ai[:nz] {
		if r < 0 || int(r) >= m.minor() {
			return errors.InvalidInput(errors.PhaseDriver,
				fmt.Sprintf("index %d out of range [0,%d)", r, m.minor()))
		}
	}
	return nil
}

// Sorted reports whether every compressed vector's indices are in
// ascending order with no duplicates.
func (m *Matrix[I]) Sorted() bool {
	for j := 0; j < m.major(); j++ {
		for k := int(m.Ap[j]) + 1; k < int(m.Ap[j+1]); k++ {
			if m.Ai[k] <= m.Ai[k-1] {
				return false
			}
		}
	}
	return true
}

// SortIndices sorts each compressed vector's entries by index in place,
// keeping the values aligned. Duplicates are left as is.
func (m *Matrix[I]) SortIndices() {
	for j := 0; j < m.major(); j++ {
		lo, hi := int(m.Ap[j]), int(m.Ap[j+1])
		sort.Sort(colSorter[I]{m: m, lo: lo, n: hi - lo})
	}
}

type colSorter[I native.Index] struct {
	m  *Matrix[I]
	lo int
	n  int
}

func (s colSorter[I]) Len() int { return s.n }
func (s colSorter[I]) Less(i, j int) bool {
	return s.m.Ai[s.lo+i] < s.m.Ai[s.lo+j]
}
func (s colSorter[I]) Swap(i, j int) {
	a, b := s.lo+i, s.lo+j
	s.m.Ai[a], s.m.Ai[b] = s.m.Ai[b], s.m.Ai[a]
	s.m.Ax[a], s.m.Ax[b] = s.m.Ax[b], s.m.Ax[a]
	if s.m.Az != nil {
		s.m.Az[a], s.m.Az[b] = s.m.Az[b], s.m.Az[a]
	}
}

// Clone returns a deep copy.
func (m *Matrix[I]) Clone() *Matrix[I] {
	out := &Matrix[I]{
		Kind: m.Kind,
		NRow: m.NRow,
		NCol: m.NCol,
		Ap:   append([]I(nil), m.Ap...),
		Ai:   append([]I(nil), m.Ai...),
		Ax:   append([]float64(nil), m.Ax...),
	}
	if m.Az != nil {
		out.Az = append([]float64(nil), m.Az...)
	}
	return out
}

// At returns the entry at (i, j), zero when not stored. Duplicates are
// summed. Intended for tests and small matrices, this scans one
// compressed vector.
func (m *Matrix[I]) At(i, j int) complex128 {
	maj, min := j, i
	if m.Kind == CSR {
		maj, min = i, j
	}
	var v complex128
	for k := int(m.Ap[maj]); k < int(m.Ap[maj+1]); k++ {
		if int(m.Ai[k]) != min {
			continue
		}
		if m.Az != nil {
			v += complex(m.Ax[k], m.Az[k])
		} else {
			v += complex(m.Ax[k], 0)
		}
	}
	return v
}
