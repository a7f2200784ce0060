package umf

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sparsekit/umfbridge/dispatch"
	"github.com/sparsekit/umfbridge/errors"
	"github.com/sparsekit/umfbridge/handle"
	"github.com/sparsekit/umfbridge/native"
	"github.com/sparsekit/umfbridge/sparse"
)

// Context drives one matrix through symbolic and numeric factorization
// and solves against the factors. Not safe for concurrent use.
type Context[I native.Index] struct {
	cfg   config
	table *handle.Table

	control []float64
	info    []float64

	symbolic *handle.Handle
	numeric  *handle.Handle
	// family of the current factors, meaningful while a factor is live
	family dispatch.Family
}

// New returns a Context with library defaults loaded into the control
// vector.
func New[I native.Index](opts ...Option) *Context[I] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	c := &Context[I]{
		cfg:     cfg,
		table:   handle.NewTable(),
		control: make([]float64, native.ControlLen),
		info:    make([]float64, native.InfoLen),
	}
	if rt, _, err := routinesFor[I](cfg.lib, false); err == nil && rt.Defaults != nil {
		rt.Defaults(c.control)
	} else if rt, _, err := routinesFor[I](cfg.lib, true); err == nil && rt.Defaults != nil {
		rt.Defaults(c.control)
	}
	return c
}

// routinesFor resolves the routine family for the index type parameter
// and the value domain.
func routinesFor[I native.Index](lib *native.Library, cplx bool) (*native.Routines[I], dispatch.Family, error) {
	var (
		fam dispatch.Family
		r   any
	)
	switch any(I(0)).(type) {
	case int32:
		if cplx {
			fam, r = dispatch.ZI, lib.ZI
		} else {
			fam, r = dispatch.DI, lib.DI
		}
	default:
		if cplx {
			fam, r = dispatch.ZL, lib.ZL
		} else {
			fam, r = dispatch.DL, lib.DL
		}
	}
	rt, _ := r.(*native.Routines[I])
	if rt == nil {
		return nil, fam, errors.NoVariant(fam.String())
	}
	return rt, fam, nil
}

// Control returns the live control vector. Mutations take effect on the
// next native call.
func (c *Context[I]) Control() []float64 { return c.control }

// Info returns the info vector from the most recent native call.
func (c *Context[I]) Info() []float64 { return c.info }

// Library returns the backend in use.
func (c *Context[I]) Library() *native.Library { return c.cfg.lib }

// Table returns the handle table tracking live factorizations.
func (c *Context[I]) Table() *handle.Table { return c.table }

// Family returns the routine family of the current factors.
func (c *Context[I]) Family() dispatch.Family { return c.family }

// prepare validates the matrix and normalizes it for the native call:
// the compressed arrays, effective dimensions and the system-code
// mapping implied by the storage orientation.
func (c *Context[I]) prepare(m *sparse.Matrix[I]) (nRow, nCol int, flip bool, err error) {
	if m == nil {
		return 0, 0, false, errors.InvalidInput(errors.PhaseDriver, "nil matrix")
	}
	if err := m.Validate(); err != nil {
		return 0, 0, false, err
	}
	nRow, nCol = m.NRow, m.NCol
	if m.Kind == sparse.CSR {
		if m.Complex() {
			return 0, 0, false, errors.InvalidInput(errors.PhaseDriver,
				"complex matrices must be column-compressed")
		}
		if !c.cfg.autoT {
			return 0, 0, false, errors.InvalidInput(errors.PhaseDriver,
				"row-compressed matrix with auto-transpose disabled")
		}
		// A CSR matrix read column-wise is the transpose: factor that
		// and flip the system code at solve time.
		nRow, nCol = m.NCol, m.NRow
		flip = true
	}
	if !c.cfg.assumeSorted && !m.Sorted() {
		m.SortIndices()
	}
	return nRow, nCol, flip, nil
}

// Symbolic computes the symbolic factorization, replacing any previous
// one.
func (c *Context[I]) Symbolic(m *sparse.Matrix[I]) error {
	nRow, nCol, _, err := c.prepare(m)
	if err != nil {
		return err
	}
	rt, fam, err := routinesFor[I](c.cfg.lib, m.Complex())
	if err != nil {
		return err
	}
	// A numeric factor computed against the previous symbolic object
	// would be stale, drop both.
	if err := c.FreeNumeric(); err != nil {
		return err
	}
	if err := c.FreeSymbolic(); err != nil {
		return err
	}
	c.family = fam

	slot := handle.NewSlot(handle.Symbolic)
	st := rt.Symbolic(I(nRow), I(nCol), m.Ap, m.Ai, m.Ax, m.Az, slot.Ptr(), c.control, c.info)
	if st.Failed() {
		return errors.Status(opName(fam, "symbolic"), int(st), st.String())
	}
	_, h := slot.Finish(nil)
	c.symbolic = h
	c.table.Track(h)
	c.cfg.log.Debug("symbolic factorization complete",
		zap.String("family", fam.String()),
		zap.Int("nrow", nRow), zap.Int("ncol", nCol), zap.Int("nnz", m.NNZ()))
	return nil
}

// Numeric computes the numeric factorization, computing the symbolic
// one first when missing. A symbolic object invalidated by a pattern
// change is recomputed once and the factorization retried.
func (c *Context[I]) Numeric(m *sparse.Matrix[I]) error {
	if _, _, _, err := c.prepare(m); err != nil {
		return err
	}
	rt, fam, err := routinesFor[I](c.cfg.lib, m.Complex())
	if err != nil {
		return err
	}
	if c.symbolic == nil || !c.symbolic.Live() || fam != c.family {
		if err := c.Symbolic(m); err != nil {
			return err
		}
	}
	if err := c.FreeNumeric(); err != nil {
		return err
	}

	st := c.callNumeric(rt, m)
	if st == native.ErrDifferentPattern || st == native.ErrInvalidSymbolicObject {
		c.cfg.log.Debug("symbolic object stale, refactorizing",
			zap.String("status", st.String()))
		if err := c.Symbolic(m); err != nil {
			return err
		}
		st = c.callNumeric(rt, m)
	}
	if st.Failed() {
		return errors.Status(opName(fam, "numeric"), int(st), st.String())
	}
	if st == native.WarningSingularMatrix {
		c.cfg.log.Warn("singular matrix",
			zap.Float64("rcond", c.info[native.InfoRCond]))
	}
	return nil
}

func (c *Context[I]) callNumeric(rt *native.Routines[I], m *sparse.Matrix[I]) native.Status {
	slot := handle.NewSlot(handle.Numeric)
	st := rt.Numeric(m.Ap, m.Ai, m.Ax, m.Az, c.symbolic.Object(), slot.Ptr(), c.control, c.info)
	if st.Failed() {
		return st
	}
	_, h := slot.Finish(nil)
	c.numeric = h
	c.table.Track(h)
	return st
}

// FreeSymbolic releases the symbolic factorization. Freeing twice, or
// with none present, is a no-op.
func (c *Context[I]) FreeSymbolic() error {
	return c.freeFactor(&c.symbolic, handle.Symbolic)
}

// FreeNumeric releases the numeric factorization. Freeing twice, or
// with none present, is a no-op.
func (c *Context[I]) FreeNumeric() error {
	return c.freeFactor(&c.numeric, handle.Numeric)
}

// Free releases both factorizations.
func (c *Context[I]) Free() error {
	if err := c.FreeNumeric(); err != nil {
		return err
	}
	return c.FreeSymbolic()
}

func (c *Context[I]) freeFactor(hp **handle.Handle, kind handle.Kind) error {
	h := *hp
	if h == nil || !h.Live() {
		*hp = nil
		return nil
	}
	rt, fam, err := routinesFor[I](c.cfg.lib, c.family.Complex())
	if err != nil {
		return err
	}
	cons, err := handle.Consume(h, kind)
	if err != nil {
		return err
	}
	if kind == handle.Symbolic {
		rt.FreeSymbolic(cons.Ptr())
	} else {
		rt.FreeNumeric(cons.Ptr())
	}
	cons.Finish(nil)
	if h.Live() {
		return errors.HandleState(fmt.Sprintf("%s free left the handle live", fam))
	}
	c.table.Release(h)
	*hp = nil
	return nil
}

func opName(f dispatch.Family, op string) string {
	return fmt.Sprintf("umfpack_%s_%s", f, op)
}

// Family is re-exported for callers that only import this package.
type Family = dispatch.Family

// The four routine families, re-exported alongside Family.
const (
	DI = dispatch.DI
	DL = dispatch.DL
	ZI = dispatch.ZI
	ZL = dispatch.ZL
)
