package native

// Object is a pointer-sized opaque token owned by the native library.
// It represents a symbolic or numeric factorization and carries no
// payload visible to this layer. Zero is the null object.
type Object uintptr

// Index constrains the two supported index widths of the
// compressed-column structure arrays.
type Index interface {
	~int32 | ~int64
}

// Routines is the flat entry-point table of one native family. Real
// families receive nil for every imaginary-part slice (az, xz, bz, ...);
// complex families require them with lengths matching their real
// counterparts. All slices must be contiguous and alive for the whole
// call; the adapters in the marshal package guarantee that.
//
// Every function value may be nil when the backing build omits the
// symbol; dispatch reports that as a configuration error.
type Routines[I Index] struct {
	// Defaults fills control with the library's default parameters.
	Defaults func(control []float64)

	// Symbolic computes the column pre-ordering and symbolic
	// factorization of the pattern (ap, ai) and stores the new opaque
	// object in *slot.
	Symbolic func(nRow, nCol I, ap, ai []I, ax, az []float64, slot *Object, control, info []float64) Status

	// Numeric computes the numeric factorization from values and a live
	// symbolic object, storing the new opaque object in *slot.
	Numeric func(ap, ai []I, ax, az []float64, symbolic Object, slot *Object, control, info []float64) Status

	// Solve solves the system selected by sys for one right-hand side,
	// writing the solution into x (and xz in the complex domain).
	Solve func(sys Sys, ap, ai []I, ax, az, x, xz, b, bz []float64, numeric Object, control, info []float64) Status

	// FreeSymbolic releases the object in *slot and nulls the slot.
	FreeSymbolic func(slot *Object)

	// FreeNumeric releases the object in *slot and nulls the slot.
	FreeNumeric func(slot *Object)

	// GetLunz reports the factor sizes of a numeric object.
	GetLunz func(lnz, unz, nRow, nCol, nzUdiag *I, numeric Object) Status

	// GetNumeric extracts L (row form), U (column form), the
	// permutations, the diagonal of U and the row scale factors from a
	// numeric object. *doRecip reports whether rs holds reciprocal
	// scale factors.
	GetNumeric func(lp, lj []I, lx, lz []float64, up, ui []I, ux, uz []float64,
		p, q []I, dx, dz []float64, doRecip *I, rs []float64, numeric Object) Status

	// Scale applies the row scaling of a numeric object to b, writing
	// the result into x.
	Scale func(x, xz, b, bz []float64, numeric Object) Status

	// Transpose forms R = A' (or A.' when conjugate is false) with
	// optional row/column permutations.
	Transpose func(nRow, nCol I, ap, ai []I, ax, az []float64, p, q []I,
		rp, ri []I, rx, rz []float64, conjugate bool) Status

	// TripletToCol converts triplet form to compressed-column form,
	// summing duplicates. mapping may be nil; when present it receives,
	// per triplet, the destination position in the column form.
	TripletToCol func(nRow, nCol, nz I, ti, tj []I, tx, tz []float64,
		ap, ai []I, ax, az []float64, mapping []I) Status

	// ColToTriplet recovers the column index of each stored entry, the
	// inverse of TripletToCol for the structure.
	ColToTriplet func(n I, ap []I, tj []I) Status

	// Report routines print through the native library at the verbosity
	// in control[ControlPRL].
	ReportControl  func(control []float64)
	ReportInfo     func(control, info []float64)
	ReportSymbolic func(symbolic Object, control []float64) Status
	ReportNumeric  func(numeric Object, control []float64) Status
}

// Library bundles the four entry-point families of one backing build.
// A nil family was not compiled in.
type Library struct {
	DI *Routines[int32] // real, 32-bit indices
	DL *Routines[int64] // real, 64-bit indices
	ZI *Routines[int32] // complex, 32-bit indices
	ZL *Routines[int64] // complex, 64-bit indices

	// Name identifies the backing build in logs ("reflu", "cgo", "wasm").
	Name string
}
