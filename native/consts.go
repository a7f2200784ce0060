package native

// Fixed lengths of the parameter and diagnostic vectors. Every control
// argument is exactly ControlLen doubles and every info argument exactly
// InfoLen doubles; other lengths are caller errors.
const (
	ControlLen = 20
	InfoLen    = 90
)

// Control vector indices used by this layer. The remaining entries are
// meaningful only to the native library and pass through untouched.
const (
	ControlPRL            = 0 // report verbosity
	ControlDenseRow       = 1
	ControlDenseCol       = 2
	ControlPivotTolerance = 3
	ControlBlockSize      = 4
	ControlStrategy       = 5
	ControlAllocInit      = 6
	ControlIRStep         = 7
	ControlScale          = 16
	ControlDropTol        = 18
	ControlAggressive     = 19
)

// Info vector indices used by this layer.
const (
	InfoStatus = 0
	InfoNRow   = 1
	InfoNZ     = 2
	InfoNCol   = 16
	InfoLNZ    = 43
	InfoUNZ    = 44
	InfoRCond  = 64
)

// Scaling strategies stored at Control[ControlScale].
const (
	ScaleNone = 0
	ScaleSum  = 1
	ScaleMax  = 2
)

// Sys selects which system a solve call addresses, e.g. Ax=b versus
// A'x=b or a triangular sweep against one factor.
type Sys int

const (
	SysA    Sys = 0  // Ax=b
	SysAt   Sys = 1  // A'x=b (conjugate transpose in the complex domain)
	SysAat  Sys = 2  // A.'x=b (array transpose)
	SysPtL  Sys = 3  // P'Lx=b
	SysL    Sys = 4  // Lx=b
	SysLtP  Sys = 5  // L'Px=b
	SysLatP Sys = 6  // L.'Px=b
	SysLt   Sys = 7  // L'x=b
	SysLat  Sys = 8  // L.'x=b
	SysUQt  Sys = 9  // UQ'x=b
	SysU    Sys = 10 // Ux=b
	SysQUt  Sys = 11 // QU'x=b
	SysQUat Sys = 12 // QU.'x=b
	SysUt   Sys = 13 // U'x=b
	SysUat  Sys = 14 // U.'x=b
)

// Valid reports whether s is one of the declared system codes.
func (s Sys) Valid() bool {
	return s >= SysA && s <= SysUat
}
