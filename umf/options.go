package umf

import (
	"go.uber.org/zap"

	"github.com/sparsekit/umfbridge/native"
)

type config struct {
	lib          *native.Library
	log          *zap.Logger
	maxCond      float64
	autoT        bool
	assumeSorted bool
}

// Option configures a Context.
type Option func(*config)

func defaultConfig() config {
	return config{
		lib:     DefaultLibrary(),
		log:     zap.NewNop(),
		maxCond: 1e12,
		autoT:   true,
	}
}

// WithLibrary selects the native backend. The default is the linked
// UMFPACK when built with the umfpack tag, the reference backend
// otherwise.
func WithLibrary(lib *native.Library) Option {
	return func(c *config) { c.lib = lib }
}

// WithLogger sets the structured logger. The default discards.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// WithMaxCond sets the estimated condition number above which solves
// log a nearly-singular warning. The default is 1e12.
func WithMaxCond(maxCond float64) Option {
	return func(c *config) { c.maxCond = maxCond }
}

// WithAutoTranspose controls whether row-compressed matrices are
// handled by factorizing the transpose and flipping the system code.
// Enabled by default; complex matrices never auto-transpose.
func WithAutoTranspose(enabled bool) Option {
	return func(c *config) { c.autoT = enabled }
}

// WithAssumeSortedIndices skips the per-vector index sort before
// factorization. Only safe when every compressed vector is already
// sorted; the native library rejects unsorted input.
func WithAssumeSortedIndices(assume bool) Option {
	return func(c *config) { c.assumeSorted = assume }
}
