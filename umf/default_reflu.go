//go:build !umfpack

package umf

import (
	"github.com/sparsekit/umfbridge/native"
	"github.com/sparsekit/umfbridge/native/reflu"
)

// DefaultLibrary returns the pure Go reference backend. Build with the
// umfpack tag to link the native library instead.
func DefaultLibrary() *native.Library { return reflu.Library() }
