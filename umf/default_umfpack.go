//go:build umfpack

package umf

import (
	"github.com/sparsekit/umfbridge/native"
	"github.com/sparsekit/umfbridge/native/umfcgo"
)

// DefaultLibrary returns the linked UMFPACK.
func DefaultLibrary() *native.Library { return umfcgo.Library() }
