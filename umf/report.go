package umf

import (
	"fmt"
	"strings"

	"github.com/sparsekit/umfbridge/native"
)

// Named control and info entries, indexed into the native vectors.
var controlNames = []struct {
	idx  int
	name string
}{
	{native.ControlPRL, "print level"},
	{native.ControlDenseRow, "dense row threshold"},
	{native.ControlDenseCol, "dense column threshold"},
	{native.ControlPivotTolerance, "pivot tolerance"},
	{native.ControlBlockSize, "block size"},
	{native.ControlStrategy, "strategy"},
	{native.ControlAllocInit, "initial allocation"},
	{native.ControlIRStep, "iterative refinement steps"},
	{native.ControlScale, "scaling"},
	{native.ControlDropTol, "drop tolerance"},
	{native.ControlAggressive, "aggressive absorption"},
}

var infoNames = []struct {
	idx  int
	name string
}{
	{native.InfoStatus, "status"},
	{native.InfoNRow, "rows"},
	{native.InfoNCol, "columns"},
	{native.InfoNZ, "entries"},
	{native.InfoLNZ, "nonzeros in L"},
	{native.InfoUNZ, "nonzeros in U"},
	{native.InfoRCond, "reciprocal condition estimate"},
}

// Entry is one named vector element.
type Entry struct {
	Index int
	Name  string
	Value float64
}

// ControlEntries returns the named control parameters with their
// current values.
func (c *Context[I]) ControlEntries() []Entry {
	out := make([]Entry, len(controlNames))
	for i, e := range controlNames {
		out[i] = Entry{Index: e.idx, Name: e.name, Value: c.control[e.idx]}
	}
	return out
}

// InfoEntries returns the named info elements from the last native
// call.
func (c *Context[I]) InfoEntries() []Entry {
	out := make([]Entry, len(infoNames))
	for i, e := range infoNames {
		out[i] = Entry{Index: e.idx, Name: e.name, Value: c.info[e.idx]}
	}
	return out
}

// ControlString renders the named control parameters.
func (c *Context[I]) ControlString() string {
	var b strings.Builder
	for _, e := range controlNames {
		fmt.Fprintf(&b, "%-28s Control[%2d] = %g\n", e.name, e.idx, c.control[e.idx])
	}
	return b.String()
}

// InfoString renders the named info entries from the last native call.
func (c *Context[I]) InfoString() string {
	var b strings.Builder
	for _, e := range infoNames {
		fmt.Fprintf(&b, "%-32s Info[%2d] = %g\n", e.name, e.idx, c.info[e.idx])
	}
	return b.String()
}

// RCond returns the reciprocal condition estimate of the last
// factorization.
func (c *Context[I]) RCond() float64 { return c.info[native.InfoRCond] }

// LastStatus returns the status of the last native call.
func (c *Context[I]) LastStatus() native.Status {
	return native.Status(c.info[native.InfoStatus])
}
