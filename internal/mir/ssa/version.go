package ssa

import (
	"fmt"

	"github.com/malphas-lang/malphas-lang/internal/mir"
)

// versioner is the per-pass monotonic rename counter (§4.9). It is a field
// of the transformer instance, never process-wide, so tests that
// re-instantiate the transformer get reproducible names starting from zero.
type versioner struct {
	counter uint64
}

// renameWithVersion sets newVar's name to "<oldName>_<counter>" and
// advances the counter. Called only when newVar is local (neither a global
// nor a parameter): globals and parameters are never renamed away from
// their source name.
func (v *versioner) renameWithVersion(newVar *mir.Var, oldName string) {
	newVar.Name = fmt.Sprintf("%s_%d", oldName, v.counter)
	v.counter++
}
