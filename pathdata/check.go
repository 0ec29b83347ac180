package pathdata

import (
	"errors"
	"fmt"

	"github.com/bartlomiejwolk/animationpath"
)

// Check verifies every invariant between object path, rotation path, tool
// records and tool curves. It returns all violations found, each wrapping
// ErrInconsistent. Check never panics.
func (pd *PathData) Check() error {
	var errs []error
	violated := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInconsistent, fmt.Sprintf(format, args...)))
	}
	n := pd.NodesNo()
	if len(pd.tools) != n {
		violated("%d tool records for %d nodes", len(pd.tools), n)
		return errors.Join(errs...)
	}
	for _, tl := range allTools {
		if n > 0 && (!pd.tools[0].enabled(tl) || !pd.tools[n-1].enabled(tl)) {
			violated("%s tool disabled at an endpoint", tl)
		}
		ts, keys := pd.toolTimestamps(tl), pd.curve(tl).Times()
		if !timesEqual(ts, keys) {
			violated("%s keys at %v, enabled nodes at %v", tl, keys, ts)
		}
	}
	if pd.cfg.SyncRotationPath {
		ts, rot := pd.objectPath.Timestamps(), pd.rotationPath.Timestamps()
		if !timesEqual(ts, rot) {
			violated("rotation nodes at %v, path nodes at %v", rot, ts)
		}
	}
	return errors.Join(errs...)
}

func timesEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !animationpath.FloatsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
