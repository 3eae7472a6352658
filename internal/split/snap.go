// pattern: Functional Core

package split

import "math"

// TrySnap pulls position onto the first snap point whose target
// (fraction × maxExtent) lies strictly within snapRange of it.
// It returns the position unchanged and false when no point attracts it.
func TrySnap(position, maxExtent float64, snapPoints []float64, snapRange float64) (float64, bool) {
	for _, f := range snapPoints {
		target := f * maxExtent
		if math.Abs(position-target) < snapRange {
			return target, true
		}
	}
	return position, false
}
