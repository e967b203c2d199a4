package orbit

import (
	"math"
	"sort"

	"github.com/squorange/focus-tools-sub000/internal/model"
)

// NextAngle returns the angle for a subtask about to be appended.
//
// Only active subtasks that already carry an angle are considered. The new
// angle is the midpoint of the largest gap between them (the first one in
// ascending order wins ties).
func NextAngle(subtasks []model.Subtask) float64 {
	angles := make([]float64, 0, len(subtasks))
	for _, st := range subtasks {
		if st.Completed || st.AssignedAngle == nil {
			continue
		}
		angles = append(angles, normalize360(*st.AssignedAngle))
	}

	switch len(angles) {
	case 0:
		return TopAngle
	case 1:
		return normalize360(angles[0] + 180)
	}

	sort.Float64s(angles)

	bestGap := -1.0
	bestMid := 0.0
	for i := 0; i < len(angles); i++ {
		from := angles[i]
		var to float64
		if i+1 < len(angles) {
			to = angles[i+1]
		} else {
			// Wrap across the 0/360 boundary.
			to = angles[0] + 360
		}
		gap := to - from
		if gap > bestGap {
			bestGap = gap
			bestMid = from + gap/2
		}
	}
	return normalize180(bestMid)
}

// DefaultAngleForIndex spreads total subtasks evenly, starting at the top.
func DefaultAngleForIndex(index, total int) float64 {
	if total <= 0 {
		return TopAngle
	}
	return (360/float64(total))*float64(index) + TopAngle
}

// normalize360 maps degrees into [0, 360).
func normalize360(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// normalize180 maps degrees into (-180, 180].
func normalize180(deg float64) float64 {
	d := normalize360(deg)
	if d > 180 {
		d -= 360
	}
	return d
}
