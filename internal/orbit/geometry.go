package orbit

import "errors"

// Default layout constants, in pixels.
const (
	DefaultMinRadius         = 100.0
	DefaultRingSpacing       = 48.0
	DefaultBeltBuffer        = 12.0
	DefaultCelebrationRadius = 56.0

	// TopAngle is where the first subtask of an empty orbit is placed.
	TopAngle = -90.0
)

// Geometry holds the pixel constants used to turn ring positions into radii.
type Geometry struct {
	MinRadius         float64 `json:"minRadius"`
	RingSpacing       float64 `json:"ringSpacing"`
	BeltBuffer        float64 `json:"beltBuffer"`
	CelebrationRadius float64 `json:"celebrationRadius"`
}

// DefaultGeometry is the stock ring layout.
func DefaultGeometry() Geometry {
	return Geometry{
		MinRadius:         DefaultMinRadius,
		RingSpacing:       DefaultRingSpacing,
		BeltBuffer:        DefaultBeltBuffer,
		CelebrationRadius: DefaultCelebrationRadius,
	}
}

// Validate rejects non-positive radii and spacing and a negative belt buffer.
func (g Geometry) Validate() error {
	if g.MinRadius <= 0 {
		return errors.New("layout: min radius must be positive")
	}
	if g.RingSpacing <= 0 {
		return errors.New("layout: ring spacing must be positive")
	}
	if g.BeltBuffer < 0 {
		return errors.New("layout: belt buffer must not be negative")
	}
	if g.CelebrationRadius <= 0 {
		return errors.New("layout: celebration radius must be positive")
	}
	return nil
}
