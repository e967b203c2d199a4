package orbit

import (
	"fmt"
	"strings"

	"github.com/squorange/focus-tools-sub000/internal/model"
)

// BeltState says whether and how the belt is drawn.
type BeltState int

const (
	// BeltNone means there is no belt to draw: it was never set up, or
	// every subtask it was captured with has been deleted.
	BeltNone BeltState = iota
	// BeltCelebrating means every remaining target subtask is completed.
	BeltCelebrating
	// BeltRinged means the belt sits at Belt.Ring (always >= 2).
	BeltRinged
)

func (s BeltState) String() string {
	switch s {
	case BeltCelebrating:
		return "celebrating"
	case BeltRinged:
		return "ring"
	default:
		return "none"
	}
}

// MarshalText encodes the state by name.
func (s BeltState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Belt is the located belt of a task. Ring is only meaningful when State is BeltRinged.
type Belt struct {
	State BeltState `json:"state"`
	Ring  int       `json:"ring"`
}

// RingOrZero collapses the tri-state into the single ring number used by
// callers that only care about "where to draw": 0 for none or celebration.
func (b Belt) RingOrZero() int {
	if b.State != BeltRinged {
		return 0
	}
	return b.Ring
}

// LocateBelt works out where the belt currently sits.
//
// The belt is anchored to the last target subtask in stacking order, so it
// moves inward as prioritized subtasks complete without ever absorbing
// subtasks that were outside the original target set.
func LocateBelt(subtasks []model.Subtask, beltRing *int, targetIDs []string) Belt {
	if beltRing == nil || len(targetIDs) == 0 {
		return Belt{State: BeltNone}
	}
	targets := make(map[string]struct{}, len(targetIDs))
	for _, id := range targetIDs {
		targets[id] = struct{}{}
	}

	last := -1
	anyActive := false
	for i, st := range subtasks {
		if _, ok := targets[st.ID]; !ok {
			continue
		}
		last = i
		if !st.Completed {
			anyActive = true
		}
	}
	if last < 0 {
		return Belt{State: BeltNone}
	}
	if !anyActive {
		return Belt{State: BeltCelebrating, Ring: 0}
	}

	active := 0
	for _, st := range subtasks[:last+1] {
		if !st.Completed {
			active++
		}
	}
	return Belt{State: BeltRinged, Ring: active + 1}
}

// CurrentBeltRing is LocateBelt reduced to a ring number (0 = none or celebration).
func CurrentBeltRing(subtasks []model.Subtask, beltRing *int, targetIDs []string) int {
	return LocateBelt(subtasks, beltRing, targetIDs).RingOrZero()
}

// Direction is a manual belt move, one ring at a time.
type Direction int

const (
	Inward Direction = iota
	Outward
)

func (d Direction) String() string {
	if d == Outward {
		return "outward"
	}
	return "inward"
}

// ParseDirection accepts inward/in and outward/out, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inward", "in":
		return Inward, nil
	case "outward", "out":
		return Outward, nil
	default:
		return Inward, fmt.Errorf("invalid direction: %q (expected inward|outward)", s)
	}
}

// MoveBelt shifts the belt one ring and recaptures its targets as the
// active subtasks that end up inside it. The result is clamped to the legal
// range [2, active+1].
func MoveBelt(subtasks []model.Subtask, currentRing int, dir Direction) (int, []string) {
	maxRing := ActiveCount(subtasks) + 1
	if maxRing < 2 {
		maxRing = 2
	}

	ring := currentRing
	switch dir {
	case Inward:
		ring = max(2, currentRing-1)
	case Outward:
		ring = min(maxRing, currentRing+1)
	}
	ring = min(max(ring, 2), maxRing)

	return ring, firstActiveIDs(subtasks, ring-1)
}

// CreateBelt puts a new belt around every active subtask. With nothing
// active there is nothing to prioritize and (0, nil) is returned.
func CreateBelt(subtasks []model.Subtask) (int, []string) {
	active := ActiveCount(subtasks)
	if active == 0 {
		return 0, nil
	}
	return active + 1, firstActiveIDs(subtasks, active)
}

func firstActiveIDs(subtasks []model.Subtask, n int) []string {
	out := make([]string, 0, max(n, 0))
	for _, st := range subtasks {
		if len(out) >= n {
			break
		}
		if st.Completed {
			continue
		}
		out = append(out, st.ID)
	}
	return out
}
