package model

import "time"

type Subtask struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	// AssignedAngle is set once, when the subtask is created, and never recomputed.
	AssignedAngle *float64 `json:"assignedAngle,omitempty"`
	// AssignedRadius is recomputed for active subtasks and frozen on completion.
	AssignedRadius *float64 `json:"assignedRadius,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// Subtasks are kept in stacking order. The order itself is meaningful.
	Subtasks []Subtask `json:"subtasks"`

	BeltEnabled bool `json:"beltEnabled"`
	// BeltRing 0 is the celebration state; ring 1 is never a belt position.
	BeltRing *int `json:"beltRing,omitempty"`
	// BeltTargetIDs is captured on belt creation or manual move only.
	BeltTargetIDs []string `json:"beltTargetIds,omitempty"`

	// Version is owned by the store (optimistic concurrency).
	Version int64 `json:"version"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FindSubtask returns the stored-order index of the subtask with id, or -1.
func (t Task) FindSubtask(id string) int {
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == id {
			return i
		}
	}
	return -1
}

type Event struct {
	ID       string    `json:"id"`
	TS       time.Time `json:"ts"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Payload  any       `json:"payload"`
}

func Float(v float64) *float64 { return &v }

func Int(v int) *int { return &v }
