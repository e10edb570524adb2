package chore

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a recognized chore status. Any valid
// status may be set directly via update, so completing and re-opening
// need no further transition check.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}
