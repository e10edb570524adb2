package model

import "time"

type Chore struct {
	ID          int64      `json:"chore_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedBy   int64      `json:"created_by"`
	AssignedTo  *int64     `json:"assigned_to"`
	DueDate     *time.Time `json:"due_date"`
	Points      int        `json:"points"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ChoreWithAssignee is a Chore joined with the assignee's display name,
// as returned by the owner listing. AssignedToName is nil when the chore
// is unassigned.
type ChoreWithAssignee struct {
	Chore
	AssignedToName *string `json:"assigned_to_name"`
}

type CompletedChore struct {
	ID          int64     `json:"completed_id"`
	ChoreID     int64     `json:"chore_id"`
	CompletedBy int64     `json:"completed_by"`
	ApprovedBy  int64     `json:"approved_by"`
	Notes       string    `json:"notes"`
	CompletedAt time.Time `json:"completed_at"`
}
