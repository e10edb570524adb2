package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/choretrack/internal/database"
	"github.com/dukerupert/choretrack/internal/model"
)

type ChoreStore struct {
	db *database.DB
}

func NewChoreStore(db *database.DB) *ChoreStore {
	return &ChoreStore{db: db}
}

func scanChore(scanner interface{ Scan(...any) error }) (*model.Chore, error) {
	var c model.Chore
	var assignedTo sql.NullInt64
	var dueDate sql.NullTime

	err := scanner.Scan(
		&c.ID, &c.Title, &c.Description, &c.CreatedBy, &assignedTo,
		&dueDate, &c.Points, &c.Status, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if assignedTo.Valid {
		c.AssignedTo = &assignedTo.Int64
	}
	if dueDate.Valid {
		c.DueDate = &dueDate.Time
	}
	return &c, nil
}

const choreCols = `chore_id, title, description, created_by, assigned_to, due_date, points, status, created_at`

// choreColsQualified prefixes every column with the chores alias for
// joined queries, where created_at alone would be ambiguous.
const choreColsQualified = `c.chore_id, c.title, c.description, c.created_by, c.assigned_to, c.due_date, c.points, c.status, c.created_at`

func (s *ChoreStore) Create(ownerID int64, title, description string, assignedTo *int64, dueDate *time.Time, points int) (*model.Chore, error) {
	var aTo sql.NullInt64
	if assignedTo != nil {
		aTo = sql.NullInt64{Int64: *assignedTo, Valid: true}
	}
	var due sql.NullTime
	if dueDate != nil {
		due = sql.NullTime{Time: *dueDate, Valid: true}
	}

	id, err := s.db.ExecInsert(
		`INSERT INTO chores (title, description, created_by, assigned_to, due_date, points) VALUES (?, ?, ?, ?, ?, ?)`,
		"chore_id",
		title, description, ownerID, aTo, due, points,
	)
	if err != nil {
		return nil, fmt.Errorf("insert chore: %w", err)
	}
	return s.GetByID(id)
}

// GetByID looks up a chore without an ownership predicate. The
// completion path relies on this: any authenticated caller may
// complete any existing chore.
func (s *ChoreStore) GetByID(id int64) (*model.Chore, error) {
	row := s.db.QueryRow(`SELECT `+choreCols+` FROM chores WHERE chore_id = ?`, id)
	c, err := scanChore(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chore: %w", err)
	}
	return c, nil
}

// GetForOwner returns the chore only if ownerID created it. Returns
// (nil, nil) when the chore does not exist or belongs to someone else.
func (s *ChoreStore) GetForOwner(id, ownerID int64) (*model.Chore, error) {
	row := s.db.QueryRow(
		`SELECT `+choreCols+` FROM chores WHERE chore_id = ? AND created_by = ?`,
		id, ownerID,
	)
	c, err := scanChore(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chore: %w", err)
	}
	return c, nil
}

// ListForOwner returns the chores created by ownerID, each joined with
// the assignee's display name (nil when unassigned).
func (s *ChoreStore) ListForOwner(ownerID int64) ([]model.ChoreWithAssignee, error) {
	rows, err := s.db.Query(
		`SELECT `+choreColsQualified+`, f.name
		 FROM chores c
		 LEFT JOIN family_members f ON c.assigned_to = f.member_id
		 WHERE c.created_by = ?
		 ORDER BY c.chore_id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list chores: %w", err)
	}
	defer rows.Close()

	var chores []model.ChoreWithAssignee
	for rows.Next() {
		var c model.ChoreWithAssignee
		var assignedTo sql.NullInt64
		var dueDate sql.NullTime
		var assigneeName sql.NullString

		err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.CreatedBy, &assignedTo,
			&dueDate, &c.Points, &c.Status, &c.CreatedAt, &assigneeName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan chore: %w", err)
		}

		if assignedTo.Valid {
			c.AssignedTo = &assignedTo.Int64
		}
		if dueDate.Valid {
			c.DueDate = &dueDate.Time
		}
		if assigneeName.Valid {
			c.AssignedToName = &assigneeName.String
		}
		chores = append(chores, c)
	}
	return chores, rows.Err()
}

// ListForMember returns all chores assigned to the member, regardless
// of which user created them.
func (s *ChoreStore) ListForMember(memberID int64) ([]model.Chore, error) {
	rows, err := s.db.Query(
		`SELECT `+choreCols+` FROM chores WHERE assigned_to = ? ORDER BY chore_id`,
		memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("list chores by assignee: %w", err)
	}
	defer rows.Close()

	var chores []model.Chore
	for rows.Next() {
		c, err := scanChore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chore: %w", err)
		}
		chores = append(chores, *c)
	}
	return chores, rows.Err()
}

// UpdateForOwner overwrites all mutable fields in a single statement
// guarded by the ownership predicate. Returns (nil, nil) when no row
// matched.
func (s *ChoreStore) UpdateForOwner(id, ownerID int64, title, description string, assignedTo *int64, dueDate *time.Time, points int, status string) (*model.Chore, error) {
	var aTo sql.NullInt64
	if assignedTo != nil {
		aTo = sql.NullInt64{Int64: *assignedTo, Valid: true}
	}
	var due sql.NullTime
	if dueDate != nil {
		due = sql.NullTime{Time: *dueDate, Valid: true}
	}

	result, err := s.db.Exec(
		`UPDATE chores SET title = ?, description = ?, assigned_to = ?, due_date = ?, points = ?, status = ?
		 WHERE chore_id = ? AND created_by = ?`,
		title, description, aTo, due, points, status, id, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("update chore: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.GetForOwner(id, ownerID)
}

// DeleteForOwner deletes the chore in a single statement guarded by
// the ownership predicate. Returns false when no row matched.
func (s *ChoreStore) DeleteForOwner(id, ownerID int64) (bool, error) {
	result, err := s.db.Exec(
		`DELETE FROM chores WHERE chore_id = ? AND created_by = ?`,
		id, ownerID,
	)
	if err != nil {
		return false, fmt.Errorf("delete chore: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func scanCompletion(scanner interface{ Scan(...any) error }) (*model.CompletedChore, error) {
	var c model.CompletedChore
	err := scanner.Scan(&c.ID, &c.ChoreID, &c.CompletedBy, &c.ApprovedBy, &c.Notes, &c.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const completionCols = `completed_id, chore_id, completed_by, approved_by, notes, completed_at`

// CreateCompletion appends a completion record and flips the chore's
// status to completed. The two statements run sequentially without a
// transaction; a record is inserted even when the chore is already
// completed, so completion is not idempotent.
func (s *ChoreStore) CreateCompletion(choreID, completedBy, approvedBy int64, notes string) (*model.CompletedChore, error) {
	id, err := s.db.ExecInsert(
		`INSERT INTO completed_chores (chore_id, completed_by, approved_by, notes) VALUES (?, ?, ?, ?)`,
		"completed_id",
		choreID, completedBy, approvedBy, notes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert completion: %w", err)
	}

	if _, err := s.db.Exec(
		`UPDATE chores SET status = ? WHERE chore_id = ?`,
		"completed", choreID,
	); err != nil {
		return nil, fmt.Errorf("mark chore completed: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+completionCols+` FROM completed_chores WHERE completed_id = ?`, id)
	c, err := scanCompletion(row)
	if err != nil {
		return nil, fmt.Errorf("get completion: %w", err)
	}
	return c, nil
}

// ListCompletionsByChore returns the completion history for a chore,
// newest first.
func (s *ChoreStore) ListCompletionsByChore(choreID int64) ([]model.CompletedChore, error) {
	rows, err := s.db.Query(
		`SELECT `+completionCols+` FROM completed_chores WHERE chore_id = ? ORDER BY completed_at DESC, completed_id DESC`,
		choreID,
	)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()

	var completions []model.CompletedChore
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		completions = append(completions, *c)
	}
	return completions, rows.Err()
}
