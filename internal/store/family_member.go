package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/choretrack/internal/database"
	"github.com/dukerupert/choretrack/internal/model"
)

type FamilyMemberStore struct {
	db *database.DB
}

func NewFamilyMemberStore(db *database.DB) *FamilyMemberStore {
	return &FamilyMemberStore{db: db}
}

func scanMember(scanner interface{ Scan(...any) error }) (*model.FamilyMember, error) {
	var m model.FamilyMember
	err := scanner.Scan(&m.ID, &m.UserID, &m.Name, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const memberCols = `member_id, user_id, name, created_at`

func (s *FamilyMemberStore) Create(ownerID int64, name string) (*model.FamilyMember, error) {
	id, err := s.db.ExecInsert(
		`INSERT INTO family_members (user_id, name) VALUES (?, ?)`,
		"member_id",
		ownerID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("insert family member: %w", err)
	}
	return s.GetForOwner(id, ownerID)
}

func (s *FamilyMemberStore) ListByOwner(ownerID int64) ([]model.FamilyMember, error) {
	rows, err := s.db.Query(
		`SELECT `+memberCols+` FROM family_members WHERE user_id = ? ORDER BY member_id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list family members: %w", err)
	}
	defer rows.Close()

	var members []model.FamilyMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan family member: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// GetForOwner returns the member only if it belongs to ownerID.
// Returns (nil, nil) when the member does not exist or is owned by
// someone else, so callers can't distinguish the two.
func (s *FamilyMemberStore) GetForOwner(id, ownerID int64) (*model.FamilyMember, error) {
	row := s.db.QueryRow(
		`SELECT `+memberCols+` FROM family_members WHERE member_id = ? AND user_id = ?`,
		id, ownerID,
	)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get family member: %w", err)
	}
	return m, nil
}

// UpdateForOwner renames the member in a single statement guarded by
// the ownership predicate. Returns (nil, nil) when no row matched.
func (s *FamilyMemberStore) UpdateForOwner(id, ownerID int64, name string) (*model.FamilyMember, error) {
	result, err := s.db.Exec(
		`UPDATE family_members SET name = ? WHERE member_id = ? AND user_id = ?`,
		name, id, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("update family member: %w", err)
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

// DeleteForOwner deletes the member in a single statement guarded by
// both the ownership predicate and the absence of assigned chores.
// Returns false when the member was not deleted, either because it is
// not the owner's or because chores still reference it; the caller
// uses CountAssignedChores to tell which.
func (s *FamilyMemberStore) DeleteForOwner(id, ownerID int64) (bool, error) {
	result, err := s.db.Exec(
		`DELETE FROM family_members
		 WHERE member_id = ? AND user_id = ?
		 AND NOT EXISTS (SELECT 1 FROM chores WHERE assigned_to = ?)`,
		id, ownerID, id,
	)
	if err != nil {
		return false, fmt.Errorf("delete family member: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// CountAssignedChores counts chores currently assigned to the member.
func (s *FamilyMemberStore) CountAssignedChores(memberID int64) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM chores WHERE assigned_to = ?`,
		memberID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count assigned chores: %w", err)
	}
	return count, nil
}
