package store

import (
	"testing"
	"time"

	"github.com/dukerupert/choretrack/internal/database"
	"github.com/dukerupert/choretrack/internal/model"
)

func setupChoreTest(t *testing.T) (*database.DB, *ChoreStore, *FamilyMemberStore, *model.User, *model.User) {
	t.Helper()
	db := setupTestDB(t)
	us := NewUserStore(db)

	owner, err := us.Create("alice", "alice@example.com", "h")
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}
	other, err := us.Create("bob", "bob@example.com", "h")
	if err != nil {
		t.Fatalf("create other user: %v", err)
	}
	return db, NewChoreStore(db), NewFamilyMemberStore(db), owner, other
}

func TestChoreCreateDefaults(t *testing.T) {
	_, cs, _, owner, _ := setupChoreTest(t)

	c, err := cs.Create(owner.ID, "Wash dishes", "Clean all dishes", nil, nil, 5)
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}
	if c.Title != "Wash dishes" {
		t.Errorf("title = %q, want %q", c.Title, "Wash dishes")
	}
	if c.Status != "pending" {
		t.Errorf("status = %q, want %q", c.Status, "pending")
	}
	if c.Points != 5 {
		t.Errorf("points = %d, want 5", c.Points)
	}
	if c.AssignedTo != nil {
		t.Errorf("assigned_to = %v, want nil", c.AssignedTo)
	}
	if c.DueDate != nil {
		t.Errorf("due_date = %v, want nil", c.DueDate)
	}
	if c.CreatedBy != owner.ID {
		t.Errorf("created_by = %d, want %d", c.CreatedBy, owner.ID)
	}
}

func TestChoreCreateWithAssigneeAndDueDate(t *testing.T) {
	_, cs, ms, owner, _ := setupChoreTest(t)

	m, err := ms.Create(owner.ID, "Sam")
	if err != nil {
		t.Fatalf("create member: %v", err)
	}

	due := time.Date(2026, 9, 15, 18, 0, 0, 0, time.UTC)
	c, err := cs.Create(owner.ID, "Mow lawn", "", &m.ID, &due, 10)
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}
	if c.AssignedTo == nil || *c.AssignedTo != m.ID {
		t.Errorf("assigned_to = %v, want %d", c.AssignedTo, m.ID)
	}
	if c.DueDate == nil || !c.DueDate.Equal(due) {
		t.Errorf("due_date = %v, want %v", c.DueDate, due)
	}
}

func TestChoreListForOwnerJoinsAssigneeName(t *testing.T) {
	_, cs, ms, owner, other := setupChoreTest(t)

	m, err := ms.Create(owner.ID, "Sam")
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	if _, err := cs.Create(owner.ID, "Wash dishes", "", &m.ID, nil, 5); err != nil {
		t.Fatalf("create assigned chore: %v", err)
	}
	if _, err := cs.Create(owner.ID, "Vacuum", "", nil, nil, 3); err != nil {
		t.Fatalf("create unassigned chore: %v", err)
	}

	chores, err := cs.ListForOwner(owner.ID)
	if err != nil {
		t.Fatalf("list chores: %v", err)
	}
	if len(chores) != 2 {
		t.Fatalf("len = %d, want 2", len(chores))
	}
	if chores[0].AssignedToName == nil || *chores[0].AssignedToName != "Sam" {
		t.Errorf("assigned_to_name = %v, want Sam", chores[0].AssignedToName)
	}
	// Every column must come back from the joined select, not just
	// the assignee name.
	if chores[0].Title != "Wash dishes" {
		t.Errorf("title = %q", chores[0].Title)
	}
	if chores[0].CreatedBy != owner.ID {
		t.Errorf("created_by = %d, want %d", chores[0].CreatedBy, owner.ID)
	}
	if chores[0].AssignedTo == nil || *chores[0].AssignedTo != m.ID {
		t.Errorf("assigned_to = %v, want %d", chores[0].AssignedTo, m.ID)
	}
	if chores[0].Points != 5 {
		t.Errorf("points = %d, want 5", chores[0].Points)
	}
	if chores[0].Status != "pending" {
		t.Errorf("status = %q, want pending", chores[0].Status)
	}
	if chores[0].CreatedAt.IsZero() {
		t.Error("created_at not scanned")
	}
	if chores[1].AssignedToName != nil {
		t.Errorf("unassigned chore has assignee name %q", *chores[1].AssignedToName)
	}

	chores, err = cs.ListForOwner(other.ID)
	if err != nil {
		t.Fatalf("list for other: %v", err)
	}
	if len(chores) != 0 {
		t.Errorf("other owner sees %d chores, want 0", len(chores))
	}
}

func TestChoreListForMemberIgnoresCreator(t *testing.T) {
	_, cs, ms, owner, other := setupChoreTest(t)

	m, err := ms.Create(owner.ID, "Sam")
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	if _, err := cs.Create(owner.ID, "Wash dishes", "", &m.ID, nil, 5); err != nil {
		t.Fatalf("owner chore: %v", err)
	}
	// A chore created by a different user but assigned to the same member
	// still shows up in the member listing.
	if _, err := cs.Create(other.ID, "Take out trash", "", &m.ID, nil, 2); err != nil {
		t.Fatalf("other-owner chore: %v", err)
	}

	chores, err := cs.ListForMember(m.ID)
	if err != nil {
		t.Fatalf("list for member: %v", err)
	}
	if len(chores) != 2 {
		t.Fatalf("len = %d, want 2 (member listing is not creator-filtered)", len(chores))
	}
}

func TestChoreUpdateForOwner(t *testing.T) {
	_, cs, ms, owner, other := setupChoreTest(t)

	m, err := ms.Create(owner.ID, "Sam")
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	c, err := cs.Create(owner.ID, "Wash dishes", "", nil, nil, 5)
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}

	updated, err := cs.UpdateForOwner(c.ID, owner.ID, "Wash dishes", "After dinner", &m.ID, nil, 8, "completed")
	if err != nil {
		t.Fatalf("update chore: %v", err)
	}
	if updated == nil {
		t.Fatal("owner update should match the row")
	}
	if updated.Status != "completed" {
		t.Errorf("status = %q, want %q", updated.Status, "completed")
	}
	if updated.Points != 8 {
		t.Errorf("points = %d, want 8", updated.Points)
	}
	if updated.AssignedTo == nil || *updated.AssignedTo != m.ID {
		t.Errorf("assigned_to = %v, want %d", updated.AssignedTo, m.ID)
	}

	// Setting status back to pending re-opens the chore.
	updated, err = cs.UpdateForOwner(c.ID, owner.ID, "Wash dishes", "", nil, nil, 8, "pending")
	if err != nil {
		t.Fatalf("re-open chore: %v", err)
	}
	if updated.Status != "pending" {
		t.Errorf("status = %q, want %q", updated.Status, "pending")
	}

	updated, err = cs.UpdateForOwner(c.ID, other.ID, "Hijacked", "", nil, nil, 0, "pending")
	if err != nil {
		t.Fatalf("cross-owner update: %v", err)
	}
	if updated != nil {
		t.Error("cross-owner update should not match any row")
	}
}

func TestChoreDeleteForOwner(t *testing.T) {
	_, cs, _, owner, other := setupChoreTest(t)

	c, err := cs.Create(owner.ID, "Wash dishes", "", nil, nil, 5)
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}

	deleted, err := cs.DeleteForOwner(c.ID, other.ID)
	if err != nil {
		t.Fatalf("cross-owner delete: %v", err)
	}
	if deleted {
		t.Error("cross-owner delete should not match any row")
	}

	deleted, err = cs.DeleteForOwner(c.ID, owner.ID)
	if err != nil {
		t.Fatalf("delete chore: %v", err)
	}
	if !deleted {
		t.Fatal("owner delete should succeed")
	}

	got, _ := cs.GetByID(c.ID)
	if got != nil {
		t.Error("chore should be gone after delete")
	}
}

func TestChoreCompletion(t *testing.T) {
	_, cs, ms, owner, _ := setupChoreTest(t)

	m, err := ms.Create(owner.ID, "Sam")
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	c, err := cs.Create(owner.ID, "Wash dishes", "", &m.ID, nil, 5)
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}

	rec, err := cs.CreateCompletion(c.ID, m.ID, owner.ID, "done before dinner")
	if err != nil {
		t.Fatalf("create completion: %v", err)
	}
	if rec.ChoreID != c.ID {
		t.Errorf("chore_id = %d, want %d", rec.ChoreID, c.ID)
	}
	if rec.CompletedBy != m.ID {
		t.Errorf("completed_by = %d, want %d", rec.CompletedBy, m.ID)
	}
	if rec.ApprovedBy != owner.ID {
		t.Errorf("approved_by = %d, want %d", rec.ApprovedBy, owner.ID)
	}
	if rec.Notes != "done before dinner" {
		t.Errorf("notes = %q", rec.Notes)
	}

	got, err := cs.GetByID(c.ID)
	if err != nil {
		t.Fatalf("get chore: %v", err)
	}
	if got.Status != "completed" {
		t.Errorf("status after completion = %q, want %q", got.Status, "completed")
	}
}

func TestChoreCompletionNotIdempotent(t *testing.T) {
	_, cs, ms, owner, _ := setupChoreTest(t)

	m, err := ms.Create(owner.ID, "Sam")
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	c, err := cs.Create(owner.ID, "Wash dishes", "", &m.ID, nil, 5)
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}

	// Completing twice appends two records.
	if _, err := cs.CreateCompletion(c.ID, m.ID, owner.ID, ""); err != nil {
		t.Fatalf("first completion: %v", err)
	}
	if _, err := cs.CreateCompletion(c.ID, m.ID, owner.ID, ""); err != nil {
		t.Fatalf("second completion: %v", err)
	}

	records, err := cs.ListCompletionsByChore(c.ID)
	if err != nil {
		t.Fatalf("list completions: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("completion records = %d, want 2", len(records))
	}
}
