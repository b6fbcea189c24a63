package store

import (
	"testing"

	"github.com/bookverse/bookverse/errors"
	"github.com/bookverse/bookverse/model"
)

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	createTestUser(t, s, "alice", "alice@example.com", model.RoleUser)

	_, err := s.CreateUser(&model.User{
		Name:         "impostor",
		Email:        "alice@example.com",
		PasswordHash: "x",
		Role:         model.RoleUser,
	})
	if !errors.Is(err, errors.ErrConflict) {
		t.Errorf("got %v, want conflict error", err)
	}
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	alice := createTestUser(t, s, "alice", "alice@example.com", model.RoleUser)
	createTestUser(t, s, "bob", "bob@example.com", model.RoleUser)

	name := "alice cooper"
	updated, err := s.UpdateUser(&model.UpdateUser{ID: alice.ID, Name: &name})
	if err != nil {
		t.Fatalf("Failed to update user: %v", err)
	}
	if updated.Name != name {
		t.Errorf("name = %q, want %q", updated.Name, name)
	}
	if updated.Email != "alice@example.com" {
		t.Errorf("untouched email changed: %q", updated.Email)
	}

	role := model.RoleAdmin
	updated, err = s.UpdateUser(&model.UpdateUser{ID: alice.ID, Role: &role})
	if err != nil {
		t.Fatalf("Failed to promote user: %v", err)
	}
	if !updated.Role.IsAdmin() {
		t.Errorf("role = %s, want admin", updated.Role)
	}

	taken := "bob@example.com"
	if _, err := s.UpdateUser(&model.UpdateUser{ID: alice.ID, Email: &taken}); !errors.Is(err, errors.ErrConflict) {
		t.Errorf("got %v, want conflict error", err)
	}

	if _, err := s.UpdateUser(&model.UpdateUser{ID: 9999, Name: &name}); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("got %v, want not found error", err)
	}
}

func TestGetUserByEmail(t *testing.T) {
	s := newTestStore(t)
	alice := createTestUser(t, s, "alice", "alice@example.com", model.RoleUser)

	email := "alice@example.com"
	found, err := s.GetUser(&model.FindUser{Email: &email})
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if found == nil || found.ID != alice.ID {
		t.Fatalf("got %+v, want alice", found)
	}

	missing := "nobody@example.com"
	found, err = s.GetUser(&model.FindUser{Email: &missing})
	if err != nil {
		t.Fatalf("Failed to query missing user: %v", err)
	}
	if found != nil {
		t.Errorf("got %+v, want nil", found)
	}
}

func TestAuditTrail(t *testing.T) {
	s := newTestStore(t)
	admin := createTestUser(t, s, "root", "root@example.com", model.RoleAdmin)
	alice := createTestUser(t, s, "alice", "alice@example.com", model.RoleUser)

	audit, err := s.CreateAudit(&model.Audit{
		Action:      model.AuditActionPromote,
		ActorID:     admin.ID,
		TargetID:    alice.ID,
		TargetEmail: alice.Email,
	})
	if err != nil {
		t.Fatalf("Failed to create audit: %v", err)
	}
	if audit.ID == 0 || audit.CreatedTs == 0 {
		t.Errorf("audit row not fully populated: %+v", audit)
	}

	audits, err := s.ListAudits(&model.FindAudit{TargetID: &alice.ID})
	if err != nil {
		t.Fatalf("Failed to list audits: %v", err)
	}
	if len(audits) != 1 || audits[0].Action != model.AuditActionPromote {
		t.Errorf("got %+v, want one promote record", audits)
	}
}

func TestPasswordResetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	alice := createTestUser(t, s, "alice", "alice@example.com", model.RoleUser)

	reset, err := s.CreatePasswordReset(&model.PasswordReset{
		UserID:    alice.ID,
		Token:     "deadbeef",
		ExpiresTs: 4102444800,
	})
	if err != nil {
		t.Fatalf("Failed to create reset: %v", err)
	}
	if reset.ID == 0 {
		t.Fatal("reset should have an id")
	}

	found, err := s.GetPasswordReset("deadbeef")
	if err != nil {
		t.Fatalf("Failed to get reset: %v", err)
	}
	if found == nil || found.UserID != alice.ID {
		t.Fatalf("got %+v, want alice's reset", found)
	}

	if err := s.DeletePasswordResetsByUser(alice.ID); err != nil {
		t.Fatalf("Failed to delete resets: %v", err)
	}
	found, err = s.GetPasswordReset("deadbeef")
	if err != nil {
		t.Fatalf("Failed to query consumed reset: %v", err)
	}
	if found != nil {
		t.Errorf("got %+v, want nil after consume", found)
	}
}
