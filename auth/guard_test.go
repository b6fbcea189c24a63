package auth

import (
	"testing"

	"github.com/bookverse/bookverse/model"
)

func TestCanMutateReview(t *testing.T) {
	if !CanMutateReview(1, 1, false) {
		t.Errorf("owner should be allowed to mutate own review")
	}
	if CanMutateReview(2, 1, false) {
		t.Errorf("non-owner non-admin should not be allowed")
	}
	if !CanMutateReview(2, 1, true) {
		t.Errorf("admin should be allowed to mutate any review")
	}
}

func TestCanMutateBook(t *testing.T) {
	if CanMutateBook(false) {
		t.Errorf("non-admin should not be allowed to mutate books")
	}
	if !CanMutateBook(true) {
		t.Errorf("admin should be allowed to mutate books")
	}
}

func TestIsAdmin(t *testing.T) {
	if IsAdmin(nil) {
		t.Errorf("nil user should not be admin")
	}
	if IsAdmin(&model.User{Role: model.RoleUser}) {
		t.Errorf("USER role should not be admin")
	}
	if !IsAdmin(&model.User{Role: model.RoleAdmin}) {
		t.Errorf("ADMIN role should be admin")
	}
}
