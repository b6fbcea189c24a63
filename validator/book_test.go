package validator

import (
	"testing"

	"github.com/bookverse/bookverse/errors"
	"github.com/bookverse/bookverse/model"
)

func TestValidateBookCreateRequest(t *testing.T) {
	if err := ValidateBookCreateRequest(&model.BookCreateRequest{Title: "Dune", Author: "Frank Herbert"}); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
	if err := ValidateBookCreateRequest(&model.BookCreateRequest{Author: "Frank Herbert"}); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("missing title: got %v", err)
	}
	if err := ValidateBookCreateRequest(&model.BookCreateRequest{Title: "Dune"}); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("missing author: got %v", err)
	}
	if err := ValidateBookCreateRequest(nil); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("nil request: got %v", err)
	}
}

func TestValidateReviewCreateRequest(t *testing.T) {
	for _, rating := range []int{1, 3, 5} {
		if err := ValidateReviewCreateRequest(&model.ReviewCreateRequest{Rating: rating}); err != nil {
			t.Errorf("rating %d rejected: %v", rating, err)
		}
	}
	for _, rating := range []int{0, 6, -3} {
		if err := ValidateReviewCreateRequest(&model.ReviewCreateRequest{Rating: rating}); !errors.Is(err, errors.ErrValidation) {
			t.Errorf("rating %d: got %v, want validation error", rating, err)
		}
	}
}

func TestValidateReadingStatusRequest(t *testing.T) {
	for _, status := range []model.ReadingStatus{
		model.ReadingStatusNone,
		model.ReadingStatusWantToRead,
		model.ReadingStatusReading,
		model.ReadingStatusCompleted,
	} {
		if err := ValidateReadingStatusRequest(&model.ReadingStatusRequest{Status: status}); err != nil {
			t.Errorf("status %s rejected: %v", status, err)
		}
	}
	if err := ValidateReadingStatusRequest(&model.ReadingStatusRequest{Status: "devoured"}); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("unknown status: got %v", err)
	}
}

func TestValidateUserUpdateRequest(t *testing.T) {
	name := "alice"
	if err := ValidateUserUpdateRequest(&model.UserUpdateRequest{Name: &name}); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	empty := ""
	if err := ValidateUserUpdateRequest(&model.UserUpdateRequest{Name: &empty}); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("empty name: got %v", err)
	}

	badEmail := "not-an-email"
	if err := ValidateUserUpdateRequest(&model.UserUpdateRequest{Email: &badEmail}); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("bad email: got %v", err)
	}

	short := "12345"
	if err := ValidateUserUpdateRequest(&model.UserUpdateRequest{Password: &short}); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("short password: got %v", err)
	}
}

func TestValidatePasswordResetConfirm(t *testing.T) {
	if err := ValidatePasswordResetConfirm(&model.PasswordResetConfirm{Token: "tok", Password: "secret1"}); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
	if err := ValidatePasswordResetConfirm(&model.PasswordResetConfirm{Password: "secret1"}); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("missing token: got %v", err)
	}
	if err := ValidatePasswordResetConfirm(&model.PasswordResetConfirm{Token: "tok", Password: "123"}); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("short password: got %v", err)
	}
}
