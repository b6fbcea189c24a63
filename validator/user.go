package validator // import "github.com/bookverse/bookverse/validator"

import (
	"github.com/bookverse/bookverse/errors"
	"github.com/bookverse/bookverse/model"
	"github.com/bookverse/bookverse/store"
	"github.com/bookverse/bookverse/util"
)

func ValidateSignupRequest(s *store.Store, user *model.UserSignupRequest) error {
	if user == nil {
		return errors.Validation("user is nil")
	}
	if user.Name == "" {
		return errors.Validation("name is empty")
	}
	if user.Email == "" {
		return errors.Validation("email is empty")
	}
	if !util.ValidateEmail(user.Email) {
		return errors.Validation("email is invalid")
	}
	if err := validatePassword(user.Password); err != nil {
		return err
	}
	if existing, _ := s.GetUser(&model.FindUser{Email: &user.Email}); existing != nil {
		return errors.Conflict("email already registered")
	}
	return nil
}

func ValidateUserUpdateRequest(req *model.UserUpdateRequest) error {
	if req == nil {
		return errors.Validation("request is nil")
	}
	if req.Name != nil && *req.Name == "" {
		return errors.Validation("name is empty")
	}
	if req.Email != nil && !util.ValidateEmail(*req.Email) {
		return errors.Validation("email is invalid")
	}
	if req.Password != nil {
		if err := validatePassword(*req.Password); err != nil {
			return err
		}
	}
	return nil
}

func ValidatePasswordResetConfirm(req *model.PasswordResetConfirm) error {
	if req == nil {
		return errors.Validation("request is nil")
	}
	if req.Token == "" {
		return errors.Validation("token is empty")
	}
	return validatePassword(req.Password)
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return errors.Validation("password is too short")
	}
	return nil
}
