package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bookverse/bookverse/auth"
	"github.com/bookverse/bookverse/config"
	"github.com/bookverse/bookverse/errors"
	"github.com/bookverse/bookverse/http/response"
	"github.com/bookverse/bookverse/log"
	"github.com/bookverse/bookverse/model"
	"github.com/bookverse/bookverse/util"
	"github.com/bookverse/bookverse/validator"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type signedUser struct {
	User        *model.User `json:"user"`
	AccessToken string      `json:"access_token"`
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	signup := &model.UserSignupRequest{}
	if err := json.NewDecoder(r.Body).Decode(&signup); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	if err := validator.ValidateSignupRequest(h.store, signup); err != nil {
		response.DomainError(w, r, err)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(signup.Password), config.Opts.BcryptCost)
	if err != nil {
		log.Error("Failed to generate password hash", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	user := model.User{
		Name:         signup.Name,
		Email:        strings.ToLower(signup.Email),
		PasswordHash: string(passwordHash),
		Role:         model.RoleUser,
	}

	newUser, err := h.store.CreateUser(&user)
	if err != nil {
		response.DomainError(w, r, err)
		return
	}

	token, err := h.issueToken(w, r, newUser)
	if err != nil {
		log.Error("Failed to sign in after signup", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.Created(w, r, &signedUser{User: response.UserResponse(newUser), AccessToken: token})
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var signin model.UserSigninRequest
	if err := json.NewDecoder(r.Body).Decode(&signin); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	email := strings.ToLower(signin.Email)
	user, err := h.store.GetUser(&model.FindUser{Email: &email})
	if err != nil {
		log.Error("Failed to get user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	// Same response for unknown email and bad password.
	if user == nil {
		response.BadRequest(w, r, errors.New("invalid credentials"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(signin.Password)); err != nil {
		response.BadRequest(w, r, errors.New("invalid credentials"))
		return
	}

	token, err := h.issueToken(w, r, user)
	if err != nil {
		log.Error("Failed to sign in", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, &signedUser{User: response.UserResponse(user), AccessToken: token})
}

func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request, user *model.User) (string, error) {
	expireTime := time.Now().Add(auth.AccessTokenDuration)
	accessToken, err := auth.GenerateAccessToken(user.Name, user.ID, expireTime, []byte(h.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to generate access token")
	}

	w.Header().Set("Set-Cookie", buildAccessTokenCookie(accessToken, expireTime, r.Header.Get("Origin")))
	return accessToken, nil
}

func (h *Handler) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req model.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	email := strings.ToLower(req.Email)
	user, err := h.store.GetUser(&model.FindUser{Email: &email})
	if err != nil {
		log.Error("Failed to get user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	// Do not reveal whether the email exists.
	if user == nil {
		response.NoContent(w, r)
		return
	}

	token, err := util.RandomToken(32)
	if err != nil {
		log.Error("Failed to generate reset token", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	reset := &model.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		ExpiresTs: time.Now().Add(time.Duration(config.Opts.ResetTokenLifetime) * time.Minute).Unix(),
	}
	if _, err := h.store.CreatePasswordReset(reset); err != nil {
		log.Error("Failed to store reset token", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	// No mailer is wired up, the token goes to the log for the operator.
	log.Info("Password reset requested",
		zap.Int32("user_id", user.ID),
		zap.String("token", token))

	response.NoContent(w, r)
}

func (h *Handler) confirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req model.PasswordResetConfirm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	if err := validator.ValidatePasswordResetConfirm(&req); err != nil {
		response.DomainError(w, r, err)
		return
	}

	reset, err := h.store.GetPasswordReset(req.Token)
	if err != nil {
		log.Error("Failed to look up reset token", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if reset == nil || reset.ExpiresTs < time.Now().Unix() {
		response.BadRequest(w, r, errors.New("invalid or expired token"))
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), config.Opts.BcryptCost)
	if err != nil {
		log.Error("Failed to generate password hash", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	hash := string(passwordHash)
	if _, err := h.store.UpdateUser(&model.UpdateUser{ID: reset.UserID, PasswordHash: &hash}); err != nil {
		response.DomainError(w, r, err)
		return
	}

	// Consume every outstanding token for this user.
	if err := h.store.DeletePasswordResetsByUser(reset.UserID); err != nil {
		log.Error("Failed to delete reset tokens", zap.Error(err))
	}

	response.NoContent(w, r)
}

func buildAccessTokenCookie(accessToken string, expireTime time.Time, origin string) string {
	attrs := []string{
		fmt.Sprintf("%s=%s", auth.AccessTokenCookieName, accessToken),
		"Path=/",
		"HttpOnly",
		"Expires=" + expireTime.Format(time.RFC1123),
	}

	if strings.HasPrefix(origin, "https://") {
		attrs = append(attrs, "Secure")
		attrs = append(attrs, "SameSite=None")
	} else {
		attrs = append(attrs, "SameSite=Lax")
	}
	return strings.Join(attrs, "; ")
}
