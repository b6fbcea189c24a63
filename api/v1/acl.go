package v1

import (
	"context"
	"net/http"
	"strings"

	"github.com/bookverse/bookverse/auth"
	"github.com/bookverse/bookverse/errors"
	"github.com/bookverse/bookverse/http/request"
	"github.com/bookverse/bookverse/http/response"
	"github.com/bookverse/bookverse/log"
	"github.com/bookverse/bookverse/model"
	"github.com/bookverse/bookverse/store"
	"github.com/bookverse/bookverse/util"
	"go.uber.org/zap"
)

type AuthInterceptor struct {
	store  *store.Store
	secret string
}

func NewAuthInterceptor(store *store.Store, secret string) *AuthInterceptor {
	return &AuthInterceptor{store: store, secret: secret}
}

func (m *AuthInterceptor) AuthenticationInterceptor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isUnauthorizeAllowed(r) {
			next.ServeHTTP(w, r)
			return
		}
		clientIP := request.FindClientIP(r)
		accessToken := getAccessToken(r)

		user, err := m.authenticate(accessToken)
		if err != nil {
			log.Debug("Failed to authenticate user",
				zap.String("client_ip", clientIP),
				zap.String("user_agent", r.UserAgent()),
				zap.Error(err),
			)
			response.Unauthorized(w, r)
			return
		}
		if isOnlyForAdminAllowedPath(r.URL.Path) && !auth.IsAdmin(user) {
			response.Forbidden(w, r)
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, request.UserIDContextKey, user.ID)
		ctx = context.WithValue(ctx, request.UserNameContextKey, user.Name)
		ctx = context.WithValue(ctx, request.UserRoleContextKey, user.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthInterceptor) authenticate(accessToken string) (*model.User, error) {
	if accessToken == "" {
		return nil, errors.New("no access token provided")
	}
	claims, err := auth.ParseAccessToken(accessToken, []byte(m.secret))
	if err != nil {
		return nil, errors.Wrap(err, "invalid or expired access token")
	}

	userID, err := util.ConvertStringToInt32(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(err, "malformed ID in the token")
	}
	user, err := m.store.GetUser(&model.FindUser{ID: &userID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}
	if user == nil {
		return nil, errors.Errorf("user not found with ID: %d", userID)
	}

	return user, nil
}

func getAccessToken(r *http.Request) string {
	// Check the HTTP Authorization header first
	authorizationHeaders := r.Header.Get("Authorization")
	if authorizationHeaders != "" {
		splitToken := strings.Split(authorizationHeaders, "Bearer ")
		if len(splitToken) == 2 {
			return splitToken[1]
		}
	}

	// Fall back to the cookie
	cookie, err := r.Cookie(auth.AccessTokenCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
