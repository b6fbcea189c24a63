package request // import "github.com/bookverse/bookverse/http/request"

import (
	"net/http"

	"github.com/bookverse/bookverse/model"
)

type ContextKey int

const (
	ClientIPContextKey ContextKey = iota
	UserIDContextKey
	UserNameContextKey
	UserRoleContextKey
)

func getContextStringValue(r *http.Request, key ContextKey) string {
	if v := r.Context().Value(key); v != nil {
		if value, valid := v.(string); valid {
			return value
		}
	}
	return ""
}

// GetUserID returns the authenticated user's id, or 0 when unauthenticated.
func GetUserID(r *http.Request) int32 {
	if v := r.Context().Value(UserIDContextKey); v != nil {
		if value, valid := v.(int32); valid {
			return value
		}
	}
	return 0
}

func GetUserName(r *http.Request) string {
	return getContextStringValue(r, UserNameContextKey)
}

func GetUserRole(r *http.Request) model.Role {
	if v := r.Context().Value(UserRoleContextKey); v != nil {
		if value, valid := v.(model.Role); valid {
			return value
		}
	}
	return model.RoleUser
}

// IsAdmin reports whether the authenticated user carries admin rights.
func IsAdmin(r *http.Request) bool {
	return GetUserRole(r).IsAdmin()
}
