package model // import "github.com/bookverse/bookverse/model"

// Role is the type of a role.
type Role string

const (
	// RoleAdmin is the ADMIN role.
	RoleAdmin Role = "ADMIN"
	// RoleUser is the USER role.
	RoleUser Role = "USER"
)

func (e Role) String() string {
	switch e {
	case RoleAdmin:
		return "ADMIN"
	case RoleUser:
		return "USER"
	}
	return "USER"
}

// IsAdmin reports whether the role carries administrative rights.
func (e Role) IsAdmin() bool {
	return e == RoleAdmin
}

type User struct {
	ID int32 `json:"id"`

	CreatedTs int64 `json:"created_ts"`
	UpdatedTs int64 `json:"updated_ts"`

	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	PasswordHash string `json:"password_hash"`
}

type FindUser struct {
	ID    *int32  `json:"id"`
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *Role   `json:"role"`

	// The maximum number of users to return.
	Limit *int
}

type UserSignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserSigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdateRequest is a partial profile update. Nil fields are left
// untouched.
type UserUpdateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UpdateUser is the store-level patch, password already hashed.
type UpdateUser struct {
	ID           int32
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *Role
}

// UserRoleRequest targets a user by email or id for promote/demote.
type UserRoleRequest struct {
	Email string `json:"email"`
	ID    int32  `json:"id"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type PasswordResetConfirm struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type PasswordReset struct {
	ID        int32  `json:"id"`
	UserID    int32  `json:"user_id"`
	Token     string `json:"token"`
	ExpiresTs int64  `json:"expires_ts"`
	CreatedTs int64  `json:"created_ts"`
}
