package response

import (
	"github.com/bookverse/bookverse/model"
)

// UserResponse strips credentials before a user goes on the wire.
func UserResponse(user *model.User) *model.User {
	return &model.User{
		ID:        user.ID,
		CreatedTs: user.CreatedTs,
		UpdatedTs: user.UpdatedTs,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
	}
}

func UserListResponse(users []*model.User) []*model.User {
	response := make([]*model.User, 0, len(users))
	for _, user := range users {
		response = append(response, UserResponse(user))
	}
	return response
}
