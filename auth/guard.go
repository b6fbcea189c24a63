package auth

import "github.com/bookverse/bookverse/model"

// Pure authorization predicates. They hold no state, handlers and the store
// compose them per operation.

// IsOwner reports whether the actor owns the resource.
func IsOwner(actorID, ownerID int32) bool {
	return actorID == ownerID
}

// IsAdmin reports whether the user carries administrative rights.
func IsAdmin(user *model.User) bool {
	return user != nil && user.Role.IsAdmin()
}

// CanMutateReview allows the review owner or an admin.
func CanMutateReview(actorID, ownerID int32, actorIsAdmin bool) bool {
	return IsOwner(actorID, ownerID) || actorIsAdmin
}

// CanMutateBook allows admins only.
func CanMutateBook(actorIsAdmin bool) bool {
	return actorIsAdmin
}
