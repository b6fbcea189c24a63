package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/bookverse/bookverse/config"
	"github.com/bookverse/bookverse/http/request"
	"github.com/bookverse/bookverse/http/response"
	"github.com/bookverse/bookverse/log"
	"github.com/bookverse/bookverse/model"
	"github.com/bookverse/bookverse/validator"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	user, err := h.store.GetUser(&model.FindUser{ID: &userID})
	if err != nil {
		log.Error("Failed to get user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if user == nil {
		response.NotFound(w, r)
		return
	}

	response.OK(w, r, response.UserResponse(user))
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	var req model.UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	if err := validator.ValidateUserUpdateRequest(&req); err != nil {
		response.DomainError(w, r, err)
		return
	}

	update := &model.UpdateUser{
		ID:   request.GetUserID(r),
		Name: req.Name,
	}
	if req.Email != nil {
		email := strings.ToLower(*req.Email)
		update.Email = &email
	}
	if req.Password != nil {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), config.Opts.BcryptCost)
		if err != nil {
			log.Error("Failed to generate password hash", zap.Error(err))
			response.ServerError(w, r, err)
			return
		}
		hash := string(passwordHash)
		update.PasswordHash = &hash
	}

	user, err := h.store.UpdateUser(update)
	if err != nil {
		response.DomainError(w, r, err)
		return
	}

	response.OK(w, r, response.UserResponse(user))
}

type dashboardResponse struct {
	ReviewCount       int `json:"review_count"`
	WishlistCount     int `json:"wishlist_count"`
	ReadingCount      int `json:"reading_count"`
	CompletedCount    int `json:"completed_count"`
	SubmissionCount   int `json:"submission_count"`
	RecentReviews     []*model.Review        `json:"recent_reviews"`
	RecentSubmissions []*model.Book          `json:"recent_submissions"`
	RecentWishlist    []*model.UserBookEntry `json:"recent_wishlist"`
}

func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)

	reviewCount, err := h.store.CountReviewsByUser(userID)
	if err != nil {
		log.Error("Failed to count reviews", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	wishlisted := true
	wishlistCount, err := h.store.CountUserBooks(&model.FindUserBook{UserID: &userID, IsWishlisted: &wishlisted})
	if err != nil {
		log.Error("Failed to count wishlist", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	reading := model.ReadingStatusReading
	readingCount, err := h.store.CountUserBooks(&model.FindUserBook{UserID: &userID, ReadingStatus: &reading})
	if err != nil {
		log.Error("Failed to count reading", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	completed := model.ReadingStatusCompleted
	completedCount, err := h.store.CountUserBooks(&model.FindUserBook{UserID: &userID, ReadingStatus: &completed})
	if err != nil {
		log.Error("Failed to count completed", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	community := true
	submissionCount, err := h.store.CountBooks(&model.FindBook{CreatedBy: &userID, IsCommunity: &community})
	if err != nil {
		log.Error("Failed to count submissions", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	recentLimit := 5
	recentReviews, err := h.store.ListReviews(&model.FindReview{UserID: &userID, Limit: &recentLimit})
	if err != nil {
		log.Error("Failed to list recent reviews", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	recentSubmissions, err := h.store.ListBooks(&model.FindBook{CreatedBy: &userID, IsCommunity: &community, Limit: &recentLimit})
	if err != nil {
		log.Error("Failed to list recent submissions", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	recentWishlist, err := h.store.ListUserBookEntries(&model.FindUserBook{UserID: &userID, IsWishlisted: &wishlisted, Limit: &recentLimit})
	if err != nil {
		log.Error("Failed to list recent wishlist", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, &dashboardResponse{
		ReviewCount:       reviewCount,
		WishlistCount:     wishlistCount,
		ReadingCount:      readingCount,
		CompletedCount:    completedCount,
		SubmissionCount:   submissionCount,
		RecentReviews:     recentReviews,
		RecentSubmissions: recentSubmissions,
		RecentWishlist:    recentWishlist,
	})
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(&model.FindUser{})
	if err != nil {
		log.Error("Failed to list users", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, response.UserListResponse(users))
}

func (h *Handler) promoteUser(w http.ResponseWriter, r *http.Request) {
	h.setUserRole(w, r, model.RoleAdmin, model.AuditActionPromote)
}

func (h *Handler) demoteUser(w http.ResponseWriter, r *http.Request) {
	h.setUserRole(w, r, model.RoleUser, model.AuditActionDemote)
}

func (h *Handler) setUserRole(w http.ResponseWriter, r *http.Request, role model.Role, action string) {
	actorID := request.GetUserID(r)
	if !h.roleLimit.Allow(fmt.Sprintf("user:%d", actorID)) {
		response.TooManyRequests(w, r)
		return
	}

	var req model.UserRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	find := &model.FindUser{}
	switch {
	case req.ID != 0:
		find.ID = &req.ID
	case req.Email != "":
		email := strings.ToLower(req.Email)
		find.Email = &email
	default:
		response.BadRequest(w, r, fmt.Errorf("email or id is required"))
		return
	}

	target, err := h.store.GetUser(find)
	if err != nil {
		log.Error("Failed to get user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if target == nil {
		response.NotFound(w, r)
		return
	}

	updated, err := h.store.UpdateUser(&model.UpdateUser{ID: target.ID, Role: &role})
	if err != nil {
		response.DomainError(w, r, err)
		return
	}

	if _, err := h.store.CreateAudit(&model.Audit{
		Action:      action,
		ActorID:     actorID,
		TargetID:    target.ID,
		TargetEmail: target.Email,
	}); err != nil {
		log.Error("Failed to write audit record", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	log.Info("User role changed",
		zap.String("action", action),
		zap.String("actor", request.GetUserName(r)),
		zap.String("target", target.Email))

	response.OK(w, r, response.UserResponse(updated))
}
