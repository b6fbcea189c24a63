package v1

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bookverse/bookverse/http/request"
	"github.com/bookverse/bookverse/http/response"
	"github.com/bookverse/bookverse/log"
	"github.com/bookverse/bookverse/model"
	"github.com/bookverse/bookverse/validator"
	"go.uber.org/zap"
)

const (
	recentReviewsDefault = 5
	recentReviewsMax     = 12
)

func (h *Handler) listBookReviews(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteInt32Param(r, "id")

	book, err := h.store.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		log.Error("Failed to get book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}

	reviews, err := h.store.ListReviews(&model.FindReview{BookID: &bookID})
	if err != nil {
		log.Error("Failed to list reviews", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, reviews)
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	if !h.createLimit.Allow(fmt.Sprintf("user:%d", userID)) {
		response.TooManyRequests(w, r)
		return
	}

	var create model.ReviewCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	if err := validator.ValidateReviewCreateRequest(&create); err != nil {
		response.DomainError(w, r, err)
		return
	}

	review, err := h.store.CreateReview(&model.Review{
		BookID: request.RouteInt32Param(r, "id"),
		UserID: userID,
		Rating: create.Rating,
		Title:  create.Title,
		Body:   create.Body,
	})
	if err != nil {
		response.DomainError(w, r, err)
		return
	}

	response.Created(w, r, review)
}

func (h *Handler) updateReview(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	if !h.mutateLimit.Allow(fmt.Sprintf("user:%d", userID)) {
		response.TooManyRequests(w, r)
		return
	}

	var patch model.ReviewUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	review, err := h.store.UpdateReview(request.RouteInt32Param(r, "id"), userID, &patch)
	if err != nil {
		response.DomainError(w, r, err)
		return
	}

	response.OK(w, r, review)
}

func (h *Handler) deleteReview(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	if !h.mutateLimit.Allow(fmt.Sprintf("user:%d", userID)) {
		response.TooManyRequests(w, r)
		return
	}

	err := h.store.DeleteReview(request.RouteInt32Param(r, "id"), userID, request.IsAdmin(r))
	if err != nil {
		response.DomainError(w, r, err)
		return
	}

	response.NoContent(w, r)
}

func (h *Handler) listRecentReviews(w http.ResponseWriter, r *http.Request) {
	limit := request.QueryIntParam(r, "limit", recentReviewsDefault)
	if limit < 1 {
		limit = recentReviewsDefault
	}
	if limit > recentReviewsMax {
		limit = recentReviewsMax
	}

	reviews, err := h.store.ListRecentReviews(limit)
	if err != nil {
		log.Error("Failed to list recent reviews", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, reviews)
}
