package v1

import (
	"encoding/json"
	"net/http"

	"github.com/bookverse/bookverse/errors"
	"github.com/bookverse/bookverse/http/request"
	"github.com/bookverse/bookverse/http/response"
	"github.com/bookverse/bookverse/log"
	"github.com/bookverse/bookverse/model"
	"github.com/bookverse/bookverse/validator"
	"go.uber.org/zap"
)

func (h *Handler) addToWishlist(w http.ResponseWriter, r *http.Request) {
	entry, err := h.store.SetWishlist(request.GetUserID(r), request.RouteInt32Param(r, "id"), true)
	if err != nil {
		response.DomainError(w, r, err)
		return
	}

	response.OK(w, r, entry)
}

func (h *Handler) removeFromWishlist(w http.ResponseWriter, r *http.Request) {
	entry, err := h.store.SetWishlist(request.GetUserID(r), request.RouteInt32Param(r, "id"), false)
	if err != nil {
		response.DomainError(w, r, err)
		return
	}

	response.OK(w, r, entry)
}

func (h *Handler) setReadingStatus(w http.ResponseWriter, r *http.Request) {
	var req model.ReadingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	if err := validator.ValidateReadingStatusRequest(&req); err != nil {
		response.DomainError(w, r, err)
		return
	}

	entry, err := h.store.SetReadingStatus(
		request.GetUserID(r),
		request.RouteInt32Param(r, "id"),
		req.Status,
		req.DateStarted,
		req.DateCompleted,
		req.Notes,
	)
	if err != nil {
		response.DomainError(w, r, err)
		return
	}

	response.OK(w, r, entry)
}

func (h *Handler) listWishlist(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	wishlisted := true
	find := &model.FindUserBook{UserID: &userID, IsWishlisted: &wishlisted}
	h.listUserBookEntries(w, r, find)
}

func (h *Handler) listReading(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	find := &model.FindUserBook{UserID: &userID}

	if status := request.QueryStringParam(r, "status", ""); status != "" {
		readingStatus := model.ReadingStatus(status)
		if !readingStatus.IsValid() {
			response.BadRequest(w, r, errors.New("unknown reading status"))
			return
		}
		find.ReadingStatus = &readingStatus
	} else {
		reading := model.ReadingStatusReading
		find.ReadingStatus = &reading
	}

	h.listUserBookEntries(w, r, find)
}

func (h *Handler) listUserBookEntries(w http.ResponseWriter, r *http.Request, find *model.FindUserBook) {
	page := request.QueryIntParam(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := request.QueryIntParam(r, "limit", 20)
	if limit < 1 {
		limit = 20
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := (page - 1) * limit
	find.Offset = &offset
	find.Limit = &limit

	entries, err := h.store.ListUserBookEntries(find)
	if err != nil {
		log.Error("Failed to list user book entries", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, entries)
}
