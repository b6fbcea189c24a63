package v1

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bookverse/bookverse/auth"
	"github.com/bookverse/bookverse/errors"
	"github.com/bookverse/bookverse/http/request"
	"github.com/bookverse/bookverse/http/response"
	"github.com/bookverse/bookverse/log"
	"github.com/bookverse/bookverse/model"
	"github.com/bookverse/bookverse/validator"
	"go.uber.org/zap"
)

const maxPageSize = 100

type bookListResponse struct {
	Books []*model.Book `json:"books"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	find := &model.FindBook{}

	if q := request.QueryStringParam(r, "q", ""); q != "" {
		find.Query = &q
	}
	if author := request.QueryStringParam(r, "author", ""); author != "" {
		find.Author = &author
	}
	if tag := request.QueryStringParam(r, "tag", ""); tag != "" {
		find.Tag = &tag
	}
	switch request.QueryStringParam(r, "community", "") {
	case "true":
		community := true
		find.IsCommunity = &community
	case "false":
		community := false
		find.IsCommunity = &community
	}
	if min := request.QueryFloatParam(r, "min_rating", -1); min >= 0 {
		find.MinRating = &min
	}
	if max := request.QueryFloatParam(r, "max_rating", -1); max >= 0 {
		find.MaxRating = &max
	}
	find.SortBy = request.QueryStringParam(r, "sort", model.BookSortNewest)

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

	total, err := h.store.CountBooks(find)
	if err != nil {
		log.Error("Failed to count books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	books, err := h.store.ListBooks(find)
	if err != nil {
		log.Error("Failed to list books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, &bookListResponse{Books: books, Total: total, Page: page, Limit: limit})
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
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

	response.OK(w, r, book)
}

func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) {
	if !auth.CanMutateBook(request.IsAdmin(r)) {
		response.Forbidden(w, r)
		return
	}

	var create model.BookCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	if err := validator.ValidateBookCreateRequest(&create); err != nil {
		response.DomainError(w, r, err)
		return
	}

	book, err := h.store.CreateBook(&model.Book{
		Title:       strings.TrimSpace(create.Title),
		Author:      create.Author,
		Description: create.Description,
		Category:    create.Category,
		Tags:        create.Tags,
	})
	if err != nil {
		response.DomainError(w, r, err)
		return
	}

	response.Created(w, r, book)
}

func (h *Handler) createCommunityBook(w http.ResponseWriter, r *http.Request) {
	var create model.BookCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	if err := validator.ValidateBookCreateRequest(&create); err != nil {
		response.DomainError(w, r, err)
		return
	}

	title := strings.TrimSpace(create.Title)
	existing, err := h.store.GetBook(&model.FindBook{TitleEqual: &title})
	if err != nil {
		log.Error("Failed to check for duplicate title", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if existing != nil {
		response.Conflict(w, r, errors.New("a book with this title already exists"))
		return
	}

	userID := request.GetUserID(r)
	book, err := h.store.CreateBook(&model.Book{
		Title:       title,
		Author:      create.Author,
		Description: create.Description,
		Category:    create.Category,
		Tags:        create.Tags,
		IsCommunity: true,
		CreatedBy:   &userID,
	})
	if err != nil {
		response.DomainError(w, r, err)
		return
	}

	response.Created(w, r, book)
}

func (h *Handler) updateBook(w http.ResponseWriter, r *http.Request) {
	if !auth.CanMutateBook(request.IsAdmin(r)) {
		response.Forbidden(w, r)
		return
	}

	var patch model.BookUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	book, err := h.store.UpdateBook(request.RouteInt32Param(r, "id"), &patch)
	if err != nil {
		response.DomainError(w, r, err)
		return
	}

	response.OK(w, r, book)
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	if !auth.CanMutateBook(request.IsAdmin(r)) {
		response.Forbidden(w, r)
		return
	}

	if err := h.store.DeleteBook(request.RouteInt32Param(r, "id")); err != nil {
		response.DomainError(w, r, err)
		return
	}

	response.NoContent(w, r)
}
