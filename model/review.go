package model // import "github.com/bookverse/bookverse/model"

type Review struct {
	ID        int32  `json:"id"`
	BookID    int32  `json:"book_id"`
	UserID    int32  `json:"user_id"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedTs int64  `json:"created_ts"`
	UpdatedTs int64  `json:"updated_ts"`
}

type FindReview struct {
	ID     *int32 `json:"id"`
	BookID *int32 `json:"book_id"`
	UserID *int32 `json:"user_id"`

	Limit *int `json:"limit"`
}

type ReviewCreateRequest struct {
	Rating int    `json:"rating"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// ReviewUpdateRequest is a partial update. Only non-nil fields are applied,
// so an explicit empty title or body is persisted rather than skipped.
type ReviewUpdateRequest struct {
	Rating *int    `json:"rating"`
	Title  *string `json:"title"`
	Body   *string `json:"body"`
}

// RecentReview is a review joined with its author and book for feeds.
type RecentReview struct {
	Review
	UserName   string `json:"user_name"`
	BookTitle  string `json:"book_title"`
	BookAuthor string `json:"book_author"`
}
