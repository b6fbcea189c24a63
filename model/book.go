package model // import "github.com/bookverse/bookverse/model"

type Book struct {
	ID            int32    `json:"id"`
	UUID          string   `json:"uuid"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	AverageRating float64  `json:"average_rating"`
	RatingsCount  int      `json:"ratings_count"`
	CreatedBy     *int32   `json:"created_by,omitempty"`
	IsCommunity   bool     `json:"is_community"`
	CreatedTs     int64    `json:"created_ts"`
	UpdatedTs     int64    `json:"updated_ts"`
}

// Book list sort orders.
const (
	BookSortNewest = "newest"
	BookSortRating = "rating"
)

type FindBook struct {
	ID         *int32  `json:"id"`
	UUID       *string `json:"uuid"`
	TitleEqual *string `json:"title"` // case-insensitive exact match

	// Query matches title or description, case-insensitive substring.
	Query       *string  `json:"q"`
	Author      *string  `json:"author"` // case-insensitive substring
	Tag         *string  `json:"tag"`
	IsCommunity *bool    `json:"is_community"`
	CreatedBy   *int32   `json:"created_by"`
	MinRating   *float64 `json:"min_rating"`
	MaxRating   *float64 `json:"max_rating"`

	// SortBy is BookSortNewest (default) or BookSortRating.
	SortBy string `json:"sort_by"`

	Offset *int `json:"offset"`
	Limit  *int `json:"limit"`
}

type BookCreateRequest struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

// BookUpdateRequest replaces the provided fields. Nil fields are left
// untouched; a nil Tags slice keeps the existing tag set while an empty
// non-nil slice clears it.
type BookUpdateRequest struct {
	Title       *string  `json:"title"`
	Author      *string  `json:"author"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Tags        []string `json:"tags"`
}
