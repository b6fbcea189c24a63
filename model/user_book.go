package model // import "github.com/bookverse/bookverse/model"

// ReadingStatus is the lifecycle state a user assigns to a book.
type ReadingStatus string

const (
	ReadingStatusNone       ReadingStatus = "none"
	ReadingStatusWantToRead ReadingStatus = "want_to_read"
	ReadingStatusReading    ReadingStatus = "reading"
	ReadingStatusCompleted  ReadingStatus = "completed"
)

func (s ReadingStatus) IsValid() bool {
	switch s {
	case ReadingStatusNone, ReadingStatusWantToRead, ReadingStatusReading, ReadingStatusCompleted:
		return true
	}
	return false
}

func (s ReadingStatus) String() string {
	return string(s)
}

// UserBook is the join record between a user and a book. At most one record
// exists per (user, book) pair; rows are never deleted, wishlist removal
// just clears the flag.
type UserBook struct {
	ID            int32         `json:"id"`
	UserID        int32         `json:"user_id"`
	BookID        int32         `json:"book_id"`
	IsWishlisted  bool          `json:"is_wishlisted"`
	ReadingStatus ReadingStatus `json:"reading_status"`
	DateAdded     int64         `json:"date_added"`
	DateStarted   *int64        `json:"date_started,omitempty"`
	DateCompleted *int64        `json:"date_completed,omitempty"`
	Notes         string        `json:"notes"`
	CreatedTs     int64         `json:"created_ts"`
	UpdatedTs     int64         `json:"updated_ts"`
}

type FindUserBook struct {
	UserID        *int32         `json:"user_id"`
	BookID        *int32         `json:"book_id"`
	IsWishlisted  *bool          `json:"is_wishlisted"`
	ReadingStatus *ReadingStatus `json:"reading_status"`

	Offset *int `json:"offset"`
	Limit  *int `json:"limit"`
}

type ReadingStatusRequest struct {
	Status ReadingStatus `json:"status"`
	// Optional explicit timestamps. When absent, entering "reading" or
	// "completed" stamps the current time.
	DateStarted   *int64  `json:"date_started"`
	DateCompleted *int64  `json:"date_completed"`
	Notes         *string `json:"notes"`
}

// UserBookEntry is a join row with its book, for wishlist/reading lists.
// Rows whose book has been deleted never appear here, the list queries join
// on books.
type UserBookEntry struct {
	Book          Book          `json:"book"`
	IsWishlisted  bool          `json:"is_wishlisted"`
	ReadingStatus ReadingStatus `json:"reading_status"`
	DateAdded     int64         `json:"date_added"`
	DateStarted   *int64        `json:"date_started,omitempty"`
	DateCompleted *int64        `json:"date_completed,omitempty"`
}
