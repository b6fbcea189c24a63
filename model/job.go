package model // import "github.com/bookverse/bookverse/model"

const (
	JobTypeRecomputeRating = "recompute_rating"
)

// Job is a background unit of work. Today the only job kind is a rating
// recompute retry, queued when the synchronous recompute after a committed
// review mutation fails.
type Job struct {
	Type    string
	BookID  int32
	Attempt int
}
