package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/bookverse/bookverse/auth"
	"github.com/bookverse/bookverse/errors"
	"github.com/bookverse/bookverse/log"
	"github.com/bookverse/bookverse/model"
	"go.uber.org/zap"
)

// JobPusher is the slice of the worker pool the store needs to hand off a
// failed aggregate write for retry.
type JobPusher interface {
	Push(job model.Job)
}

// SetJobQueue wires the background pool used to retry failed rating
// recomputations. Optional, tests run without one.
func (s *Store) SetJobQueue(q JobPusher) {
	s.jobs = q
}

// CreateReview persists a review and recomputes the book aggregate.
func (s *Store) CreateReview(create *model.Review) (*model.Review, error) {
	if create.Rating < 1 || create.Rating > 5 {
		return nil, errors.Validation("rating must be an integer between 1 and 5")
	}

	book, err := s.GetBook(&model.FindBook{ID: &create.BookID})
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, errors.NotFound("book %d not found", create.BookID)
	}

	s.dbLock.Lock()
	stmt := `
	INSERT INTO reviews (
	         book_id,
	         user_id,
	         rating,
	         title,
	         body
	)
	VALUES (?, ?, ?, ?, ?)
	RETURNING id, created_ts, updated_ts`
	args := []any{
		create.BookID,
		create.UserID,
		create.Rating,
		create.Title,
		create.Body,
	}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	if err := s.db.QueryRow(stmt, args...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		s.dbLock.Unlock()
		log.Error("Failed to insert review", zap.Error(err))
		return nil, err
	}
	s.dbLock.Unlock()

	s.recomputeOrEnqueue(create.BookID)
	return create, nil
}

func (s *Store) GetReview(find *model.FindReview) (*model.Review, error) {
	list, err := s.ListReviews(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) ListReviews(find *model.FindReview) ([]*model.Review, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.BookID; v != nil {
		where, args = append(where, "book_id = ?"), append(args, *v)
	}
	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = ?"), append(args, *v)
	}

	query := `
        SELECT
            id,
            book_id,
            user_id,
            rating,
            title,
            body,
            created_ts,
            updated_ts
        FROM reviews
    WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC, id DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query reviews", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Review, 0)
	for rows.Next() {
		var review model.Review
		if err := rows.Scan(
			&review.ID,
			&review.BookID,
			&review.UserID,
			&review.Rating,
			&review.Title,
			&review.Body,
			&review.CreatedTs,
			&review.UpdatedTs,
		); err != nil {
			log.Error("Failed to scan review", zap.Error(err))
			return nil, err
		}
		list = append(list, &review)
	}
	return list, rows.Err()
}

// UpdateReview applies a partial update. Only the review owner may edit,
// admins get delete rights but not edit rights. Nil patch fields are left
// untouched, an explicit empty string is persisted.
func (s *Store) UpdateReview(reviewID, actorID int32, patch *model.ReviewUpdateRequest) (*model.Review, error) {
	review, err := s.GetReview(&model.FindReview{ID: &reviewID})
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, errors.NotFound("review %d not found", reviewID)
	}
	if !auth.IsOwner(actorID, review.UserID) {
		return nil, errors.Forbidden("only the review owner may edit it")
	}

	set, args := []string{"updated_ts = strftime('%s', 'now')"}, []any{}
	if v := patch.Rating; v != nil {
		if *v < 1 || *v > 5 {
			return nil, errors.Validation("rating must be an integer between 1 and 5")
		}
		set, args = append(set, "rating = ?"), append(args, *v)
	}
	if v := patch.Title; v != nil {
		set, args = append(set, "title = ?"), append(args, *v)
	}
	if v := patch.Body; v != nil {
		set, args = append(set, "body = ?"), append(args, *v)
	}
	args = append(args, reviewID)

	s.dbLock.Lock()
	stmt := `UPDATE reviews SET ` + strings.Join(set, ", ") + ` WHERE id = ?`

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	if _, err := s.db.Exec(stmt, args...); err != nil {
		s.dbLock.Unlock()
		log.Error("Failed to update review", zap.Error(err))
		return nil, err
	}
	s.dbLock.Unlock()

	s.recomputeOrEnqueue(review.BookID)
	return s.GetReview(&model.FindReview{ID: &reviewID})
}

// DeleteReview removes a review. The owner or an admin may delete. The
// aggregate is recomputed over the remaining reviews, resetting to zero
// when the set is emptied.
func (s *Store) DeleteReview(reviewID, actorID int32, actorIsAdmin bool) error {
	review, err := s.GetReview(&model.FindReview{ID: &reviewID})
	if err != nil {
		return err
	}
	if review == nil {
		return errors.NotFound("review %d not found", reviewID)
	}
	if !auth.CanMutateReview(actorID, review.UserID, actorIsAdmin) {
		return errors.Forbidden("only the review owner or an admin may delete it")
	}

	bookID := review.BookID

	s.dbLock.Lock()
	if _, err := s.db.Exec(`DELETE FROM reviews WHERE id = ?`, reviewID); err != nil {
		s.dbLock.Unlock()
		log.Error("Failed to delete review", zap.Error(err))
		return err
	}
	s.dbLock.Unlock()

	s.recomputeOrEnqueue(bookID)
	return nil
}

// ListRecentReviews returns the newest reviews joined with their author and
// book, for the public feed.
func (s *Store) ListRecentReviews(limit int) ([]*model.RecentReview, error) {
	query := `
        SELECT
            r.id,
            r.book_id,
            r.user_id,
            r.rating,
            r.title,
            r.body,
            r.created_ts,
            r.updated_ts,
            u.name,
            b.title,
            b.author
        FROM reviews r
        JOIN users u ON u.id = r.user_id
        JOIN books b ON b.id = r.book_id
        ORDER BY r.created_ts DESC, r.id DESC
        LIMIT ?`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		log.Error("Failed to query recent reviews", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.RecentReview, 0)
	for rows.Next() {
		var review model.RecentReview
		if err := rows.Scan(
			&review.ID,
			&review.BookID,
			&review.UserID,
			&review.Rating,
			&review.Title,
			&review.Body,
			&review.CreatedTs,
			&review.UpdatedTs,
			&review.UserName,
			&review.BookTitle,
			&review.BookAuthor,
		); err != nil {
			return nil, err
		}
		list = append(list, &review)
	}
	return list, rows.Err()
}

func (s *Store) CountReviewsByUser(userID int32) (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM reviews WHERE user_id = ?`, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// RecomputeBookRating recalculates the book aggregate from a full scan of
// its current reviews. There is no incremental path, every review mutation
// ends here, including a delete that empties the set.
func (s *Store) RecomputeBookRating(bookID int32) error {
	var count int
	var avg sql.NullFloat64
	if err := s.db.QueryRow(`SELECT COUNT(*), AVG(rating) FROM reviews WHERE book_id = ?`, bookID).Scan(&count, &avg); err != nil {
		return err
	}

	average := 0.0
	if count > 0 && avg.Valid {
		average = avg.Float64
	}
	return s.setBookRating(bookID, average, count)
}

// recomputeOrEnqueue runs the synchronous aggregate recomputation. The
// review mutation is already committed at this point, so a failure is not
// rolled back: it is logged and handed to the worker pool for retry.
func (s *Store) recomputeOrEnqueue(bookID int32) {
	if err := s.RecomputeBookRating(bookID); err != nil {
		log.Error("Failed to recompute book rating, scheduling retry",
			zap.Int32("book_id", bookID),
			zap.Error(err),
		)
		if s.jobs != nil {
			s.jobs.Push(model.Job{Type: model.JobTypeRecomputeRating, BookID: bookID})
		}
	}
}
