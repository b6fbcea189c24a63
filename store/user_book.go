package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/bookverse/bookverse/errors"
	"github.com/bookverse/bookverse/log"
	"github.com/bookverse/bookverse/model"
	"go.uber.org/zap"
)

// SetWishlist flips the wishlist flag on the (user, book) join record,
// creating it on first use. Removal keeps the row, only the flag changes.
func (s *Store) SetWishlist(userID, bookID int32, wishlisted bool) (*model.UserBook, error) {
	if wishlisted {
		// Only the add direction requires the book to exist, removal must
		// keep working for rows whose book is gone.
		book, err := s.GetBook(&model.FindBook{ID: &bookID})
		if err != nil {
			return nil, err
		}
		if book == nil {
			return nil, errors.NotFound("book %d not found", bookID)
		}
	}

	set := []string{
		"is_wishlisted = EXCLUDED.is_wishlisted",
		"updated_ts = strftime('%s', 'now')",
	}
	if wishlisted {
		set = append(set, "date_added = strftime('%s', 'now')")
	}

	stmt := `
	INSERT INTO user_books (
	         user_id,
	         book_id,
	         is_wishlisted
	)
	VALUES (?, ?, ?)
	ON CONFLICT(user_id, book_id) DO UPDATE
	SET ` + strings.Join(set, ",\n\t    ")
	args := []any{userID, bookID, wishlisted}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	if _, err := tx.Exec(stmt, args...); err != nil {
		log.Error("Failed to upsert wishlist flag", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.GetUserBook(userID, bookID)
}

// SetReadingStatus upserts the reading status on the (user, book) record.
// Entering "reading" or "completed" without an explicit timestamp stamps
// the current time. Stamps are accumulated, a later transition away never
// clears them.
func (s *Store) SetReadingStatus(userID, bookID int32, status model.ReadingStatus, dateStarted, dateCompleted *int64, notes *string) (*model.UserBook, error) {
	if !status.IsValid() {
		return nil, errors.Validation("invalid reading status %q", status)
	}

	book, err := s.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, errors.NotFound("book %d not found", bookID)
	}

	if status == model.ReadingStatusReading && dateStarted == nil {
		now := nowUnix()
		dateStarted = &now
	}
	if status == model.ReadingStatusCompleted && dateCompleted == nil {
		now := nowUnix()
		dateCompleted = &now
	}

	set := []string{
		"reading_status = EXCLUDED.reading_status",
		"updated_ts = strftime('%s', 'now')",
	}
	if dateStarted != nil {
		set = append(set, "date_started = EXCLUDED.date_started")
	}
	if dateCompleted != nil {
		set = append(set, "date_completed = EXCLUDED.date_completed")
	}
	if notes != nil {
		set = append(set, "notes = EXCLUDED.notes")
	}

	noteValue := ""
	if notes != nil {
		noteValue = *notes
	}

	stmt := `
	INSERT INTO user_books (
	         user_id,
	         book_id,
	         reading_status,
	         date_started,
	         date_completed,
	         notes
	)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(user_id, book_id) DO UPDATE
	SET ` + strings.Join(set, ",\n\t    ")
	args := []any{userID, bookID, status, dateStarted, dateCompleted, noteValue}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	if _, err := tx.Exec(stmt, args...); err != nil {
		log.Error("Failed to upsert reading status", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.GetUserBook(userID, bookID)
}

func (s *Store) GetUserBook(userID, bookID int32) (*model.UserBook, error) {
	query := `
        SELECT
            id,
            user_id,
            book_id,
            is_wishlisted,
            reading_status,
            date_added,
            date_started,
            date_completed,
            notes,
            created_ts,
            updated_ts
        FROM user_books
        WHERE user_id = ? AND book_id = ?`

	var ub model.UserBook
	err := s.db.QueryRow(query, userID, bookID).Scan(
		&ub.ID,
		&ub.UserID,
		&ub.BookID,
		&ub.IsWishlisted,
		&ub.ReadingStatus,
		&ub.DateAdded,
		&ub.DateStarted,
		&ub.DateCompleted,
		&ub.Notes,
		&ub.CreatedTs,
		&ub.UpdatedTs,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Error("Failed to get user book", zap.Error(err))
		return nil, err
	}
	return &ub, nil
}

func nowUnix() int64 {
	return time.Now().Unix()
}

// ListUserBookEntries lists join rows with their book. The join on books
// hides rows whose book has been deleted.
func (s *Store) ListUserBookEntries(find *model.FindUserBook) ([]*model.UserBookEntry, error) {
	where, args := userBookFilter(find)

	orderBy := "ub.date_added DESC"
	if find.ReadingStatus != nil {
		orderBy = "ub.date_started DESC"
	}

	query := `
        SELECT
            b.id,
            b.uuid,
            b.title,
            b.author,
            b.description,
            b.category,
            b.average_rating,
            b.ratings_count,
            b.created_by,
            b.is_community,
            b.created_ts,
            b.updated_ts,
            ub.is_wishlisted,
            ub.reading_status,
            ub.date_added,
            ub.date_started,
            ub.date_completed
        FROM user_books ub
        JOIN books b ON b.id = ub.book_id
    WHERE ` + strings.Join(where, " AND ") + ` ORDER BY ` + orderBy
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
		if o := find.Offset; o != nil {
			query += fmt.Sprintf(" OFFSET %d", *o)
		}
	}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query user books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.UserBookEntry, 0)
	for rows.Next() {
		var entry model.UserBookEntry
		if err := rows.Scan(
			&entry.Book.ID,
			&entry.Book.UUID,
			&entry.Book.Title,
			&entry.Book.Author,
			&entry.Book.Description,
			&entry.Book.Category,
			&entry.Book.AverageRating,
			&entry.Book.RatingsCount,
			&entry.Book.CreatedBy,
			&entry.Book.IsCommunity,
			&entry.Book.CreatedTs,
			&entry.Book.UpdatedTs,
			&entry.IsWishlisted,
			&entry.ReadingStatus,
			&entry.DateAdded,
			&entry.DateStarted,
			&entry.DateCompleted,
		); err != nil {
			return nil, err
		}
		list = append(list, &entry)
	}
	return list, rows.Err()
}

// CountUserBooks counts join rows matching the filter, joining books so
// orphaned rows stay invisible here too.
func (s *Store) CountUserBooks(find *model.FindUserBook) (int, error) {
	where, args := userBookFilter(find)

	query := `SELECT COUNT(*) FROM user_books ub JOIN books b ON b.id = ub.book_id WHERE ` + strings.Join(where, " AND ")

	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func userBookFilter(find *model.FindUserBook) ([]string, []any) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "ub.user_id = ?"), append(args, *v)
	}
	if v := find.BookID; v != nil {
		where, args = append(where, "ub.book_id = ?"), append(args, *v)
	}
	if v := find.IsWishlisted; v != nil {
		where, args = append(where, "ub.is_wishlisted = ?"), append(args, *v)
	}
	if v := find.ReadingStatus; v != nil {
		where, args = append(where, "ub.reading_status = ?"), append(args, *v)
	}

	return where, args
}
