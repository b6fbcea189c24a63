package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/bookverse/bookverse/errors"
	"github.com/bookverse/bookverse/log"
	"github.com/bookverse/bookverse/model"
	"github.com/bookverse/bookverse/util"
	"go.uber.org/zap"
)

func (s *Store) CreateBook(create *model.Book) (*model.Book, error) {
	if create.UUID == "" {
		create.UUID = util.GenUUID()
	}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stmt := `
	INSERT INTO books (
	         uuid,
	         title,
	         author,
	         description,
	         category,
	         created_by,
	         is_community
	)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	RETURNING id, average_rating, ratings_count, created_ts, updated_ts`
	args := []any{
		create.UUID,
		create.Title,
		create.Author,
		create.Description,
		create.Category,
		create.CreatedBy,
		create.IsCommunity,
	}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	if err := tx.QueryRow(stmt, args...).Scan(
		&create.ID,
		&create.AverageRating,
		&create.RatingsCount,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		log.Error("Failed to insert book", zap.Error(err))
		return nil, err
	}

	if err := replaceBookTags(tx, create.ID, create.Tags); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if create.Tags == nil {
		create.Tags = []string{}
	}
	s.BookCache.Store(create.ID, create)
	return create, nil
}

func (s *Store) GetBook(find *model.FindBook) (*model.Book, error) {
	if find.ID != nil {
		if cache, ok := s.BookCache.Load(*find.ID); ok {
			return cache.(*model.Book), nil
		}
	}

	list, err := s.ListBooks(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	book := list[0]
	s.BookCache.Store(book.ID, book)
	return book, nil
}

func (s *Store) ListBooks(find *model.FindBook) ([]*model.Book, error) {
	where, args := bookFilter(find)

	orderBy := []string{"created_ts DESC", "id DESC"}
	if find.SortBy == model.BookSortRating {
		orderBy = []string{"average_rating DESC", "ratings_count DESC"}
	}

	query := `
        SELECT
            id,
            uuid,
            title,
            author,
            description,
            category,
            average_rating,
            ratings_count,
            created_by,
            is_community,
            created_ts,
            updated_ts
        FROM books
    WHERE ` + strings.Join(where, " AND ") + ` ORDER BY ` + strings.Join(orderBy, ", ")
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
		log.Error("Failed to query books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Book, 0)
	for rows.Next() {
		var book model.Book
		if err := rows.Scan(
			&book.ID,
			&book.UUID,
			&book.Title,
			&book.Author,
			&book.Description,
			&book.Category,
			&book.AverageRating,
			&book.RatingsCount,
			&book.CreatedBy,
			&book.IsCommunity,
			&book.CreatedTs,
			&book.UpdatedTs,
		); err != nil {
			log.Error("Failed to scan book", zap.Error(err))
			return nil, err
		}
		list = append(list, &book)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, book := range list {
		tags, err := s.listBookTags(book.ID)
		if err != nil {
			return nil, err
		}
		book.Tags = tags
	}

	return list, nil
}

// CountBooks returns the total number of books matching the filter,
// ignoring pagination. Used for the list total.
func (s *Store) CountBooks(find *model.FindBook) (int, error) {
	where, args := bookFilter(find)

	query := `SELECT COUNT(*) FROM books WHERE ` + strings.Join(where, " AND ")

	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		log.Error("Failed to count books", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func bookFilter(find *model.FindBook) ([]string, []any) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.UUID; v != nil {
		where, args = append(where, "uuid = ?"), append(args, *v)
	}
	if v := find.TitleEqual; v != nil {
		where, args = append(where, "LOWER(title) = LOWER(?)"), append(args, strings.TrimSpace(*v))
	}
	if v := find.Query; v != nil {
		where = append(where, "(title LIKE ? OR description LIKE ?)")
		args = append(args, "%"+*v+"%", "%"+*v+"%")
	}
	if v := find.Author; v != nil {
		where, args = append(where, "author LIKE ?"), append(args, "%"+*v+"%")
	}
	if v := find.Tag; v != nil {
		where = append(where, "id IN (SELECT book_id FROM book_tags WHERE tag = ?)")
		args = append(args, *v)
	}
	if v := find.IsCommunity; v != nil {
		where, args = append(where, "is_community = ?"), append(args, *v)
	}
	if v := find.CreatedBy; v != nil {
		where, args = append(where, "created_by = ?"), append(args, *v)
	}
	if v := find.MinRating; v != nil {
		where, args = append(where, "average_rating >= ?"), append(args, *v)
	}
	if v := find.MaxRating; v != nil {
		where, args = append(where, "average_rating <= ?"), append(args, *v)
	}

	return where, args
}

// UpdateBook replaces the provided fields on a book. A nil Tags slice keeps
// the existing tag set.
func (s *Store) UpdateBook(bookID int32, patch *model.BookUpdateRequest) (*model.Book, error) {
	set, args := []string{"updated_ts = strftime('%s', 'now')"}, []any{}

	if v := patch.Title; v != nil {
		set, args = append(set, "title = ?"), append(args, *v)
	}
	if v := patch.Author; v != nil {
		set, args = append(set, "author = ?"), append(args, *v)
	}
	if v := patch.Description; v != nil {
		set, args = append(set, "description = ?"), append(args, *v)
	}
	if v := patch.Category; v != nil {
		set, args = append(set, "category = ?"), append(args, *v)
	}
	args = append(args, bookID)

	s.dbLock.Lock()
	tx, err := s.db.Begin()
	if err != nil {
		s.dbLock.Unlock()
		return nil, err
	}

	stmt := `UPDATE books SET ` + strings.Join(set, ", ") + ` WHERE id = ?`

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	res, err := tx.Exec(stmt, args...)
	if err != nil {
		tx.Rollback()
		s.dbLock.Unlock()
		log.Error("Failed to update book", zap.Error(err))
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		s.dbLock.Unlock()
		return nil, err
	}
	if affected == 0 {
		tx.Rollback()
		s.dbLock.Unlock()
		return nil, errors.NotFound("book %d not found", bookID)
	}

	if patch.Tags != nil {
		if err := replaceBookTags(tx, bookID, patch.Tags); err != nil {
			tx.Rollback()
			s.dbLock.Unlock()
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.dbLock.Unlock()
		return nil, err
	}
	s.dbLock.Unlock()

	s.BookCache.Delete(bookID)
	return s.GetBook(&model.FindBook{ID: &bookID})
}

// DeleteBook removes a book and all of its reviews in one transaction.
// user_books rows are left in place, list queries join on books so the
// orphans never surface.
func (s *Store) DeleteBook(bookID int32) error {
	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM reviews WHERE book_id = ?`, bookID); err != nil {
		log.Error("Failed to delete book reviews", zap.Error(err))
		return err
	}

	res, err := tx.Exec(`DELETE FROM books WHERE id = ?`, bookID)
	if err != nil {
		log.Error("Failed to delete book", zap.Error(err))
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.NotFound("book %d not found", bookID)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.BookCache.Delete(bookID)
	return nil
}

// setBookRating writes a recomputed aggregate onto the book row.
func (s *Store) setBookRating(bookID int32, average float64, count int) error {
	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	stmt := `UPDATE books SET average_rating = ?, ratings_count = ?, updated_ts = strftime('%s', 'now') WHERE id = ?`
	if _, err := s.db.Exec(stmt, average, count, bookID); err != nil {
		return err
	}

	s.BookCache.Delete(bookID)
	return nil
}

func (s *Store) listBookTags(bookID int32) ([]string, error) {
	rows, err := s.db.Query(`SELECT tag FROM book_tags WHERE book_id = ? ORDER BY item_order`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]string, 0)
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func replaceBookTags(tx *sql.Tx, bookID int32, tags []string) error {
	if _, err := tx.Exec(`DELETE FROM book_tags WHERE book_id = ?`, bookID); err != nil {
		return err
	}
	for i, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, err := tx.Exec(
			`INSERT INTO book_tags (book_id, tag, item_order) VALUES (?, ?, ?) ON CONFLICT(book_id, tag) DO NOTHING`,
			bookID, tag, i,
		); err != nil {
			return err
		}
	}
	return nil
}
