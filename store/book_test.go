package store

import (
	"testing"

	"github.com/bookverse/bookverse/errors"
	"github.com/bookverse/bookverse/model"
)

func TestCreateAndGetBook(t *testing.T) {
	s := newTestStore(t)

	book, err := s.CreateBook(&model.Book{
		Title:       "Dune",
		Author:      "Frank Herbert",
		Description: "Spice and sandworms",
		Category:    "science fiction",
		Tags:        []string{"classic", "space"},
	})
	if err != nil {
		t.Fatalf("Failed to create book: %v", err)
	}
	if book.ID == 0 {
		t.Fatal("book should have an id")
	}
	if book.UUID == "" {
		t.Fatal("book should have a uuid")
	}
	if book.AverageRating != 0 || book.RatingsCount != 0 {
		t.Errorf("new book should have a zero aggregate, got (%v, %d)", book.AverageRating, book.RatingsCount)
	}

	found, err := s.GetBook(&model.FindBook{ID: &book.ID})
	if err != nil {
		t.Fatalf("Failed to get book: %v", err)
	}
	if found == nil || found.Title != "Dune" {
		t.Fatalf("got %+v, want Dune", found)
	}
	if len(found.Tags) != 2 {
		t.Errorf("got %d tags, want 2", len(found.Tags))
	}

	// Title lookups are case-insensitive and trimmed.
	title := "  dUnE "
	found, err = s.GetBook(&model.FindBook{TitleEqual: &title})
	if err != nil {
		t.Fatalf("Failed to get book by title: %v", err)
	}
	if found == nil || found.ID != book.ID {
		t.Errorf("title lookup failed: %+v", found)
	}

	missing := int32(9999)
	found, err = s.GetBook(&model.FindBook{ID: &missing})
	if err != nil {
		t.Fatalf("Failed to query missing book: %v", err)
	}
	if found != nil {
		t.Errorf("got %+v, want nil", found)
	}
}

func TestListBooksFilters(t *testing.T) {
	s := newTestStore(t)
	alice := createTestUser(t, s, "alice", "alice@example.com", model.RoleUser)

	if _, err := s.CreateBook(&model.Book{Title: "Dune", Author: "Frank Herbert", Description: "Spice", Tags: []string{"classic"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateBook(&model.Book{Title: "Hyperion", Author: "Dan Simmons", Tags: []string{"space"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateBook(&model.Book{Title: "My Zine", Author: "Alice", IsCommunity: true, CreatedBy: &alice.ID}); err != nil {
		t.Fatal(err)
	}

	q := "spice"
	books, err := s.ListBooks(&model.FindBook{Query: &q})
	if err != nil {
		t.Fatalf("Failed to list books: %v", err)
	}
	if len(books) != 1 || books[0].Title != "Dune" {
		t.Errorf("query filter: got %d books", len(books))
	}

	author := "simmons"
	books, err = s.ListBooks(&model.FindBook{Author: &author})
	if err != nil {
		t.Fatalf("Failed to list books: %v", err)
	}
	if len(books) != 1 || books[0].Title != "Hyperion" {
		t.Errorf("author filter: got %d books", len(books))
	}

	tag := "classic"
	books, err = s.ListBooks(&model.FindBook{Tag: &tag})
	if err != nil {
		t.Fatalf("Failed to list books: %v", err)
	}
	if len(books) != 1 || books[0].Title != "Dune" {
		t.Errorf("tag filter: got %d books", len(books))
	}

	community := true
	books, err = s.ListBooks(&model.FindBook{IsCommunity: &community})
	if err != nil {
		t.Fatalf("Failed to list books: %v", err)
	}
	if len(books) != 1 || books[0].Title != "My Zine" {
		t.Errorf("community filter: got %d books", len(books))
	}

	community = false
	count, err := s.CountBooks(&model.FindBook{IsCommunity: &community})
	if err != nil {
		t.Fatalf("Failed to count books: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestListBooksSortByRating(t *testing.T) {
	s := newTestStore(t)
	alice := createTestUser(t, s, "alice", "alice@example.com", model.RoleUser)
	dune := createTestBook(t, s, "Dune")
	hyperion := createTestBook(t, s, "Hyperion")

	if _, err := s.CreateReview(&model.Review{BookID: dune.ID, UserID: alice.ID, Rating: 3}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateReview(&model.Review{BookID: hyperion.ID, UserID: alice.ID, Rating: 5}); err != nil {
		t.Fatal(err)
	}

	books, err := s.ListBooks(&model.FindBook{SortBy: model.BookSortRating})
	if err != nil {
		t.Fatalf("Failed to list books: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("got %d books, want 2", len(books))
	}
	if books[0].Title != "Hyperion" {
		t.Errorf("top rated = %q, want Hyperion", books[0].Title)
	}

	minRating := 4.0
	books, err = s.ListBooks(&model.FindBook{MinRating: &minRating})
	if err != nil {
		t.Fatalf("Failed to list books: %v", err)
	}
	if len(books) != 1 || books[0].Title != "Hyperion" {
		t.Errorf("min rating filter: got %d books", len(books))
	}
}

func TestListBooksPagination(t *testing.T) {
	s := newTestStore(t)
	titles := []string{"A", "B", "C", "D", "E"}
	for _, title := range titles {
		createTestBook(t, s, title)
	}

	limit, offset := 2, 0
	books, err := s.ListBooks(&model.FindBook{Limit: &limit, Offset: &offset})
	if err != nil {
		t.Fatalf("Failed to list books: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("page 1: got %d books, want 2", len(books))
	}

	offset = 4
	books, err = s.ListBooks(&model.FindBook{Limit: &limit, Offset: &offset})
	if err != nil {
		t.Fatalf("Failed to list books: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("last page: got %d books, want 1", len(books))
	}

	total, err := s.CountBooks(&model.FindBook{})
	if err != nil {
		t.Fatalf("Failed to count books: %v", err)
	}
	if total != len(titles) {
		t.Errorf("total = %d, want %d", total, len(titles))
	}
}

func TestUpdateBook(t *testing.T) {
	s := newTestStore(t)
	book := createTestBook(t, s, "Dune", "classic")

	author := "Frank Herbert"
	updated, err := s.UpdateBook(book.ID, &model.BookUpdateRequest{Author: &author})
	if err != nil {
		t.Fatalf("Failed to update book: %v", err)
	}
	if updated.Author != author {
		t.Errorf("author = %q, want %q", updated.Author, author)
	}
	if updated.Title != "Dune" {
		t.Errorf("untouched title changed: %q", updated.Title)
	}
	// A nil Tags slice keeps the existing tag set.
	if len(updated.Tags) != 1 {
		t.Errorf("tags = %v, want the original set", updated.Tags)
	}

	updated, err = s.UpdateBook(book.ID, &model.BookUpdateRequest{Tags: []string{}})
	if err != nil {
		t.Fatalf("Failed to clear tags: %v", err)
	}
	if len(updated.Tags) != 0 {
		t.Errorf("tags = %v, want empty", updated.Tags)
	}

	title := "Dune Messiah"
	if _, err := s.UpdateBook(9999, &model.BookUpdateRequest{Title: &title}); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("missing book: got %v, want not found error", err)
	}
}

func TestDeleteBookCascadesReviews(t *testing.T) {
	s := newTestStore(t)
	alice := createTestUser(t, s, "alice", "alice@example.com", model.RoleUser)
	book := createTestBook(t, s, "Dune")

	if _, err := s.CreateReview(&model.Review{BookID: book.ID, UserID: alice.ID, Rating: 5}); err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteBook(book.ID); err != nil {
		t.Fatalf("Failed to delete book: %v", err)
	}

	reviews, err := s.ListReviews(&model.FindReview{BookID: &book.ID})
	if err != nil {
		t.Fatalf("Failed to list reviews: %v", err)
	}
	if len(reviews) != 0 {
		t.Errorf("got %d reviews after book delete, want 0", len(reviews))
	}

	if err := s.DeleteBook(book.ID); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("second delete: got %v, want not found error", err)
	}
}
