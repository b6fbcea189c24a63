package store

import (
	"testing"

	"github.com/bookverse/bookverse/errors"
	"github.com/bookverse/bookverse/model"
)

func assertBookRating(t *testing.T, s *Store, bookID int32, wantAverage float64, wantCount int) {
	t.Helper()

	book, err := s.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		t.Fatalf("Failed to get book: %v", err)
	}
	if book == nil {
		t.Fatalf("Book %d not found", bookID)
	}
	if book.AverageRating != wantAverage {
		t.Errorf("average rating = %v, want %v", book.AverageRating, wantAverage)
	}
	if book.RatingsCount != wantCount {
		t.Errorf("ratings count = %d, want %d", book.RatingsCount, wantCount)
	}
}

func TestReviewLifecycleRecomputesRating(t *testing.T) {
	s := newTestStore(t)
	alice := createTestUser(t, s, "alice", "alice@example.com", model.RoleUser)
	bob := createTestUser(t, s, "bob", "bob@example.com", model.RoleUser)
	book := createTestBook(t, s, "Dune")

	first, err := s.CreateReview(&model.Review{BookID: book.ID, UserID: alice.ID, Rating: 4, Title: "Solid"})
	if err != nil {
		t.Fatalf("Failed to create review: %v", err)
	}
	assertBookRating(t, s, book.ID, 4.0, 1)

	second, err := s.CreateReview(&model.Review{BookID: book.ID, UserID: bob.ID, Rating: 5, Title: "Loved it"})
	if err != nil {
		t.Fatalf("Failed to create review: %v", err)
	}
	assertBookRating(t, s, book.ID, 4.5, 2)

	if err := s.DeleteReview(second.ID, bob.ID, false); err != nil {
		t.Fatalf("Failed to delete review: %v", err)
	}
	assertBookRating(t, s, book.ID, 4.0, 1)

	// Deleting the last review resets the aggregate to exactly zero.
	if err := s.DeleteReview(first.ID, alice.ID, false); err != nil {
		t.Fatalf("Failed to delete review: %v", err)
	}
	assertBookRating(t, s, book.ID, 0.0, 0)
}

func TestCreateReviewValidation(t *testing.T) {
	s := newTestStore(t)
	alice := createTestUser(t, s, "alice", "alice@example.com", model.RoleUser)
	book := createTestBook(t, s, "Dune")

	for _, rating := range []int{0, 6, -1} {
		_, err := s.CreateReview(&model.Review{BookID: book.ID, UserID: alice.ID, Rating: rating})
		if !errors.Is(err, errors.ErrValidation) {
			t.Errorf("rating %d: got %v, want validation error", rating, err)
		}
	}

	_, err := s.CreateReview(&model.Review{BookID: 9999, UserID: alice.ID, Rating: 3})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("missing book: got %v, want not found error", err)
	}
}

func TestUpdateReviewOwnership(t *testing.T) {
	s := newTestStore(t)
	alice := createTestUser(t, s, "alice", "alice@example.com", model.RoleUser)
	bob := createTestUser(t, s, "bob", "bob@example.com", model.RoleUser)
	admin := createTestUser(t, s, "root", "root@example.com", model.RoleAdmin)
	book := createTestBook(t, s, "Dune")

	review, err := s.CreateReview(&model.Review{BookID: book.ID, UserID: alice.ID, Rating: 4, Title: "Solid", Body: "Good read"})
	if err != nil {
		t.Fatalf("Failed to create review: %v", err)
	}

	// Neither another user nor an admin may edit.
	newRating := 1
	for _, actor := range []int32{bob.ID, admin.ID} {
		_, err := s.UpdateReview(review.ID, actor, &model.ReviewUpdateRequest{Rating: &newRating})
		if !errors.Is(err, errors.ErrForbidden) {
			t.Errorf("actor %d: got %v, want forbidden error", actor, err)
		}
	}

	unchanged, err := s.GetReview(&model.FindReview{ID: &review.ID})
	if err != nil {
		t.Fatalf("Failed to get review: %v", err)
	}
	if unchanged.Rating != 4 || unchanged.Title != "Solid" {
		t.Errorf("review changed by forbidden update: %+v", unchanged)
	}

	// Admin may delete even without ownership.
	if err := s.DeleteReview(review.ID, admin.ID, true); err != nil {
		t.Fatalf("Admin delete failed: %v", err)
	}
	assertBookRating(t, s, book.ID, 0.0, 0)
}

func TestUpdateReviewPartialPatch(t *testing.T) {
	s := newTestStore(t)
	alice := createTestUser(t, s, "alice", "alice@example.com", model.RoleUser)
	book := createTestBook(t, s, "Dune")

	review, err := s.CreateReview(&model.Review{BookID: book.ID, UserID: alice.ID, Rating: 4, Title: "Solid", Body: "Good read"})
	if err != nil {
		t.Fatalf("Failed to create review: %v", err)
	}

	// An explicit empty title is persisted, nil fields stay untouched.
	empty := ""
	updated, err := s.UpdateReview(review.ID, alice.ID, &model.ReviewUpdateRequest{Title: &empty})
	if err != nil {
		t.Fatalf("Failed to update review: %v", err)
	}
	if updated.Title != "" {
		t.Errorf("title = %q, want empty", updated.Title)
	}
	if updated.Rating != 4 || updated.Body != "Good read" {
		t.Errorf("untouched fields changed: %+v", updated)
	}

	rating := 2
	updated, err = s.UpdateReview(review.ID, alice.ID, &model.ReviewUpdateRequest{Rating: &rating})
	if err != nil {
		t.Fatalf("Failed to update rating: %v", err)
	}
	if updated.Rating != 2 {
		t.Errorf("rating = %d, want 2", updated.Rating)
	}
	assertBookRating(t, s, book.ID, 2.0, 1)

	bad := 7
	if _, err := s.UpdateReview(review.ID, alice.ID, &model.ReviewUpdateRequest{Rating: &bad}); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("rating 7: got %v, want validation error", err)
	}

	if _, err := s.UpdateReview(9999, alice.ID, &model.ReviewUpdateRequest{Rating: &rating}); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("missing review: got %v, want not found error", err)
	}
}

func TestListRecentReviews(t *testing.T) {
	s := newTestStore(t)
	alice := createTestUser(t, s, "alice", "alice@example.com", model.RoleUser)
	dune := createTestBook(t, s, "Dune")
	hyperion := createTestBook(t, s, "Hyperion")

	if _, err := s.CreateReview(&model.Review{BookID: dune.ID, UserID: alice.ID, Rating: 4}); err != nil {
		t.Fatalf("Failed to create review: %v", err)
	}
	if _, err := s.CreateReview(&model.Review{BookID: hyperion.ID, UserID: alice.ID, Rating: 5}); err != nil {
		t.Fatalf("Failed to create review: %v", err)
	}

	recent, err := s.ListRecentReviews(1)
	if err != nil {
		t.Fatalf("Failed to list recent reviews: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("got %d reviews, want 1", len(recent))
	}
	if recent[0].BookTitle != "Hyperion" {
		t.Errorf("newest review book = %q, want Hyperion", recent[0].BookTitle)
	}
	if recent[0].UserName != "alice" {
		t.Errorf("user name = %q, want alice", recent[0].UserName)
	}

	recent, err = s.ListRecentReviews(10)
	if err != nil {
		t.Fatalf("Failed to list recent reviews: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("got %d reviews, want 2", len(recent))
	}
}
