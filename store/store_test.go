package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bookverse/bookverse/config"
	"github.com/bookverse/bookverse/log"
	"github.com/bookverse/bookverse/model"
	"github.com/bookverse/bookverse/store/db"
)

// Initialize the logger and config
func init() {
	config.Opts = config.GetDefaultOptions()
	log.Logger = log.NewLogger()
}

func newTestStore(t *testing.T) *Store {
	t.Helper()

	database, err := db.NewDB(filepath.Join(t.TempDir(), "bookverse_test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := database.ApplyLatestSchema(context.Background()); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return NewStore(database.DB)
}

func createTestUser(t *testing.T, s *Store, name, email string, role model.Role) *model.User {
	t.Helper()

	user, err := s.CreateUser(&model.User{
		Name:         name,
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Role:         role,
	})
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", email, err)
	}
	return user
}

func createTestBook(t *testing.T, s *Store, title string, tags ...string) *model.Book {
	t.Helper()

	book, err := s.CreateBook(&model.Book{
		Title:  title,
		Author: "Test Author",
		Tags:   tags,
	})
	if err != nil {
		t.Fatalf("Failed to create book %s: %v", title, err)
	}
	return book
}
