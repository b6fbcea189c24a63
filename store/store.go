package store // import "github.com/bookverse/bookverse/store"

import (
	"database/sql"
	"sync"
)

type Store struct {
	db        *sql.DB
	dbLock    sync.Mutex // dbLock serializes writes, sqlite allows one writer
	jobs      JobPusher
	UserCache sync.Map // map[int32]*model.User
	BookCache sync.Map // map[int32]*model.Book
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) DBStats() sql.DBStats {
	return s.db.Stats()
}

func (s *Store) Ping() error {
	return s.db.Ping()
}
