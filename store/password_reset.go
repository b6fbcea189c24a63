package store

import (
	"database/sql"

	"github.com/bookverse/bookverse/errors"
	"github.com/bookverse/bookverse/log"
	"github.com/bookverse/bookverse/model"
	"go.uber.org/zap"
)

func (s *Store) CreatePasswordReset(create *model.PasswordReset) (*model.PasswordReset, error) {
	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	stmt := `
	INSERT INTO password_resets (
	         user_id,
	         token,
	         expires_ts
	)
	VALUES (?, ?, ?)
	RETURNING id, created_ts`

	if err := s.db.QueryRow(stmt, create.UserID, create.Token, create.ExpiresTs).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		log.Error("Failed to insert password reset", zap.Error(err))
		return nil, err
	}
	return create, nil
}

func (s *Store) GetPasswordReset(token string) (*model.PasswordReset, error) {
	query := `
        SELECT
            id,
            user_id,
            token,
            expires_ts,
            created_ts
        FROM password_resets
        WHERE token = ?`

	var reset model.PasswordReset
	err := s.db.QueryRow(query, token).Scan(
		&reset.ID,
		&reset.UserID,
		&reset.Token,
		&reset.ExpiresTs,
		&reset.CreatedTs,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &reset, nil
}

// DeletePasswordResetsByUser drops all outstanding tokens for a user, called
// once a reset is consumed.
func (s *Store) DeletePasswordResetsByUser(userID int32) error {
	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	if _, err := s.db.Exec(`DELETE FROM password_resets WHERE user_id = ?`, userID); err != nil {
		log.Error("Failed to delete password resets", zap.Error(err))
		return err
	}
	return nil
}
