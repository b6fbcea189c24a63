package store

import (
	"fmt"
	"strings"

	"github.com/bookverse/bookverse/errors"
	"github.com/bookverse/bookverse/log"
	"github.com/bookverse/bookverse/model"
	"go.uber.org/zap"
)

func (s *Store) CreateUser(create *model.User) (*model.User, error) {
	if create.Role == "" {
		create.Role = model.RoleUser
	}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	stmt := `
	INSERT INTO users (
	         name,
	         email,
	         role,
	         password_hash
	)
	VALUES (?, ?, ?, ?)
	RETURNING id, created_ts, updated_ts`
	args := []any{create.Name, create.Email, create.Role, create.PasswordHash}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	if err := s.db.QueryRow(stmt, args...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, errors.Conflict("email already registered")
		}
		log.Error("Failed to insert user", zap.Error(err))
		return nil, err
	}

	s.UserCache.Store(create.ID, create)
	return create, nil
}

func (s *Store) GetUser(find *model.FindUser) (*model.User, error) {
	if find.ID != nil {
		if cache, ok := s.UserCache.Load(*find.ID); ok {
			return cache.(*model.User), nil
		}
	}

	list, err := s.ListUsers(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	user := list[0]
	s.UserCache.Store(user.ID, user)
	return user, nil
}

func (s *Store) ListUsers(find *model.FindUser) ([]*model.User, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.Name; v != nil {
		where, args = append(where, "name = ?"), append(args, *v)
	}
	if v := find.Email; v != nil {
		where, args = append(where, "email = ?"), append(args, *v)
	}
	if v := find.Role; v != nil {
		where, args = append(where, "role = ?"), append(args, *v)
	}

	// Here will return password_hash, so need to be careful
	// If need to response to client, use response.UserResponse to remove it
	query := `
		SELECT
			id,
			name,
			email,
			role,
			password_hash,
			created_ts,
			updated_ts
		FROM users
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.User, 0)
	for rows.Next() {
		var user model.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Role,
			&user.PasswordHash,
			&user.CreatedTs,
			&user.UpdatedTs,
		); err != nil {
			log.Error("Failed to scan user", zap.Error(err))
			return nil, err
		}
		list = append(list, &user)
	}
	return list, rows.Err()
}

// UpdateUser applies a partial update, also used to flip the role on
// promote/demote.
func (s *Store) UpdateUser(update *model.UpdateUser) (*model.User, error) {
	set, args := []string{"updated_ts = strftime('%s', 'now')"}, []any{}

	if v := update.Name; v != nil {
		set, args = append(set, "name = ?"), append(args, *v)
	}
	if v := update.Email; v != nil {
		set, args = append(set, "email = ?"), append(args, *v)
	}
	if v := update.PasswordHash; v != nil {
		set, args = append(set, "password_hash = ?"), append(args, *v)
	}
	if v := update.Role; v != nil {
		set, args = append(set, "role = ?"), append(args, *v)
	}
	args = append(args, update.ID)

	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	stmt := `UPDATE users SET ` + strings.Join(set, ", ") + ` WHERE id = ?`

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	res, err := s.db.Exec(stmt, args...)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, errors.Conflict("email already registered")
		}
		log.Error("Failed to update user", zap.Error(err))
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errors.NotFound("user %d not found", update.ID)
	}

	s.UserCache.Delete(update.ID)

	user, err := s.ListUsers(&model.FindUser{ID: &update.ID})
	if err != nil {
		return nil, err
	}
	if len(user) == 0 {
		return nil, errors.NotFound("user %d not found", update.ID)
	}
	return user[0], nil
}
