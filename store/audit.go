package store

import (
	"fmt"
	"strings"

	"github.com/bookverse/bookverse/log"
	"github.com/bookverse/bookverse/model"
	"go.uber.org/zap"
)

// CreateAudit appends a record to the audit log. There is no update or
// delete path, the table is append-only.
func (s *Store) CreateAudit(create *model.Audit) (*model.Audit, error) {
	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	stmt := `
	INSERT INTO audits (
	         action,
	         actor_id,
	         target_id,
	         target_email
	)
	VALUES (?, ?, ?, ?)
	RETURNING id, created_ts`
	args := []any{create.Action, create.ActorID, create.TargetID, create.TargetEmail}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	if err := s.db.QueryRow(stmt, args...).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		log.Error("Failed to insert audit record", zap.Error(err))
		return nil, err
	}
	return create, nil
}

func (s *Store) ListAudits(find *model.FindAudit) ([]*model.Audit, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ActorID; v != nil {
		where, args = append(where, "actor_id = ?"), append(args, *v)
	}
	if v := find.TargetID; v != nil {
		where, args = append(where, "target_id = ?"), append(args, *v)
	}
	if v := find.Action; v != nil {
		where, args = append(where, "action = ?"), append(args, *v)
	}

	query := `
        SELECT
            id,
            action,
            actor_id,
            target_id,
            target_email,
            created_ts
        FROM audits
    WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC, id DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query audits", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Audit, 0)
	for rows.Next() {
		var audit model.Audit
		if err := rows.Scan(
			&audit.ID,
			&audit.Action,
			&audit.ActorID,
			&audit.TargetID,
			&audit.TargetEmail,
			&audit.CreatedTs,
		); err != nil {
			return nil, err
		}
		list = append(list, &audit)
	}
	return list, rows.Err()
}
