package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/pliu/messagely/internal/apperr"
	"github.com/pliu/messagely/internal/models"
)

// CreateMessage inserts a message with sent_at = now and read_at unset.
// The recipient must exist; sqlite does not enforce the foreign key.
func (s *SQLStore) CreateMessage(ctx context.Context, from, to, body string) (*models.Message, error) {
	var exists bool
	query := s.rebind("SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)")
	if err := s.db.QueryRowContext(ctx, query, to).Scan(&exists); err != nil {
		return nil, apperr.Database("unable to create message", err)
	}
	if !exists {
		return nil, apperr.NotFound("recipient does not exist", nil)
	}

	m := &models.Message{
		FromUsername: from,
		ToUsername:   to,
		Body:         body,
		SentAt:       time.Now(),
	}

	query = s.rebind(`INSERT INTO messages (from_username, to_username, body, sent_at)
		VALUES (?, ?, ?, ?) RETURNING id`)
	err := s.db.QueryRowContext(ctx, query, m.FromUsername, m.ToUsername, m.Body, m.SentAt).Scan(&m.ID)
	if err != nil {
		return nil, apperr.Database("unable to create message", err)
	}
	return m, nil
}

// GetMessage returns one message with both sender and recipient profiles
// embedded.
func (s *SQLStore) GetMessage(ctx context.Context, id int64) (*models.Message, error) {
	query := s.rebind(`
		SELECT m.id, m.body, m.sent_at, m.read_at,
			f.username, f.first_name, f.last_name, f.phone,
			t.username, t.first_name, t.last_name, t.phone
		FROM messages m
		JOIN users f ON m.from_username = f.username
		JOIN users t ON m.to_username = t.username
		WHERE m.id = ?
	`)

	var m models.Message
	var readAt sql.NullTime
	var from, to models.UserSummary
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Body, &m.SentAt, &readAt,
		&from.Username, &from.FirstName, &from.LastName, &from.Phone,
		&to.Username, &to.FirstName, &to.LastName, &to.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("message does not exist", err)
		}
		return nil, apperr.Database("unable to get message", err)
	}
	if readAt.Valid {
		m.ReadAt = &readAt.Time
	}
	m.FromUser = &from
	m.ToUser = &to
	return &m, nil
}

// MarkMessageRead stamps read_at the first time it is called for a message
// and leaves the original timestamp in place on repeat calls. The returned
// message carries only the id and read_at.
func (s *SQLStore) MarkMessageRead(ctx context.Context, id int64) (*models.Message, error) {
	query := s.rebind("UPDATE messages SET read_at = ? WHERE id = ? AND read_at IS NULL")
	if _, err := s.db.ExecContext(ctx, query, time.Now(), id); err != nil {
		return nil, apperr.Database("unable to mark message read", err)
	}

	var m models.Message
	var readAt sql.NullTime
	query = s.rebind("SELECT id, read_at FROM messages WHERE id = ?")
	err := s.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &readAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("message does not exist", err)
		}
		return nil, apperr.Database("unable to mark message read", err)
	}
	if readAt.Valid {
		m.ReadAt = &readAt.Time
	}
	return &m, nil
}
