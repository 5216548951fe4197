package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pliu/messagely/internal/apperr"
	"github.com/pliu/messagely/internal/models"
)

// RegisterUser inserts a new user with join_at and last_login_at set to now.
// The Password field must already be hashed by the caller.
func (s *SQLStore) RegisterUser(ctx context.Context, user *models.User) (*models.User, error) {
	now := time.Now()
	user.JoinAt = now
	user.LastLoginAt = now

	query := s.rebind(`INSERT INTO users (username, password, first_name, last_name, phone, join_at, last_login_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		user.Username, user.Password, user.FirstName, user.LastName, user.Phone, user.JoinAt, user.LastLoginAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Duplicate("username already taken", err)
		}
		return nil, apperr.Database("unable to register user", err)
	}
	return user, nil
}

func (s *SQLStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	query := s.rebind(`SELECT username, password, first_name, last_name, phone, join_at, last_login_at
		FROM users WHERE username = ?`)

	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&user.Username, &user.Password, &user.FirstName, &user.LastName, &user.Phone, &user.JoinAt, &user.LastLoginAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user does not exist", err)
		}
		return nil, apperr.Database("unable to get user", err)
	}
	return &user, nil
}

func (s *SQLStore) AllUsers(ctx context.Context) ([]models.UserSummary, error) {
	query := "SELECT username, first_name, last_name, phone FROM users ORDER BY username"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperr.Database("unable to list users", err)
	}
	defer rows.Close()

	var users []models.UserSummary
	for rows.Next() {
		var u models.UserSummary
		if err := rows.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Phone); err != nil {
			return nil, apperr.Database("unable to list users", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Database("unable to list users", err)
	}
	return users, nil
}

func (s *SQLStore) UpdateLoginTimestamp(ctx context.Context, username string) error {
	query := s.rebind("UPDATE users SET last_login_at = ? WHERE username = ?")
	result, err := s.db.ExecContext(ctx, query, time.Now(), username)
	if err != nil {
		return apperr.Database("unable to update login timestamp", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperr.Database("unable to update login timestamp", err)
	}
	if rows == 0 {
		return apperr.NotFound("user does not exist", nil)
	}
	return nil
}

// getUserSummary resolves the four-field public profile for one username.
func (s *SQLStore) getUserSummary(ctx context.Context, username string) (*models.UserSummary, error) {
	var u models.UserSummary
	query := s.rebind("SELECT username, first_name, last_name, phone FROM users WHERE username = ?")
	err := s.db.QueryRowContext(ctx, query, username).Scan(&u.Username, &u.FirstName, &u.LastName, &u.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user does not exist", err)
		}
		return nil, apperr.Database("unable to get user", err)
	}
	return &u, nil
}

// MessagesFrom returns the messages sent by username, each with the
// recipient's profile embedded. Profiles are looked up concurrently and
// stitched back in the original row order.
func (s *SQLStore) MessagesFrom(ctx context.Context, username string) ([]models.Message, error) {
	query := s.rebind(`SELECT id, to_username, body, sent_at, read_at
		FROM messages WHERE from_username = ? ORDER BY sent_at, id`)
	rows, err := s.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, apperr.Database("unable to retrieve messages from "+username, err)
	}
	defer rows.Close()

	var messages []models.Message
	var counterparts []string
	for rows.Next() {
		var m models.Message
		var readAt sql.NullTime
		var to string
		if err := rows.Scan(&m.ID, &to, &m.Body, &m.SentAt, &readAt); err != nil {
			return nil, apperr.Database("unable to retrieve messages from "+username, err)
		}
		if readAt.Valid {
			m.ReadAt = &readAt.Time
		}
		messages = append(messages, m)
		counterparts = append(counterparts, to)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Database("unable to retrieve messages from "+username, err)
	}

	if err := s.attachProfiles(ctx, messages, counterparts, func(m *models.Message, u *models.UserSummary) {
		m.ToUser = u
	}); err != nil {
		return nil, err
	}
	return messages, nil
}

// MessagesTo is the mirror of MessagesFrom: messages received by username,
// each with the sender's profile embedded.
func (s *SQLStore) MessagesTo(ctx context.Context, username string) ([]models.Message, error) {
	query := s.rebind(`SELECT id, from_username, body, sent_at, read_at
		FROM messages WHERE to_username = ? ORDER BY sent_at, id`)
	rows, err := s.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, apperr.Database("unable to retrieve messages to "+username, err)
	}
	defer rows.Close()

	var messages []models.Message
	var counterparts []string
	for rows.Next() {
		var m models.Message
		var readAt sql.NullTime
		var from string
		if err := rows.Scan(&m.ID, &from, &m.Body, &m.SentAt, &readAt); err != nil {
			return nil, apperr.Database("unable to retrieve messages to "+username, err)
		}
		if readAt.Valid {
			m.ReadAt = &readAt.Time
		}
		messages = append(messages, m)
		counterparts = append(counterparts, from)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Database("unable to retrieve messages to "+username, err)
	}

	if err := s.attachProfiles(ctx, messages, counterparts, func(m *models.Message, u *models.UserSummary) {
		m.FromUser = u
	}); err != nil {
		return nil, err
	}
	return messages, nil
}

// attachProfiles issues one profile lookup per message concurrently, waits
// for all of them, and assigns each result to the message at the same index.
func (s *SQLStore) attachProfiles(ctx context.Context, messages []models.Message, usernames []string, assign func(*models.Message, *models.UserSummary)) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := range messages {
		i := i
		g.Go(func() error {
			u, err := s.getUserSummary(gctx, usernames[i])
			if err != nil {
				return err
			}
			assign(&messages[i], u)
			return nil
		})
	}
	return g.Wait()
}
