package store

import (
	"context"

	"github.com/pliu/messagely/internal/models"
)

type Store interface {
	// User operations
	RegisterUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	AllUsers(ctx context.Context) ([]models.UserSummary, error)
	UpdateLoginTimestamp(ctx context.Context, username string) error
	MessagesFrom(ctx context.Context, username string) ([]models.Message, error)
	MessagesTo(ctx context.Context, username string) ([]models.Message, error)

	// Message operations
	CreateMessage(ctx context.Context, from, to, body string) (*models.Message, error)
	GetMessage(ctx context.Context, id int64) (*models.Message, error)
	MarkMessageRead(ctx context.Context, id int64) (*models.Message, error)
}
