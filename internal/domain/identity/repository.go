package identity

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository defines persistence operations for accounts
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, account *Account) error
	Save(ctx context.Context, account *Account) error
}
