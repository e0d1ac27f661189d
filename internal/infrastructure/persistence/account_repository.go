package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByID finds an account by its ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "account")
	}
	return model.ToDomain(), nil
}

// FindByUsername finds an account by its exact username
func (r *GormAccountRepository) FindByUsername(ctx context.Context, username string) (*identity.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("username = ?", strings.TrimSpace(username)).
		First(&model).Error; err != nil {
		return nil, translateError(err, "account")
	}
	return model.ToDomain(), nil
}

// ExistsByUsername checks whether a username is taken
func (r *GormAccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AccountModel{}).
		Where("username = ?", strings.TrimSpace(username)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new account
func (r *GormAccountRepository) Create(ctx context.Context, account *identity.Account) error {
	return translateError(r.db.WithContext(ctx).Create(models.AccountModelFromDomain(account)).Error, "username")
}

// Save persists an account whose version was incremented in memory
func (r *GormAccountRepository) Save(ctx context.Context, account *identity.Account) error {
	result := r.db.WithContext(ctx).
		Model(&models.AccountModel{}).
		Where("id = ? AND version = ?", account.ID, account.Version-1).
		Updates(map[string]any{
			"email":         account.Email,
			"first_name":    account.FirstName,
			"last_name":     account.LastName,
			"password_hash": account.PasswordHash,
			"version":       account.Version,
			"updated_at":    account.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return conflictError("Account")
	}
	return nil
}

var _ identity.AccountRepository = (*GormAccountRepository)(nil)
