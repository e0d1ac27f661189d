package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vendorhub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// translateError maps driver errors onto domain errors. Unknown errors
// pass through unchanged.
func translateError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.NewDomainError(shared.CodeAlreadyExists, entity+" already exists")
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return shared.NewDomainError(shared.CodeAlreadyExists, entity+" already exists")
	}
	return err
}

func conflictError(entity string) error {
	return shared.NewDomainError(shared.CodeConcurrencyConflict, entity+" was modified by another request")
}
