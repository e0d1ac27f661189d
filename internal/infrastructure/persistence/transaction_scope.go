package persistence

import (
	"context"

	"github.com/vendorhub/backend/internal/application/txn"
	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/ledger"
	"github.com/vendorhub/backend/internal/domain/profile"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
type GormTransactionScope struct {
	db       *gorm.DB
	sequence ledger.OrderNumberSequence
}

// TransactionScopeOption configures a GormTransactionScope
type TransactionScopeOption func(*GormTransactionScope)

// WithOrderSequence draws order numbers from seq instead of the counter
// row. seq then runs outside the transaction.
func WithOrderSequence(seq ledger.OrderNumberSequence) TransactionScopeOption {
	return func(s *GormTransactionScope) {
		s.sequence = seq
	}
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB, opts ...TransactionScopeOption) *GormTransactionScope {
	s := &GormTransactionScope{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos txn.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx, sequence: s.sequence})
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx       *gorm.DB
	sequence ledger.OrderNumberSequence
}

func (r *gormTransactionalRepositories) AccountRepo() identity.AccountRepository {
	return NewGormAccountRepository(r.tx)
}

func (r *gormTransactionalRepositories) VendorRepo() profile.VendorRepository {
	return NewGormVendorRepository(r.tx)
}

func (r *gormTransactionalRepositories) SupplierRepo() profile.SupplierRepository {
	return NewGormSupplierRepository(r.tx)
}

func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormTransactionalRepositories) InventoryRepo() catalog.InventoryRepository {
	return NewGormInventoryRepository(r.tx)
}

func (r *gormTransactionalRepositories) OrderRepo() ledger.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) SharedOrderRepo() ledger.SharedOrderRepository {
	return NewGormSharedOrderRepository(r.tx)
}

// OrderSequence returns the configured sequence, or the counter row locked
// inside this transaction.
func (r *gormTransactionalRepositories) OrderSequence() ledger.OrderNumberSequence {
	if r.sequence != nil {
		return r.sequence
	}
	return NewGormOrderSequence(r.tx, DefaultOrderSequence)
}

var (
	_ txn.TransactionScope          = (*GormTransactionScope)(nil)
	_ txn.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
