// Package txn defines the transaction boundary application services use for
// multi-aggregate writes.
package txn

import (
	"context"

	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/ledger"
	"github.com/vendorhub/backend/internal/domain/profile"
)

// TransactionScope runs a function inside one database transaction.
// If the function returns an error, the transaction is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories gives access to repositories that all share the
// current transaction.
type TransactionalRepositories interface {
	AccountRepo() identity.AccountRepository
	VendorRepo() profile.VendorRepository
	SupplierRepo() profile.SupplierRepository
	ProductRepo() catalog.ProductRepository
	InventoryRepo() catalog.InventoryRepository
	OrderRepo() ledger.OrderRepository
	SharedOrderRepo() ledger.SharedOrderRepository
	// OrderSequence draws order numbers. The database backend takes its row
	// lock inside the current transaction.
	OrderSequence() ledger.OrderNumberSequence
}

// Repositories is a plain set of repositories
type Repositories struct {
	Accounts     identity.AccountRepository
	Vendors      profile.VendorRepository
	Suppliers    profile.SupplierRepository
	Products     catalog.ProductRepository
	Inventory    catalog.InventoryRepository
	Orders       ledger.OrderRepository
	SharedOrders ledger.SharedOrderRepository
	Sequence     ledger.OrderNumberSequence
}

// NoOpTransactionScope runs functions against fixed repositories without a
// real transaction. Used by tests.
type NoOpTransactionScope struct {
	repos Repositories
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(repos Repositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{repos: repos}
}

// Execute calls fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) AccountRepo() identity.AccountRepository    { return s.repos.Accounts }
func (s *NoOpTransactionScope) VendorRepo() profile.VendorRepository       { return s.repos.Vendors }
func (s *NoOpTransactionScope) SupplierRepo() profile.SupplierRepository   { return s.repos.Suppliers }
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository     { return s.repos.Products }
func (s *NoOpTransactionScope) InventoryRepo() catalog.InventoryRepository { return s.repos.Inventory }
func (s *NoOpTransactionScope) OrderRepo() ledger.OrderRepository          { return s.repos.Orders }
func (s *NoOpTransactionScope) SharedOrderRepo() ledger.SharedOrderRepository {
	return s.repos.SharedOrders
}
func (s *NoOpTransactionScope) OrderSequence() ledger.OrderNumberSequence { return s.repos.Sequence }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
