//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	analyticsapp "github.com/vendorhub/backend/internal/application/analytics"
	catalogapp "github.com/vendorhub/backend/internal/application/catalog"
	identityapp "github.com/vendorhub/backend/internal/application/identity"
	ledgerapp "github.com/vendorhub/backend/internal/application/ledger"
	"github.com/vendorhub/backend/internal/domain/analytics"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/auth"
	"github.com/vendorhub/backend/internal/infrastructure/config"
	"github.com/vendorhub/backend/internal/infrastructure/persistence"
)

func TestMain(m *testing.M) {
	code := m.Run()
	terminateContainers()
	os.Exit(code)
}

type marketplace struct {
	auth      *identityapp.AuthService
	catalog   *catalogapp.CatalogService
	ledger    *ledgerapp.LedgerService
	analytics *analyticsapp.AnalyticsService
	repos     *persistence.Repositories
}

func newMarketplace(t *testing.T, opts ...persistence.TransactionScopeOption) *marketplace {
	t.Helper()
	db := NewTestDB(t)
	logger := zap.NewNop()
	repos := persistence.NewRepositories(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB, opts...)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "integration-secret-at-least-32-chars",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "vendorhub-integration",
		MaxRefreshCount:        3,
	})
	series, err := analytics.NewStaticRevenueSeries(nil, nil)
	require.NoError(t, err)

	return &marketplace{
		auth:      identityapp.NewAuthService(scope, repos.Accounts, repos.Vendors, repos.Suppliers, jwtService, auth.NoopTokenBlacklist{}, logger),
		catalog:   catalogapp.NewCatalogService(scope, repos.Products, repos.Inventory, repos.Suppliers, logger),
		ledger:    ledgerapp.NewLedgerService(scope, repos.Accounts, repos.Vendors, repos.Orders, repos.SharedOrders, logger),
		analytics: analyticsapp.NewAnalyticsService(repos.Inventory, repos.SharedOrders, repos.Suppliers, repos.Snapshots, series, time.Hour, logger),
		repos:     repos,
	}
}

func (m *marketplace) signup(t *testing.T, username, role string) uuid.UUID {
	t.Helper()
	result, err := m.auth.Signup(context.Background(), identityapp.SignupInput{
		Username:         username,
		Email:            username + "@example.com",
		Password:         "s3cret-pass",
		Role:             role,
		CompanyName:      username + " Ltd",
		OrganizationName: username + " Supply",
	})
	require.NoError(t, err)
	return result.Account.ProfileID
}

func intPtr(v int) *int { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCatalog_SharedProductLifecycle(t *testing.T) {
	m := newMarketplace(t)
	ctx := context.Background()
	acme := m.signup(t, "acme", "supplier")
	bolts := m.signup(t, "bolts", "supplier")

	added, err := m.catalog.AddProduct(ctx, acme, catalogapp.AddProductRequest{
		Name: "Bolt", Category: "Hardware", Price: decPtr("10"), StockQuantity: intPtr(5),
	})
	require.NoError(t, err)

	attached, err := m.catalog.AttachProduct(ctx, bolts, catalogapp.AttachProductRequest{
		ProductID: added.ProductID, StockQuantity: 2, CustomPrice: decPtr("8.50"),
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("8.5").Equal(attached.Price))

	_, err = m.catalog.AttachProduct(ctx, bolts, catalogapp.AttachProductRequest{ProductID: added.ProductID})
	assert.ErrorIs(t, err, shared.ErrValidation)

	products, err := m.catalog.ListProducts(ctx, "HARDWARE")
	require.NoError(t, err)
	require.Len(t, products, 1)

	_, err = m.catalog.DeleteInventory(ctx, bolts, added.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	res, err := m.catalog.DeleteInventory(ctx, acme, added.ID)
	require.NoError(t, err)
	assert.False(t, res.ProductDeleted)

	res, err = m.catalog.DeleteInventory(ctx, bolts, attached.ID)
	require.NoError(t, err)
	assert.True(t, res.ProductDeleted)

	products, err = m.catalog.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestLedger_ConcurrentCheckoutsGetDistinctNumbers(t *testing.T) {
	m := newMarketplace(t)
	ctx := context.Background()

	const vendors = 4
	ids := make([]uuid.UUID, vendors)
	for i := range ids {
		ids[i] = m.signup(t, fmt.Sprintf("shop%d", i), "vendor")
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers []string
		errs    []error
	)
	for _, id := range ids {
		wg.Add(1)
		go func(vendorID uuid.UUID) {
			defer wg.Done()
			orders, err := m.ledger.CreateOrders(ctx, vendorID, ledgerapp.CreateOrdersRequest{
				Items: []ledgerapp.LineItemRequest{
					{Name: "Bolt", Price: decPtr("10"), Quantity: 1},
					{Name: "Nut", Price: decPtr("2"), Quantity: 3},
				},
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			for _, o := range orders {
				numbers = append(numbers, o.OrderNumber)
			}
		}(id)
	}
	wg.Wait()

	require.Empty(t, errs)
	sort.Strings(numbers)
	expected := make([]string, 0, 2*vendors)
	for i := 1; i <= 2*vendors; i++ {
		expected = append(expected, fmt.Sprintf("ORD%03d", i))
	}
	assert.Equal(t, expected, numbers)

	highest, err := m.repos.Orders.HighestSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2*vendors), highest)
}

func TestLedger_SharedOrdersFeedDashboard(t *testing.T) {
	m := newMarketplace(t)
	ctx := context.Background()
	supplier := m.signup(t, "acme", "supplier")
	vendor := m.signup(t, "shop", "vendor")

	_, err := m.catalog.AddProduct(ctx, supplier, catalogapp.AddProductRequest{
		Name: "Drill", Category: "Tools", Price: decPtr("99.90"), StockQuantity: intPtr(1),
	})
	require.NoError(t, err)

	recorded, err := m.ledger.RecordSharedOrder(ctx, supplier, ledgerapp.RecordSharedOrderRequest{
		VendorID: vendor, ItemName: "Drill", Quantity: 2, Amount: decPtr("199.80"),
	})
	require.NoError(t, err)

	for range 2 {
		_, err = m.ledger.AdvanceSharedOrder(ctx, supplier, recorded.ID)
		require.NoError(t, err)
	}
	_, err = m.ledger.AdvanceSharedOrder(ctx, supplier, recorded.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	dash, err := m.analytics.Dashboard(ctx, supplier, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), dash.Stats.NewOrders)
	assert.Equal(t, int64(1), dash.Stats.ActiveProducts)
	assert.True(t, decimal.RequireFromString("199.8").Equal(dash.Stats.Revenue))
	assert.Equal(t, []string{"Tools"}, dash.CategoryChart.Labels)

	cached, err := m.repos.Snapshots.FindBySupplier(ctx, supplier)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cached.NewOrders)
}
