package importer

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/tests/testutil"
)

type stringSource struct {
	body string
	err  error
}

func (s stringSource) Open(context.Context) (io.ReadCloser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(s.body)), nil
}

func (s stringSource) Location() string { return "memory" }

const sampleFeed = `[
  {"id": 1, "name": "Bolt", "price": 10, "rating": 4.5, "ratingCount": 12, "category": "Hardware",
   "image": "https://img.test/bolt.png", "badge": "New", "supplier": "Bolt Works",
   "supplierImage": "https://img.test/bw.png", "description": "M8 bolt"},
  {"id": 2, "name": "Nut", "price": "2.25", "category": "Hardware"},
  {"id": 3, "name": "", "price": 1, "category": "Hardware"},
  {"id": 4, "name": "Washer", "price": "abc", "category": "Hardware"}
]`

func TestFeedImportService_Import(t *testing.T) {
	products := new(testutil.MockProductRepository)
	svc := NewFeedImportService(products, zap.NewNop())
	ctx := context.Background()

	existing, err := catalog.NewFeedProduct(2, catalog.ProductDetails{Name: "Old Nut", Category: "Misc", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)

	products.On("FindByExternalID", ctx, int64(1)).Return(nil, shared.ErrNotFound)
	products.On("FindByExternalID", ctx, int64(2)).Return(existing, nil)
	products.On("FindByExternalID", ctx, int64(3)).Return(nil, shared.ErrNotFound)
	products.On("Create", ctx, mock.MatchedBy(func(p *catalog.Product) bool {
		return *p.ExternalID == 1 && p.SupplierName == "Bolt Works" && p.RatingCount == 12
	})).Return(nil)
	products.On("Save", ctx, existing).Return(nil)

	result, err := svc.Import(ctx, stringSource{body: sampleFeed})
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalRows)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 2, result.Errors[0].Index)
	assert.Equal(t, int64(3), result.Errors[0].ExternalID)
	assert.Equal(t, 3, result.Errors[1].Index)

	assert.Equal(t, "Nut", existing.Name)
	assert.Equal(t, "hardware", existing.CategoryKey)
	assert.True(t, decimal.RequireFromString("2.25").Equal(existing.Price))
	products.AssertExpectations(t)
}

func TestFeedImportService_Import_NotAnArray(t *testing.T) {
	svc := NewFeedImportService(new(testutil.MockProductRepository), zap.NewNop())
	_, err := svc.Import(context.Background(), stringSource{body: `{"id": 1}`})
	assert.Error(t, err)
}

func TestFeedImportService_Import_OpenError(t *testing.T) {
	svc := NewFeedImportService(new(testutil.MockProductRepository), zap.NewNop())
	_, err := svc.Import(context.Background(), stringSource{err: errors.New("no such bucket")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such bucket")
}

func TestFeedImportService_Import_StorageFailureAborts(t *testing.T) {
	products := new(testutil.MockProductRepository)
	svc := NewFeedImportService(products, zap.NewNop())
	ctx := context.Background()
	products.On("FindByExternalID", ctx, int64(1)).Return(nil, errors.New("connection reset"))

	result, err := svc.Import(ctx, stringSource{body: `[{"id": 1, "name": "Bolt", "price": 1, "category": "Hardware"}]`})
	require.Error(t, err)
	assert.Equal(t, 0, result.Created)
}

func TestFeedImportService_Import_RejectsMissingID(t *testing.T) {
	products := new(testutil.MockProductRepository)
	svc := NewFeedImportService(products, zap.NewNop())

	result, err := svc.Import(context.Background(), stringSource{body: `[{"name": "Bolt", "price": 1, "category": "Hardware"}]`})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	products.AssertNotCalled(t, "FindByExternalID", mock.Anything, mock.Anything)
}
