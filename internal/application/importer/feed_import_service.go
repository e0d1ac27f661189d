// Package importer loads catalog products from an external JSON feed.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// FeedSource opens the product feed for reading
type FeedSource interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	// Location names the feed in logs
	Location() string
}

// FeedRow is one product of the feed
type FeedRow struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Rating        float64         `json:"rating"`
	RatingCount   int             `json:"ratingCount"`
	Category      string          `json:"category"`
	Image         string          `json:"image"`
	Badge         string          `json:"badge"`
	Supplier      string          `json:"supplier"`
	SupplierImage string          `json:"supplierImage"`
	Description   string          `json:"description"`
}

func (r FeedRow) details() catalog.ProductDetails {
	return catalog.ProductDetails{
		Name:          r.Name,
		Category:      r.Category,
		Price:         r.Price,
		Rating:        r.Rating,
		RatingCount:   r.RatingCount,
		ImageURL:      r.Image,
		Badge:         r.Badge,
		SupplierName:  r.Supplier,
		SupplierImage: r.SupplierImage,
		Description:   r.Description,
	}
}

// RowError describes a feed row that was skipped
type RowError struct {
	Index      int    `json:"index"`
	ExternalID int64  `json:"external_id,omitempty"`
	Message    string `json:"message"`
}

// ImportResult summarizes a feed import
type ImportResult struct {
	TotalRows int           `json:"total_rows"`
	Created   int           `json:"created"`
	Updated   int           `json:"updated"`
	Failed    int           `json:"failed"`
	Errors    []RowError    `json:"errors,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// FeedImportService upserts feed products by their external id
type FeedImportService struct {
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewFeedImportService creates a new FeedImportService
func NewFeedImportService(products catalog.ProductRepository, logger *zap.Logger) *FeedImportService {
	return &FeedImportService{products: products, logger: logger}
}

// Import reads the whole feed. Invalid rows are counted and reported but
// never abort the run; only an unreadable feed or a storage failure does.
func (s *FeedImportService) Import(ctx context.Context, source FeedSource) (*ImportResult, error) {
	start := time.Now()
	rc, err := source.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open feed %s: %w", source.Location(), err)
	}
	defer rc.Close()

	dec := json.NewDecoder(rc)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read feed %s: %w", source.Location(), err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("feed %s: expected a JSON array", source.Location())
	}

	result := &ImportResult{}
	for index := 0; dec.More(); index++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.TotalRows++

		var row FeedRow
		if err := dec.Decode(&row); err != nil {
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				return result, fmt.Errorf("feed %s: %w", source.Location(), err)
			}
			result.fail(index, 0, err.Error())
			continue
		}

		created, err := s.upsert(ctx, row)
		switch {
		case err == nil && created:
			result.Created++
		case err == nil:
			result.Updated++
		case errors.Is(err, shared.ErrValidation):
			result.fail(index, row.ID, err.Error())
		default:
			return result, fmt.Errorf("import product %d: %w", row.ID, err)
		}
	}
	result.Duration = time.Since(start)

	s.logger.Info("Product feed imported",
		zap.String("source", source.Location()),
		zap.Int("total", result.TotalRows),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed),
		zap.Duration("duration", result.Duration))
	return result, nil
}

func (s *FeedImportService) upsert(ctx context.Context, row FeedRow) (bool, error) {
	if row.ID <= 0 {
		return false, shared.NewValidationError("id must be a positive integer")
	}

	existing, err := s.products.FindByExternalID(ctx, row.ID)
	switch {
	case err == nil:
		if err := existing.ApplyFeed(row.details()); err != nil {
			return false, err
		}
		return false, s.products.Save(ctx, existing)
	case errors.Is(err, shared.ErrNotFound):
		p, err := catalog.NewFeedProduct(row.ID, row.details())
		if err != nil {
			return false, err
		}
		return true, s.products.Create(ctx, p)
	default:
		return false, err
	}
}

func (r *ImportResult) fail(index int, externalID int64, msg string) {
	r.Failed++
	r.Errors = append(r.Errors, RowError{Index: index, ExternalID: externalID, Message: msg})
}
