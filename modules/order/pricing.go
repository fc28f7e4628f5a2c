package order

import (
	"context"
	"fmt"

	"github.com/example/ecommerce-api/modules/catalog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// PricingEngine computes an order total from materialized items and the
// catalog's current prices.
type PricingEngine struct {
	repo    *Repository
	catalog catalog.CatalogPort
}

// NewPricingEngine creates a PricingEngine.
func NewPricingEngine(repo *Repository, catalog catalog.CatalogPort) *PricingEngine {
	return &PricingEngine{repo: repo, catalog: catalog}
}

// Total resolves every item's product concurrently and returns the sum of
// price × quantity. An empty id list totals zero. A product the catalog does
// not know fails the whole computation with catalog.ErrProductNotFound.
func (e *PricingEngine) Total(ctx context.Context, itemIDs []string) (decimal.Decimal, error) {
	lines := make([]decimal.Decimal, len(itemIDs))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range itemIDs {
		g.Go(func() error {
			item, err := e.repo.FindItem(gctx, id)
			if err != nil {
				return err
			}
			product, err := e.catalog.GetProduct(gctx, item.ProductID)
			if err != nil {
				return fmt.Errorf("pricing item %s: %w", id, err)
			}
			lines[i] = product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return decimal.Zero, err
	}
	return decimal.Sum(decimal.Zero, lines...), nil
}
