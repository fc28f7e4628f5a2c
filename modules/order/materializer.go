package order

import (
	"context"
	"fmt"

	domain "github.com/example/ecommerce-api/domain/order"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Materializer turns requested lines into persisted, not yet attached,
// order items.
type Materializer struct {
	repo *Repository
}

// NewMaterializer creates a Materializer.
func NewMaterializer(repo *Repository) *Materializer {
	return &Materializer{repo: repo}
}

// Materialize creates one item per request and returns their ids in request
// order. Every request is validated before anything is written. Items are
// created concurrently; if any creation fails the ones that did succeed are
// removed again and the first error is returned.
func (m *Materializer) Materialize(ctx context.Context, reqs []ItemRequest) ([]string, error) {
	for i, r := range reqs {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("order item %d: %w", i, err)
		}
	}

	ids := make([]string, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range reqs {
		g.Go(func() error {
			item := &domain.OrderItem{
				ID:        uuid.New().String(),
				Position:  i,
				Quantity:  int(r.Quantity),
				ProductID: r.ProductID,
			}
			if err := m.repo.CreateItem(gctx, item); err != nil {
				return fmt.Errorf("order item %d: %w", i, err)
			}
			ids[i] = item.ID
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		m.Discard(ctx, compact(ids))
		return nil, err
	}
	return ids, nil
}

// Discard deletes unattached items left over from a failed order. It runs
// even when ctx has been cancelled.
func (m *Materializer) Discard(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		return
	}
	_, _ = m.repo.DeleteItems(context.WithoutCancel(ctx), ids)
}

func compact(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}
