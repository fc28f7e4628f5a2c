package order

import (
	"context"
	"fmt"
	"time"

	domain "github.com/example/ecommerce-api/domain/order"
	"github.com/example/ecommerce-api/domain/errs"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Builder persists an order and claims its materialized items.
type Builder struct {
	repo *Repository
	now  func() time.Time
}

// NewBuilder creates a Builder.
func NewBuilder(repo *Repository) *Builder {
	return &Builder{repo: repo, now: time.Now}
}

// Build validates the caller's fields, applies the status and date
// defaults, and stores the order with its items in one transaction. The
// returned order carries the generated id; its items are not populated.
func (b *Builder) Build(ctx context.Context, in CreateOrderInput, itemIDs []string, total decimal.Decimal) (*domain.Order, error) {
	if err := in.ValidateFields(); err != nil {
		return nil, err
	}

	o := &domain.Order{
		ID:               uuid.New().String(),
		ShippingAddress:  string(in.ShippingAddress),
		ShippingAddress1: string(in.ShippingAddress1),
		Barangay:         string(in.Barangay),
		City:             string(in.City),
		Zip:              string(in.Zip),
		Region:           string(in.Region),
		Phone:            string(in.Phone),
		Status:           in.Status,
		TotalPrice:       total,
		UserID:           in.UserID,
	}
	if o.Status == "" {
		o.Status = domain.StatusPending
	}
	if in.DateOrdered != nil && !in.DateOrdered.IsZero() {
		o.DateOrdered = *in.DateOrdered
	} else {
		o.DateOrdered = b.now()
	}

	err := b.repo.Transaction(ctx, func(tx *Repository) error {
		if err := tx.CreateOrder(ctx, o); err != nil {
			return err
		}
		n, err := tx.AttachItems(ctx, o.ID, itemIDs)
		if err != nil {
			return err
		}
		if int(n) != len(itemIDs) {
			return fmt.Errorf("%w: attached %d of %d order items", errs.ErrConflict, n, len(itemIDs))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}
