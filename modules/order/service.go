package order

import (
	"context"
	"strings"
	"time"

	domain "github.com/example/ecommerce-api/domain/order"
	"github.com/example/ecommerce-api/events"
	"github.com/example/ecommerce-api/modules/catalog"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/shopspring/decimal"
)

// Service runs the order workflow and the order queries.
type Service struct {
	repo         *Repository
	materializer *Materializer
	pricing      *PricingEngine
	builder      *Builder
	eventBus     mono.EventBus
	logger       types.Logger
}

// NewService wires the workflow stages over one repository. eventBus may be
// nil, in which case no events are published.
func NewService(repo *Repository, prices catalog.CatalogPort, eventBus mono.EventBus, logger types.Logger) *Service {
	return &Service{
		repo:         repo,
		materializer: NewMaterializer(repo),
		pricing:      NewPricingEngine(repo, prices),
		builder:      NewBuilder(repo),
		eventBus:     eventBus,
		logger:       logger,
	}
}

// CreateOrder validates the request, materializes the items, prices them
// and persists the order. On any failure after items were written they are
// deleted again, so a failed request leaves nothing behind.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	itemIDs, err := s.materializer.Materialize(ctx, in.OrderItems)
	if err != nil {
		return nil, err
	}

	total, err := s.pricing.Total(ctx, itemIDs)
	if err != nil {
		s.materializer.Discard(ctx, itemIDs)
		return nil, err
	}

	o, err := s.builder.Build(ctx, in, itemIDs, total)
	if err != nil {
		s.materializer.Discard(ctx, itemIDs)
		return nil, err
	}

	s.logger.Info("Order created", "order_id", o.ID, "user_id", o.UserID, "items", len(itemIDs), "total", total.String())

	if s.eventBus != nil {
		event := events.OrderCreatedEvent{
			OrderID:     o.ID,
			UserID:      o.UserID,
			TotalPrice:  o.TotalPrice,
			ItemCount:   len(itemIDs),
			Status:      string(o.Status),
			DateOrdered: o.DateOrdered,
		}
		if err := events.OrderCreatedV1.Publish(s.eventBus, event, nil); err != nil {
			s.logger.Warn("Failed to publish OrderCreated event", "order_id", o.ID, "error", err)
		}
	}

	return s.repo.FindOrder(ctx, o.ID, listPreloads...)
}

// ListOrders returns every order oldest first. A non-empty userID narrows
// the list to that user's pending orders.
func (s *Service) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	var where map[string]any
	if userID != "" {
		where = map[string]any{
			"user_id": userID,
			"status":  string(domain.StatusPending),
		}
	}
	return s.repo.FindOrders(ctx, where, listPreloads)
}

// GetOrder loads one order down to each product's category.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.FindOrder(ctx, id, detailPreloads...)
}

// OrdersByUser returns the order history of one user, oldest first.
func (s *Service) OrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.FindOrders(ctx, map[string]any{"user_id": userID}, detailPreloads)
}

// UpdateStatus replaces the status of an order and nothing else. Any
// non-empty value is accepted.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	if strings.TrimSpace(string(status)) == "" {
		return nil, ErrMissingStatus
	}

	current, err := s.repo.FindOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	if !status.Known() {
		s.logger.Debug("Order moved to a non-standard status", "order_id", id, "status", string(status))
	}

	if s.eventBus != nil {
		event := events.OrderStatusChangedEvent{
			OrderID:   id,
			UserID:    current.UserID,
			From:      string(current.Status),
			To:        string(status),
			ChangedAt: time.Now(),
		}
		if err := events.OrderStatusChangedV1.Publish(s.eventBus, event, nil); err != nil {
			s.logger.Warn("Failed to publish OrderStatusChanged event", "order_id", id, "error", err)
		}
	}

	return s.repo.FindOrder(ctx, id, listPreloads...)
}

// DeleteOrder removes an order together with every item it owns.
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	var (
		userID string
		items  int64
	)
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		o, err := tx.FindOrder(ctx, id)
		if err != nil {
			return err
		}
		userID = o.UserID
		if items, err = tx.DeleteItemsOf(ctx, id); err != nil {
			return err
		}
		return tx.DeleteOrder(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Order deleted", "order_id", id, "items", items)

	if s.eventBus != nil {
		event := events.OrderDeletedEvent{
			OrderID:   id,
			UserID:    userID,
			ItemCount: int(items),
			DeletedAt: time.Now(),
		}
		if err := events.OrderDeletedV1.Publish(s.eventBus, event, nil); err != nil {
			s.logger.Warn("Failed to publish OrderDeleted event", "order_id", id, "error", err)
		}
	}
	return nil
}

// TotalSales sums the total price of every order.
func (s *Service) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	return s.repo.TotalSales(ctx)
}

// CountOrders returns the number of orders.
func (s *Service) CountOrders(ctx context.Context) (int64, error) {
	return s.repo.CountOrders(ctx)
}

// FindItem exposes a single order item, mainly to confirm cascades.
func (s *Service) FindItem(ctx context.Context, id string) (*domain.OrderItem, error) {
	return s.repo.FindItem(ctx, id)
}
