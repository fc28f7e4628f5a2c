// Package order implements order placement and the order reports.
package order

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/ecommerce-api/events"
	"github.com/example/ecommerce-api/modules/catalog"
	"github.com/example/ecommerce-api/modules/store"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Module provides the order workflow.
type Module struct {
	store       *store.PluginModule
	catalogPort catalog.CatalogPort
	eventBus    mono.EventBus
	service     *Service
	logger      types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.UsePluginModule       = (*Module)(nil)
	_ mono.DependentModule       = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new order module.
func NewModule(logger types.Logger) *Module {
	return &Module{
		logger: logger.WithModule("order"),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "order"
}

// SetPlugin receives the store plugin.
func (m *Module) SetPlugin(alias string, plugin mono.PluginModule) {
	if p, ok := store.FromPlugin(alias, plugin); ok {
		m.store = p
		return
	}
	m.logger.Error("Invalid plugin type", "alias", alias)
}

// Dependencies returns the modules this module reads prices from.
func (m *Module) Dependencies() []string {
	return []string{"catalog"}
}

// SetDependencyServiceContainer receives the catalog's service container.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "catalog" {
		m.catalogPort = catalog.NewCatalogAdapter(container)
	}
}

// SetEventBus receives the event bus.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents lists the events this module publishes.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.OrderCreatedV1.ToBase(),
		events.OrderStatusChangedV1.ToBase(),
		events.OrderDeletedV1.ToBase(),
	}
}

// Start builds the service.
func (m *Module) Start(_ context.Context) error {
	if m.store == nil || m.store.DB() == nil {
		return fmt.Errorf("required plugin 'store' not registered")
	}
	if m.catalogPort == nil {
		return fmt.Errorf("catalog dependency not set")
	}
	if m.eventBus == nil {
		m.logger.Warn("Event bus not set, order events will not be published")
	}

	m.service = NewService(NewRepository(m.store.DB()), m.catalogPort, m.eventBus, m.logger)
	m.logger.Info("Order module started", "depends_on", "catalog")
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Order module stopped")
	return nil
}

// Service returns the order service instance.
func (m *Module) Service() *Service {
	return m.service
}

// Health returns the health status of the module.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{Healthy: false, Message: "not started"}
	}
	n, err := m.service.CountOrders(ctx)
	if err != nil {
		return mono.HealthStatus{Healthy: false, Message: err.Error()}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{"orders": n},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		"get-order",
		json.Unmarshal,
		json.Marshal,
		m.handleGetOrder,
	); err != nil {
		return fmt.Errorf("failed to register get-order service: %w", err)
	}

	m.logger.Info("Registered services", "services", "get-order")
	return nil
}

func (m *Module) handleGetOrder(ctx context.Context, req GetOrderRequest, _ *mono.Msg) (GetOrderResponse, error) {
	o, err := m.service.GetOrder(ctx, req.OrderID)
	if err != nil {
		return GetOrderResponse{}, err
	}
	return GetOrderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		Status:      string(o.Status),
		TotalPrice:  o.TotalPrice,
		ItemCount:   len(o.OrderItems),
		DateOrdered: o.DateOrdered,
	}, nil
}
