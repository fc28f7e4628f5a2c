// Package catalog manages products and categories.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/ecommerce-api/modules/cache"
	"github.com/example/ecommerce-api/modules/store"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Module provides catalog services.
type Module struct {
	store       *store.PluginModule
	cachePlugin *cache.PluginModule
	service     *Service
	logger      types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.UsePluginModule       = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new catalog module.
func NewModule(logger types.Logger) *Module {
	return &Module{
		logger: logger.WithModule("catalog"),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "catalog"
}

// SetPlugin receives the store and (optional) cache plugins.
func (m *Module) SetPlugin(alias string, plugin mono.PluginModule) {
	switch alias {
	case "store":
		if p, ok := store.FromPlugin(alias, plugin); ok {
			m.store = p
			return
		}
	case "cache":
		if p, ok := plugin.(*cache.PluginModule); ok {
			m.cachePlugin = p
			return
		}
	default:
		return
	}
	m.logger.Error("Invalid plugin type", "alias", alias)
}

// Start builds the service on top of the shared database.
func (m *Module) Start(_ context.Context) error {
	if m.store == nil || m.store.DB() == nil {
		return fmt.Errorf("required plugin 'store' not registered")
	}

	var c cache.CacheService = cache.Nop()
	if m.cachePlugin != nil {
		c = m.cachePlugin.Port()
	} else {
		m.logger.Info("No cache plugin registered, product reads go straight to the database")
	}

	m.service = NewService(NewRepository(m.store.DB()), c, m.logger)
	m.logger.Info("Catalog module started")
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Catalog module stopped")
	return nil
}

// Service returns the catalog service instance.
func (m *Module) Service() *Service {
	return m.service
}

// Health returns the health status of the module.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{Healthy: false, Message: "not started"}
	}
	n, err := m.service.CountProducts(ctx)
	if err != nil {
		return mono.HealthStatus{Healthy: false, Message: err.Error()}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"products": n,
			"cache":    m.service.cache.Stats(),
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		"get-product",
		json.Unmarshal,
		json.Marshal,
		m.handleGetProduct,
	); err != nil {
		return fmt.Errorf("failed to register get-product service: %w", err)
	}

	m.logger.Info("Registered services", "services", "get-product")
	return nil
}

func (m *Module) handleGetProduct(ctx context.Context, req GetProductRequest, _ *mono.Msg) (GetProductResponse, error) {
	p, err := m.service.GetProduct(ctx, req.ProductID)
	if err != nil {
		return GetProductResponse{}, err
	}
	return GetProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		CategoryID: p.CategoryID,
		InStock:    p.CountInStock,
	}, nil
}
