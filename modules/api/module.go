// Package api exposes the storefront and admin REST surface over fiber.
package api

import (
	"context"
	"fmt"

	"github.com/example/ecommerce-api/modules/catalog"
	"github.com/example/ecommerce-api/modules/media"
	"github.com/example/ecommerce-api/modules/notification"
	"github.com/example/ecommerce-api/modules/order"
	"github.com/example/ecommerce-api/modules/users"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
)

// Module is the HTTP API module.
type Module struct {
	port        int
	cfg         RouterConfig
	app         *fiber.App
	authAdapter users.AuthPort
	catalog     *catalog.Module
	orders      *order.Module
	users       *users.Module
	media       *media.Module
	notices     *notification.Module
	health      []HealthSource
	limiter     LimiterSource
	logger      types.Logger
}

// LimiterSource supplies shared rate limit storage once its backend is up.
type LimiterSource interface {
	LimiterStorage() fiber.Storage
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.DependentModule       = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new API module listening on port.
func NewModule(port int, cfg RouterConfig, logger types.Logger) *Module {
	return &Module{
		port:   port,
		cfg:    cfg,
		logger: logger.WithModule("api"),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"users", "catalog", "order"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "users" {
		m.authAdapter = users.NewAuthAdapter(container)
	}
}

// SetCatalogModule sets the catalog module.
func (m *Module) SetCatalogModule(mod *catalog.Module) {
	m.catalog = mod
	m.health = append(m.health, mod)
}

// SetOrderModule sets the order module.
func (m *Module) SetOrderModule(mod *order.Module) {
	m.orders = mod
	m.health = append(m.health, mod)
}

// SetUsersModule sets the users module.
func (m *Module) SetUsersModule(mod *users.Module) {
	m.users = mod
	m.health = append(m.health, mod)
}

// SetMediaModule sets the media module.
func (m *Module) SetMediaModule(mod *media.Module) {
	m.media = mod
}

// SetNotificationModule sets the notification module.
func (m *Module) SetNotificationModule(mod *notification.Module) {
	m.notices = mod
	m.health = append(m.health, mod)
}

// AddHealthSource adds a component, such as a plugin, to the /health report.
func (m *Module) AddHealthSource(s HealthSource) {
	m.health = append(m.health, s)
}

// SetLimiterSource shares rate limit counters through s instead of memory.
func (m *Module) SetLimiterSource(s LimiterSource) {
	m.limiter = s
}

// Start builds the router and starts listening.
func (m *Module) Start(_ context.Context) error {
	switch {
	case m.authAdapter == nil:
		return fmt.Errorf("users dependency not set")
	case m.catalog == nil:
		return fmt.Errorf("catalog module not set")
	case m.orders == nil:
		return fmt.Errorf("order module not set")
	case m.users == nil:
		return fmt.Errorf("users module not set")
	case m.media == nil:
		return fmt.Errorf("media module not set")
	case m.notices == nil:
		return fmt.Errorf("notification module not set")
	case m.catalog.Service() == nil, m.orders.Service() == nil, m.users.Service() == nil, m.media.Service() == nil:
		return fmt.Errorf("api started before the modules it serves")
	}

	handlers := NewHandlers(
		m.catalog.Service(),
		m.orders.Service(),
		m.users.Service(),
		m.media.Service(),
		m.notices,
		m.authAdapter,
		m.health...,
	)
	if m.limiter != nil {
		m.cfg.LimiterStorage = m.limiter.LimiterStorage()
	}
	m.app = NewRouter(m.cfg, handlers)

	go func() {
		if err := m.app.Listen(fmt.Sprintf(":%d", m.port)); err != nil {
			m.logger.Error("HTTP server error", "error", err)
		}
	}()

	m.logger.Info("HTTP server started", "port", m.port, "prefix", m.cfg.APIPrefix)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *Module) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	m.logger.Info("Shutting down HTTP server")
	return m.app.ShutdownWithContext(ctx)
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}
