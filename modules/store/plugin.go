// Package store owns the database handle and exposes a typed adapter over
// each collection. It runs as a mono plugin so the connection is open before
// any module starts and closed after every module has stopped.
package store

import (
	"context"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"gorm.io/gorm"
)

// PluginModule provides the shared database as a mono plugin.
type PluginModule struct {
	container types.ServiceContainer
	db        *gorm.DB
	path      string
	debug     bool
}

// Compile-time interface checks.
var (
	_ mono.PluginModule          = (*PluginModule)(nil)
	_ mono.HealthCheckableModule = (*PluginModule)(nil)
)

// NewPluginModule creates a store plugin for the database at path.
func NewPluginModule(path string, debug bool) *PluginModule {
	return &PluginModule{
		path:  path,
		debug: debug,
	}
}

// Name returns the module name.
func (m *PluginModule) Name() string {
	return "store"
}

// Start opens the database and migrates the schema.
func (m *PluginModule) Start(_ context.Context) error {
	db, err := Open(m.path, m.debug)
	if err != nil {
		return err
	}
	if err := Migrate(db); err != nil {
		_ = Close(db)
		return err
	}
	m.db = db

	log.Printf("[store] Plugin started (database: %s)", m.path)
	return nil
}

// Stop closes the database.
func (m *PluginModule) Stop(_ context.Context) error {
	if err := Close(m.db); err != nil {
		log.Printf("[store] Error closing database: %v", err)
		return fmt.Errorf("failed to close database: %w", err)
	}
	log.Println("[store] Plugin stopped")
	return nil
}

// SetContainer sets the service container for this plugin.
func (m *PluginModule) SetContainer(container types.ServiceContainer) {
	m.container = container
}

// Container returns the service container for this plugin.
func (m *PluginModule) Container() types.ServiceContainer {
	return m.container
}

// DB returns the open database handle, or nil before Start.
func (m *PluginModule) DB() *gorm.DB {
	return m.db
}

// Health returns the health status of the plugin.
func (m *PluginModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	stats := sqlDB.Stats()
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database":   m.path,
			"open_conns": stats.OpenConnections,
			"in_use":     stats.InUse,
			"wait_count": stats.WaitCount,
		},
	}
}

// FromPlugin extracts the store from a plugin injected under alias "store".
func FromPlugin(alias string, plugin mono.PluginModule) (*PluginModule, bool) {
	if alias != "store" {
		return nil, false
	}
	p, ok := plugin.(*PluginModule)
	return p, ok
}
