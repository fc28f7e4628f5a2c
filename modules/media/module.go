// Package media stores product images in the embedded JetStream object store.
package media

import (
	"context"
	"fmt"

	"github.com/go-monolith/mono"
	fsjetstream "github.com/go-monolith/mono/plugin/fs-jetstream"
	"github.com/go-monolith/mono/pkg/types"
)

// BucketName is the fs-jetstream bucket that holds product images.
const BucketName = "uploads"

// Module implements image storage using the fs-jetstream plugin.
type Module struct {
	storage *fsjetstream.PluginModule
	bucket  fsjetstream.FileStoragePort
	service *Service
	baseURL string
	logger  types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module          = (*Module)(nil)
	_ mono.UsePluginModule = (*Module)(nil)
)

// NewModule creates a new media module. baseURL prefixes every image URL.
func NewModule(baseURL string, logger types.Logger) *Module {
	return &Module{
		baseURL: baseURL,
		logger:  logger.WithModule("media"),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "media"
}

// SetPlugin receives the storage plugin from the framework.
func (m *Module) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias != "storage" {
		return
	}
	storage, ok := plugin.(*fsjetstream.PluginModule)
	if !ok {
		m.logger.Error("Invalid plugin type for storage",
			"alias", alias,
			"expected", "*fsjetstream.PluginModule")
		return
	}
	m.storage = storage
	m.logger.Info("Received storage plugin", "alias", alias)
}

// Start opens the images bucket.
func (m *Module) Start(_ context.Context) error {
	if m.storage == nil {
		return fmt.Errorf("required plugin 'storage' not registered")
	}

	m.bucket = m.storage.Bucket(BucketName)
	if m.bucket == nil {
		return fmt.Errorf("bucket '%s' not found in storage plugin", BucketName)
	}

	m.service = NewService(m.bucket, m.baseURL)
	m.logger.Info("Media module started", "bucket", BucketName)
	return nil
}

// Stop gracefully shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Media module stopped")
	return nil
}

// Service returns the image service instance.
func (m *Module) Service() *Service {
	return m.service
}
