package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// CatalogPort is what other modules use to read the catalog.
type CatalogPort interface {
	GetProduct(ctx context.Context, productID string) (*GetProductResponse, error)
}

// CatalogAdapter implements CatalogPort over the service container.
type CatalogAdapter struct {
	container mono.ServiceContainer
}

// NewCatalogAdapter creates a new CatalogAdapter.
func NewCatalogAdapter(container mono.ServiceContainer) *CatalogAdapter {
	return &CatalogAdapter{container: container}
}

// GetProduct fetches a product by id. A missing product is reported as
// ErrProductNotFound even though the reply only carries the message text.
func (a *CatalogAdapter) GetProduct(ctx context.Context, productID string) (*GetProductResponse, error) {
	req := GetProductRequest{ProductID: productID}
	var resp GetProductResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get-product",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		if strings.Contains(err.Error(), ErrProductNotFound.Error()) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
		}
		return nil, fmt.Errorf("get-product request failed: %w", err)
	}

	return &resp, nil
}
