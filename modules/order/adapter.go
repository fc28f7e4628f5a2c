package order

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// OrderPort is what other modules use to read order summaries.
type OrderPort interface {
	GetOrder(ctx context.Context, orderID string) (*GetOrderResponse, error)
}

// OrderAdapter implements OrderPort over the service container.
type OrderAdapter struct {
	container mono.ServiceContainer
}

// NewOrderAdapter creates a new OrderAdapter.
func NewOrderAdapter(container mono.ServiceContainer) *OrderAdapter {
	return &OrderAdapter{container: container}
}

// GetOrder fetches an order summary by id.
func (a *OrderAdapter) GetOrder(ctx context.Context, orderID string) (*GetOrderResponse, error) {
	req := GetOrderRequest{OrderID: orderID}
	var resp GetOrderResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get-order",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		if strings.Contains(err.Error(), ErrOrderNotFound.Error()) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("get-order request failed: %w", err)
	}

	return &resp, nil
}
