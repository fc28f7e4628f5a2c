package order

import (
	"strings"
	"time"

	domain "github.com/example/ecommerce-api/domain/order"
	"github.com/example/ecommerce-api/domain/errs"
	"github.com/shopspring/decimal"
)

// ItemRequest is one requested order line.
type ItemRequest struct {
	ProductID string          `json:"product"`
	Quantity  domain.Quantity `json:"quantity"`
}

// Validate checks the line before anything is written.
func (r ItemRequest) Validate() error {
	if strings.TrimSpace(r.ProductID) == "" {
		return ErrMissingProduct
	}
	if r.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// CreateOrderInput carries everything the caller supplies for a new order.
// Status and DateOrdered are optional. Shipping fields accept numbers as
// well as strings.
type CreateOrderInput struct {
	OrderItems       []ItemRequest `json:"orderItems"`
	ShippingAddress  domain.Text   `json:"shippingAddress"`
	ShippingAddress1 domain.Text   `json:"shippingAddress1"`
	Barangay         domain.Text   `json:"barangay"`
	City             domain.Text   `json:"city"`
	Zip              domain.Text   `json:"zip"`
	Region           domain.Text   `json:"region"`
	Phone            domain.Text   `json:"phone"`
	Status           domain.Status `json:"status"`
	UserID           string        `json:"user"`
	DateOrdered      *time.Time    `json:"dateOrdered"`
}

// ValidateFields checks the required shipping and owner fields.
func (in CreateOrderInput) ValidateFields() error {
	required := []struct {
		field string
		value string
	}{
		{"shippingAddress", string(in.ShippingAddress)},
		{"barangay", string(in.Barangay)},
		{"city", string(in.City)},
		{"zip", string(in.Zip)},
		{"region", string(in.Region)},
		{"phone", string(in.Phone)},
		{"user", in.UserID},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errs.NewValidationError(r.field, "is required")
		}
	}
	return nil
}

// Validate checks the order fields and then every item.
func (in CreateOrderInput) Validate() error {
	if err := in.ValidateFields(); err != nil {
		return err
	}
	for _, it := range in.OrderItems {
		if err := it.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetOrderRequest asks for an order summary.
type GetOrderRequest struct {
	OrderID string `json:"order_id"`
}

// GetOrderResponse is the summary returned for GetOrderRequest.
type GetOrderResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Status      string          `json:"status"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	ItemCount   int             `json:"item_count"`
	DateOrdered time.Time       `json:"date_ordered"`
}
