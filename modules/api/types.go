package api

import (
	orderdomain "github.com/example/ecommerce-api/domain/order"
	"github.com/shopspring/decimal"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// DeleteResponse acknowledges a successful delete.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the email and the access token, plus the refresh
// token for clients that rotate.
type LoginResponse struct {
	Email        string `json:"email"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse represents an authentication token response.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// StatusRequest is the body of an order status update. The status may be
// sent as a string or a number.
type StatusRequest struct {
	Status orderdomain.Status `json:"status"`
}

// SalesResponse reports the sum of all order totals.
type SalesResponse struct {
	Sales decimal.Decimal `json:"Sales"`
}

// OrderCountResponse reports the number of orders.
type OrderCountResponse struct {
	Count int64 `json:"Number of orders"`
}

// ProductCountResponse reports the number of products.
type ProductCountResponse struct {
	Count int64 `json:"Number of products"`
}

// UserCountResponse reports the number of users.
type UserCountResponse struct {
	Count int64 `json:"Number of users"`
}

// CategoryCountResponse reports the number of categories.
type CategoryCountResponse struct {
	Count int64 `json:"Number of categories"`
}
