package catalog

import (
	"strings"
	"time"

	domain "github.com/example/ecommerce-api/domain/catalog"
	"github.com/example/ecommerce-api/domain/errs"
	"github.com/shopspring/decimal"
)

// ProductInput carries the writable product fields for create and update.
// Image is the public URL of an already stored image; on update an empty
// Image keeps the current one.
type ProductInput struct {
	Name             string
	ShortDescription string
	LongDescription  string
	Brand            string
	Image            string
	Price            decimal.Decimal
	CategoryID       string
	CountInStock     int
	Rating           float64
	NumberOfReviews  int
	IsFeatured       bool
	IsHotDeals       bool
	Discounts        float64
	DateCreated      *time.Time
}

// Validate checks required fields and numeric bounds.
func (in ProductInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return errs.NewValidationError("name", "is required")
	case strings.TrimSpace(in.ShortDescription) == "":
		return errs.NewValidationError("short_description", "is required")
	case strings.TrimSpace(in.LongDescription) == "":
		return errs.NewValidationError("long_description", "is required")
	case in.CategoryID == "":
		return errs.NewValidationError("category", "is required")
	case in.Price.IsNegative():
		return errs.NewValidationError("price", "must not be negative")
	case in.CountInStock < domain.MinStock || in.CountInStock > domain.MaxStock:
		return errs.NewValidationError("countInStock", "must be between 0 and 1000")
	case in.Rating < 0:
		return errs.NewValidationError("rating", "must not be negative")
	case in.NumberOfReviews < 0:
		return errs.NewValidationError("numberOfReviews", "must not be negative")
	}
	return nil
}

// CategoryInput carries the writable category fields.
type CategoryInput struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Validate checks required fields.
func (in CategoryInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errs.NewValidationError("name", "is required")
	}
	return nil
}

// GetProductRequest asks the catalog for one product.
type GetProductRequest struct {
	ProductID string `json:"product_id"`
}

// GetProductResponse is the catalog's answer to GetProductRequest.
type GetProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	CategoryID string          `json:"category_id"`
	InStock    int             `json:"in_stock"`
}
