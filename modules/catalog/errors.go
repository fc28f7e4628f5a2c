package catalog

import (
	"fmt"

	"github.com/example/ecommerce-api/domain/errs"
)

// Sentinel errors for catalog operations.
var (
	// ErrProductNotFound is returned when no product has the requested id.
	ErrProductNotFound = fmt.Errorf("product %w", errs.ErrNotFound)

	// ErrCategoryNotFound is returned when no category has the requested id.
	ErrCategoryNotFound = fmt.Errorf("category %w", errs.ErrNotFound)

	// ErrInvalidCategory is returned when a product references a category
	// that does not exist.
	ErrInvalidCategory = fmt.Errorf("%w: invalid category", errs.ErrValidation)

	// ErrImageRequired is returned when a product is created without an image.
	ErrImageRequired = fmt.Errorf("%w: no image in the request", errs.ErrValidation)
)

// ErrTooManyImages is returned when a gallery exceeds MaxGalleryImages.
var ErrTooManyImages = fmt.Errorf("%w: too many images", errs.ErrValidation)
