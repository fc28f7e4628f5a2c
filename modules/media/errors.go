package media

import (
	"fmt"

	"github.com/example/ecommerce-api/domain/errs"
)

// Sentinel errors for image storage operations.
var (
	// ErrInvalidImageType is returned for anything other than PNG or JPEG.
	ErrInvalidImageType = fmt.Errorf("%w: invalid image type", errs.ErrValidation)

	// ErrEmptyImage is returned when an upload carries no bytes.
	ErrEmptyImage = fmt.Errorf("%w: image is empty", errs.ErrValidation)

	// ErrTooManyImages is returned when a gallery upload exceeds MaxGalleryFiles.
	ErrTooManyImages = fmt.Errorf("%w: too many images", errs.ErrValidation)

	// ErrImageNotFound is returned when the requested key does not exist.
	ErrImageNotFound = fmt.Errorf("image %w", errs.ErrNotFound)

	// ErrInvalidKey is returned when a key is empty or escapes the bucket layout.
	ErrInvalidKey = fmt.Errorf("%w: invalid image key", errs.ErrValidation)
)
