package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	domain "github.com/example/ecommerce-api/domain/catalog"
	"github.com/example/ecommerce-api/modules/cache"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// MaxGalleryImages bounds how many gallery images one product may carry.
const MaxGalleryImages = 10

func productKey(id string) string {
	return "id:" + id
}

func listKey(categoryIDs []string) string {
	if len(categoryIDs) == 0 {
		return "list:all"
	}
	ids := slices.Clone(categoryIDs)
	slices.Sort(ids)
	return "list:" + strings.Join(ids, ",")
}

// Service implements product and category operations. Product reads go
// through the cache; every product write invalidates what it touched.
type Service struct {
	repo    *Repository
	cache   cache.CacheService
	logger  types.Logger
	sfGroup singleflight.Group
}

// NewService creates a new catalog service.
func NewService(repo *Repository, c cache.CacheService, logger types.Logger) *Service {
	if c == nil {
		c = cache.Nop()
	}
	return &Service{
		repo:   repo,
		cache:  c,
		logger: logger,
	}
}

// ListProducts returns every product, or only those in categoryIDs.
func (s *Service) ListProducts(ctx context.Context, categoryIDs []string) ([]domain.Product, error) {
	key := listKey(categoryIDs)

	var cached []domain.Product
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.logger.Warn("Cache read failed", "key", key, "error", err)
	} else if hit {
		return cached, nil
	}

	val, err, _ := s.sfGroup.Do(key, func() (any, error) {
		return s.repo.ListProducts(ctx, categoryIDs)
	})
	if err != nil {
		return nil, err
	}
	products := val.([]domain.Product)

	if err := s.cache.Set(ctx, key, products); err != nil {
		s.logger.Warn("Cache write failed", "key", key, "error", err)
	}
	return products, nil
}

// GetProduct returns one product with its category.
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	key := productKey(id)

	var cached domain.Product
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.logger.Warn("Cache read failed", "key", key, "error", err)
	} else if hit {
		return &cached, nil
	}

	val, err, _ := s.sfGroup.Do(key, func() (any, error) {
		return s.repo.FindProduct(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	p := val.(*domain.Product)

	if err := s.cache.Set(ctx, key, p); err != nil {
		s.logger.Warn("Cache write failed", "key", key, "error", err)
	}
	return p, nil
}

// CreateProduct validates and stores a new product.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	if in.Image == "" {
		return nil, ErrImageRequired
	}

	created := time.Now()
	if in.DateCreated != nil {
		created = *in.DateCreated
	}

	p := &domain.Product{
		ID:               uuid.New().String(),
		Name:             in.Name,
		ShortDescription: in.ShortDescription,
		LongDescription:  in.LongDescription,
		Image:            in.Image,
		Gallery:          domain.Gallery{},
		Brand:            in.Brand,
		Price:            in.Price,
		CategoryID:       in.CategoryID,
		CountInStock:     in.CountInStock,
		Rating:           in.Rating,
		NumberOfReviews:  in.NumberOfReviews,
		IsFeatured:       in.IsFeatured,
		IsHotDeals:       in.IsHotDeals,
		Discounts:        in.Discounts,
		DateCreated:      created,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidate(ctx)
	s.logger.Info("Product created", "product_id", p.ID, "category_id", p.CategoryID)
	return s.repo.FindProduct(ctx, p.ID)
}

// UpdateProduct replaces the writable fields of a product.
func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	current, err := s.repo.FindProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	image := in.Image
	if image == "" {
		image = current.Image
	}
	created := current.DateCreated
	if in.DateCreated != nil {
		created = *in.DateCreated
	}

	fields := map[string]any{
		"name":              in.Name,
		"short_description": in.ShortDescription,
		"long_description":  in.LongDescription,
		"brand":             in.Brand,
		"image":             image,
		"price":             in.Price,
		"category_id":       in.CategoryID,
		"count_in_stock":    in.CountInStock,
		"rating":            in.Rating,
		"number_of_reviews": in.NumberOfReviews,
		"is_featured":       in.IsFeatured,
		"is_hot_deals":      in.IsHotDeals,
		"discounts":         in.Discounts,
		"date_created":      created,
	}
	if err := s.repo.UpdateProduct(ctx, id, fields); err != nil {
		return nil, err
	}

	s.invalidate(ctx, productKey(id))
	s.logger.Info("Product updated", "product_id", id)
	return s.repo.FindProduct(ctx, id)
}

// SetGallery replaces a product's gallery with urls.
func (s *Service) SetGallery(ctx context.Context, id string, urls []string) (*domain.Product, error) {
	if len(urls) > MaxGalleryImages {
		return nil, fmt.Errorf("%w: at most %d gallery images", ErrTooManyImages, MaxGalleryImages)
	}
	if err := s.repo.UpdateProduct(ctx, id, map[string]any{"gallery": domain.Gallery(urls)}); err != nil {
		return nil, err
	}

	s.invalidate(ctx, productKey(id))
	return s.repo.FindProduct(ctx, id)
}

// DeleteProduct removes a product.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, productKey(id))
	s.logger.Info("Product deleted", "product_id", id)
	return nil
}

// CountProducts returns the number of products.
func (s *Service) CountProducts(ctx context.Context) (int64, error) {
	return s.repo.CountProducts(ctx)
}

// FeaturedProducts returns up to limit featured product summaries (all when
// limit is zero).
func (s *Service) FeaturedProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	return s.repo.FlaggedProducts(ctx, "is_featured", limit)
}

// HotDealProducts returns up to limit hot-deal product summaries (all when
// limit is zero).
func (s *Service) HotDealProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	return s.repo.FlaggedProducts(ctx, "is_hot_deals", limit)
}

// ListCategories returns every category.
func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

// GetCategory returns one category.
func (s *Service) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.FindCategory(ctx, id)
}

// CreateCategory validates and stores a category.
func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c := &domain.Category{
		ID:    uuid.New().String(),
		Name:  in.Name,
		Icon:  in.Icon,
		Color: in.Color,
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return c, nil
}

// UpdateCategory replaces a category's fields.
func (s *Service) UpdateCategory(ctx context.Context, id string, in CategoryInput) (*domain.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateCategory(ctx, id, map[string]any{
		"name":  in.Name,
		"icon":  in.Icon,
		"color": in.Color,
	}); err != nil {
		return nil, err
	}
	// Cached products embed their category.
	s.invalidate(ctx, "id:*")
	return s.repo.FindCategory(ctx, id)
}

// DeleteCategory removes a category.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, "id:*")
	return nil
}

// CountCategories returns the number of categories.
func (s *Service) CountCategories(ctx context.Context) (int64, error) {
	return s.repo.CountCategories(ctx)
}

func (s *Service) ensureCategory(ctx context.Context, id string) error {
	if _, err := s.repo.FindCategory(ctx, id); err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return ErrInvalidCategory
		}
		return err
	}
	return nil
}

// invalidate drops every cached listing plus the given keys or patterns.
func (s *Service) invalidate(ctx context.Context, keys ...string) {
	patterns := append([]string{"list:*"}, keys...)
	for _, k := range patterns {
		var err error
		if strings.Contains(k, "*") {
			err = s.cache.DeletePattern(ctx, k)
		} else {
			err = s.cache.Delete(ctx, k)
		}
		if err != nil {
			s.logger.Warn("Cache invalidation failed", "key", k, "error", err)
		}
	}
}
