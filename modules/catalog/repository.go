package catalog

import (
	"context"

	domain "github.com/example/ecommerce-api/domain/catalog"
	"github.com/example/ecommerce-api/modules/store"
	"gorm.io/gorm"
)

// summaryColumns are the fields returned by featured and hot-deal listings.
var summaryColumns = []string{"id", "name", "price", "image", "rating"}

var withCategory = store.Preload{Path: "Category"}

// Repository handles product and category persistence.
type Repository struct {
	products   *store.Collection[domain.Product]
	categories *store.Collection[domain.Category]
}

// NewRepository creates a new Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		products:   store.NewCollection[domain.Product](db, ErrProductNotFound),
		categories: store.NewCollection[domain.Category](db, ErrCategoryNotFound),
	}
}

// ListProducts returns products with their category, optionally restricted
// to the given categories.
func (r *Repository) ListProducts(ctx context.Context, categoryIDs []string) ([]domain.Product, error) {
	q := store.Query{
		Order:    "date_created asc",
		Preloads: []store.Preload{withCategory},
	}
	if len(categoryIDs) > 0 {
		q.Where = map[string]any{"category_id": categoryIDs}
	}
	return r.products.Find(ctx, q)
}

// FindProduct loads one product with its category.
func (r *Repository) FindProduct(ctx context.Context, id string) (*domain.Product, error) {
	return r.products.FindByID(ctx, id, withCategory)
}

// FlaggedProducts returns product summaries where flag is true.
func (r *Repository) FlaggedProducts(ctx context.Context, flag string, limit int) ([]domain.Product, error) {
	return r.products.Find(ctx, store.Query{
		Where:  map[string]any{flag: true},
		Select: summaryColumns,
		Order:  "date_created desc",
		Limit:  limit,
	})
}

// CreateProduct inserts a product.
func (r *Repository) CreateProduct(ctx context.Context, p *domain.Product) error {
	return r.products.Create(ctx, p)
}

// UpdateProduct sets columns on a product.
func (r *Repository) UpdateProduct(ctx context.Context, id string, fields map[string]any) error {
	return r.products.Update(ctx, id, fields)
}

// DeleteProduct removes a product.
func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	return r.products.Delete(ctx, id)
}

// CountProducts returns the number of products.
func (r *Repository) CountProducts(ctx context.Context) (int64, error) {
	return r.products.Count(ctx, nil)
}

// ListCategories returns every category sorted by name.
func (r *Repository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return r.categories.Find(ctx, store.Query{Order: "name asc"})
}

// FindCategory loads one category.
func (r *Repository) FindCategory(ctx context.Context, id string) (*domain.Category, error) {
	return r.categories.FindByID(ctx, id)
}

// CreateCategory inserts a category.
func (r *Repository) CreateCategory(ctx context.Context, c *domain.Category) error {
	return r.categories.Create(ctx, c)
}

// UpdateCategory sets columns on a category.
func (r *Repository) UpdateCategory(ctx context.Context, id string, fields map[string]any) error {
	return r.categories.Update(ctx, id, fields)
}

// DeleteCategory removes a category.
func (r *Repository) DeleteCategory(ctx context.Context, id string) error {
	return r.categories.Delete(ctx, id)
}

// CountCategories returns the number of categories.
func (r *Repository) CountCategories(ctx context.Context) (int64, error) {
	return r.categories.Count(ctx, nil)
}
