package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"sync"
	"testing"

	domain "github.com/example/ecommerce-api/domain/catalog"
	"github.com/example/ecommerce-api/domain/errs"
	"github.com/example/ecommerce-api/modules/cache"
	"github.com/example/ecommerce-api/modules/store"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)         {}
func (m *mockLogger) Info(msg string, args ...any)          {}
func (m *mockLogger) Warn(msg string, args ...any)          {}
func (m *mockLogger) Error(msg string, args ...any)         {}
func (m *mockLogger) With(args ...any) types.Logger         { return m }
func (m *mockLogger) WithError(err error) types.Logger      { return m }
func (m *mockLogger) WithModule(module string) types.Logger { return m }

// memoryCache is a map-backed cache.CacheService.
type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
	gets  int
	hits  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	data, ok := c.items[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

func (c *memoryCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.items {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.items, k)
		}
	}
	return nil
}

func (c *memoryCache) Stats() cache.StatsSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cache.StatsSnapshot{Hits: uint64(c.hits), TotalGets: uint64(c.gets)}
}

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

func setupService(t *testing.T) (*Service, *memoryCache) {
	t.Helper()

	db, err := store.Open(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))
	t.Cleanup(func() { _ = store.Close(db) })

	c := newMemoryCache()
	return NewService(NewRepository(db), c, &mockLogger{}), c
}

func validInput(categoryID string) ProductInput {
	return ProductInput{
		Name:             "Running Shoe",
		ShortDescription: "Light",
		LongDescription:  "A light running shoe",
		Brand:            "Acme",
		Image:            "http://localhost:3000/public/uploads/a/shoe.png",
		Price:            decimal.RequireFromString("99.50"),
		CategoryID:       categoryID,
		CountInStock:     10,
	}
}

func mustCategory(t *testing.T, s *Service, name string) *domain.Category {
	t.Helper()
	c, err := s.CreateCategory(context.Background(), CategoryInput{Name: name, Icon: "i", Color: "#000"})
	require.NoError(t, err)
	return c
}

func TestProductInput_Validate(t *testing.T) {
	base := validInput("cat-1")

	tests := []struct {
		name  string
		mod   func(*ProductInput)
		field string
	}{
		{"missing name", func(in *ProductInput) { in.Name = " " }, "name"},
		{"missing short description", func(in *ProductInput) { in.ShortDescription = "" }, "short_description"},
		{"missing long description", func(in *ProductInput) { in.LongDescription = "" }, "long_description"},
		{"missing category", func(in *ProductInput) { in.CategoryID = "" }, "category"},
		{"negative price", func(in *ProductInput) { in.Price = decimal.NewFromInt(-1) }, "price"},
		{"stock above max", func(in *ProductInput) { in.CountInStock = 1001 }, "countInStock"},
		{"negative stock", func(in *ProductInput) { in.CountInStock = -1 }, "countInStock"},
	}

	require.NoError(t, base.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mod(&in)
			err := in.Validate()
			var ve *errs.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestService_CreateProduct(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	cat := mustCategory(t, s, "shoes")

	p, err := s.CreateProduct(ctx, validInput(cat.ID))
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("99.50")))
	require.NotNil(t, p.Category)
	assert.Equal(t, "shoes", p.Category.Name)
	assert.False(t, p.DateCreated.IsZero())
	assert.Empty(t, p.Gallery)
}

func TestService_CreateProductRejectsUnknownCategory(t *testing.T) {
	s, _ := setupService(t)

	_, err := s.CreateProduct(context.Background(), validInput("missing"))
	assert.ErrorIs(t, err, ErrInvalidCategory)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestService_CreateProductRequiresImage(t *testing.T) {
	s, _ := setupService(t)
	cat := mustCategory(t, s, "shoes")

	in := validInput(cat.ID)
	in.Image = ""
	_, err := s.CreateProduct(context.Background(), in)
	assert.ErrorIs(t, err, ErrImageRequired)
}

func TestService_GetProductUsesCache(t *testing.T) {
	s, c := setupService(t)
	ctx := context.Background()
	cat := mustCategory(t, s, "shoes")
	created, err := s.CreateProduct(ctx, validInput(cat.ID))
	require.NoError(t, err)

	first, err := s.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, c.has(productKey(created.ID)))

	second, err := s.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Name, second.Name)
	assert.True(t, second.Price.Equal(first.Price))
	assert.Equal(t, 1, c.hits)

	_, err = s.GetProduct(ctx, "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestService_UpdateProductInvalidatesCache(t *testing.T) {
	s, c := setupService(t)
	ctx := context.Background()
	cat := mustCategory(t, s, "shoes")
	created, err := s.CreateProduct(ctx, validInput(cat.ID))
	require.NoError(t, err)

	_, err = s.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	_, err = s.ListProducts(ctx, nil)
	require.NoError(t, err)

	in := validInput(cat.ID)
	in.Image = ""
	in.Price = decimal.RequireFromString("120")
	updated, err := s.UpdateProduct(ctx, created.ID, in)
	require.NoError(t, err)

	assert.True(t, updated.Price.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, created.Image, updated.Image, "image kept when none uploaded")
	assert.False(t, c.has(productKey(created.ID)))
	assert.False(t, c.has(listKey(nil)))

	fresh, err := s.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, fresh.Price.Equal(decimal.NewFromInt(120)))

	_, err = s.UpdateProduct(ctx, "missing", validInput(cat.ID))
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestService_ListProductsByCategory(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	shoes := mustCategory(t, s, "shoes")
	hats := mustCategory(t, s, "hats")
	bags := mustCategory(t, s, "bags")

	for _, cat := range []*domain.Category{shoes, hats, bags, shoes} {
		_, err := s.CreateProduct(ctx, validInput(cat.ID))
		require.NoError(t, err)
	}

	all, err := s.ListProducts(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	some, err := s.ListProducts(ctx, []string{hats.ID, shoes.ID})
	require.NoError(t, err)
	assert.Len(t, some, 3)
	for _, p := range some {
		assert.NotEqual(t, bags.ID, p.CategoryID)
		require.NotNil(t, p.Category)
	}

	assert.Equal(t, listKey([]string{"b", "a"}), listKey([]string{"a", "b"}))
}

func TestService_FeaturedAndHotDeals(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	cat := mustCategory(t, s, "shoes")

	for i := 0; i < 3; i++ {
		in := validInput(cat.ID)
		in.IsFeatured = true
		in.Rating = 4.5
		_, err := s.CreateProduct(ctx, in)
		require.NoError(t, err)
	}
	in := validInput(cat.ID)
	in.IsHotDeals = true
	_, err := s.CreateProduct(ctx, in)
	require.NoError(t, err)

	featured, err := s.FeaturedProducts(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, featured, 3)
	assert.Empty(t, featured[0].ShortDescription, "summaries only carry name, price, image and rating")
	assert.Equal(t, 4.5, featured[0].Rating)

	limited, err := s.FeaturedProducts(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	hot, err := s.HotDealProducts(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, hot, 1)
}

func TestService_SetGallery(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	cat := mustCategory(t, s, "shoes")
	p, err := s.CreateProduct(ctx, validInput(cat.ID))
	require.NoError(t, err)

	updated, err := s.SetGallery(ctx, p.ID, []string{"u1", "u2"})
	require.NoError(t, err)
	assert.Equal(t, domain.Gallery{"u1", "u2"}, updated.Gallery)

	tooMany := make([]string, MaxGalleryImages+1)
	_, err = s.SetGallery(ctx, p.ID, tooMany)
	assert.ErrorIs(t, err, ErrTooManyImages)

	_, err = s.SetGallery(ctx, "missing", []string{"u"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestService_DeleteProductAndCount(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	cat := mustCategory(t, s, "shoes")
	p, err := s.CreateProduct(ctx, validInput(cat.ID))
	require.NoError(t, err)

	n, err := s.CountProducts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, s.DeleteProduct(ctx, p.ID))
	assert.ErrorIs(t, s.DeleteProduct(ctx, p.ID), ErrProductNotFound)

	n, err = s.CountProducts(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestService_Categories(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	_, err := s.CreateCategory(ctx, CategoryInput{})
	assert.ErrorIs(t, err, errs.ErrValidation)

	c := mustCategory(t, s, "shoes")
	mustCategory(t, s, "bags")

	list, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "bags", list[0].Name)

	updated, err := s.UpdateCategory(ctx, c.ID, CategoryInput{Name: "sneakers", Color: "#f00"})
	require.NoError(t, err)
	assert.Equal(t, "sneakers", updated.Name)

	_, err = s.UpdateCategory(ctx, "missing", CategoryInput{Name: "x"})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	require.NoError(t, s.DeleteCategory(ctx, c.ID))
	_, err = s.GetCategory(ctx, c.ID)
	assert.True(t, errors.Is(err, ErrCategoryNotFound))

	n, err := s.CountCategories(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestModule_HandleGetProduct(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	cat := mustCategory(t, s, "shoes")
	p, err := s.CreateProduct(ctx, validInput(cat.ID))
	require.NoError(t, err)

	m := &Module{service: s, logger: &mockLogger{}}

	resp, err := m.handleGetProduct(ctx, GetProductRequest{ProductID: p.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, p.ID, resp.ID)
	assert.True(t, resp.Price.Equal(p.Price))
	assert.Equal(t, cat.ID, resp.CategoryID)

	_, err = m.handleGetProduct(ctx, GetProductRequest{ProductID: "missing"}, nil)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
