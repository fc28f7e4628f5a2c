package store

import (
	"context"
	"errors"

	"github.com/example/ecommerce-api/domain/errs"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Preload describes a relationship to populate when reading records.
// Columns and Order narrow and sort the joined rows.
type Preload struct {
	Path    string
	Columns []string
	Order   string
}

func (p Preload) apply(db *gorm.DB) *gorm.DB {
	if len(p.Columns) == 0 && p.Order == "" {
		return db.Preload(p.Path)
	}
	return db.Preload(p.Path, func(tx *gorm.DB) *gorm.DB {
		if len(p.Columns) > 0 {
			tx = tx.Select(p.Columns)
		}
		if p.Order != "" {
			tx = tx.Order(p.Order)
		}
		return tx
	})
}

// Query is a find-with-filter request. Slice values in Where match with IN.
type Query struct {
	Where    map[string]any
	Order    string
	Limit    int
	Select   []string
	Preloads []Preload
}

func (q Query) apply(db *gorm.DB) *gorm.DB {
	if len(q.Where) > 0 {
		db = db.Where(q.Where)
	}
	if len(q.Select) > 0 {
		db = db.Select(q.Select)
	}
	if q.Order != "" {
		db = db.Order(q.Order)
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	for _, p := range q.Preloads {
		db = p.apply(db)
	}
	return db
}

// Collection is a typed data-store adapter over one table. Lookups that
// match nothing return the collection's notFound sentinel; every other
// failure is classified as errs.ErrStorage.
type Collection[T any] struct {
	db       *gorm.DB
	notFound error
}

// NewCollection creates a Collection bound to db.
func NewCollection[T any](db *gorm.DB, notFound error) *Collection[T] {
	return &Collection[T]{db: db, notFound: notFound}
}

// WithTx returns a copy of the collection that runs on tx.
func (c *Collection[T]) WithTx(tx *gorm.DB) *Collection[T] {
	return &Collection[T]{db: tx, notFound: c.notFound}
}

// DB exposes the bound handle for queries the adapter does not cover.
func (c *Collection[T]) DB() *gorm.DB {
	return c.db
}

// Create inserts a new record.
func (c *Collection[T]) Create(ctx context.Context, v *T) error {
	if err := c.db.WithContext(ctx).Create(v).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.ErrConflict
		}
		return errs.Storage("create", err)
	}
	return nil
}

// FindByID loads one record and populates the requested relationships.
func (c *Collection[T]) FindByID(ctx context.Context, id string, preloads ...Preload) (*T, error) {
	var v T
	db := c.db.WithContext(ctx)
	for _, p := range preloads {
		db = p.apply(db)
	}
	if err := db.First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, c.notFound
		}
		return nil, errs.Storage("find by id", err)
	}
	return &v, nil
}

// Find returns every record matching q.
func (c *Collection[T]) Find(ctx context.Context, q Query) ([]T, error) {
	var out []T
	if err := q.apply(c.db.WithContext(ctx).Model(new(T))).Find(&out).Error; err != nil {
		return nil, errs.Storage("find", err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Update sets the given columns on the record with id.
func (c *Collection[T]) Update(ctx context.Context, id string, fields map[string]any) error {
	result := c.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields)
	if err := result.Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.ErrConflict
		}
		return errs.Storage("update", err)
	}
	if result.RowsAffected == 0 {
		return c.notFound
	}
	return nil
}

// Delete removes the record with id.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	result := c.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if err := result.Error; err != nil {
		return errs.Storage("delete", err)
	}
	if result.RowsAffected == 0 {
		return c.notFound
	}
	return nil
}

// DeleteWhere removes every record matching where and reports how many went.
func (c *Collection[T]) DeleteWhere(ctx context.Context, where map[string]any) (int64, error) {
	if len(where) == 0 {
		return 0, errs.NewValidationError("", "refusing to delete without a filter")
	}
	result := c.db.WithContext(ctx).Where(where).Delete(new(T))
	if err := result.Error; err != nil {
		return 0, errs.Storage("delete", err)
	}
	return result.RowsAffected, nil
}

// Count returns the number of records matching where (all when nil).
func (c *Collection[T]) Count(ctx context.Context, where map[string]any) (int64, error) {
	var n int64
	db := c.db.WithContext(ctx).Model(new(T))
	if len(where) > 0 {
		db = db.Where(where)
	}
	if err := db.Count(&n).Error; err != nil {
		return 0, errs.Storage("count", err)
	}
	return n, nil
}

// SumDecimal adds up a decimal column in Go so the total never passes
// through a float. An empty match sums to zero.
func (c *Collection[T]) SumDecimal(ctx context.Context, column string, where map[string]any) (decimal.Decimal, error) {
	var values []decimal.Decimal
	db := c.db.WithContext(ctx).Model(new(T))
	if len(where) > 0 {
		db = db.Where(where)
	}
	if err := db.Pluck(column, &values).Error; err != nil {
		return decimal.Zero, errs.Storage("sum", err)
	}
	return decimal.Sum(decimal.Zero, values...), nil
}
