package users

import (
	"context"
	"errors"

	domain "github.com/example/ecommerce-api/domain/user"
	"github.com/example/ecommerce-api/domain/errs"
	"github.com/example/ecommerce-api/modules/store"
	"gorm.io/gorm"
)

// UserRepository handles user persistence.
type UserRepository struct {
	users *store.Collection[domain.User]
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		users: store.NewCollection[domain.User](db, ErrUserNotFound),
	}
}

// Create creates a new user in the database.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.users.Create(ctx, user); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return ErrUserExists
		}
		return err
	}
	return nil
}

// FindByID finds a user by ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.users.FindByID(ctx, id)
}

// FindByEmail finds a user by email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	found, err := r.users.Find(ctx, store.Query{
		Where: map[string]any{"email": email},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrUserNotFound
	}
	return &found[0], nil
}

// EmailExists checks if a user with the given email exists.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	n, err := r.users.Count(ctx, map[string]any{"email": email})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns every user ordered by name.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.users.Find(ctx, store.Query{Order: "name asc"})
}

// Update sets columns on a user.
func (r *UserRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := r.users.Update(ctx, id, fields); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return ErrUserExists
		}
		return err
	}
	return nil
}

// Delete removes a user.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.users.Delete(ctx, id)
}

// Count returns the number of users.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.users.Count(ctx, nil)
}
