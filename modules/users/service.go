package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	domain "github.com/example/ecommerce-api/domain/user"
	"github.com/example/ecommerce-api/domain/errs"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/google/uuid"
)

// UserService handles accounts and authentication.
type UserService struct {
	repo   *UserRepository
	hasher *PasswordHasher
	jwt    *JWTManager
	logger types.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo *UserRepository, hasher *PasswordHasher, jwt *JWTManager, logger types.Logger) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
		jwt:    jwt,
		logger: logger,
	}
}

// Register creates a customer account. Self-registration never grants
// admin rights regardless of the input.
func (s *UserService) Register(ctx context.Context, in UserInput) (*domain.User, error) {
	in.IsAdmin = false
	return s.Create(ctx, in)
}

// Create creates an account as an administrator would, honoring IsAdmin.
func (s *UserService) Create(ctx context.Context, in UserInput) (*domain.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if strings.TrimSpace(in.Name) == "" {
		return nil, errs.NewValidationError("name", "is required")
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: passwordHash,
		Phone:        in.Phone,
		Street:       in.Street,
		Apartment:    in.Apartment,
		Barangay:     in.Barangay,
		City:         in.City,
		Zip:          in.Zip,
		Region:       in.Region,
		IsAdmin:      in.IsAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User created", "user_id", user.ID, "admin", user.IsAdmin)
	return user, nil
}

// Login authenticates a user and returns the user with a fresh token pair.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, *domain.TokenPair, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.generateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// RefreshTokens exchanges a refresh token for a new pair. The admin flag is
// re-read from the store so a demoted user loses it on the next refresh.
func (s *UserService) RefreshTokens(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token: %w", errs.ErrUnauthorized, err)
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return s.generateTokenPair(user)
}

// ValidateToken validates an access token and returns its claims.
func (s *UserService) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	return &domain.Claims{
		UserID:  claims.UserID,
		Email:   claims.Email,
		IsAdmin: claims.IsAdmin,
	}, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// ListUsers returns every account.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// UpdateUser overwrites the profile fields of a user. The password hash is
// only replaced when a new password is supplied.
func (s *UserService) UpdateUser(ctx context.Context, userID string, in UserInput) (*domain.User, error) {
	current, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	in.Email = strings.TrimSpace(in.Email)
	if strings.TrimSpace(in.Name) == "" {
		return nil, errs.NewValidationError("name", "is required")
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}

	fields := map[string]any{
		"name":       in.Name,
		"email":      in.Email,
		"phone":      in.Phone,
		"street":     in.Street,
		"apartment":  in.Apartment,
		"barangay":   in.Barangay,
		"city":       in.City,
		"zip":        in.Zip,
		"region":     in.Region,
		"is_admin":   in.IsAdmin,
		"updated_at": time.Now(),
	}
	if in.Password != "" {
		if err := validatePassword(in.Password); err != nil {
			return nil, err
		}
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		fields["password_hash"] = hash
	}

	if err := s.repo.Update(ctx, current.ID, fields); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, current.ID)
}

// DeleteUser removes a user.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("User deleted", "user_id", userID)
	return nil
}

// CountUsers returns the number of accounts.
func (s *UserService) CountUsers(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *UserService) generateTokenPair(user *domain.User) (*domain.TokenPair, error) {
	accessToken, err := s.jwt.GenerateAccessToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwt.GenerateRefreshToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.jwt.AccessTokenDuration(),
		TokenType:    "Bearer",
	}, nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}

// bcrypt only looks at the first 72 bytes.
func validatePassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}
	return nil
}
