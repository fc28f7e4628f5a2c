package users

import (
	"errors"
	"testing"
	"time"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		SecretKey:            "test-secret-key",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 7 * 24 * time.Hour,
		Issuer:               "test-issuer",
	}
}

func TestJWTManager_GenerateAndValidateAccessToken(t *testing.T) {
	config := testJWTConfig()
	manager := NewJWTManager(config)

	token, err := manager.GenerateAccessToken("user-123", "admin@example.com", true)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("GenerateAccessToken() returned empty token")
	}

	claims, err := manager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}

	if claims.UserID != "user-123" {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, "user-123")
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("claims.Email = %v, want %v", claims.Email, "admin@example.com")
	}
	if !claims.IsAdmin {
		t.Error("claims.IsAdmin = false, want true")
	}
	if claims.TokenType != "access" {
		t.Errorf("claims.TokenType = %v, want %v", claims.TokenType, "access")
	}
	if claims.Issuer != config.Issuer {
		t.Errorf("claims.Issuer = %v, want %v", claims.Issuer, config.Issuer)
	}
}

func TestJWTManager_TokenTypesAreNotInterchangeable(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	access, err := manager.GenerateAccessToken("user-1", "a@example.com", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	refresh, err := manager.GenerateRefreshToken("user-1", "a@example.com", false)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	if _, err := manager.ValidateRefreshToken(access); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateRefreshToken(access) error = %v, want %v", err, ErrInvalidToken)
	}
	if _, err := manager.ValidateAccessToken(refresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateAccessToken(refresh) error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestJWTManager_InvalidToken(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"malformed token", "not-a-jwt"},
		{"garbage segments", "aaa.bbb.ccc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.ValidateToken(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ValidateToken() error = %v, want %v", err, ErrInvalidToken)
			}
		})
	}
}

func TestJWTManager_WrongSecretKey(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())
	other := testJWTConfig()
	other.SecretKey = "another-secret"

	token, err := NewJWTManager(other).GenerateAccessToken("user-1", "a@example.com", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := manager.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken() error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestJWTManager_WrongIssuer(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())
	other := testJWTConfig()
	other.Issuer = "someone-else"

	token, err := NewJWTManager(other).GenerateAccessToken("user-1", "a@example.com", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := manager.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken() error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	config := testJWTConfig()
	config.AccessTokenDuration = -time.Minute
	manager := NewJWTManager(config)

	token, err := manager.GenerateAccessToken("user-1", "a@example.com", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := manager.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("ValidateToken() error = %v, want %v", err, ErrExpiredToken)
	}
}

func TestJWTManager_AccessTokenDuration(t *testing.T) {
	manager := NewJWTManager(DefaultJWTConfig())

	if got := manager.AccessTokenDuration(); got != 86400 {
		t.Errorf("AccessTokenDuration() = %v, want %v", got, 86400)
	}
}
