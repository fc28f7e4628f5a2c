package user

import (
	"time"
)

// User represents a customer or administrator account.
type User struct {
	ID           string    `gorm:"primaryKey;type:text" json:"id"`
	Name         string    `gorm:"not null;type:text" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null;type:text" json:"email,omitempty"`
	PasswordHash string    `gorm:"not null;type:text" json:"-"`
	Phone        string    `gorm:"type:text" json:"phone,omitempty"`
	Street       string    `gorm:"type:text" json:"street,omitempty"`
	Apartment    string    `gorm:"type:text" json:"apartment,omitempty"`
	Barangay     string    `gorm:"type:text" json:"barangay,omitempty"`
	City         string    `gorm:"type:text" json:"city,omitempty"`
	Zip          string    `gorm:"type:text" json:"zip,omitempty"`
	Region       string    `gorm:"type:text" json:"region,omitempty"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// TokenPair represents access and refresh tokens.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// Claims is the authenticated identity extracted from an access token.
type Claims struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}
