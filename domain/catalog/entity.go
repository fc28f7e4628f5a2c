package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Stock bounds enforced on Product.CountInStock.
const (
	MinStock = 0
	MaxStock = 1000
)

// Category groups products in the catalog.
type Category struct {
	ID    string `gorm:"primaryKey;type:text" json:"id"`
	Name  string `gorm:"not null;type:text" json:"name"`
	Icon  string `gorm:"type:text" json:"icon"`
	Color string `gorm:"type:text" json:"color"`
}

// TableName returns the table name for the Category entity.
func (Category) TableName() string {
	return "categories"
}

// Gallery is an ordered list of image URLs stored as a JSON array column.
type Gallery []string

// Value implements driver.Valuer.
func (g Gallery) Value() (driver.Value, error) {
	if g == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(g))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (g *Gallery) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*g = Gallery{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("gallery: unsupported column type %T", src)
	}
	if len(raw) == 0 {
		*g = Gallery{}
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(g))
}

// Product is a sellable item. Orders reference products but never own them.
type Product struct {
	ID               string          `gorm:"primaryKey;type:text" json:"id"`
	Name             string          `gorm:"not null;type:text" json:"name"`
	ShortDescription string          `gorm:"not null;type:text" json:"short_description"`
	LongDescription  string          `gorm:"not null;type:text" json:"long_description"`
	Image            string          `gorm:"type:text" json:"image"`
	Gallery          Gallery         `gorm:"type:text" json:"gallery"`
	Brand            string          `gorm:"type:text" json:"brand"`
	Price            decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0" json:"price"`
	CategoryID       string          `gorm:"type:text;not null;index" json:"categoryId"`
	Category         *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CountInStock     int             `gorm:"not null;default:0" json:"countInStock"`
	Rating           float64         `gorm:"not null;default:0" json:"rating"`
	NumberOfReviews  int             `gorm:"not null;default:0" json:"numberOfReviews"`
	IsFeatured       bool            `gorm:"not null;default:false;index" json:"isFeatured"`
	IsHotDeals       bool            `gorm:"not null;default:false;index" json:"isHotDeals"`
	Discounts        float64         `gorm:"not null;default:0" json:"discounts"`
	DateCreated      time.Time       `json:"dateCreated"`
}

// TableName returns the table name for the Product entity.
func (Product) TableName() string {
	return "products"
}
