package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ErrItemReferenced blocks deletion of an item (or anything that would cascade
// onto it) while an order line still references it.
var ErrItemReferenced = errors.New("item is referenced by existing order items")

type MenuGroup struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	Name       string     `json:"name" gorm:"not null"`
	Categories []Category `json:"categories,omitempty" gorm:"foreignKey:MenuGroupID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type Category struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"not null"`
	MenuGroupID uint       `json:"menu_group_id" gorm:"not null;index"`
	MenuGroup   *MenuGroup `json:"menu_group,omitempty" gorm:"foreignKey:MenuGroupID"`
	Items       []Item     `json:"items,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Item struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	Name       string     `json:"name" gorm:"not null"`
	CategoryID uint       `json:"category_id" gorm:"not null;index"`
	Category   *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Pricing    PricingMap `json:"pricing" gorm:"type:json;not null"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// PricingMap maps a size label to its unit price, e.g. {"Small": 2.5, "Large": 4.0}.
// Stored as a JSON column.
type PricingMap map[string]decimal.Decimal

func (p PricingMap) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *PricingMap) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("cannot scan %T into PricingMap", value)
	}
}

// Validate enforces the shape required before a pricing map may enter the
// domain: at least one size, every price strictly positive.
func (p PricingMap) Validate() error {
	if len(p) == 0 {
		return errors.New("item must have at least one price option")
	}
	for size, price := range p {
		if !price.IsPositive() {
			return fmt.Errorf("price for size '%s' must be a positive number", size)
		}
	}
	return nil
}

// Sizes returns the valid size labels in sorted order.
func (p PricingMap) Sizes() []string {
	sizes := make([]string, 0, len(p))
	for size := range p {
		sizes = append(sizes, size)
	}
	sort.Strings(sizes)
	return sizes
}
