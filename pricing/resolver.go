// Package pricing resolves the unit price for an item at a requested size.
package pricing

import (
	"fmt"
	"strings"

	"pos-order-api/models"

	"github.com/shopspring/decimal"
)

// InvalidSizeError reports a size label absent from an item's pricing map.
// ValidSizes carries the labels the client may use instead.
type InvalidSizeError struct {
	Size       string
	ValidSizes []string
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("invalid size '%s'. Available: [%s]", e.Size, strings.Join(e.ValidSizes, ", "))
}

// Resolve looks up the unit price for size in the item's pricing map. The
// result becomes the frozen snapshot on the order line: it is resolved exactly
// once, when the line is created, and never recomputed afterwards.
func Resolve(item *models.Item, size string) (decimal.Decimal, error) {
	price, ok := item.Pricing[size]
	if !ok {
		return decimal.Decimal{}, &InvalidSizeError{Size: size, ValidSizes: item.Pricing.Sizes()}
	}
	return price, nil
}
