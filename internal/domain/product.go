package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID               int64                  `json:"id"`
	Name             string                 `json:"name"`
	Slug             string                 `json:"slug"`
	Description      string                 `json:"description,omitempty"`
	ShortDescription string                 `json:"shortDescription,omitempty"`
	Price            decimal.Decimal        `json:"price"`
	ComparePrice     *decimal.Decimal       `json:"comparePrice,omitempty"`
	SKU              string                 `json:"sku,omitempty"`
	StockQuantity    int                    `json:"stockQuantity"`
	Weight           *decimal.Decimal       `json:"weight,omitempty"`
	Dimensions       map[string]interface{} `json:"dimensions,omitempty"`
	Compatibility    []string               `json:"compatibility,omitempty"`
	MainImage        string                 `json:"mainImage,omitempty"`
	Images           []string               `json:"images,omitempty"`
	Features         []string               `json:"features,omitempty"`
	Specifications   map[string]interface{} `json:"specifications,omitempty"`
	Active           bool                   `json:"active"`
	Featured         bool                   `json:"featured"`
	CategoryID       int64                  `json:"categoryId"`
	BrandID          *int64                 `json:"brandId,omitempty"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}

func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

// DiscountPercentage is derived from compare_price when it exceeds the
// current price.
func (p Product) DiscountPercentage() int {
	if p.ComparePrice == nil || !p.ComparePrice.GreaterThan(p.Price) {
		return 0
	}
	hundred := decimal.NewFromInt(100)
	pct := p.ComparePrice.Sub(p.Price).Div(*p.ComparePrice).Mul(hundred)
	return int(pct.IntPart())
}
