// Package cart applies business rules when mutating the session cart:
// catalog lines snapshot live product data, custom case lines are priced
// server-side regardless of what the client sent.
package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rickbags/internal/cart"
	"rickbags/internal/domain"
	"rickbags/internal/pricing"
	catalogrepo "rickbags/internal/repository/catalog"
	productrepo "rickbags/internal/repository/product"
)

// ErrProductUnavailable is returned when adding a product that does not
// exist or is no longer active.
var ErrProductUnavailable = errors.New("product unavailable")

type Service struct {
	products productrepo.Repository
	catalog  catalogrepo.Repository
}

func New(products productrepo.Repository, catalog catalogrepo.Repository) *Service {
	return &Service{products: products, catalog: catalog}
}

// AddProduct puts a catalog product into the cart, snapshotting its name,
// price and image at add time. The cart key is the product ID, so adding
// the same product twice merges quantities.
func (s *Service) AddProduct(ctx context.Context, c cart.Cart, productID int64, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrProductUnavailable
		}
		return err
	}
	if !p.Active {
		return ErrProductUnavailable
	}

	c.Add(strconv.FormatInt(p.ID, 10), cart.Line{
		ProductID: &p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.MainImage,
		Quantity:  quantity,
	})
	return nil
}

// CustomCaseInput is a configurator submission headed for the cart.
type CustomCaseInput struct {
	Width        decimal.Decimal `json:"width"`
	Height       decimal.Decimal `json:"height"`
	Depth        decimal.Decimal `json:"depth"`
	MaterialID   int64           `json:"materialId"`
	CaseTypeID   int64           `json:"caseTypeId"`
	ExtraPockets int             `json:"extraPockets"`
}

// AddCustomCase prices a custom case configuration and adds it as a
// single-quantity line under a fresh "custom_" key. The price is always
// recomputed here; any price the client submitted is ignored.
func (s *Service) AddCustomCase(ctx context.Context, c cart.Cart, in CustomCaseInput) (*pricing.Quote, error) {
	material, err := s.catalog.GetMaterial(ctx, in.MaterialID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, pricing.ErrInvalidInput
		}
		return nil, err
	}
	caseType, err := s.catalog.GetCaseType(ctx, in.CaseTypeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, pricing.ErrInvalidInput
		}
		return nil, err
	}
	if !material.AvailableForCustom || !material.Active || !caseType.Active {
		return nil, pricing.ErrInvalidInput
	}

	quote, err := pricing.Calculate(in.Width, in.Height, in.Depth, *material, *caseType, in.ExtraPockets)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("Custom %s (%sx%sx%s cm)",
		caseType.Name, in.Width.String(), in.Height.String(), in.Depth.String())

	key := "custom_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	c.Add(key, cart.Line{
		Name:     name,
		Price:    quote.TotalPrice,
		Quantity: 1,
		CustomSpecs: map[string]interface{}{
			"width":        in.Width.String(),
			"height":       in.Height.String(),
			"depth":        in.Depth.String(),
			"material":     material.Name,
			"materialId":   material.ID,
			"caseType":     caseType.Name,
			"caseTypeId":   caseType.ID,
			"extraPockets": in.ExtraPockets,
			"volume":       quote.VolumeLiters.String(),
		},
	})
	return &quote, nil
}
