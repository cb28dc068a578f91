// Package seed loads demo catalog data and the default accounts for
// local development. Apply is idempotent and safe to re-run.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type categorySeed struct {
	Name        string
	Slug        string
	Description string
	SortOrder   int
}

type brandSeed struct {
	Name        string
	Slug        string
	Description string
}

type materialSeed struct {
	Name         string
	Description  string
	PricePerUnit decimal.Decimal
	Properties   map[string]interface{}
}

type caseTypeSeed struct {
	Name            string
	Description     string
	PriceMultiplier decimal.Decimal
}

type productSeed struct {
	Name             string
	Slug             string
	Description      string
	ShortDescription string
	Price            decimal.Decimal
	ComparePrice     *decimal.Decimal
	SKU              string
	StockQuantity    int
	Dimensions       map[string]interface{}
	Compatibility    []string
	MainImage        string
	Features         []string
	CategorySlug     string
	BrandSlug        string
	Featured         bool
}

type userSeed struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	IsAdmin   bool
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Apply inserts demo data for manual testing. Existing rows are updated
// in place, keyed by slug or email.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := []categorySeed{
		{Name: "Amplifier Covers", Slug: "amplifier-covers", Description: "Protective covers for guitar, bass and keyboard amplifiers", SortOrder: 1},
		{Name: "Guitar Cases", Slug: "guitar-cases", Description: "Gig bags and cases for electric and acoustic guitars", SortOrder: 2},
		{Name: "Keyboard Covers", Slug: "keyboard-covers", Description: "Protective covers for keyboards and digital pianos", SortOrder: 3},
		{Name: "Accessories", Slug: "accessories", Description: "Accessories and add-ons for musicians", SortOrder: 4},
	}
	for _, cat := range categories {
		if err := upsertCategory(ctx, pool, cat); err != nil {
			return fmt.Errorf("upsert category %s: %w", cat.Slug, err)
		}
	}

	brands := []brandSeed{
		{Name: "Marshall", Slug: "marshall", Description: "Iconic rock amplifiers"},
		{Name: "Fender", Slug: "fender", Description: "Classic American amplifiers"},
		{Name: "Vox", Slug: "vox", Description: "Vintage British amplifiers"},
		{Name: "Orange", Slug: "orange", Description: "Amplifiers with a distinctive character"},
		{Name: "Mesa Boogie", Slug: "mesa-boogie", Description: "High-end amplifiers"},
		{Name: "Yamaha", Slug: "yamaha", Description: "Versatile instruments and amplifiers"},
		{Name: "Roland", Slug: "roland", Description: "Innovative music technology"},
	}
	for _, b := range brands {
		if err := upsertBrand(ctx, pool, b); err != nil {
			return fmt.Errorf("upsert brand %s: %w", b.Slug, err)
		}
	}

	materials := []materialSeed{
		{
			Name: "1680D Ballistic Nylon", Description: "Ultra-tough material with excellent impact protection",
			PricePerUnit: dec("25.00"),
			Properties:   map[string]interface{}{"waterproof": true, "padding_thickness": 15, "tear_resistance": "high", "weight": "medium"},
		},
		{
			Name: "Premium Black Vinyl", Description: "High-quality vinyl with a professional finish",
			PricePerUnit: dec("18.00"),
			Properties:   map[string]interface{}{"waterproof": true, "padding_thickness": 10, "tear_resistance": "medium", "weight": "light"},
		},
		{
			Name: "500D Cordura", Description: "Light but tough, ideal for frequent use",
			PricePerUnit: dec("20.00"),
			Properties:   map[string]interface{}{"waterproof": false, "padding_thickness": 12, "tear_resistance": "medium", "weight": "light"},
		},
		{
			Name: "Synthetic Leather", Description: "Elegant finish with great durability",
			PricePerUnit: dec("30.00"),
			Properties:   map[string]interface{}{"waterproof": true, "padding_thickness": 8, "tear_resistance": "high", "weight": "heavy"},
		},
	}
	for _, m := range materials {
		if err := upsertMaterial(ctx, pool, m); err != nil {
			return fmt.Errorf("upsert material %s: %w", m.Name, err)
		}
	}

	caseTypes := []caseTypeSeed{
		{Name: "Basic Cover", Description: "Standard protection with basic padding", PriceMultiplier: dec("1.0")},
		{Name: "Premium Cover", Description: "Superior protection with extra padding and pockets", PriceMultiplier: dec("1.3")},
		{Name: "Touring Cover", Description: "Maximum protection for professional transport", PriceMultiplier: dec("1.6")},
		{Name: "Flight Case", Description: "Industrial protection with a rigid shell", PriceMultiplier: dec("2.0")},
	}
	for _, ct := range caseTypes {
		if err := upsertCaseType(ctx, pool, ct); err != nil {
			return fmt.Errorf("upsert case type %s: %w", ct.Name, err)
		}
	}

	comparePrice := dec("119.99")
	products := []productSeed{
		{
			Name: "Marshall JCM800 Head Cover", Slug: "marshall-jcm800-head-cover",
			Description:      "Premium cover for the Marshall JCM800 head. Made from 1680D ballistic nylon with 15mm padding. Front pocket for cables and accessories.",
			ShortDescription: "Premium cover for the Marshall JCM800 head",
			Price:            dec("89.99"), ComparePrice: &comparePrice,
			SKU: "RICK-MAR-JCM800", StockQuantity: 25,
			Dimensions:    map[string]interface{}{"width": 68, "height": 26, "depth": 24},
			Compatibility: []string{"Marshall JCM800 2203", "Marshall JCM800 2204"},
			MainImage:     "/static/images/products/marshall-jcm800-cover.jpg",
			Features:      []string{"1680D ballistic nylon", "15mm padding", "Front zip pocket", "Reinforced handles"},
			CategorySlug:  "amplifier-covers", BrandSlug: "marshall", Featured: true,
		},
		{
			Name: "Fender Twin Reverb Combo Cover", Slug: "fender-twin-reverb-combo-cover",
			Description:      "Professional cover for the Fender Twin Reverb combo. Full protection with high-quality material.",
			ShortDescription: "Professional cover for the Fender Twin Reverb",
			Price:            dec("129.99"),
			SKU:              "RICK-FEN-TWIN", StockQuantity: 15,
			Dimensions:    map[string]interface{}{"width": 66, "height": 61, "depth": 26},
			Compatibility: []string{"Fender Twin Reverb 85W", "Fender Twin Reverb Reissue"},
			MainImage:     "/static/images/products/fender-twin-cover.jpg",
			Features:      []string{"Water-resistant premium material", "Extra-thick padding", "Rear cable access", "Side pockets"},
			CategorySlug:  "amplifier-covers", BrandSlug: "fender", Featured: true,
		},
		{
			Name: "Vox AC30 Combo Cover", Slug: "vox-ac30-combo-cover",
			Description:      "Specialised cover for the iconic Vox AC30, cut to its exact dimensions.",
			ShortDescription: "Specialised cover for the Vox AC30",
			Price:            dec("109.99"),
			SKU:              "RICK-VOX-AC30", StockQuantity: 20,
			Dimensions:    map[string]interface{}{"width": 70, "height": 55, "depth": 28},
			Compatibility: []string{"Vox AC30C2", "Vox AC30CC2", "Vox AC30VR"},
			MainImage:     "/static/images/products/vox-ac30-cover.jpg",
			CategorySlug:  "amplifier-covers", BrandSlug: "vox",
		},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
	}

	users := []userSeed{
		{Email: "admin@rickbags.com", Password: "admin123", FirstName: "Admin", LastName: "RickBags", IsAdmin: true},
		{Email: "customer@example.com", Password: "customer123", FirstName: "Juan", LastName: "Perez", Phone: "+34 600 123 456"},
	}
	for _, u := range users {
		if err := upsertUser(ctx, pool, u); err != nil {
			return fmt.Errorf("upsert user %s: %w", u.Email, err)
		}
	}

	return nil
}

func upsertCategory(ctx context.Context, pool *pgxpool.Pool, c categorySeed) error {
	const q = `
INSERT INTO categories (name, slug, description, sort_order)
VALUES ($1, $2, $3, $4)
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    sort_order = EXCLUDED.sort_order
`
	_, err := pool.Exec(ctx, q, c.Name, c.Slug, c.Description, c.SortOrder)
	return err
}

func upsertBrand(ctx context.Context, pool *pgxpool.Pool, b brandSeed) error {
	const q = `
INSERT INTO brands (name, slug, description)
VALUES ($1, $2, $3)
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description
`
	_, err := pool.Exec(ctx, q, b.Name, b.Slug, b.Description)
	return err
}

// materials and case_types have no unique key, so upserts go through an
// existence check on the name.
func upsertMaterial(ctx context.Context, pool *pgxpool.Pool, m materialSeed) error {
	const q = `
INSERT INTO materials (name, description, price_per_unit, properties)
SELECT $1, $2, $3, $4
WHERE NOT EXISTS (SELECT 1 FROM materials WHERE name = $1)
`
	_, err := pool.Exec(ctx, q, m.Name, m.Description, m.PricePerUnit, m.Properties)
	return err
}

func upsertCaseType(ctx context.Context, pool *pgxpool.Pool, ct caseTypeSeed) error {
	const q = `
INSERT INTO case_types (name, description, price_multiplier)
SELECT $1, $2, $3
WHERE NOT EXISTS (SELECT 1 FROM case_types WHERE name = $1)
`
	_, err := pool.Exec(ctx, q, ct.Name, ct.Description, ct.PriceMultiplier)
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, slug, description, short_description, price, compare_price,
                      sku, stock_quantity, dimensions, compatibility, main_image, features,
                      featured, active, category_id, brand_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, TRUE,
        (SELECT id FROM categories WHERE slug = $14),
        (SELECT id FROM brands WHERE slug = $15))
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    short_description = EXCLUDED.short_description,
    price = EXCLUDED.price,
    compare_price = EXCLUDED.compare_price,
    stock_quantity = EXCLUDED.stock_quantity,
    featured = EXCLUDED.featured
`
	_, err := pool.Exec(ctx, q,
		p.Name, p.Slug, p.Description, p.ShortDescription, p.Price, p.ComparePrice,
		p.SKU, p.StockQuantity, p.Dimensions, p.Compatibility, p.MainImage, p.Features,
		p.Featured, p.CategorySlug, p.BrandSlug)
	return err
}

func upsertUser(ctx context.Context, pool *pgxpool.Pool, u userSeed) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (email, password_hash, first_name, last_name, phone, is_admin, is_active)
VALUES ($1, $2, $3, $4, $5, $6, TRUE)
ON CONFLICT (email) DO UPDATE
SET first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    is_admin = EXCLUDED.is_admin
`
	_, err = pool.Exec(ctx, q, u.Email, string(hash), u.FirstName, u.LastName, u.Phone, u.IsAdmin)
	return err
}
