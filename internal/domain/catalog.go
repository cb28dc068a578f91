package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	ParentID    *int64    `json:"parentId,omitempty"`
	SortOrder   int       `json:"sortOrder"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Brand struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Logo        string    `json:"logo,omitempty"`
	Website     string    `json:"website,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Material is a fabric/padding option priced per square meter.
type Material struct {
	ID                 int64                  `json:"id"`
	Name               string                 `json:"name"`
	Description        string                 `json:"description,omitempty"`
	PricePerUnit       decimal.Decimal        `json:"pricePerUnit"`
	AvailableForCustom bool                   `json:"availableForCustom"`
	Properties         map[string]interface{} `json:"properties,omitempty"`
	Active             bool                   `json:"active"`
	CreatedAt          time.Time              `json:"createdAt"`
}

// CaseType scales the base price of a custom case (soft bag, hard case, ...).
type CaseType struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	PriceMultiplier decimal.Decimal `json:"priceMultiplier"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"createdAt"`
}
