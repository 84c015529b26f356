// Package domain defines the types and interfaces for the importer service
package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ImportInput is the inbound import request body
type ImportInput struct {
	ASIN        string `json:"asin" validate:"required,asin"`
	Marketplace string `json:"marketplace" validate:"required,oneof=US UK DE FR JP CA"`
}

// Marketplace is one configured regional storefront
type Marketplace struct {
	ID         int64
	Code       string
	Domain     string // storefront domain, e.g. www.amazon.com
	Endpoint   string // API signing host, e.g. webservices.amazon.com
	Region     string // signing region, e.g. us-east-1
	Currency   string
	PartnerTag string
	Active     bool
}

// Product is the normalized catalog record. Optional fields are
// pointers so absent remote data persists as NULL, never a zero value.
type Product struct {
	ID            int64
	ASIN          string
	MarketplaceID int64

	Title        string
	Brand        *string
	Manufacturer *string
	Images       []string
	DetailURL    *string

	CurrentPrice  *decimal.Decimal
	OriginalPrice *decimal.Decimal
	SavingsAmount *decimal.Decimal
	SavingsPct    *decimal.Decimal
	Currency      *string

	AvailabilityType    *string
	AvailabilityMessage *string

	ReviewCount *int
	StarRating  *decimal.Decimal

	// RawPayload is the verbatim remote item, kept as an audit blob
	RawPayload json.RawMessage

	Status        string
	LastRefreshAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ImportResult is the response body for a completed import
type ImportResult struct {
	ProductID     int64     `json:"product_id"`
	Identifier    string    `json:"identifier"`
	Title         string    `json:"title"`
	Status        string    `json:"status"`
	ImportedAt    time.Time `json:"imported_at"`
	CorrelationID string    `json:"correlation_id"`

	// Fresh reports whether this import inserted a new row; it drives
	// the 201 vs 200 choice and is not part of the body
	Fresh bool `json:"-"`
}

// ImportEvent is one audit row describing an import attempt
type ImportEvent struct {
	At            time.Time
	CorrelationID string
	ASIN          string
	Marketplace   string
	Outcome       string
	ErrorCode     uint16
	RemoteMs      int64
	TotalMs       int64
}
