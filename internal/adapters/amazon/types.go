package amazon

import "encoding/json"

// getItemsRequest is the GetItems operation payload
type getItemsRequest struct {
	ItemIds     []string `json:"ItemIds"`
	Resources   []string `json:"Resources"`
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	Marketplace string   `json:"Marketplace"`
}

type getItemsResponse struct {
	ItemsResult *itemsResult  `json:"ItemsResult"`
	Errors      []remoteError `json:"Errors"`
}

// items are kept raw so the original payload can travel with the
// decoded view as an audit blob
type itemsResult struct {
	Items []json.RawMessage `json:"Items"`
}

type remoteError struct {
	Code    string `json:"Code"`
	Message string `json:"Message"`
}

// Item is one raw remote catalog item. Every nested pointer stays nil
// when the remote omits that section; consumers must not assume any
// branch exists.
type Item struct {
	ASIN          string           `json:"ASIN"`
	DetailPageURL string           `json:"DetailPageURL"`
	ItemInfo      *ItemInfo        `json:"ItemInfo"`
	Images        *Images          `json:"Images"`
	Offers        *Offers          `json:"Offers"`
	CustomerRev   *CustomerReviews `json:"CustomerReviews"`

	// Raw is the verbatim item payload as received
	Raw json.RawMessage `json:"-"`
}

// ItemInfo carries descriptive attributes
type ItemInfo struct {
	Title      *DisplayValue `json:"Title"`
	ByLineInfo *ByLineInfo   `json:"ByLineInfo"`
}

// DisplayValue is the remote's single-string attribute wrapper
type DisplayValue struct {
	DisplayValue string `json:"DisplayValue"`
}

// ByLineInfo carries brand and manufacturer attribution
type ByLineInfo struct {
	Brand        *DisplayValue `json:"Brand"`
	Manufacturer *DisplayValue `json:"Manufacturer"`
}

// Images holds the primary image set plus any variants
type Images struct {
	Primary  *ImageSet  `json:"Primary"`
	Variants []ImageSet `json:"Variants"`
}

// ImageSet is one image in up to three sizes
type ImageSet struct {
	Small  *Image `json:"Small"`
	Medium *Image `json:"Medium"`
	Large  *Image `json:"Large"`
}

// Image is a single sized rendition
type Image struct {
	URL    string `json:"URL"`
	Height int    `json:"Height"`
	Width  int    `json:"Width"`
}

// Offers holds the buy-box listings
type Offers struct {
	Listings []Listing `json:"Listings"`
}

// Listing is one offer with price, strike-through basis, and stock state
type Listing struct {
	Price        *Price        `json:"Price"`
	SavingBasis  *Price        `json:"SavingBasis"`
	Availability *Availability `json:"Availability"`
}

// Price is a money amount in the marketplace currency
type Price struct {
	Amount        float64  `json:"Amount"`
	Currency      string   `json:"Currency"`
	DisplayAmount string   `json:"DisplayAmount"`
	Savings       *Savings `json:"Savings"`
}

// Savings is the remote's own discount computation when present
type Savings struct {
	Amount     float64 `json:"Amount"`
	Percentage float64 `json:"Percentage"`
}

// Availability describes stock state for a listing
type Availability struct {
	Type    string `json:"Type"`
	Message string `json:"Message"`
}

// CustomerReviews carries aggregate review stats when the resource is requested
type CustomerReviews struct {
	Count      int         `json:"Count"`
	StarRating *StarRating `json:"StarRating"`
}

// StarRating is the average star value
type StarRating struct {
	Value float64 `json:"Value"`
}
