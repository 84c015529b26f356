package service

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"boardstore/internal/adapters/amazon"
	pstrings "boardstore/internal/platform/strings"
	"boardstore/internal/services/importer/domain"
)

// transform maps one raw remote item onto the normalized record. It is
// total: any absent nested structure yields an absent field, never an
// error, so a successfully fetched item always produces a product.
func transform(it *amazon.Item) domain.Product {
	p := domain.Product{
		ASIN:       it.ASIN,
		DetailURL:  pstrings.Ptr(clean(it.DetailPageURL)),
		RawPayload: it.Raw,
	}

	if ii := it.ItemInfo; ii != nil {
		if ii.Title != nil {
			p.Title = clean(ii.Title.DisplayValue)
		}
		if bl := ii.ByLineInfo; bl != nil {
			if bl.Brand != nil {
				p.Brand = pstrings.Ptr(clean(bl.Brand.DisplayValue))
			}
			if bl.Manufacturer != nil {
				p.Manufacturer = pstrings.Ptr(clean(bl.Manufacturer.DisplayValue))
			}
		}
	}

	p.Images = imageURLs(it.Images)

	if of := it.Offers; of != nil && len(of.Listings) > 0 {
		l := of.Listings[0]
		if l.Price != nil {
			cur := decimal.NewFromFloat(l.Price.Amount)
			p.CurrentPrice = &cur
			p.Currency = pstrings.Ptr(l.Price.Currency)
		}
		if l.SavingBasis != nil && l.SavingBasis.Amount > 0 {
			orig := decimal.NewFromFloat(l.SavingBasis.Amount)
			p.OriginalPrice = &orig
		}
		if l.Availability != nil {
			p.AvailabilityType = pstrings.Ptr(l.Availability.Type)
			p.AvailabilityMessage = pstrings.Ptr(clean(l.Availability.Message))
		}
	}

	// both present or both absent, and only for a positive basis
	if p.CurrentPrice != nil && p.OriginalPrice != nil && p.OriginalPrice.IsPositive() {
		diff := p.OriginalPrice.Sub(*p.CurrentPrice)
		amount := diff.Round(2)
		pct := diff.Mul(decimal.NewFromInt(100)).Div(*p.OriginalPrice).Round(2)
		p.SavingsAmount = &amount
		p.SavingsPct = &pct
	}

	if cr := it.CustomerRev; cr != nil {
		if cr.Count > 0 {
			n := cr.Count
			p.ReviewCount = &n
		}
		if cr.StarRating != nil {
			star := decimal.NewFromFloat(cr.StarRating.Value).Round(1)
			p.StarRating = &star
		}
	}

	return p
}

// imageURLs collects the primary rendition plus large variants, largest first
func imageURLs(im *amazon.Images) []string {
	if im == nil {
		return nil
	}
	var out []string
	add := func(img *amazon.Image) {
		if img != nil && img.URL != "" {
			out = append(out, img.URL)
		}
	}
	if im.Primary != nil {
		add(im.Primary.Large)
		add(im.Primary.Medium)
		add(im.Primary.Small)
	}
	for _, v := range im.Variants {
		add(v.Large)
	}
	return out
}

// clean normalizes to NFC and squeezes whitespace runs
func clean(s string) string {
	return pstrings.Collapse(norm.NFC.String(s))
}
