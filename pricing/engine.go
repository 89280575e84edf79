package pricing

import (
	"fmt"
	"math"

	"tee-factory/utils"
)

// Sizes is the variant ladder offered on every product, in display order.
var Sizes = []string{"S", "M", "L", "XL", "2XL"}

const (
	// DefaultBaseCostCents is Printful's base production cost for the
	// Bella + Canvas 3001 tee.
	DefaultBaseCostCents int64 = 1500

	// DefaultMarkupFactor is applied to the base cost when MARKUP_PERCENT
	// is not configured.
	DefaultMarkupFactor = 1.4

	// surcharge2XL is the multiplier vendors charge for the 2XL size.
	surcharge2XL = 1.12
)

// Engine computes retail prices from a base production cost and a markup
// factor. All amounts are in cents.
type Engine struct {
	baseCostCents int64
	markupFactor  float64
}

// NewEngine creates a pricing engine. Zero values fall back to the defaults
// so a missing MARKUP_PERCENT never breaks a run.
func NewEngine(baseCostCents int64, markupFactor float64) (*Engine, error) {
	if baseCostCents == 0 {
		baseCostCents = DefaultBaseCostCents
	}
	if markupFactor == 0 {
		markupFactor = DefaultMarkupFactor
	}
	if baseCostCents < 0 {
		return nil, fmt.Errorf("base cost must be positive, got %d", baseCostCents)
	}
	if markupFactor < 1 {
		return nil, fmt.Errorf("markup factor must be >= 1, got %.2f", markupFactor)
	}
	return &Engine{
		baseCostCents: baseCostCents,
		markupFactor:  markupFactor,
	}, nil
}

// RetailPriceCents is the base retail price: production cost times markup,
// rounded to the nearest cent.
func (e *Engine) RetailPriceCents() int64 {
	return int64(math.Round(float64(e.baseCostCents) * e.markupFactor))
}

// PriceCentsForSize returns the retail price for a specific size. 2XL
// carries the vendor surcharge; every other size sells at the base retail
// price.
func (e *Engine) PriceCentsForSize(size string) int64 {
	retail := e.RetailPriceCents()
	if size == "2XL" {
		return int64(math.Round(float64(retail) * surcharge2XL))
	}
	return retail
}

// PriceStringForSize formats the size's price the way both vendor APIs
// expect it ("25.99").
func (e *Engine) PriceStringForSize(size string) string {
	return utils.FormatUSD(e.PriceCentsForSize(size))
}
