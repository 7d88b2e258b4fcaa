package pricing

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Derived holds the computed pricing fields for a worksheet. None of them is
// ever user-editable; they are recomputed atomically after every input
// change.
type Derived struct {
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Volume    int64           `json:"volume"`
	Revenue   decimal.Decimal `json:"revenue"`

	// MarginRate is the applied rate as a fraction (0.05 = 5%).
	MarginRate decimal.Decimal `json:"marginRate"`

	MarginAmount decimal.Decimal `json:"marginAmount"`
}

// MarginRatePercent returns the applied rate scaled for display (rate × 100).
func (d Derived) MarginRatePercent() decimal.Decimal {
	return d.MarginRate.Mul(hundred)
}

// Display is the formatted form of Derived used by the UI and by saved
// snapshots: two decimal places, "0" for non-positive amounts.
type Display struct {
	UnitPrice         string `json:"unitPrice"`
	Revenue           string `json:"revenue"`
	MarginRatePercent string `json:"marginRatePercent"`
	MarginAmount      string `json:"marginAmount"`
}

// Display formats the derived fields.
func (d Derived) Display() Display {
	return Display{
		UnitPrice:         formatAmount(d.UnitPrice),
		Revenue:           formatAmount(d.Revenue),
		MarginRatePercent: formatAmount(d.MarginRatePercent()),
		MarginAmount:      formatAmount(d.MarginAmount),
	}
}

// formatAmount renders a monetary value with two decimals, collapsing
// non-positive values to "0".
func formatAmount(d decimal.Decimal) string {
	if d.Sign() <= 0 {
		return "0"
	}
	return d.StringFixed(2)
}

// Compute derives unit price, revenue and margin from a resolved catalog
// node, the chosen sale type and a volume. Pure function, no I/O.
//
// A nil node (unresolved target) yields all zeros. Any non-positive operand
// zeroes the value it participates in instead of producing negative or NaN
// output; negative volumes are rejected upstream by the worksheet and never
// reach this function.
func Compute(node *Node, saleType SaleType, volume int64) Derived {
	d := Derived{
		UnitPrice:    decimal.Zero,
		Volume:       volume,
		Revenue:      decimal.Zero,
		MarginRate:   decimal.Zero,
		MarginAmount: decimal.Zero,
	}
	if node == nil {
		return d
	}

	d.UnitPrice = node.Price

	rate := node.MarginRateDirect
	if IsInterGroup(saleType.Name) {
		rate = node.MarginRateInterGroup
	}
	if rate.Sign() > 0 {
		d.MarginRate = rate
	}

	if d.UnitPrice.Sign() <= 0 || volume <= 0 {
		return d
	}

	vol := decimal.NewFromInt(volume)
	d.Revenue = d.UnitPrice.Mul(vol)

	if d.MarginRate.Sign() > 0 {
		d.MarginAmount = d.UnitPrice.Mul(d.MarginRate).Mul(vol)
	}

	return d
}
