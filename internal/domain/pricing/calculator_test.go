package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func brandNode(price, rateDirect, rateInterGroup string) *Node {
	return &Node{
		ID:                   "b1",
		Name:                 "Brand One",
		Level:                TargetBrand,
		Active:               true,
		Price:                dec(price),
		MarginRateDirect:     dec(rateDirect),
		MarginRateInterGroup: dec(rateInterGroup),
	}
}

func TestCompute_NilNodeYieldsZeros(t *testing.T) {
	d := Compute(nil, SaleType{Name: "Direct"}, 5)

	assert.True(t, d.UnitPrice.IsZero())
	assert.True(t, d.Revenue.IsZero())
	assert.True(t, d.MarginRate.IsZero())
	assert.True(t, d.MarginAmount.IsZero())

	disp := d.Display()
	assert.Equal(t, "0", disp.UnitPrice)
	assert.Equal(t, "0", disp.Revenue)
	assert.Equal(t, "0", disp.MarginAmount)
}

func TestCompute_NodeWithoutPricingYieldsZeros(t *testing.T) {
	node := &Node{ID: "m1", Level: TargetModel}
	d := Compute(node, SaleType{Name: "Direct"}, 3)

	assert.True(t, d.UnitPrice.IsZero())
	assert.True(t, d.Revenue.IsZero())
	assert.True(t, d.MarginRate.IsZero())
	assert.True(t, d.MarginAmount.IsZero())
}

func TestCompute_DirectSale(t *testing.T) {
	node := brandNode("200000", "0.05", "0.08")

	d := Compute(node, SaleType{Name: "Direct"}, 3)

	disp := d.Display()
	assert.Equal(t, "200000.00", disp.UnitPrice)
	assert.Equal(t, "600000.00", disp.Revenue)
	assert.Equal(t, "30000.00", disp.MarginAmount)
	assert.Equal(t, "5.00", disp.MarginRatePercent)
}

func TestCompute_InterGroupSale(t *testing.T) {
	version := &Node{
		ID:                   "v1",
		Level:                TargetVersion,
		ParentID:             "m1",
		Price:                dec("250000"),
		MarginRateDirect:     dec("0.05"),
		MarginRateInterGroup: dec("0.08"),
	}

	d := Compute(version, SaleType{Name: "Intergroupe"}, 2)

	disp := d.Display()
	assert.Equal(t, "500000.00", disp.Revenue)
	assert.Equal(t, "40000.00", disp.MarginAmount)
}

func TestCompute_SaleTypeRateSwitch(t *testing.T) {
	node := brandNode("100000", "0.05", "0.08")

	tests := []struct {
		name     string
		saleType string
		wantRate string
	}{
		{"lowercase intergroupe", "intergroupe", "0.08"},
		{"mixed case", "InterGroupe", "0.08"},
		{"upper case", "INTERGROUPE", "0.08"},
		{"padded", "  Intergroupe  ", "0.08"},
		{"direct", "Direct", "0.05"},
		{"unknown name falls back to direct", "Flotte", "0.05"},
		{"empty name falls back to direct", "", "0.05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Compute(node, SaleType{Name: tt.saleType}, 1)
			assert.True(t, d.MarginRate.Equal(dec(tt.wantRate)),
				"rate = %s, want %s", d.MarginRate, tt.wantRate)
		})
	}
}

func TestCompute_RevenueIsUnitPriceTimesVolume(t *testing.T) {
	node := brandNode("123456.78", "0.05", "0.08")

	d := Compute(node, SaleType{Name: "Direct"}, 7)

	want := dec("123456.78").Mul(decimal.NewFromInt(7))
	assert.True(t, d.Revenue.Equal(want))
	assert.Equal(t, want.StringFixed(2), d.Display().Revenue)
}

func TestCompute_ZeroVolumeZeroesAmounts(t *testing.T) {
	node := brandNode("200000", "0.05", "0.08")

	d := Compute(node, SaleType{Name: "Direct"}, 0)

	assert.True(t, d.Revenue.IsZero())
	assert.True(t, d.MarginAmount.IsZero())
	// Unit price still reflects the node so the form can show it.
	assert.Equal(t, "200000.00", d.Display().UnitPrice)
}

func TestCompute_NegativePriceDisplaysZero(t *testing.T) {
	node := brandNode("-1", "0.05", "0.08")

	d := Compute(node, SaleType{Name: "Direct"}, 3)

	assert.Equal(t, "0", d.Display().UnitPrice)
	assert.True(t, d.Revenue.IsZero())
	assert.True(t, d.MarginAmount.IsZero())
}
