package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func priced(rule CalcRule, fee float64) (*Bill, float64) {
	b := &Bill{ConsultationFee: fee, Discount: 99, TaxAmount: 99, TotalAmount: 99}
	return b, rule(b)
}

func assertConsistent(t *testing.T, b *Bill, taxRate float64) {
	t.Helper()
	after := b.ConsultationFee - b.Discount
	assert.InDelta(t, after*taxRate, b.TaxAmount, 1e-9)
	assert.InDelta(t, after+b.TaxAmount, b.TotalAmount, 1e-9)
}

func TestStandardRule(t *testing.T) {
	b, total := priced(StandardRule(DefaultRates()), 1000)

	assert.Equal(t, 0.0, b.Discount)
	assert.InDelta(t, 180.0, b.TaxAmount, 1e-9)
	assert.InDelta(t, 1180.0, b.TotalAmount, 1e-9)
	assert.Equal(t, b.TotalAmount, total)
	assertConsistent(t, b, DefaultTaxRate)
}

func TestInsuranceRule(t *testing.T) {
	b, total := priced(InsuranceRule(DefaultRates()), 1000)

	assert.InDelta(t, 150.0, b.Discount, 1e-9)
	assert.InDelta(t, 153.0, b.TaxAmount, 1e-9)
	assert.InDelta(t, 1003.0, b.TotalAmount, 1e-9)
	assert.Equal(t, b.TotalAmount, total)
	assertConsistent(t, b, DefaultTaxRate)
}

func TestRules_ZeroFee(t *testing.T) {
	for _, rule := range []CalcRule{StandardRule(DefaultRates()), InsuranceRule(DefaultRates())} {
		b, total := priced(rule, 0)
		assert.Zero(t, total)
		assert.Zero(t, b.Discount)
		assert.Zero(t, b.TaxAmount)
	}
}

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry(DefaultRates())

	tests := []struct {
		tag   string
		total float64
	}{
		{"STANDARD", 1180},
		{"standard", 1180},
		{"INSURANCE", 1003},
		{"Insurance", 1003},
		{"EMERGENCY", 1180},
		{"UNKNOWN_TYPE", 1180},
		{"", 1180},
	}
	for _, tt := range tests {
		_, total := priced(r.ResolveTag(tt.tag), 1000)
		assert.InDelta(t, tt.total, total, 1e-9, "tag %q", tt.tag)
	}
}

func TestRegistry_CustomRates(t *testing.T) {
	r := NewRegistry(Rates{TaxRate: 0.1, InsuranceDiscountRate: 0.5})

	b, total := priced(r.Resolve(ParseBillType("INSURANCE")), 200)
	assert.InDelta(t, 100.0, b.Discount, 1e-9)
	assert.InDelta(t, 10.0, b.TaxAmount, 1e-9)
	assert.InDelta(t, 110.0, total, 1e-9)
	assert.Equal(t, 0.1, r.Rates().TaxRate)
}

func TestRegistry_Names(t *testing.T) {
	assert.Equal(t, []string{"INSURANCE", "STANDARD"}, NewRegistry(DefaultRates()).Names())
}
