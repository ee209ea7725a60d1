package billing

import "sort"

// Rates are the configured pricing fractions.
type Rates struct {
	TaxRate               float64 `json:"taxRate"`
	InsuranceDiscountRate float64 `json:"insuranceDiscountRate"`
}

const (
	DefaultTaxRate               = 0.18
	DefaultInsuranceDiscountRate = 0.15
)

func DefaultRates() Rates {
	return Rates{TaxRate: DefaultTaxRate, InsuranceDiscountRate: DefaultInsuranceDiscountRate}
}

// CalcRule prices a bill in place and returns its total. After any rule,
// total = (fee - discount) + tax and tax = (fee - discount) * taxRate.
type CalcRule func(b *Bill) float64

// StandardRule charges tax on the full fee with no discount.
func StandardRule(r Rates) CalcRule {
	return func(b *Bill) float64 {
		b.Discount = 0
		b.TaxAmount = CalculateTax(b.ConsultationFee, r.TaxRate)
		b.TotalAmount = b.ConsultationFee + b.TaxAmount
		return b.TotalAmount
	}
}

// InsuranceRule discounts the fee first and taxes what remains.
func InsuranceRule(r Rates) CalcRule {
	return func(b *Bill) float64 {
		b.Discount = ApplyDiscount(b.ConsultationFee, r.InsuranceDiscountRate)
		afterDiscount := b.ConsultationFee - b.Discount
		b.TaxAmount = CalculateTax(afterDiscount, r.TaxRate)
		b.TotalAmount = afterDiscount + b.TaxAmount
		return b.TotalAmount
	}
}

// Registry maps bill types to calculation rules. Emergency has no rule of
// its own: its surcharge is applied by the Factory and it is then priced as
// Standard, as is every unknown tag.
type Registry struct {
	rates Rates
	rules map[Kind]CalcRule
}

func NewRegistry(r Rates) *Registry {
	return &Registry{
		rates: r,
		rules: map[Kind]CalcRule{
			KindStandard:  StandardRule(r),
			KindInsurance: InsuranceRule(r),
		},
	}
}

func (r *Registry) Rates() Rates { return r.rates }

// Resolve never fails; anything without a registered rule gets Standard.
func (r *Registry) Resolve(t BillType) CalcRule {
	if rule, ok := r.rules[t.Kind]; ok {
		return rule
	}
	return r.rules[KindStandard]
}

// ResolveTag parses tag case-insensitively and resolves it.
func (r *Registry) ResolveTag(tag string) CalcRule {
	return r.Resolve(ParseBillType(tag))
}

// Names lists the registered rule names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.rules))
	for k := range r.rules {
		out = append(out, k.String())
	}
	sort.Strings(out)
	return out
}
