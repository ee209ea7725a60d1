package billing

import "strings"

// Kind is the closed set of bill types. KindUnknown carries the raw tag in
// BillType and prices exactly like KindStandard.
type Kind int

const (
	KindUnknown Kind = iota
	KindStandard
	KindInsurance
	KindEmergency
)

const (
	TagStandard  = "STANDARD"
	TagInsurance = "INSURANCE"
	TagEmergency = "EMERGENCY"
)

func (k Kind) String() string {
	switch k {
	case KindStandard:
		return TagStandard
	case KindInsurance:
		return TagInsurance
	case KindEmergency:
		return TagEmergency
	default:
		return "UNKNOWN"
	}
}

// BillType is a parsed bill-type tag.
type BillType struct {
	Kind Kind
	Raw  string
}

// ParseBillType upper-cases tag and matches it exactly. Surrounding
// whitespace is not trimmed, so " insurance" is Unknown.
func ParseBillType(tag string) BillType {
	t := BillType{Raw: tag}
	switch strings.ToUpper(tag) {
	case TagStandard:
		t.Kind = KindStandard
	case TagInsurance:
		t.Kind = KindInsurance
	case TagEmergency:
		t.Kind = KindEmergency
	default:
		t.Kind = KindUnknown
	}
	return t
}

// Tag is the tag stored on a bill. Unknown types are stored as STANDARD.
func (t BillType) Tag() string {
	if t.Kind == KindUnknown {
		return TagStandard
	}
	return t.Kind.String()
}

func (t BillType) Known() bool { return t.Kind != KindUnknown }
