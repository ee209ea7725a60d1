package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBillType(t *testing.T) {
	tests := []struct {
		tag  string
		kind Kind
		want string
	}{
		{"STANDARD", KindStandard, TagStandard},
		{"insurance", KindInsurance, TagInsurance},
		{"Emergency", KindEmergency, TagEmergency},
		{"VIP", KindUnknown, TagStandard},
		{"", KindUnknown, TagStandard},
		{" INSURANCE", KindUnknown, TagStandard},
	}
	for _, tt := range tests {
		bt := ParseBillType(tt.tag)
		assert.Equal(t, tt.kind, bt.Kind, "tag %q", tt.tag)
		assert.Equal(t, tt.tag, bt.Raw)
		assert.Equal(t, tt.want, bt.Tag(), "tag %q", tt.tag)
	}
}

func TestBillType_Known(t *testing.T) {
	assert.True(t, ParseBillType("standard").Known())
	assert.False(t, ParseBillType("gold").Known())
	assert.False(t, BillType{}.Known())
}
