package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meditrack/meditrack/internal/platform/apperr"
)

type sample struct {
	Name  string  `json:"name" validate:"notblank"`
	Age   int     `json:"age" validate:"min=0,max=150"`
	Fee   float64 `json:"consultationFee" validate:"gte=0"`
	Email string  `json:"email,omitempty" validate:"omitempty,email"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name      string
		in        sample
		wantField string
	}{
		{"valid", sample{Name: "Asha", Age: 40, Fee: 500}, ""},
		{"blank name", sample{Name: "   ", Age: 40}, "name"},
		{"age too high", sample{Name: "Asha", Age: 151}, "age"},
		{"negative age", sample{Name: "Asha", Age: -1}, "age"},
		{"negative fee", sample{Name: "Asha", Age: 40, Fee: -1}, "consultationFee"},
		{"bad email", sample{Name: "Asha", Age: 40, Email: "nope"}, "email"},
	}
	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperr.IsInvalidData(err), "got %v", err)
			assert.Equal(t, tt.wantField, apperr.FieldOf(err))
		})
	}
}

func TestValidate_ImplementsEchoValidator(t *testing.T) {
	v := New()
	err := v.Validate(&sample{Name: ""})
	assert.Equal(t, "name", apperr.FieldOf(err))
}

func TestNew_RegistersNotBlank(t *testing.T) {
	var v *Validator
	assert.NotPanics(t, func() { v = New() })
	assert.True(t, apperr.IsInvalidData(v.Struct(struct {
		Code string `json:"code" validate:"notblank"`
	}{Code: "\t"})))
}
