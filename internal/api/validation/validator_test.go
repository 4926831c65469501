package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name    string `json:"Name" validate:"required,notblank,max=5"`
	Email   string `json:"Email" validate:"required,notblank,max=254"`
	Phone   string `json:"Phone" validate:"max=32"`
	Message string `json:"Message"`
	Query   string `json:"Query" validate:"alias_of=Message"`
}

func TestValidatorReportsJSONNames(t *testing.T) {
	v := New()

	err := v.Struct(sample{Name: "toolong", Email: "   ", Phone: "1234567890123456789012345678901234"})
	require.Error(t, err)

	errs := FormatValidationError(err)
	assert.ElementsMatch(t, []ValidationError{
		{Field: "Name", Tag: "max", Param: "5"},
		{Field: "Email", Tag: "notblank"},
		{Field: "Phone", Tag: "max", Param: "32"},
	}, errs)
}

func TestValidatorAcceptsFreeFormContactDetails(t *testing.T) {
	v := New()

	for _, s := range []sample{
		{Name: "Ann", Email: "a@x.com"},
		{Name: "Ann", Email: "ops@localhost", Phone: "555-0100 ext. 2"},
		{Name: "Ann", Email: "not an address", Phone: "+44 (0)20 7946 0958 mobile"},
	} {
		assert.NoError(t, v.Struct(s), "%+v", s)
	}
}

func TestAliasOf(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		message string
		query   string
		valid   bool
	}{
		{"neither", "", "", true},
		{"message only", "hi", "", true},
		{"alias only", "", "hi", true},
		{"same text", "hi", "hi", true},
		{"different text", "hi", "bye", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(sample{Name: "Ann", Email: "a@x.com", Message: tt.message, Query: tt.query})
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, []ValidationError{{Field: "Query", Tag: "alias_of", Param: "Message"}}, FormatValidationError(err))
		})
	}
}

func TestFormatValidationErrorIgnoresOtherErrors(t *testing.T) {
	assert.Empty(t, FormatValidationError(assert.AnError))
	assert.Empty(t, FormatValidationError(nil))
}
