package validationx

import (
	"testing"

	"github.com/ARUMANDESU/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDigits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "all digits", value: "123456", wantErr: false},
		{name: "leading zero", value: "012345", wantErr: false},
		{name: "empty passes through", value: "", wantErr: false},
		{name: "letters", value: "12a456", wantErr: true},
		{name: "whitespace", value: "123 56", wantErr: true},
		{name: "sign", value: "-12345", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validation.Validate(tt.value, IsDigits)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrNotDigits)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCodeRules(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validation.Validate("000000", CodeRules...))
	assert.Error(t, validation.Validate("", CodeRules...))
	assert.Error(t, validation.Validate("12345", CodeRules...))
	assert.Error(t, validation.Validate("1234567", CodeRules...))
	assert.Error(t, validation.Validate("12345x", CodeRules...))
}
