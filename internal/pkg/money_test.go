package pkg_test

import (
	"testing"

	appErrors "Tenure/internal/errors"
	"Tenure/internal/pkg"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateMoneyAmount(t *testing.T) {
	tests := []struct {
		amount string
		valid  bool
	}{
		{"0.01", true},
		{"10.50", true},
		{"10.500", true},
		{"9999999999999.99", true},
		{"0", false},
		{"-1", false},
		{"0.005", false},
		{"0.001", false},
		{"10000000000000", false},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			err := pkg.ValidateMoneyAmount("amount", decimal.RequireFromString(tt.amount))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, appErrors.ErrValidation)
		})
	}
}

func TestValidateNonNegativeMoney(t *testing.T) {
	assert.NoError(t, pkg.ValidateNonNegativeMoney("budget", decimal.Zero))
	assert.ErrorIs(t, pkg.ValidateNonNegativeMoney("budget", decimal.NewFromInt(-1)), appErrors.ErrValidation)
	assert.ErrorIs(t, pkg.ValidateNonNegativeMoney("budget", decimal.RequireFromString("1.234")), appErrors.ErrValidation)
}
