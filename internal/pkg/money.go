package pkg

import (
	appErrors "Tenure/internal/errors"

	"github.com/shopspring/decimal"
)

// MoneyScale é a escala das colunas decimal(15,2) de carteiras, metas e lançamentos.
const MoneyScale = 2

// MaxMoneyAmount é o maior valor que cabe em decimal(15,2).
var MaxMoneyAmount = decimal.RequireFromString("9999999999999.99")

func MinDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// NonNegative retorna zero quando o valor é negativo.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ValidateMoneyAmount exige valor positivo, em centavos e dentro do limite da coluna.
func ValidateMoneyAmount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return appErrors.NewValidationError(field, "deve ser maior que zero")
	}
	return validateMoneyRange(field, amount)
}

// ValidateNonNegativeMoney é a variante para campos que aceitam zero (ex.: orçamento).
func ValidateNonNegativeMoney(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return appErrors.NewValidationError(field, "não pode ser negativo")
	}
	return validateMoneyRange(field, amount)
}

func validateMoneyRange(field string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(MoneyScale)) {
		return appErrors.NewValidationError(field, "deve ter no máximo 2 casas decimais")
	}
	if amount.GreaterThan(MaxMoneyAmount) {
		return appErrors.NewValidationError(field, "excede o valor máximo permitido")
	}
	return nil
}
