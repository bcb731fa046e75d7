package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/backoffice-pro/internal/domain"
)

// CurrencyScale decimales de redondeo para montos de dinero (política única:
// half-up a 2 decimales; los subtotales intermedios NO se redondean).
const CurrencyScale = 2

// Money es un value object inmutable para cantidades y montos en base 10 exacta.
// Envuelve shopspring/decimal; nunca usar float64 para aritmética monetaria.
type Money struct {
	amount decimal.Decimal
}

// New crea un Money a partir de un decimal.
func New(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// FromString crea un Money a partir de su representación en texto.
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: monto inválido %q", domain.ErrArithmetic, s)
	}
	return Money{amount: d}, nil
}

// FromInt crea un Money desde un entero.
func FromInt(n int64) Money {
	return Money{amount: decimal.NewFromInt(n)}
}

// Zero retorna el Money cero.
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Amount retorna el decimal interno.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add retorna m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub retorna m - other.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// MulScalar retorna m * factor (sin redondear; redondear solo al presentar el monto final).
func (m Money) MulScalar(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor)}
}

// DivScalar retorna m / divisor. Falla con ErrArithmetic si el divisor es cero.
func (m Money) DivScalar(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, fmt.Errorf("%w: división por cero", domain.ErrArithmetic)
	}
	return Money{amount: m.amount.Div(divisor)}, nil
}

// PercentOf retorna el rate% de m (rate expresado como porcentaje, ej. 19 => 19%).
func (m Money) PercentOf(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate).Div(decimal.NewFromInt(100))}
}

// RoundCurrency aplica la política de redondeo de moneda (half-up, 2 decimales).
func (m Money) RoundCurrency() Money {
	return Money{amount: m.amount.Round(CurrencyScale)}
}

// Cmp compara: -1 si m < other, 0 si iguales, 1 si m > other.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// Equal retorna true si ambos montos son iguales (ignora exponente).
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// LessThan retorna true si m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// GreaterThan retorna true si m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// IsZero retorna true si el monto es cero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative retorna true si el monto es negativo.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsPositive retorna true si el monto es estrictamente positivo.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// ClampZero retorna cero si el monto es negativo; el monto intacto en caso contrario.
func (m Money) ClampZero() Money {
	if m.amount.IsNegative() {
		return Zero()
	}
	return m
}

// StringFixed retorna el monto redondeado a 2 decimales como texto (ej. "1000.00").
func (m Money) StringFixed() string {
	return m.amount.StringFixed(CurrencyScale)
}

// String retorna el monto sin redondear.
func (m Money) String() string {
	return m.amount.String()
}
