package exportacao

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatarMoeda escreve v em reais: R$ 1.234,56.
func FormatarMoeda(v decimal.Decimal) string {
	sinal := ""
	if v.IsNegative() {
		sinal = "-"
		v = v.Neg()
	}
	s := v.StringFixed(2)
	inteiro, centavos := s[:len(s)-3], s[len(s)-2:]

	var b strings.Builder
	for i, r := range inteiro {
		if i > 0 && (len(inteiro)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return sinal + "R$ " + b.String() + "," + centavos
}
