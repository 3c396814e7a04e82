package parcela

import (
	"fmt"

	"github.com/KromaEnergia/comissio/internal/utils"
	"github.com/shopspring/decimal"
)

var (
	ErrQuantidadeInvalida = fmt.Errorf("%w: a quantidade de parcelas deve ser no mínimo 1", utils.ErrInvalido)
	ErrValorInvalido      = fmt.Errorf("%w: o valor da comissão não pode ser negativo", utils.ErrInvalido)
)

// Gerar divide valorComissao em quantidade parcelas mensais a partir de dataInicio.
//
// O valor é arredondado para centavos; cada parcela recebe a divisão inteira dos
// centavos e o resto vai para a última, de modo que a soma é exatamente o valor.
// A parcela 1 vence em dataInicio e a parcela i em dataInicio + (i-1) meses,
// limitando o dia ao fim do mês quando necessário.
func Gerar(valorComissao decimal.Decimal, quantidade int, dataInicio utils.Data) ([]Parcela, error) {
	if quantidade < 1 {
		return nil, ErrQuantidadeInvalida
	}
	if valorComissao.IsNegative() {
		return nil, ErrValorInvalido
	}

	centavos := valorComissao.Round(2).Shift(2).IntPart()
	n := int64(quantidade)
	base := centavos / n
	resto := centavos - base*n

	parcelas := make([]Parcela, quantidade)
	for i := range parcelas {
		valor := base
		if i == quantidade-1 {
			valor += resto
		}
		parcelas[i] = Parcela{
			Numero:     i + 1,
			Valor:      decimal.New(valor, -2),
			Vencimento: dataInicio.AdicionarMeses(i),
			Status:     StatusPendente,
		}
	}
	return parcelas, nil
}
