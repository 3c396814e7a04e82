package cobranca

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KromaEnergia/comissio/internal/parcela"
	"github.com/KromaEnergia/comissio/internal/utils"
	"github.com/shopspring/decimal"
)

// NovaCobrancaDTO é o corpo do POST /cobrancas.
type NovaCobrancaDTO struct {
	DevedorID          string           `json:"debtor_id"`
	EmpreendimentoID   string           `json:"project_id"`
	TaxaComissao       *decimal.Decimal `json:"commission_rate"`
	QuantidadeParcelas int              `json:"installment_count"`
	DataInicio         *utils.Data      `json:"start_date"`
}

// paraEntrada aplica os padrões do formulário: taxa de 5% e início hoje.
func (d NovaCobrancaDTO) paraEntrada(hoje time.Time) NovaCobranca {
	in := NovaCobranca{
		DevedorID:          strings.TrimSpace(d.DevedorID),
		EmpreendimentoID:   strings.TrimSpace(d.EmpreendimentoID),
		TaxaComissao:       decimal.NewFromInt(TaxaPadrao),
		QuantidadeParcelas: d.QuantidadeParcelas,
		DataInicio:         utils.DataDe(hoje),
	}
	if d.TaxaComissao != nil {
		in.TaxaComissao = *d.TaxaComissao
	}
	if d.DataInicio != nil && !d.DataInicio.IsZero() {
		in.DataInicio = *d.DataInicio
	}
	return in
}

// AtualizarCobrancaDTO é o corpo do PUT /cobrancas/{id}.
type AtualizarCobrancaDTO struct {
	DevedorID        *string          `json:"debtor_id"`
	EmpreendimentoID *string          `json:"project_id"`
	TaxaComissao     *decimal.Decimal `json:"commission_rate"`
}

func (d AtualizarCobrancaDTO) paraAtualizacao() Atualizacao {
	return Atualizacao{
		DevedorID:        d.DevedorID,
		EmpreendimentoID: d.EmpreendimentoID,
		TaxaComissao:     d.TaxaComissao,
	}
}

// AlternarPagamentoDTO é o corpo opcional do PATCH .../pagamento.
type AlternarPagamentoDTO struct {
	Versao *int64 `json:"version"`
}

// CobrancaResposta acompanha a cobrança com o saldo consolidado.
type CobrancaResposta struct {
	*Cobranca
	Resumo Saldo `json:"summary"`
}

func novaResposta(c *Cobranca) CobrancaResposta {
	if c.Parcelas == nil {
		c.Parcelas = []parcela.Parcela{}
	}
	return CobrancaResposta{Cobranca: c, Resumo: Consolidar(*c, c.Parcelas)}
}

// versaoIfMatch lê a versão de um cabeçalho If-Match ("3" ou "\"3\"").
func versaoIfMatch(v string) (*int64, error) {
	v = strings.Trim(strings.TrimSpace(v), `"`)
	if v == "" || v == "*" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: If-Match deve conter a versão da parcela", utils.ErrInvalido)
	}
	return &n, nil
}
