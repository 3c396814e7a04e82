package cobranca

import (
	"github.com/KromaEnergia/comissio/internal/parcela"
	"github.com/shopspring/decimal"
)

// Saldo é a consolidação financeira de uma cobrança.
type Saldo struct {
	TotalPago     decimal.Decimal `json:"total_paid"`
	TotalPendente decimal.Decimal `json:"total_pending"`
	Pagas         int             `json:"paid_count"`
	Status        Status          `json:"status"`
}

// Consolidar soma as parcelas pagas e deriva o status pela contagem de pagas
// em relação a QuantidadeParcelas.
func Consolidar(c Cobranca, parcelas []parcela.Parcela) Saldo {
	pago := decimal.Zero
	pagas := 0
	for _, p := range parcelas {
		if p.Paga() {
			pago = pago.Add(p.Valor)
			pagas++
		}
	}
	return Saldo{
		TotalPago:     pago,
		TotalPendente: c.ValorComissao.Sub(pago),
		Pagas:         pagas,
		Status:        statusPorPagas(pagas, c.QuantidadeParcelas),
	}
}

func statusPorPagas(pagas, total int) Status {
	switch {
	case pagas == 0:
		return StatusAberta
	case pagas >= total:
		return StatusQuitada
	default:
		return StatusParcial
	}
}
