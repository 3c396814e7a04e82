package painel

import (
	"sort"
	"time"

	"github.com/KromaEnergia/comissio/internal/carga"
	"github.com/KromaEnergia/comissio/internal/cobranca"
	"github.com/KromaEnergia/comissio/internal/parcela"
	"github.com/KromaEnergia/comissio/internal/utils"
	"github.com/shopspring/decimal"
)

const maxVencimentos = 5

var nomesMeses = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// Vencimento é uma parcela pendente com os nomes do devedor e do empreendimento.
type Vencimento struct {
	CobrancaID         string          `json:"debt_id"`
	ParcelaID          string          `json:"installment_id"`
	Numero             int             `json:"number"`
	Valor              decimal.Decimal `json:"amount"`
	Vencimento         utils.Data      `json:"due_date"`
	NomeDevedor        string          `json:"debtor_name"`
	NomeEmpreendimento string          `json:"project_name"`
}

// Mes é uma barra da previsão mensal.
type Mes struct {
	Nome  string          `json:"name"`
	Valor decimal.Decimal `json:"amount"`
}

// Resumo são os números do painel.
type Resumo struct {
	TotalReceber       decimal.Decimal         `json:"total_receivable"`
	TotalRecebido      decimal.Decimal         `json:"total_received"`
	TotalPendente      decimal.Decimal         `json:"total_pending"`
	TicketMedio        decimal.Decimal         `json:"average_ticket"`
	Devedores          int                     `json:"debtor_count"`
	Cobrancas          int                     `json:"debt_count"`
	Vencimentos        []Vencimento            `json:"upcoming"`
	PrevisaoMensal     []Mes                   `json:"monthly_forecast"`
	DistribuicaoStatus map[cobranca.Status]int `json:"status_distribution"`
	Ano                int                     `json:"year"`
}

// Calcular deriva o resumo a partir da carga. Não tem efeitos colaterais:
// o mesmo Dados e o mesmo agora produzem o mesmo Resumo.
func Calcular(d carga.Dados, agora time.Time) Resumo {
	nomesDev := make(map[string]string, len(d.Devedores))
	for _, dv := range d.Devedores {
		nomesDev[dv.ID] = dv.Nome
	}
	nomesEmp := make(map[string]string, len(d.Empreendimentos))
	for _, e := range d.Empreendimentos {
		nomesEmp[e.ID] = e.Nome
	}

	distribuicao := map[cobranca.Status]int{
		cobranca.StatusAberta:  0,
		cobranca.StatusParcial: 0,
		cobranca.StatusQuitada: 0,
	}
	r := Resumo{
		TotalReceber:       decimal.Zero,
		TotalRecebido:      decimal.Zero,
		Devedores:          len(d.Devedores),
		Cobrancas:          len(d.Cobrancas),
		Vencimentos:        []Vencimento{},
		DistribuicaoStatus: distribuicao,
		Ano:                agora.Year(),
	}
	meses := make([]decimal.Decimal, 12)
	for i := range meses {
		meses[i] = decimal.Zero
	}

	var pendentes []Vencimento
	for _, c := range d.Cobrancas {
		r.TotalReceber = r.TotalReceber.Add(c.ValorComissao)
		r.DistribuicaoStatus[c.Status]++

		for _, p := range c.Parcelas {
			if p.Vencimento.Year() == r.Ano {
				m := p.Vencimento.Month() - 1
				meses[m] = meses[m].Add(p.Valor)
			}
			if p.Paga() {
				r.TotalRecebido = r.TotalRecebido.Add(p.Valor)
				continue
			}
			pendentes = append(pendentes, novoVencimento(c, p, nomesDev, nomesEmp))
		}
	}
	r.TotalPendente = r.TotalReceber.Sub(r.TotalRecebido)
	if len(d.Cobrancas) > 0 {
		r.TicketMedio = r.TotalReceber.Div(decimal.NewFromInt(int64(len(d.Cobrancas)))).Round(2)
	} else {
		r.TicketMedio = decimal.Zero
	}

	sort.SliceStable(pendentes, func(i, j int) bool {
		a, b := pendentes[i], pendentes[j]
		if !a.Vencimento.Equal(b.Vencimento.Time) {
			return a.Vencimento.Before(b.Vencimento.Time)
		}
		if a.CobrancaID != b.CobrancaID {
			return a.CobrancaID < b.CobrancaID
		}
		return a.Numero < b.Numero
	})
	if len(pendentes) > maxVencimentos {
		pendentes = pendentes[:maxVencimentos]
	}
	r.Vencimentos = append(r.Vencimentos, pendentes...)

	r.PrevisaoMensal = make([]Mes, 12)
	for i, nome := range nomesMeses {
		r.PrevisaoMensal[i] = Mes{Nome: nome, Valor: meses[i]}
	}
	return r
}

func novoVencimento(c cobranca.Cobranca, p parcela.Parcela, devs, emps map[string]string) Vencimento {
	v := Vencimento{
		CobrancaID:         c.ID,
		ParcelaID:          p.ID,
		Numero:             p.Numero,
		Valor:              p.Valor,
		Vencimento:         p.Vencimento,
		NomeDevedor:        c.NomeDevedor(),
		NomeEmpreendimento: c.NomeEmpreendimento(),
	}
	if n, ok := devs[c.DevedorID]; ok && n != "" {
		v.NomeDevedor = n
	}
	if n, ok := emps[c.EmpreendimentoID]; ok && n != "" {
		v.NomeEmpreendimento = n
	}
	return v
}
