package exportacao

import (
	"fmt"
	"html/template"
	"io"
	"sort"
	"time"

	"github.com/KromaEnergia/comissio/internal/cobranca"
	"github.com/KromaEnergia/comissio/internal/parcela"
	"github.com/shopspring/decimal"
)

const aviso = "Este documento é um extrato informativo. Para validade jurídica, consulte o contrato original."

var extratoTmpl = template.Must(template.New("extrato").Funcs(template.FuncMap{
	"moeda":  FormatarMoeda,
	"data":   func(t time.Time) string { return t.Format("02/01/2006") },
	"numero": func(n int) string { return fmt.Sprintf("#%02d", n) },
}).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Extrato de Cobrança #{{.Referencia}}</title>
<style>
body { font-family: sans-serif; color: #111; margin: 2rem; }
header { display: flex; justify-content: space-between; border-bottom: 2px solid #111; padding-bottom: 1rem; }
table { width: 100%; border-collapse: collapse; margin-top: 1.5rem; }
th, td { text-align: left; padding: .5rem; border-bottom: 1px solid #ddd; }
.pago { color: #15803d; }
.aviso { margin-top: 2rem; font-size: .75rem; font-style: italic; color: #666; text-align: center; }
</style>
</head>
<body>
<header>
  <div>
    <h1>Extrato de Cobrança</h1>
    <p>Comissio - Gestão Financeira Imobiliária</p>
  </div>
  <div>
    <p>Emitido em: {{data .Emissao}}</p>
    <p>Ref: #{{.Referencia}}</p>
  </div>
</header>
<section>
  <h2>Resumo Financeiro</h2>
  <p><strong>Devedor:</strong> {{.Devedor}} {{with .Documento}}({{.}}){{end}}</p>
  <p><strong>Projeto:</strong> {{.Empreendimento}} - Unidade {{.Unidade}}{{with .Torre}} - Torre {{.}}{{end}}</p>
  <p>Total Comissão: {{moeda .Comissao}}</p>
  <p class="pago">Total Recebido: {{moeda .Recebido}}</p>
  <p><strong>Saldo Devedor: {{moeda .Saldo}}</strong></p>
  <p>Status: {{.Status}}</p>
</section>
<table>
  <thead><tr><th>Parcela</th><th>Valor</th><th>Vencimento</th><th>Status</th></tr></thead>
  <tbody>
  {{- range .Parcelas}}
    <tr{{if .Paga}} class="pago"{{end}}><td>{{numero .Numero}}</td><td>{{moeda .Valor}}</td><td>{{data .Vencimento.Time}}</td><td>{{.Status}}</td></tr>
  {{- end}}
  </tbody>
</table>
<p class="aviso">{{.Aviso}}</p>
</body>
</html>
`))

type extrato struct {
	Emissao        time.Time
	Referencia     string
	Devedor        string
	Documento      string
	Empreendimento string
	Unidade        string
	Torre          string
	Comissao       decimal.Decimal
	Recebido       decimal.Decimal
	Saldo          decimal.Decimal
	Status         cobranca.Status
	Parcelas       []parcela.Parcela
	Aviso          string
}

// RenderizarExtrato escreve o extrato imprimível de uma cobrança.
func RenderizarExtrato(w io.Writer, c *cobranca.Cobranca, emissao time.Time) error {
	parcelas := append([]parcela.Parcela(nil), c.Parcelas...)
	sort.Slice(parcelas, func(i, j int) bool { return parcelas[i].Numero < parcelas[j].Numero })

	saldo := cobranca.Consolidar(*c, parcelas)
	e := extrato{
		Emissao:        emissao,
		Referencia:     c.Referencia(),
		Devedor:        c.NomeDevedor(),
		Empreendimento: c.NomeEmpreendimento(),
		Unidade:        c.Unidade(),
		Comissao:       c.ValorComissao,
		Recebido:       saldo.TotalPago,
		Saldo:          saldo.TotalPendente,
		Status:         c.Status,
		Parcelas:       parcelas,
		Aviso:          aviso,
	}
	if c.Devedor != nil {
		e.Documento = c.Devedor.Documento
	}
	if c.Empreendimento != nil {
		e.Torre = c.Empreendimento.Torre
	}
	return extratoTmpl.Execute(w, e)
}
