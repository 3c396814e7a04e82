package cobranca

import (
	"testing"

	"github.com/KromaEnergia/comissio/internal/parcela"
	"github.com/shopspring/decimal"
)

func parcelas(valores []string, pagas ...int) []parcela.Parcela {
	pago := map[int]bool{}
	for _, n := range pagas {
		pago[n] = true
	}
	out := make([]parcela.Parcela, len(valores))
	for i, v := range valores {
		out[i] = parcela.Parcela{Numero: i + 1, Valor: decimal.RequireFromString(v), Status: parcela.StatusPendente}
		if pago[i+1] {
			out[i].Status = parcela.StatusPago
		}
	}
	return out
}

func TestConsolidar(t *testing.T) {
	c := Cobranca{ValorComissao: decimal.RequireFromString("4000.00"), QuantidadeParcelas: 4}
	valores := []string{"1000.00", "1000.00", "1000.00", "1000.00"}

	tests := []struct {
		nome     string
		pagas    []int
		pago     string
		pendente string
		status   Status
	}{
		{"nenhuma paga", nil, "0", "4000", StatusAberta},
		{"duas de quatro", []int{1, 2}, "2000", "2000", StatusParcial},
		{"uma fora de ordem", []int{3}, "1000", "3000", StatusParcial},
		{"todas", []int{1, 2, 3, 4}, "4000", "0", StatusQuitada},
	}
	for _, tt := range tests {
		t.Run(tt.nome, func(t *testing.T) {
			s := Consolidar(c, parcelas(valores, tt.pagas...))
			if !s.TotalPago.Equal(decimal.RequireFromString(tt.pago)) {
				t.Errorf("TotalPago = %s, quero %s", s.TotalPago, tt.pago)
			}
			if !s.TotalPendente.Equal(decimal.RequireFromString(tt.pendente)) {
				t.Errorf("TotalPendente = %s, quero %s", s.TotalPendente, tt.pendente)
			}
			if s.Pagas != len(tt.pagas) {
				t.Errorf("Pagas = %d, quero %d", s.Pagas, len(tt.pagas))
			}
			if s.Status != tt.status {
				t.Errorf("Status = %s, quero %s", s.Status, tt.status)
			}
		})
	}
}

func TestConsolidarIdempotente(t *testing.T) {
	c := Cobranca{ValorComissao: decimal.RequireFromString("100.00"), QuantidadeParcelas: 3}
	ps := parcelas([]string{"33.33", "33.33", "33.34"}, 3)

	a := Consolidar(c, ps)
	b := Consolidar(c, ps)
	if !a.TotalPago.Equal(b.TotalPago) || a.Status != b.Status || a.Pagas != b.Pagas {
		t.Fatalf("resultados diferentes: %+v x %+v", a, b)
	}
	if !a.TotalPago.Equal(decimal.RequireFromString("33.34")) {
		t.Errorf("TotalPago = %s", a.TotalPago)
	}
}

func TestCalcularComissao(t *testing.T) {
	got := CalcularComissao(decimal.RequireFromString("1000000"), decimal.RequireFromString("5"))
	if !got.Equal(decimal.RequireFromString("50000")) {
		t.Errorf("comissão = %s, quero 50000", got)
	}
	got = CalcularComissao(decimal.RequireFromString("333333.33"), decimal.RequireFromString("2.5"))
	if got.String() != "8333.33" {
		t.Errorf("comissão = %s, quero 8333.33", got)
	}
}

func TestParseStatus(t *testing.T) {
	for _, v := range []string{"", "ALL", "all"} {
		if s, err := ParseStatus(v); err != nil || s != "" {
			t.Errorf("ParseStatus(%q) = %q, %v", v, s, err)
		}
	}
	if s, err := ParseStatus("parcial"); err != nil || s != StatusParcial {
		t.Errorf("ParseStatus(parcial) = %q, %v", s, err)
	}
	if _, err := ParseStatus("PAGA"); err == nil {
		t.Error("esperava erro para status desconhecido")
	}
}
