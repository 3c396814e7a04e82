package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KromaEnergia/comissio/internal/armazem"
	"github.com/KromaEnergia/comissio/internal/auth"
	"github.com/KromaEnergia/comissio/internal/cache"
	"github.com/KromaEnergia/comissio/internal/carga"
	"github.com/KromaEnergia/comissio/internal/cobranca"
	"github.com/KromaEnergia/comissio/internal/devedor"
	"github.com/KromaEnergia/comissio/internal/empreendimento"
	"github.com/KromaEnergia/comissio/internal/metrics"
	"github.com/KromaEnergia/comissio/internal/notificacao"
	"github.com/KromaEnergia/comissio/internal/parcela"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
)

type notificadorFake struct {
	eventos []notificacao.Evento
	err     error
	ctxErr  error
}

func (n *notificadorFake) ParcelaAlterada(ctx context.Context, e notificacao.Evento) error {
	n.ctxErr = ctx.Err()
	n.eventos = append(n.eventos, e)
	return n.err
}

func (n *notificadorFake) Fechar() error { return nil }

func TestObservadorPagamentoAlternado(t *testing.T) {
	agora := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	pagoEm := agora.Add(-time.Minute)
	n := &notificadorFake{}
	m := metrics.Novo()
	o := &Observador{Cache: &cache.Cache{}, Metricas: m, Notificador: n, Agora: func() time.Time { return agora }}

	c := &cobranca.Cobranca{ID: "c1", Status: cobranca.StatusParcial}
	p := parcela.Parcela{
		ID:     "p2",
		Numero: 2,
		Valor:  decimal.RequireFromString("333.3"),
		Status: parcela.StatusPago,
		PagoEm: &pagoEm,
	}

	// contexto já cancelado: o aviso não pode herdar o cancelamento
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	o.PagamentoAlternado(ctx, c, p)

	if len(n.eventos) != 1 {
		t.Fatalf("eventos = %d, quero 1", len(n.eventos))
	}
	if n.ctxErr != nil {
		t.Errorf("contexto da notificação cancelado: %v", n.ctxErr)
	}
	ev := n.eventos[0]
	if ev.CobrancaID != "c1" || ev.ParcelaID != "p2" || ev.Numero != 2 {
		t.Errorf("evento = %+v", ev)
	}
	if ev.Valor != "333.30" {
		t.Errorf("valor = %q, quero 333.30", ev.Valor)
	}
	if ev.Status != "PAGO" || ev.StatusCobranca != "PARCIAL" {
		t.Errorf("status = %q/%q", ev.Status, ev.StatusCobranca)
	}
	if !ev.OcorridoEm.Equal(agora) || ev.PagoEm == nil || !ev.PagoEm.Equal(pagoEm) {
		t.Errorf("datas = %v / %v", ev.OcorridoEm, ev.PagoEm)
	}
	if got := testutil.ToFloat64(m.Pagamentos.WithLabelValues("PAGO")); got != 1 {
		t.Errorf("métrica de pagamentos = %v", got)
	}
}

func TestObservadorFalhaNaoPropaga(t *testing.T) {
	n := &notificadorFake{err: errors.New("broker fora")}
	o := &Observador{Notificador: n}

	// sem cache nem métricas configurados
	o.PagamentoAlternado(context.Background(), &cobranca.Cobranca{ID: "c1"}, parcela.Parcela{ID: "p1"})
	o.CobrancaAlterada(context.Background(), "c1")

	if len(n.eventos) != 1 {
		t.Errorf("eventos = %d", len(n.eventos))
	}
}

type devedoresFake struct {
	devedor.Repository
	ordem armazem.Ordem
}

func (f *devedoresFake) Listar(_ context.Context, o armazem.Ordem, busca string) ([]devedor.Devedor, error) {
	f.ordem = o
	return []devedor.Devedor{{ID: "d1", Nome: "Ana"}}, nil
}

type empreendimentosFake struct {
	empreendimento.Repository
	ordem armazem.Ordem
}

func (f *empreendimentosFake) Listar(_ context.Context, o armazem.Ordem, busca string) ([]empreendimento.Empreendimento, error) {
	f.ordem = o
	return []empreendimento.Empreendimento{{ID: "e1", Nome: "Torre"}}, nil
}

type cobrancasFake struct {
	cobranca.Repository
	filtro *cobranca.Filtro
}

func (f *cobrancasFake) Listar(_ context.Context, filtro cobranca.Filtro) ([]cobranca.Cobranca, error) {
	f.filtro = &filtro
	return []cobranca.Cobranca{{ID: "c1"}}, nil
}

func TestFontesDe(t *testing.T) {
	devs := &devedoresFake{}
	emps := &empreendimentosFake{}
	cobs := &cobrancasFake{}

	d, err := carga.Carregar(context.Background(), FontesDe(devs, emps, cobs))
	if err != nil {
		t.Fatalf("Carregar: %v", err)
	}
	if len(d.Devedores) != 1 || len(d.Empreendimentos) != 1 || len(d.Cobrancas) != 1 {
		t.Errorf("dados = %+v", d)
	}
	if devs.ordem.Campo != "name" || emps.ordem.Campo != "name" {
		t.Errorf("ordens = %+v / %+v", devs.ordem, emps.ordem)
	}
	if cobs.filtro == nil || *cobs.filtro != (cobranca.Filtro{}) {
		t.Errorf("filtro = %+v", cobs.filtro)
	}
}

func TestAcompanharSessoesEncerra(t *testing.T) {
	a := &App{Eventos: auth.NovoEventos(), Cache: &cache.Cache{}}
	cancelar := a.acompanharSessoes()

	a.Eventos.Publicar(auth.EventoSessao{Tipo: auth.EventoSaiu, UserID: "u1"})
	cancelar()
	// segunda chamada não pode fechar o canal de novo
	cancelar()

	if err := a.Fechar(); err != nil {
		t.Errorf("Fechar: %v", err)
	}
}
