package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/KromaEnergia/comissio/internal/cache"
	"github.com/KromaEnergia/comissio/internal/cobranca"
	"github.com/KromaEnergia/comissio/internal/metrics"
	"github.com/KromaEnergia/comissio/internal/notificacao"
	"github.com/KromaEnergia/comissio/internal/painel"
	"github.com/KromaEnergia/comissio/internal/parcela"
)

const timeoutNotificacao = 5 * time.Second

// Observador propaga mutações já confirmadas: apaga o painel em cache,
// conta pagamentos e avisa sistemas externos. Falhas aqui só geram log.
type Observador struct {
	Cache       *cache.Cache
	Metricas    *metrics.Metricas
	Notificador notificacao.Notificador
	Agora       func() time.Time
}

func (o *Observador) agora() time.Time {
	if o.Agora == nil {
		return time.Now()
	}
	return o.Agora()
}

func (o *Observador) CobrancaAlterada(ctx context.Context, cobrancaID string) {
	if err := o.Cache.Invalidar(ctx, painel.ChaveCache); err != nil {
		slog.Warn("falha ao invalidar painel", "cobranca_id", cobrancaID, "erro", err)
	}
}

func (o *Observador) PagamentoAlternado(ctx context.Context, c *cobranca.Cobranca, p parcela.Parcela) {
	o.CobrancaAlterada(ctx, c.ID)
	o.Metricas.PagamentoAlternado(string(p.Status))

	if o.Notificador == nil {
		return
	}
	ev := notificacao.Evento{
		CobrancaID:     c.ID,
		ParcelaID:      p.ID,
		Numero:         p.Numero,
		Valor:          p.Valor.StringFixed(2),
		Status:         string(p.Status),
		PagoEm:         p.PagoEm,
		StatusCobranca: string(c.Status),
		OcorridoEm:     o.agora(),
	}

	// o cliente pode já ter desconectado; o aviso segue mesmo assim
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeoutNotificacao)
	defer cancel()
	if err := o.Notificador.ParcelaAlterada(nctx, ev); err != nil {
		slog.Error("falha ao notificar alteração de parcela",
			"cobranca_id", c.ID, "parcela", p.Numero, "erro", err)
	}
}
