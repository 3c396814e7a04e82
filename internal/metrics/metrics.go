package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metricas agrupa os coletores da aplicação num registro próprio.
type Metricas struct {
	Registro    *prometheus.Registry
	Requisicoes *prometheus.CounterVec
	Duracao     *prometheus.HistogramVec
	Pagamentos  *prometheus.CounterVec
	Conflitos   prometheus.Counter
}

func Novo() *Metricas {
	reg := prometheus.NewRegistry()
	m := &Metricas{
		Registro: reg,
		Requisicoes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "comissio",
			Name:      "http_requests_total",
			Help:      "Requisições HTTP por rota, método e status.",
		}, []string{"rota", "metodo", "status"}),
		Duracao: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "comissio",
			Name:      "http_request_duration_seconds",
			Help:      "Duração das requisições HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"rota", "metodo"}),
		Pagamentos: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "comissio",
			Name:      "pagamentos_alternados_total",
			Help:      "Parcelas marcadas como pagas ou estornadas.",
		}, []string{"status"}),
		Conflitos: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "comissio",
			Name:      "conflitos_versao_total",
			Help:      "Gravações recusadas por versão desatualizada.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Requisicoes, m.Duracao, m.Pagamentos, m.Conflitos,
	)
	return m
}

// ObservarRequisicao registra contagem e duração de uma requisição.
func (m *Metricas) ObservarRequisicao(rota, metodo string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.Requisicoes.WithLabelValues(rota, metodo, strconv.Itoa(status)).Inc()
	m.Duracao.WithLabelValues(rota, metodo).Observe(d.Seconds())
}

func (m *Metricas) PagamentoAlternado(status string) {
	if m == nil {
		return
	}
	m.Pagamentos.WithLabelValues(status).Inc()
}

func (m *Metricas) Conflito() {
	if m == nil {
		return
	}
	m.Conflitos.Inc()
}

// Handler expõe o registro em /metrics.
func (m *Metricas) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registro, promhttp.HandlerOpts{})
}
