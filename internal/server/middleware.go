package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/KromaEnergia/comissio/internal/metrics"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const rotaPagamento = "/cobrancas/{id}/parcelas/{pid}/pagamento"

// responseWriter guarda o status escrito pelo handler.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Flush mantém o stream SSE funcionando atrás do middleware.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func rotaDe(r *http.Request) string {
	if rota := mux.CurrentRoute(r); rota != nil {
		if tpl, err := rota.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "desconhecida"
}

// observar registra log e métricas de cada requisição pelo template da rota,
// para que ids não explodam a cardinalidade.
func observar(m *metrics.Metricas) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inicio := time.Now()
			reqID := r.Header.Get("X-Request-ID")
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", reqID)

			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)

			rota := rotaDe(r)
			duracao := time.Since(inicio)
			m.ObservarRequisicao(rota, r.Method, rw.status, duracao)
			if rota == rotaPagamento && rw.status == http.StatusConflict {
				m.Conflito()
			}

			nivel := slog.LevelInfo
			if rw.status >= 500 {
				nivel = slog.LevelError
			}
			slog.Log(r.Context(), nivel, "requisição",
				"request_id", reqID,
				"metodo", r.Method,
				"rota", rota,
				"status", rw.status,
				"duracao_ms", duracao.Milliseconds())
		})
	}
}
