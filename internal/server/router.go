package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/KromaEnergia/comissio/internal/app"
	"github.com/KromaEnergia/comissio/internal/auth"
	"github.com/KromaEnergia/comissio/internal/carga"
	"github.com/KromaEnergia/comissio/internal/cobranca"
	"github.com/KromaEnergia/comissio/internal/devedor"
	"github.com/KromaEnergia/comissio/internal/empreendimento"
	"github.com/KromaEnergia/comissio/internal/exportacao"
	"github.com/KromaEnergia/comissio/internal/painel"
	"github.com/KromaEnergia/comissio/internal/utils"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

const timeoutHealth = 3 * time.Second

// Pinger é o que o /health consulta.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NovoRouter registra todas as rotas. Só /auth/*, JWKS, /health e /metrics
// dispensam token.
func NovoRouter(a *app.App) http.Handler {
	r := mux.NewRouter()
	r.Use(observar(a.Metricas))

	authH := auth.NewHandler(a.Usuarios, a.Refresh, a.Chaves, a.Eventos, a.Config.CookieSecure)

	r.HandleFunc("/health", health(a)).Methods(http.MethodGet)
	r.Handle("/metrics", a.Metricas.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/.well-known/jwks.json", a.Chaves.HandlerJWKS).Methods(http.MethodGet)

	r.HandleFunc("/auth/login", authH.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh", authH.Renovar).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", authH.Logout).Methods(http.MethodPost)
	r.Handle("/auth/session", a.Autenticador.Opcional(http.HandlerFunc(authH.Sessao))).Methods(http.MethodGet)

	api := r.NewRoute().Subrouter()
	api.Use(a.Autenticador.Exigir)

	api.HandleFunc("/auth/session/eventos", authH.EventosSessao).Methods(http.MethodGet)

	devH := devedor.NewHandler(a.Devedores)
	devH.AoAlterar = a.InvalidarPainel
	api.HandleFunc("/devedores", devH.Listar).Methods(http.MethodGet)
	api.HandleFunc("/devedores", devH.Criar).Methods(http.MethodPost)
	api.HandleFunc("/devedores/{id}", devH.Buscar).Methods(http.MethodGet)
	api.HandleFunc("/devedores/{id}", devH.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/devedores/{id}", devH.Remover).Methods(http.MethodDelete)

	empH := empreendimento.NewHandler(a.Empreendimentos)
	empH.AoAlterar = a.InvalidarPainel
	api.HandleFunc("/empreendimentos", empH.Listar).Methods(http.MethodGet)
	api.HandleFunc("/empreendimentos", empH.Criar).Methods(http.MethodPost)
	api.HandleFunc("/empreendimentos/{id}", empH.Buscar).Methods(http.MethodGet)
	api.HandleFunc("/empreendimentos/{id}", empH.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/empreendimentos/{id}", empH.Remover).Methods(http.MethodDelete)

	// exportação antes de /cobrancas/{id} para não ser lida como id
	expH := exportacao.NewHandler(a.Servico, a.Arquivador)
	api.HandleFunc("/cobrancas/exportar.{formato}", expH.Exportar).Methods(http.MethodGet)
	api.HandleFunc("/cobrancas/{id}/extrato", expH.Extrato).Methods(http.MethodGet)

	cobH := cobranca.NewHandler(a.Servico)
	api.HandleFunc("/cobrancas", cobH.Listar).Methods(http.MethodGet)
	api.HandleFunc("/cobrancas", cobH.Criar).Methods(http.MethodPost)
	api.HandleFunc("/cobrancas/{id}", cobH.Buscar).Methods(http.MethodGet)
	api.HandleFunc("/cobrancas/{id}", cobH.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/cobrancas/{id}", cobH.Remover).Methods(http.MethodDelete)
	api.HandleFunc("/cobrancas/{id}/parcelas", cobH.ListarParcelas).Methods(http.MethodGet)
	api.HandleFunc(rotaPagamento, cobH.AlternarPagamento).Methods(http.MethodPatch)

	fontes := a.Fontes()
	api.HandleFunc("/carga", carga.NewHandler(fontes).Carregar).Methods(http.MethodGet)
	api.HandleFunc("/painel", painel.NewHandler(fontes, a.Cache, a.Config.PainelCacheTTL).Resumo).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins:   a.Config.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "If-Match", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Cache", "X-Retry-Allowed", "X-Request-ID"},
		AllowCredentials: true,
	})
	return c.Handler(r)
}

func health(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeoutHealth)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			slog.Error("health falhou", "erro", err)
			utils.ResponderJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "indisponivel"})
			return
		}
		utils.ResponderJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
