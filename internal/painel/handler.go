package painel

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/KromaEnergia/comissio/internal/carga"
	"github.com/KromaEnergia/comissio/internal/utils"
)

// ChaveCache é a chave do resumo no Redis; qualquer mutação de cadastro ou
// cobrança a invalida.
const ChaveCache = "comissio:painel"

// Cache é o subconjunto de cache.Cache usado pelo painel.
type Cache interface {
	Buscar(ctx context.Context, chave string, destino any) (bool, error)
	Geracao(ctx context.Context, chave string) (int64, error)
	GuardarSe(ctx context.Context, chave string, geracao int64, v any, ttl time.Duration) (bool, error)
}

type Handler struct {
	Fontes carga.Fontes
	Cache  Cache
	TTL    time.Duration
	Agora  func() time.Time
}

func NewHandler(f carga.Fontes, c Cache, ttl time.Duration) *Handler {
	return &Handler{Fontes: f, Cache: c, TTL: ttl, Agora: time.Now}
}

// GET /painel
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var res Resumo
	if h.Cache == nil {
		h.calcular(w, r, &res)
		return
	}

	ok, err := h.Cache.Buscar(ctx, ChaveCache, &res)
	if err != nil {
		slog.Warn("falha ao ler painel do cache", "erro", err)
	}
	if ok {
		w.Header().Set("X-Cache", "HIT")
		utils.ResponderJSON(w, http.StatusOK, res)
		return
	}

	// lida antes da carga: uma invalidação no meio descarta a gravação
	geracao, err := h.Cache.Geracao(ctx, ChaveCache)
	if err != nil {
		slog.Warn("falha ao ler geração do painel", "erro", err)
		h.calcular(w, r, &res)
		return
	}
	if !h.calcular(w, r, &res) {
		return
	}
	if _, err := h.Cache.GuardarSe(ctx, ChaveCache, geracao, res, h.TTL); err != nil {
		slog.Warn("falha ao gravar painel no cache", "erro", err)
	}
}

// calcular carrega os dados e responde MISS; false se a carga falhou.
func (h *Handler) calcular(w http.ResponseWriter, r *http.Request, res *Resumo) bool {
	d, err := carga.Carregar(r.Context(), h.Fontes)
	if err != nil {
		utils.ResponderErro(w, err, "Não foi possível carregar o painel. Tente novamente.")
		return false
	}
	*res = Calcular(*d, h.Agora())
	w.Header().Set("X-Cache", "MISS")
	utils.ResponderJSON(w, http.StatusOK, res)
	return true
}
