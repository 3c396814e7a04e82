package exportacao

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/KromaEnergia/comissio/internal/cobranca"
	"github.com/KromaEnergia/comissio/internal/utils"
	"github.com/gorilla/mux"
)

type fonteCobrancas interface {
	Listar(ctx context.Context, f cobranca.Filtro) ([]cobranca.Cobranca, error)
	Buscar(ctx context.Context, id string) (*cobranca.Cobranca, error)
}

// Arquivador guarda uma cópia de cada arquivo gerado.
type Arquivador interface {
	Arquivar(ctx context.Context, chave, contentType string, conteudo []byte) (string, error)
}

type Handler struct {
	Cobrancas  fonteCobrancas
	Arquivador Arquivador
	Agora      func() time.Time
}

func NewHandler(c fonteCobrancas, a Arquivador) *Handler {
	return &Handler{Cobrancas: c, Arquivador: a, Agora: time.Now}
}

// GET /cobrancas/exportar.{formato}?busca=&status=
func (h *Handler) Exportar(w http.ResponseWriter, r *http.Request) {
	formato, err := ParseFormato(mux.Vars(r)["formato"])
	if err != nil {
		utils.ResponderErro(w, err, "")
		return
	}
	filtro, err := cobranca.FiltroDaRequisicao(r)
	if err != nil {
		utils.ResponderErro(w, err, "")
		return
	}
	lista, err := h.Cobrancas.Listar(r.Context(), filtro)
	if err != nil {
		utils.ResponderErro(w, err, "Erro ao buscar cobranças para exportação")
		return
	}

	var buf bytes.Buffer
	switch formato {
	case FormatoCSV:
		err = EscreverCSV(&buf, lista)
	case FormatoXLSX:
		err = EscreverXLSX(&buf, lista)
	default:
		utils.ResponderErro(w, fmt.Errorf("%w: a lista pode ser exportada em csv ou xlsx", utils.ErrInvalido), "")
		return
	}
	if err != nil {
		utils.ResponderErro(w, err, "Erro ao gerar arquivo")
		return
	}

	agora := h.Agora()
	h.entregar(r.Context(), w, NomeArquivo(formato, agora), formato, buf.Bytes(), agora)
}

// GET /cobrancas/{id}/extrato
func (h *Handler) Extrato(w http.ResponseWriter, r *http.Request) {
	c, err := h.Cobrancas.Buscar(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.ResponderErro(w, err, "")
		return
	}

	agora := h.Agora()
	var buf bytes.Buffer
	if err := RenderizarExtrato(&buf, c, agora); err != nil {
		utils.ResponderErro(w, err, "Erro ao gerar extrato")
		return
	}
	nome := fmt.Sprintf("extrato_%s_%s.html", c.Referencia(), agora.Format("2006-01-02"))
	h.entregar(r.Context(), w, nome, FormatoHTML, buf.Bytes(), agora)
}

func (h *Handler) entregar(ctx context.Context, w http.ResponseWriter, nome string, f Formato, conteudo []byte, agora time.Time) {
	if h.Arquivador != nil {
		chave := fmt.Sprintf("exportacoes/%s/%s", agora.Format("2006-01-02"), nome)
		if caminho, err := h.Arquivador.Arquivar(ctx, chave, f.ContentType(), conteudo); err != nil {
			slog.Warn("falha ao arquivar exportação", "arquivo", nome, "erro", err)
		} else {
			slog.Info("exportação arquivada", "caminho", caminho)
		}
	}

	w.Header().Set("Content-Type", f.ContentType())
	if f != FormatoHTML {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, nome))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(conteudo)
}
