package cobranca

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/KromaEnergia/comissio/internal/utils"
	"github.com/gorilla/mux"
)

type Handler struct {
	Servico *Servico
}

func NewHandler(s *Servico) *Handler {
	return &Handler{Servico: s}
}

// FiltroDaRequisicao lê ?busca= e ?status= (ALL ou vazio = todos).
func FiltroDaRequisicao(r *http.Request) (Filtro, error) {
	q := r.URL.Query()
	status, err := ParseStatus(q.Get("status"))
	if err != nil {
		return Filtro{}, err
	}
	return Filtro{Busca: q.Get("busca"), Status: status}, nil
}

// GET /cobrancas?busca=&status=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	f, err := FiltroDaRequisicao(r)
	if err != nil {
		utils.ResponderErro(w, err, "")
		return
	}
	lista, err := h.Servico.Listar(r.Context(), f)
	if err != nil {
		utils.ResponderErro(w, err, mensagem(err, "Erro ao buscar cobranças"))
		return
	}
	out := make([]CobrancaResposta, 0, len(lista))
	for i := range lista {
		out = append(out, novaResposta(&lista[i]))
	}
	utils.ResponderJSON(w, http.StatusOK, out)
}

// GET /cobrancas/{id}
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	c, err := h.Servico.Buscar(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.ResponderErro(w, err, mensagem(err, "Erro ao buscar cobrança"))
		return
	}
	utils.ResponderJSON(w, http.StatusOK, novaResposta(c))
}

// GET /cobrancas/{id}/parcelas
func (h *Handler) ListarParcelas(w http.ResponseWriter, r *http.Request) {
	c, err := h.Servico.Buscar(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.ResponderErro(w, err, mensagem(err, "Erro ao buscar parcelas"))
		return
	}
	utils.ResponderJSON(w, http.StatusOK, novaResposta(c).Parcelas)
}

// POST /cobrancas
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var in NovaCobrancaDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	c, err := h.Servico.Criar(r.Context(), in.paraEntrada(h.Servico.agora()))
	if err != nil {
		utils.ResponderErro(w, err, mensagem(err, "Erro ao salvar cobrança"))
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, novaResposta(c))
}

// PUT /cobrancas/{id}
// O valor da comissão não é recalculado quando a taxa muda.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	var in AtualizarCobrancaDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	c, err := h.Servico.Atualizar(r.Context(), mux.Vars(r)["id"], in.paraAtualizacao())
	if err != nil {
		utils.ResponderErro(w, err, mensagem(err, "Erro ao atualizar cobrança"))
		return
	}
	utils.ResponderJSON(w, http.StatusOK, novaResposta(c))
}

// DELETE /cobrancas/{id}
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	if err := h.Servico.Remover(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.ResponderErro(w, err, mensagem(err, "Erro ao excluir cobrança"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PATCH /cobrancas/{id}/parcelas/{pid}/pagamento
// Corpo opcional {"version": n} ou cabeçalho If-Match com a versão da parcela.
func (h *Handler) AlternarPagamento(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	versao, err := versaoIfMatch(r.Header.Get("If-Match"))
	if err != nil {
		utils.ResponderErro(w, err, "")
		return
	}
	var in AlternarPagamentoDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if in.Versao != nil {
		versao = in.Versao
	}

	c, err := h.Servico.AlternarPagamento(r.Context(), vars["id"], vars["pid"], versao)
	if err != nil {
		utils.ResponderErro(w, err, mensagem(err, "Erro ao atualizar pagamento"))
		return
	}
	utils.ResponderJSON(w, http.StatusOK, novaResposta(c))
}

func mensagem(err error, padrao string) string {
	switch {
	case errors.Is(err, utils.ErrNaoEncontrado):
		return "Cobrança ou parcela não encontrada"
	case errors.Is(err, utils.ErrConflito):
		return "A parcela foi alterada por outra operação. Recarregue e tente novamente."
	case errors.Is(err, utils.ErrRestricao):
		return "Operação bloqueada: devedor ou empreendimento inexistente"
	case errors.Is(err, utils.ErrRede):
		return "Falha de comunicação com o banco. Tente novamente."
	case errors.Is(err, utils.ErrInvalido):
		return err.Error()
	}
	return padrao
}
