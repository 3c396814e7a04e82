package empreendimento

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/KromaEnergia/comissio/internal/armazem"
	"github.com/KromaEnergia/comissio/internal/utils"
	"github.com/gorilla/mux"
)

type Handler struct {
	Repo Repository
	// AoAlterar é chamado depois de cada criação, edição ou exclusão confirmada.
	AoAlterar func(ctx context.Context)
}

func (h *Handler) avisar(ctx context.Context) {
	if h.AoAlterar != nil {
		h.AoAlterar(ctx)
	}
}

func NewHandler(repo Repository) *Handler {
	return &Handler{Repo: repo}
}

// GET /empreendimentos?busca=&ordem=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lista, err := h.Repo.Listar(r.Context(), armazem.ParseOrdem(q.Get("ordem")), q.Get("busca"))
	if err != nil {
		utils.ResponderErro(w, err, mensagem(err, "Erro ao buscar empreendimentos"))
		return
	}
	if lista == nil {
		lista = []Empreendimento{}
	}
	utils.ResponderJSON(w, http.StatusOK, lista)
}

// GET /empreendimentos/{id}
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	e, err := h.Repo.Buscar(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.ResponderErro(w, err, mensagem(err, "Erro ao buscar empreendimento"))
		return
	}
	utils.ResponderJSON(w, http.StatusOK, e)
}

// POST /empreendimentos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var in EmpreendimentoDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := in.validar(); err != nil {
		utils.ResponderErro(w, err, "")
		return
	}

	e := in.paraModelo()
	if err := h.Repo.Criar(r.Context(), e); err != nil {
		utils.ResponderErro(w, err, mensagem(err, "Erro ao salvar empreendimento"))
		return
	}
	h.avisar(r.Context())
	utils.ResponderJSON(w, http.StatusCreated, e)
}

// PUT /empreendimentos/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	var in AtualizarEmpreendimentoDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	campos, err := in.campos()
	if err != nil {
		utils.ResponderErro(w, err, "")
		return
	}

	e, err := h.Repo.Atualizar(r.Context(), mux.Vars(r)["id"], campos)
	if err != nil {
		utils.ResponderErro(w, err, mensagem(err, "Erro ao atualizar empreendimento"))
		return
	}
	h.avisar(r.Context())
	utils.ResponderJSON(w, http.StatusOK, e)
}

// DELETE /empreendimentos/{id}
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Remover(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.ResponderErro(w, err, mensagem(err, "Erro ao excluir empreendimento"))
		return
	}
	h.avisar(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func mensagem(err error, padrao string) string {
	switch {
	case errors.Is(err, utils.ErrNaoEncontrado):
		return "Empreendimento não encontrado"
	case errors.Is(err, utils.ErrRestricao):
		return "Não é possível excluir o empreendimento: existem cobranças vinculadas a ele"
	case errors.Is(err, utils.ErrRede):
		return "Falha de comunicação com o banco. Tente novamente."
	case errors.Is(err, utils.ErrInvalido):
		return err.Error()
	}
	return padrao
}
