package devedor

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

// GET /devedores?busca=&ordem=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lista, err := h.Repo.Listar(r.Context(), armazem.ParseOrdem(q.Get("ordem")), q.Get("busca"))
	if err != nil {
		utils.ResponderErro(w, err, mensagem(err, "Erro ao buscar devedores"))
		return
	}
	if lista == nil {
		lista = []Devedor{}
	}
	utils.ResponderJSON(w, http.StatusOK, lista)
}

// GET /devedores/{id}
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	d, err := h.Repo.Buscar(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.ResponderErro(w, err, mensagem(err, "Erro ao buscar devedor"))
		return
	}
	utils.ResponderJSON(w, http.StatusOK, d)
}

// POST /devedores
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var in DevedorDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := in.validar(); err != nil {
		utils.ResponderErro(w, err, "")
		return
	}

	d := in.paraModelo()
	if err := h.Repo.Criar(r.Context(), d); err != nil {
		utils.ResponderErro(w, err, mensagem(err, "Erro ao salvar devedor"))
		return
	}
	h.avisar(r.Context())
	utils.ResponderJSON(w, http.StatusCreated, d)
}

// PUT /devedores/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	var in AtualizarDevedorDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	campos, err := in.campos()
	if err != nil {
		utils.ResponderErro(w, err, "")
		return
	}

	d, err := h.Repo.Atualizar(r.Context(), mux.Vars(r)["id"], campos)
	if err != nil {
		utils.ResponderErro(w, err, mensagem(err, "Erro ao atualizar devedor"))
		return
	}
	h.avisar(r.Context())
	utils.ResponderJSON(w, http.StatusOK, d)
}

// DELETE /devedores/{id}
// O banco recusa a exclusão enquanto houver cobranças vinculadas.
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Remover(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.ResponderErro(w, err, mensagem(err, "Erro ao excluir devedor"))
		return
	}
	h.avisar(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func mensagem(err error, padrao string) string {
	switch {
	case errors.Is(err, utils.ErrNaoEncontrado):
		return "Devedor não encontrado"
	case errors.Is(err, utils.ErrRestricao):
		return "Não é possível excluir o devedor: existem cobranças vinculadas a ele"
	case errors.Is(err, utils.ErrRede):
		return "Falha de comunicação com o banco. Tente novamente."
	case errors.Is(err, utils.ErrInvalido):
		return err.Error()
	}
	return padrao
}
