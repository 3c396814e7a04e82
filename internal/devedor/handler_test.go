package devedor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/KromaEnergia/comissio/internal/armazem"
	"github.com/KromaEnergia/comissio/internal/utils"
	"github.com/gorilla/mux"
)

type fakeRepo struct {
	devedores   map[string]Devedor
	referencias map[string]bool
	falha       error
}

func novoFakeRepo(ds ...Devedor) *fakeRepo {
	f := &fakeRepo{devedores: map[string]Devedor{}, referencias: map[string]bool{}}
	for _, d := range ds {
		f.devedores[d.ID] = d
	}
	return f
}

func (f *fakeRepo) Listar(_ context.Context, _ armazem.Ordem, busca string) ([]Devedor, error) {
	if f.falha != nil {
		return nil, f.falha
	}
	var out []Devedor
	for _, d := range f.devedores {
		if busca == "" || strings.Contains(strings.ToLower(d.Nome), strings.ToLower(busca)) || strings.Contains(d.Documento, busca) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeRepo) Buscar(_ context.Context, id string) (*Devedor, error) {
	d, ok := f.devedores[id]
	if !ok {
		return nil, utils.ErrNaoEncontrado
	}
	return &d, nil
}

func (f *fakeRepo) Criar(_ context.Context, d *Devedor) error {
	d.ID = fmt.Sprintf("dev-%d", len(f.devedores)+1)
	f.devedores[d.ID] = *d
	return nil
}

func (f *fakeRepo) Atualizar(_ context.Context, id string, campos map[string]any) (*Devedor, error) {
	d, ok := f.devedores[id]
	if !ok {
		return nil, utils.ErrNaoEncontrado
	}
	if v, ok := campos["name"]; ok {
		d.Nome = v.(string)
	}
	if v, ok := campos["email"]; ok {
		d.Email = v.(string)
	}
	f.devedores[id] = d
	return &d, nil
}

func (f *fakeRepo) Remover(_ context.Context, id string) error {
	if _, ok := f.devedores[id]; !ok {
		return utils.ErrNaoEncontrado
	}
	if f.referencias[id] {
		return fmt.Errorf("%w (fk_debts_devedor): delete", utils.ErrRestricao)
	}
	delete(f.devedores, id)
	return nil
}

func router(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/devedores", h.Listar).Methods("GET")
	r.HandleFunc("/devedores", h.Criar).Methods("POST")
	r.HandleFunc("/devedores/{id}", h.Buscar).Methods("GET")
	r.HandleFunc("/devedores/{id}", h.Atualizar).Methods("PUT")
	r.HandleFunc("/devedores/{id}", h.Remover).Methods("DELETE")
	return r
}

func TestCriarDevedor(t *testing.T) {
	repo := novoFakeRepo()
	r := router(NewHandler(repo))

	body := `{"name":" Construtora Alfa ","tax_id":"12.345.678/0001-90","email":"financeiro@alfa.com.br"}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/devedores", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var d Devedor
	if err := json.NewDecoder(rec.Body).Decode(&d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.ID == "" || d.Nome != "Construtora Alfa" {
		t.Errorf("got %+v", d)
	}
}

func TestCriarDevedorSemNome(t *testing.T) {
	r := router(NewHandler(novoFakeRepo()))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/devedores", strings.NewReader(`{"name":"  "}`)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestListarDevedoresComBusca(t *testing.T) {
	repo := novoFakeRepo(
		Devedor{ID: "1", Nome: "Maria Souza", Documento: "111"},
		Devedor{ID: "2", Nome: "João Lima", Documento: "222"},
	)
	r := router(NewHandler(repo))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/devedores?busca=maria", nil))

	var lista []Devedor
	if err := json.NewDecoder(rec.Body).Decode(&lista); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(lista) != 1 || lista[0].ID != "1" {
		t.Errorf("got %+v", lista)
	}
}

func TestAtualizarDevedorParcial(t *testing.T) {
	repo := novoFakeRepo(Devedor{ID: "1", Nome: "Maria", Email: "antigo@x.com"})
	r := router(NewHandler(repo))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/devedores/1", strings.NewReader(`{"email":"novo@x.com"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := repo.devedores["1"]; got.Nome != "Maria" || got.Email != "novo@x.com" {
		t.Errorf("got %+v", got)
	}
}

func TestRemoverDevedorReferenciado(t *testing.T) {
	repo := novoFakeRepo(Devedor{ID: "1", Nome: "Maria"})
	repo.referencias["1"] = true
	r := router(NewHandler(repo))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/devedores/1", nil))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "cobranças vinculadas") {
		t.Errorf("body = %q", rec.Body.String())
	}
	if _, ok := repo.devedores["1"]; !ok {
		t.Error("devedor should not be removed")
	}
}

func TestRemoverDevedorInexistente(t *testing.T) {
	r := router(NewHandler(novoFakeRepo()))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/devedores/x", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestListarDevedoresFalhaDeRede(t *testing.T) {
	repo := novoFakeRepo()
	repo.falha = fmt.Errorf("%w: connection refused", utils.ErrRede)
	r := router(NewHandler(repo))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/devedores", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestAoAlterarSoAposSucesso(t *testing.T) {
	repo := novoFakeRepo(Devedor{ID: "1", Nome: "Maria"}, Devedor{ID: "2", Nome: "João"})
	repo.referencias["2"] = true
	h := NewHandler(repo)
	avisos := 0
	h.AoAlterar = func(context.Context) { avisos++ }
	r := router(h)

	tests := []struct {
		nome   string
		method string
		path   string
		body   string
		status int
		avisos int
	}{
		{"criar", http.MethodPost, "/devedores", `{"name":"Alfa"}`, http.StatusCreated, 1},
		{"criar sem nome", http.MethodPost, "/devedores", `{"name":""}`, http.StatusUnprocessableEntity, 1},
		{"atualizar", http.MethodPut, "/devedores/1", `{"email":"m@x.com"}`, http.StatusOK, 2},
		{"atualizar inexistente", http.MethodPut, "/devedores/9", `{"email":"m@x.com"}`, http.StatusNotFound, 2},
		{"remover referenciado", http.MethodDelete, "/devedores/2", "", http.StatusConflict, 2},
		{"remover", http.MethodDelete, "/devedores/1", "", http.StatusNoContent, 3},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
		if rec.Code != tt.status {
			t.Fatalf("%s: status = %d, want %d", tt.nome, rec.Code, tt.status)
		}
		if avisos != tt.avisos {
			t.Errorf("%s: avisos = %d, want %d", tt.nome, avisos, tt.avisos)
		}
	}
}
