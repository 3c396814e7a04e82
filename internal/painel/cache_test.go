package painel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KromaEnergia/comissio/internal/armazem"
	"github.com/KromaEnergia/comissio/internal/carga"
	"github.com/KromaEnergia/comissio/internal/cobranca"
	"github.com/KromaEnergia/comissio/internal/devedor"
	"github.com/KromaEnergia/comissio/internal/empreendimento"
)

// cacheMemoria reproduz Buscar/Geracao/GuardarSe/Invalidar de cache.Cache.
type cacheMemoria struct {
	valores  map[string][]byte
	geracoes map[string]int64
}

func novoCacheMemoria() *cacheMemoria {
	return &cacheMemoria{valores: map[string][]byte{}, geracoes: map[string]int64{}}
}

func (c *cacheMemoria) Buscar(_ context.Context, chave string, destino any) (bool, error) {
	b, ok := c.valores[chave]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, destino)
}

func (c *cacheMemoria) Geracao(_ context.Context, chave string) (int64, error) {
	return c.geracoes[chave], nil
}

func (c *cacheMemoria) GuardarSe(_ context.Context, chave string, geracao int64, v any, _ time.Duration) (bool, error) {
	if c.geracoes[chave] != geracao {
		return false, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return false, err
	}
	c.valores[chave] = b
	return true, nil
}

func (c *cacheMemoria) Invalidar(_ context.Context, chaves ...string) error {
	for _, k := range chaves {
		c.geracoes[k]++
		delete(c.valores, k)
	}
	return nil
}

type devedoresMemoria struct {
	devedor.Repository
	lista []devedor.Devedor
}

func (r *devedoresMemoria) Listar(context.Context, armazem.Ordem, string) ([]devedor.Devedor, error) {
	return append([]devedor.Devedor(nil), r.lista...), nil
}

func (r *devedoresMemoria) Criar(_ context.Context, d *devedor.Devedor) error {
	d.ID = "novo"
	r.lista = append(r.lista, *d)
	return nil
}

func fontesDe(devs *devedoresMemoria, cobrancas func(context.Context) ([]cobranca.Cobranca, error)) carga.Fontes {
	if cobrancas == nil {
		cobrancas = func(context.Context) ([]cobranca.Cobranca, error) { return nil, nil }
	}
	return carga.Fontes{
		Devedores:       func(ctx context.Context) ([]devedor.Devedor, error) { return devs.Listar(ctx, armazem.Ordem{}, "") },
		Empreendimentos: func(context.Context) ([]empreendimento.Empreendimento, error) { return nil, nil },
		Cobrancas:       cobrancas,
	}
}

func pedirResumo(t *testing.T, h *Handler) (string, Resumo) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Resumo(rec, httptest.NewRequest(http.MethodGet, "/painel", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, corpo %s", rec.Code, rec.Body.String())
	}
	var res Resumo
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("json: %v", err)
	}
	return rec.Header().Get("X-Cache"), res
}

func TestPainelInvalidadoAoCriarDevedor(t *testing.T) {
	c := novoCacheMemoria()
	devs := &devedoresMemoria{lista: []devedor.Devedor{{ID: "d1", Nome: "Ana"}}}
	h := NewHandler(fontesDe(devs, nil), c, time.Minute)

	if origem, res := pedirResumo(t, h); origem != "MISS" || res.Devedores != 1 {
		t.Fatalf("primeira leitura = %s/%d, quero MISS/1", origem, res.Devedores)
	}
	if origem, _ := pedirResumo(t, h); origem != "HIT" {
		t.Fatalf("segunda leitura = %s, quero HIT", origem)
	}

	devH := devedor.NewHandler(devs)
	devH.AoAlterar = func(ctx context.Context) { _ = c.Invalidar(ctx, ChaveCache) }
	rec := httptest.NewRecorder()
	devH.Criar(rec, httptest.NewRequest(http.MethodPost, "/devedores", strings.NewReader(`{"name":"Bruno"}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("criar devedor: status = %d", rec.Code)
	}

	origem, res := pedirResumo(t, h)
	if origem != "MISS" || res.Devedores != 2 {
		t.Errorf("após criar devedor = %s/%d, quero MISS/2", origem, res.Devedores)
	}
}

func TestPainelNaoGuardaResumoInvalidadoDuranteCarga(t *testing.T) {
	c := novoCacheMemoria()
	devs := &devedoresMemoria{}
	invalidar := true
	cobrancas := func(ctx context.Context) ([]cobranca.Cobranca, error) {
		// um pagamento confirmado enquanto a carga está em andamento
		if invalidar {
			invalidar = false
			_ = c.Invalidar(ctx, ChaveCache)
		}
		return nil, nil
	}
	h := NewHandler(fontesDe(devs, cobrancas), c, time.Minute)

	if origem, _ := pedirResumo(t, h); origem != "MISS" {
		t.Fatalf("primeira leitura = %s", origem)
	}
	if _, ok := c.valores[ChaveCache]; ok {
		t.Fatal("resumo calculado antes da invalidação foi gravado")
	}

	if origem, _ := pedirResumo(t, h); origem != "MISS" {
		t.Errorf("segunda leitura = %s, quero MISS", origem)
	}
	if origem, _ := pedirResumo(t, h); origem != "HIT" {
		t.Errorf("terceira leitura = %s, quero HIT", origem)
	}
}
