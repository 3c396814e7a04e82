package cobranca

import (
	"context"
	"fmt"
	"strings"

	"github.com/KromaEnergia/comissio/internal/devedor"
	"github.com/KromaEnergia/comissio/internal/empreendimento"
	"github.com/KromaEnergia/comissio/internal/parcela"
	"github.com/KromaEnergia/comissio/internal/utils"
)

// fakeRepo guarda cópias em memória; Transacao restaura o estado quando fn falha.
type fakeRepo struct {
	cobrancas   map[string]*Cobranca
	seq         int
	falhaStatus error
	aposBuscar  func(f *fakeRepo, id string)
}

func novoFakeRepo() *fakeRepo {
	return &fakeRepo{cobrancas: map[string]*Cobranca{}}
}

func copiar(c *Cobranca) *Cobranca {
	cp := *c
	cp.Parcelas = append([]parcela.Parcela(nil), c.Parcelas...)
	return &cp
}

func (f *fakeRepo) Transacao(_ context.Context, fn func(Repository) error) error {
	antes := map[string]*Cobranca{}
	for id, c := range f.cobrancas {
		antes[id] = copiar(c)
	}
	if err := fn(f); err != nil {
		f.cobrancas = antes
		return err
	}
	return nil
}

func (f *fakeRepo) Listar(_ context.Context, filtro Filtro) ([]Cobranca, error) {
	var out []Cobranca
	termo := strings.ToLower(filtro.Busca)
	for _, c := range f.cobrancas {
		if filtro.Status != "" && c.Status != filtro.Status {
			continue
		}
		if termo != "" &&
			!strings.Contains(strings.ToLower(c.NomeDevedor()), termo) &&
			!strings.Contains(strings.ToLower(c.NomeEmpreendimento()), termo) {
			continue
		}
		out = append(out, *copiar(c))
	}
	return out, nil
}

func (f *fakeRepo) Buscar(_ context.Context, id string) (*Cobranca, error) {
	c, ok := f.cobrancas[id]
	if !ok {
		return nil, utils.ErrNaoEncontrado
	}
	cp := copiar(c)
	if f.aposBuscar != nil {
		f.aposBuscar(f, id)
	}
	return cp, nil
}

func (f *fakeRepo) Criar(_ context.Context, c *Cobranca) error {
	f.seq++
	if c.ID == "" {
		c.ID = fmt.Sprintf("cob-%d", f.seq)
	}
	for i := range c.Parcelas {
		c.Parcelas[i].CobrancaID = c.ID
		c.Parcelas[i].ID = fmt.Sprintf("%s-p%d", c.ID, c.Parcelas[i].Numero)
		c.Parcelas[i].Versao = 1
	}
	f.cobrancas[c.ID] = copiar(c)
	return nil
}

func (f *fakeRepo) Atualizar(_ context.Context, id string, a Atualizacao) (*Cobranca, error) {
	c, ok := f.cobrancas[id]
	if !ok {
		return nil, utils.ErrNaoEncontrado
	}
	if a.DevedorID != nil {
		c.DevedorID = *a.DevedorID
	}
	if a.EmpreendimentoID != nil {
		c.EmpreendimentoID = *a.EmpreendimentoID
	}
	if a.TaxaComissao != nil {
		c.TaxaComissao = *a.TaxaComissao
	}
	c.Versao++
	return copiar(c), nil
}

func (f *fakeRepo) Remover(_ context.Context, id string) error {
	if _, ok := f.cobrancas[id]; !ok {
		return utils.ErrNaoEncontrado
	}
	delete(f.cobrancas, id)
	return nil
}

func (f *fakeRepo) AtualizarParcela(_ context.Context, p *parcela.Parcela, versaoEsperada int64) error {
	c, ok := f.cobrancas[p.CobrancaID]
	if !ok {
		return utils.ErrNaoEncontrado
	}
	for i := range c.Parcelas {
		if c.Parcelas[i].ID != p.ID {
			continue
		}
		if c.Parcelas[i].Versao != versaoEsperada {
			return utils.ErrConflito
		}
		c.Parcelas[i].Status = p.Status
		c.Parcelas[i].PagoEm = p.PagoEm
		c.Parcelas[i].Versao = versaoEsperada + 1
		return nil
	}
	return utils.ErrConflito
}

func (f *fakeRepo) AtualizarStatus(_ context.Context, c *Cobranca, versaoEsperada int64) error {
	if f.falhaStatus != nil {
		return f.falhaStatus
	}
	atual, ok := f.cobrancas[c.ID]
	if !ok || atual.Versao != versaoEsperada {
		return utils.ErrConflito
	}
	atual.Status = c.Status
	atual.Versao = versaoEsperada + 1
	return nil
}

type fakeDevedores map[string]devedor.Devedor

func (f fakeDevedores) Buscar(_ context.Context, id string) (*devedor.Devedor, error) {
	d, ok := f[id]
	if !ok {
		return nil, utils.ErrNaoEncontrado
	}
	return &d, nil
}

type fakeEmpreendimentos map[string]empreendimento.Empreendimento

func (f fakeEmpreendimentos) Buscar(_ context.Context, id string) (*empreendimento.Empreendimento, error) {
	e, ok := f[id]
	if !ok {
		return nil, utils.ErrNaoEncontrado
	}
	return &e, nil
}

type fakeObservador struct {
	alteradas  []string
	pagamentos []parcela.Parcela
}

func (o *fakeObservador) CobrancaAlterada(_ context.Context, id string) {
	o.alteradas = append(o.alteradas, id)
}

func (o *fakeObservador) PagamentoAlternado(_ context.Context, _ *Cobranca, p parcela.Parcela) {
	o.pagamentos = append(o.pagamentos, p)
}
