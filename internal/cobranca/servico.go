package cobranca

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KromaEnergia/comissio/internal/devedor"
	"github.com/KromaEnergia/comissio/internal/empreendimento"
	"github.com/KromaEnergia/comissio/internal/parcela"
	"github.com/KromaEnergia/comissio/internal/utils"
	"github.com/shopspring/decimal"
)

const (
	MaxParcelas = 120
	TaxaPadrao  = 5
	taxaMaxima  = 100
)

// Observador é avisado depois que uma mutação foi confirmada no banco.
type Observador interface {
	CobrancaAlterada(ctx context.Context, cobrancaID string)
	PagamentoAlternado(ctx context.Context, c *Cobranca, p parcela.Parcela)
}

type leitorDevedor interface {
	Buscar(ctx context.Context, id string) (*devedor.Devedor, error)
}

type leitorEmpreendimento interface {
	Buscar(ctx context.Context, id string) (*empreendimento.Empreendimento, error)
}

// Servico concentra as regras de cobrança: criação com geração de parcelas,
// alternância de pagamento e manutenção do status consolidado.
type Servico struct {
	Repo            Repository
	Devedores       leitorDevedor
	Empreendimentos leitorEmpreendimento
	Observador      Observador
	Agora           func() time.Time
}

func NewServico(repo Repository, devedores leitorDevedor, empreendimentos leitorEmpreendimento) *Servico {
	return &Servico{
		Repo:            repo,
		Devedores:       devedores,
		Empreendimentos: empreendimentos,
		Agora:           time.Now,
	}
}

func (s *Servico) agora() time.Time {
	if s.Agora == nil {
		return time.Now()
	}
	return s.Agora()
}

// NovaCobranca são os dados de entrada da criação.
type NovaCobranca struct {
	DevedorID          string
	EmpreendimentoID   string
	TaxaComissao       decimal.Decimal
	QuantidadeParcelas int
	DataInicio         utils.Data
}

func (n NovaCobranca) validar() error {
	if n.DevedorID == "" || n.EmpreendimentoID == "" {
		return fmt.Errorf("%w: selecione um devedor e um empreendimento", utils.ErrInvalido)
	}
	if n.QuantidadeParcelas < 1 || n.QuantidadeParcelas > MaxParcelas {
		return fmt.Errorf("%w: a quantidade de parcelas deve estar entre 1 e %d", utils.ErrInvalido, MaxParcelas)
	}
	if n.TaxaComissao.IsNegative() || n.TaxaComissao.GreaterThan(decimal.NewFromInt(taxaMaxima)) {
		return fmt.Errorf("%w: a taxa de comissão deve estar entre 0 e %d%%", utils.ErrInvalido, taxaMaxima)
	}
	if n.DataInicio.IsZero() {
		return fmt.Errorf("%w: data de início obrigatória", utils.ErrInvalido)
	}
	return nil
}

// Criar copia o VGV do empreendimento, calcula a comissão uma única vez,
// gera as parcelas e grava tudo na mesma transação.
func (s *Servico) Criar(ctx context.Context, in NovaCobranca) (*Cobranca, error) {
	if err := in.validar(); err != nil {
		return nil, err
	}

	dev, err := s.Devedores.Buscar(ctx, in.DevedorID)
	if err != nil {
		return nil, referenciaInvalida(err, "devedor")
	}
	emp, err := s.Empreendimentos.Buscar(ctx, in.EmpreendimentoID)
	if err != nil {
		return nil, referenciaInvalida(err, "empreendimento")
	}

	valorComissao := CalcularComissao(emp.VGV, in.TaxaComissao)
	parcelas, err := parcela.Gerar(valorComissao, in.QuantidadeParcelas, in.DataInicio)
	if err != nil {
		return nil, err
	}

	c := &Cobranca{
		DevedorID:          dev.ID,
		EmpreendimentoID:   emp.ID,
		ValorTotal:         emp.VGV,
		TaxaComissao:       in.TaxaComissao,
		ValorComissao:      valorComissao,
		QuantidadeParcelas: in.QuantidadeParcelas,
		DataInicio:         in.DataInicio,
		Status:             StatusAberta,
		Versao:             1,
		Parcelas:           parcelas,
	}
	if err := s.Repo.Transacao(ctx, func(repo Repository) error {
		return repo.Criar(ctx, c)
	}); err != nil {
		return nil, fmt.Errorf("criar cobrança: %w", err)
	}

	c.Devedor = dev
	c.Empreendimento = emp
	s.avisarAlteracao(ctx, c.ID)
	return c, nil
}

func referenciaInvalida(err error, entidade string) error {
	if errors.Is(err, utils.ErrNaoEncontrado) {
		return fmt.Errorf("%w: %s não encontrado", utils.ErrInvalido, entidade)
	}
	return err
}

func (s *Servico) Listar(ctx context.Context, f Filtro) ([]Cobranca, error) {
	return s.Repo.Listar(ctx, f)
}

func (s *Servico) Buscar(ctx context.Context, id string) (*Cobranca, error) {
	return s.Repo.Buscar(ctx, id)
}

// Atualizar altera devedor, empreendimento ou taxa. O valor da comissão
// e as parcelas permanecem como foram gerados.
func (s *Servico) Atualizar(ctx context.Context, id string, a Atualizacao) (*Cobranca, error) {
	if a.TaxaComissao != nil && (a.TaxaComissao.IsNegative() || a.TaxaComissao.GreaterThan(decimal.NewFromInt(taxaMaxima))) {
		return nil, fmt.Errorf("%w: a taxa de comissão deve estar entre 0 e %d%%", utils.ErrInvalido, taxaMaxima)
	}
	if a.DevedorID != nil {
		if _, err := s.Devedores.Buscar(ctx, *a.DevedorID); err != nil {
			return nil, referenciaInvalida(err, "devedor")
		}
	}
	if a.EmpreendimentoID != nil {
		if _, err := s.Empreendimentos.Buscar(ctx, *a.EmpreendimentoID); err != nil {
			return nil, referenciaInvalida(err, "empreendimento")
		}
	}

	c, err := s.Repo.Atualizar(ctx, id, a)
	if err != nil {
		return nil, err
	}
	s.avisarAlteracao(ctx, id)
	return c, nil
}

func (s *Servico) Remover(ctx context.Context, id string) error {
	if err := s.Repo.Remover(ctx, id); err != nil {
		return err
	}
	s.avisarAlteracao(ctx, id)
	return nil
}

func (s *Servico) avisarAlteracao(ctx context.Context, id string) {
	if s.Observador != nil {
		s.Observador.CobrancaAlterada(ctx, id)
	}
}
