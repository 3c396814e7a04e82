package carga

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KromaEnergia/comissio/internal/cobranca"
	"github.com/KromaEnergia/comissio/internal/devedor"
	"github.com/KromaEnergia/comissio/internal/empreendimento"
	"golang.org/x/sync/errgroup"
)

// Dados é o retrato completo usado pelas telas: devedores e empreendimentos
// por nome, cobranças (com parcelas) das mais recentes para as mais antigas.
type Dados struct {
	Devedores       []devedor.Devedor               `json:"debtors"`
	Empreendimentos []empreendimento.Empreendimento `json:"projects"`
	Cobrancas       []cobranca.Cobranca             `json:"debts"`
}

// Fontes são as três leituras independentes da carga inicial.
type Fontes struct {
	Devedores       func(ctx context.Context) ([]devedor.Devedor, error)
	Empreendimentos func(ctx context.Context) ([]empreendimento.Empreendimento, error)
	Cobrancas       func(ctx context.Context) ([]cobranca.Cobranca, error)
}

// Carregar dispara as três leituras em paralelo e só devolve Dados se todas
// terminarem bem. As leituras em andamento não são canceladas quando uma falha.
func Carregar(ctx context.Context, f Fontes) (*Dados, error) {
	inicio := time.Now()
	var (
		g errgroup.Group
		d Dados
	)

	g.Go(func() error {
		v, err := f.Devedores(ctx)
		if err != nil {
			return fmt.Errorf("carregar devedores: %w", err)
		}
		d.Devedores = v
		return nil
	})
	g.Go(func() error {
		v, err := f.Empreendimentos(ctx)
		if err != nil {
			return fmt.Errorf("carregar empreendimentos: %w", err)
		}
		d.Empreendimentos = v
		return nil
	})
	g.Go(func() error {
		v, err := f.Cobrancas(ctx)
		if err != nil {
			return fmt.Errorf("carregar cobranças: %w", err)
		}
		d.Cobrancas = v
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Warn("carga inicial falhou", "erro", err, "duracao", time.Since(inicio))
		return nil, err
	}

	if d.Devedores == nil {
		d.Devedores = []devedor.Devedor{}
	}
	if d.Empreendimentos == nil {
		d.Empreendimentos = []empreendimento.Empreendimento{}
	}
	if d.Cobrancas == nil {
		d.Cobrancas = []cobranca.Cobranca{}
	}
	slog.Debug("carga inicial concluída",
		"devedores", len(d.Devedores),
		"empreendimentos", len(d.Empreendimentos),
		"cobrancas", len(d.Cobrancas),
		"duracao", time.Since(inicio))
	return &d, nil
}
