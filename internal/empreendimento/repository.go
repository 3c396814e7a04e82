package empreendimento

import (
	"context"
	"strings"

	"github.com/KromaEnergia/comissio/internal/armazem"
	"gorm.io/gorm"
)

type Repository interface {
	Listar(ctx context.Context, ordem armazem.Ordem, busca string) ([]Empreendimento, error)
	Buscar(ctx context.Context, id string) (*Empreendimento, error)
	Criar(ctx context.Context, e *Empreendimento) error
	Atualizar(ctx context.Context, id string, campos map[string]any) (*Empreendimento, error)
	Remover(ctx context.Context, id string) error
}

type repositoryImpl struct {
	colecao *armazem.Colecao[Empreendimento]
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{
		colecao: armazem.NovaColecao[Empreendimento](db, armazem.Ordem{Campo: "name"}, "created_at", "vgv", "unit"),
	}
}

// Listar filtra por nome (sem diferenciar maiúsculas) ou unidade.
func (r *repositoryImpl) Listar(ctx context.Context, ordem armazem.Ordem, busca string) ([]Empreendimento, error) {
	if strings.TrimSpace(busca) == "" {
		return r.colecao.Listar(ctx, ordem)
	}
	termo := armazem.Contem(busca)
	return r.colecao.Listar(ctx, ordem, func(q *gorm.DB) *gorm.DB {
		return q.Where("LOWER(name) LIKE ? OR LOWER(unit) LIKE ?", termo, termo)
	})
}

func (r *repositoryImpl) Buscar(ctx context.Context, id string) (*Empreendimento, error) {
	return r.colecao.Buscar(ctx, id)
}

func (r *repositoryImpl) Criar(ctx context.Context, e *Empreendimento) error {
	return r.colecao.Inserir(ctx, e)
}

func (r *repositoryImpl) Atualizar(ctx context.Context, id string, campos map[string]any) (*Empreendimento, error) {
	return r.colecao.Atualizar(ctx, id, campos)
}

func (r *repositoryImpl) Remover(ctx context.Context, id string) error {
	return r.colecao.Remover(ctx, id)
}
