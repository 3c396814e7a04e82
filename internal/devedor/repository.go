package devedor

import (
	"context"
	"strings"

	"github.com/KromaEnergia/comissio/internal/armazem"
	"gorm.io/gorm"
)

type Repository interface {
	Listar(ctx context.Context, ordem armazem.Ordem, busca string) ([]Devedor, error)
	Buscar(ctx context.Context, id string) (*Devedor, error)
	Criar(ctx context.Context, d *Devedor) error
	Atualizar(ctx context.Context, id string, campos map[string]any) (*Devedor, error)
	Remover(ctx context.Context, id string) error
}

type repositoryImpl struct {
	colecao *armazem.Colecao[Devedor]
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{
		colecao: armazem.NovaColecao[Devedor](db, armazem.Ordem{Campo: "name"}, "created_at", "tax_id"),
	}
}

// Listar filtra por nome (sem diferenciar maiúsculas) ou documento.
func (r *repositoryImpl) Listar(ctx context.Context, ordem armazem.Ordem, busca string) ([]Devedor, error) {
	if strings.TrimSpace(busca) == "" {
		return r.colecao.Listar(ctx, ordem)
	}
	termo := armazem.Contem(busca)
	return r.colecao.Listar(ctx, ordem, func(q *gorm.DB) *gorm.DB {
		return q.Where("LOWER(name) LIKE ? OR tax_id LIKE ?", termo, termo)
	})
}

func (r *repositoryImpl) Buscar(ctx context.Context, id string) (*Devedor, error) {
	return r.colecao.Buscar(ctx, id)
}

func (r *repositoryImpl) Criar(ctx context.Context, d *Devedor) error {
	return r.colecao.Inserir(ctx, d)
}

func (r *repositoryImpl) Atualizar(ctx context.Context, id string, campos map[string]any) (*Devedor, error) {
	return r.colecao.Atualizar(ctx, id, campos)
}

func (r *repositoryImpl) Remover(ctx context.Context, id string) error {
	return r.colecao.Remover(ctx, id)
}
