package parcela

import (
	"context"

	"github.com/KromaEnergia/comissio/internal/armazem"
	"github.com/KromaEnergia/comissio/internal/utils"
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados das parcelas.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retorna uma cópia do repo usando um *gorm.DB específico (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

// CriarEmLote cria várias parcelas de uma vez (ignora se vazio).
func (r *Repository) CriarEmLote(ctx context.Context, parcelas []Parcela) error {
	if len(parcelas) == 0 {
		return nil
	}
	return armazem.Classificar(r.DB.WithContext(ctx).Create(&parcelas).Error)
}

// AtualizarStatus grava status e paid_at somente se a versão ainda for versaoEsperada.
// Nenhuma linha afetada significa que outra operação alterou a parcela antes.
func (r *Repository) AtualizarStatus(ctx context.Context, p *Parcela, versaoEsperada int64) error {
	res := r.DB.WithContext(ctx).Model(&Parcela{}).
		Where("id = ? AND version = ?", p.ID, versaoEsperada).
		Updates(map[string]interface{}{
			"status":  p.Status,
			"paid_at": p.PagoEm,
			"version": versaoEsperada + 1,
		})
	if res.Error != nil {
		return armazem.Classificar(res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrConflito
	}
	return nil
}
