package cobranca

import (
	"context"
	"strings"

	"github.com/KromaEnergia/comissio/internal/armazem"
	"github.com/KromaEnergia/comissio/internal/parcela"
	"github.com/KromaEnergia/comissio/internal/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filtro da listagem de cobranças.
type Filtro struct {
	Busca  string
	Status Status
}

// Atualizacao lista os campos editáveis de uma cobrança; nil não altera.
type Atualizacao struct {
	DevedorID        *string
	EmpreendimentoID *string
	TaxaComissao     *decimal.Decimal
}

func (a Atualizacao) vazia() bool {
	return a.DevedorID == nil && a.EmpreendimentoID == nil && a.TaxaComissao == nil
}

type Repository interface {
	// Transacao executa fn com um repositório ligado à mesma transação.
	Transacao(ctx context.Context, fn func(Repository) error) error
	Listar(ctx context.Context, f Filtro) ([]Cobranca, error)
	Buscar(ctx context.Context, id string) (*Cobranca, error)
	Criar(ctx context.Context, c *Cobranca) error
	Atualizar(ctx context.Context, id string, a Atualizacao) (*Cobranca, error)
	Remover(ctx context.Context, id string) error
	AtualizarParcela(ctx context.Context, p *parcela.Parcela, versaoEsperada int64) error
	AtualizarStatus(ctx context.Context, c *Cobranca, versaoEsperada int64) error
}

type repositoryImpl struct {
	DB       *gorm.DB
	parcelas *parcela.Repository
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{DB: db, parcelas: parcela.NewRepository(db)}
}

func (r *repositoryImpl) withDB(db *gorm.DB) *repositoryImpl {
	return &repositoryImpl{DB: db, parcelas: r.parcelas.WithDB(db)}
}

func (r *repositoryImpl) Transacao(ctx context.Context, fn func(Repository) error) error {
	tx := r.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return armazem.Classificar(tx.Error)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(r.withDB(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		return armazem.Classificar(err)
	}
	return nil
}

func ordenarParcelas(db *gorm.DB) *gorm.DB {
	return db.Order("number ASC")
}

func (r *repositoryImpl) comRelacoes(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Preload("Devedor").
		Preload("Empreendimento").
		Preload("Parcelas", ordenarParcelas)
}

// Listar traz cobranças com parcelas, mais recentes primeiro.
// A busca compara o nome do devedor ou do empreendimento.
func (r *repositoryImpl) Listar(ctx context.Context, f Filtro) ([]Cobranca, error) {
	q := r.comRelacoes(ctx).Model(&Cobranca{}).Select("debts.*")
	if f.Status != "" {
		q = q.Where("debts.status = ?", f.Status)
	}
	if strings.TrimSpace(f.Busca) != "" {
		termo := armazem.Contem(f.Busca)
		q = q.Joins("LEFT JOIN debtors ON debtors.id = debts.debtor_id").
			Joins("LEFT JOIN projects ON projects.id = debts.project_id").
			Where("(LOWER(debtors.name) LIKE ? OR LOWER(projects.name) LIKE ?)", termo, termo)
	}

	var lista []Cobranca
	err := q.Order("debts.created_at DESC").Find(&lista).Error
	return lista, armazem.Classificar(err)
}

func (r *repositoryImpl) Buscar(ctx context.Context, id string) (*Cobranca, error) {
	var c Cobranca
	if err := r.comRelacoes(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, armazem.ClassificarPorID(err)
	}
	return &c, nil
}

// Criar insere a cobrança e, em seguida, as parcelas em lote.
func (r *repositoryImpl) Criar(ctx context.Context, c *Cobranca) error {
	if err := r.DB.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return armazem.Classificar(err)
	}
	for i := range c.Parcelas {
		c.Parcelas[i].CobrancaID = c.ID
	}
	return r.parcelas.CriarEmLote(ctx, c.Parcelas)
}

func (r *repositoryImpl) Atualizar(ctx context.Context, id string, a Atualizacao) (*Cobranca, error) {
	if !a.vazia() {
		campos := map[string]interface{}{}
		if a.DevedorID != nil {
			campos["debtor_id"] = *a.DevedorID
		}
		if a.EmpreendimentoID != nil {
			campos["project_id"] = *a.EmpreendimentoID
		}
		if a.TaxaComissao != nil {
			campos["commission_rate"] = *a.TaxaComissao
		}
		campos["version"] = gorm.Expr("version + 1")

		res := r.DB.WithContext(ctx).Model(&Cobranca{}).Where("id = ?", id).Updates(campos)
		if res.Error != nil {
			return nil, armazem.ClassificarPorID(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, utils.ErrNaoEncontrado
		}
	}
	return r.Buscar(ctx, id)
}

// Remover apaga a cobrança e suas parcelas na mesma transação.
func (r *repositoryImpl) Remover(ctx context.Context, id string) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("debt_id = ?", id).Delete(&parcela.Parcela{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&Cobranca{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrNaoEncontrado
		}
		return nil
	})
	return armazem.ClassificarPorID(err)
}

func (r *repositoryImpl) AtualizarParcela(ctx context.Context, p *parcela.Parcela, versaoEsperada int64) error {
	return r.parcelas.AtualizarStatus(ctx, p, versaoEsperada)
}

// AtualizarStatus grava o status consolidado com a mesma checagem de versão das parcelas.
func (r *repositoryImpl) AtualizarStatus(ctx context.Context, c *Cobranca, versaoEsperada int64) error {
	res := r.DB.WithContext(ctx).Model(&Cobranca{}).
		Where("id = ? AND version = ?", c.ID, versaoEsperada).
		Updates(map[string]interface{}{
			"status":  c.Status,
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
