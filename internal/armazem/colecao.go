package armazem

import (
	"context"
	"fmt"
	"strings"

	"github.com/KromaEnergia/comissio/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ordem define o campo de ordenação de uma listagem.
type Ordem struct {
	Campo string
	Desc  bool
}

// ParseOrdem interpreta "name" (ascendente) ou "-created_at" (descendente).
func ParseOrdem(s string) Ordem {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		return Ordem{Campo: strings.TrimPrefix(s, "-"), Desc: true}
	}
	return Ordem{Campo: s}
}

// Escopo restringe uma consulta (filtros de busca, joins).
type Escopo func(*gorm.DB) *gorm.DB

// Colecao concentra as operações uniformes de uma tabela: listar, buscar,
// inserir, atualizar parcialmente e remover por id.
type Colecao[T any] struct {
	DB          *gorm.DB
	OrdemPadrao Ordem
	ordenaveis  map[string]bool
}

// NovaColecao cria a coleção aceitando apenas os campos informados para ordenação.
func NovaColecao[T any](db *gorm.DB, padrao Ordem, ordenaveis ...string) *Colecao[T] {
	campos := map[string]bool{padrao.Campo: true}
	for _, c := range ordenaveis {
		campos[c] = true
	}
	return &Colecao[T]{DB: db, OrdemPadrao: padrao, ordenaveis: campos}
}

// WithDB retorna uma cópia da coleção usando um *gorm.DB específico (ex.: tx).
func (c *Colecao[T]) WithDB(db *gorm.DB) *Colecao[T] {
	if db == nil {
		db = c.DB
	}
	return &Colecao[T]{DB: db, OrdemPadrao: c.OrdemPadrao, ordenaveis: c.ordenaveis}
}

// ValidarOrdem completa a ordem padrão e recusa campos fora da lista.
func (c *Colecao[T]) ValidarOrdem(o Ordem) (Ordem, error) {
	if o.Campo == "" {
		return c.OrdemPadrao, nil
	}
	if !c.ordenaveis[o.Campo] {
		return o, fmt.Errorf("%w: ordenação por %q não permitida", utils.ErrInvalido, o.Campo)
	}
	return o, nil
}

func (c *Colecao[T]) Listar(ctx context.Context, o Ordem, escopos ...Escopo) ([]T, error) {
	o, err := c.ValidarOrdem(o)
	if err != nil {
		return nil, err
	}
	q := c.DB.WithContext(ctx)
	for _, e := range escopos {
		q = e(q)
	}
	var lista []T
	err = q.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Campo}, Desc: o.Desc}).
		Find(&lista).Error
	return lista, Classificar(err)
}

func (c *Colecao[T]) Buscar(ctx context.Context, id string) (*T, error) {
	var v T
	if err := c.DB.WithContext(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		return nil, ClassificarPorID(err)
	}
	return &v, nil
}

func (c *Colecao[T]) Inserir(ctx context.Context, v *T) error {
	return Classificar(c.DB.WithContext(ctx).Create(v).Error)
}

// Atualizar aplica apenas os campos informados e devolve o registro atualizado.
func (c *Colecao[T]) Atualizar(ctx context.Context, id string, campos map[string]any) (*T, error) {
	if len(campos) > 0 {
		res := c.DB.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(campos)
		if res.Error != nil {
			return nil, ClassificarPorID(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, utils.ErrNaoEncontrado
		}
	}
	return c.Buscar(ctx, id)
}

// Remover apaga o registro; retorna ErrNaoEncontrado se nada foi apagado.
func (c *Colecao[T]) Remover(ctx context.Context, id string) error {
	res := c.DB.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return ClassificarPorID(res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrNaoEncontrado
	}
	return nil
}

// Contem monta um padrão LIKE case-insensitive para o termo de busca.
func Contem(termo string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(strings.TrimSpace(termo))) + "%"
}
