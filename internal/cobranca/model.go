package cobranca

import (
	"fmt"
	"strings"
	"time"

	"github.com/KromaEnergia/comissio/internal/devedor"
	"github.com/KromaEnergia/comissio/internal/empreendimento"
	"github.com/KromaEnergia/comissio/internal/parcela"
	"github.com/KromaEnergia/comissio/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusAberta  Status = "ABERTA"
	StatusParcial Status = "PARCIAL"
	StatusQuitada Status = "QUITADA"
)

// ParseStatus aceita os valores persistidos; vazio ou "ALL" significa sem filtro.
func ParseStatus(s string) (Status, error) {
	switch v := Status(strings.ToUpper(strings.TrimSpace(s))); v {
	case "", "ALL":
		return "", nil
	case StatusAberta, StatusParcial, StatusQuitada:
		return v, nil
	}
	return "", fmt.Errorf("%w: status %q desconhecido (use ABERTA, PARCIAL ou QUITADA)", utils.ErrInvalido, s)
}

// Cobranca é a comissão devida por um devedor sobre um empreendimento.
// ValorComissao é calculado uma única vez na criação; Status é derivado das parcelas.
type Cobranca struct {
	ID                 string          `gorm:"type:uuid;primaryKey" json:"id"`
	DevedorID          string          `gorm:"column:debtor_id;type:uuid;not null;index" json:"debtor_id"`
	EmpreendimentoID   string          `gorm:"column:project_id;type:uuid;not null;index" json:"project_id"`
	ValorTotal         decimal.Decimal `gorm:"column:total_value;type:numeric(14,2);not null" json:"total_value"`
	TaxaComissao       decimal.Decimal `gorm:"column:commission_rate;type:numeric(7,4);not null" json:"commission_rate"`
	ValorComissao      decimal.Decimal `gorm:"column:commission_value;type:numeric(14,2);not null" json:"commission_value"`
	QuantidadeParcelas int             `gorm:"column:installment_count;not null" json:"installment_count"`
	DataInicio         utils.Data      `gorm:"column:start_date;type:date;not null" json:"start_date"`
	Status             Status          `gorm:"column:status;size:20;not null;default:'ABERTA';index" json:"status"`
	Versao             int64           `gorm:"column:version;not null;default:1" json:"version"`
	CriadoEm           time.Time       `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`

	Devedor        *devedor.Devedor               `gorm:"foreignKey:DevedorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"debtor,omitempty"`
	Empreendimento *empreendimento.Empreendimento `gorm:"foreignKey:EmpreendimentoID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"project,omitempty"`
	Parcelas       []parcela.Parcela              `gorm:"foreignKey:CobrancaID;constraint:OnDelete:CASCADE" json:"installments"`
}

func (Cobranca) TableName() string { return "debts" }

func (c *Cobranca) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Versao == 0 {
		c.Versao = 1
	}
	return nil
}

// NomeDevedor devolve o nome carregado ou "---".
func (c Cobranca) NomeDevedor() string {
	if c.Devedor == nil || c.Devedor.Nome == "" {
		return "---"
	}
	return c.Devedor.Nome
}

// NomeEmpreendimento devolve o nome carregado ou "---".
func (c Cobranca) NomeEmpreendimento() string {
	if c.Empreendimento == nil || c.Empreendimento.Nome == "" {
		return "---"
	}
	return c.Empreendimento.Nome
}

// Unidade devolve a unidade do empreendimento carregado ou "---".
func (c Cobranca) Unidade() string {
	if c.Empreendimento == nil || c.Empreendimento.Unidade == "" {
		return "---"
	}
	return c.Empreendimento.Unidade
}

// Referencia é o identificador curto usado no extrato.
func (c Cobranca) Referencia() string {
	ref := c.ID
	if len(ref) > 8 {
		ref = ref[:8]
	}
	return strings.ToUpper(ref)
}

// CalcularComissao aplica a taxa percentual sobre o VGV, arredondando para centavos.
func CalcularComissao(vgv, taxa decimal.Decimal) decimal.Decimal {
	return vgv.Mul(taxa).Div(decimal.NewFromInt(100)).Round(2)
}

// relacaoParcelas nomeia o has-many cuja FK mora em installments.
const relacaoParcelas = "Parcelas"

// Migrate cria a tabela no banco de dados e aplica relacionamentos.
// O AutoMigrate só cria FKs declaradas no próprio modelo, então a de
// installments.debt_id (ON DELETE CASCADE) é criada à parte.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Cobranca{}); err != nil {
		return err
	}
	m := db.Migrator()
	if m.HasConstraint(&Cobranca{}, relacaoParcelas) {
		return nil
	}
	return m.CreateConstraint(&Cobranca{}, relacaoParcelas)
}
