package parcela

import (
	"time"

	"github.com/KromaEnergia/comissio/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPendente Status = "PENDENTE"
	StatusPago     Status = "PAGO"
)

// Parcela é um pagamento mensal programado de uma cobrança.
type Parcela struct {
	ID         string          `gorm:"type:uuid;primaryKey" json:"id"`
	CobrancaID string          `gorm:"column:debt_id;type:uuid;not null;uniqueIndex:idx_installments_debt_number" json:"debt_id"`
	Numero     int             `gorm:"column:number;not null;uniqueIndex:idx_installments_debt_number" json:"number"`
	Valor      decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null" json:"amount"`
	Vencimento utils.Data      `gorm:"column:due_date;type:date;not null;index" json:"due_date"`
	Status     Status          `gorm:"column:status;size:20;not null;default:'PENDENTE';index" json:"status"`
	PagoEm     *time.Time      `gorm:"column:paid_at" json:"paid_at,omitempty"`
	Versao     int64           `gorm:"column:version;not null;default:1" json:"version"`
}

func (Parcela) TableName() string { return "installments" }

func (p *Parcela) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Versao == 0 {
		p.Versao = 1
	}
	return nil
}

// Paga indica se a parcela está quitada.
func (p Parcela) Paga() bool {
	return p.Status == StatusPago
}

// Alternar inverte o estado: pendente vira pago com data de pagamento em agora;
// pago volta a pendente e a data de pagamento é limpa (estorno).
func (p *Parcela) Alternar(agora time.Time) {
	if p.Status == StatusPago {
		p.Status = StatusPendente
		p.PagoEm = nil
		return
	}
	p.Status = StatusPago
	pagoEm := agora
	p.PagoEm = &pagoEm
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Parcela{})
}
