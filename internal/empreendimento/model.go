package empreendimento

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Empreendimento identifica a unidade vendida (torre/unidade) e seu VGV.
type Empreendimento struct {
	ID       string          `gorm:"type:uuid;primaryKey" json:"id"`
	Nome     string          `gorm:"column:name;size:200;not null;index" json:"name"`
	Torre    string          `gorm:"column:tower;size:60" json:"tower"`
	Unidade  string          `gorm:"column:unit;size:60;index" json:"unit"`
	VGV      decimal.Decimal `gorm:"column:vgv;type:numeric(14,2);not null;default:0" json:"vgv"`
	CriadoEm time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Empreendimento) TableName() string { return "projects" }

func (e *Empreendimento) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Empreendimento{})
}
