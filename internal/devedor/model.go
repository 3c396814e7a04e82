package devedor

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Devedor é quem deve a comissão (pessoa física ou jurídica).
type Devedor struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Nome      string    `gorm:"column:name;size:200;not null;index" json:"name"`
	Documento string    `gorm:"column:tax_id;size:20;index" json:"tax_id"`
	Email     string    `gorm:"column:email;size:200" json:"email"`
	Telefone  string    `gorm:"column:phone;size:30" json:"phone"`
	CriadoEm  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Devedor) TableName() string { return "debtors" }

func (d *Devedor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Devedor{})
}
