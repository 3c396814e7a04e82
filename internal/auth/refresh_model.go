package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshToken guarda apenas o hash do valor entregue no cookie.
// Tokens da mesma família descendem do mesmo login.
type RefreshToken struct {
	ID         string     `gorm:"type:uuid;primaryKey"`
	UsuarioID  string     `gorm:"column:user_id;type:uuid;not null;index"`
	Familia    string     `gorm:"column:family_id;not null;index"`
	Hash       string     `gorm:"column:hash;not null;uniqueIndex"`
	ExpiraEm   time.Time  `gorm:"column:expires_at;index"`
	RevogadoEm *time.Time `gorm:"column:revoked_at"`
	CriadoEm   time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Utilizavel indica se o token ainda pode ser trocado.
func (t RefreshToken) Utilizavel(agora time.Time) bool {
	return t.RevogadoEm == nil && agora.Before(t.ExpiraEm)
}
