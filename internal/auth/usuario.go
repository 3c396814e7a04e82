package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Usuario é um operador do backoffice.
type Usuario struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"column:email;size:200;not null;uniqueIndex" json:"email"`
	SenhaHash string    `gorm:"column:password_hash;not null" json:"-"`
	CriadoEm  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Usuario) TableName() string { return "users" }

func (u *Usuario) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Migrate cria as tabelas de usuários e refresh tokens.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Usuario{}, &RefreshToken{})
}
