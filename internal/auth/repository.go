package auth

import (
	"context"
	"strings"
	"time"

	"github.com/KromaEnergia/comissio/internal/armazem"
	"gorm.io/gorm"
)

type UsuarioRepository interface {
	BuscarPorEmail(ctx context.Context, email string) (*Usuario, error)
	BuscarPorID(ctx context.Context, id string) (*Usuario, error)
	Criar(ctx context.Context, u *Usuario) error
}

type RefreshRepository interface {
	Criar(ctx context.Context, t *RefreshToken) error
	BuscarPorHash(ctx context.Context, hash string) (*RefreshToken, error)
	Revogar(ctx context.Context, id string, quando time.Time) error
}

type usuarioRepository struct {
	DB *gorm.DB
}

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository {
	return &usuarioRepository{DB: db}
}

func (r *usuarioRepository) BuscarPorEmail(ctx context.Context, email string) (*Usuario, error) {
	var u Usuario
	err := r.DB.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error
	if err != nil {
		return nil, armazem.Classificar(err)
	}
	return &u, nil
}

func (r *usuarioRepository) BuscarPorID(ctx context.Context, id string) (*Usuario, error) {
	var u Usuario
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, armazem.ClassificarPorID(err)
	}
	return &u, nil
}

func (r *usuarioRepository) Criar(ctx context.Context, u *Usuario) error {
	return armazem.Classificar(r.DB.WithContext(ctx).Create(u).Error)
}

type refreshRepository struct {
	DB *gorm.DB
}

func NewRefreshRepository(db *gorm.DB) RefreshRepository {
	return &refreshRepository{DB: db}
}

func (r *refreshRepository) Criar(ctx context.Context, t *RefreshToken) error {
	return armazem.Classificar(r.DB.WithContext(ctx).Create(t).Error)
}

func (r *refreshRepository) BuscarPorHash(ctx context.Context, hash string) (*RefreshToken, error) {
	var t RefreshToken
	if err := r.DB.WithContext(ctx).Where("hash = ?", hash).First(&t).Error; err != nil {
		return nil, armazem.Classificar(err)
	}
	return &t, nil
}

func (r *refreshRepository) Revogar(ctx context.Context, id string, quando time.Time) error {
	err := r.DB.WithContext(ctx).Model(&RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", quando).Error
	return armazem.Classificar(err)
}
