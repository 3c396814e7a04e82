package db

import (
	"context"
	"fmt"

	"github.com/KromaEnergia/comissio/internal/config"
	"gorm.io/gorm"
)

// GetDB resolve as credenciais (env ou Secrets Manager) e conecta.
func GetDB(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	usuario, senha, err := retrieveCredentials(ctx, cfg.DBUsername, cfg.DBPassword, cfg.DBSecretID)
	if err != nil {
		return nil, err
	}
	return ConnectDataBase(Parametros{
		Host:       cfg.DBHost,
		Port:       cfg.DBPort,
		Nome:       cfg.DBName,
		Usuario:    usuario,
		Senha:      senha,
		SSLDisable: cfg.DBSSLDisable,
	})
}

// Ping verifica se o banco responde; usado pelo /health.
func Ping(ctx context.Context, database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

// Fechar encerra o pool de conexões.
func Fechar(database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
