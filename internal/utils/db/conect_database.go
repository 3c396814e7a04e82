package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Parametros identifica a instância Postgres.
type Parametros struct {
	Host       string
	Port       int
	Nome       string
	Usuario    string
	Senha      string
	SSLDisable bool
}

func montarDSN(p Parametros) string {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d", p.Host, p.Usuario, p.Senha, p.Nome, p.Port)
	if p.SSLDisable {
		dsn += " sslmode=disable"
	}
	return dsn
}

// ConnectDataBase abre o pool do gorm sobre o driver pgx.
func ConnectDataBase(p Parametros) (*gorm.DB, error) {
	database, err := gorm.Open(postgres.Open(montarDSN(p)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("abrir conexão com o banco: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return database, nil
}
