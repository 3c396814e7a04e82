package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KromaEnergia/comissio/internal/app"
	"github.com/KromaEnergia/comissio/internal/config"
	"github.com/KromaEnergia/comissio/internal/logging"
	"github.com/KromaEnergia/comissio/internal/server"
	"github.com/shopspring/decimal"
)

func main() {
	logging.Setup()
	// valores monetários saem como número no JSON
	decimal.MarshalJSONWithoutQuotes = true

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("configuração", "erro", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Novo(ctx, cfg)
	if err != nil {
		slog.Error("falha ao iniciar aplicação", "erro", err)
		os.Exit(1)
	}
	defer func() {
		if err := a.Fechar(); err != nil {
			slog.Error("falha ao encerrar recursos", "erro", err)
		}
	}()

	srv := server.New(cfg.Port, server.NovoRouter(a))
	if err := srv.Run(ctx); err != nil {
		slog.Error("servidor", "erro", err)
		return
	}
	slog.Info("servidor encerrado")
}
