package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/KromaEnergia/comissio/internal/utils"
)

// GarantirAdmin cria o operador inicial se o e-mail ainda não existir.
// Sem senha configurada, gera uma temporária e a registra no log uma vez.
func GarantirAdmin(ctx context.Context, repo UsuarioRepository, email, senha string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}

	_, err := repo.BuscarPorEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, utils.ErrNaoEncontrado) {
		return err
	}

	temporaria := senha == ""
	if temporaria {
		if senha, err = utils.GerarSenhaTemporaria(); err != nil {
			return err
		}
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		return err
	}
	if err := repo.Criar(ctx, &Usuario{Email: email, SenhaHash: hash}); err != nil {
		return err
	}

	if temporaria {
		slog.Warn("operador criado com senha temporária; troque-a no primeiro acesso", "email", email, "senha", senha)
	} else {
		slog.Info("operador inicial criado", "email", email)
	}
	return nil
}
