package armazem

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/KromaEnergia/comissio/internal/utils"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Classificar traduz erros do gorm/pgx para a taxonomia de utils.
// Erros já classificados voltam sem alteração.
func Classificar(err error) error {
	if err == nil {
		return nil
	}
	for _, conhecido := range []error{utils.ErrNaoEncontrado, utils.ErrRestricao, utils.ErrRede, utils.ErrConflito, utils.ErrInvalido} {
		if errors.Is(err, conhecido) {
			return err
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", utils.ErrNaoEncontrado, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23503", pgErr.Code == "23505", pgErr.Code == "23514", pgErr.Code == "23502":
			return fmt.Errorf("%w (%s): %w", utils.ErrRestricao, pgErr.ConstraintName, err)
		case pgErr.Code == "22P02":
			return fmt.Errorf("%w: %w", utils.ErrInvalido, err)
		case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "57P"):
			return fmt.Errorf("%w: %w", utils.ErrRede, err)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%w: %w", utils.ErrRede, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", utils.ErrRede, err)
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", utils.ErrRede, err)
	}
	return err
}

// ClassificarPorID é o Classificar das operações que localizam um registro
// pelo id. Um id que nem é uuid não identifica nada, então vira
// ErrNaoEncontrado em vez de ErrInvalido.
func ClassificarPorID(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "22P02" {
		return fmt.Errorf("%w: %w", utils.ErrNaoEncontrado, err)
	}
	return Classificar(err)
}

// ViolaChaveEstrangeira indica se err veio de uma FK (delete de registro referenciado).
func ViolaChaveEstrangeira(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
