package auth

import (
	"context"
	"time"
)

type ctxKey string

const ctxSessao ctxKey = "sessao"

const (
	OrigemLocal   = "local"
	OrigemExterna = "externa"
)

// Sessao é a identidade autenticada da requisição.
type Sessao struct {
	UserID   string    `json:"user_id"`
	Email    string    `json:"email"`
	ExpiraEm time.Time `json:"expires_at"`
	Origem   string    `json:"origin"`
}

func ComSessao(ctx context.Context, s *Sessao) context.Context {
	return context.WithValue(ctx, ctxSessao, s)
}

// SessaoDe devolve a sessão anexada pelo middleware, se houver.
func SessaoDe(ctx context.Context) (*Sessao, bool) {
	s, ok := ctx.Value(ctxSessao).(*Sessao)
	return s, ok && s != nil
}
