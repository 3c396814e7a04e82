package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	RefreshTTL    = 30 * 24 * time.Hour
	RefreshCookie = "rt"
)

func genRaw() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashRaw(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(h[:])
}

// Em localhost o cookie precisa de Secure=false; em produção COOKIE_SECURE=true.
func (h *Handler) definirCookie(w http.ResponseWriter, raw string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    raw,
		Path:     "/auth", // cobre /auth/refresh e /auth/logout
		HttpOnly: true,
		Secure:   h.CookieSeguro,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

func (h *Handler) limparCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    "",
		Path:     "/auth",
		HttpOnly: true,
		Secure:   h.CookieSeguro,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

type usuarioResposta struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type tokenResposta struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int             `json:"expires_in"`
	ExpiresAt   time.Time       `json:"expires_at"`
	Usuario     usuarioResposta `json:"user"`
}

// emitir gera access token e um novo refresh token da família informada
// (vazia inicia uma família nova) e grava o cookie.
func (h *Handler) emitir(ctx context.Context, w http.ResponseWriter, u *Usuario, familia string) (*tokenResposta, error) {
	agora := h.agora()
	access, expira, err := h.Chaves.GerarAccessToken(u.ID, u.Email, agora)
	if err != nil {
		return nil, err
	}

	raw, err := genRaw()
	if err != nil {
		return nil, err
	}
	if familia == "" {
		familia = uuid.NewString()
	}
	rt := RefreshToken{
		UsuarioID: u.ID,
		Familia:   familia,
		Hash:      hashRaw(raw),
		ExpiraEm:  agora.Add(RefreshTTL),
	}
	if err := h.Refresh.Criar(ctx, &rt); err != nil {
		return nil, err
	}
	h.definirCookie(w, raw, rt.ExpiraEm)

	return &tokenResposta{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int(AccessTTL.Seconds()),
		ExpiresAt:   expira,
		Usuario:     usuarioResposta{ID: u.ID, Email: u.Email},
	}, nil
}
