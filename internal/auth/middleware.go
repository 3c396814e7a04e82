package auth

import (
	"net/http"
	"strings"

	"github.com/KromaEnergia/comissio/internal/utils"
)

// Autenticador aceita tokens emitidos localmente e, se configurado,
// tokens de um provedor externo.
type Autenticador struct {
	Chaves  *Chaves
	Externo *ValidadorExterno
}

func tokenDaRequisicao(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	// EventSource não envia cabeçalhos
	return r.URL.Query().Get("access_token")
}

func (a *Autenticador) sessao(raw string) (*Sessao, error) {
	claims, err := a.Chaves.Validar(raw)
	if err == nil {
		return &Sessao{
			UserID:   claims.UserID,
			Email:    claims.Email,
			ExpiraEm: claims.ExpiresAt.Time,
			Origem:   OrigemLocal,
		}, nil
	}
	if a.Externo != nil {
		if s, errExt := a.Externo.Validar(raw); errExt == nil {
			return s, nil
		}
	}
	return nil, err
}

// Exigir rejeita com 401 requisições sem token válido.
func (a *Autenticador) Exigir(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		raw := tokenDaRequisicao(r)
		if raw == "" {
			utils.ResponderErro(w, utils.ErrNaoAutorizado, "Token ausente")
			return
		}
		s, err := a.sessao(raw)
		if err != nil {
			utils.ResponderErro(w, utils.ErrNaoAutorizado, "Sessão inválida ou expirada")
			return
		}
		next.ServeHTTP(w, r.WithContext(ComSessao(r.Context(), s)))
	})
}

// Opcional anexa a sessão quando o token é válido e segue sem ela caso contrário.
func (a *Autenticador) Opcional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := tokenDaRequisicao(r); raw != "" {
			if s, err := a.sessao(raw); err == nil {
				r = r.WithContext(ComSessao(r.Context(), s))
			}
		}
		next.ServeHTTP(w, r)
	})
}
