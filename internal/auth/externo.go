package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ClaimsExternas cobre access e ID tokens de um provedor OIDC.
type ClaimsExternas struct {
	TokenUse string `json:"token_use,omitempty"` // "access" ou "id"
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// ValidadorExterno aceita tokens de um provedor de identidade externo,
// conferindo a assinatura pelo JWKS publicado por ele.
type ValidadorExterno struct {
	jwks     *keyfunc.JWKS
	issuer   string
	audience string
}

// NovoValidadorExterno baixa o JWKS e o mantém atualizado em segundo plano.
func NovoValidadorExterno(jwksURL, issuer, audience string) (*ValidadorExterno, error) {
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshInterval: time.Hour,
		RefreshErrorHandler: func(err error) {
			slog.Warn("falha ao atualizar JWKS externo", "url", jwksURL, "erro", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("JWKS externo: %w", err)
	}
	return &ValidadorExterno{jwks: jwks, issuer: issuer, audience: audience}, nil
}

// ValidadorExternoDeJSON usa um JWKS fixo, sem atualização.
func ValidadorExternoDeJSON(jwksJSON json.RawMessage, issuer, audience string) (*ValidadorExterno, error) {
	jwks, err := keyfunc.NewJSON(jwksJSON)
	if err != nil {
		return nil, fmt.Errorf("JWKS externo: %w", err)
	}
	return &ValidadorExterno{jwks: jwks, issuer: issuer, audience: audience}, nil
}

func (v *ValidadorExterno) Validar(raw string) (*Sessao, error) {
	opcoes := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if v.issuer != "" {
		opcoes = append(opcoes, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opcoes = append(opcoes, jwt.WithAudience(v.audience))
	}

	var claims ClaimsExternas
	token, err := jwt.ParseWithClaims(raw, &claims, v.jwks.Keyfunc, opcoes...)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token externo inválido: %w", err)
	}
	if claims.TokenUse == "id" {
		return nil, errors.New("use o access token do provedor")
	}

	s := &Sessao{
		UserID: claims.Subject,
		Email:  claims.Email,
		Origem: OrigemExterna,
	}
	if s.Email == "" {
		s.Email = claims.Username
	}
	if claims.ExpiresAt != nil {
		s.ExpiraEm = claims.ExpiresAt.Time
	}
	return s, nil
}

func (v *ValidadorExterno) Fechar() {
	if v != nil && v.jwks != nil {
		v.jwks.EndBackground()
	}
}
