package auth

import (
	"encoding/base64"
	"math/big"
	"net/http"

	"github.com/KromaEnergia/comissio/internal/utils"
)

type jwk struct {
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type ConjuntoJWK struct {
	Keys []jwk `json:"keys"`
}

// JWKS publica as chaves públicas conhecidas.
func (c *Chaves) JWKS() ConjuntoJWK {
	out := ConjuntoJWK{Keys: []jwk{}}
	for kid, pub := range c.publicas {
		out.Keys = append(out.Keys, jwk{
			Kty: "RSA",
			Alg: "RS256",
			Use: "sig",
			Kid: kid,
			N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		})
	}
	return out
}

// GET /.well-known/jwks.json
func (c *Chaves) HandlerJWKS(w http.ResponseWriter, r *http.Request) {
	utils.ResponderJSON(w, http.StatusOK, c.JWKS())
}
