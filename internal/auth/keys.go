package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// Chaves guarda o material de assinatura dos access tokens.
type Chaves struct {
	privada  *rsa.PrivateKey
	publicas map[string]*rsa.PublicKey // kid -> pub

	KID      string
	Issuer   string
	Audience string
}

// CarregarChaves lê uma chave RSA privada PEM (PKCS#1 ou PKCS#8).
func CarregarChaves(path, kid, issuer, audience string) (*Chaves, error) {
	if path == "" || kid == "" || issuer == "" || audience == "" {
		return nil, errors.New("chaves: AUTH_RSA_PRIVATE_PATH/AUTH_KID/AUTH_ISSUER/AUTH_AUDIENCE obrigatórios")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ler chave privada: %w", err)
	}
	block, _ := pem.Decode(b)
	if block == nil {
		return nil, errors.New("decodificar PEM da chave privada")
	}

	var pk any
	if k, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		pk = k
	} else if k8, err2 := x509.ParsePKCS8PrivateKey(block.Bytes); err2 == nil {
		pk = k8
	} else {
		return nil, fmt.Errorf("interpretar chave privada: %v / %v", err, err2)
	}

	priv, ok := pk.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("chave privada não é RSA")
	}
	return novasChaves(priv, kid, issuer, audience), nil
}

// GerarChaves cria uma chave efêmera. Tokens emitidos perdem a validade
// quando o processo reinicia.
func GerarChaves(kid, issuer, audience string) (*Chaves, error) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("gerar chave RSA: %w", err)
	}
	return novasChaves(priv, kid, issuer, audience), nil
}

func novasChaves(priv *rsa.PrivateKey, kid, issuer, audience string) *Chaves {
	return &Chaves{
		privada:  priv,
		publicas: map[string]*rsa.PublicKey{kid: &priv.PublicKey},
		KID:      kid,
		Issuer:   issuer,
		Audience: audience,
	}
}

func (c *Chaves) publica(kid string) (*rsa.PublicKey, bool) {
	p, ok := c.publicas[kid]
	return p, ok
}

func (c *Chaves) metodo() jwt.SigningMethod { return jwt.SigningMethodRS256 }
