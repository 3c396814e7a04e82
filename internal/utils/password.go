package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const tamanhoMinimoSenha = 8

// HashSenha valida o tamanho mínimo e retorna o hash bcrypt da senha.
func HashSenha(senha string) (string, error) {
	if len(senha) < tamanhoMinimoSenha {
		return "", fmt.Errorf("%w: a senha deve ter ao menos %d caracteres", ErrInvalido, tamanhoMinimoSenha)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckSenha compara o hash bcrypt com a senha em texto.
func CheckSenha(hash, senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}
