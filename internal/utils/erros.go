package utils

import (
	"errors"
	"net/http"
)

// Taxonomia de erros compartilhada entre repositórios, serviços e handlers.
var (
	ErrNaoEncontrado = errors.New("registro não encontrado")
	ErrRestricao     = errors.New("operação bloqueada por restrição de integridade")
	ErrRede          = errors.New("falha de comunicação com o banco de dados")
	ErrConflito      = errors.New("registro alterado por outra operação")
	ErrInvalido      = errors.New("dados inválidos")
	ErrNaoAutorizado = errors.New("não autorizado")
)

// StatusDoErro devolve o status HTTP correspondente à categoria do erro.
func StatusDoErro(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalido):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNaoEncontrado):
		return http.StatusNotFound
	case errors.Is(err, ErrRestricao), errors.Is(err, ErrConflito):
		return http.StatusConflict
	case errors.Is(err, ErrNaoAutorizado):
		return http.StatusUnauthorized
	case errors.Is(err, ErrRede):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
