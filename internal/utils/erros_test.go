package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusDoErro(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: x", ErrInvalido), http.StatusUnprocessableEntity},
		{fmt.Errorf("busca: %w", ErrNaoEncontrado), http.StatusNotFound},
		{ErrRestricao, http.StatusConflict},
		{ErrConflito, http.StatusConflict},
		{ErrNaoAutorizado, http.StatusUnauthorized},
		{fmt.Errorf("%w: dial", ErrRede), http.StatusServiceUnavailable},
		{errors.New("qualquer"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusDoErro(tt.err); got != tt.want {
			t.Errorf("StatusDoErro(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestResponderErroRede(t *testing.T) {
	rec := httptest.NewRecorder()
	ResponderErro(rec, fmt.Errorf("%w: timeout", ErrRede), "Banco indisponível")

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Retry-Allowed") != "true" {
		t.Error("missing retry header")
	}
}

func TestSenha(t *testing.T) {
	if _, err := HashSenha("curta"); !errors.Is(err, ErrInvalido) {
		t.Errorf("expected ErrInvalido, got %v", err)
	}
	hash, err := HashSenha("segredo-forte")
	if err != nil {
		t.Fatalf("HashSenha: %v", err)
	}
	if !CheckSenha(hash, "segredo-forte") {
		t.Error("CheckSenha should accept the right password")
	}
	if CheckSenha(hash, "outra-senha") {
		t.Error("CheckSenha should reject a wrong password")
	}
}
