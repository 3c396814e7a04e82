package utils

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// ResponderJSON escreve v como JSON com o status informado.
func ResponderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ResponderErro traduz err para http.Error. Se mensagem for vazia usa o texto do erro.
// Falhas de rede sinalizam ao cliente que a operação pode ser repetida manualmente.
func ResponderErro(w http.ResponseWriter, err error, mensagem string) {
	status := StatusDoErro(err)
	if mensagem == "" {
		mensagem = err.Error()
	}
	if errors.Is(err, ErrRede) {
		w.Header().Set("X-Retry-Allowed", "true")
	}
	if status >= http.StatusInternalServerError {
		slog.Error(mensagem, "erro", err, "status", status)
	}
	http.Error(w, mensagem, status)
}
