package carga

import (
	"net/http"

	"github.com/KromaEnergia/comissio/internal/utils"
)

type Handler struct {
	Fontes Fontes
}

func NewHandler(f Fontes) *Handler {
	return &Handler{Fontes: f}
}

// GET /carga
func (h *Handler) Carregar(w http.ResponseWriter, r *http.Request) {
	d, err := Carregar(r.Context(), h.Fontes)
	if err != nil {
		utils.ResponderErro(w, err, "Não foi possível carregar os dados. Tente novamente.")
		return
	}
	utils.ResponderJSON(w, http.StatusOK, d)
}
