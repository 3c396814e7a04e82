package devedor

import (
	"fmt"
	"strings"

	"github.com/KromaEnergia/comissio/internal/utils"
)

// DevedorDTO é o corpo do POST /devedores.
type DevedorDTO struct {
	Nome      string `json:"name"`
	Documento string `json:"tax_id"`
	Email     string `json:"email"`
	Telefone  string `json:"phone"`
}

func (d DevedorDTO) validar() error {
	if strings.TrimSpace(d.Nome) == "" {
		return fmt.Errorf("%w: nome do devedor é obrigatório", utils.ErrInvalido)
	}
	return nil
}

func (d DevedorDTO) paraModelo() *Devedor {
	return &Devedor{
		Nome:      strings.TrimSpace(d.Nome),
		Documento: strings.TrimSpace(d.Documento),
		Email:     strings.TrimSpace(d.Email),
		Telefone:  strings.TrimSpace(d.Telefone),
	}
}

// AtualizarDevedorDTO é o corpo do PUT /devedores/{id}; campos ausentes não mudam.
type AtualizarDevedorDTO struct {
	Nome      *string `json:"name"`
	Documento *string `json:"tax_id"`
	Email     *string `json:"email"`
	Telefone  *string `json:"phone"`
}

func (d AtualizarDevedorDTO) campos() (map[string]any, error) {
	campos := map[string]any{}
	if d.Nome != nil {
		if strings.TrimSpace(*d.Nome) == "" {
			return nil, fmt.Errorf("%w: nome do devedor não pode ficar vazio", utils.ErrInvalido)
		}
		campos["name"] = strings.TrimSpace(*d.Nome)
	}
	if d.Documento != nil {
		campos["tax_id"] = strings.TrimSpace(*d.Documento)
	}
	if d.Email != nil {
		campos["email"] = strings.TrimSpace(*d.Email)
	}
	if d.Telefone != nil {
		campos["phone"] = strings.TrimSpace(*d.Telefone)
	}
	return campos, nil
}
