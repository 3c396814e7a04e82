package empreendimento

import (
	"fmt"
	"strings"

	"github.com/KromaEnergia/comissio/internal/utils"
	"github.com/shopspring/decimal"
)

// EmpreendimentoDTO é o corpo do POST /empreendimentos.
type EmpreendimentoDTO struct {
	Nome    string          `json:"name"`
	Torre   string          `json:"tower"`
	Unidade string          `json:"unit"`
	VGV     decimal.Decimal `json:"vgv"`
}

func (d EmpreendimentoDTO) validar() error {
	if strings.TrimSpace(d.Nome) == "" {
		return fmt.Errorf("%w: nome do empreendimento é obrigatório", utils.ErrInvalido)
	}
	if d.VGV.IsNegative() {
		return fmt.Errorf("%w: VGV não pode ser negativo", utils.ErrInvalido)
	}
	return nil
}

func (d EmpreendimentoDTO) paraModelo() *Empreendimento {
	return &Empreendimento{
		Nome:    strings.TrimSpace(d.Nome),
		Torre:   strings.TrimSpace(d.Torre),
		Unidade: strings.TrimSpace(d.Unidade),
		VGV:     d.VGV.Round(2),
	}
}

// AtualizarEmpreendimentoDTO é o corpo do PUT /empreendimentos/{id}.
// Alterar o VGV não recalcula cobranças já criadas.
type AtualizarEmpreendimentoDTO struct {
	Nome    *string          `json:"name"`
	Torre   *string          `json:"tower"`
	Unidade *string          `json:"unit"`
	VGV     *decimal.Decimal `json:"vgv"`
}

func (d AtualizarEmpreendimentoDTO) campos() (map[string]any, error) {
	campos := map[string]any{}
	if d.Nome != nil {
		if strings.TrimSpace(*d.Nome) == "" {
			return nil, fmt.Errorf("%w: nome do empreendimento não pode ficar vazio", utils.ErrInvalido)
		}
		campos["name"] = strings.TrimSpace(*d.Nome)
	}
	if d.Torre != nil {
		campos["tower"] = strings.TrimSpace(*d.Torre)
	}
	if d.Unidade != nil {
		campos["unit"] = strings.TrimSpace(*d.Unidade)
	}
	if d.VGV != nil {
		if d.VGV.IsNegative() {
			return nil, fmt.Errorf("%w: VGV não pode ser negativo", utils.ErrInvalido)
		}
		campos["vgv"] = d.VGV.Round(2)
	}
	return campos, nil
}
