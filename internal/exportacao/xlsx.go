package exportacao

import (
	"io"

	"github.com/KromaEnergia/comissio/internal/cobranca"
	"github.com/xuri/excelize/v2"
)

const planilha = "Cobrancas"

// EscreverXLSX gera a mesma tabela do CSV numa planilha; valores saem como números.
func EscreverXLSX(w io.Writer, lista []cobranca.Cobranca) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", planilha); err != nil {
		return err
	}

	for i, titulo := range cabecalho {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(planilha, cell, titulo); err != nil {
			return err
		}
	}

	for i, c := range lista {
		valores := []any{
			c.NomeDevedor(),
			c.NomeEmpreendimento(),
			c.Unidade(),
			c.ValorTotal.InexactFloat64(),
			c.TaxaComissao.InexactFloat64(),
			c.ValorComissao.InexactFloat64(),
			c.QuantidadeParcelas,
			string(c.Status),
			c.DataInicio.String(),
		}
		for j, v := range valores {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(planilha, cell, v); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}
