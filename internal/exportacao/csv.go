package exportacao

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/KromaEnergia/comissio/internal/cobranca"
)

var cabecalho = []string{"Devedor", "Empreendimento", "Unidade", "VGV", "Comissao (%)", "Valor Comissao", "Parcelas", "Status", "Data Inicio"}

func linha(c cobranca.Cobranca) []string {
	return []string{
		c.NomeDevedor(),
		c.NomeEmpreendimento(),
		c.Unidade(),
		c.ValorTotal.StringFixed(2),
		c.TaxaComissao.String(),
		c.ValorComissao.StringFixed(2),
		strconv.Itoa(c.QuantidadeParcelas),
		string(c.Status),
		c.DataInicio.String(),
	}
}

// EscreverCSV grava a lista filtrada de cobranças, uma por linha.
func EscreverCSV(w io.Writer, lista []cobranca.Cobranca) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(cabecalho); err != nil {
		return err
	}
	for _, c := range lista {
		if err := cw.Write(linha(c)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
