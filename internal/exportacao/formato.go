package exportacao

import (
	"fmt"
	"strings"
	"time"

	"github.com/KromaEnergia/comissio/internal/utils"
)

// Formato é o conjunto fechado de saídas de relatório.
type Formato string

const (
	FormatoCSV  Formato = "csv"
	FormatoXLSX Formato = "xlsx"
	FormatoHTML Formato = "html"
)

func ParseFormato(s string) (Formato, error) {
	switch f := Formato(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatoCSV, FormatoXLSX, FormatoHTML:
		return f, nil
	}
	return "", fmt.Errorf("%w: formato %q não suportado", utils.ErrInvalido, s)
}

func (f Formato) ContentType() string {
	switch f {
	case FormatoCSV:
		return "text/csv; charset=utf-8"
	case FormatoXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/html; charset=utf-8"
	}
}

// NomeArquivo segue o padrão cobrancas_comissio_AAAA-MM-DD.<ext>.
func NomeArquivo(f Formato, hoje time.Time) string {
	return fmt.Sprintf("cobrancas_comissio_%s.%s", hoje.Format("2006-01-02"), f)
}
