package utils

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const layoutData = "2006-01-02"

// Data é uma data de calendário sem horário (colunas date).
type Data struct {
	time.Time
}

// NovaData cria a data em UTC.
func NovaData(ano int, mes time.Month, dia int) Data {
	return Data{time.Date(ano, mes, dia, 0, 0, 0, 0, time.UTC)}
}

// DataDe descarta o horário de t.
func DataDe(t time.Time) Data {
	return NovaData(t.Year(), t.Month(), t.Day())
}

// ParseData aceita "2006-01-02" ou RFC3339.
func ParseData(s string) (Data, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(layoutData, s); err == nil {
		return DataDe(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Data{}, fmt.Errorf("%w: data %q fora do formato AAAA-MM-DD", ErrInvalido, s)
	}
	return DataDe(t), nil
}

// AdicionarMeses avança n meses a partir de d mantendo o dia.
// Quando o mês de destino é mais curto, o dia é limitado ao último dia do mês
// (31/01 + 1 mês = 29/02 em ano bissexto).
func (d Data) AdicionarMeses(n int) Data {
	primeiro := time.Date(d.Year(), d.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	ultimoDia := time.Date(primeiro.Year(), primeiro.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	dia := d.Day()
	if dia > ultimoDia {
		dia = ultimoDia
	}
	return NovaData(primeiro.Year(), primeiro.Month(), dia)
}

func (d Data) String() string {
	return d.Format(layoutData)
}

func (d Data) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Data) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Data{}
		return nil
	}
	v, err := ParseData(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Value implementa driver.Valuer.
func (d Data) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implementa sql.Scanner.
func (d *Data) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Data{}
	case time.Time:
		*d = DataDe(v)
	case string:
		return d.UnmarshalJSON([]byte(v))
	case []byte:
		return d.UnmarshalJSON(v)
	default:
		return fmt.Errorf("tipo %T não suportado para Data", src)
	}
	return nil
}
