package notificacao

import (
	"context"
	"encoding/json"
	"time"
)

// Evento descreve a alternância de pagamento de uma parcela.
type Evento struct {
	CobrancaID     string     `json:"debt_id"`
	ParcelaID      string     `json:"installment_id"`
	Numero         int        `json:"number"`
	Valor          string     `json:"amount"`
	Status         string     `json:"status"`
	PagoEm         *time.Time `json:"paid_at,omitempty"`
	StatusCobranca string     `json:"debt_status"`
	OcorridoEm     time.Time  `json:"occurred_at"`
}

func (e Evento) JSON() ([]byte, error) {
	return json.Marshal(e)
}

// Notificador avisa sistemas externos. Falhas são devolvidas para o chamador
// registrar; nunca desfazem a operação que gerou o evento.
type Notificador interface {
	ParcelaAlterada(ctx context.Context, e Evento) error
	Fechar() error
}

// Nulo descarta os eventos.
type Nulo struct{}

func (Nulo) ParcelaAlterada(context.Context, Evento) error { return nil }

func (Nulo) Fechar() error { return nil }
