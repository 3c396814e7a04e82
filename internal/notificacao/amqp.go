package notificacao

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// Publicador publica eventos numa exchange direct durável do RabbitMQ.
type Publicador struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	fila     string
}

func NovoPublicador(url, exchange, fila string) (*Publicador, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("abrir canal: %w", err)
	}

	p := &Publicador{conn: conn, channel: channel, exchange: exchange, fila: fila}
	if err := p.declarar(); err != nil {
		p.Fechar()
		return nil, fmt.Errorf("declarar exchange e fila: %w", err)
	}
	return p, nil
}

func (p *Publicador) declarar() error {
	if err := p.channel.ExchangeDeclare(p.exchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("exchange: %w", err)
	}
	if _, err := p.channel.QueueDeclare(p.fila, true, false, false, false, nil); err != nil {
		return fmt.Errorf("fila: %w", err)
	}
	// routing key = nome da fila
	if err := p.channel.QueueBind(p.fila, p.fila, p.exchange, false, nil); err != nil {
		return fmt.Errorf("bind: %w", err)
	}
	return nil
}

func (p *Publicador) ParcelaAlterada(ctx context.Context, e Evento) error {
	body, err := e.JSON()
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(ctx, p.exchange, p.fila, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    e.OcorridoEm,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publicar evento: %w", err)
	}

	slog.DebugContext(ctx, "evento de parcela publicado",
		"cobranca", e.CobrancaID,
		"parcela", e.ParcelaID,
		"status", e.Status)
	return nil
}

func (p *Publicador) Fechar() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
