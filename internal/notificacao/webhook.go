package notificacao

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"
)

// Webhook envia cada evento por POST JSON para uma URL fixa.
type Webhook struct {
	URL    string
	Client *http.Client
}

func NovoWebhook(url string) *Webhook {
	return &Webhook{URL: url, Client: &http.Client{Timeout: 5 * time.Second}}
}

func (w *Webhook) ParcelaAlterada(ctx context.Context, e Evento) error {
	body, err := e.JSON()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return fmt.Errorf("enviar webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook respondeu %d", resp.StatusCode)
	}
	return nil
}

func (w *Webhook) Fechar() error {
	w.Client.CloseIdleConnections()
	return nil
}
