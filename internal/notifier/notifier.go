// Package notifier est la frontière de livraison des annonces: un texte
// formaté part vers l'audience, fire-and-forget, aucun accusé de réception
// attendu par le cœur.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Lucasbjorklund31/challengebot/internal/logger"
)

type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Console écrit les annonces dans les logs (mode par défaut, comme en
// développement)
type Console struct{}

func (Console) Send(_ context.Context, text string) error {
	logger.Info("Challenge notification:\n%s", text)
	return nil
}

// Webhook poste les annonces en JSON vers une URL configurée (passerelle
// de messagerie externe)
type Webhook struct {
	URL    string
	client *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		URL:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *Webhook) Send(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("could not encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("could not build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("could not deliver notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification rejected with status %d", resp.StatusCode)
	}
	return nil
}
