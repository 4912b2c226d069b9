// Package syncer pushes terminal timer records to a remote document store.
// Sync is strictly best-effort and one-shot: a failed push is logged and
// counted, never retried, and never blocks a timer transition.
package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/tempo-sh/tempo/internal/domain"
	"github.com/tempo-sh/tempo/internal/infra/metrics"
)

// Pusher posts records to a configured HTTP endpoint.
type Pusher struct {
	endpoint string
	token    string
	client   *http.Client
	timeout  time.Duration
}

// New creates a pusher for the given endpoint. An empty endpoint returns nil,
// meaning sync is disabled.
func New(endpoint, token string, timeout time.Duration) *Pusher {
	if endpoint == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Pusher{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: timeout},
		timeout:  timeout,
	}
}

// Push sends one record. Safe to call on a nil pusher (sync disabled).
func (p *Pusher) Push(rec *domain.Timer) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.push(ctx, rec); err != nil {
		metrics.SyncPushes.WithLabelValues("failure").Inc()
		log.Printf("[syncer] push record %s: %v", rec.ID, err)
		return
	}
	metrics.SyncPushes.WithLabelValues("success").Inc()
}

func (p *Pusher) push(ctx context.Context, rec *domain.Timer) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+"/timers", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("remote returned %s", resp.Status)
	}
	return nil
}
