package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/pagewatch/internal/config"
	"github.com/aleister1102/pagewatch/internal/models"
)

const (
	colorChanged = 15258703 // yellow-ish
	colorFailed  = 15548997 // red
)

// WebhookNotifier delivers patrol events as JSON to a Discord-compatible
// webhook. Failed deliveries are retried a configured number of times; a
// delivery that still fails is logged and dropped, never blocking the cycle
// outcome that was already persisted.
type WebhookNotifier struct {
	cfg        config.NotificationConfig
	logger     zerolog.Logger
	httpClient *http.Client
}

// NewWebhookNotifier creates a webhook notifier. The webhook URL is
// validated once up front.
func NewWebhookNotifier(cfg config.NotificationConfig, logger zerolog.Logger, httpClient *http.Client) (*WebhookNotifier, error) {
	if _, err := url.ParseRequestURI(cfg.WebhookURL); err != nil {
		return nil, fmt.Errorf("invalid webhook URL: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &WebhookNotifier{
		cfg:        cfg,
		logger:     logger.With().Str("component", "WebhookNotifier").Logger(),
		httpClient: httpClient,
	}, nil
}

type webhookPayload struct {
	Embeds []webhookEmbed `json:"embeds"`
}

type webhookEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Color       int            `json:"color"`
	Timestamp   string         `json:"timestamp"`
	Fields      []webhookField `json:"fields,omitempty"`
}

type webhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// NotifyChange implements models.Notifier.
func (wn *WebhookNotifier) NotifyChange(ctx context.Context, event models.ChangeEvent) error {
	embed := webhookEmbed{
		Title:     fmt.Sprintf("Content changed: %s", event.TargetID),
		Color:     colorChanged,
		Timestamp: event.DetectedAt.UTC().Format(time.RFC3339),
		Fields: []webhookField{
			{Name: "URL", Value: event.URL},
			{Name: "Old fingerprint", Value: truncate(event.OldFingerprint.String(), 16), Inline: true},
			{Name: "New fingerprint", Value: truncate(event.NewFingerprint.String(), 16), Inline: true},
		},
	}
	if event.Diff != nil {
		embed.Fields = append(embed.Fields, webhookField{
			Name:  "Diff",
			Value: fmt.Sprintf("+%d / -%d lines", event.Diff.LinesAdded, event.Diff.LinesRemoved),
		})
		if event.Diff.Excerpt != "" {
			embed.Description = fmt.Sprintf("```diff\n%s\n```", truncate(event.Diff.Excerpt, 3500))
		}
	}
	return wn.send(ctx, webhookPayload{Embeds: []webhookEmbed{embed}})
}

// NotifyFetchFailure implements models.Notifier.
func (wn *WebhookNotifier) NotifyFetchFailure(ctx context.Context, event models.FetchFailureEvent) error {
	if !wn.cfg.NotifyOnFailure {
		return nil
	}
	embed := webhookEmbed{
		Title:     fmt.Sprintf("Observation failed: %s", event.TargetID),
		Color:     colorFailed,
		Timestamp: event.OccurredAt.UTC().Format(time.RFC3339),
		Fields: []webhookField{
			{Name: "URL", Value: event.URL},
			{Name: "Error kind", Value: string(event.Kind), Inline: true},
			{Name: "Error", Value: truncate(event.Message, 1000)},
		},
	}
	return wn.send(ctx, webhookPayload{Embeds: []webhookEmbed{embed}})
}

func (wn *WebhookNotifier) send(ctx context.Context, payload webhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	var lastErr error
	attempts := wn.cfg.RetryAttempts + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(wn.cfg.RetryDelay()):
			case <-ctx.Done():
				return ctx.Err()
			}
			wn.logger.Debug().Int("attempt", attempt+1).Msg("Retrying webhook delivery")
		}

		lastErr = wn.post(ctx, body)
		if lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("webhook delivery failed after %d attempts: %w", attempts, lastErr)
}

func (wn *WebhookNotifier) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wn.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := wn.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
