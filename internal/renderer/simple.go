package renderer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/aleister1102/pagewatch/internal/config"
	"github.com/aleister1102/pagewatch/internal/models"
)

// SimpleRenderer fetches a page over plain HTTP and extracts the selector
// text from the static HTML. It serves targets whose content does not
// require script execution.
type SimpleRenderer struct {
	logger     zerolog.Logger
	httpClient *http.Client
}

// NewSimpleRenderer creates a renderer backed by a plain HTTP client.
func NewSimpleRenderer(cfg *config.RendererConfig, logger zerolog.Logger) *SimpleRenderer {
	transport := &http.Transport{}
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &SimpleRenderer{
		logger: logger.With().Str("component", "SimpleRenderer").Logger(),
		httpClient: &http.Client{
			Timeout:   cfg.HTTPTimeout(),
			Transport: transport,
		},
	}
}

// Render implements models.PageRenderer.
func (sr *SimpleRenderer) Render(ctx context.Context, target models.Target) (*models.RenderedContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL, nil)
	if err != nil {
		return nil, models.NewFetchError(models.FetchErrNavigation, target.URL, err)
	}

	resp, err := sr.httpClient.Do(req)
	if err != nil {
		return nil, classifyFetchError(target.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, models.NewFetchError(models.FetchErrNavigation, target.URL,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, models.NewFetchError(models.FetchErrUnknown, target.URL, err)
	}

	text := ExtractSelectorText(doc, target.Selector)
	sr.logger.Debug().
		Str("target_id", target.ID).
		Int("content_len", len(text)).
		Msg("Fetched page in simple mode")

	return &models.RenderedContent{
		TargetID:  target.ID,
		Text:      text,
		FetchedAt: time.Now().UTC(),
	}, nil
}

// ExtractSelectorText collects the text of every node matching the selector,
// trims each piece, drops empty pieces and joins the rest with newlines.
func ExtractSelectorText(doc *goquery.Document, selector string) string {
	var pieces []string
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		piece := strings.TrimSpace(sel.Text())
		if piece != "" {
			pieces = append(pieces, piece)
		}
	})
	return strings.Join(pieces, "\n")
}
