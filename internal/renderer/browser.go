package renderer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"

	"github.com/aleister1102/pagewatch/internal/config"
	"github.com/aleister1102/pagewatch/internal/models"
)

// BrowserRenderer renders full-mode targets through a remote headless
// browser. Each Render call opens a fresh page on the shared browser
// connection; the patrol worker pool bounds how many run at once.
type BrowserRenderer struct {
	cfg     *config.RendererConfig
	logger  zerolog.Logger
	browser *rod.Browser
	mutex   sync.Mutex
}

// NewBrowserRenderer creates a renderer for the configured browser endpoint.
// The connection is established lazily on first use so that processes with
// only simple-mode targets never touch the browser.
func NewBrowserRenderer(cfg *config.RendererConfig, logger zerolog.Logger) *BrowserRenderer {
	return &BrowserRenderer{
		cfg:    cfg,
		logger: logger.With().Str("component", "BrowserRenderer").Logger(),
	}
}

// connect resolves the DevTools endpoint and attaches to the browser.
func (br *BrowserRenderer) connect() (*rod.Browser, error) {
	br.mutex.Lock()
	defer br.mutex.Unlock()

	if br.browser != nil {
		return br.browser, nil
	}

	controlURL, err := launcher.ResolveURL(br.cfg.BrowserURL)
	if err != nil {
		return nil, models.NewFetchError(models.FetchErrConnection, br.cfg.BrowserURL,
			fmt.Errorf("failed to resolve browser endpoint: %w", err))
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, models.NewFetchError(models.FetchErrConnection, br.cfg.BrowserURL,
			fmt.Errorf("failed to connect to browser: %w", err))
	}

	br.logger.Info().Str("browser_url", br.cfg.BrowserURL).Msg("Connected to remote browser")
	br.browser = browser
	return browser, nil
}

// Render implements models.PageRenderer.
func (br *BrowserRenderer) Render(ctx context.Context, target models.Target) (*models.RenderedContent, error) {
	browser, err := br.connect()
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, br.cfg.PageLoadTimeout())
	defer cancel()

	page, err := browser.Context(timeoutCtx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, classifyFetchError(target.URL, fmt.Errorf("failed to create page: %w", err))
	}
	defer page.Close()

	if err := page.Navigate(target.URL); err != nil {
		return nil, models.NewFetchError(models.FetchErrNavigation, target.URL, err)
	}

	if err := page.WaitLoad(); err != nil {
		return nil, classifyFetchError(target.URL, fmt.Errorf("page load: %w", err))
	}

	// Settle time for pages that keep rendering after the load event.
	if wait := target.WaitDuration(); wait > 0 {
		select {
		case <-time.After(wait):
		case <-timeoutCtx.Done():
			return nil, models.NewFetchError(models.FetchErrTimeout, target.URL, timeoutCtx.Err())
		}
	}

	element, err := page.Element(target.Selector)
	if err != nil {
		return nil, classifyFetchError(target.URL, fmt.Errorf("selector %q: %w", target.Selector, err))
	}

	text, err := element.Text()
	if err != nil {
		return nil, classifyFetchError(target.URL, fmt.Errorf("failed to read element text: %w", err))
	}

	br.logger.Debug().
		Str("target_id", target.ID).
		Int("content_len", len(text)).
		Msg("Rendered page in full mode")

	return &models.RenderedContent{
		TargetID:  target.ID,
		Text:      text,
		FetchedAt: time.Now().UTC(),
	}, nil
}

// Close detaches from the remote browser without killing it.
func (br *BrowserRenderer) Close() {
	br.mutex.Lock()
	defer br.mutex.Unlock()

	if br.browser != nil {
		if err := br.browser.Close(); err != nil {
			br.logger.Warn().Err(err).Msg("Failed to close browser connection")
		}
		br.browser = nil
	}
}
