package renderer

import (
	"context"
	"fmt"

	"github.com/aleister1102/pagewatch/internal/models"
)

// SelectiveRenderer routes each target to the renderer matching its render
// mode: simple targets go to the HTTP renderer, full targets to the browser.
type SelectiveRenderer struct {
	simple models.PageRenderer
	full   models.PageRenderer
}

// NewSelectiveRenderer creates the mode router.
func NewSelectiveRenderer(simple, full models.PageRenderer) *SelectiveRenderer {
	return &SelectiveRenderer{simple: simple, full: full}
}

// Render implements models.PageRenderer.
func (sr *SelectiveRenderer) Render(ctx context.Context, target models.Target) (*models.RenderedContent, error) {
	switch target.Mode {
	case models.RenderModeSimple:
		return sr.simple.Render(ctx, target)
	case models.RenderModeFull:
		return sr.full.Render(ctx, target)
	default:
		return nil, models.NewFetchError(models.FetchErrUnknown, target.URL,
			fmt.Errorf("unknown render mode %q", target.Mode))
	}
}
