package differ

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/aleister1102/pagewatch/internal/models"
)

const (
	// DefaultMaxExcerptLines caps the number of changed lines kept in a
	// notification excerpt.
	DefaultMaxExcerptLines = 20
	// DefaultMaxContentBytes skips diffing for oversized content pairs.
	DefaultMaxContentBytes = 4 * 1024 * 1024
)

// ContentDiffer produces raw line-level summaries of content changes for
// notification context. It never filters content semantically.
type ContentDiffer struct {
	logger          zerolog.Logger
	dmp             *diffmatchpatch.DiffMatchPatch
	maxExcerptLines int
	maxContentBytes int
}

// NewContentDiffer creates a differ with default limits.
func NewContentDiffer(logger zerolog.Logger) *ContentDiffer {
	return &ContentDiffer{
		logger:          logger.With().Str("component", "ContentDiffer").Logger(),
		dmp:             diffmatchpatch.New(),
		maxExcerptLines: DefaultMaxExcerptLines,
		maxContentBytes: DefaultMaxContentBytes,
	}
}

// Summarize compares two content versions line by line. It returns nil when
// the previous content is empty (nothing retained) or either side is too
// large to diff.
func (cd *ContentDiffer) Summarize(previous, current string) *models.DiffSummary {
	if previous == "" {
		return nil
	}
	if len(previous) > cd.maxContentBytes || len(current) > cd.maxContentBytes {
		cd.logger.Debug().
			Int("previous_bytes", len(previous)).
			Int("current_bytes", len(current)).
			Msg("Content too large for diff summary")
		return nil
	}

	prevRunes, currRunes, lines := cd.dmp.DiffLinesToRunes(previous, current)
	diffs := cd.dmp.DiffCharsToLines(cd.dmp.DiffMainRunes(prevRunes, currRunes, false), lines)

	summary := &models.DiffSummary{}
	var excerpt []string
	truncated := false

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			summary.LinesAdded += countLines(d.Text)
			truncated = appendExcerpt(&excerpt, "+", d.Text, cd.maxExcerptLines) || truncated
		case diffmatchpatch.DiffDelete:
			summary.LinesRemoved += countLines(d.Text)
			truncated = appendExcerpt(&excerpt, "-", d.Text, cd.maxExcerptLines) || truncated
		}
	}

	if truncated {
		excerpt = append(excerpt, "...")
	}
	summary.Excerpt = strings.Join(excerpt, "\n")
	return summary
}

func countLines(text string) int {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}

// appendExcerpt adds prefixed lines up to the limit and reports whether the
// limit was hit.
func appendExcerpt(excerpt *[]string, prefix, text string, limit int) bool {
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		if len(*excerpt) >= limit {
			return true
		}
		*excerpt = append(*excerpt, prefix+line)
	}
	return false
}
