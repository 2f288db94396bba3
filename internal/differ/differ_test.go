package differ

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeCountsChangedLines(t *testing.T) {
	cd := NewContentDiffer(zerolog.Nop())

	previous := "alpha\nbeta\ngamma\n"
	current := "alpha\ndelta\ngamma\nepsilon\n"

	summary := cd.Summarize(previous, current)
	require.NotNil(t, summary)
	assert.Equal(t, 2, summary.LinesAdded)
	assert.Equal(t, 1, summary.LinesRemoved)
	assert.Contains(t, summary.Excerpt, "-beta")
	assert.Contains(t, summary.Excerpt, "+delta")
	assert.Contains(t, summary.Excerpt, "+epsilon")
	assert.NotContains(t, summary.Excerpt, "alpha")
}

func TestSummarizeNoPreviousContent(t *testing.T) {
	cd := NewContentDiffer(zerolog.Nop())
	assert.Nil(t, cd.Summarize("", "anything"))
}

func TestSummarizeIdenticalContent(t *testing.T) {
	cd := NewContentDiffer(zerolog.Nop())

	summary := cd.Summarize("same\ncontent", "same\ncontent")
	require.NotNil(t, summary)
	assert.Zero(t, summary.LinesAdded)
	assert.Zero(t, summary.LinesRemoved)
	assert.Empty(t, summary.Excerpt)
}

func TestSummarizeTruncatesExcerpt(t *testing.T) {
	cd := NewContentDiffer(zerolog.Nop())
	cd.maxExcerptLines = 5

	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("line ")
		sb.WriteByte(byte('a' + i%26))
		sb.WriteString("\n")
	}

	summary := cd.Summarize("old\n", sb.String())
	require.NotNil(t, summary)
	lines := strings.Split(summary.Excerpt, "\n")
	assert.Len(t, lines, 6, "5 excerpt lines plus the truncation marker")
	assert.Equal(t, "...", lines[len(lines)-1])
	assert.Equal(t, 50, summary.LinesAdded)
}

func TestSummarizeSkipsOversizedContent(t *testing.T) {
	cd := NewContentDiffer(zerolog.Nop())
	cd.maxContentBytes = 16

	assert.Nil(t, cd.Summarize(strings.Repeat("x", 32), "small"))
	assert.Nil(t, cd.Summarize("small", strings.Repeat("x", 32)))
}
