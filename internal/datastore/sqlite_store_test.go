package datastore

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/pagewatch/internal/config"
	"github.com/aleister1102/pagewatch/internal/models"
)

func newTestStore(t *testing.T, storeContent bool) *SQLiteFingerprintStore {
	t.Helper()
	cfg := &config.StorageConfig{
		SQLiteDBPath: filepath.Join(t.TempDir(), "test.db"),
		StoreContent: storeContent,
	}
	store, err := NewSQLiteFingerprintStore(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testFingerprint(char string) models.Fingerprint {
	return models.Fingerprint(strings.Repeat(char, 64))
}

func TestGetRecordNotFound(t *testing.T) {
	store := newTestStore(t, true)

	_, err := store.GetRecord(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrRecordNotFound)
}

func TestPutAndGetRecord(t *testing.T) {
	store := newTestStore(t, true)
	ctx := context.Background()

	checkedAt := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	record := models.FingerprintRecord{
		TargetID:      "docs",
		Fingerprint:   testFingerprint("a"),
		LastCheckedAt: checkedAt,
		Content:       "observed content",
	}
	require.NoError(t, store.PutRecord(ctx, record))

	got, err := store.GetRecord(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, record.Fingerprint, got.Fingerprint)
	assert.Equal(t, checkedAt, got.LastCheckedAt)
	assert.Nil(t, got.LastChangedAt)
	assert.Equal(t, "observed content", got.Content)
}

func TestPutRecordUpserts(t *testing.T) {
	store := newTestStore(t, true)
	ctx := context.Background()

	first := models.FingerprintRecord{
		TargetID:      "docs",
		Fingerprint:   testFingerprint("a"),
		LastCheckedAt: time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.PutRecord(ctx, first))

	changedAt := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	second := models.FingerprintRecord{
		TargetID:      "docs",
		Fingerprint:   testFingerprint("b"),
		LastCheckedAt: changedAt,
		LastChangedAt: &changedAt,
		Content:       "new content",
	}
	require.NoError(t, store.PutRecord(ctx, second))

	got, err := store.GetRecord(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, second.Fingerprint, got.Fingerprint)
	require.NotNil(t, got.LastChangedAt)
	assert.Equal(t, changedAt, *got.LastChangedAt)
	assert.Equal(t, "new content", got.Content)
}

func TestPutRecordDropsContentWhenRetentionDisabled(t *testing.T) {
	store := newTestStore(t, false)
	ctx := context.Background()

	record := models.FingerprintRecord{
		TargetID:      "docs",
		Fingerprint:   testFingerprint("c"),
		LastCheckedAt: time.Now().UTC(),
		Content:       "should not persist",
	}
	require.NoError(t, store.PutRecord(ctx, record))

	got, err := store.GetRecord(ctx, "docs")
	require.NoError(t, err)
	assert.Empty(t, got.Content)
}

func TestRecordsAreIsolatedPerTarget(t *testing.T) {
	store := newTestStore(t, true)
	ctx := context.Background()

	for _, id := range []string{"one", "two"} {
		require.NoError(t, store.PutRecord(ctx, models.FingerprintRecord{
			TargetID:      id,
			Fingerprint:   testFingerprint("d"),
			LastCheckedAt: time.Now().UTC(),
			Content:       id,
		}))
	}

	one, err := store.GetRecord(ctx, "one")
	require.NoError(t, err)
	two, err := store.GetRecord(ctx, "two")
	require.NoError(t, err)
	assert.Equal(t, "one", one.Content)
	assert.Equal(t, "two", two.Content)
}

func TestTargetMutexManagerReturnsSameMutex(t *testing.T) {
	manager := NewTargetMutexManager()

	first := manager.GetMutex("docs")
	second := manager.GetMutex("docs")
	other := manager.GetMutex("news")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
}
