package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/aleister1102/pagewatch/internal/config"
	"github.com/aleister1102/pagewatch/internal/models"
)

// SQLiteFingerprintStore persists fingerprint records in a sqlite database,
// one row per target. Reads run concurrently; writes serialize per target
// through a TargetMutexManager, and each write is a single upsert so a
// record is never observable half-written.
type SQLiteFingerprintStore struct {
	db           *sql.DB
	logger       zerolog.Logger
	storeContent bool
	mutexManager *TargetMutexManager
}

// NewSQLiteFingerprintStore opens (creating if needed) the database at the
// configured path and ensures the schema exists.
func NewSQLiteFingerprintStore(cfg *config.StorageConfig, logger zerolog.Logger) (*SQLiteFingerprintStore, error) {
	storeLogger := logger.With().Str("component", "SQLiteFingerprintStore").Logger()

	dbDir := filepath.Dir(cfg.SQLiteDBPath)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
	}

	db, err := sql.Open("sqlite", cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("sql.Open failed for %s: %w", cfg.SQLiteDBPath, err)
	}

	store := &SQLiteFingerprintStore{
		db:           db,
		logger:       storeLogger,
		storeContent: cfg.StoreContent,
		mutexManager: NewTargetMutexManager(),
	}

	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	storeLogger.Info().Str("db_path", cfg.SQLiteDBPath).Msg("Fingerprint store initialized")
	return store, nil
}

func (s *SQLiteFingerprintStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS fingerprint_records (
		target_id TEXT PRIMARY KEY,
		fingerprint TEXT NOT NULL,
		last_checked_at INTEGER NOT NULL,
		last_changed_at INTEGER,
		content TEXT NOT NULL DEFAULT ''
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return err
	}
	return nil
}

// GetRecord returns the last record for a target, or models.ErrRecordNotFound.
func (s *SQLiteFingerprintStore) GetRecord(ctx context.Context, targetID string) (*models.FingerprintRecord, error) {
	query := `SELECT fingerprint, last_checked_at, last_changed_at, content FROM fingerprint_records WHERE target_id = ?`

	var (
		fingerprintHex string
		lastCheckedMs  int64
		lastChangedMs  sql.NullInt64
		content        string
	)
	err := s.db.QueryRowContext(ctx, query, targetID).Scan(&fingerprintHex, &lastCheckedMs, &lastChangedMs, &content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query record for target %q: %w", targetID, err)
	}

	fingerprint, err := models.ParseFingerprint(fingerprintHex)
	if err != nil {
		return nil, fmt.Errorf("corrupt fingerprint for target %q: %w", targetID, err)
	}

	record := &models.FingerprintRecord{
		TargetID:      targetID,
		Fingerprint:   fingerprint,
		LastCheckedAt: time.UnixMilli(lastCheckedMs).UTC(),
		Content:       content,
	}
	if lastChangedMs.Valid {
		changedAt := time.UnixMilli(lastChangedMs.Int64).UTC()
		record.LastChangedAt = &changedAt
	}
	return record, nil
}

// PutRecord inserts or replaces the record for record.TargetID. Content is
// dropped when content retention is disabled.
func (s *SQLiteFingerprintStore) PutRecord(ctx context.Context, record models.FingerprintRecord) error {
	mutex := s.mutexManager.GetMutex(record.TargetID)
	mutex.Lock()
	defer mutex.Unlock()

	var lastChangedMs sql.NullInt64
	if record.LastChangedAt != nil {
		lastChangedMs = sql.NullInt64{Int64: record.LastChangedAt.UnixMilli(), Valid: true}
	}

	content := record.Content
	if !s.storeContent {
		content = ""
	}

	query := `
	INSERT INTO fingerprint_records (target_id, fingerprint, last_checked_at, last_changed_at, content)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(target_id) DO UPDATE SET
		fingerprint = excluded.fingerprint,
		last_checked_at = excluded.last_checked_at,
		last_changed_at = excluded.last_changed_at,
		content = excluded.content
	`
	if _, err := s.db.ExecContext(ctx, query, record.TargetID, record.Fingerprint.String(), record.LastCheckedAt.UnixMilli(), lastChangedMs, content); err != nil {
		return fmt.Errorf("failed to upsert record for target %q: %w", record.TargetID, err)
	}

	s.logger.Debug().
		Str("target_id", record.TargetID).
		Str("fingerprint", record.Fingerprint.String()).
		Msg("Stored fingerprint record")
	return nil
}

// Close closes the underlying database.
func (s *SQLiteFingerprintStore) Close() error {
	return s.db.Close()
}
