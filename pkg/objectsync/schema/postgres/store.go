package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Schema is the DDL for the objectsync tables.
const Schema = `
CREATE TABLE IF NOT EXISTS object_records (
    object_name TEXT        NOT NULL,
    record_id   TEXT        NOT NULL,
    data        JSONB       NOT NULL,
    synced_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (object_name, record_id)
);

CREATE TABLE IF NOT EXISTS sync_jobs (
    id              UUID        PRIMARY KEY,
    objects         TEXT[]      NOT NULL,
    status          TEXT        NOT NULL,
    total_items     INTEGER     NOT NULL DEFAULT 0,
    processed_items INTEGER     NOT NULL DEFAULT 0,
    succeeded_items INTEGER     NOT NULL DEFAULT 0,
    failed_items    INTEGER     NOT NULL DEFAULT 0,
    started_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    finished_at     TIMESTAMPTZ
);
`

// Store persists exported Salesforce records and tracks sync jobs.
type Store struct {
	db     *DB
	logger *zap.Logger
}

// NewStore creates a new record store
func NewStore(db *DB, logger *zap.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger,
	}
}

// Migrate creates the objectsync tables if they don't exist
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.InitSchema(ctx, Schema)
}

// CreateSyncJob registers a new sync job in running state and returns its ID.
func (s *Store) CreateSyncJob(ctx context.Context, objects []string) (uuid.UUID, error) {
	jobID := uuid.New()

	_, err := s.db.Pool().Exec(ctx,
		`INSERT INTO sync_jobs (id, objects, status, total_items) VALUES ($1, $2, 'running', $3)`,
		jobID, objects, len(objects),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create sync job: %w", err)
	}

	s.logger.Info("Created sync job",
		zap.String("job_id", jobID.String()),
		zap.Strings("objects", objects))

	return jobID, nil
}

// FinishSyncJob records the final counts and status of a sync job.
func (s *Store) FinishSyncJob(ctx context.Context, jobID uuid.UUID, processed, succeeded, failed int, status string) error {
	finishedAt := pgtype.Timestamptz{Time: time.Now(), Valid: true}

	_, err := s.db.Pool().Exec(ctx,
		`UPDATE sync_jobs
		    SET processed_items = $2, succeeded_items = $3, failed_items = $4,
		        status = $5, finished_at = $6
		  WHERE id = $1`,
		jobID, processed, succeeded, failed, status, finishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to finish sync job %s: %w", jobID, err)
	}

	s.logger.Info("Finished sync job",
		zap.String("job_id", jobID.String()),
		zap.String("status", status),
		zap.Int("succeeded", succeeded),
		zap.Int("failed", failed))

	return nil
}

// SaveRecords upserts a batch of records for one object inside a single
// transaction: on error nothing from the batch is kept. Records without an
// Id field are skipped.
func (s *Store) SaveRecords(ctx context.Context, objectName string, records []map[string]any) (int, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	saved := 0
	for _, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			s.logger.Error("Failed to marshal record",
				zap.String("object", objectName),
				zap.Error(err))
			continue
		}

		recordID := gjson.GetBytes(data, "Id").String()
		if recordID == "" {
			s.logger.Warn("Record has no Id, skipping",
				zap.String("object", objectName))
			continue
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO object_records (object_name, record_id, data, synced_at)
			 VALUES ($1, $2, $3, now())
			 ON CONFLICT (object_name, record_id)
			 DO UPDATE SET data = EXCLUDED.data, synced_at = now()`,
			objectName, recordID, data,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to save record %s/%s: %w", objectName, recordID, err)
		}
		saved++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit records for %s: %w", objectName, err)
	}

	s.logger.Debug("Saved records",
		zap.String("object", objectName),
		zap.Int("saved", saved),
		zap.Int("total", len(records)))

	return saved, nil
}
