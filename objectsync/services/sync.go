package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	sfrest "github.com/santoku/sf/pkg/salesforce/rest"
	"github.com/sourcegraph/conc/pool"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Storer is the slice of the record store the sync service needs.
type Storer interface {
	CreateSyncJob(ctx context.Context, objects []string) (uuid.UUID, error)
	FinishSyncJob(ctx context.Context, jobID uuid.UUID, processed, succeeded, failed int, status string) error
	SaveRecords(ctx context.Context, objectName string, records []map[string]any) (int, error)
}

// SyncMetrics tracks the overall sync operation metrics
type SyncMetrics struct {
	ObjectsSucceeded int
	ObjectsFailed    int
	RecordsSaved     int
	mu               sync.Mutex
}

// AddObjectSuccess records a fully exported object and its saved record count
func (m *SyncMetrics) AddObjectSuccess(records int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ObjectsSucceeded++
	m.RecordsSaved += records
}

// AddObjectFailure increments the failed object count
func (m *SyncMetrics) AddObjectFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ObjectsFailed++
}

// Totals returns the succeeded and failed object counts
func (m *SyncMetrics) Totals() (succeeded, failed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ObjectsSucceeded, m.ObjectsFailed
}

// SyncService exports the records of a set of Salesforce objects into the
// store, with durable tracking via sync jobs.
//
// The ObjectsHandler keeps per-instance session and validation state and is
// not safe to share between goroutines, so the service takes a factory and
// gives every worker its own client.
type SyncService struct {
	newClient  func() sfrest.ObjectsClient
	store      Storer
	logger     *zap.Logger
	maxWorkers int
	maxElapsed time.Duration
}

// NewSyncService creates a new sync service
func NewSyncService(newClient func() sfrest.ObjectsClient, store Storer, logger *zap.Logger) *SyncService {
	return &SyncService{
		newClient:  newClient,
		store:      store,
		logger:     logger,
		maxWorkers: 5,
		maxElapsed: 2 * time.Minute,
	}
}

// SyncAll exports all the given objects concurrently and returns the metrics.
// A failed object does not abort the others; the first error is returned
// after every worker has finished.
func (s *SyncService) SyncAll(ctx context.Context, objects []string) (*SyncMetrics, error) {
	startTime := time.Now()
	s.logger.Info("Starting object sync", zap.Strings("objects", objects))

	metrics := &SyncMetrics{}

	jobID, err := s.store.CreateSyncJob(ctx, objects)
	if err != nil {
		// Sync proceeds without durable tracking rather than failing outright.
		s.logger.Warn("Failed to create sync job, continuing without tracking", zap.Error(err))
	}

	workers := pool.New().WithMaxGoroutines(s.maxWorkers).WithErrors()
	for _, object := range objects {
		workers.Go(func() error {
			saved, err := s.syncObject(ctx, object)
			if err != nil {
				metrics.AddObjectFailure()
				s.logger.Error("Failed to sync object",
					zap.String("object", object),
					zap.Error(err))
				return fmt.Errorf("failed to sync object %s: %w", object, err)
			}
			metrics.AddObjectSuccess(saved)
			s.logger.Info("Synced object",
				zap.String("object", object),
				zap.Int("records_saved", saved))
			return nil
		})
	}

	syncErr := workers.Wait()

	succeeded, failed := metrics.Totals()
	if jobID != uuid.Nil {
		status := "completed"
		if failed > 0 {
			status = "completed_with_errors"
		}
		if err := s.store.FinishSyncJob(ctx, jobID, len(objects), succeeded, failed, status); err != nil {
			s.logger.Warn("Failed to finish sync job",
				zap.String("job_id", jobID.String()),
				zap.Error(err))
		}
	}

	s.logger.Info("Completed object sync",
		zap.Duration("duration", time.Since(startTime)),
		zap.Int("objects_succeeded", succeeded),
		zap.Int("objects_failed", failed),
		zap.Int("records_saved", metrics.RecordsSaved))

	return metrics, syncErr
}

// syncObject exports a single object: describes its fields, queries every
// record, and saves them. Each call uses a fresh client.
func (s *SyncService) syncObject(ctx context.Context, object string) (int, error) {
	client := s.newClient()

	fields, err := s.objectFields(ctx, client, object)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(fields, ", "), object)

	// The connector never retries; transient server errors are retried here
	// instead, at the caller, with exponential backoff.
	operation := func() ([]map[string]any, error) {
		records, err := client.QueryWithSOQL(ctx, query)
		if err != nil {
			var reqErr *sfrest.RequestError
			if errors.As(err, &reqErr) && reqErr.StatusCode >= 500 {
				s.logger.Warn("Server error querying object, will retry",
					zap.String("object", object),
					zap.Int("status_code", reqErr.StatusCode))
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}
		return records, nil
	}

	records, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(s.maxElapsed),
	)
	if err != nil {
		return 0, fmt.Errorf("query failed for %s: %w", object, err)
	}

	return s.store.SaveRecords(ctx, object, records)
}

// objectFields fetches the object's field names from the describe endpoint.
func (s *SyncService) objectFields(ctx context.Context, client sfrest.ObjectsClient, object string) ([]string, error) {
	body, err := client.DoRequest(ctx, sfrest.MethodGet, "sobjects/"+object+"/describe", nil)
	if err != nil {
		return nil, fmt.Errorf("describe failed for %s: %w", object, err)
	}

	var fields []string
	for _, name := range gjson.Get(body, "fields.#.name").Array() {
		fields = append(fields, name.String())
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("describe for %s returned no fields", object)
	}

	return fields, nil
}
