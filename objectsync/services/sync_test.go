package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/santoku/sf/pkg/config"
	sfrest "github.com/santoku/sf/pkg/salesforce/rest"
	"go.uber.org/zap"
)

// fakeOrg serves the auth endpoint and just enough of the REST API for the
// sync flow: the sobjects listing, describe, and query.
type fakeOrg struct {
	srv     *httptest.Server
	objects []string
}

func newFakeOrg(t *testing.T, objects ...string) *fakeOrg {
	f := &fakeOrg{objects: objects}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth" {
			fmt.Fprintf(w, `{"access_token":"token-123","instance_url":%q}`, f.srv.URL)
			return
		}

		path := strings.TrimPrefix(r.URL.Path, "/services/data/v47.0/")
		switch {
		case path == "sobjects":
			names := make([]string, 0, len(f.objects))
			for _, name := range f.objects {
				names = append(names, fmt.Sprintf(`{"name":%q}`, name))
			}
			fmt.Fprintf(w, `{"sobjects":[%s]}`, strings.Join(names, ","))

		case strings.HasSuffix(path, "/describe"):
			fmt.Fprint(w, `{"fields":[{"name":"Id"},{"name":"Name"}]}`)

		case path == "query":
			fmt.Fprint(w, `{"totalSize":2,"done":true,"records":[{"Id":"1","Name":"Acme"},{"Id":"2","Name":"Globex"}]}`)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeOrg) clientFactory() func() sfrest.ObjectsClient {
	cfg := &config.Config{
		AuthURL:      f.srv.URL + "/auth",
		Username:     "user@example.com",
		Password:     "secret",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		GrantType:    "password",
		APIVersion:   47.0,
		Timeout:      5 * time.Second,
	}
	return func() sfrest.ObjectsClient {
		return sfrest.NewObjectsHandlerWithLogger(cfg, zap.NewNop())
	}
}

type fakeStore struct {
	mu           sync.Mutex
	jobID        uuid.UUID
	jobObjects   []string
	saved        map[string]int
	finishStatus string
	finished     struct {
		processed, succeeded, failed int
	}
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: make(map[string]int)}
}

func (s *fakeStore) CreateSyncJob(_ context.Context, objects []string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobID = uuid.New()
	s.jobObjects = objects
	return s.jobID, nil
}

func (s *fakeStore) FinishSyncJob(_ context.Context, jobID uuid.UUID, processed, succeeded, failed int, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if jobID != s.jobID {
		return fmt.Errorf("unknown job %s", jobID)
	}
	s.finishStatus = status
	s.finished.processed = processed
	s.finished.succeeded = succeeded
	s.finished.failed = failed
	return nil
}

func (s *fakeStore) SaveRecords(_ context.Context, objectName string, records []map[string]any) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[objectName] += len(records)
	return len(records), nil
}

func TestSyncAll(t *testing.T) {
	org := newFakeOrg(t, "Account", "Contact")
	store := newFakeStore()
	svc := NewSyncService(org.clientFactory(), store, zap.NewNop())

	metrics, err := svc.SyncAll(context.Background(), []string{"Account", "Contact"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	succeeded, failed := metrics.Totals()
	if succeeded != 2 || failed != 0 {
		t.Errorf("expected 2 succeeded / 0 failed, got %d / %d", succeeded, failed)
	}
	if metrics.RecordsSaved != 4 {
		t.Errorf("expected 4 records saved, got %d", metrics.RecordsSaved)
	}
	if store.saved["Account"] != 2 || store.saved["Contact"] != 2 {
		t.Errorf("unexpected store contents: %v", store.saved)
	}
	if store.finishStatus != "completed" {
		t.Errorf("expected job status completed, got %q", store.finishStatus)
	}
	if store.finished.succeeded != 2 || store.finished.failed != 0 {
		t.Errorf("unexpected job counts: %+v", store.finished)
	}
}

func TestSyncAllContinuesPastFailedObject(t *testing.T) {
	org := newFakeOrg(t, "Account")
	store := newFakeStore()
	svc := NewSyncService(org.clientFactory(), store, zap.NewNop())

	// Ghost is not in the org schema; its export fails without retry while
	// Account still completes.
	metrics, err := svc.SyncAll(context.Background(), []string{"Account", "Ghost"})
	if err == nil {
		t.Fatal("expected error for unknown object")
	}

	succeeded, failed := metrics.Totals()
	if succeeded != 1 || failed != 1 {
		t.Errorf("expected 1 succeeded / 1 failed, got %d / %d", succeeded, failed)
	}
	if store.saved["Account"] != 2 {
		t.Errorf("expected Account records saved, got %v", store.saved)
	}
	if _, ok := store.saved["Ghost"]; ok {
		t.Error("expected no records saved for Ghost")
	}
	if store.finishStatus != "completed_with_errors" {
		t.Errorf("expected job status completed_with_errors, got %q", store.finishStatus)
	}
}
