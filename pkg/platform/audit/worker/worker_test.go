package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "pawdesk/pkg/platform/audit"
	"pawdesk/pkg/platform/audit/store/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type failingStore struct {
	mu       sync.Mutex
	attempts int
}

func (s *failingStore) Append(context.Context, audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	return errors.New("db down")
}

func (s *failingStore) ListRecent(context.Context, audit.Category, int) ([]audit.Entry, error) {
	return nil, nil
}

func (s *failingStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

func TestWorker_PersistsEntries(t *testing.T) {
	s := memory.NewInMemoryStore()
	inbox := make(chan audit.Entry, 10)
	w := New(s, inbox, testLogger(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	inbox <- audit.NewEntry(audit.CategoryWeather, "fetch_forecast_start", nil)
	inbox <- audit.NewEntry(audit.CategoryWeather, "fetch_forecast_complete", nil)

	assert.Eventually(t, func() bool {
		list, err := s.ListByCategory(context.Background(), audit.CategoryWeather)
		return err == nil && len(list) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestWorker_DrainsBufferedEntriesOnShutdown(t *testing.T) {
	s := memory.NewInMemoryStore()
	inbox := make(chan audit.Entry, 10)
	w := New(s, inbox, testLogger(), nil)

	// Buffer entries before the worker ever runs, then cancel immediately.
	for range 5 {
		inbox <- audit.NewEntry(audit.CategorySupplier, "fetch_suppliers_start", nil)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := w.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	list, err := s.ListByCategory(context.Background(), audit.CategorySupplier)
	require.NoError(t, err)
	assert.Len(t, list, 5)
}

func TestWorker_StoreFailureDoesNotStopTheLoop(t *testing.T) {
	s := &failingStore{}
	inbox := make(chan audit.Entry, 10)
	w := New(s, inbox, testLogger(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	inbox <- audit.NewEntry(audit.CategoryWeather, "e1", nil)
	inbox <- audit.NewEntry(audit.CategoryWeather, "e2", nil)

	assert.Eventually(t, func() bool {
		return s.count() == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}
