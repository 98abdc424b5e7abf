//go:build !integration

package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
	"github.com/vikasdeshmukh63/ecom-backend/internal/mocks"
)

// collectingSink records every persisted batch.
type collectingSink struct {
	mocks.MockLoggingService
	mu      sync.Mutex
	entries []*model.LogEntry
	batches int
	err     error
	block   chan struct{}
}

func (s *collectingSink) CreateLogs(_ context.Context, entries []*model.LogEntry) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches++
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entries...)
	return nil
}

func (s *collectingSink) snapshot() ([]*model.LogEntry, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.LogEntry(nil), s.entries...), s.batches
}

func TestNewAsyncLogger_NilSink(t *testing.T) {
	al := NewAsyncLogger(nil, DefaultAsyncLoggerConfig())

	assert.Nil(t, al)
	assert.False(t, al.Log(&model.LogEntry{}), "nil logger discards entries")
	al.Stop()
}

func TestNewAsyncLogger_FillsDefaults(t *testing.T) {
	al := NewAsyncLogger(&collectingSink{}, AsyncLoggerConfig{})
	defer al.Stop()

	assert.Equal(t, DefaultAsyncLoggerConfig(), al.cfg)
}

func TestAsyncLogger_FlushesOnStop(t *testing.T) {
	sink := &collectingSink{}
	al := NewAsyncLogger(sink, AsyncLoggerConfig{NumWorkers: 1, BatchSize: 100, FlushInterval: time.Hour})

	for i := 0; i < 5; i++ {
		require.True(t, al.Log(&model.LogEntry{Message: "HTTP request"}))
	}
	al.Stop()

	entries, batches := sink.snapshot()
	assert.Len(t, entries, 5)
	assert.Equal(t, 1, batches)

	enqueued, dropped, written, failed := al.Stats()
	assert.Equal(t, int64(5), enqueued)
	assert.Zero(t, dropped)
	assert.Equal(t, int64(5), written)
	assert.Zero(t, failed)
}

func TestAsyncLogger_FlushesFullBatches(t *testing.T) {
	sink := &collectingSink{}
	al := NewAsyncLogger(sink, AsyncLoggerConfig{NumWorkers: 1, BatchSize: 2, FlushInterval: time.Hour})
	defer al.Stop()

	al.Log(&model.LogEntry{})
	al.Log(&model.LogEntry{})

	assert.Eventually(t, func() bool {
		entries, _ := sink.snapshot()
		return len(entries) == 2
	}, time.Second, 10*time.Millisecond)
}

func TestAsyncLogger_FlushesOnInterval(t *testing.T) {
	sink := &collectingSink{}
	al := NewAsyncLogger(sink, AsyncLoggerConfig{NumWorkers: 1, BatchSize: 100, FlushInterval: 20 * time.Millisecond})
	defer al.Stop()

	al.Log(&model.LogEntry{})

	assert.Eventually(t, func() bool {
		entries, _ := sink.snapshot()
		return len(entries) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestAsyncLogger_DropsWhenFull(t *testing.T) {
	sink := &collectingSink{block: make(chan struct{})}
	al := NewAsyncLogger(sink, AsyncLoggerConfig{BufferSize: 2, NumWorkers: 1, BatchSize: 1, FlushInterval: time.Hour})

	dropped := 0
	for i := 0; i < 10; i++ {
		if !al.Log(&model.LogEntry{}) {
			dropped++
		}
	}

	assert.Greater(t, dropped, 0)
	close(sink.block)
	al.Stop()

	_, droppedStat, _, _ := al.Stats()
	assert.Equal(t, int64(dropped), droppedStat)
}

func TestAsyncLogger_WriteFailureIsCounted(t *testing.T) {
	sink := &collectingSink{err: errors.New("mongo down")}
	al := NewAsyncLogger(sink, AsyncLoggerConfig{NumWorkers: 1, BatchSize: 10, FlushInterval: time.Hour})

	al.Log(&model.LogEntry{})
	al.Log(&model.LogEntry{})
	al.Stop()

	_, _, written, failed := al.Stats()
	assert.Zero(t, written)
	assert.Equal(t, int64(2), failed)
}

func TestAsyncLogger_LogAfterStop(t *testing.T) {
	al := NewAsyncLogger(&collectingSink{}, DefaultAsyncLoggerConfig())
	al.Stop()
	al.Stop()

	assert.False(t, al.Log(&model.LogEntry{}))
}
