package worker

import (
	"context"
	"io"
	"testing"
	"time"

	"inventorysync/internal/logger"
	"inventorysync/internal/worker/processors"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

type chanReader struct {
	messages chan kafka.Message
	closed   bool
}

func (r *chanReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case m, ok := <-r.messages:
		if !ok {
			return kafka.Message{}, io.EOF
		}
		return m, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func (r *chanReader) Close() error {
	r.closed = true
	return nil
}

type countingSync struct {
	runs chan struct{}
}

func (c *countingSync) Execute(ctx context.Context) { c.runs <- struct{}{} }

type noopRefresher struct{}

func (noopRefresher) Refresh(ctx context.Context, ids []string) map[string]error { return nil }
func (noopRefresher) ReindexInvalid(ctx context.Context) map[string]error        { return nil }

func newTestWorker(interval time.Duration) (*Worker, *chanReader, *countingSync) {
	log := logger.NewWithWriter("error", "json", io.Discard)
	sync := &countingSync{runs: make(chan struct{}, 10)}
	reader := &chanReader{messages: make(chan kafka.Message, 10)}
	processor := processors.NewEventProcessor(sync, noopRefresher{}, noopRefresher{}, nil, log)
	return &Worker{logger: log, reader: reader, processor: processor, interval: interval}, reader, sync
}

func waitRun(t *testing.T, sync *countingSync) {
	t.Helper()
	select {
	case <-sync.runs:
	case <-time.After(2 * time.Second):
		t.Fatal("sync did not run")
	}
}

func TestWorkerRunsSyncOnEvent(t *testing.T) {
	w, reader, sync := newTestWorker(0)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	reader.messages <- kafka.Message{Value: []byte("garbage")}
	reader.messages <- kafka.Message{Value: []byte(`{"type":"sync.requested"}`)}
	waitRun(t, sync)

	cancel()
	<-done
	assert.Empty(t, sync.runs)
}

func TestWorkerRunsOnSchedule(t *testing.T) {
	w, _, sync := newTestWorker(10 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	waitRun(t, sync)
	waitRun(t, sync)
}

func TestWorkerStopClosesReader(t *testing.T) {
	w, reader, _ := newTestWorker(0)
	w.Stop()
	assert.True(t, reader.closed)
}
