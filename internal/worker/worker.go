package worker

import (
	"context"
	"errors"
	"io"
	"time"

	"inventorysync/internal/events"
	"inventorysync/internal/logger"
	"inventorysync/internal/worker/processors"

	"github.com/segmentio/kafka-go"
)

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type Worker struct {
	logger    *logger.Logger
	reader    messageReader
	processor *processors.EventProcessor
	interval  time.Duration
}

func New(brokers, topic string, interval time.Duration, processor *processors.EventProcessor, logger *logger.Logger) *Worker {
	if topic == "" {
		topic = events.DefaultTopic
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        events.Brokers(brokers),
		GroupID:        "inventory-sync-worker",
		Topic:          topic,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &Worker{
		logger:    logger,
		reader:    reader,
		processor: processor,
		interval:  interval,
	}
}

// Start consumes events and runs the scheduled pass every interval until
// ctx is cancelled. Sync runs never overlap within one worker.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Worker started, listening for events...")

	messages := make(chan kafka.Message)
	go w.consume(ctx, messages)

	var tick <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			w.processor.RunScheduled(ctx)
		case message := <-messages:
			w.handle(ctx, message)
		}
	}
}

func (w *Worker) consume(ctx context.Context, out chan<- kafka.Message) {
	for {
		message, err := w.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return
			}
			w.logger.Error("Failed to read message: %v", err)
			continue
		}

		select {
		case out <- message:
		case <-ctx.Done():
			return
		}
	}
}

func (w *Worker) handle(ctx context.Context, message kafka.Message) {
	w.logger.Debug("Received message: %s", string(message.Value))

	event, err := events.Decode(message.Value)
	if err != nil {
		w.logger.Error("Failed to parse event: %v", err)
		return
	}

	if err := w.processor.Process(ctx, event); err != nil {
		w.logger.Error("Failed to process event: %v", err)
		return
	}

	w.logger.Debug("Event processed successfully")
}

func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.reader.Close()
}
