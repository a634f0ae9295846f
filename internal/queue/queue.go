// Package queue connects the intake API to background classification
// workers over NATS. Publishers enqueue one task per document; workers in
// the same queue group share the subject so each task runs exactly once.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/dossier-ai/dossier/internal/config"
)

const drainFlushTimeout = 5 * time.Second

// Task is one queued classification request.
type Task struct {
	Path string `json:"path"`
}

// Queue wraps a NATS connection for task publish and subscribe.
type Queue struct {
	conn    *nats.Conn
	subject string
	group   string
	logger  *slog.Logger
}

// New connects to NATS with reconnect handling from the config.
func New(cfg *config.QueueConfig, logger *slog.Logger) (*Queue, error) {
	log := logger.With("system", "queue")

	conn, err := nats.Connect(
		cfg.URL,
		nats.Name("dossier"),
		nats.Timeout(cfg.TimeoutDuration()),
		nats.ReconnectWait(cfg.ReconnectWaitDuration()),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.RetryOnFailedConnect(true),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	return &Queue{
		conn:    conn,
		subject: cfg.Subject,
		group:   cfg.Group,
		logger:  log,
	}, nil
}

// Close closes the underlying connection.
func (q *Queue) Close() {
	if q.conn != nil {
		q.conn.Close()
	}
}

// Publish enqueues one classification task.
func (q *Queue) Publish(ctx context.Context, task Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("encode task: %w", err)
	}

	if err := q.conn.Publish(q.subject, data); err != nil {
		return fmt.Errorf("nats publish: %w", err)
	}

	q.logger.Info("task enqueued", "path", task.Path)
	return nil
}

// Subscribe consumes tasks in this queue's group until ctx is cancelled,
// then drains the subscription. Handler errors are logged, not retried;
// a run's own failure containment already decides what is fatal.
func (q *Queue) Subscribe(ctx context.Context, handler func(context.Context, Task) error) error {
	sub, err := q.conn.QueueSubscribe(q.subject, q.group, func(msg *nats.Msg) {
		if ctx.Err() != nil {
			return
		}

		var task Task
		if err := json.Unmarshal(msg.Data, &task); err != nil {
			q.logger.Error("malformed task", "error", err)
			return
		}

		if err := handler(ctx, task); err != nil {
			q.logger.Error("task handler failed", "path", task.Path, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("nats subscribe: %w", err)
	}

	if err := q.conn.Flush(); err != nil {
		return fmt.Errorf("nats flush: %w", err)
	}

	q.logger.Info("consuming tasks", "subject", q.subject, "group", q.group)
	<-ctx.Done()

	if err := sub.Drain(); err != nil {
		return fmt.Errorf("nats drain: %w", err)
	}
	if err := q.conn.FlushTimeout(drainFlushTimeout); err != nil {
		return fmt.Errorf("nats flush after drain: %w", err)
	}
	return nil
}
