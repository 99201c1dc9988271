package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"basegraph.app/accounts/common/logger"
	"basegraph.app/accounts/internal/queue"
	"basegraph.app/accounts/internal/schema"
)

type Config struct {
	MaxAttempts int
	Concurrency int
}

type Worker struct {
	consumer Consumer
	registry *schema.Registry
	handlers map[queue.TaskType]Handler
	metrics  *Metrics
	cfg      Config

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(consumer Consumer, registry *schema.Registry, handlers map[queue.TaskType]Handler, metrics *Metrics, cfg Config) *Worker {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Worker{
		consumer:  consumer,
		registry:  registry,
		handlers:  handlers,
		metrics:   metrics,
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	defer close(w.stoppedCh)

	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "accounts.worker"})
	slog.InfoContext(ctx, "worker started",
		"concurrency", w.cfg.Concurrency,
		"max_attempts", w.cfg.MaxAttempts)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				// Brief backoff on error
				select {
				case <-time.After(time.Second):
				case <-w.stopCh:
				}
			}
		}
	}
}

// Stop stops reading and waits for the in-flight batch to finish.
func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	g := new(errgroup.Group)
	g.SetLimit(w.cfg.Concurrency)
	for _, msg := range messages {
		g.Go(func() error {
			w.HandleMessage(ctx, msg)
			return nil
		})
	}
	return g.Wait()
}

// HandleMessage drives one delivery through validation and its handler and
// then acks, requeues or dead-letters it. Exported so the reclaimer can reuse it.
func (w *Worker) HandleMessage(ctx context.Context, msg queue.Message) Outcome {
	task := string(msg.TaskType)
	fields := logger.LogFields{
		MessageID: &msg.ID,
		Task:      &task,
		Attempt:   &msg.Attempt,
	}
	if msg.Tid != "" {
		fields.Tid = &msg.Tid
	}
	ctx = logger.WithLogFields(ctx, fields)

	sc := logger.StartSpanFromTraceID(ctx, msg.TraceID, "worker."+task,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.message.id", msg.ID),
			attribute.Int("accounts.attempt", msg.Attempt),
		))
	defer sc.End()
	ctx = sc.Context()

	start := time.Now()
	err := w.execute(ctx, msg)
	outcome := w.settle(ctx, msg, err)
	if err != nil {
		sc.RecordError(err)
	}
	sc.Span().SetAttributes(attribute.String("accounts.outcome", string(outcome)))
	w.metrics.observe(msg.TaskType, outcome, time.Since(start))
	return outcome
}

func (w *Worker) execute(ctx context.Context, msg queue.Message) (err error) {
	handler, ok := w.handlers[msg.TaskType]
	if !ok {
		return stop("no handler registered", fmt.Errorf("task %q", msg.TaskType))
	}

	if err := w.registry.Validate(msg.TaskType, msg.Payload); err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in message processing", "panic", r)
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	slog.InfoContext(ctx, "processing message")
	return handler(ctx, msg)
}

func (w *Worker) settle(ctx context.Context, msg queue.Message, err error) Outcome {
	if err == nil {
		if ackErr := w.consumer.Ack(ctx, msg); ackErr != nil {
			// The delivery stays pending and will be reclaimed; handlers are idempotent.
			slog.WarnContext(ctx, "failed to ACK message", "error", ackErr)
		}
		slog.InfoContext(ctx, "message completed")
		return OutcomeCompleted
	}

	if isFatal(err) {
		slog.ErrorContext(ctx, "fatal message failure, sending to DLQ", "error", err)
		if dlqErr := w.consumer.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return OutcomeFatal
	}

	if msg.Attempt >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "max attempts reached, sending to DLQ", "error", err)
		if dlqErr := w.consumer.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return OutcomeExhausted
	}

	slog.WarnContext(ctx, "requeuing failed message", "error", err)
	if requeueErr := w.consumer.Requeue(ctx, msg, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
	return OutcomeRetried
}
