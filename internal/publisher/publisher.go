// Package publisher emits schema-checked jobs and lifecycle events to the
// downstream streams.
package publisher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"basegraph.app/accounts/common/logger"
	"basegraph.app/accounts/internal/queue"
	"basegraph.app/accounts/internal/schema"
)

// Publisher is called by handlers after their write has committed. Callers
// log failures instead of failing the job.
type Publisher interface {
	PublishTask(ctx context.Context, name queue.TaskType, payload any) error
	PublishEvent(ctx context.Context, name queue.TaskType, payload any) error
}

// Streams names the destination streams.
type Streams struct {
	Jobs      string
	Events    string
	Provision string
}

type publisher struct {
	producer queue.Producer
	registry *schema.Registry
	streams  Streams
}

func New(producer queue.Producer, registry *schema.Registry, streams Streams) Publisher {
	return &publisher{producer: producer, registry: registry, streams: streams}
}

func (p *publisher) PublishTask(ctx context.Context, name queue.TaskType, payload any) error {
	stream := p.streams.Jobs
	if name == queue.TaskOrganizationProvision {
		stream = p.streams.Provision
	}
	return p.publish(ctx, stream, name, payload)
}

func (p *publisher) PublishEvent(ctx context.Context, name queue.TaskType, payload any) error {
	return p.publish(ctx, p.streams.Events, name, payload)
}

func (p *publisher) publish(ctx context.Context, stream string, name queue.TaskType, payload any) error {
	raw, err := p.registry.Encode(name, payload)
	if err != nil {
		return err
	}

	tid := correlationID(ctx)
	id, err := p.producer.Enqueue(ctx, stream, queue.Envelope{
		TaskType: name,
		Payload:  raw,
		Tid:      tid,
		TraceID:  logger.TraceIDFromContext(ctx),
	})
	if err != nil {
		return fmt.Errorf("publishing %s: %w", name, err)
	}

	slog.InfoContext(ctx, "published message", "name", name, "stream", stream, "entry_id", id, "published_tid", tid)
	return nil
}

// correlationID carries the tid of the job being handled forward, or starts a
// new one.
func correlationID(ctx context.Context) string {
	if fields := logger.GetLogFields(ctx); fields.Tid != nil {
		if _, err := uuid.Parse(*fields.Tid); err == nil {
			return *fields.Tid
		}
	}
	return uuid.NewString()
}
