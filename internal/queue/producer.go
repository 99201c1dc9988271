package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Envelope is an outbound job or event ready to be written to a stream.
type Envelope struct {
	TaskType TaskType
	Payload  []byte
	Tid      string
	TraceID  string
}

type Producer interface {
	// Enqueue appends the envelope to stream and returns the entry id.
	Enqueue(ctx context.Context, stream string, env Envelope) (string, error)
}

type redisProducer struct {
	client *redis.Client
}

func NewRedisProducer(client *redis.Client) Producer {
	return &redisProducer{client: client}
}

func (p *redisProducer) Enqueue(ctx context.Context, stream string, env Envelope) (string, error) {
	fields := map[string]any{
		"task_type": string(env.TaskType),
		"payload":   string(env.Payload),
		"attempt":   1,
	}
	if env.Tid != "" {
		fields["tid"] = env.Tid
	}
	if env.TraceID != "" {
		fields["trace_id"] = env.TraceID
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: fields,
	}).Result()
	if err != nil {
		return "", fmt.Errorf("enqueue %s to %s: %w", env.TaskType, stream, err)
	}

	slog.DebugContext(ctx, "enqueued message", "stream", stream, "task_type", env.TaskType, "entry_id", id)
	return id, nil
}
