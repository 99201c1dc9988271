package worker

import (
	"context"
	"time"

	"basegraph.app/accounts/internal/queue"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// Claimer takes over stale deliveries abandoned by crashed consumers.
type Claimer interface {
	Claim(ctx context.Context, minIdle time.Duration, count int64) ([]queue.Message, error)
}

// Handler executes one task. The payload has already passed schema
// validation.
type Handler func(ctx context.Context, msg queue.Message) error
