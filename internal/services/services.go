package services

import (
	"context"

	"github.com/cinematica/cinematica-api/pkg/queue"
)

// PageSize is the fixed page length for every paginated listing. Pages are
// 1-indexed; a page past the data yields an empty list, not an error.
const PageSize = 10

func pageOffset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageSize
}

// EventPublisher is satisfied by queue.KafkaProducer. Publishing is
// best-effort everywhere: failures are logged, never returned to callers.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event queue.Event) error
}
