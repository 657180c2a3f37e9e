package shared

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type UserChecker interface {
	Exists(ctx context.Context, userID ulid.ULID) error
}

// Enqueuer publica jobs assíncronos (emails, push) na fila.
type Enqueuer interface {
	Enqueue(ctx context.Context, name string, payload any) error
}
