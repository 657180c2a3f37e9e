package goal

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	// CreateMany ignora metas cujo (usuário, título) já existe e devolve quantas foram gravadas.
	CreateMany(ctx context.Context, goals []*Goal) (int64, error)
	Update(ctx context.Context, goal *Goal) error
	Delete(ctx context.Context, id, userID ulid.ULID) error
	GetByID(ctx context.Context, id ulid.ULID) (*Goal, error)
	GetByIDAndUser(ctx context.Context, id, userID ulid.ULID) (*Goal, error)
	ListByUser(ctx context.Context, userID ulid.ULID) ([]*Goal, error)
	ListByUsers(ctx context.Context, userIDs []ulid.ULID) ([]*Goal, error)
}
