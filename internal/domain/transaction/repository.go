package transaction

import (
	"context"

	"Tenure/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, tx *Transaction) error
	GetByIDAndUser(ctx context.Context, id, userID ulid.ULID) (*Transaction, error)
	ListByUser(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*Transaction, int64, error)
}
