package transaction

import (
	"context"

	"Tenure/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

func (s *Service) GetTransaction(ctx context.Context, id, userID ulid.ULID) (*Transaction, error) {
	return s.Repository.GetByIDAndUser(ctx, id, userID)
}

func (s *Service) ListTransactions(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*Transaction, int64, error) {
	return s.Repository.ListByUser(ctx, userID, pkg.NormalizePagination(pagination))
}
