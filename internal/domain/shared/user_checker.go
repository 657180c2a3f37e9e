package shared

import (
	"context"

	appErrors "Tenure/internal/errors"

	"github.com/oklog/ulid/v2"
)

type UserCheckerService struct {
	userService UserChecker
}

func NewUserCheckerService(userService UserChecker) *UserCheckerService {
	return &UserCheckerService{userService: userService}
}

func (s *UserCheckerService) EnsureUserExists(ctx context.Context, userID ulid.ULID) error {
	if s == nil || s.userService == nil {
		return appErrors.ErrInternalServer
	}

	if err := s.userService.Exists(ctx, userID); err != nil {
		if appErr, ok := appErrors.AsAppError(err); ok && appErr.Code != appErrors.ErrUserNotFound.Code {
			return appErr
		}
		return appErrors.ErrUserNotFound.WithError(err)
	}

	return nil
}
