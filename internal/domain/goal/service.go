package goal

import (
	"context"
	"strings"
	"time"

	"Tenure/internal/domain/shared"
	"Tenure/internal/domain/user"
	appErrors "Tenure/internal/errors"
	"Tenure/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type UserGetter interface {
	GetByID(ctx context.Context, id ulid.ULID) (*user.User, error)
}

type Service struct {
	Repository  Repository
	UserService UserGetter
	UserChecker *shared.UserCheckerService
}

func NewService(repo Repository, userSvc UserGetter, userChecker *shared.UserCheckerService) *Service {
	return &Service{
		Repository:  repo,
		UserService: userSvc,
		UserChecker: userChecker,
	}
}

func (s *Service) CreateGoals(ctx context.Context, userID ulid.ULID, requests []CreateRequest) (int64, error) {
	if len(requests) == 0 {
		return 0, appErrors.NewValidationError("savingGoals", "deve conter ao menos uma meta")
	}
	if err := s.UserChecker.EnsureUserExists(ctx, userID); err != nil {
		return 0, err
	}

	now := time.Now()
	entities := make([]*Goal, 0, len(requests))
	for _, req := range requests {
		if err := ValidateCreate(req); err != nil {
			return 0, err
		}
		entities = append(entities, &Goal{
			Id:         pkg.GenerateULIDObject(),
			UserId:     userID,
			Title:      shared.NormalizeName(req.Title),
			Target:     req.Target,
			Progress:   decimal.Zero,
			Priority:   req.Priority,
			Percentage: req.Percentage,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	return s.Repository.CreateMany(ctx, entities)
}

func (s *Service) ListGoals(ctx context.Context, userID ulid.ULID) ([]*Goal, error) {
	return s.Repository.ListByUser(ctx, userID)
}

// ListEmployeeGoals expõe as metas de um colaborador para alguém da mesma empresa.
func (s *Service) ListEmployeeGoals(ctx context.Context, viewerID, employeeID ulid.ULID) ([]*Goal, error) {
	viewer, err := s.UserService.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer.CompanyId == nil || !viewer.CompanyRole.IsValid() {
		return nil, appErrors.ErrCompanyRequired
	}

	if viewerID != employeeID {
		employee, err := s.UserService.GetByID(ctx, employeeID)
		if err != nil {
			return nil, err
		}
		if !viewer.SameCompany(employee) {
			return nil, appErrors.ErrForbidden.WithDetails(map[string]interface{}{
				"userId": employeeID.String(),
			})
		}
	}

	return s.Repository.ListByUser(ctx, employeeID)
}

func (s *Service) GetGoalByID(ctx context.Context, goalID, userID ulid.ULID) (*Goal, error) {
	return s.Repository.GetByIDAndUser(ctx, goalID, userID)
}

func (s *Service) UpdateGoal(ctx context.Context, goalID, userID ulid.ULID, req UpdateRequest) (*Goal, error) {
	current, err := s.GetGoalByID(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := shared.NormalizeName(*req.Title)
		if title == "" {
			return nil, appErrors.NewValidationError("title", "é obrigatório")
		}
		current.Title = title
	}
	if req.Target != nil {
		if req.Target.LessThan(decimal.NewFromInt(1)) {
			return nil, appErrors.NewValidationError("goal", "deve ser maior ou igual a 1")
		}
		if err := pkg.ValidateMoneyAmount("goal", *req.Target); err != nil {
			return nil, err
		}
		if req.Target.LessThan(current.Progress) {
			return nil, appErrors.NewValidationError("goal", "não pode ser menor que o progresso atual").WithDetails(map[string]interface{}{
				"field":    "goal",
				"progress": current.Progress.String(),
			})
		}
		current.Target = *req.Target
	}
	if req.Percentage != nil {
		if err := validatePercentage(*req.Percentage); err != nil {
			return nil, err
		}
		current.Percentage = *req.Percentage
	}
	if req.Priority != nil {
		if *req.Priority < 0 {
			return nil, appErrors.NewValidationError("priority", "não pode ser negativa")
		}
		current.Priority = *req.Priority
	}
	current.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *Service) DeleteGoal(ctx context.Context, goalID, userID ulid.ULID) error {
	return s.Repository.Delete(ctx, goalID, userID)
}

func (s *Service) GetGoalProgress(ctx context.Context, goalID, userID ulid.ULID) (*Progress, error) {
	g, err := s.GetGoalByID(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	percent := decimal.Zero
	if g.Target.IsPositive() {
		percent = g.Progress.Div(g.Target).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &Progress{
		GoalId:          g.Id,
		Title:           g.Title,
		Target:          g.Target,
		Progress:        g.Progress,
		Remaining:       g.Capacity(),
		PercentComplete: percent,
		Completed:       g.IsComplete(),
	}, nil
}

func ValidateCreate(req CreateRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return appErrors.NewValidationError("title", "é obrigatório")
	}
	if req.Target.LessThan(decimal.NewFromInt(1)) {
		return appErrors.NewValidationError("goal", "deve ser maior ou igual a 1")
	}
	if err := pkg.ValidateMoneyAmount("goal", req.Target); err != nil {
		return err
	}
	if req.Priority < 0 {
		return appErrors.NewValidationError("priority", "não pode ser negativa")
	}
	return validatePercentage(req.Percentage)
}

func validatePercentage(p int) error {
	if p < 0 || p > 100 {
		return appErrors.NewValidationError("percentage", "deve estar entre 0 e 100")
	}
	return nil
}
