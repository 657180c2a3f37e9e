package company

import (
	"context"
	"strings"
	"time"

	"Tenure/internal/domain/notification"
	"Tenure/internal/domain/shared"
	"Tenure/internal/domain/user"
	"Tenure/internal/domain/wallet"
	appErrors "Tenure/internal/errors"
	"Tenure/internal/logger"
	"Tenure/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type UserService interface {
	GetByID(ctx context.Context, id ulid.ULID) (*user.User, error)
	Create(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
}

type UserDirectory interface {
	GetByEmails(ctx context.Context, emails []string) ([]*user.User, error)
	ListByCompany(ctx context.Context, companyID ulid.ULID) ([]*user.User, error)
}

type WalletProvisioner interface {
	EnsureWallet(ctx context.Context, userID ulid.ULID) (*wallet.Wallet, error)
}

// PasswordGenerator segue a assinatura de github.com/sethvargo/go-password.
type PasswordGenerator interface {
	Generate(length, numDigits, numSymbols int, noUpper, allowRepeat bool) (string, error)
}

type Service struct {
	Repository Repository
	Users      UserService
	Directory  UserDirectory
	Wallets    WalletProvisioner
	Passwords  PasswordGenerator
	Queue      shared.Enqueuer
}

func NewService(
	repo Repository,
	users UserService,
	directory UserDirectory,
	wallets WalletProvisioner,
	passwords PasswordGenerator,
	queue shared.Enqueuer,
) *Service {
	return &Service{
		Repository: repo,
		Users:      users,
		Directory:  directory,
		Wallets:    wallets,
		Passwords:  passwords,
		Queue:      queue,
	}
}

// Upsert cria a empresa e torna o usuário Owner, ou atualiza a empresa já vinculada.
func (s *Service) Upsert(ctx context.Context, userID ulid.ULID, req UpsertRequest) (*Company, error) {
	if err := validateUpsert(req); err != nil {
		return nil, err
	}

	owner, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if owner.CompanyId != nil {
		return s.update(ctx, owner, req)
	}

	now := time.Now()
	entity := &Company{
		Id:        pkg.GenerateULIDObject(),
		Name:      shared.NormalizeName(req.Name),
		Size:      req.Size,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repository.Create(ctx, entity); err != nil {
		return nil, err
	}

	owner.CompanyId = &entity.Id
	owner.CompanyRole = user.RoleOwner
	if err := s.Users.Update(ctx, owner); err != nil {
		return nil, err
	}

	if _, err := s.Wallets.EnsureWallet(ctx, owner.Id); err != nil {
		return nil, err
	}

	logger.Info().
		Str("company_id", entity.Id.String()).
		Str("owner_id", owner.Id.String()).
		Msg("Empresa criada")

	return entity, nil
}

func (s *Service) Update(ctx context.Context, userID ulid.ULID, req UpsertRequest) (*Company, error) {
	if err := validateUpsert(req); err != nil {
		return nil, err
	}
	owner, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if owner.CompanyId == nil {
		return nil, appErrors.ErrCompanyRequired
	}
	return s.update(ctx, owner, req)
}

func (s *Service) update(ctx context.Context, owner *user.User, req UpsertRequest) (*Company, error) {
	if owner.CompanyRole != user.RoleOwner {
		return nil, appErrors.ErrForbidden.WithDetails(map[string]interface{}{
			"reason": "owner_role_required",
		})
	}

	entity, err := s.Repository.GetByID(ctx, *owner.CompanyId)
	if err != nil {
		return nil, err
	}
	entity.Name = shared.NormalizeName(req.Name)
	entity.Size = req.Size
	entity.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Service) Get(ctx context.Context, userID ulid.ULID) (*Company, error) {
	member, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if member.CompanyId == nil {
		return nil, appErrors.ErrCompanyRequired
	}
	return s.Repository.GetByID(ctx, *member.CompanyId)
}

func (s *Service) ListEmployees(ctx context.Context, userID ulid.ULID) ([]Employee, error) {
	member, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if member.CompanyId == nil {
		return nil, appErrors.ErrCompanyRequired
	}

	users, err := s.Directory.ListByCompany(ctx, *member.CompanyId)
	if err != nil {
		return nil, err
	}

	out := make([]Employee, 0, len(users))
	for _, u := range users {
		out = append(out, Employee{
			Id:       u.Id,
			Email:    u.Email,
			Role:     string(u.CompanyRole),
			Name:     u.Name,
			Dob:      u.Dob,
			Location: u.Location,
		})
	}
	return out, nil
}

// InviteEmployees cadastra colaboradores com senha gerada e enfileira o email de boas-vindas.
// Nenhum usuário é criado se algum email já estiver em uso.
func (s *Service) InviteEmployees(ctx context.Context, ownerID ulid.ULID, invites []EmployeeInvite) ([]Employee, error) {
	if len(invites) == 0 {
		return nil, appErrors.NewValidationError("employees", "deve conter ao menos um colaborador")
	}

	owner, err := s.Users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !owner.IsOwner() {
		return nil, appErrors.ErrForbidden.WithDetails(map[string]interface{}{
			"reason": "owner_role_required",
		})
	}

	emails := make([]string, 0, len(invites))
	seen := make(map[string]struct{}, len(invites))
	for i := range invites {
		invites[i].Email = user.NormalizeEmail(invites[i].Email)
		invites[i].Name = shared.NormalizeName(invites[i].Name)
		if invites[i].Email == "" || invites[i].Name == "" {
			return nil, appErrors.NewValidationError("employees", "nome e email são obrigatórios")
		}
		if _, dup := seen[invites[i].Email]; dup {
			return nil, appErrors.NewValidationError("employees", "email repetido na requisição").WithDetails(map[string]interface{}{
				"email": invites[i].Email,
			})
		}
		seen[invites[i].Email] = struct{}{}
		emails = append(emails, invites[i].Email)
	}

	taken, err := s.Directory.GetByEmails(ctx, emails)
	if err != nil {
		return nil, err
	}
	if len(taken) > 0 {
		list := make([]string, 0, len(taken))
		for _, u := range taken {
			list = append(list, u.Email)
		}
		return nil, appErrors.ErrEmailAlreadyExists.WithDetails(map[string]interface{}{
			"emails": list,
		})
	}

	created := make([]Employee, 0, len(invites))
	for _, invite := range invites {
		password, err := s.Passwords.Generate(16, 4, 2, false, false)
		if err != nil {
			return created, appErrors.ErrInternalServer.WithError(err)
		}

		employee := &user.User{
			Name:        invite.Name,
			Email:       invite.Email,
			Password:    password,
			CompanyId:   owner.CompanyId,
			CompanyRole: user.RoleEmployee,
			Dob:         invite.Dob,
			Location:    strings.TrimSpace(invite.Location),
		}
		if err := s.Users.Create(ctx, employee); err != nil {
			return created, err
		}
		if _, err := s.Wallets.EnsureWallet(ctx, employee.Id); err != nil {
			return created, err
		}

		mail := notification.WelcomeMail(employee.Email, owner.Name, employee.Name, password)
		if err := s.Queue.Enqueue(ctx, notification.JobSendMail, mail); err != nil {
			logger.Warn().
				Err(err).
				Str("user_id", employee.Id.String()).
				Msg("Falha ao enfileirar email de boas-vindas")
		}

		created = append(created, Employee{
			Id:       employee.Id,
			Email:    employee.Email,
			Role:     string(employee.CompanyRole),
			Name:     employee.Name,
			Dob:      employee.Dob,
			Location: employee.Location,
		})
	}

	return created, nil
}

func validateUpsert(req UpsertRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return appErrors.NewValidationError("name", "é obrigatório")
	}
	if req.Size < 1 {
		return appErrors.NewValidationError("size", "deve ser maior que zero")
	}
	return nil
}
