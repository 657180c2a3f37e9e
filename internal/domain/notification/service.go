package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"Tenure/internal/domain/contribution"
	"Tenure/internal/domain/shared"
	"Tenure/internal/domain/user"
	appErrors "Tenure/internal/errors"
	"Tenure/internal/logger"

	"github.com/oklog/ulid/v2"
)

type UserDirectory interface {
	GetByID(ctx context.Context, id ulid.ULID) (*user.User, error)
	FindEmployeesByCompany(ctx context.Context, companyID ulid.ULID) ([]*user.User, error)
	FindEmployeeByName(ctx context.Context, companyID ulid.ULID, name string) (*user.User, error)
	ListByIDs(ctx context.Context, ids []ulid.ULID) ([]*user.User, error)
}

type Service struct {
	Users  UserDirectory
	Queue  shared.Enqueuer
	Mailer Mailer
	Pusher Pusher
}

func NewService(users UserDirectory, queue shared.Enqueuer, mailer Mailer, pusher Pusher) *Service {
	return &Service{
		Users:  users,
		Queue:  queue,
		Mailer: mailer,
		Pusher: pusher,
	}
}

// Broadcast enfileira um push para todos os colaboradores da empresa do remetente.
func (s *Service) Broadcast(ctx context.Context, senderID ulid.ULID, title, body string) (int, error) {
	if err := validateMessage(title, body); err != nil {
		return 0, err
	}
	sender, err := s.companyMember(ctx, senderID)
	if err != nil {
		return 0, err
	}

	employees, err := s.Users.FindEmployeesByCompany(ctx, *sender.CompanyId)
	if err != nil {
		return 0, err
	}
	if len(employees) == 0 {
		return 0, appErrors.ErrNoEmployeesFound.WithDetails(map[string]interface{}{
			"companyId": sender.CompanyId.String(),
		})
	}

	ids := make([]string, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.Id.String())
	}

	if err := s.Queue.Enqueue(ctx, JobSendPush, PushJob{UserIDs: ids, Title: title, Body: body}); err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (s *Service) SendToEmployee(ctx context.Context, senderID ulid.ULID, name, title, body string) error {
	if err := validateMessage(title, body); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return appErrors.NewValidationError("name", "é obrigatório")
	}
	sender, err := s.companyMember(ctx, senderID)
	if err != nil {
		return err
	}

	employee, err := s.Users.FindEmployeeByName(ctx, *sender.CompanyId, strings.TrimSpace(name))
	if err != nil {
		return err
	}

	return s.Queue.Enqueue(ctx, JobSendPush, PushJob{
		UserIDs: []string{employee.Id.String()},
		Title:   title,
		Body:    body,
	})
}

// ContributionCommitted avisa cada colaborador que recebeu parte do presente.
func (s *Service) ContributionCommitted(ctx context.Context, event contribution.CommittedEvent) error {
	beneficiaries := event.Beneficiaries()
	if len(beneficiaries) == 0 {
		return nil
	}

	ids := make([]string, 0, len(beneficiaries))
	for _, id := range beneficiaries {
		ids = append(ids, id.String())
	}

	return s.Queue.Enqueue(ctx, JobSendPush, PushJob{
		UserIDs: ids,
		Title:   "Você recebeu uma contribuição!",
		Body:    "Sua empresa contribuiu para as suas metas de poupança.",
		Data: map[string]string{
			"type":    "contribution",
			"ownerId": event.OwnerID.String(),
		},
	})
}

// HandlePushJob é o handler do worker para JobSendPush.
func (s *Service) HandlePushJob(ctx context.Context, payload json.RawMessage) error {
	var job PushJob
	if err := json.Unmarshal(payload, &job); err != nil {
		return fmt.Errorf("payload de push inválido: %w", err)
	}

	ids := make([]ulid.ULID, 0, len(job.UserIDs))
	for _, raw := range job.UserIDs {
		id, err := ulid.ParseStrict(raw)
		if err != nil {
			logger.Warn().Str("user_id", raw).Msg("Id de usuário inválido no job de push")
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}

	users, err := s.Users.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}

	messages := make([]PushMessage, 0, len(users))
	for _, u := range users {
		if u.DeviceToken == "" {
			continue
		}
		messages = append(messages, PushMessage{
			To:    u.DeviceToken,
			Title: job.Title,
			Body:  job.Body,
			Data:  job.Data,
		})
	}
	if len(messages) == 0 {
		logger.Debug().Int("users", len(users)).Msg("Nenhum dispositivo registrado para o push")
		return nil
	}

	return s.Pusher.Push(ctx, messages)
}

// HandleMailJob é o handler do worker para JobSendMail.
func (s *Service) HandleMailJob(ctx context.Context, payload json.RawMessage) error {
	var mail Mail
	if err := json.Unmarshal(payload, &mail); err != nil {
		return fmt.Errorf("payload de email inválido: %w", err)
	}
	if mail.To == "" {
		return fmt.Errorf("email sem destinatário")
	}
	return s.Mailer.Send(ctx, mail)
}

func (s *Service) companyMember(ctx context.Context, userID ulid.ULID) (*user.User, error) {
	sender, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sender.CompanyId == nil {
		return nil, appErrors.ErrCompanyRequired
	}
	return sender, nil
}

func validateMessage(title, body string) error {
	if strings.TrimSpace(title) == "" {
		return appErrors.NewValidationError("title", "é obrigatório")
	}
	if strings.TrimSpace(body) == "" {
		return appErrors.NewValidationError("body", "é obrigatório")
	}
	return nil
}
