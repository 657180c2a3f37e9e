package contribution

import (
	"context"
	"time"

	"Tenure/internal/logger"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type CommittedEvent struct {
	Mode          string          `json:"mode"`
	OwnerID       ulid.ULID       `json:"ownerId"`
	CompanyID     ulid.ULID       `json:"companyId"`
	GiftAmount    decimal.Decimal `json:"giftAmount"`
	TotalApplied  decimal.Decimal `json:"totalApplied"`
	WalletBalance decimal.Decimal `json:"walletBalance"`
	Allocations   []Allocation    `json:"allocations"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

// Beneficiaries devolve os colaboradores que receberam algum valor, sem repetição.
func (e CommittedEvent) Beneficiaries() []ulid.ULID {
	seen := make(map[ulid.ULID]struct{}, len(e.Allocations))
	out := make([]ulid.ULID, 0, len(e.Allocations))
	for _, a := range e.Allocations {
		if _, ok := seen[a.UserID]; ok {
			continue
		}
		seen[a.UserID] = struct{}{}
		out = append(out, a.UserID)
	}
	return out
}

// DefaultObserverTimeout limita quanto a resposta espera pelos observers.
const DefaultObserverTimeout = 5 * time.Second

// Observer é avisado depois do commit. Falhas não desfazem a contribuição.
type Observer interface {
	ContributionCommitted(ctx context.Context, event CommittedEvent) error
}

func (e *Engine) notify(ctx context.Context, event CommittedEvent) {
	if len(e.Observers) == 0 {
		return
	}
	timeout := e.ObserverTimeout
	if timeout <= 0 {
		timeout = DefaultObserverTimeout
	}
	detached := context.WithoutCancel(ctx)
	for _, o := range e.Observers {
		octx, cancel := context.WithTimeout(detached, timeout)
		err := o.ContributionCommitted(octx, event)
		cancel()
		if err != nil {
			logger.Warn().
				Err(err).
				Str("owner_id", event.OwnerID.String()).
				Str("mode", event.Mode).
				Msg("Falha ao propagar contribuição confirmada")
		}
	}
}
