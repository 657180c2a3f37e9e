package wallet

import (
	"context"

	appErrors "Tenure/internal/errors"
	"Tenure/internal/logger"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// Guard verifica a solvência da carteira antes de qualquer contribuição.
// Somente leitura: a revalidação definitiva acontece no commit.
type Guard struct {
	Repository Repository
}

func NewGuard(repo Repository) *Guard {
	return &Guard{Repository: repo}
}

func (g *Guard) EnsureSufficientFunds(ctx context.Context, userID ulid.ULID, required decimal.Decimal) (*Wallet, error) {
	if !required.IsPositive() {
		return nil, appErrors.NewValidationError("amount", "deve ser maior que zero").WithDetails(map[string]interface{}{
			"field":    "amount",
			"required": required.String(),
		})
	}

	w, err := g.Repository.GetByUserID(ctx, userID)
	if err != nil {
		if appErr, ok := appErrors.AsAppError(err); ok && appErr.Code == appErrors.ErrWalletNotFound.Code {
			logger.Error().
				Str("user_id", userID.String()).
				Msg("Carteira inexistente para usuário autenticado")
			return nil, appErrors.ErrWalletNotFound.WithDetails(map[string]interface{}{
				"userId": userID.String(),
			})
		}
		return nil, err
	}

	if !w.Covers(required) {
		return nil, appErrors.ErrInsufficientFunds.WithDetails(map[string]interface{}{
			"userId":   userID.String(),
			"balance":  w.Balance.String(),
			"required": required.String(),
		})
	}

	return w, nil
}
