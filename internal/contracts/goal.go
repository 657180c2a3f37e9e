package contracts

import (
	"github.com/shopspring/decimal"
)

type SavingGoalInput struct {
	Title      string          `json:"title" binding:"required"`
	Goal       decimal.Decimal `json:"goal"`
	Percentage int             `json:"percentage" binding:"gte=0,lte=100"`
	Priority   int             `json:"priority" binding:"gte=0"`
}

type SavingGoalCreateRequest struct {
	SavingGoals []SavingGoalInput `json:"savingGoals" binding:"required,min=1,dive"`
}

type SavingGoalCreateResponse struct {
	Message string `json:"message"`
	Count   int64  `json:"count"`
}

type SavingGoalUpdateRequest struct {
	Title      *string          `json:"title"`
	Goal       *decimal.Decimal `json:"goal"`
	Percentage *int             `json:"percentage"`
	Priority   *int             `json:"priority"`
}
