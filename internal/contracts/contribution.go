package contracts

import "github.com/shopspring/decimal"

type GiftRequest struct {
	EmployeeId string          `json:"employeeId" binding:"required"`
	GoalId     string          `json:"goalId" binding:"required"`
	GiftAmount decimal.Decimal `json:"giftAmount"`
}

type GiftAllRequest struct {
	GiftAmount decimal.Decimal `json:"giftAmount"`
}
