package dto

import (
	"goalbet/internal/config"
	"goalbet/internal/domain"
)

type DepositRequestDTO struct {
	Amount          float64 `json:"amount" example:"50000"`
	Currency        string  `json:"currency" example:"MMK"`
	PaymentMethodID string  `json:"paymentMethodId" example:"pm-1"`
	TransactionID   string  `json:"transactionId" example:"483920"`
}

type DepositResponseDTO struct {
	Success bool            `json:"success"`
	Deposit *domain.Deposit `json:"deposit"`
	Message string          `json:"message"`
}

type WithdrawRequestDTO struct {
	Amount   float64 `json:"amount" example:"25000"`
	Currency string  `json:"currency" example:"MMK"`
}

type WithdrawResponseDTO struct {
	Success    bool               `json:"success"`
	Withdrawal *domain.Withdrawal `json:"withdrawal"`
	NewBalance float64            `json:"newBalance"`
	Message    string             `json:"message"`
}

type DepositHistoryResponseDTO struct {
	Success  bool             `json:"success"`
	Deposits []domain.Deposit `json:"deposits"`
}

type WithdrawHistoryResponseDTO struct {
	Success     bool                `json:"success"`
	Withdrawals []domain.Withdrawal `json:"withdrawals"`
}

type PaymentMethodsResponseDTO struct {
	Success  bool                   `json:"success"`
	Payments domain.PaymentPool     `json:"payments"`
	Methods  []domain.PaymentMethod `json:"methods,omitempty"`
}

type TurnoverDTO struct {
	Met       bool    `json:"met"`
	Required  float64 `json:"required"`
	Current   float64 `json:"current"`
	Remaining float64 `json:"remaining"`
}

type EligibilityResponseDTO struct {
	Success            bool                    `json:"success"`
	Eligible           bool                    `json:"eligible"`
	Turnover           TurnoverDTO             `json:"turnover"`
	VipLevel           domain.VipLevel         `json:"vipLevel"`
	DailyLimit         int                     `json:"dailyLimit"`
	TodayCount         int                     `json:"todayCount"`
	RemainingWithdraws int                     `json:"remainingWithdraws"`
	HasPendingClaim    bool                    `json:"hasPendingClaim"`
	PendingClaimBet    *domain.PendingClaimBet `json:"pendingClaimBet,omitempty"`
	Balance            float64                 `json:"balance"`
	Limits             config.Limits           `json:"limits"`
}

type ClaimRewardRequestDTO struct {
	Currency string `json:"currency" example:"MMK"`
}

type ClaimRewardResponseDTO struct {
	Success    bool                    `json:"success"`
	Amount     float64                 `json:"amount"`
	NewBalance float64                 `json:"newBalance"`
	ClaimLock  *domain.PendingClaimBet `json:"pendingClaimBet"`
	Message    string                  `json:"message"`
}
