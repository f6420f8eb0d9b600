package dto

import "goalbet/internal/domain"

type VerifyAgentRequestDTO struct {
	TelegramUserID string `json:"telegramUserId" example:"7000001"`
}

type VerifyAgentResponseDTO struct {
	Verified bool          `json:"verified"`
	Message  string        `json:"message,omitempty"`
	Agent    *domain.Agent `json:"agent,omitempty"`
}

type AgentResponseDTO struct {
	Success bool          `json:"success"`
	Agent   *domain.Agent `json:"agent"`
}

type AgentsResponseDTO struct {
	Success bool           `json:"success"`
	Agents  []domain.Agent `json:"agents"`
}

type CreateAgentRequestDTO struct {
	TelegramUserID string `json:"telegramUserId" example:"7000001"`
	Username       string `json:"username" example:"reseller1"`
	Password       string `json:"password" example:"Passw0rd!"`
}

type UpdateAgentRequestDTO struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	Banned   *bool   `json:"banned,omitempty"`
	Online   *bool   `json:"online,omitempty"`
}

type AgentDepositRequestDTO struct {
	AgentID        string  `json:"agentId,omitempty"`
	TelegramUserID string  `json:"telegramUserId,omitempty"`
	UserID         string  `json:"userId" example:"u-42"`
	Currency       string  `json:"currency" example:"MMK"`
	Amount         float64 `json:"amount" example:"100000"`
}

type AgentDepositResponseDTO struct {
	Success      bool           `json:"success"`
	AgentBalance domain.Amounts `json:"agentBalance"`
	UserBalance  domain.Amounts `json:"userBalance"`
}

type AgentDecisionRequestDTO struct {
	AgentID        string `json:"agentId,omitempty"`
	TelegramUserID string `json:"telegramUserId,omitempty"`
	Reason         string `json:"reason,omitempty"`
}

type AgentHistoryResponseDTO struct {
	Success      bool                      `json:"success"`
	Transactions []domain.AgentTransaction `json:"transactions"`
}
