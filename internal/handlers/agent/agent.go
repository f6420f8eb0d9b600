package agent

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"goalbet/internal/apperr"
	"goalbet/internal/domain"
	"goalbet/internal/dto"
	"goalbet/internal/service/agentservice"
	"goalbet/pkg/utils"
)

type Service interface {
	VerifyByTelegramID(ctx context.Context, telegramUserID string) (*agentservice.VerifyResult, error)
	Get(ctx context.Context, agentID, telegramUserID string) (*domain.Agent, error)
	List(ctx context.Context) ([]domain.Agent, error)
	Create(ctx context.Context, telegramUserID, username, password string) (*domain.Agent, error)
	Update(ctx context.Context, agentID string, patch agentservice.AgentPatch) (*domain.Agent, error)
	Delete(ctx context.Context, agentID string) error
	AdjustBalance(ctx context.Context, agentID string, currency domain.Currency, amount float64, adjustType string) (domain.Amounts, error)
	DepositToUser(ctx context.Context, agentID, telegramUserID, userID string, currency domain.Currency, amount float64) (*agentservice.DepositResult, error)
	Withdrawals(ctx context.Context, agentID, telegramUserID string) ([]domain.Withdrawal, error)
	Approve(ctx context.Context, agentID, telegramUserID, withdrawalID string) (*domain.Withdrawal, error)
	Reject(ctx context.Context, agentID, telegramUserID, withdrawalID, reason string) (*domain.Withdrawal, error)
	History(ctx context.Context, agentID, telegramUserID string) ([]domain.AgentTransaction, error)
	UsersForAgent(ctx context.Context) ([]agentservice.AgentUser, error)
}

type AgentHandler struct {
	agentService Service
}

func New(agentService Service) *AgentHandler {
	return &AgentHandler{agentService: agentService}
}

func respondErr(w http.ResponseWriter, err error) {
	utils.RespondWithError(w, apperr.HTTPStatus(err), apperr.Reason(err))
}

// Verify godoc
//
//	@Summary		Verify an agent bot login
//	@Description	Check a Telegram account against the agent roster
//	@Tags			Agent
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.VerifyAgentRequestDTO	true	"Telegram user id"
//	@Success		200		{object}	dto.VerifyAgentResponseDTO
//	@Router			/api/agent/verify [post]
func (h *AgentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyAgentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	res, err := h.agentService.VerifyByTelegramID(r.Context(), req.TelegramUserID)
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.VerifyAgentResponseDTO{
		Verified: res.Verified,
		Message:  res.Message,
		Agent:    res.Agent,
	})
}

// Get godoc
//
//	@Summary	Get an agent by id or Telegram user id
//	@Tags		Agent
//	@Produce	json
//	@Param		agentId			query		string	false	"Agent id"
//	@Param		telegramUserId	query		string	false	"Telegram user id"
//	@Success	200				{object}	dto.AgentResponseDTO
//	@Failure	404				{object}	utils.Response	"Agent not found"
//	@Router		/api/agent [get]
func (h *AgentHandler) Get(w http.ResponseWriter, r *http.Request) {
	agent, err := h.agentService.Get(r.Context(),
		r.URL.Query().Get("agentId"), r.URL.Query().Get("telegramUserId"))
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AgentResponseDTO{Success: true, Agent: agent})
}

// List godoc
//
//	@Summary	List all agents
//	@Tags		Agent
//	@Produce	json
//	@Success	200	{object}	dto.AgentsResponseDTO
//	@Router		/api/agent/list [get]
func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	agents, err := h.agentService.List(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AgentsResponseDTO{Success: true, Agents: agents})
}

// Create godoc
//
//	@Summary	Create an agent
//	@Tags		Agent
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.CreateAgentRequestDTO	true	"Agent"
//	@Success	200		{object}	dto.AgentResponseDTO
//	@Failure	409		{object}	utils.Response	"Duplicate Telegram id or username"
//	@Router		/api/agent [post]
func (h *AgentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAgentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	agent, err := h.agentService.Create(r.Context(), req.TelegramUserID, req.Username, req.Password)
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AgentResponseDTO{Success: true, Agent: agent})
}

// Update godoc
//
//	@Summary	Update an agent
//	@Tags		Agent
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Agent id"
//	@Param		request	body		dto.UpdateAgentRequestDTO	true	"Fields to change"
//	@Success	200		{object}	dto.AgentResponseDTO
//	@Router		/api/agent/{id} [put]
func (h *AgentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAgentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	agent, err := h.agentService.Update(r.Context(), chi.URLParam(r, "id"), agentservice.AgentPatch{
		Username: req.Username,
		Password: req.Password,
		Banned:   req.Banned,
		Online:   req.Online,
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AgentResponseDTO{Success: true, Agent: agent})
}

// Delete godoc
//
//	@Summary	Delete an agent
//	@Tags		Agent
//	@Produce	json
//	@Param		id	path		string	true	"Agent id"
//	@Success	200	{object}	utils.Response
//	@Router		/api/agent/{id} [delete]
func (h *AgentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.agentService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Success: true})
}

// AdjustBalance godoc
//
//	@Summary	Adjust an agent's float
//	@Tags		Agent
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Agent id"
//	@Param		request	body		dto.AdjustBalanceRequestDTO	true	"Correction"
//	@Success	200		{object}	dto.BalanceResponseDTO
//	@Router		/api/agent/{id}/balance [post]
func (h *AgentHandler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	var req dto.AdjustBalanceRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	balance, err := h.agentService.AdjustBalance(r.Context(), chi.URLParam(r, "id"),
		domain.Currency(req.Currency), req.Amount, req.Type)
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{Success: true, Balance: balance})
}

// Deposit godoc
//
//	@Summary		Fund a user from the agent's float
//	@Description	Approved instantly; the agent becomes the withdrawal adjudicator for the currency
//	@Tags			Agent
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.AgentDepositRequestDTO	true	"Transfer"
//	@Success		200		{object}	dto.AgentDepositResponseDTO
//	@Failure		400		{object}	utils.Response	"Insufficient agent balance"
//	@Router			/api/agent/deposit [post]
func (h *AgentHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req dto.AgentDepositRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	res, err := h.agentService.DepositToUser(r.Context(), req.AgentID, req.TelegramUserID,
		req.UserID, domain.Currency(req.Currency), req.Amount)
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AgentDepositResponseDTO{
		Success:      true,
		AgentBalance: res.AgentBalance,
		UserBalance:  res.UserBalance,
	})
}

// Withdrawals godoc
//
//	@Summary	List withdrawals the agent may adjudicate
//	@Tags		Agent
//	@Produce	json
//	@Param		agentId			query		string	false	"Agent id"
//	@Param		telegramUserId	query		string	false	"Telegram user id"
//	@Success	200				{object}	dto.WithdrawHistoryResponseDTO
//	@Router		/api/agent/withdrawals [get]
func (h *AgentHandler) Withdrawals(w http.ResponseWriter, r *http.Request) {
	withdrawals, err := h.agentService.Withdrawals(r.Context(),
		r.URL.Query().Get("agentId"), r.URL.Query().Get("telegramUserId"))
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.WithdrawHistoryResponseDTO{Success: true, Withdrawals: withdrawals})
}

// Approve godoc
//
//	@Summary	Approve a user withdrawal through the agent
//	@Tags		Agent
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Withdrawal id"
//	@Param		request	body		dto.AgentDecisionRequestDTO	true	"Acting agent"
//	@Success	200		{object}	dto.DecisionResponseDTO
//	@Failure	409		{object}	utils.Response	"Already processed"
//	@Router		/api/agent/withdrawals/{id}/approve [post]
func (h *AgentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req dto.AgentDecisionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	withdrawal, err := h.agentService.Approve(r.Context(), req.AgentID, req.TelegramUserID, chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.DecisionResponseDTO{Success: true, Withdrawal: withdrawal})
}

// Reject godoc
//
//	@Summary	Reject a user withdrawal through the agent
//	@Tags		Agent
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Withdrawal id"
//	@Param		request	body		dto.AgentDecisionRequestDTO	true	"Acting agent and reason"
//	@Success	200		{object}	dto.DecisionResponseDTO
//	@Router		/api/agent/withdrawals/{id}/reject [post]
func (h *AgentHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req dto.AgentDecisionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	withdrawal, err := h.agentService.Reject(r.Context(), req.AgentID, req.TelegramUserID, chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.DecisionResponseDTO{Success: true, Withdrawal: withdrawal})
}

// History godoc
//
//	@Summary	Get an agent's transaction history
//	@Tags		Agent
//	@Produce	json
//	@Param		agentId			query		string	false	"Agent id"
//	@Param		telegramUserId	query		string	false	"Telegram user id"
//	@Success	200				{object}	dto.AgentHistoryResponseDTO
//	@Router		/api/agent/history [get]
func (h *AgentHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.agentService.History(r.Context(),
		r.URL.Query().Get("agentId"), r.URL.Query().Get("telegramUserId"))
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AgentHistoryResponseDTO{Success: true, Transactions: history})
}

// Users godoc
//
//	@Summary	List users with agent-relevant fields
//	@Tags		Agent
//	@Produce	json
//	@Success	200	{object}	map[string]any
//	@Router		/api/agent/users [get]
func (h *AgentHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.agentService.UsersForAgent(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true, "users": users})
}
