// Package agentservice implements the reseller layer: agents hold their own
// multi-currency float, fund user accounts directly and adjudicate the
// withdrawals of users they have funded.
package agentservice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goalbet/internal/apperr"
	"goalbet/internal/domain"
	ledgerrepo "goalbet/internal/repo/ledger-repo"
)

type LedgerRepo interface {
	Users(ctx context.Context) ([]domain.User, error)
	MutateUsers(ctx context.Context, fn func(users []domain.User) ([]domain.User, error)) error
	Withdrawals(ctx context.Context) ([]domain.Withdrawal, error)
	MutateWithdrawals(ctx context.Context, fn func(withdrawals []domain.Withdrawal) ([]domain.Withdrawal, error)) error
	Agents(ctx context.Context) ([]domain.Agent, error)
	MutateAgents(ctx context.Context, fn func(agents []domain.Agent) ([]domain.Agent, error)) error
}

const txHistoryLimit = 200

type Service struct {
	ledger LedgerRepo
	now    func() time.Time
}

func New(ledger LedgerRepo) *Service {
	return &Service{ledger: ledger, now: time.Now}
}

// VerifyResult is the agent bot login response. A failed verification is
// not an error; Verified is false and Message says why.
type VerifyResult struct {
	Verified bool          `json:"verified"`
	Message  string        `json:"message,omitempty"`
	Agent    *domain.Agent `json:"agent,omitempty"`
}

// VerifyByTelegramID checks a Telegram account against the agent roster
// and marks the agent online on success.
func (s *Service) VerifyByTelegramID(ctx context.Context, telegramUserID string) (*VerifyResult, error) {
	now := s.now()
	var verified domain.Agent
	found := false
	err := s.ledger.MutateAgents(ctx, func(agents []domain.Agent) ([]domain.Agent, error) {
		idx := ledgerrepo.AgentIndexByTelegramID(agents, telegramUserID)
		if idx == -1 {
			return agents, nil
		}
		found = true
		if agents[idx].Banned {
			verified = agents[idx]
			return agents, nil
		}
		agents[idx].Online = true
		agents[idx].LastLogin = &now
		agents[idx].UpdatedAt = now
		verified = agents[idx]
		return agents, nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return &VerifyResult{Verified: false, Message: "Not an agent"}, nil
	}
	if verified.Banned {
		return &VerifyResult{Verified: false, Message: "Agent account is banned"}, nil
	}
	safe := verified.Safe()
	return &VerifyResult{Verified: true, Agent: &safe}, nil
}

// Get looks an agent up by internal ID or Telegram user ID.
func (s *Service) Get(ctx context.Context, agentID, telegramUserID string) (*domain.Agent, error) {
	agents, err := s.ledger.Agents(ctx)
	if err != nil {
		return nil, err
	}
	idx := findAgent(agents, agentID, telegramUserID)
	if idx == -1 {
		return nil, apperr.NotFoundf("Agent not found")
	}
	safe := agents[idx].Safe()
	return &safe, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Agent, error) {
	agents, err := s.ledger.Agents(ctx)
	if err != nil {
		return nil, err
	}
	safe := make([]domain.Agent, len(agents))
	for i, a := range agents {
		safe[i] = a.Safe()
	}
	return safe, nil
}

func (s *Service) Create(ctx context.Context, telegramUserID, username, password string) (*domain.Agent, error) {
	if telegramUserID == "" || username == "" || password == "" {
		return nil, apperr.Validationf("telegramUserId, username and password are required")
	}
	now := s.now()
	agent := domain.Agent{
		ID:                 uuid.NewString(),
		TelegramUserID:     telegramUserID,
		Username:           username,
		Password:           password,
		TransactionHistory: []domain.AgentTransaction{},
		DepositedUsers:     []string{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	err := s.ledger.MutateAgents(ctx, func(agents []domain.Agent) ([]domain.Agent, error) {
		for _, a := range agents {
			if a.TelegramUserID == telegramUserID {
				return nil, apperr.Conflictf("An agent with this Telegram ID already exists")
			}
			if a.Username == username {
				return nil, apperr.Conflictf("An agent with this username already exists")
			}
		}
		return append(agents, agent), nil
	})
	if err != nil {
		return nil, err
	}
	safe := agent.Safe()
	return &safe, nil
}

// AgentPatch carries the editable agent fields; nil means keep. Identity
// fields stay out of reach.
type AgentPatch struct {
	Username *string
	Password *string
	Banned   *bool
	Online   *bool
}

func (s *Service) Update(ctx context.Context, agentID string, patch AgentPatch) (*domain.Agent, error) {
	var updated domain.Agent
	err := s.ledger.MutateAgents(ctx, func(agents []domain.Agent) ([]domain.Agent, error) {
		idx := ledgerrepo.AgentIndex(agents, agentID)
		if idx == -1 {
			return nil, apperr.NotFoundf("Agent not found")
		}
		a := &agents[idx]
		if patch.Username != nil {
			a.Username = *patch.Username
		}
		if patch.Password != nil {
			a.Password = *patch.Password
		}
		if patch.Banned != nil {
			a.Banned = *patch.Banned
		}
		if patch.Online != nil {
			a.Online = *patch.Online
		}
		a.UpdatedAt = s.now()
		updated = a.Safe()
		return agents, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, agentID string) error {
	return s.ledger.MutateAgents(ctx, func(agents []domain.Agent) ([]domain.Agent, error) {
		idx := ledgerrepo.AgentIndex(agents, agentID)
		if idx == -1 {
			return nil, apperr.NotFoundf("Agent not found")
		}
		return append(agents[:idx], agents[idx+1:]...), nil
	})
}

// AdjustBalance is the admin's top-up and drain for an agent's float.
// Subtractions clamp at zero.
func (s *Service) AdjustBalance(ctx context.Context, agentID string, currency domain.Currency, amount float64, adjustType string) (domain.Amounts, error) {
	if !currency.Valid() {
		return domain.Amounts{}, apperr.Validationf("Invalid currency")
	}
	if adjustType != "add" && adjustType != "subtract" {
		return domain.Amounts{}, apperr.Validationf(`Type must be "add" or "subtract"`)
	}
	if amount <= 0 {
		return domain.Amounts{}, apperr.Validationf("Amount must be positive")
	}
	now := s.now()
	var balance domain.Amounts
	err := s.ledger.MutateAgents(ctx, func(agents []domain.Agent) ([]domain.Agent, error) {
		idx := ledgerrepo.AgentIndex(agents, agentID)
		if idx == -1 {
			return nil, apperr.NotFoundf("Agent not found")
		}
		a := &agents[idx]
		txType := domain.AgentTxAdminDeposit
		if adjustType == "add" {
			a.Balance.Add(currency, amount)
		} else {
			a.Balance.Sub(currency, amount)
			txType = domain.AgentTxAdminWithdraw
		}
		pushTransaction(a, domain.AgentTransaction{
			ID:        uuid.NewString(),
			Type:      txType,
			Currency:  currency,
			Amount:    amount,
			Note:      fmt.Sprintf("Admin %s %v %s", adjustType, amount, currency),
			Timestamp: now,
		})
		a.UpdatedAt = now
		balance = a.Balance
		return agents, nil
	})
	if err != nil {
		return domain.Amounts{}, err
	}
	return balance, nil
}

// DepositResult reports both sides of an agent funding transfer.
type DepositResult struct {
	AgentBalance domain.Amounts `json:"agentBalance"`
	UserBalance  domain.Amounts `json:"userBalance"`
}

// DepositToUser moves money from the agent's float straight into the
// user's balance. The deposit is approved on the spot and the agent
// becomes the withdrawal adjudicator for that currency.
func (s *Service) DepositToUser(ctx context.Context, agentID, telegramUserID, userID string, currency domain.Currency, amount float64) (*DepositResult, error) {
	if !currency.Valid() {
		return nil, apperr.Validationf("Invalid currency")
	}
	if amount <= 0 {
		return nil, apperr.Validationf("Amount must be positive")
	}
	now := s.now()
	var (
		result DepositResult
		agent  domain.Agent
	)

	// Target user is resolved before any write so a bad user id cannot
	// leave the agent debited.
	users, err := s.ledger.Users(ctx)
	if err != nil {
		return nil, err
	}
	userIdx := ledgerrepo.UserIndex(users, userID)
	if userIdx == -1 {
		return nil, apperr.NotFoundf("User not found")
	}
	username := users[userIdx].Username

	err = s.ledger.MutateAgents(ctx, func(agents []domain.Agent) ([]domain.Agent, error) {
		idx := findAgent(agents, agentID, telegramUserID)
		if idx == -1 {
			return nil, apperr.NotFoundf("Agent not found")
		}
		a := &agents[idx]
		if a.Balance.Get(currency) < amount {
			return nil, apperr.InsufficientFundsf("Insufficient agent balance")
		}
		a.Balance.Sub(currency, amount)
		a.TotalDeposited.Add(currency, amount)
		if !a.HasDepositedTo(userID) {
			a.DepositedUsers = append(a.DepositedUsers, userID)
		}
		pushTransaction(a, domain.AgentTransaction{
			ID:        uuid.NewString(),
			Type:      domain.AgentTxDepositToUser,
			UserID:    userID,
			Username:  username,
			Currency:  currency,
			Amount:    amount,
			Note:      fmt.Sprintf("Deposited %v %s to %s", amount, currency, username),
			Timestamp: now,
		})
		a.UpdatedAt = now
		agent = *a
		return agents, nil
	})
	if err != nil {
		return nil, err
	}
	result.AgentBalance = agent.Balance

	err = s.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := ledgerrepo.UserIndex(users, userID)
		if idx == -1 {
			return nil, apperr.NotFoundf("User not found")
		}
		u := &users[idx]
		u.Balance.Add(currency, amount)
		u.TotalDeposits.Add(currency, amount)
		if u.DepositedByAgent == nil {
			u.DepositedByAgent = map[domain.Currency]domain.AgentFunding{}
		}
		u.DepositedByAgent[currency] = domain.AgentFunding{
			AgentID:       agent.ID,
			AgentUsername: agent.Username,
			LastDeposit:   now,
		}
		u.DepositHistory = append([]domain.DepositRecord{{
			DepositID:     uuid.NewString(),
			Amount:        amount,
			Currency:      currency,
			Status:        domain.StatusApproved,
			Source:        "agent",
			AgentID:       agent.ID,
			AgentUsername: agent.Username,
			Timestamp:     now,
		}}, u.DepositHistory...)
		u.UpdatedAt = now
		result.UserBalance = u.Balance
		return users, nil
	})
	if err != nil {
		zap.L().Error("agent debited but user credit failed",
			zap.String("agentID", agent.ID), zap.String("userID", userID), zap.Error(err))
		return nil, err
	}
	zap.L().Info("agent funded user",
		zap.String("agentID", agent.ID), zap.String("userID", userID),
		zap.Float64("amount", amount), zap.String("currency", string(currency)))
	return &result, nil
}

// Withdrawals lists the pending withdrawals the agent may adjudicate:
// requests stamped with its ID from users it has funded.
func (s *Service) Withdrawals(ctx context.Context, agentID, telegramUserID string) ([]domain.Withdrawal, error) {
	agents, err := s.ledger.Agents(ctx)
	if err != nil {
		return nil, err
	}
	idx := findAgent(agents, agentID, telegramUserID)
	if idx == -1 {
		return nil, apperr.NotFoundf("Agent not found")
	}
	agent := agents[idx]

	withdrawals, err := s.ledger.Withdrawals(ctx)
	if err != nil {
		return nil, err
	}
	scoped := []domain.Withdrawal{}
	for _, w := range withdrawals {
		if w.AgentID == agent.ID && agent.HasDepositedTo(w.UserID) {
			scoped = append(scoped, w)
		}
	}
	return scoped, nil
}

// Approve settles a user withdrawal through the agent: the agent receives
// the amount back into its float in exchange for paying the user out of
// band.
func (s *Service) Approve(ctx context.Context, agentID, telegramUserID, withdrawalID string) (*domain.Withdrawal, error) {
	now := s.now()
	agents, err := s.ledger.Agents(ctx)
	if err != nil {
		return nil, err
	}
	idx := findAgent(agents, agentID, telegramUserID)
	if idx == -1 {
		return nil, apperr.NotFoundf("Agent not found")
	}
	agent := agents[idx]

	var approved domain.Withdrawal
	err = s.ledger.MutateWithdrawals(ctx, func(withdrawals []domain.Withdrawal) ([]domain.Withdrawal, error) {
		wIdx := ledgerrepo.WithdrawalIndex(withdrawals, withdrawalID)
		if wIdx == -1 {
			return nil, apperr.NotFoundf("Withdrawal not found")
		}
		// Same scope as the listing: only the stamped agent of a funded
		// user may settle the request.
		if withdrawals[wIdx].AgentID != agent.ID || !agent.HasDepositedTo(withdrawals[wIdx].UserID) {
			return nil, apperr.NotFoundf("Withdrawal not found")
		}
		if withdrawals[wIdx].Status != domain.StatusPending {
			return nil, apperr.Conflictf("Withdrawal already processed")
		}
		withdrawals[wIdx].Status = domain.StatusApproved
		withdrawals[wIdx].ApprovedBy = "agent"
		withdrawals[wIdx].ApprovedByAgentID = agent.ID
		withdrawals[wIdx].UpdatedAt = now
		approved = withdrawals[wIdx]
		return withdrawals, nil
	})
	if err != nil {
		return nil, err
	}

	err = s.ledger.MutateAgents(ctx, func(agents []domain.Agent) ([]domain.Agent, error) {
		aIdx := ledgerrepo.AgentIndex(agents, agent.ID)
		if aIdx == -1 {
			return nil, apperr.NotFoundf("Agent not found")
		}
		a := &agents[aIdx]
		a.Balance.Add(approved.Currency, approved.Amount)
		a.TotalWithdrawalsHandled.Add(approved.Currency, approved.Amount)
		pushTransaction(a, domain.AgentTransaction{
			ID:        uuid.NewString(),
			Type:      domain.AgentTxWithdrawalApprove,
			UserID:    approved.UserID,
			Username:  approved.Username,
			Currency:  approved.Currency,
			Amount:    approved.Amount,
			Note:      fmt.Sprintf("Approved withdrawal of %v %s for %s", approved.Amount, approved.Currency, approved.Username),
			Timestamp: now,
		})
		a.UpdatedAt = now
		return agents, nil
	})
	if err != nil {
		return nil, err
	}

	err = s.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		uIdx := ledgerrepo.UserIndex(users, approved.UserID)
		if uIdx == -1 {
			return users, nil
		}
		u := &users[uIdx]
		u.TotalWithdrawals.Add(approved.Currency, approved.Amount)
		for i := range u.WithdrawHistory {
			if u.WithdrawHistory[i].WithdrawID == withdrawalID {
				u.WithdrawHistory[i].Status = domain.StatusApproved
				break
			}
		}
		u.UpdatedAt = now
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return &approved, nil
}

// Reject declines a user withdrawal through the agent and refunds the
// user's balance.
func (s *Service) Reject(ctx context.Context, agentID, telegramUserID, withdrawalID, reason string) (*domain.Withdrawal, error) {
	if reason == "" {
		reason = "Rejected by agent"
	}
	now := s.now()
	agents, err := s.ledger.Agents(ctx)
	if err != nil {
		return nil, err
	}
	idx := findAgent(agents, agentID, telegramUserID)
	if idx == -1 {
		return nil, apperr.NotFoundf("Agent not found")
	}
	agent := agents[idx]

	var rejected domain.Withdrawal
	err = s.ledger.MutateWithdrawals(ctx, func(withdrawals []domain.Withdrawal) ([]domain.Withdrawal, error) {
		wIdx := ledgerrepo.WithdrawalIndex(withdrawals, withdrawalID)
		if wIdx == -1 {
			return nil, apperr.NotFoundf("Withdrawal not found")
		}
		if withdrawals[wIdx].AgentID != agent.ID || !agent.HasDepositedTo(withdrawals[wIdx].UserID) {
			return nil, apperr.NotFoundf("Withdrawal not found")
		}
		if withdrawals[wIdx].Status != domain.StatusPending {
			return nil, apperr.Conflictf("Withdrawal already processed")
		}
		withdrawals[wIdx].Status = domain.StatusRejected
		withdrawals[wIdx].AdminNote = reason
		withdrawals[wIdx].RejectedBy = "agent"
		withdrawals[wIdx].RejectedByAgentID = agent.ID
		withdrawals[wIdx].UpdatedAt = now
		rejected = withdrawals[wIdx]
		return withdrawals, nil
	})
	if err != nil {
		return nil, err
	}

	err = s.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		uIdx := ledgerrepo.UserIndex(users, rejected.UserID)
		if uIdx == -1 {
			return users, nil
		}
		u := &users[uIdx]
		u.Balance.Add(rejected.Currency, rejected.Amount)
		for i := range u.WithdrawHistory {
			if u.WithdrawHistory[i].WithdrawID == withdrawalID {
				u.WithdrawHistory[i].Status = domain.StatusRejected
				u.WithdrawHistory[i].Reason = reason
				break
			}
		}
		u.UpdatedAt = now
		return users, nil
	})
	if err != nil {
		return nil, err
	}

	err = s.ledger.MutateAgents(ctx, func(agents []domain.Agent) ([]domain.Agent, error) {
		aIdx := ledgerrepo.AgentIndex(agents, agent.ID)
		if aIdx == -1 {
			return agents, nil
		}
		pushTransaction(&agents[aIdx], domain.AgentTransaction{
			ID:        uuid.NewString(),
			Type:      domain.AgentTxWithdrawalReject,
			UserID:    rejected.UserID,
			Username:  rejected.Username,
			Currency:  rejected.Currency,
			Amount:    rejected.Amount,
			Note:      fmt.Sprintf("Rejected withdrawal of %v %s for %s: %s", rejected.Amount, rejected.Currency, rejected.Username, reason),
			Timestamp: now,
		})
		agents[aIdx].UpdatedAt = now
		return agents, nil
	})
	if err != nil {
		return nil, err
	}
	return &rejected, nil
}

func (s *Service) History(ctx context.Context, agentID, telegramUserID string) ([]domain.AgentTransaction, error) {
	agents, err := s.ledger.Agents(ctx)
	if err != nil {
		return nil, err
	}
	idx := findAgent(agents, agentID, telegramUserID)
	if idx == -1 {
		return nil, apperr.NotFoundf("Agent not found")
	}
	return agents[idx].TransactionHistory, nil
}

// AgentUser is the trimmed user row shown to agents; agents never see
// another agent's users in full.
type AgentUser struct {
	ID               string                                   `json:"id"`
	Username         string                                   `json:"username"`
	Phone            string                                   `json:"phone"`
	Email            string                                   `json:"email"`
	Balance          domain.Amounts                           `json:"balance"`
	VipLevel         domain.VipLevel                          `json:"vipLevel"`
	DepositedByAgent map[domain.Currency]domain.AgentFunding  `json:"depositedByAgent,omitempty"`
	Online           bool                                     `json:"online"`
	CreatedAt        time.Time                                `json:"createdAt"`
}

func (s *Service) UsersForAgent(ctx context.Context) ([]AgentUser, error) {
	users, err := s.ledger.Users(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AgentUser, len(users))
	for i, u := range users {
		out[i] = AgentUser{
			ID:               u.ID,
			Username:         u.Username,
			Phone:            u.Phone,
			Email:            u.Email,
			Balance:          u.Balance,
			VipLevel:         u.VipLevel,
			DepositedByAgent: u.DepositedByAgent,
			Online:           u.Online,
			CreatedAt:        u.CreatedAt,
		}
	}
	return out, nil
}

func findAgent(agents []domain.Agent, agentID, telegramUserID string) int {
	if agentID != "" {
		return ledgerrepo.AgentIndex(agents, agentID)
	}
	return ledgerrepo.AgentIndexByTelegramID(agents, telegramUserID)
}

func pushTransaction(a *domain.Agent, tx domain.AgentTransaction) {
	a.TransactionHistory = append([]domain.AgentTransaction{tx}, a.TransactionHistory...)
	if len(a.TransactionHistory) > txHistoryLimit {
		a.TransactionHistory = a.TransactionHistory[:txHistoryLimit]
	}
}
