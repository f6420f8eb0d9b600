// Package ledgerrepo owns the money-bearing collections: users, deposits,
// withdrawals and agents. Each collection is reconstituted from its whole
// document on every call; mutations run the read-modify-write cycle under
// a per-bin mutex so same-collection updates are serialized within this
// process. Concurrent processes still race at document granularity (last
// write wins); that residual risk is inherent to the storage model.
package ledgerrepo

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"goalbet/internal/apperr"
	"goalbet/internal/binstore"
	"goalbet/internal/config"
	"goalbet/internal/domain"
)

type Repository struct {
	store binstore.Store
	bins  config.Bins

	usersMu       sync.Mutex
	depositsMu    sync.Mutex
	withdrawalsMu sync.Mutex
	agentsMu      sync.Mutex
}

func New(store binstore.Store, bins config.Bins) *Repository {
	return &Repository{store: store, bins: bins}
}

type usersDoc struct {
	Users []domain.User `json:"users"`
}

type depositsDoc struct {
	Deposits []domain.Deposit `json:"deposits"`
}

type withdrawalsDoc struct {
	Withdrawals []domain.Withdrawal `json:"withdrawals"`
}

type agentsDoc struct {
	Agents []domain.Agent `json:"agents"`
}

func (r *Repository) readDoc(ctx context.Context, binID string, out any) error {
	raw, err := r.store.ReadBin(ctx, binID)
	if err != nil {
		zap.L().Error("failed to read collection", zap.String("bin", binID), zap.Error(err))
		return apperr.Storagef("database error")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		zap.L().Error("failed to decode collection", zap.String("bin", binID), zap.Error(err))
		return apperr.Storagef("database error")
	}
	return nil
}

func (r *Repository) writeDoc(ctx context.Context, binID string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		zap.L().Error("failed to encode collection", zap.String("bin", binID), zap.Error(err))
		return apperr.Storagef("database error")
	}
	if err := r.store.WriteBin(ctx, binID, raw); err != nil {
		zap.L().Error("failed to write collection", zap.String("bin", binID), zap.Error(err))
		return apperr.Storagef("database error")
	}
	return nil
}

func (r *Repository) Users(ctx context.Context) ([]domain.User, error) {
	var doc usersDoc
	if err := r.readDoc(ctx, r.bins.Users, &doc); err != nil {
		return nil, err
	}
	return doc.Users, nil
}

// MutateUsers runs fn inside the users read-modify-write cycle. The write
// happens once, after fn returns; if fn or the write fails nothing is
// persisted.
func (r *Repository) MutateUsers(ctx context.Context, fn func(users []domain.User) ([]domain.User, error)) error {
	r.usersMu.Lock()
	defer r.usersMu.Unlock()

	var doc usersDoc
	if err := r.readDoc(ctx, r.bins.Users, &doc); err != nil {
		return err
	}
	updated, err := fn(doc.Users)
	if err != nil {
		return err
	}
	return r.writeDoc(ctx, r.bins.Users, usersDoc{Users: updated})
}

func (r *Repository) Deposits(ctx context.Context) ([]domain.Deposit, error) {
	var doc depositsDoc
	if err := r.readDoc(ctx, r.bins.Deposits, &doc); err != nil {
		return nil, err
	}
	return doc.Deposits, nil
}

func (r *Repository) MutateDeposits(ctx context.Context, fn func(deposits []domain.Deposit) ([]domain.Deposit, error)) error {
	r.depositsMu.Lock()
	defer r.depositsMu.Unlock()

	var doc depositsDoc
	if err := r.readDoc(ctx, r.bins.Deposits, &doc); err != nil {
		return err
	}
	updated, err := fn(doc.Deposits)
	if err != nil {
		return err
	}
	return r.writeDoc(ctx, r.bins.Deposits, depositsDoc{Deposits: updated})
}

func (r *Repository) Withdrawals(ctx context.Context) ([]domain.Withdrawal, error) {
	var doc withdrawalsDoc
	if err := r.readDoc(ctx, r.bins.Withdrawals, &doc); err != nil {
		return nil, err
	}
	return doc.Withdrawals, nil
}

func (r *Repository) MutateWithdrawals(ctx context.Context, fn func(withdrawals []domain.Withdrawal) ([]domain.Withdrawal, error)) error {
	r.withdrawalsMu.Lock()
	defer r.withdrawalsMu.Unlock()

	var doc withdrawalsDoc
	if err := r.readDoc(ctx, r.bins.Withdrawals, &doc); err != nil {
		return err
	}
	updated, err := fn(doc.Withdrawals)
	if err != nil {
		return err
	}
	return r.writeDoc(ctx, r.bins.Withdrawals, withdrawalsDoc{Withdrawals: updated})
}

func (r *Repository) Agents(ctx context.Context) ([]domain.Agent, error) {
	var doc agentsDoc
	if err := r.readDoc(ctx, r.bins.Agents, &doc); err != nil {
		return nil, err
	}
	return doc.Agents, nil
}

func (r *Repository) MutateAgents(ctx context.Context, fn func(agents []domain.Agent) ([]domain.Agent, error)) error {
	r.agentsMu.Lock()
	defer r.agentsMu.Unlock()

	var doc agentsDoc
	if err := r.readDoc(ctx, r.bins.Agents, &doc); err != nil {
		return err
	}
	updated, err := fn(doc.Agents)
	if err != nil {
		return err
	}
	return r.writeDoc(ctx, r.bins.Agents, agentsDoc{Agents: updated})
}

// UserIndex finds a user by id, returning -1 when absent.
func UserIndex(users []domain.User, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}

func DepositIndex(deposits []domain.Deposit, id string) int {
	for i := range deposits {
		if deposits[i].ID == id {
			return i
		}
	}
	return -1
}

func WithdrawalIndex(withdrawals []domain.Withdrawal, id string) int {
	for i := range withdrawals {
		if withdrawals[i].ID == id {
			return i
		}
	}
	return -1
}

func AgentIndex(agents []domain.Agent, id string) int {
	for i := range agents {
		if agents[i].ID == id {
			return i
		}
	}
	return -1
}

func AgentIndexByTelegramID(agents []domain.Agent, telegramUserID string) int {
	for i := range agents {
		if agents[i].TelegramUserID == telegramUserID {
			return i
		}
	}
	return -1
}
