package paymentservice

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"goalbet/internal/apperr"
	"goalbet/internal/binstore"
	"goalbet/internal/config"
	"goalbet/internal/domain"
	"goalbet/internal/notify"
	contentrepo "goalbet/internal/repo/content-repo"
	ledgerrepo "goalbet/internal/repo/ledger-repo"
)

var testBins = config.Bins{
	Users:       "users",
	Deposits:    "deposits",
	Withdrawals: "withdrawals",
	Payments:    "payments",
	Videos:      "videos",
	Controls:    "controls",
	Contacts:    "contacts",
	Agents:      "agents",
}

type fixture struct {
	service *Service
	ledger  *ledgerrepo.Repository
	store   *binstore.MemStore
}

func newFixture(t *testing.T) *fixture {
	store := binstore.NewMemStore()
	ledger := ledgerrepo.New(store, testBins)
	content := contentrepo.New(store, testBins)
	service := New(ledger, content, notify.Noop{})
	return &fixture{service: service, ledger: ledger, store: store}
}

func (f *fixture) seed(t *testing.T, binID string, doc any) {
	raw, err := json.Marshal(doc)
	assert.NoError(t, err)
	f.store.Seed(binID, raw)
}

func (f *fixture) user(t *testing.T, id string) domain.User {
	users, err := f.ledger.Users(context.Background())
	assert.NoError(t, err)
	idx := ledgerrepo.UserIndex(users, id)
	assert.NotEqual(t, -1, idx)
	return users[idx]
}

func baseUser() domain.User {
	return domain.User{
		ID:        "u1",
		Phone:     "959123456",
		Username:  "player",
		Email:     "player@gmail.com",
		Balance:   domain.Amounts{MMK: 500000, USD: 500},
		VipLevel:  domain.VIP,
		IPAddress: "10.0.0.1",
		DeviceID:  "dev-1",
	}
}

func TestDeposit(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		amount   float64
		currency domain.Currency
		txnID    string
		wantErr  error
	}{
		{name: "Below minimum", amount: 9999, currency: domain.MMK, txnID: "123456", wantErr: apperr.ErrValidation},
		{name: "Above maximum", amount: 1000001, currency: domain.MMK, txnID: "123456", wantErr: apperr.ErrValidation},
		{name: "Invalid currency", amount: 100, currency: "EUR", txnID: "123456", wantErr: apperr.ErrValidation},
		{name: "Malformed transaction id", amount: 50000, currency: domain.MMK, txnID: "12345a", wantErr: apperr.ErrValidation},
		{name: "Valid request", amount: 50000, currency: domain.MMK, txnID: "123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.seed(t, testBins.Users, map[string]any{"users": []domain.User{baseUser()}})
			f.seed(t, testBins.Payments, map[string]any{"payments": domain.PaymentPool{
				MMK: []domain.PaymentMethod{{ID: "pm1", Name: "KBZ Pay", Currency: domain.MMK, Active: true}},
			}})

			deposit, err := f.service.Deposit(ctx, "u1", tt.amount, tt.currency, "pm1", tt.txnID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, domain.StatusPending, deposit.Status)
			assert.Equal(t, "KBZ Pay", deposit.PaymentName)

			deposits, err := f.ledger.Deposits(ctx)
			assert.NoError(t, err)
			assert.Len(t, deposits, 1)

			u := f.user(t, "u1")
			assert.Len(t, u.DepositHistory, 1)
			assert.Equal(t, deposit.ID, u.DepositHistory[0].DepositID)
			assert.Equal(t, domain.StatusPending, u.DepositHistory[0].Status)
			// Balance is untouched until approval.
			assert.Equal(t, 500000.0, u.Balance.MMK)
		})
	}
}

func TestDeposit_DuplicatePending(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, testBins.Users, map[string]any{"users": []domain.User{baseUser()}})
	f.seed(t, testBins.Deposits, map[string]any{"deposits": []domain.Deposit{{
		ID: "d1", UserID: "u2", TransactionID: "123456",
		Status: domain.StatusPending, CreatedAt: time.Now().Add(-time.Hour),
	}}})

	_, err := f.service.Deposit(ctx, "u1", 50000, domain.MMK, "pm1", "123456")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// No fraud record for a merely pending duplicate.
	assert.Empty(t, f.user(t, "u1").FraudAttempts)
}

func TestDeposit_StaleDuplicateAllowed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, testBins.Users, map[string]any{"users": []domain.User{baseUser()}})
	f.seed(t, testBins.Deposits, map[string]any{"deposits": []domain.Deposit{{
		ID: "d1", UserID: "u2", TransactionID: "123456",
		Status: domain.StatusApproved, CreatedAt: time.Now().Add(-25 * time.Hour),
	}}})
	f.seed(t, testBins.Payments, map[string]any{"payments": domain.PaymentPool{}})

	deposit, err := f.service.Deposit(ctx, "u1", 50000, domain.MMK, "pm1", "123456")
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusPending, deposit.Status)
}

func TestDeposit_FraudEscalation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, testBins.Users, map[string]any{"users": []domain.User{baseUser()}})
	f.seed(t, testBins.Deposits, map[string]any{"deposits": []domain.Deposit{{
		ID: "d1", UserID: "u2", TransactionID: "654321",
		Status: domain.StatusApproved, CreatedAt: time.Now().Add(-time.Hour),
	}}})

	// First two reuses: fraud warning, account still usable.
	for i := 0; i < 2; i++ {
		_, err := f.service.Deposit(ctx, "u1", 50000, domain.MMK, "pm1", "654321")
		assert.ErrorIs(t, err, apperr.ErrFraud)
		assert.False(t, f.user(t, "u1").Banned())
	}

	// Third reuse inside the window crosses the threshold and bans.
	_, err := f.service.Deposit(ctx, "u1", 50000, domain.MMK, "pm1", "654321")
	assert.ErrorIs(t, err, apperr.ErrFraud)

	u := f.user(t, "u1")
	assert.True(t, u.Banned())
	assert.Len(t, u.FraudAttempts, 3)
	assert.Equal(t, []string{"10.0.0.1"}, u.BannedStatus.BannedIPs)
	assert.Equal(t, []string{"dev-1"}, u.BannedStatus.BannedDevices)

	// Banned account is rejected before any dedup logic runs.
	_, err = f.service.Deposit(ctx, "u1", 50000, domain.MMK, "pm1", "111111")
	assert.ErrorIs(t, err, apperr.ErrBanned)
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()

	metUser := func() domain.User {
		u := baseUser()
		u.TotalDeposits = domain.Amounts{MMK: 100000}
		u.TotalTurnover = domain.Amounts{MMK: 100000}
		return u
	}

	tests := []struct {
		name    string
		user    domain.User
		amount  float64
		wantErr error
	}{
		{name: "Below minimum", user: metUser(), amount: 9999, wantErr: apperr.ErrValidation},
		{name: "Insufficient balance", user: metUser(), amount: 1000000, wantErr: apperr.ErrInsufficientFunds},
		{
			name: "Turnover not met",
			user: func() domain.User {
				u := metUser()
				u.TotalTurnover = domain.Amounts{MMK: 50000}
				return u
			}(),
			amount:  50000,
			wantErr: apperr.ErrValidation,
		},
		{
			name: "Claim lock blocks withdrawal",
			user: func() domain.User {
				u := metUser()
				u.PendingClaimBet = &domain.PendingClaimBet{Currency: domain.MMK, MinBet: 100000}
				return u
			}(),
			amount:  50000,
			wantErr: apperr.ErrConflict,
		},
		{
			name: "Daily limit reached",
			user: func() domain.User {
				u := metUser()
				now := time.Now()
				u.TodayWithdrawCount = config.VipWithdrawLimit
				u.LastWithdrawDate = &now
				return u
			}(),
			amount:  50000,
			wantErr: apperr.ErrConflict,
		},
		{
			name: "Stale counter resets lazily",
			user: func() domain.User {
				u := metUser()
				yesterday := time.Now().Add(-48 * time.Hour)
				u.TodayWithdrawCount = config.VipWithdrawLimit
				u.LastWithdrawDate = &yesterday
				return u
			}(),
			amount: 50000,
		},
		{name: "Valid request", user: metUser(), amount: 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.seed(t, testBins.Users, map[string]any{"users": []domain.User{tt.user}})

			withdrawal, newBalance, err := f.service.Withdraw(ctx, "u1", tt.amount, domain.MMK)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				// Failed submissions never move money.
				assert.Equal(t, tt.user.Balance.MMK, f.user(t, "u1").Balance.MMK)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, domain.StatusPending, withdrawal.Status)
			assert.Equal(t, tt.user.Balance.MMK-tt.amount, newBalance)

			u := f.user(t, "u1")
			assert.Equal(t, newBalance, u.Balance.MMK)
			assert.Equal(t, 1, u.TodayWithdrawCount)
			assert.Len(t, u.WithdrawHistory, 1)
			assert.Equal(t, withdrawal.ID, u.WithdrawHistory[0].WithdrawID)

			withdrawals, err := f.ledger.Withdrawals(ctx)
			assert.NoError(t, err)
			assert.Len(t, withdrawals, 1)
		})
	}
}

func TestWithdraw_AgentScoped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u := baseUser()
	u.TotalDeposits = domain.Amounts{USD: 100}
	u.TotalTurnover = domain.Amounts{USD: 100}
	u.DepositedByAgent = map[domain.Currency]domain.AgentFunding{
		domain.USD: {AgentID: "a1", AgentUsername: "agent1"},
	}
	f.seed(t, testBins.Users, map[string]any{"users": []domain.User{u}})

	withdrawal, _, err := f.service.Withdraw(ctx, "u1", 40, domain.USD)
	assert.NoError(t, err)
	assert.Equal(t, "a1", withdrawal.AgentID)

	// MMK funds came from the cashier desk, not the agent.
	u2 := f.user(t, "u1")
	u2.TotalDeposits.MMK = 100000
	u2.TotalTurnover.MMK = 100000
	f.seed(t, testBins.Users, map[string]any{"users": []domain.User{u2}})

	withdrawal, _, err = f.service.Withdraw(ctx, "u1", 50000, domain.MMK)
	assert.NoError(t, err)
	assert.Empty(t, withdrawal.AgentID)
}

// debitFailLedger makes every user write fail while leaving reads and the
// other collections on the real repository.
type debitFailLedger struct {
	*ledgerrepo.Repository
}

func (d *debitFailLedger) MutateUsers(ctx context.Context, fn func(users []domain.User) ([]domain.User, error)) error {
	return errors.New("bin write failed")
}

func TestWithdraw_DebitFailureKeepsRequest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u := baseUser()
	u.TotalDeposits = domain.Amounts{MMK: 100000}
	u.TotalTurnover = domain.Amounts{MMK: 100000}
	f.seed(t, testBins.Users, map[string]any{"users": []domain.User{u}})

	svc := New(&debitFailLedger{Repository: f.ledger}, contentrepo.New(f.store, testBins), notify.Noop{})
	_, _, err := svc.Withdraw(ctx, "u1", 50000, domain.MMK)
	assert.Error(t, err)

	// The request collection is written before the debit, so the pending
	// record survives for an operator to settle or reject.
	withdrawals, err := f.ledger.Withdrawals(ctx)
	assert.NoError(t, err)
	assert.Len(t, withdrawals, 1)
	assert.Equal(t, domain.StatusPending, withdrawals[0].Status)
	assert.Equal(t, "u1", withdrawals[0].UserID)

	// The balance was never touched.
	assert.Equal(t, u.Balance.MMK, f.user(t, "u1").Balance.MMK)
}

func TestCheckWithdrawEligibility(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u := baseUser()
	u.TotalDeposits = domain.Amounts{MMK: 100000}
	u.TotalTurnover = domain.Amounts{MMK: 60000}
	f.seed(t, testBins.Users, map[string]any{"users": []domain.User{u}})

	elig, err := f.service.CheckWithdrawEligibility(ctx, "u1", domain.MMK)
	assert.NoError(t, err)
	assert.False(t, elig.Eligible)
	assert.Equal(t, 40000.0, elig.Turnover.Remaining)
	assert.Equal(t, domain.VIP, elig.VipLevel)
	assert.Equal(t, config.VipWithdrawLimit, elig.DailyLimit)
	assert.Equal(t, config.VipWithdrawLimit, elig.RemainingWithdraws)
	assert.Equal(t, 500000.0, elig.Balance)
}

func TestClaimReward(t *testing.T) {
	ctx := context.Background()

	king := func() domain.User {
		u := baseUser()
		u.VipLevel = domain.VVIPKing
		return u
	}

	t.Run("King claims once", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, testBins.Users, map[string]any{"users": []domain.User{king()}})

		res, err := f.service.ClaimReward(ctx, "u1", domain.MMK)
		assert.NoError(t, err)
		assert.Equal(t, 500000.0+config.ClaimReward(domain.MMK), res.NewBalance)
		assert.NotNil(t, res.PendingClaimBet)
		assert.Equal(t, config.ClaimMinBet(domain.MMK), res.PendingClaimBet.MinBet)

		u := f.user(t, "u1")
		assert.Equal(t, []domain.Currency{domain.MMK}, u.ClaimedRewards)

		// A second claim in any currency is refused.
		_, err = f.service.ClaimReward(ctx, "u1", domain.USD)
		assert.ErrorIs(t, err, apperr.ErrConflict)
		_, err = f.service.ClaimReward(ctx, "u1", domain.MMK)
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("Non-king cannot claim", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, testBins.Users, map[string]any{"users": []domain.User{baseUser()}})

		_, err := f.service.ClaimReward(ctx, "u1", domain.MMK)
		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.Equal(t, 500000.0, f.user(t, "u1").Balance.MMK)
	})
}

func TestHistories(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, testBins.Deposits, map[string]any{"deposits": []domain.Deposit{
		{ID: "d1", UserID: "u1"}, {ID: "d2", UserID: "u2"}, {ID: "d3", UserID: "u1"},
	}})
	f.seed(t, testBins.Withdrawals, map[string]any{"withdrawals": []domain.Withdrawal{
		{ID: "w1", UserID: "u2"}, {ID: "w2", UserID: "u1"},
	}})

	deposits, err := f.service.DepositHistory(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, deposits, 2)

	withdrawals, err := f.service.WithdrawHistory(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, withdrawals, 1)
	assert.Equal(t, "w2", withdrawals[0].ID)
}
