package gameservice

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"goalbet/internal/apperr"
	"goalbet/internal/config"
	"goalbet/internal/domain"
)

func NewMock(t *testing.T) (*Service, *MockLedgerRepo, *MockGameRepo) {
	ctrl := gomock.NewController(t)
	ledger := NewMockLedgerRepo(ctrl)
	games := NewMockGameRepo(ctrl)
	service := New(ledger, games)
	defer ctrl.Finish()
	return service, ledger, games
}

func testUser(balance float64) domain.User {
	return domain.User{
		ID:       "u1",
		Username: "player",
		Balance:  domain.Amounts{MMK: balance},
		VipLevel: domain.VIP,
	}
}

func expectMutateUsers(ledger *MockLedgerRepo, users []domain.User, saved *[]domain.User) {
	ledger.EXPECT().MutateUsers(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fn func([]domain.User) ([]domain.User, error)) error {
			out, err := fn(users)
			if err != nil {
				return err
			}
			if saved != nil {
				*saved = out
			}
			return nil
		})
}

func TestDecideOutcome(t *testing.T) {
	tests := []struct {
		name           string
		controls       domain.Controls
		choice         domain.BetChoice
		amount         float64
		currency       domain.Currency
		rng            func() float64
		wantResult     domain.BetChoice
		wantControlled bool
	}{
		{
			name: "Exact rule forces loss",
			controls: domain.Controls{Enabled: true, Rules: []domain.ControlRule{
				{Type: domain.RuleExact, BetChoice: domain.BetGoal, Currency: domain.MMK, BetAmount: 5000, Action: domain.ActionLose, Active: true},
			}},
			choice: domain.BetGoal, amount: 5000, currency: domain.MMK,
			rng:        func() float64 { panic("rng must not be used") },
			wantResult: domain.BetNoGoal, wantControlled: true,
		},
		{
			name: "Range rule forces win",
			controls: domain.Controls{Enabled: true, Rules: []domain.ControlRule{
				{Type: domain.RuleRange, BetChoice: domain.BetAny, Currency: domain.USD, MinAmount: 10, MaxAmount: 100, Action: domain.ActionWin, Active: true},
			}},
			choice: domain.BetNoGoal, amount: 50, currency: domain.USD,
			rng:        func() float64 { panic("rng must not be used") },
			wantResult: domain.BetNoGoal, wantControlled: true,
		},
		{
			name: "Inactive rule is skipped",
			controls: domain.Controls{Enabled: true, Rules: []domain.ControlRule{
				{Type: domain.RuleExact, BetChoice: domain.BetGoal, Currency: domain.MMK, BetAmount: 5000, Action: domain.ActionLose, Active: false},
			}},
			choice: domain.BetGoal, amount: 5000, currency: domain.MMK,
			rng:        func() float64 { return 0.1 },
			wantResult: domain.BetGoal, wantControlled: false,
		},
		{
			name: "Currency mismatch is skipped",
			controls: domain.Controls{Enabled: true, Rules: []domain.ControlRule{
				{Type: domain.RuleExact, BetChoice: domain.BetGoal, Currency: domain.USD, BetAmount: 5000, Action: domain.ActionLose, Active: true},
			}},
			choice: domain.BetGoal, amount: 5000, currency: domain.MMK,
			rng:        func() float64 { return 0.9 },
			wantResult: domain.BetNoGoal, wantControlled: false,
		},
		{
			name: "First matching rule wins over later ones",
			controls: domain.Controls{Enabled: true, Rules: []domain.ControlRule{
				{Type: domain.RuleExact, BetChoice: domain.BetGoal, Currency: domain.MMK, BetAmount: 5000, Action: domain.ActionWin, Active: true},
				{Type: domain.RuleExact, BetChoice: domain.BetGoal, Currency: domain.MMK, BetAmount: 5000, Action: domain.ActionLose, Active: true},
			}},
			choice: domain.BetGoal, amount: 5000, currency: domain.MMK,
			rng:        func() float64 { panic("rng must not be used") },
			wantResult: domain.BetGoal, wantControlled: true,
		},
		{
			name:     "Disabled controls fall back to coin flip",
			controls: domain.Controls{Enabled: false, Rules: []domain.ControlRule{{Type: domain.RuleExact, BetChoice: domain.BetGoal, Currency: domain.MMK, BetAmount: 5000, Action: domain.ActionLose, Active: true}}},
			choice:   domain.BetGoal, amount: 5000, currency: domain.MMK,
			rng:        func() float64 { return 0.7 },
			wantResult: domain.BetNoGoal, wantControlled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, controlled := decideOutcome(tt.controls, tt.choice, tt.amount, tt.currency, tt.rng)
			assert.Equal(t, tt.wantResult, result)
			assert.Equal(t, tt.wantControlled, controlled)
		})
	}
}

func TestFairCoinDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(1)).Float64
	const n = 100000
	goals := 0
	for i := 0; i < n; i++ {
		result, controlled := decideOutcome(domain.Controls{}, domain.BetGoal, 5000, domain.MMK, rng)
		assert.False(t, controlled)
		if result == domain.BetGoal {
			goals++
		}
	}
	assert.InDelta(t, 0.5, float64(goals)/float64(n), 0.01)
}

func TestPlay_Validation(t *testing.T) {
	service, _, _ := NewMock(t)

	tests := []struct {
		name     string
		choice   domain.BetChoice
		amount   float64
		currency domain.Currency
		wantErr  error
	}{
		{name: "Invalid choice", choice: "draw", amount: 5000, currency: domain.MMK, wantErr: apperr.ErrValidation},
		{name: "Invalid currency", choice: domain.BetGoal, amount: 5000, currency: "EUR", wantErr: apperr.ErrValidation},
		{name: "Bet below minimum", choice: domain.BetGoal, amount: 999, currency: domain.MMK, wantErr: apperr.ErrValidation},
		{name: "Bet above maximum", choice: domain.BetGoal, amount: 24681099, currency: domain.MMK, wantErr: apperr.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.Play(context.Background(), "u1", tt.choice, tt.amount, tt.currency)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPlay(t *testing.T) {
	tests := []struct {
		name     string
		users    []domain.User
		controls domain.Controls
		rng      func() float64
		choice   domain.BetChoice
		amount   float64
		wantErr  error
		check    func(t *testing.T, res *PlayResult, saved []domain.User)
	}{
		{
			name:  "Forced win settles payout and counters",
			users: []domain.User{testUser(10000)},
			controls: domain.Controls{Enabled: true, Rules: []domain.ControlRule{
				{Type: domain.RuleExact, BetChoice: domain.BetGoal, Currency: domain.MMK, BetAmount: 5000, Action: domain.ActionWin, Active: true},
			}},
			rng:    func() float64 { panic("rng must not be used") },
			choice: domain.BetGoal, amount: 5000,
			check: func(t *testing.T, res *PlayResult, saved []domain.User) {
				assert.True(t, res.Game.Won)
				assert.True(t, res.Game.Controlled)
				assert.Equal(t, 15000.0, res.NewBalance)
				u := saved[0]
				assert.Equal(t, 15000.0, u.Balance.MMK)
				assert.Equal(t, 5000.0, u.TotalWinnings.MMK)
				assert.Equal(t, 5000.0, u.TotalTurnover.MMK)
				assert.Equal(t, 1, u.TotalGamesPlayed)
				assert.Equal(t, 1, u.TotalGamesWon)
				assert.Len(t, u.GameHistory, 1)
				assert.Equal(t, res.Game.ID, u.GameHistory[0].ID)
			},
		},
		{
			name:  "Forced loss debits the stake",
			users: []domain.User{testUser(10000)},
			controls: domain.Controls{Enabled: true, Rules: []domain.ControlRule{
				{Type: domain.RuleExact, BetChoice: domain.BetAny, Currency: domain.MMK, BetAmount: 5000, Action: domain.ActionLose, Active: true},
			}},
			rng:    func() float64 { panic("rng must not be used") },
			choice: domain.BetGoal, amount: 5000,
			check: func(t *testing.T, res *PlayResult, saved []domain.User) {
				assert.False(t, res.Game.Won)
				assert.Equal(t, 5000.0, res.NewBalance)
				u := saved[0]
				assert.Equal(t, 5000.0, u.TotalLosses.MMK)
				assert.Equal(t, 5000.0, u.TotalTurnover.MMK)
				assert.Equal(t, 1, u.TotalGamesLost)
				assert.Equal(t, -5000.0, u.GameHistory[0].ProfitLoss)
			},
		},
		{
			name:    "Insufficient balance",
			users:   []domain.User{testUser(1000)},
			rng:     func() float64 { return 0.1 },
			choice:  domain.BetGoal,
			amount:  5000,
			wantErr: apperr.ErrInsufficientFunds,
		},
		{
			name: "Banned account is rejected",
			users: []domain.User{func() domain.User {
				u := testUser(10000)
				u.BannedStatus.IsBanned = true
				return u
			}()},
			rng:     func() float64 { return 0.1 },
			choice:  domain.BetGoal,
			amount:  5000,
			wantErr: apperr.ErrBanned,
		},
		{
			name:    "Unknown user",
			users:   []domain.User{},
			rng:     func() float64 { return 0.1 },
			choice:  domain.BetGoal,
			amount:  5000,
			wantErr: apperr.ErrNotFound,
		},
		{
			name: "Qualifying wager releases the claim lock",
			users: []domain.User{func() domain.User {
				u := testUser(200000)
				u.PendingClaimBet = &domain.PendingClaimBet{Currency: domain.MMK, MinBet: 100000, RewardAmount: 1000000}
				return u
			}()},
			controls: domain.Controls{Enabled: true, Rules: []domain.ControlRule{
				{Type: domain.RuleExact, BetChoice: domain.BetAny, Currency: domain.MMK, BetAmount: 100000, Action: domain.ActionLose, Active: true},
			}},
			rng:    func() float64 { panic("rng must not be used") },
			choice: domain.BetGoal, amount: 100000,
			check: func(t *testing.T, _ *PlayResult, saved []domain.User) {
				assert.Nil(t, saved[0].PendingClaimBet)
			},
		},
		{
			name: "Small wager keeps the claim lock",
			users: []domain.User{func() domain.User {
				u := testUser(200000)
				u.PendingClaimBet = &domain.PendingClaimBet{Currency: domain.MMK, MinBet: 100000, RewardAmount: 1000000}
				return u
			}()},
			controls: domain.Controls{Enabled: true, Rules: []domain.ControlRule{
				{Type: domain.RuleExact, BetChoice: domain.BetAny, Currency: domain.MMK, BetAmount: 50000, Action: domain.ActionLose, Active: true},
			}},
			rng:    func() float64 { panic("rng must not be used") },
			choice: domain.BetGoal, amount: 50000,
			check: func(t *testing.T, _ *PlayResult, saved []domain.User) {
				assert.NotNil(t, saved[0].PendingClaimBet)
			},
		},
		{
			name: "Crossing the last requirement grants the king reward signal",
			users: []domain.User{func() domain.User {
				u := testUser(100000)
				u.VipLevel = domain.VVIP
				u.TotalWinnings = domain.Amounts{MMK: 999000, USD: 1000, CNY: 2000}
				return u
			}()},
			controls: domain.Controls{Enabled: true, Rules: []domain.ControlRule{
				{Type: domain.RuleExact, BetChoice: domain.BetAny, Currency: domain.MMK, BetAmount: 1000, Action: domain.ActionWin, Active: true},
			}},
			rng:    func() float64 { panic("rng must not be used") },
			choice: domain.BetGoal, amount: 1000,
			check: func(t *testing.T, res *PlayResult, saved []domain.User) {
				assert.Equal(t, domain.VVIPKing, res.VipLevel)
				assert.NotNil(t, res.KingReward)
				assert.Equal(t, config.ClaimReward(domain.MMK), res.KingReward.MMK)
				assert.Equal(t, domain.Flags{MMK: true, USD: true, CNY: true}, saved[0].VvipCurrencies)
			},
		},
		{
			name: "Remaining king gets no repeat signal",
			users: []domain.User{func() domain.User {
				u := testUser(100000)
				u.VipLevel = domain.VVIPKing
				u.TotalWinnings = domain.Amounts{MMK: 2000000, USD: 2000, CNY: 4000}
				return u
			}()},
			controls: domain.Controls{Enabled: true, Rules: []domain.ControlRule{
				{Type: domain.RuleExact, BetChoice: domain.BetAny, Currency: domain.MMK, BetAmount: 1000, Action: domain.ActionWin, Active: true},
			}},
			rng:    func() float64 { panic("rng must not be used") },
			choice: domain.BetGoal, amount: 1000,
			check: func(t *testing.T, res *PlayResult, _ []domain.User) {
				assert.Nil(t, res.KingReward)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, ledger, games := NewMock(t)
			service.rng = tt.rng
			games.EXPECT().Controls(gomock.Any()).Return(tt.controls, nil)
			games.EXPECT().Videos(gomock.Any()).Return(domain.VideoPool{}, nil)

			var saved []domain.User
			expectMutateUsers(ledger, tt.users, &saved)

			res, err := service.Play(context.Background(), "u1", tt.choice, tt.amount, domain.MMK)
			if tt.wantErr != nil {
				assert.Nil(t, res)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, saved)
				return
			}
			assert.NoError(t, err)
			if tt.check != nil {
				tt.check(t, res, saved)
			}
		})
	}
}

func TestPlay_HistoryCap(t *testing.T) {
	service, ledger, games := NewMock(t)
	service.rng = func() float64 { panic("rng must not be used") }

	u := testUser(100000)
	for i := 0; i < historyLimit; i++ {
		u.GameHistory = append(u.GameHistory, domain.GameRecord{ID: "old"})
	}

	games.EXPECT().Controls(gomock.Any()).Return(domain.Controls{Enabled: true, Rules: []domain.ControlRule{
		{Type: domain.RuleExact, BetChoice: domain.BetAny, Currency: domain.MMK, BetAmount: 1000, Action: domain.ActionLose, Active: true},
	}}, nil)
	games.EXPECT().Videos(gomock.Any()).Return(domain.VideoPool{}, nil)

	var saved []domain.User
	expectMutateUsers(ledger, []domain.User{u}, &saved)

	res, err := service.Play(context.Background(), "u1", domain.BetGoal, 1000, domain.MMK)
	assert.NoError(t, err)
	assert.Len(t, saved[0].GameHistory, historyLimit)
	assert.Equal(t, res.Game.ID, saved[0].GameHistory[0].ID)
}

func TestPlay_VideoSelection(t *testing.T) {
	service, ledger, games := NewMock(t)
	service.rng = func() float64 { return 0.0 }

	pool := domain.VideoPool{
		Goal:   []domain.Video{{ID: "v-goal", Type: domain.BetGoal, URL: "https://cdn/goal.mp4"}},
		NoGoal: []domain.Video{{ID: "v-nogoal", Type: domain.BetNoGoal, URL: "https://cdn/nogoal.mp4"}},
	}
	games.EXPECT().Controls(gomock.Any()).Return(domain.Controls{Enabled: true, Rules: []domain.ControlRule{
		{Type: domain.RuleExact, BetChoice: domain.BetAny, Currency: domain.MMK, BetAmount: 1000, Action: domain.ActionWin, Active: true},
	}}, nil)
	games.EXPECT().Videos(gomock.Any()).Return(pool, nil)

	expectMutateUsers(ledger, []domain.User{testUser(10000)}, nil)

	res, err := service.Play(context.Background(), "u1", domain.BetGoal, 1000, domain.MMK)
	assert.NoError(t, err)
	assert.NotNil(t, res.Video)
	assert.Equal(t, "v-goal", res.Video.ID)
	assert.Equal(t, "v-goal", res.Game.VideoID)
}

func TestHistory(t *testing.T) {
	tests := []struct {
		name        string
		userID      string
		prepare     func(ledger *MockLedgerRepo)
		wantErr     error
		wantPlayed  int
		wantHistory int
	}{
		{
			name:   "Returns history and stats",
			userID: "u1",
			prepare: func(ledger *MockLedgerRepo) {
				u := testUser(0)
				u.TotalGamesPlayed = 3
				u.GameHistory = []domain.GameRecord{{ID: "g1"}, {ID: "g2"}}
				ledger.EXPECT().Users(gomock.Any()).Return([]domain.User{u}, nil)
			},
			wantPlayed:  3,
			wantHistory: 2,
		},
		{
			name:   "Unknown user",
			userID: "missing",
			prepare: func(ledger *MockLedgerRepo) {
				ledger.EXPECT().Users(gomock.Any()).Return([]domain.User{testUser(0)}, nil)
			},
			wantErr: apperr.ErrNotFound,
		},
		{
			name:   "Storage error",
			userID: "u1",
			prepare: func(ledger *MockLedgerRepo) {
				ledger.EXPECT().Users(gomock.Any()).Return(nil, errors.New("database error"))
			},
			wantErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, ledger, _ := NewMock(t)
			tt.prepare(ledger)

			history, stats, err := service.History(context.Background(), tt.userID)
			if tt.wantErr != nil {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, history, tt.wantHistory)
			assert.Equal(t, tt.wantPlayed, stats.TotalPlayed)
		})
	}
}

func TestPlay_TurnoverAccrual(t *testing.T) {
	service, ledger, games := NewMock(t)
	service.rng = func() float64 { panic("rng must not be used") }

	games.EXPECT().Controls(gomock.Any()).Return(domain.Controls{Enabled: true, Rules: []domain.ControlRule{
		{Type: domain.RuleRange, BetChoice: domain.BetAny, Currency: domain.MMK, MinAmount: 0, MaxAmount: 1000000, Action: domain.ActionLose, Active: true},
	}}, nil).Times(2)
	games.EXPECT().Videos(gomock.Any()).Return(domain.VideoPool{}, nil).Times(2)

	users := []domain.User{testUser(100000)}
	for _, amount := range []float64{10000, 25000} {
		var saved []domain.User
		expectMutateUsers(ledger, users, &saved)
		_, err := service.Play(context.Background(), "u1", domain.BetGoal, amount, domain.MMK)
		assert.NoError(t, err)
		users = saved
	}
	assert.Equal(t, 35000.0, users[0].TotalTurnover.MMK)
}
