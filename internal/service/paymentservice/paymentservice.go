// Package paymentservice implements user-initiated money movement: deposit
// requests with duplicate-transaction fraud escalation, withdrawal requests
// with the turnover and claim-lock gates, and the one-time VVIP KING reward
// claim.
package paymentservice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goalbet/internal/apperr"
	"goalbet/internal/config"
	"goalbet/internal/domain"
	"goalbet/internal/notify"
	ledgerrepo "goalbet/internal/repo/ledger-repo"
	"goalbet/pkg/validate"
)

type LedgerRepo interface {
	Users(ctx context.Context) ([]domain.User, error)
	MutateUsers(ctx context.Context, fn func(users []domain.User) ([]domain.User, error)) error
	Deposits(ctx context.Context) ([]domain.Deposit, error)
	MutateDeposits(ctx context.Context, fn func(deposits []domain.Deposit) ([]domain.Deposit, error)) error
	Withdrawals(ctx context.Context) ([]domain.Withdrawal, error)
	MutateWithdrawals(ctx context.Context, fn func(withdrawals []domain.Withdrawal) ([]domain.Withdrawal, error)) error
}

type ContentRepo interface {
	Payments(ctx context.Context) (domain.PaymentPool, error)
}

type Service struct {
	ledger   LedgerRepo
	content  ContentRepo
	notifier notify.Notifier
	now      func() time.Time
}

func New(ledger LedgerRepo, content ContentRepo, notifier notify.Notifier) *Service {
	return &Service{
		ledger:   ledger,
		content:  content,
		notifier: notifier,
		now:      time.Now,
	}
}

// TurnoverStatus reports progress against the wagering requirement that
// gates withdrawals: cumulative turnover must reach deposits times the
// configured multiplier.
type TurnoverStatus struct {
	Met       bool    `json:"met"`
	Required  float64 `json:"required"`
	Current   float64 `json:"current"`
	Remaining float64 `json:"remaining"`
}

func turnoverStatus(u *domain.User, c domain.Currency) TurnoverStatus {
	required := u.TotalDeposits.Get(c) * config.TurnoverMultiplier
	current := u.TotalTurnover.Get(c)
	remaining := max(0, required-current)
	return TurnoverStatus{
		Met:       remaining <= 0,
		Required:  required,
		Current:   current,
		Remaining: remaining,
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func withinWindow(t, now time.Time) bool {
	return now.Sub(t) < config.BanWindowHours*time.Hour
}

// Deposit submits a pending deposit request. A transaction id reused within
// the trailing 24h window is rejected; reusing an already approved one is
// recorded as a fraud attempt and escalates to an automatic ban at the
// threshold.
func (s *Service) Deposit(ctx context.Context, userID string, amount float64, currency domain.Currency, paymentMethodID, transactionID string) (*domain.Deposit, error) {
	if !currency.Valid() {
		return nil, apperr.Validationf("Invalid currency")
	}
	limits := config.LimitsFor(currency)
	if amount < limits.DepositMin {
		return nil, apperr.Validationf("Minimum deposit is %v %s", limits.DepositMin, currency)
	}
	if amount > limits.DepositMax {
		return nil, apperr.Validationf("Maximum deposit is %v %s", limits.DepositMax, currency)
	}
	if ok, msg := validate.TransactionID(transactionID); !ok {
		return nil, apperr.Validationf("%s", msg)
	}

	users, err := s.ledger.Users(ctx)
	if err != nil {
		return nil, err
	}
	idx := ledgerrepo.UserIndex(users, userID)
	if idx == -1 {
		return nil, apperr.NotFoundf("User not found")
	}
	user := users[idx]
	if user.Banned() {
		return nil, apperr.Bannedf("Account is banned")
	}

	deposits, err := s.ledger.Deposits(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	approvedDup := false
	duplicate := false
	for _, d := range deposits {
		if d.TransactionID != transactionID || !withinWindow(d.CreatedAt, now) {
			continue
		}
		duplicate = true
		if d.Status == domain.StatusApproved {
			approvedDup = true
		}
	}

	if duplicate {
		if !approvedDup {
			return nil, apperr.Conflictf("This transaction ID has already been submitted within the last 24 hours")
		}
		return nil, s.recordFraudAttempt(ctx, userID, transactionID, now)
	}

	pool, err := s.content.Payments(ctx)
	if err != nil {
		return nil, err
	}
	paymentName := "Unknown"
	for _, m := range pool.ByCurrency(currency) {
		if m.ID == paymentMethodID {
			paymentName = m.Name
			break
		}
	}

	deposit := domain.Deposit{
		ID:              uuid.NewString(),
		UserID:          userID,
		Username:        user.Username,
		Amount:          amount,
		Currency:        currency,
		PaymentMethodID: paymentMethodID,
		PaymentName:     paymentName,
		TransactionID:   transactionID,
		Status:          domain.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.ledger.MutateDeposits(ctx, func(deposits []domain.Deposit) ([]domain.Deposit, error) {
		return append(deposits, deposit), nil
	})
	if err != nil {
		return nil, err
	}

	err = s.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := ledgerrepo.UserIndex(users, userID)
		if idx == -1 {
			return nil, apperr.NotFoundf("User not found")
		}
		u := &users[idx]
		u.DepositHistory = append([]domain.DepositRecord{{
			DepositID: deposit.ID,
			Amount:    amount,
			Currency:  currency,
			Status:    domain.StatusPending,
			Timestamp: deposit.CreatedAt,
		}}, u.DepositHistory...)
		u.UpdatedAt = now
		return users, nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(notify.EventDeposit,
		fmt.Sprintf("New deposit request: %s %v %s (TXN: %s)", user.Username, amount, currency, transactionID))
	return &deposit, nil
}

// recordFraudAttempt appends a duplicate-approved-txn record and flips the
// ban flag when the count inside the window, the new attempt included,
// reaches the threshold. Both outcomes are errors to the caller.
func (s *Service) recordFraudAttempt(ctx context.Context, userID, transactionID string, now time.Time) error {
	banned := false
	err := s.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := ledgerrepo.UserIndex(users, userID)
		if idx == -1 {
			return nil, apperr.NotFoundf("User not found")
		}
		u := &users[idx]
		u.FraudAttempts = append(u.FraudAttempts, domain.FraudAttempt{
			Type:          domain.FraudDuplicateApprovedTxn,
			TransactionID: transactionID,
			Timestamp:     now,
		})

		count := 0
		for _, f := range u.FraudAttempts {
			if f.Type == domain.FraudDuplicateApprovedTxn && withinWindow(f.Timestamp, now) {
				count++
			}
		}
		if count >= config.BanThreshold {
			banned = true
			status := domain.BannedStatus{
				IsBanned: true,
				Reason:   fmt.Sprintf("Auto-banned: Submitted approved transaction ID %q more than %d times within 24 hours", transactionID, config.BanThreshold),
				BannedAt: &now,
			}
			if u.IPAddress != "" {
				status.BannedIPs = []string{u.IPAddress}
			}
			if u.DeviceID != "" {
				status.BannedDevices = []string{u.DeviceID}
			}
			u.BannedStatus = status
		}
		u.UpdatedAt = now
		return users, nil
	})
	if err != nil {
		return err
	}

	if banned {
		zap.L().Warn("user auto-banned for duplicate approved transactions",
			zap.String("userID", userID), zap.String("transactionID", transactionID))
		s.notifier.Notify(notify.EventBan,
			fmt.Sprintf("User auto-banned for reusing approved transaction ID %s", transactionID))
		return apperr.Fraudf("Your account has been automatically banned for suspicious activity")
	}
	return apperr.Fraudf("This transaction ID has already been approved. Warning: Repeated attempts will result in account ban.")
}

// Withdraw submits a pending withdrawal. The amount is debited immediately;
// a rejection refunds it later. When the user's funds in the currency were
// last provided by an agent the request is stamped with that agent's id so
// the agent adjudicates it instead of the admin.
func (s *Service) Withdraw(ctx context.Context, userID string, amount float64, currency domain.Currency) (*domain.Withdrawal, float64, error) {
	if !currency.Valid() {
		return nil, 0, apperr.Validationf("Invalid currency")
	}
	limits := config.LimitsFor(currency)
	if amount < limits.WithdrawMin {
		return nil, 0, apperr.Validationf("Minimum withdrawal is %v %s", limits.WithdrawMin, currency)
	}
	if amount > limits.WithdrawMax {
		return nil, 0, apperr.Validationf("Maximum withdrawal is %v %s", limits.WithdrawMax, currency)
	}

	users, err := s.ledger.Users(ctx)
	if err != nil {
		return nil, 0, err
	}
	idx := ledgerrepo.UserIndex(users, userID)
	if idx == -1 {
		return nil, 0, apperr.NotFoundf("User not found")
	}
	user := users[idx]
	if user.Banned() {
		return nil, 0, apperr.Bannedf("Account is banned")
	}
	if user.Balance.Get(currency) < amount {
		return nil, 0, apperr.InsufficientFundsf("Insufficient balance. You have %v %s", user.Balance.Get(currency), currency)
	}
	turnover := turnoverStatus(&user, currency)
	if !turnover.Met {
		return nil, 0, apperr.Validationf("Turnover requirement not met. You need %v more %s in turnover.", turnover.Remaining, currency)
	}
	if user.PendingClaimBet != nil && user.PendingClaimBet.Currency == currency {
		return nil, 0, apperr.Conflictf("You must place a bet of at least %v %s from your claimed reward before withdrawing.", user.PendingClaimBet.MinBet, currency)
	}

	now := s.now()
	level := config.VipLevelFor(user.TotalWinnings)
	dailyLimit := config.WithdrawLimitFor(level)
	todayCount := user.TodayWithdrawCount
	if user.LastWithdrawDate == nil || !sameDay(*user.LastWithdrawDate, now) {
		todayCount = 0
	}
	if todayCount >= dailyLimit {
		return nil, 0, apperr.Conflictf("Daily withdrawal limit reached (%d times per day for %s level)", dailyLimit, level)
	}

	withdrawal := domain.Withdrawal{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		Amount:    amount,
		Currency:  currency,
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if funding, ok := user.DepositedByAgent[currency]; ok {
		withdrawal.AgentID = funding.AgentID
	}

	// The request collection is written first so a failed debit leaves a
	// visible pending record instead of silently held funds.
	err = s.ledger.MutateWithdrawals(ctx, func(withdrawals []domain.Withdrawal) ([]domain.Withdrawal, error) {
		return append(withdrawals, withdrawal), nil
	})
	if err != nil {
		return nil, 0, err
	}

	var newBalance float64
	err = s.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := ledgerrepo.UserIndex(users, userID)
		if idx == -1 {
			return nil, apperr.NotFoundf("User not found")
		}
		u := &users[idx]
		u.Balance.Sub(currency, amount)
		u.TodayWithdrawCount = todayCount + 1
		u.LastWithdrawDate = &now
		u.WithdrawHistory = append([]domain.WithdrawRecord{{
			WithdrawID: withdrawal.ID,
			Amount:     amount,
			Currency:   currency,
			Status:     domain.StatusPending,
			Timestamp:  now,
		}}, u.WithdrawHistory...)
		u.UpdatedAt = now
		newBalance = u.Balance.Get(currency)
		return users, nil
	})
	if err != nil {
		zap.L().Error("withdrawal recorded but user debit failed",
			zap.String("withdrawalID", withdrawal.ID), zap.String("userID", userID), zap.Error(err))
		return nil, 0, err
	}

	s.notifier.Notify(notify.EventWithdraw,
		fmt.Sprintf("New withdrawal request: %s %v %s", withdrawal.Username, amount, currency))
	return &withdrawal, newBalance, nil
}

func (s *Service) DepositHistory(ctx context.Context, userID string) ([]domain.Deposit, error) {
	deposits, err := s.ledger.Deposits(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Deposit{}
	for _, d := range deposits {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Service) WithdrawHistory(ctx context.Context, userID string) ([]domain.Withdrawal, error) {
	withdrawals, err := s.ledger.Withdrawals(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Withdrawal{}
	for _, w := range withdrawals {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

// PaymentMethods returns the whole pool, or a single currency's methods
// when currency is non-empty.
func (s *Service) PaymentMethods(ctx context.Context, currency domain.Currency) (domain.PaymentPool, []domain.PaymentMethod, error) {
	pool, err := s.content.Payments(ctx)
	if err != nil {
		return domain.PaymentPool{}, nil, err
	}
	if currency != "" && currency.Valid() {
		methods := pool.ByCurrency(currency)
		if methods == nil {
			methods = []domain.PaymentMethod{}
		}
		return pool, methods, nil
	}
	return pool, nil, nil
}

// Eligibility is the full withdrawal precondition snapshot for a currency.
type Eligibility struct {
	Eligible           bool
	Turnover           TurnoverStatus
	VipLevel           domain.VipLevel
	DailyLimit         int
	TodayCount         int
	RemainingWithdraws int
	HasPendingClaim    bool
	PendingClaimBet    *domain.PendingClaimBet
	Balance            float64
	Limits             config.Limits
}

func (s *Service) CheckWithdrawEligibility(ctx context.Context, userID string, currency domain.Currency) (*Eligibility, error) {
	if !currency.Valid() {
		return nil, apperr.Validationf("Invalid currency")
	}
	users, err := s.ledger.Users(ctx)
	if err != nil {
		return nil, err
	}
	idx := ledgerrepo.UserIndex(users, userID)
	if idx == -1 {
		return nil, apperr.NotFoundf("User not found")
	}
	u := users[idx]

	turnover := turnoverStatus(&u, currency)
	level := config.VipLevelFor(u.TotalWinnings)
	dailyLimit := config.WithdrawLimitFor(level)

	todayCount := u.TodayWithdrawCount
	if u.LastWithdrawDate == nil || !sameDay(*u.LastWithdrawDate, s.now()) {
		todayCount = 0
	}
	hasPendingClaim := u.PendingClaimBet != nil && u.PendingClaimBet.Currency == currency

	return &Eligibility{
		Eligible:           turnover.Met && todayCount < dailyLimit && !hasPendingClaim,
		Turnover:           turnover,
		VipLevel:           level,
		DailyLimit:         dailyLimit,
		TodayCount:         todayCount,
		RemainingWithdraws: dailyLimit - todayCount,
		HasPendingClaim:    hasPendingClaim,
		PendingClaimBet:    u.PendingClaimBet,
		Balance:            u.Balance.Get(currency),
		Limits:             config.LimitsFor(currency),
	}, nil
}

type ClaimResult struct {
	Message         string
	NewBalance      float64
	PendingClaimBet *domain.PendingClaimBet
}

// ClaimReward credits the one-time VVIP KING reward and arms the claim
// lock: withdrawals in the currency stay blocked until a qualifying wager
// is placed. Only one claim is allowed across all currencies.
func (s *Service) ClaimReward(ctx context.Context, userID string, currency domain.Currency) (*ClaimResult, error) {
	if !currency.Valid() {
		return nil, apperr.Validationf("Invalid currency")
	}

	now := s.now()
	var out ClaimResult
	err := s.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := ledgerrepo.UserIndex(users, userID)
		if idx == -1 {
			return nil, apperr.NotFoundf("User not found")
		}
		u := &users[idx]
		if u.VipLevel != domain.VVIPKing {
			return nil, apperr.Validationf("Only VVIP KING users can claim rewards")
		}
		for _, claimed := range u.ClaimedRewards {
			if claimed == currency {
				return nil, apperr.Conflictf("You have already claimed a %s reward", currency)
			}
		}
		if len(u.ClaimedRewards) > 0 {
			return nil, apperr.Conflictf("You can only claim one reward. You have already claimed a reward.")
		}

		reward := config.ClaimReward(currency)
		minBet := config.ClaimMinBet(currency)

		u.Balance.Add(currency, reward)
		u.ClaimedRewards = append(u.ClaimedRewards, currency)
		u.PendingClaimBet = &domain.PendingClaimBet{
			Currency:     currency,
			MinBet:       minBet,
			RewardAmount: reward,
			ClaimedAt:    now,
		}
		u.UpdatedAt = now

		out = ClaimResult{
			Message:         fmt.Sprintf("Claimed %v %s reward! You must place a bet of at least %v %s before you can withdraw.", reward, currency, minBet, currency),
			NewBalance:      u.Balance.Get(currency),
			PendingClaimBet: u.PendingClaimBet,
		}
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
