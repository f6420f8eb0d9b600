// Package adminservice implements the operator surface: deposit and
// withdrawal adjudication, payment method, video, contact and control-rule
// management, bans, manual balance adjustments and platform statistics.
package adminservice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"goalbet/internal/apperr"
	"goalbet/internal/domain"
	"goalbet/internal/notify"
	ledgerrepo "goalbet/internal/repo/ledger-repo"
	"goalbet/pkg/auth"
)

type LedgerRepo interface {
	Users(ctx context.Context) ([]domain.User, error)
	MutateUsers(ctx context.Context, fn func(users []domain.User) ([]domain.User, error)) error
	Deposits(ctx context.Context) ([]domain.Deposit, error)
	MutateDeposits(ctx context.Context, fn func(deposits []domain.Deposit) ([]domain.Deposit, error)) error
	Withdrawals(ctx context.Context) ([]domain.Withdrawal, error)
	MutateWithdrawals(ctx context.Context, fn func(withdrawals []domain.Withdrawal) ([]domain.Withdrawal, error)) error
}

type GameRepo interface {
	Controls(ctx context.Context) (domain.Controls, error)
	MutateControls(ctx context.Context, fn func(controls domain.Controls) (domain.Controls, error)) error
	Videos(ctx context.Context) (domain.VideoPool, error)
	MutateVideos(ctx context.Context, fn func(pool domain.VideoPool) (domain.VideoPool, error)) error
}

type ContentRepo interface {
	Payments(ctx context.Context) (domain.PaymentPool, error)
	MutatePayments(ctx context.Context, fn func(pool domain.PaymentPool) (domain.PaymentPool, error)) error
	Contacts(ctx context.Context) ([]domain.Contact, error)
	MutateContacts(ctx context.Context, fn func(contacts []domain.Contact) ([]domain.Contact, error)) error
}

type Service struct {
	ledger   LedgerRepo
	games    GameRepo
	content  ContentRepo
	notifier notify.Notifier
	hash     auth.HashServiceInterface
	now      func() time.Time
}

func New(ledger LedgerRepo, games GameRepo, content ContentRepo, notifier notify.Notifier, hash auth.HashServiceInterface) *Service {
	return &Service{
		ledger:   ledger,
		games:    games,
		content:  content,
		notifier: notifier,
		hash:     hash,
		now:      time.Now,
	}
}

// ApproveDeposit marks a pending deposit approved and credits the user's
// balance and lifetime deposit total. The request collection is the source
// of truth; the user's history mirror is updated second.
func (s *Service) ApproveDeposit(ctx context.Context, depositID string) (*domain.Deposit, error) {
	now := s.now()
	var approved domain.Deposit
	err := s.ledger.MutateDeposits(ctx, func(deposits []domain.Deposit) ([]domain.Deposit, error) {
		idx := ledgerrepo.DepositIndex(deposits, depositID)
		if idx == -1 {
			return nil, apperr.NotFoundf("Deposit not found")
		}
		if deposits[idx].Status != domain.StatusPending {
			return nil, apperr.Conflictf("Deposit has already been processed")
		}
		deposits[idx].Status = domain.StatusApproved
		deposits[idx].UpdatedAt = now
		approved = deposits[idx]
		return deposits, nil
	})
	if err != nil {
		return nil, err
	}

	err = s.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := ledgerrepo.UserIndex(users, approved.UserID)
		if idx == -1 {
			// The request stays approved even if the account vanished.
			return users, nil
		}
		u := &users[idx]
		u.Balance.Add(approved.Currency, approved.Amount)
		u.TotalDeposits.Add(approved.Currency, approved.Amount)
		for i := range u.DepositHistory {
			if u.DepositHistory[i].DepositID == depositID {
				u.DepositHistory[i].Status = domain.StatusApproved
				break
			}
		}
		u.UpdatedAt = now
		return users, nil
	})
	if err != nil {
		zap.L().Error("deposit approved but user credit failed",
			zap.String("depositID", depositID), zap.Error(err))
		return nil, err
	}
	return &approved, nil
}

// RejectDeposit marks a pending deposit rejected. No money moves; the
// balance was never credited.
func (s *Service) RejectDeposit(ctx context.Context, depositID, reason string) (*domain.Deposit, error) {
	if reason == "" {
		reason = "Rejected by admin"
	}
	now := s.now()
	var rejected domain.Deposit
	err := s.ledger.MutateDeposits(ctx, func(deposits []domain.Deposit) ([]domain.Deposit, error) {
		idx := ledgerrepo.DepositIndex(deposits, depositID)
		if idx == -1 {
			return nil, apperr.NotFoundf("Deposit not found")
		}
		if deposits[idx].Status != domain.StatusPending {
			return nil, apperr.Conflictf("Deposit has already been processed")
		}
		deposits[idx].Status = domain.StatusRejected
		deposits[idx].AdminNote = reason
		deposits[idx].UpdatedAt = now
		rejected = deposits[idx]
		return deposits, nil
	})
	if err != nil {
		return nil, err
	}

	err = s.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := ledgerrepo.UserIndex(users, rejected.UserID)
		if idx == -1 {
			return users, nil
		}
		u := &users[idx]
		for i := range u.DepositHistory {
			if u.DepositHistory[i].DepositID == depositID {
				u.DepositHistory[i].Status = domain.StatusRejected
				u.DepositHistory[i].Reason = reason
				break
			}
		}
		u.UpdatedAt = now
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return &rejected, nil
}

// ApproveWithdraw marks a pending withdrawal approved. The balance was
// already debited at submission, so only the lifetime total moves.
func (s *Service) ApproveWithdraw(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error) {
	now := s.now()
	var approved domain.Withdrawal
	err := s.ledger.MutateWithdrawals(ctx, func(withdrawals []domain.Withdrawal) ([]domain.Withdrawal, error) {
		idx := ledgerrepo.WithdrawalIndex(withdrawals, withdrawalID)
		if idx == -1 {
			return nil, apperr.NotFoundf("Withdrawal not found")
		}
		if withdrawals[idx].Status != domain.StatusPending {
			return nil, apperr.Conflictf("Withdrawal has already been processed")
		}
		withdrawals[idx].Status = domain.StatusApproved
		withdrawals[idx].UpdatedAt = now
		approved = withdrawals[idx]
		return withdrawals, nil
	})
	if err != nil {
		return nil, err
	}

	err = s.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := ledgerrepo.UserIndex(users, approved.UserID)
		if idx == -1 {
			return users, nil
		}
		u := &users[idx]
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

// RejectWithdraw marks a pending withdrawal rejected and refunds the exact
// debited amount.
func (s *Service) RejectWithdraw(ctx context.Context, withdrawalID, reason string) (*domain.Withdrawal, error) {
	if reason == "" {
		reason = "Rejected by admin"
	}
	now := s.now()
	var rejected domain.Withdrawal
	err := s.ledger.MutateWithdrawals(ctx, func(withdrawals []domain.Withdrawal) ([]domain.Withdrawal, error) {
		idx := ledgerrepo.WithdrawalIndex(withdrawals, withdrawalID)
		if idx == -1 {
			return nil, apperr.NotFoundf("Withdrawal not found")
		}
		if withdrawals[idx].Status != domain.StatusPending {
			return nil, apperr.Conflictf("Withdrawal has already been processed")
		}
		withdrawals[idx].Status = domain.StatusRejected
		withdrawals[idx].AdminNote = reason
		withdrawals[idx].UpdatedAt = now
		rejected = withdrawals[idx]
		return withdrawals, nil
	})
	if err != nil {
		return nil, err
	}

	err = s.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := ledgerrepo.UserIndex(users, rejected.UserID)
		if idx == -1 {
			return users, nil
		}
		u := &users[idx]
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
	return &rejected, nil
}

func (s *Service) CreatePayment(ctx context.Context, method domain.PaymentMethod) (*domain.PaymentMethod, error) {
	if method.Name == "" {
		return nil, apperr.Validationf("Currency and name are required")
	}
	if !method.Currency.Valid() {
		return nil, apperr.Validationf("Invalid currency")
	}
	method.ID = uuid.NewString()
	method.Active = true
	method.CreatedAt = s.now()

	err := s.content.MutatePayments(ctx, func(pool domain.PaymentPool) (domain.PaymentPool, error) {
		pool.SetCurrency(method.Currency, append(pool.ByCurrency(method.Currency), method))
		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	return &method, nil
}

// PaymentPatch carries the editable payment method fields; nil means keep.
type PaymentPatch struct {
	Name      *string
	Address   *string
	Note      *string
	IconURL   *string
	QRCodeURL *string
	Active    *bool
}

func (s *Service) UpdatePayment(ctx context.Context, paymentID string, currency domain.Currency, patch PaymentPatch) (*domain.PaymentMethod, error) {
	if !currency.Valid() {
		return nil, apperr.Validationf("Invalid currency")
	}
	var updated domain.PaymentMethod
	err := s.content.MutatePayments(ctx, func(pool domain.PaymentPool) (domain.PaymentPool, error) {
		methods := pool.ByCurrency(currency)
		for i := range methods {
			if methods[i].ID != paymentID {
				continue
			}
			if patch.Name != nil {
				methods[i].Name = *patch.Name
			}
			if patch.Address != nil {
				methods[i].Address = *patch.Address
			}
			if patch.Note != nil {
				methods[i].Note = *patch.Note
			}
			if patch.IconURL != nil {
				methods[i].IconURL = *patch.IconURL
			}
			if patch.QRCodeURL != nil {
				methods[i].QRCodeURL = *patch.QRCodeURL
			}
			if patch.Active != nil {
				methods[i].Active = *patch.Active
			}
			updated = methods[i]
			pool.SetCurrency(currency, methods)
			return pool, nil
		}
		return domain.PaymentPool{}, apperr.NotFoundf("Payment not found")
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeletePayment(ctx context.Context, paymentID string, currency domain.Currency) error {
	if !currency.Valid() {
		return apperr.Validationf("Invalid currency")
	}
	return s.content.MutatePayments(ctx, func(pool domain.PaymentPool) (domain.PaymentPool, error) {
		methods := pool.ByCurrency(currency)
		kept := methods[:0]
		for _, m := range methods {
			if m.ID != paymentID {
				kept = append(kept, m)
			}
		}
		pool.SetCurrency(currency, kept)
		return pool, nil
	})
}

func (s *Service) UploadVideo(ctx context.Context, videoType domain.BetChoice, url, name string) (*domain.Video, error) {
	if url == "" {
		return nil, apperr.Validationf("Type and URL required")
	}
	if !videoType.Valid() {
		return nil, apperr.Validationf(`Type must be "goal" or "nogoal"`)
	}
	var video domain.Video
	err := s.games.MutateVideos(ctx, func(pool domain.VideoPool) (domain.VideoPool, error) {
		existing := pool.ByResult(videoType)
		if name == "" {
			name = fmt.Sprintf("%s_video_%d", videoType, len(existing)+1)
		}
		video = domain.Video{
			ID:        uuid.NewString(),
			Type:      videoType,
			URL:       url,
			Name:      name,
			CreatedAt: s.now(),
		}
		if videoType == domain.BetGoal {
			pool.Goal = append(pool.Goal, video)
		} else {
			pool.NoGoal = append(pool.NoGoal, video)
		}
		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (s *Service) DeleteVideo(ctx context.Context, videoID string, videoType domain.BetChoice) error {
	if !videoType.Valid() {
		return apperr.Validationf(`Type must be "goal" or "nogoal"`)
	}
	return s.games.MutateVideos(ctx, func(pool domain.VideoPool) (domain.VideoPool, error) {
		filter := func(videos []domain.Video) []domain.Video {
			kept := videos[:0]
			for _, v := range videos {
				if v.ID != videoID {
					kept = append(kept, v)
				}
			}
			return kept
		}
		if videoType == domain.BetGoal {
			pool.Goal = filter(pool.Goal)
		} else {
			pool.NoGoal = filter(pool.NoGoal)
		}
		return pool, nil
	})
}

// UpdateControls replaces the whole rule set singleton.
func (s *Service) UpdateControls(ctx context.Context, controls domain.Controls) error {
	return s.games.MutateControls(ctx, func(domain.Controls) (domain.Controls, error) {
		return controls, nil
	})
}

func (s *Service) Controls(ctx context.Context) (domain.Controls, error) {
	return s.games.Controls(ctx)
}

// AddControlRule appends a rule, filling unset fields with the defaults
// the rule engine expects.
func (s *Service) AddControlRule(ctx context.Context, rule domain.ControlRule) (*domain.ControlRule, error) {
	if rule.Type == "" {
		rule.Type = domain.RuleExact
	}
	if rule.BetChoice == "" {
		rule.BetChoice = domain.BetAny
	}
	if rule.Currency == "" {
		rule.Currency = domain.MMK
	}
	if rule.Action == "" {
		rule.Action = domain.ActionLose
	}
	if !rule.Currency.Valid() {
		return nil, apperr.Validationf("Invalid currency")
	}
	rule.ID = uuid.NewString()
	rule.Active = true
	rule.CreatedAt = s.now()

	err := s.games.MutateControls(ctx, func(controls domain.Controls) (domain.Controls, error) {
		controls.Rules = append(controls.Rules, rule)
		return controls, nil
	})
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (s *Service) DeleteControlRule(ctx context.Context, ruleID string) error {
	return s.games.MutateControls(ctx, func(controls domain.Controls) (domain.Controls, error) {
		kept := controls.Rules[:0]
		for _, r := range controls.Rules {
			if r.ID != ruleID {
				kept = append(kept, r)
			}
		}
		controls.Rules = kept
		return controls, nil
	})
}

func (s *Service) ToggleControls(ctx context.Context, enabled bool) (bool, error) {
	err := s.games.MutateControls(ctx, func(controls domain.Controls) (domain.Controls, error) {
		controls.Enabled = enabled
		return controls, nil
	})
	if err != nil {
		return false, err
	}
	return enabled, nil
}

// BanUser flags the account and pins its current IP and device so the ban
// also catches re-registrations from the same origin.
func (s *Service) BanUser(ctx context.Context, userID, reason string) (string, error) {
	if reason == "" {
		reason = "Banned by admin"
	}
	now := s.now()
	var username string
	err := s.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := ledgerrepo.UserIndex(users, userID)
		if idx == -1 {
			return nil, apperr.NotFoundf("User not found")
		}
		u := &users[idx]
		status := domain.BannedStatus{
			IsBanned: true,
			Reason:   reason,
			BannedAt: &now,
		}
		if u.IPAddress != "" {
			status.BannedIPs = []string{u.IPAddress}
		}
		if u.DeviceID != "" {
			status.BannedDevices = []string{u.DeviceID}
		}
		u.BannedStatus = status
		u.UpdatedAt = now
		username = u.Username
		return users, nil
	})
	if err != nil {
		return "", err
	}
	s.notifier.Notify(notify.EventBan, fmt.Sprintf("User %s has been banned: %s", username, reason))
	return username, nil
}

func (s *Service) UnbanUser(ctx context.Context, userID string) (string, error) {
	now := s.now()
	var username string
	err := s.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := ledgerrepo.UserIndex(users, userID)
		if idx == -1 {
			return nil, apperr.NotFoundf("User not found")
		}
		users[idx].BannedStatus = domain.BannedStatus{BannedIPs: []string{}, BannedDevices: []string{}}
		users[idx].UpdatedAt = now
		username = users[idx].Username
		return users, nil
	})
	if err != nil {
		return "", err
	}
	return username, nil
}

const (
	AdjustAdd      = "add"
	AdjustSubtract = "subtract"
)

// AdjustBalance applies a manual correction. Subtractions clamp at zero.
func (s *Service) AdjustBalance(ctx context.Context, userID string, currency domain.Currency, amount float64, adjustType string) (domain.Amounts, error) {
	if !currency.Valid() {
		return domain.Amounts{}, apperr.Validationf("Invalid currency")
	}
	if adjustType != AdjustAdd && adjustType != AdjustSubtract {
		return domain.Amounts{}, apperr.Validationf(`Type must be "add" or "subtract"`)
	}
	var balance domain.Amounts
	err := s.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := ledgerrepo.UserIndex(users, userID)
		if idx == -1 {
			return nil, apperr.NotFoundf("User not found")
		}
		u := &users[idx]
		if adjustType == AdjustAdd {
			u.Balance.Add(currency, amount)
		} else {
			u.Balance.Sub(currency, amount)
		}
		u.UpdatedAt = s.now()
		balance = u.Balance
		return users, nil
	})
	if err != nil {
		return domain.Amounts{}, err
	}
	return balance, nil
}

func (s *Service) SetVip(ctx context.Context, userID string, level domain.VipLevel) error {
	switch level {
	case domain.VIP, domain.VVIP, domain.VVIPKing:
	default:
		return apperr.Validationf("Invalid VIP level")
	}
	return s.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := ledgerrepo.UserIndex(users, userID)
		if idx == -1 {
			return nil, apperr.NotFoundf("User not found")
		}
		users[idx].VipLevel = level
		users[idx].UpdatedAt = s.now()
		return users, nil
	})
}

func (s *Service) CreateContact(ctx context.Context, contact domain.Contact) (*domain.Contact, error) {
	if contact.Name == "" {
		return nil, apperr.Validationf("Name is required")
	}
	if contact.Type == "" {
		contact.Type = "link"
	}
	contact.ID = uuid.NewString()
	contact.CreatedAt = s.now()

	err := s.content.MutateContacts(ctx, func(contacts []domain.Contact) ([]domain.Contact, error) {
		return append(contacts, contact), nil
	})
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// ContactPatch carries the editable contact fields; nil means keep.
type ContactPatch struct {
	Name    *string
	ImgURL  *string
	Link    *string
	Address *string
	Type    *string
}

func (s *Service) UpdateContact(ctx context.Context, contactID string, patch ContactPatch) (*domain.Contact, error) {
	var updated domain.Contact
	err := s.content.MutateContacts(ctx, func(contacts []domain.Contact) ([]domain.Contact, error) {
		for i := range contacts {
			if contacts[i].ID != contactID {
				continue
			}
			if patch.Name != nil {
				contacts[i].Name = *patch.Name
			}
			if patch.ImgURL != nil {
				contacts[i].ImgURL = *patch.ImgURL
			}
			if patch.Link != nil {
				contacts[i].Link = *patch.Link
			}
			if patch.Address != nil {
				contacts[i].Address = *patch.Address
			}
			if patch.Type != nil {
				contacts[i].Type = *patch.Type
			}
			updated = contacts[i]
			return contacts, nil
		}
		return nil, apperr.NotFoundf("Contact not found")
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeleteContact(ctx context.Context, contactID string) error {
	return s.content.MutateContacts(ctx, func(contacts []domain.Contact) ([]domain.Contact, error) {
		kept := contacts[:0]
		for _, c := range contacts {
			if c.ID != contactID {
				kept = append(kept, c)
			}
		}
		return kept, nil
	})
}

func (s *Service) Contacts(ctx context.Context) ([]domain.Contact, error) {
	return s.content.Contacts(ctx)
}

// BannedUser is the trimmed listing row for the ban review screen.
type BannedUser struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	Reason    string     `json:"reason"`
	BannedAt  *time.Time `json:"bannedAt"`
	IPAddress string     `json:"ipAddress"`
}

func (s *Service) BannedUsers(ctx context.Context) ([]BannedUser, error) {
	users, err := s.ledger.Users(ctx)
	if err != nil {
		return nil, err
	}
	out := []BannedUser{}
	for _, u := range users {
		if !u.Banned() {
			continue
		}
		out = append(out, BannedUser{
			ID:        u.ID,
			Username:  u.Username,
			Phone:     u.Phone,
			Email:     u.Email,
			Reason:    u.BannedStatus.Reason,
			BannedAt:  u.BannedStatus.BannedAt,
			IPAddress: u.IPAddress,
		})
	}
	return out, nil
}

func (s *Service) PendingDeposits(ctx context.Context) ([]domain.Deposit, error) {
	deposits, err := s.ledger.Deposits(ctx)
	if err != nil {
		return nil, err
	}
	pending := []domain.Deposit{}
	for _, d := range deposits {
		if d.Status == domain.StatusPending {
			pending = append(pending, d)
		}
	}
	return pending, nil
}

func (s *Service) PendingWithdrawals(ctx context.Context) ([]domain.Withdrawal, error) {
	withdrawals, err := s.ledger.Withdrawals(ctx)
	if err != nil {
		return nil, err
	}
	pending := []domain.Withdrawal{}
	for _, w := range withdrawals {
		if w.Status == domain.StatusPending {
			pending = append(pending, w)
		}
	}
	return pending, nil
}

// Stats is the aggregate platform snapshot shown in the admin chat.
type Stats struct {
	TotalUsers         int                     `json:"totalUsers"`
	OnlineUsers        int                     `json:"onlineUsers"`
	BannedUsers        int                     `json:"bannedUsers"`
	TotalGames         int                     `json:"totalGames"`
	ApprovedDeposits   domain.Amounts          `json:"approvedDeposits"`
	ApprovedWithdraws  domain.Amounts          `json:"approvedWithdrawals"`
	TodayDeposits      domain.Amounts          `json:"todayDeposits"`
	MonthDeposits      domain.Amounts          `json:"monthDeposits"`
	YearDeposits       domain.Amounts          `json:"yearDeposits"`
	Revenue            domain.Amounts          `json:"revenue"`
	PendingDeposits    int                     `json:"pendingDeposits"`
	PendingWithdrawals int                     `json:"pendingWithdrawals"`
	VipCounts          map[domain.VipLevel]int `json:"vipCounts"`
}

// Stats reads the three money-bearing collections concurrently and folds
// them into one snapshot.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var (
		users       []domain.User
		deposits    []domain.Deposit
		withdrawals []domain.Withdrawal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.ledger.Users(gctx)
		return err
	})
	g.Go(func() (err error) {
		deposits, err = s.ledger.Deposits(gctx)
		return err
	})
	g.Go(func() (err error) {
		withdrawals, err = s.ledger.Withdrawals(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalUsers: len(users),
		VipCounts:  map[domain.VipLevel]int{},
	}
	for _, u := range users {
		if u.Online {
			stats.OnlineUsers++
		}
		if u.Banned() {
			stats.BannedUsers++
		}
		stats.TotalGames += u.TotalGamesPlayed
		stats.VipCounts[u.VipLevel]++
	}
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())

	for _, d := range deposits {
		switch d.Status {
		case domain.StatusApproved:
			stats.ApprovedDeposits.Add(d.Currency, d.Amount)
			if !d.CreatedAt.Before(dayStart) {
				stats.TodayDeposits.Add(d.Currency, d.Amount)
			}
			if !d.CreatedAt.Before(monthStart) {
				stats.MonthDeposits.Add(d.Currency, d.Amount)
			}
			if !d.CreatedAt.Before(yearStart) {
				stats.YearDeposits.Add(d.Currency, d.Amount)
			}
		case domain.StatusPending:
			stats.PendingDeposits++
		}
	}
	for _, w := range withdrawals {
		switch w.Status {
		case domain.StatusApproved:
			stats.ApprovedWithdraws.Add(w.Currency, w.Amount)
		case domain.StatusPending:
			stats.PendingWithdrawals++
		}
	}
	for _, c := range domain.Currencies() {
		stats.Revenue.Add(c, stats.ApprovedDeposits.Get(c)-stats.ApprovedWithdraws.Get(c))
	}
	return stats, nil
}

// Users returns every account with credentials stripped.
func (s *Service) Users(ctx context.Context) ([]domain.User, error) {
	users, err := s.ledger.Users(ctx)
	if err != nil {
		return nil, err
	}
	safe := make([]domain.User, len(users))
	for i, u := range users {
		safe[i] = u.Safe()
	}
	return safe, nil
}

// UserPatch carries the admin-editable user fields; nil means keep. The
// allow-list keeps ledger counters and identifiers out of reach.
type UserPatch struct {
	Username       *string
	Email          *string
	Phone          *string
	Password       *string
	ActiveCurrency *domain.Currency
	VipLevel       *domain.VipLevel
	Balance        *domain.Amounts
	Online         *bool
}

func (s *Service) UpdateUser(ctx context.Context, userID string, patch UserPatch) (*domain.User, error) {
	// Stored credentials are always bcrypt hashes; login compares against
	// the hash, so a plaintext write here would lock the account out.
	var hashedPassword string
	if patch.Password != nil {
		h, err := s.hash.HashPassword(*patch.Password)
		if err != nil {
			return nil, apperr.Validationf("Password cannot be empty")
		}
		hashedPassword = h
	}

	var updated domain.User
	err := s.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := ledgerrepo.UserIndex(users, userID)
		if idx == -1 {
			return nil, apperr.NotFoundf("User not found")
		}
		u := &users[idx]
		if patch.Username != nil {
			u.Username = *patch.Username
		}
		if patch.Email != nil {
			u.Email = *patch.Email
		}
		if patch.Phone != nil {
			u.Phone = *patch.Phone
		}
		if patch.Password != nil {
			u.Password = hashedPassword
		}
		if patch.ActiveCurrency != nil {
			if !patch.ActiveCurrency.Valid() {
				return nil, apperr.Validationf("Invalid currency")
			}
			u.ActiveCurrency = *patch.ActiveCurrency
		}
		if patch.VipLevel != nil {
			u.VipLevel = *patch.VipLevel
		}
		if patch.Balance != nil {
			u.Balance = *patch.Balance
		}
		if patch.Online != nil {
			u.Online = *patch.Online
		}
		u.UpdatedAt = s.now()
		updated = u.Safe()
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) AllDeposits(ctx context.Context) ([]domain.Deposit, error) {
	return s.ledger.Deposits(ctx)
}

func (s *Service) AllWithdrawals(ctx context.Context) ([]domain.Withdrawal, error) {
	return s.ledger.Withdrawals(ctx)
}
