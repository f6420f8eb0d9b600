// Package authservice handles registration, login and ban screening.
package authservice

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goalbet/internal/apperr"
	"goalbet/internal/domain"
	ledgerrepo "goalbet/internal/repo/ledger-repo"
	"goalbet/pkg/auth"
	"goalbet/pkg/validate"
)

type LedgerRepo interface {
	Users(ctx context.Context) ([]domain.User, error)
	MutateUsers(ctx context.Context, fn func(users []domain.User) ([]domain.User, error)) error
}

const tokenTTL = 72 * time.Hour

type Service struct {
	ledger LedgerRepo
	hash   auth.HashServiceInterface
	jwt    auth.JWTServiceInterface
	now    func() time.Time
}

func New(ledger LedgerRepo, hash auth.HashServiceInterface, jwt auth.JWTServiceInterface) *Service {
	return &Service{ledger: ledger, hash: hash, jwt: jwt, now: time.Now}
}

type RegisterInput struct {
	Phone    string
	Password string
	Username string
	Email    string
	DeviceID string
	IP       string
}

// Register creates an account and returns it with a session token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	if ok, msg := validate.Phone(in.Phone); !ok {
		return nil, "", apperr.Validationf("%s", msg)
	}
	if ok, msg := validate.Password(in.Password); !ok {
		return nil, "", apperr.Validationf("%s", msg)
	}
	if ok, msg := validate.Username(in.Username); !ok {
		return nil, "", apperr.Validationf("%s", msg)
	}
	if ok, msg := validate.Email(in.Email); !ok {
		return nil, "", apperr.Validationf("%s", msg)
	}

	hashed, err := s.hash.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	now := s.now()
	user := domain.User{
		ID:              uuid.NewString(),
		Phone:           in.Phone,
		Password:        hashed,
		Username:        in.Username,
		Email:           in.Email,
		ActiveCurrency:  domain.MMK,
		VipLevel:        domain.VIP,
		GameHistory:     []domain.GameRecord{},
		DepositHistory:  []domain.DepositRecord{},
		WithdrawHistory: []domain.WithdrawRecord{},
		ClaimedRewards:  []domain.Currency{},
		FraudAttempts:   []domain.FraudAttempt{},
		Online:          true,
		DeviceID:        in.DeviceID,
		IPAddress:       in.IP,
		LastLogin:       &now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		for _, u := range users {
			if u.Phone == in.Phone {
				return nil, apperr.Conflictf("This phone number is already registered")
			}
			if strings.EqualFold(u.Username, in.Username) {
				return nil, apperr.Conflictf("This username is already taken")
			}
			if strings.EqualFold(u.Email, in.Email) {
				return nil, apperr.Conflictf("This email is already registered")
			}
		}
		return append(users, user), nil
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwt.GenerateJWT(user.ID, now.Add(tokenTTL))
	if err != nil {
		return nil, "", err
	}
	zap.L().Info("user registered", zap.String("userID", user.ID))
	safe := user.Safe()
	return &safe, token, nil
}

// Login authenticates by phone. The ban check runs before the credential
// check so a banned account never learns whether its secret still works.
func (s *Service) Login(ctx context.Context, phone, password, deviceID, ip string) (*domain.User, string, error) {
	now := s.now()
	var logged domain.User
	err := s.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := -1
		for i := range users {
			if users[i].Phone == phone {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, apperr.NotFoundf("Invalid phone number or password")
		}
		u := &users[idx]
		if u.Banned() {
			return nil, apperr.Bannedf("Your account has been banned. Contact admin for support.")
		}
		if !s.hash.ComparePassword(u.Password, password) {
			return nil, apperr.Validationf("Invalid phone number or password")
		}
		if u.LastWithdrawDate == nil || !sameDay(*u.LastWithdrawDate, now) {
			u.TodayWithdrawCount = 0
		}
		u.Online = true
		u.DeviceID = deviceID
		u.IPAddress = ip
		u.LastLogin = &now
		u.UpdatedAt = now
		logged = *u
		return users, nil
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwt.GenerateJWT(logged.ID, now.Add(tokenTTL))
	if err != nil {
		return nil, "", err
	}
	safe := logged.Safe()
	return &safe, token, nil
}

func (s *Service) Logout(ctx context.Context, userID string) error {
	return s.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := ledgerrepo.UserIndex(users, userID)
		if idx == -1 {
			return nil, apperr.NotFoundf("User not found")
		}
		users[idx].Online = false
		users[idx].UpdatedAt = s.now()
		return users, nil
	})
}

// Availability is the live what-you-type feedback for registration fields.
type Availability struct {
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}

func (s *Service) CheckUsername(ctx context.Context, username string) (*Availability, error) {
	if ok, msg := validate.Username(username); !ok {
		return &Availability{Message: msg}, nil
	}
	users, err := s.ledger.Users(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			return &Availability{Message: "This username is already taken"}, nil
		}
	}
	return &Availability{Available: true}, nil
}

func (s *Service) CheckEmail(ctx context.Context, email string) (*Availability, error) {
	if ok, msg := validate.Email(email); !ok {
		return &Availability{Message: msg}, nil
	}
	users, err := s.ledger.Users(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return &Availability{Message: "This email is already registered"}, nil
		}
	}
	return &Availability{Available: true}, nil
}

func (s *Service) CheckPhone(ctx context.Context, phone string) (*Availability, error) {
	if ok, msg := validate.Phone(phone); !ok {
		return &Availability{Message: msg}, nil
	}
	users, err := s.ledger.Users(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Phone == phone {
			return &Availability{Message: "This phone number is already registered"}, nil
		}
	}
	return &Availability{Available: true}, nil
}

// GetUser returns the account for the session user. A banned account gets
// the ban error so clients drop straight to the banned screen.
func (s *Service) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	users, err := s.ledger.Users(ctx)
	if err != nil {
		return nil, err
	}
	idx := ledgerrepo.UserIndex(users, userID)
	if idx == -1 {
		return nil, apperr.NotFoundf("User not found")
	}
	u := users[idx]
	if u.Banned() {
		return nil, apperr.Bannedf("%s", banReason(u.BannedStatus.Reason))
	}
	safe := u.Safe()
	return &safe, nil
}

// PollUser is the lightweight refresh endpoint; it returns the account
// as-is, banned or not, so the client can render state changes.
func (s *Service) PollUser(ctx context.Context, userID string) (*domain.User, error) {
	users, err := s.ledger.Users(ctx)
	if err != nil {
		return nil, err
	}
	idx := ledgerrepo.UserIndex(users, userID)
	if idx == -1 {
		return nil, apperr.NotFoundf("User not found")
	}
	safe := users[idx].Safe()
	return &safe, nil
}

// BanCheck is the pre-auth screening result.
type BanCheck struct {
	Banned bool   `json:"banned"`
	Reason string `json:"reason,omitempty"`
}

// CheckBan screens a visitor before login: by account, then by IP, then
// by device. IP and device hits match any banned account's pinned or
// last-seen origin.
func (s *Service) CheckBan(ctx context.Context, userID, ip, deviceID string) (*BanCheck, error) {
	users, err := s.ledger.Users(ctx)
	if err != nil {
		return nil, err
	}

	if userID != "" {
		if idx := ledgerrepo.UserIndex(users, userID); idx != -1 && users[idx].Banned() {
			return &BanCheck{Banned: true, Reason: banReason(users[idx].BannedStatus.Reason)}, nil
		}
	}

	for i := range users {
		u := &users[i]
		if !u.Banned() {
			continue
		}
		if ip != "" && (u.IPAddress == ip || contains(u.BannedStatus.BannedIPs, ip)) {
			return &BanCheck{Banned: true, Reason: "IP address is banned"}, nil
		}
		if deviceID != "" && (u.DeviceID == deviceID || contains(u.BannedStatus.BannedDevices, deviceID)) {
			return &BanCheck{Banned: true, Reason: "Device is banned"}, nil
		}
	}
	return &BanCheck{}, nil
}

func banReason(reason string) string {
	if reason == "" {
		return "Your account has been banned. Contact admin for support."
	}
	return reason
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
