package authservice

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"goalbet/internal/apperr"
	"goalbet/internal/binstore"
	"goalbet/internal/config"
	"goalbet/internal/domain"
	ledgerrepo "goalbet/internal/repo/ledger-repo"
	"goalbet/pkg/auth"
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
	service := New(ledger, &auth.HashService{}, auth.NewJWTService("test-secret"))
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

func validInput() RegisterInput {
	return RegisterInput{
		Phone:    "959123456",
		Password: "Passw0rd!",
		Username: "player",
		Email:    "player@gmail.com",
		DeviceID: "dev-1",
		IP:       "10.0.0.1",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(in *RegisterInput)
		wantErr error
	}{
		{name: "Valid input", mutate: func(in *RegisterInput) {}},
		{name: "Bad phone", mutate: func(in *RegisterInput) { in.Phone = "12" }, wantErr: apperr.ErrValidation},
		{name: "Weak password", mutate: func(in *RegisterInput) { in.Password = "abc" }, wantErr: apperr.ErrValidation},
		{name: "Username with spaces", mutate: func(in *RegisterInput) { in.Username = "bad name" }, wantErr: apperr.ErrValidation},
		{name: "Non-gmail address", mutate: func(in *RegisterInput) { in.Email = "x@mail.ru" }, wantErr: apperr.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			in := validInput()
			tt.mutate(&in)

			user, token, err := f.service.Register(ctx, in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Empty(t, user.Password)
			assert.Equal(t, domain.MMK, user.ActiveCurrency)
			assert.Equal(t, domain.VIP, user.VipLevel)
			assert.True(t, user.Online)

			// The stored secret is a hash, never the plain text.
			stored := f.user(t, user.ID)
			assert.NotEmpty(t, stored.Password)
			assert.NotEqual(t, in.Password, stored.Password)
		})
	}
}

func TestRegister_Duplicates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, _, err := f.service.Register(ctx, validInput())
	assert.NoError(t, err)

	in := validInput()
	in.Username = "other"
	in.Email = "other@gmail.com"
	_, _, err = f.service.Register(ctx, in)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	in = validInput()
	in.Phone = "959999999"
	in.Username = "PLAYER"
	in.Email = "other@gmail.com"
	_, _, err = f.service.Register(ctx, in)
	// Username collision is case-insensitive.
	assert.ErrorIs(t, err, apperr.ErrConflict)

	in = validInput()
	in.Phone = "959999999"
	in.Username = "other"
	in.Email = "Player@gmail.com"
	_, _, err = f.service.Register(ctx, in)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	registered, _, err := f.service.Register(ctx, validInput())
	assert.NoError(t, err)

	user, token, err := f.service.Login(ctx, "959123456", "Passw0rd!", "dev-2", "10.0.0.2")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)

	stored := f.user(t, user.ID)
	assert.Equal(t, "dev-2", stored.DeviceID)
	assert.Equal(t, "10.0.0.2", stored.IPAddress)
	assert.True(t, stored.Online)

	_, _, err = f.service.Login(ctx, "959123456", "WrongPass1!", "dev-2", "10.0.0.2")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, _, err = f.service.Login(ctx, "950000000", "Passw0rd!", "dev-2", "10.0.0.2")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestLogin_BannedBeforePassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	registered, _, err := f.service.Register(ctx, validInput())
	assert.NoError(t, err)

	err = f.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := ledgerrepo.UserIndex(users, registered.ID)
		users[idx].BannedStatus = domain.BannedStatus{IsBanned: true, Reason: "fraud"}
		return users, nil
	})
	assert.NoError(t, err)

	// Even the correct password gets the ban error.
	_, _, err = f.service.Login(ctx, "959123456", "Passw0rd!", "dev-1", "10.0.0.1")
	assert.ErrorIs(t, err, apperr.ErrBanned)
	_, _, err = f.service.Login(ctx, "959123456", "WrongPass1!", "dev-1", "10.0.0.1")
	assert.ErrorIs(t, err, apperr.ErrBanned)
}

func TestLogin_ResetsStaleWithdrawCounter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	registered, _, err := f.service.Register(ctx, validInput())
	assert.NoError(t, err)

	yesterday := time.Now().Add(-25 * time.Hour)
	err = f.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := ledgerrepo.UserIndex(users, registered.ID)
		users[idx].TodayWithdrawCount = 4
		users[idx].LastWithdrawDate = &yesterday
		return users, nil
	})
	assert.NoError(t, err)

	_, _, err = f.service.Login(ctx, "959123456", "Passw0rd!", "dev-1", "10.0.0.1")
	assert.NoError(t, err)
	assert.Equal(t, 0, f.user(t, registered.ID).TodayWithdrawCount)
}

func TestAvailabilityChecks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, _, err := f.service.Register(ctx, validInput())
	assert.NoError(t, err)

	res, err := f.service.CheckUsername(ctx, "player")
	assert.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, "This username is already taken", res.Message)

	res, err = f.service.CheckUsername(ctx, "fresh")
	assert.NoError(t, err)
	assert.True(t, res.Available)

	res, err = f.service.CheckUsername(ctx, "ab")
	assert.NoError(t, err)
	assert.False(t, res.Available)

	res, err = f.service.CheckEmail(ctx, "player@gmail.com")
	assert.NoError(t, err)
	assert.False(t, res.Available)

	res, err = f.service.CheckPhone(ctx, "959123456")
	assert.NoError(t, err)
	assert.False(t, res.Available)

	res, err = f.service.CheckPhone(ctx, "959999999")
	assert.NoError(t, err)
	assert.True(t, res.Available)
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	registered, _, err := f.service.Register(ctx, validInput())
	assert.NoError(t, err)

	user, err := f.service.GetUser(ctx, registered.ID)
	assert.NoError(t, err)
	assert.Empty(t, user.Password)

	_, err = f.service.GetUser(ctx, "ghost")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	err = f.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := ledgerrepo.UserIndex(users, registered.ID)
		users[idx].BannedStatus = domain.BannedStatus{IsBanned: true, Reason: "fraud"}
		return users, nil
	})
	assert.NoError(t, err)

	_, err = f.service.GetUser(ctx, registered.ID)
	assert.ErrorIs(t, err, apperr.ErrBanned)

	// Polling still returns the record so the client can show the ban.
	polled, err := f.service.PollUser(ctx, registered.ID)
	assert.NoError(t, err)
	assert.True(t, polled.BannedStatus.IsBanned)
}

func TestCheckBan(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	banned := domain.User{
		ID:        "u1",
		Phone:     "959111111",
		Username:  "cheater",
		IPAddress: "10.0.0.9",
		DeviceID:  "dev-9",
		BannedStatus: domain.BannedStatus{
			IsBanned:      true,
			Reason:        "fraud",
			BannedIPs:     []string{"10.0.0.9", "10.0.0.10"},
			BannedDevices: []string{"dev-9"},
		},
	}
	clean := domain.User{ID: "u2", Phone: "959222222", Username: "player", IPAddress: "10.0.0.2", DeviceID: "dev-2"}
	f.seed(t, testBins.Users, map[string]any{"users": []domain.User{banned, clean}})

	tests := []struct {
		name       string
		userID     string
		ip         string
		deviceID   string
		wantBanned bool
		wantReason string
	}{
		{name: "Banned account", userID: "u1", wantBanned: true, wantReason: "fraud"},
		{name: "Clean account", userID: "u2", ip: "10.0.0.2", deviceID: "dev-2"},
		{name: "Pinned IP", ip: "10.0.0.10", wantBanned: true, wantReason: "IP address is banned"},
		{name: "Last seen IP", ip: "10.0.0.9", wantBanned: true, wantReason: "IP address is banned"},
		{name: "Pinned device", deviceID: "dev-9", wantBanned: true, wantReason: "Device is banned"},
		{name: "Unknown visitor", ip: "172.16.0.1", deviceID: "dev-x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.service.CheckBan(ctx, tt.userID, tt.ip, tt.deviceID)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantBanned, res.Banned)
			if tt.wantBanned {
				assert.Equal(t, tt.wantReason, res.Reason)
			}
		})
	}
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	registered, _, err := f.service.Register(ctx, validInput())
	assert.NoError(t, err)

	assert.NoError(t, f.service.Logout(ctx, registered.ID))
	assert.False(t, f.user(t, registered.ID).Online)

	assert.ErrorIs(t, f.service.Logout(ctx, "ghost"), apperr.ErrNotFound)
}
