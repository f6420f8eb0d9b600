package game

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"goalbet/internal/apperr"
	"goalbet/internal/domain"
	"goalbet/internal/service/gameservice"
	pkgauth "goalbet/pkg/auth"
)

func sessionRequest(method, url, body string) *http.Request {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), pkgauth.UserIDKey, "u1")
	return req.WithContext(ctx)
}

func TestPlay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockService(ctrl)
	handler := New(mockService)

	tests := []struct {
		name       string
		body       string
		mockSetup  func()
		wantStatus int
		wantBody   string
	}{
		{
			name: "Winning round",
			body: `{"betChoice":"goal","betAmount":1000,"currency":"MMK"}`,
			mockSetup: func() {
				mockService.EXPECT().
					Play(gomock.Any(), "u1", domain.BetGoal, float64(1000), domain.MMK).
					Return(&gameservice.PlayResult{
						Game:       domain.GameRecord{ID: "g1", Result: domain.BetGoal, Won: true},
						NewBalance: 2000,
						Balances:   domain.Amounts{MMK: 2000},
						VipLevel:   domain.VIP,
						Message:    "You won!",
					}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"newBalance":2000`,
		},
		{
			name: "Insufficient balance",
			body: `{"betChoice":"goal","betAmount":1000,"currency":"MMK"}`,
			mockSetup: func() {
				mockService.EXPECT().
					Play(gomock.Any(), "u1", domain.BetGoal, float64(1000), domain.MMK).
					Return(nil, apperr.InsufficientFundsf("Insufficient balance"))
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Insufficient balance",
		},
		{
			name: "Banned account",
			body: `{"betChoice":"nogoal","betAmount":1000,"currency":"MMK"}`,
			mockSetup: func() {
				mockService.EXPECT().
					Play(gomock.Any(), "u1", domain.BetNoGoal, float64(1000), domain.MMK).
					Return(nil, apperr.Bannedf("Your account has been banned. Contact admin for support."))
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "Malformed body",
			body:       `{"betChoice":`,
			mockSetup:  func() {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			rec := httptest.NewRecorder()
			handler.Play(rec, sessionRequest(http.MethodPost, "/api/game/play", tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestVideos(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockService(ctrl)
	handler := New(mockService)

	mockService.EXPECT().Videos(gomock.Any()).Return(domain.VideoPool{
		Goal:   []domain.Video{{ID: "v1", Name: "goal_video_1"}},
		NoGoal: []domain.Video{},
	}, nil)

	rec := httptest.NewRecorder()
	handler.Videos(rec, httptest.NewRequest(http.MethodGet, "/api/game/videos", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "goal_video_1")
}

func TestHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockService(ctrl)
	handler := New(mockService)

	t.Run("With games", func(t *testing.T) {
		mockService.EXPECT().History(gomock.Any(), "u1").Return(
			[]domain.GameRecord{{ID: "g1", Result: domain.BetNoGoal}},
			&gameservice.HistoryStats{TotalPlayed: 1, TotalLost: 1, Losses: domain.Amounts{MMK: 1000}},
			nil)

		rec := httptest.NewRecorder()
		handler.History(rec, sessionRequest(http.MethodGet, "/api/game/history", ""))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"totalGamesPlayed":1`)
	})

	t.Run("Unknown user", func(t *testing.T) {
		mockService.EXPECT().History(gomock.Any(), "u1").Return(nil, nil, apperr.NotFoundf("User not found"))

		rec := httptest.NewRecorder()
		handler.History(rec, sessionRequest(http.MethodGet, "/api/game/history", ""))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
