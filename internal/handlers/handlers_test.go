package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"goalbet/internal/binstore"
	"goalbet/internal/config"
	"goalbet/internal/notify"
	"goalbet/internal/repo"
	"goalbet/internal/service"
	pkgauth "goalbet/pkg/auth"
)

const testAdminID = "424242"

func newTestRouter(t *testing.T) chi.Router {
	repos := repo.New(binstore.NewMemStore(), config.Bins{
		Users:       "users",
		Deposits:    "deposits",
		Withdrawals: "withdrawals",
		Payments:    "payments",
		Videos:      "videos",
		Controls:    "controls",
		Contacts:    "contacts",
		Agents:      "agents",
	})
	jwtService := pkgauth.NewJWTService("test-secret")
	services := service.New(repos, jwtService, notify.Noop{})
	h := New(services, jwtService, testAdminID)

	router := chi.NewRouter()
	h.InitRoutes(router)
	return router
}

func TestInitRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name    string
		method  string
		url     string
		body    string
		headers map[string]string
		status  int
	}{
		{name: "Register mounted", method: http.MethodPost, url: "/api/auth/register", body: `{}`, status: http.StatusBadRequest},
		{name: "Check ban open", method: http.MethodPost, url: "/api/auth/check-ban", body: `{}`, status: http.StatusOK},
		{name: "Me requires session", method: http.MethodGet, url: "/api/auth/me", status: http.StatusUnauthorized},
		{name: "Play requires session", method: http.MethodPost, url: "/api/game/play", body: `{}`, status: http.StatusUnauthorized},
		{name: "Deposit requires session", method: http.MethodPost, url: "/api/payments/deposit", body: `{}`, status: http.StatusUnauthorized},
		{name: "Contacts open", method: http.MethodGet, url: "/api/contacts", status: http.StatusOK},
		{name: "Admin hidden without header", method: http.MethodGet, url: "/api/admin/stats", status: http.StatusNotFound},
		{name: "Admin hidden with wrong header", method: http.MethodGet, url: "/api/admin/stats", headers: map[string]string{"X-Telegram-User-Id": "1"}, status: http.StatusNotFound},
		{name: "Admin stats", method: http.MethodGet, url: "/api/admin/stats", headers: map[string]string{"X-Telegram-User-Id": testAdminID}, status: http.StatusOK},
		{name: "Agent verify open", method: http.MethodPost, url: "/api/agent/verify", body: `{"telegramUserId":"1"}`, status: http.StatusOK},
		{name: "Agent roster hidden", method: http.MethodGet, url: "/api/agent/list", status: http.StatusNotFound},
		{name: "Agent roster for admin", method: http.MethodGet, url: "/api/agent/list", headers: map[string]string{"X-Telegram-User-Id": testAdminID}, status: http.StatusOK},
		{name: "Unknown route", method: http.MethodGet, url: "/api/nothing", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body *strings.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			} else {
				body = strings.NewReader("")
			}
			req := httptest.NewRequest(tt.method, tt.url, body)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRegisterLoginFlow(t *testing.T) {
	router := newTestRouter(t)

	register := `{"phone":"959123456","password":"Passw0rd!","username":"player","email":"player@gmail.com","deviceId":"dev-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(register))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token"`)

	login := `{"phone":"959123456","password":"Passw0rd!","deviceId":"dev-1"}`
	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(login))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// A registered phone cannot register twice.
	req = httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(register))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
