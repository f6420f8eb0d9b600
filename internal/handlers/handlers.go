package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "goalbet/docs"
	adminhandlers "goalbet/internal/handlers/admin"
	agenthandlers "goalbet/internal/handlers/agent"
	authhandlers "goalbet/internal/handlers/auth"
	gamehandlers "goalbet/internal/handlers/game"
	paymenthandlers "goalbet/internal/handlers/payments"
	"goalbet/internal/service"
	pkgauth "goalbet/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	Poll(w http.ResponseWriter, r *http.Request)
	CheckUsername(w http.ResponseWriter, r *http.Request)
	CheckEmail(w http.ResponseWriter, r *http.Request)
	CheckPhone(w http.ResponseWriter, r *http.Request)
	CheckBan(w http.ResponseWriter, r *http.Request)
}

type GameHandler interface {
	Play(w http.ResponseWriter, r *http.Request)
	Videos(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	Deposit(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	DepositHistory(w http.ResponseWriter, r *http.Request)
	WithdrawHistory(w http.ResponseWriter, r *http.Request)
	PaymentMethods(w http.ResponseWriter, r *http.Request)
	Eligibility(w http.ResponseWriter, r *http.Request)
	ClaimReward(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	ApproveDeposit(w http.ResponseWriter, r *http.Request)
	RejectDeposit(w http.ResponseWriter, r *http.Request)
	ApproveWithdraw(w http.ResponseWriter, r *http.Request)
	RejectWithdraw(w http.ResponseWriter, r *http.Request)
	PendingDeposits(w http.ResponseWriter, r *http.Request)
	PendingWithdrawals(w http.ResponseWriter, r *http.Request)
	Deposits(w http.ResponseWriter, r *http.Request)
	Withdrawals(w http.ResponseWriter, r *http.Request)
	CreatePayment(w http.ResponseWriter, r *http.Request)
	UpdatePayment(w http.ResponseWriter, r *http.Request)
	DeletePayment(w http.ResponseWriter, r *http.Request)
	UploadVideo(w http.ResponseWriter, r *http.Request)
	DeleteVideo(w http.ResponseWriter, r *http.Request)
	Controls(w http.ResponseWriter, r *http.Request)
	UpdateControls(w http.ResponseWriter, r *http.Request)
	AddControlRule(w http.ResponseWriter, r *http.Request)
	DeleteControlRule(w http.ResponseWriter, r *http.Request)
	ToggleControls(w http.ResponseWriter, r *http.Request)
	BanUser(w http.ResponseWriter, r *http.Request)
	UnbanUser(w http.ResponseWriter, r *http.Request)
	AdjustBalance(w http.ResponseWriter, r *http.Request)
	SetVip(w http.ResponseWriter, r *http.Request)
	CreateContact(w http.ResponseWriter, r *http.Request)
	UpdateContact(w http.ResponseWriter, r *http.Request)
	DeleteContact(w http.ResponseWriter, r *http.Request)
	Contacts(w http.ResponseWriter, r *http.Request)
	BannedUsers(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Users(w http.ResponseWriter, r *http.Request)
	UpdateUser(w http.ResponseWriter, r *http.Request)
}

type AgentHandler interface {
	Verify(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	AdjustBalance(w http.ResponseWriter, r *http.Request)
	Deposit(w http.ResponseWriter, r *http.Request)
	Withdrawals(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Users(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler    AuthHandler
	GameHandler    GameHandler
	PaymentHandler PaymentHandler
	AdminHandler   AdminHandler
	AgentHandler   AgentHandler

	jwtService pkgauth.JWTServiceInterface
	adminID    string
}

func New(s *service.Services, jwtService pkgauth.JWTServiceInterface, adminID string) *Handlers {
	return &Handlers{
		AuthHandler:    authhandlers.New(s.AuthService),
		GameHandler:    gamehandlers.New(s.GameService),
		PaymentHandler: paymenthandlers.New(s.PaymentService),
		AdminHandler:   adminhandlers.New(s.AdminService),
		AgentHandler:   agenthandlers.New(s.AgentService),
		jwtService:     jwtService,
		adminID:        adminID,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	sessionAuth := pkgauth.Middleware(h.jwtService)
	adminAuth := pkgauth.AdminMiddleware(h.adminID)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)
		r.Post("/check-username", h.AuthHandler.CheckUsername)
		r.Post("/check-email", h.AuthHandler.CheckEmail)
		r.Post("/check-phone", h.AuthHandler.CheckPhone)
		r.Post("/check-ban", h.AuthHandler.CheckBan)

		r.Group(func(r chi.Router) {
			r.Use(sessionAuth)
			r.Post("/logout", h.AuthHandler.Logout)
			r.Get("/me", h.AuthHandler.Me)
			r.Get("/poll", h.AuthHandler.Poll)
		})
	})

	r.Route("/api/game", func(r chi.Router) {
		r.Use(sessionAuth)
		r.Post("/play", h.GameHandler.Play)
		r.Get("/videos", h.GameHandler.Videos)
		r.Get("/history", h.GameHandler.History)
	})

	r.Route("/api/payments", func(r chi.Router) {
		r.Use(sessionAuth)
		r.Post("/deposit", h.PaymentHandler.Deposit)
		r.Post("/withdraw", h.PaymentHandler.Withdraw)
		r.Get("/deposit-history", h.PaymentHandler.DepositHistory)
		r.Get("/withdraw-history", h.PaymentHandler.WithdrawHistory)
		r.Get("/methods", h.PaymentHandler.PaymentMethods)
		r.Get("/withdraw-eligibility", h.PaymentHandler.Eligibility)
		r.Post("/claim-reward", h.PaymentHandler.ClaimReward)
	})

	r.Get("/api/contacts", h.AdminHandler.Contacts)

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(adminAuth)
		r.Get("/stats", h.AdminHandler.Stats)

		r.Route("/deposits", func(r chi.Router) {
			r.Get("/", h.AdminHandler.Deposits)
			r.Get("/pending", h.AdminHandler.PendingDeposits)
			r.Post("/{id}/approve", h.AdminHandler.ApproveDeposit)
			r.Post("/{id}/reject", h.AdminHandler.RejectDeposit)
		})
		r.Route("/withdrawals", func(r chi.Router) {
			r.Get("/", h.AdminHandler.Withdrawals)
			r.Get("/pending", h.AdminHandler.PendingWithdrawals)
			r.Post("/{id}/approve", h.AdminHandler.ApproveWithdraw)
			r.Post("/{id}/reject", h.AdminHandler.RejectWithdraw)
		})
		r.Route("/payments", func(r chi.Router) {
			r.Post("/", h.AdminHandler.CreatePayment)
			r.Put("/{id}", h.AdminHandler.UpdatePayment)
			r.Delete("/{id}", h.AdminHandler.DeletePayment)
		})
		r.Route("/videos", func(r chi.Router) {
			r.Post("/", h.AdminHandler.UploadVideo)
			r.Delete("/{id}", h.AdminHandler.DeleteVideo)
		})
		r.Route("/controls", func(r chi.Router) {
			r.Get("/", h.AdminHandler.Controls)
			r.Put("/", h.AdminHandler.UpdateControls)
			r.Post("/toggle", h.AdminHandler.ToggleControls)
			r.Post("/rules", h.AdminHandler.AddControlRule)
			r.Delete("/rules/{id}", h.AdminHandler.DeleteControlRule)
		})
		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.AdminHandler.Users)
			r.Get("/banned", h.AdminHandler.BannedUsers)
			r.Put("/{id}", h.AdminHandler.UpdateUser)
			r.Post("/{id}/ban", h.AdminHandler.BanUser)
			r.Post("/{id}/unban", h.AdminHandler.UnbanUser)
			r.Post("/{id}/balance", h.AdminHandler.AdjustBalance)
			r.Post("/{id}/vip", h.AdminHandler.SetVip)
		})
		r.Route("/contacts", func(r chi.Router) {
			r.Post("/", h.AdminHandler.CreateContact)
			r.Put("/{id}", h.AdminHandler.UpdateContact)
			r.Delete("/{id}", h.AdminHandler.DeleteContact)
		})
	})

	r.Route("/api/agent", func(r chi.Router) {
		r.Post("/verify", h.AgentHandler.Verify)
		r.Get("/", h.AgentHandler.Get)
		r.Get("/users", h.AgentHandler.Users)
		r.Post("/deposit", h.AgentHandler.Deposit)
		r.Get("/withdrawals", h.AgentHandler.Withdrawals)
		r.Post("/withdrawals/{id}/approve", h.AgentHandler.Approve)
		r.Post("/withdrawals/{id}/reject", h.AgentHandler.Reject)
		r.Get("/history", h.AgentHandler.History)

		// Roster management stays admin-only.
		r.Group(func(r chi.Router) {
			r.Use(adminAuth)
			r.Get("/list", h.AgentHandler.List)
			r.Post("/", h.AgentHandler.Create)
			r.Put("/{id}", h.AgentHandler.Update)
			r.Delete("/{id}", h.AgentHandler.Delete)
			r.Post("/{id}/balance", h.AgentHandler.AdjustBalance)
		})
	})

	return r
}
