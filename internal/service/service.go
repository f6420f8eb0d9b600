package service

import (
	adminhandlers "goalbet/internal/handlers/admin"
	agenthandlers "goalbet/internal/handlers/agent"
	authhandlers "goalbet/internal/handlers/auth"
	gamehandlers "goalbet/internal/handlers/game"
	paymenthandlers "goalbet/internal/handlers/payments"

	"goalbet/internal/notify"
	"goalbet/internal/repo"
	"goalbet/internal/service/adminservice"
	"goalbet/internal/service/agentservice"
	"goalbet/internal/service/authservice"
	"goalbet/internal/service/gameservice"
	"goalbet/internal/service/paymentservice"
	pkgauth "goalbet/pkg/auth"
)

type Services struct {
	AuthService    authhandlers.Service
	GameService    gamehandlers.Service
	PaymentService paymenthandlers.Service
	AdminService   adminhandlers.Service
	AgentService   agenthandlers.Service
}

func New(repo *repo.Repositories, jwtService pkgauth.JWTServiceInterface, notifier notify.Notifier) *Services {
	authService := authservice.New(repo.Ledger, &pkgauth.HashService{}, jwtService)
	gameService := gameservice.New(repo.Ledger, repo.Game)
	paymentService := paymentservice.New(repo.Ledger, repo.Content, notifier)
	adminService := adminservice.New(repo.Ledger, repo.Game, repo.Content, notifier, &pkgauth.HashService{})
	agentService := agentservice.New(repo.Ledger)

	return &Services{
		AuthService:    authService,
		GameService:    gameService,
		PaymentService: paymentService,
		AdminService:   adminService,
		AgentService:   agentService,
	}
}
