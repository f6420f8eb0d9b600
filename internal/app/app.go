package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"goalbet/internal/binstore"
	"goalbet/internal/config"
	"goalbet/internal/handlers"
	"goalbet/internal/notify"
	"goalbet/internal/repo"
	"goalbet/internal/service"
	"goalbet/pkg/auth"
	"goalbet/pkg/clients"
	"goalbet/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg  *config.Config
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories
	cron *cron.Cron

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	store, err := a.buildStore(ctx, cfg)
	if err != nil {
		zap.L().Error("store init failed: ", zap.Error(err))
		return fmt.Errorf("can't init document store: %w", err)
	}

	notifier := buildNotifier(cfg)
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	a.cfg = cfg
	a.repo = repo.New(store, cfg.Bins)
	a.srv = service.New(a.repo, jwtService, notifier)
	a.api = handlers.New(a.srv, jwtService, cfg.TelegramAdminID)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	if err = a.startReminderJob(ctx, notifier); err != nil {
		return fmt.Errorf("can't start reminder job: %w", err)
	}

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

// buildStore picks the Postgres document store when a DSN is configured,
// otherwise the remote JSON bin API.
func (a *Application) buildStore(ctx context.Context, cfg *config.Config) (binstore.Store, error) {
	if cfg.Database == "" {
		zap.L().Info("using remote bin store", zap.String("address", cfg.StoreAddress))
		return binstore.NewJSONBin(cfg.StoreAddress, cfg.StoreAPIKey, clients.NewHTTPClient()), nil
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := binstore.RunMigrations(pool); err != nil {
		return nil, fmt.Errorf("can't run migrations: %w", err)
	}
	zap.L().Info("using postgres bin store")
	return binstore.NewPGStore(pool), nil
}

func buildNotifier(cfg *config.Config) notify.Notifier {
	if cfg.TelegramBotToken == "" || cfg.TelegramAdminID == "" {
		return notify.Noop{}
	}
	return notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramAdminID)
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

// startReminderJob nags the admin chat every 30 minutes while requests
// sit unadjudicated.
func (a *Application) startReminderJob(ctx context.Context, notifier notify.Notifier) error {
	a.cron = cron.New()
	_, err := a.cron.AddFunc("*/30 * * * *", func() {
		jCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		deposits, err := a.srv.AdminService.PendingDeposits(jCtx)
		if err != nil {
			zap.L().Warn("reminder: pending deposits read failed", zap.Error(err))
			return
		}
		withdrawals, err := a.srv.AdminService.PendingWithdrawals(jCtx)
		if err != nil {
			zap.L().Warn("reminder: pending withdrawals read failed", zap.Error(err))
			return
		}
		if len(deposits) == 0 && len(withdrawals) == 0 {
			return
		}
		notifier.Notify(notify.EventDeposit, fmt.Sprintf(
			"Pending requests: %d deposits, %d withdrawals awaiting review",
			len(deposits), len(withdrawals)))
	})
	if err != nil {
		return err
	}
	a.cron.Start()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()
		<-a.cron.Stop().Done()
	}()

	return nil
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
