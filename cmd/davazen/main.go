package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	authrepo "davazen/internal/auth/adapters/repository"
	authsvc "davazen/internal/auth/adapters/services"
	authapp "davazen/internal/auth/app"
	caserepo "davazen/internal/cases/adapters/repository"
	caseapp "davazen/internal/cases/app"
	"davazen/internal/config"
	httpapi "davazen/internal/gateway/adapters/http"
	storeadapters "davazen/internal/storage/adapters"
	"davazen/pkg/logger"
	"davazen/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "DAVAZEN_LOGGER_MODE"
	EnvLoggerLevel = "DAVAZEN_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrOpenStore            = "failed to open storage"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "davazen service started"
	LogServiceShutdownDone = "davazen service shutdown complete"
	LogOpeningStore        = "opening storage"
	LogClosingStore        = "closing storage"
	LogInitServices        = "initializing services"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogOpeningStore, zap.String("driver", cfg.Storage.Driver))
		store, err := storeadapters.NewStore(ctx, cfg)
		if err != nil {
			log.Error(ctx, ErrOpenStore, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitServices)
		factory := authsvc.NewServiceFactory(cfg.JWT.Secret, cfg.JWT.GetTokenTTL(), cfg.JWT.GetBCryptCost())
		userRepo := authrepo.NewUserRepository(store)

		app := httpapi.NewApp(&cfg.HTTP, httpapi.Services{
			Auth:  authapp.NewAuthUseCase(userRepo, factory.PasswordService(), factory.TokenService()),
			Users: authapp.NewUserUseCase(userRepo),
			Cases: caseapp.NewCaseUseCase(caserepo.NewCaseRepository(store)),
		})

		serveCtx, stopServing := context.WithCancel(ctx)
		defer stopServing()

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := app.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
				exitCode = 1
				stopServing()
			}
		}()

		shutdown.Wait(serveCtx, cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return app.ShutdownWithContext(ctx)
			},
		)

		// Хранилище закрывается после остановки сервера, чтобы не оборвать запросы.
		log.Info(ctx, LogClosingStore)
		if err := store.Close(ctx); err != nil {
			log.Error(ctx, LogClosingStore, zap.Error(err))
		}

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
