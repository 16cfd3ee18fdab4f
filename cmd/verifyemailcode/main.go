package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"
	"github.com/tendant/verify-email-code/pkg/config"
	"github.com/tendant/verify-email-code/pkg/emailcode"
	"github.com/tendant/verify-email-code/pkg/emailcode/api"
	"github.com/tendant/verify-email-code/pkg/notification"
	"github.com/tendant/verify-email-code/pkg/requiredaction"
	"github.com/tendant/verify-email-code/pkg/sessions"
	"github.com/tendant/verify-email-code/pkg/user"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{AddSource: true})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "err", err)
		os.Exit(1)
	}

	controllerConfig, err := cfg.VerifyEmailCode.ToControllerConfig()
	if err != nil {
		slog.Error("Invalid verify email code configuration", "err", err)
		os.Exit(1)
	}

	// users
	var userRepo user.Repository
	switch cfg.Persistence.Users {
	case config.StorePostgres:
		dbConfig := cfg.Database.ToDbConfig()
		pool, err := dbutils.NewDbPool(context.Background(), dbConfig)
		if err != nil {
			slog.Error("Failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host, "port", dbConfig.Port, "user", dbConfig.User)
			os.Exit(-1)
		}
		defer pool.Close()
		userRepo = user.NewPostgresUserRepository(pool)
	default:
		userRepo = user.NewInMemoryUserRepository()
	}
	userService := user.NewUserService(userRepo)

	// authentication sessions
	var sessionRepo sessions.Repository
	switch cfg.Persistence.Sessions {
	case config.StoreRedis:
		client := redis.NewClient(cfg.Redis.Options())
		if err := client.Ping(context.Background()).Err(); err != nil {
			slog.Error("Failed connecting to redis", "addr", cfg.Redis.Addr, "err", err)
			os.Exit(-1)
		}
		defer client.Close()
		sessionRepo = sessions.NewRedisSessionRepository(client, sessions.WithKeyPrefix(cfg.Redis.KeyPrefix))
	default:
		sessionRepo = sessions.NewInMemorySessionRepository()
	}

	notificationManager, err := notification.NewNotificationManagerWithOptions(
		notification.WithSMTP(cfg.Email.ToSMTPConfig()),
		notification.WithDefaultTemplates(),
	)
	if err != nil {
		slog.Error("Failed initializing notification manager", "err", err)
		os.Exit(-1)
	}

	issuer, err := cfg.ActionToken.NewIssuer()
	if err != nil {
		slog.Error("Failed creating action token issuer", "err", err)
		os.Exit(-1)
	}

	controller, err := emailcode.NewController(controllerConfig, emailcode.Dependencies{
		Notes:    sessionRepo,
		Users:    userService,
		Links:    issuer,
		Notifier: notificationManager,
	})
	if err != nil {
		slog.Error("Failed creating verify email code controller", "err", err)
		os.Exit(-1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := controller.Shutdown(ctx); err != nil {
			slog.Error("Failed shutting down controller", "err", err)
		}
	}()

	registry := requiredaction.NewRegistry()
	if err := registry.Register(requiredaction.Provider{
		ID:          emailcode.ProviderID,
		DisplayText: emailcode.DisplayText,
		Action:      controller,
	}); err != nil {
		slog.Error("Failed registering required action", "err", err)
		os.Exit(-1)
	}

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	server.R.Mount("/users", user.Handler(user.NewHandle(userService)))
	api.RegisterRoutes(server.R, api.NewHandler(controller, registry, sessionRepo, userService, issuer))

	server.Run()
}
