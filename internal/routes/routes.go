package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/trunorth/platform/internal/assistant"
	"github.com/trunorth/platform/internal/auth"
	"github.com/trunorth/platform/internal/config"
	"github.com/trunorth/platform/internal/donations"
	"github.com/trunorth/platform/internal/emergency"
	"github.com/trunorth/platform/internal/events"
	"github.com/trunorth/platform/internal/identity"
	"github.com/trunorth/platform/internal/middleware"
	"github.com/trunorth/platform/internal/notification"
	"github.com/trunorth/platform/internal/shop"
	"github.com/trunorth/platform/internal/social"
	"github.com/trunorth/platform/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. It returns the
// wallet service so the caller can attach the settlement sweeper to it.
func Setup(app *fiber.App, d Deps) (*wallet.Service, error) {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return nil, fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return nil, fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	var notifier notification.Notifier
	if d.Cfg.WebhookURL != "" {
		notifier = notification.NewWebhookNotifier(d.Cfg.WebhookURL)
	} else {
		notifier = notification.NewLoggerNotifier(d.Logger)
	}

	var identityRepo identity.Repository
	var walletRepo wallet.Repository
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
		walletRepo = wallet.NewPostgresRepository(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
		walletRepo = wallet.NewMemoryRepository()
	}

	identitySvc := identity.NewService(identityRepo)
	authSvc := auth.NewService(d.Cfg, identityRepo)
	walletSvc := wallet.NewService(walletRepo, d.Cfg.Currency, notifier)
	shopSvc := shop.NewService(shop.NewMemoryRepository(), d.Cfg.Currency)
	eventsSvc := events.NewService(events.NewMemoryRepository(), d.Cfg.Currency)
	donationsSvc := donations.NewService(donations.NewMemoryRepository(), d.Cfg.Currency)
	emergencySvc := emergency.NewService(emergency.NewMemoryRepository(), notifier)
	socialSvc := social.NewService(social.NewMemoryRepository())
	assistantSvc := assistant.NewService(assistant.NewMemoryRepository())

	api := app.Group("/api")

	requireAuth := middleware.RequireAuth(d.Cfg)
	optionalAuth := middleware.OptionalAuth(d.Cfg)

	RegisterAuthRoutes(api, auth.NewHandler(identitySvc, authSvc), middleware.LoginRateLimit(d.Cache, d.Cfg.LoginRateLimit), requireAuth)

	walletGroup := api.Group("/wallet", requireAuth)
	if d.Cache != nil {
		walletGroup.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}
	RegisterWalletRoutes(walletGroup, wallet.NewHandler(walletSvc))

	RegisterShopRoutes(api, shop.NewHandler(shopSvc), requireAuth)
	RegisterEventRoutes(api, events.NewHandler(eventsSvc), requireAuth)
	RegisterDonationRoutes(api, donations.NewHandler(donationsSvc), requireAuth, optionalAuth)
	RegisterEmergencyRoutes(api, emergency.NewHandler(emergencySvc), requireAuth, optionalAuth)
	RegisterSocialRoutes(api, social.NewHandler(socialSvc), requireAuth)
	RegisterAssistantRoutes(api, assistant.NewHandler(assistantSvc), requireAuth, optionalAuth)

	return walletSvc, nil
}
