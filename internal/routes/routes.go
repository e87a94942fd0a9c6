package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/relief-vouchers/relief_vouchers/internal/config"
	"github.com/relief-vouchers/relief_vouchers/internal/counter"
	"github.com/relief-vouchers/relief_vouchers/internal/household"
	"github.com/relief-vouchers/relief_vouchers/internal/ledger"
	"github.com/relief-vouchers/relief_vouchers/internal/merchant"
	"github.com/relief-vouchers/relief_vouchers/internal/metrics"
	"github.com/relief-vouchers/relief_vouchers/internal/middleware"
	"github.com/relief-vouchers/relief_vouchers/internal/notification"
	"github.com/relief-vouchers/relief_vouchers/internal/redemption"
	"github.com/relief-vouchers/relief_vouchers/internal/settlement"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.Env)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.Env)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	registry := prometheus.NewRegistry()
	RegisterMetricsRoute(app, registry)

	// Storage backends.
	var householdRepo household.Repository
	var merchantRepo merchant.Repository
	var counters counter.Allocator
	if d.DB != nil {
		householdRepo = household.NewPostgresRepository(d.DB)
		merchantRepo = merchant.NewPostgresRepository(d.DB)
		pgCounters, err := counter.NewPostgresAllocator(context.Background(), d.DB)
		if err != nil {
			return fmt.Errorf("seed counters: %w", err)
		}
		counters = pgCounters
	} else {
		householdRepo = household.NewMemoryRepository()
		merchantRepo = merchant.NewMemoryRepository()
		counters = counter.NewMemoryAllocator()
	}

	banks, err := bankDirectory(d.Cfg)
	if err != nil {
		return err
	}

	var codes redemption.CodeStore
	if d.Cache != nil {
		codes = redemption.NewRedisStore(d.Cache, 2*d.Cfg.CodeTTL)
	} else {
		codes = redemption.NewMemoryStore(d.Cfg.CodeTTL)
	}

	sink, err := settlementSink(d)
	if err != nil {
		return err
	}

	entitlements := ledger.New(householdRepo)
	householdSvc := household.NewService(householdRepo)
	merchantSvc := merchant.NewService(merchantRepo, banks)

	redemptionSvc, err := redemption.NewService(redemption.Deps{
		Ledger:      entitlements,
		Merchants:   merchantSvc,
		Codes:       codes,
		Counters:    counters,
		Settlements: sink,
		Notifier:    notification.NewLoggerNotifier(d.Logger),
		Metrics:     metrics.New(registry),
		CodeTTL:     d.Cfg.CodeTTL,
		CodeLength:  d.Cfg.CodeLength,
	})
	if err != nil {
		return err
	}

	householdHandler := household.NewHandler(householdSvc)
	merchantHandler := merchant.NewHandler(merchantSvc)
	redemptionHandler := redemption.NewHandler(redemptionSvc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterHouseholdRoutes(api, householdHandler)
	RegisterMerchantRoutes(api, merchantHandler)

	issueLimiter := middleware.IssueRateLimit(d.Cache, 10)
	RegisterRedemptionRoutes(api, redemptionHandler, issueLimiter)

	return nil
}

// bankDirectory loads the merchant bank-code directory from the configured
// CSV, falling back to a small built-in set in dev so the service can run
// without reference data on disk.
func bankDirectory(cfg config.Config) (merchant.BankDirectory, error) {
	if cfg.BankCodeFile != "" {
		dir, err := merchant.LoadBankDirectory(cfg.BankCodeFile)
		if err != nil {
			return nil, fmt.Errorf("load bank codes: %w", err)
		}
		return dir, nil
	}
	if !cfg.IsDev() {
		return nil, fmt.Errorf("BANK_CODE_FILE is required when APP_ENV=%s", cfg.Env)
	}
	return merchant.StaticBankDirectory{
		"7171": {"001", "002", "081"},
		"7339": {"501", "502"},
	}, nil
}

// settlementSink pairs the durable store with the hourly CSV export when a
// directory is configured.
func settlementSink(d Deps) (settlement.Sink, error) {
	var sinks []settlement.Sink
	if d.DB != nil {
		sinks = append(sinks, settlement.NewPostgresSink(d.DB))
	}
	if d.Cfg.SettlementDir != "" {
		sinks = append(sinks, settlement.NewCSVSink(d.Cfg.SettlementDir))
	}
	if len(sinks) == 0 {
		if !d.Cfg.IsDev() {
			return nil, fmt.Errorf("no settlement sink configured")
		}
		sinks = append(sinks, settlement.NewMemorySink())
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return settlement.NewFanout(sinks...), nil
}
