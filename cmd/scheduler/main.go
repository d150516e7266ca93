package main

import (
	"context"
	"flag"
	"time"

	"github.com/raulodev/bill-flow/internal/config"
	"github.com/raulodev/bill-flow/internal/logger"
	"github.com/raulodev/bill-flow/internal/postgres"
	"github.com/raulodev/bill-flow/internal/repository"
	"github.com/raulodev/bill-flow/internal/service"
	"github.com/raulodev/bill-flow/internal/types"
	"github.com/raulodev/bill-flow/internal/validator"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

var runOnce = flag.Bool("once", false, "run one billing cycle for today and exit")

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	flag.Parse()

	fx.New(
		fx.Provide(
			validator.NewValidator,
			config.NewConfig,
			provideLogger,
			postgres.NewClient,

			// Repositories
			repository.NewAccountRepository,
			repository.NewProductRepository,
			repository.NewSubscriptionRepository,
			repository.NewInvoiceRepository,
			repository.NewCreditRepository,

			// Services
			service.NewServiceParams,
			service.NewSubscriptionService,
			service.NewInvoiceService,
			service.NewCreditService,
			service.NewBillingRunService,
		),
		fx.Invoke(startScheduler),
	).Run()
}

func provideLogger(cfg *config.Configuration) (*logger.Logger, error) {
	return logger.NewLogger(string(cfg.Logging.Level))
}

// runContext seeds the background context the way a request middleware would
func runContext() context.Context {
	ctx := context.Background()
	ctx = types.SetTenantID(ctx, types.DefaultTenantID)
	ctx = types.SetUserID(ctx, types.DefaultUserID)
	return ctx
}

func startScheduler(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg *config.Configuration,
	log *logger.Logger,
	db postgres.IClient,
	billingRunService service.BillingRunService,
) {
	runBilling := func() {
		refDate := types.ToDate(time.Now().UTC())
		if _, err := billingRunService.GenerateInvoices(runContext(), refDate); err != nil {
			log.Errorw("billing run failed", "reference_date", refDate, "error", err)
		}
	}

	if *runOnce {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go func() {
					runBilling()
					_ = shutdowner.Shutdown()
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return db.Close()
			},
		})
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.Billing.Schedule, runBilling); err != nil {
		log.Fatalw("invalid billing schedule", "schedule", cfg.Billing.Schedule, "error", err)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting billing scheduler", "schedule", cfg.Billing.Schedule)
			c.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			<-c.Stop().Done()
			return db.Close()
		},
	})
}
