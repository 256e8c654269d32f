package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	config "github.com/anjiri1684/alx_travel/configs"
	"github.com/anjiri1684/alx_travel/database"
	"github.com/anjiri1684/alx_travel/handlers"
	"github.com/anjiri1684/alx_travel/jobs"
	"github.com/anjiri1684/alx_travel/mq"
	"github.com/anjiri1684/alx_travel/notifications"
	"github.com/anjiri1684/alx_travel/observability"
	"github.com/anjiri1684/alx_travel/payments"
	"github.com/anjiri1684/alx_travel/routes"
	"github.com/anjiri1684/alx_travel/services"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.InitLogger("alx-travel-api", cfg.App.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.ConnectDB(cfg.Database.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	if err := database.SeedRoles(db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed roles")
	}

	dispatcher, closeDispatcher := newDispatcher(ctx, cfg, db)
	defer closeDispatcher()

	chapa := payments.NewChapaClient(payments.Config{
		SecretKey: cfg.Chapa.SecretKey,
		BaseURL:   cfg.Chapa.BaseURL,
		Currency:  cfg.Chapa.Currency,
		Timeout:   cfg.Chapa.Timeout,
	})
	if !chapa.Configured() {
		log.Warn().Msg("Chapa is not configured, bookings will be created without a checkout")
	}

	blacklist, purger := newBlacklist(ctx, cfg, db)

	paymentSvc := services.NewPaymentService(db, chapa, dispatcher, cfg.App.PaymentReturnBase())
	bookingSvc := services.NewBookingService(db, paymentSvc, dispatcher)
	authSvc := services.NewAuthService(db, services.AuthConfig{
		Secret:     cfg.JWT.Secret,
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
	}, blacklist)

	scheduler, err := jobs.NewScheduler(ctx, jobs.Schedule{
		Reconcile:  cfg.Jobs.ReconcileSchedule,
		PendingAge: cfg.Jobs.PendingAge,
	}, paymentSvc, purger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to schedule jobs")
	}
	scheduler.Start()
	defer scheduler.Stop()
	log.Info().Str("reconcile", cfg.Jobs.ReconcileSchedule).Msg("cron jobs scheduled")

	h := handlers.New(db, authSvc, bookingSvc, paymentSvc, handlers.UploadConfig{
		CloudinaryURL: cfg.Cloudinary.URL,
		Folder:        cfg.Cloudinary.Folder,
	})
	app := routes.NewApp(h, routes.Options{
		AppName:   cfg.App.Name,
		JWTSecret: cfg.JWT.Secret,
		AccessLog: true,
	})

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.App.HTTPPort).Msg("server is running")
	if err := app.Listen(":" + cfg.App.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("server failed to start")
	}
}

// newDispatcher publishes tasks to RabbitMQ when a broker is configured and
// runs them in-process otherwise.
func newDispatcher(ctx context.Context, cfg *config.Config, db *gorm.DB) (notifications.Dispatcher, func()) {
	if url := cfg.RabbitMQ.BrokerURL(); url != "" {
		pub, err := mq.NewPublisher(url, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		log.Info().Str("exchange", cfg.RabbitMQ.Exchange).Msg("notifications go through RabbitMQ")
		return notifications.NewAMQPDispatcher(pub), func() { _ = pub.Close() }
	}

	mailer := notifications.NewMailer(cfg.Email)
	local := notifications.NewLocalDispatcher(notifications.NewProcessor(db, mailer), 256, 2)
	local.Start(ctx)
	log.Warn().Msg("RABBITMQ_HOST not set, notifications run in-process")
	return local, local.Close
}

// newBlacklist prefers Redis; the database store also needs the purge job.
func newBlacklist(ctx context.Context, cfg *config.Config, db *gorm.DB) (services.TokenBlacklist, jobs.ExpiredTokenPurger) {
	if cfg.Redis.URL != "" {
		client, err := services.NewRedisClient(ctx, cfg.Redis.URL)
		if err == nil {
			return services.NewRedisBlacklist(client), nil
		}
		log.Error().Err(err).Msg("falling back to database token blacklist")
	}
	bl := services.NewGormBlacklist(db)
	return bl, bl
}
