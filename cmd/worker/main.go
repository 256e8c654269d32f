package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/anjiri1684/alx_travel/configs"
	"github.com/anjiri1684/alx_travel/database"
	"github.com/anjiri1684/alx_travel/mq"
	"github.com/anjiri1684/alx_travel/notifications"
	"github.com/anjiri1684/alx_travel/observability"
	"github.com/rs/zerolog/log"
)

var bindings = []string{"booking.*", "payment.*"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.InitLogger("alx-travel-worker", cfg.App.IsDevelopment())

	url := cfg.RabbitMQ.BrokerURL()
	if url == "" {
		log.Fatal().Msg("RABBITMQ_HOST is required for the worker")
	}

	db, err := database.ConnectDB(cfg.Database.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var consumer *mq.Consumer
	for {
		consumer, err = mq.NewConsumer(url, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.Queue, bindings, 16)
		if err == nil {
			break
		}
		log.Warn().Err(err).Msg("connect failed, retry in 2s")
		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
	}
	defer consumer.Close()

	deliveries, err := consumer.Deliveries(ctx, "alx-travel-worker")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start consuming")
	}

	mailer := notifications.NewMailer(cfg.Email)
	processor := notifications.NewProcessor(db, mailer)

	log.Info().Str("queue", cfg.RabbitMQ.Queue).Strs("bindings", bindings).Msg("worker started")
	notifications.Consume(ctx, deliveries, processor)
	log.Info().Msg("worker stopped")
}
