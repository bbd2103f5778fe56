package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/dccbooking/config"
	"github.com/Domenick1991/dccbooking/internal/bootstrap"
	"github.com/Domenick1991/dccbooking/internal/kafka"
	"github.com/Domenick1991/dccbooking/internal/logger"
	"github.com/Domenick1991/dccbooking/internal/metrics"
	"github.com/Domenick1991/dccbooking/internal/service/booking"
	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer appLog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := bootstrap.NewStore(ctx, cfg, appLog)
	if err != nil {
		appLog.Fatal("open booking store", zap.Error(err))
	}
	defer closeStore()

	m := metrics.NewMetrics("dccbooking")
	opts := []booking.BookingServiceOption{
		booking.WithFaker(gofakeit.New(cfg.Demo.Seed)),
		booking.WithLogger(appLog.Named("booking")),
		booking.WithMetrics(m),
	}

	var producer booking.Producer
	if cfg.Kafka.Enabled() {
		kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers, appLog.Named("kafka"))
		defer kafkaProducer.Close()
		if err := kafkaProducer.CheckConnection(ctx); err != nil {
			appLog.Warn("kafka unavailable, events may be lost", zap.Error(err))
		}
		producer = kafkaProducer
		opts = append(opts, booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic))
	}

	bookingService := booking.NewBookingService(
		store,
		producer,
		cfg.Kafka.BookingEventsTopic,
		booking.GeneratorConfig{
			Min:    cfg.Demo.PassengersMin,
			Max:    cfg.Demo.PassengersMax,
			Random: cfg.Demo.PassengersRandom,
		},
		opts...,
	)

	router, err := bootstrap.NewRouter(cfg, bookingService, m, appLog)
	if err != nil {
		appLog.Fatal("build router", zap.Error(err))
	}

	if err := bootstrap.Run(ctx, cfg.HTTP.Address, router, appLog); err != nil {
		appLog.Fatal("server error", zap.Error(err))
	}
}
