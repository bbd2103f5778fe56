package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Domenick1991/dccbooking/config"
	"github.com/Domenick1991/dccbooking/internal/bootstrap"
	"github.com/Domenick1991/dccbooking/internal/email"
	"github.com/Domenick1991/dccbooking/internal/kafka"
	"github.com/Domenick1991/dccbooking/internal/logger"
	"github.com/Domenick1991/dccbooking/internal/metrics"
	"github.com/Domenick1991/dccbooking/internal/service/booking"
	"github.com/Domenick1991/dccbooking/internal/worker"
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

	if err := checkConfig(cfg); err != nil {
		appLog.Fatal("invalid worker config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := bootstrap.NewStore(ctx, cfg, appLog)
	if err != nil {
		appLog.Fatal("open booking store", zap.Error(err))
	}
	defer closeStore()

	m := metrics.NewMetrics("dccbooking_worker")
	producer := kafka.NewProducer(cfg.Kafka.Brokers, appLog.Named("kafka"))
	defer producer.Close()

	bookingService := booking.NewBookingService(
		store,
		producer,
		cfg.Kafka.BookingEventsTopic,
		booking.GeneratorConfig{
			Min:    cfg.Demo.PassengersMin,
			Max:    cfg.Demo.PassengersMax,
			Random: cfg.Demo.PassengersRandom,
		},
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithLogger(appLog.Named("booking")),
		booking.WithMetrics(m),
	)

	var consumers []*kafka.Consumer
	var handlers []kafka.Handler

	if cfg.Kafka.ResultsTopic != "" {
		consumers = append(consumers, kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.ResultsTopic, appLog))
		handlers = append(handlers, worker.ResultHandler(bookingService, appLog.Named("results")))
	}
	if cfg.Kafka.NotificationsTopic != "" {
		sender := email.NewSender(appLog.Named("email"))
		consumers = append(consumers, kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, appLog))
		handlers = append(handlers, worker.NotificationHandler(sender, appLog.Named("notifications")))
	}

	var wg sync.WaitGroup
	for i := range consumers {
		consumer, handler := consumers[i], handlers[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer consumer.Close()
			if err := consumer.Consume(ctx, handler); err != nil {
				appLog.Error("consumer stopped", zap.Error(err))
				stop()
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := bootstrap.Run(ctx, cfg.Worker.MetricsAddress, bootstrap.NewMetricsRouter(m), appLog); err != nil {
			appLog.Error("metrics server stopped", zap.Error(err))
			stop()
		}
	}()

	appLog.Info("worker started", zap.Int("consumers", len(consumers)))
	wg.Wait()
	appLog.Info("worker stopped")
}

// checkConfig rejects setups where the worker could never see bookings or events.
func checkConfig(cfg *config.Config) error {
	if !cfg.Kafka.Enabled() {
		return errors.New("worker requires kafka.brokers")
	}
	if cfg.Store.Driver == config.StoreMemory {
		return errors.New("worker requires a shared store: set store.driver to postgres or redis")
	}
	if cfg.Kafka.ResultsTopic == "" && cfg.Kafka.NotificationsTopic == "" {
		return errors.New("worker has nothing to consume: set kafka.results_topic or kafka.notifications_topic")
	}
	return nil
}
