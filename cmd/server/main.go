package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"supplychain-admin/internal/configs"
	"supplychain-admin/internal/repository"
	"supplychain-admin/internal/repository/memory"
	"supplychain-admin/internal/repository/postgres"
	"supplychain-admin/internal/service"
	transport "supplychain-admin/internal/transport/http"
	"supplychain-admin/internal/transport/kafka"
)

// @title supply chain admin
// @version 1.0
// @description Orders, deliveries and the mutual link between them. Every write that touches the link runs in one transaction so both rows always agree.

// @host localhost:8081
// @basePath /

func main() {
	cfg, err := configs.LoadConfig(".env")
	if err != nil {
		logrus.Fatalf("config load: %s", err)
	}
	if err := cfg.SetupLogging(); err != nil {
		logrus.Fatalf("logging: %s", err)
	}
	logrus.Print("config parsed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore := openStore(cfg)
	defer closeStore()

	opts := []service.Option{service.WithTxTimeout(cfg.TxTimeout)}
	var pub *kafka.Publisher
	if cfg.KafkaEnabled {
		pub = kafka.NewPublisher(cfg.KafkaBrokersSlice(), cfg.KafkaEventsTopic)
		opts = append(opts, service.WithPublisher(pub))
		logrus.WithField("topic", cfg.KafkaEventsTopic).Print("event publishing enabled")
	}
	svc := service.NewService(store, opts...)

	var wg sync.WaitGroup
	var consumer *kafka.Consumer
	if cfg.KafkaEnabled {
		consumer = kafka.NewConsumer(kafka.Config{
			Brokers:    cfg.KafkaBrokersSlice(),
			GroupID:    cfg.KafkaGroupID,
			Topic:      cfg.KafkaStatusTopic,
			DLQ:        cfg.KafkaDLQTopic,
			MaxRetries: cfg.KafkaMaxRetries,
		}, svc)

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := consumer.Subscribe(ctx); err != nil {
				logrus.Errorf("consumer stopped: %v", err)
				cancel()
			}
		}()
		logrus.WithField("topic", cfg.KafkaStatusTopic).Print("kafka subscription started")
	}

	h := transport.NewHandler(svc)
	srv := new(transport.Server)

	go func() {
		if err := srv.Run(cfg.HTTPAddr, h.InitRoutes()); err != nil {
			logrus.Errorf("http run: %v", err)
			cancel()
		}
	}()
	logrus.Printf("http server started on %s", cfg.HTTPAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-quit:
		logrus.Print("shutdown signal received")
	case <-ctx.Done():
		logrus.Print("context canceled, shutting down")
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("http shutdown: %s", err)
	}

	cancel()
	wg.Wait()
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logrus.Errorf("consumer close: %s", err)
		}
	}
	if pub != nil {
		if err := pub.Close(); err != nil {
			logrus.Errorf("publisher close: %s", err)
		}
	}
	logrus.Print("service stopped")
}

func openStore(cfg configs.Config) (repository.Store, func()) {
	if cfg.Store == configs.StoreMemory {
		logrus.Warn("using in-memory store, data is lost on exit")
		return memory.NewStore(), func() {}
	}

	db, err := postgres.ConnectDB(cfg.Postgres())
	if err != nil {
		logrus.Fatalf("postgres connect: %s", err)
	}
	if err := db.DB().Ping(); err != nil {
		logrus.Fatalf("postgres ping: %s", err)
	}
	logrus.WithField("max_conns", cfg.DBMaxConns).Print("connected to postgres")

	if cfg.AutoMigrate {
		if err := postgres.Migrate(db); err != nil {
			logrus.Fatalf("migrate: %s", err)
		}
		logrus.Print("schema migrated")
	}

	return repository.NewStore(db), func() {
		if derr := db.Close(); derr != nil {
			logrus.Errorf("db close: %v", derr)
		}
	}
}
