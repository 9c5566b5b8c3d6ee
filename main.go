package main

import (
	"log"

	"go.uber.org/zap"

	"mealdrop/config"
	httpapi "mealdrop/internal/api/http"
	"mealdrop/internal/eventbus"
	"mealdrop/internal/logger"
	"mealdrop/internal/service"
	"mealdrop/internal/storage"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.LogLevel, cfg.Environment, "mealdrop"); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.L().Sync()

	medium := selectMedium(cfg)
	store := storage.NewStore(medium)
	bus := eventbus.NewBus()

	if cfg.KafkaEnabled {
		forwarder := eventbus.NewKafkaForwarder(bus, config.NewKafkaWriter(cfg))
		defer forwarder.Close()
		logger.L().Info("kafka event forwarding enabled", zap.String("topic", cfg.KafkaTopic))
	}

	svc := service.New(store, bus)
	svc.StrictTransitions = cfg.StrictTransitions

	qr := service.DefaultQRGenerator{BaseURL: cfg.BaseURL}
	handler := httpapi.NewHandler(svc, qr)
	router := httpapi.NewRouter(handler)

	if err := httpapi.StartServer(cfg.Addr, router); err != nil {
		logger.L().Fatal("http server stopped", zap.Error(err))
	}
}

func selectMedium(cfg *config.Config) storage.Medium {
	switch cfg.Medium {
	case "redis":
		return storage.NewRedisMedium(config.MustInitRedis(cfg), "mealdrop")
	case "postgres":
		medium, err := storage.NewPostgresMedium(config.MustInitPostgres(cfg))
		if err != nil {
			log.Fatal("Failed to prepare snapshot table:", err)
		}
		return medium
	case "memory":
		return storage.NewMemoryMedium()
	default:
		medium, err := storage.NewFileMedium(cfg.DataDir)
		if err != nil {
			log.Fatal("Failed to prepare data directory:", err)
		}
		return medium
	}
}
