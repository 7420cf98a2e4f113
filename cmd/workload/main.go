package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MerabQardava/EpamGymProject/internal/config"
	"github.com/MerabQardava/EpamGymProject/internal/database"
	"github.com/MerabQardava/EpamGymProject/internal/handler"
	"github.com/MerabQardava/EpamGymProject/internal/messaging"
	"github.com/MerabQardava/EpamGymProject/internal/repository"
	"github.com/MerabQardava/EpamGymProject/internal/security"
	"github.com/MerabQardava/EpamGymProject/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	// Логгер
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Конфиг
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warnf(".env not found: %v", err)
	}

	// База данных
	db, err := database.NewPostgresDB(cfg, database.WorkloadMigrations)
	if err != nil {
		logger.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	logger.Info("Database connected")

	// Репозиторий и бизнес-логика
	trainerRepo := repository.NewTrainerRepository(db)
	workloadUC := usecase.NewWorkloadUseCase(trainerRepo)

	// JWT
	jwtService := security.NewJWTService(cfg.JWTSecret)

	// RabbitMQ consumer
	conn, ch, err := messaging.Connect(cfg.RabbitURL, cfg.QueueName)
	if err != nil {
		logger.Fatalf("RabbitMQ connection failed: %v", err)
	}
	defer conn.Close()
	defer ch.Close()
	logger.Info("RabbitMQ connected")

	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	consumer := messaging.NewMessageConsumer(ch, cfg.QueueName, jwtService, workloadUC, logger)
	go func() {
		if err := consumer.Run(consumerCtx); err != nil && consumerCtx.Err() == nil {
			logger.Errorf("Consumer stopped: %v", err)
		}
	}()

	// Echo + Handlers
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(handler.TransactionIDMiddleware())
	e.Use(handler.LoggingMiddleware(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	trainerHandler := handler.NewTrainerHandler(workloadUC, logger)
	protected := e.Group("", handler.JWTMiddleware(jwtService, logger))
	protected.POST("/trainer/:username/:action", trainerHandler.UpdateWorkingHours)
	protected.POST("/trainer/:username", trainerHandler.GetWorkingHours)

	// Запуск сервера
	go func() {
		if err := e.Start(":" + cfg.WorkloadPort); err != nil {
			logger.Infof("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	consumerCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatalf("Shutdown failed: %v", err)
	}

	logger.Info("Server exited")
}
