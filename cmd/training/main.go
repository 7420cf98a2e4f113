package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MerabQardava/EpamGymProject/internal/client"
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
	db, err := database.NewPostgresDB(cfg, database.TrainingMigrations)
	if err != nil {
		logger.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	logger.Info("Database connected")

	// RabbitMQ producer
	conn, ch, err := messaging.Connect(cfg.RabbitURL, cfg.QueueName)
	if err != nil {
		logger.Fatalf("RabbitMQ connection failed: %v", err)
	}
	defer conn.Close()
	defer ch.Close()
	logger.Info("RabbitMQ connected")

	producer := messaging.NewRabbitProducer(ch, cfg.QueueName, logger)

	// Синхронный клиент workload-сервиса через circuit breaker
	workloadClient := client.NewWorkloadClient(cfg.WorkloadBaseURL, cfg.BreakerFailureThreshold, logger)

	// Репозиторий и бизнес-логика
	trainingRepo := repository.NewTrainingRepository(db)
	trainingUC := usecase.NewTrainingUseCase(trainingRepo, workloadClient, producer, cfg.BreakerFailureThreshold, logger)

	// JWT
	jwtService := security.NewJWTService(cfg.JWTSecret)

	// Echo + Handlers
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(handler.TransactionIDMiddleware())
	e.Use(handler.LoggingMiddleware(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	trainingHandler := handler.NewTrainingHandler(trainingUC, logger)
	protected := e.Group("", handler.JWTMiddleware(jwtService, logger))
	protected.POST("/training/trainee/:traineeUsername/trainer/:trainerUsername", trainingHandler.AddTraining)
	protected.DELETE("/training/:trainingId", trainingHandler.DeleteTraining)
	protected.POST("/training/trainer/:trainerUsername/hours", trainingHandler.GetTrainerWorkingHours)

	// Запуск сервера
	go func() {
		if err := e.Start(":" + cfg.TrainingPort); err != nil {
			logger.Infof("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatalf("Shutdown failed: %v", err)
	}

	logger.Info("Server exited")
}
