package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/MerabQardava/EpamGymProject/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// TrainingUseCase реализует оркестрацию тренировок: сохранение сессии и
// отправку дельты часов workload-сервису синхронно и асинхронно.
// Запрос HOURS идет через собственный circuit breaker: при открытом breaker
// вызов сразу завершается ErrWorkloadUnavailable, очередь не трогается.
type TrainingUseCase struct {
	trainingRepo   domain.TrainingRepository
	workloadClient domain.WorkloadClient
	producer       domain.MessageProducer
	breaker        *gobreaker.CircuitBreaker
	logger         *logrus.Logger
}

// NewTrainingUseCase создает новый экземпляр TrainingUseCase.
func NewTrainingUseCase(
	trainingRepo domain.TrainingRepository,
	workloadClient domain.WorkloadClient,
	producer domain.MessageProducer,
	failureThreshold uint32,
	logger *logrus.Logger,
) domain.TrainingUseCase {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "workloadQueue",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})

	return &TrainingUseCase{
		trainingRepo:   trainingRepo,
		workloadClient: workloadClient,
		producer:       producer,
		breaker:        breaker,
		logger:         logger,
	}
}

// AddTraining сохраняет тренировку и отправляет ADD-дельту workload-сервису.
// Синхронный вызов идет через circuit breaker; его отказ возвращается как
// ErrWorkloadUnavailable, при этом сама тренировка уже сохранена.
func (uc *TrainingUseCase) AddTraining(ctx context.Context, meta domain.RequestMeta, traineeUsername, trainerUsername string, req domain.CreateTrainingRequest) (*domain.Training, error) {
	if req.DurationMinutes < 0 {
		return nil, domain.ErrInvalidDuration
	}

	training := &domain.Training{
		TraineeUsername: traineeUsername,
		TrainerUsername: trainerUsername,
		Name:            req.TrainingName,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
	}

	training, err := uc.trainingRepo.Create(ctx, training)
	if err != nil {
		return nil, err
	}

	uc.logger.WithFields(logrus.Fields{
		"training_id": training.ID,
		"trainer":     trainerUsername,
		"tx_id":       meta.TransactionID,
	}).Info("Training created")

	payload := domain.UpdateWorkingHoursRequest{
		FirstName:        req.TrainerFirstName,
		LastName:         req.TrainerLastName,
		IsActive:         true,
		Date:             req.Date,
		TrainingDuration: req.DurationMinutes,
	}

	if _, err := uc.workloadClient.UpdateWorkingHours(ctx, meta, trainerUsername, domain.ActionAdd, payload); err != nil {
		uc.logger.WithError(err).WithField("trainer", trainerUsername).Error("Workload update failed for ADD")
		return nil, domain.ErrWorkloadUnavailable
	}

	if err := uc.producer.Send(ctx, meta, trainerUsername, domain.ActionAdd, payload); err != nil {
		uc.logger.WithError(err).WithField("trainer", trainerUsername).Warn("Async ADD message failed")
	}

	return training, nil
}

// DeleteTraining удаляет тренировку и отправляет симметричную REMOVE-дельту.
func (uc *TrainingUseCase) DeleteTraining(ctx context.Context, meta domain.RequestMeta, trainingID int) error {
	training, err := uc.trainingRepo.GetByID(ctx, trainingID)
	if err != nil {
		return err
	}

	if err := uc.trainingRepo.Delete(ctx, trainingID); err != nil {
		return err
	}

	uc.logger.WithFields(logrus.Fields{
		"training_id": trainingID,
		"trainer":     training.TrainerUsername,
		"tx_id":       meta.TransactionID,
	}).Info("Training deleted")

	payload := domain.UpdateWorkingHoursRequest{
		IsActive:         true,
		Date:             training.Date,
		TrainingDuration: training.DurationMinutes,
	}

	if _, err := uc.workloadClient.UpdateWorkingHours(ctx, meta, training.TrainerUsername, domain.ActionRemove, payload); err != nil {
		uc.logger.WithError(err).WithField("trainer", training.TrainerUsername).Error("Workload update failed for REMOVE")
		return domain.ErrWorkloadUnavailable
	}

	if err := uc.producer.Send(ctx, meta, training.TrainerUsername, domain.ActionRemove, payload); err != nil {
		uc.logger.WithError(err).WithField("trainer", training.TrainerUsername).Warn("Async REMOVE message failed")
	}

	return nil
}

// GetTrainerWorkingHours запрашивает итог часов тренера через request/response
// режим очереди и возвращает текстовый ответ workload-сервиса.
// Round trip обернут в circuit breaker: серия отказов открывает breaker,
// дальнейшие вызовы падают сразу, без ожидания таймаута очереди.
func (uc *TrainingUseCase) GetTrainerWorkingHours(ctx context.Context, meta domain.RequestMeta, trainerUsername string, req domain.GetWorkingHoursRequest) (string, error) {
	result, err := uc.breaker.Execute(func() (interface{}, error) {
		return uc.producer.SendAndReceive(ctx, meta, trainerUsername, domain.ActionHours, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = domain.ErrWorkloadUnavailable
		}
		uc.logger.WithError(err).WithField("trainer", trainerUsername).Error("HOURS query failed")
		return "", err
	}
	reply := result.(string)

	uc.logger.WithFields(logrus.Fields{
		"trainer": trainerUsername,
		"tx_id":   meta.TransactionID,
	}).Info("Working hours retrieved")

	return reply, nil
}
