package domain

import "context"

// WorkloadUseCase определяет бизнес-логику учета рабочих часов тренеров.
type WorkloadUseCase interface {
	AddTraining(ctx context.Context, username string, req UpdateWorkingHoursRequest) error
	RemoveTraining(ctx context.Context, username string, req UpdateWorkingHoursRequest) error
	GetTotalHours(ctx context.Context, username string, year, month int) (int, error)
}

// TrainingUseCase определяет бизнес-логику тренировочных сессий
// на стороне training-сервиса.
type TrainingUseCase interface {
	AddTraining(ctx context.Context, meta RequestMeta, traineeUsername, trainerUsername string, req CreateTrainingRequest) (*Training, error)
	DeleteTraining(ctx context.Context, meta RequestMeta, trainingID int) error
	GetTrainerWorkingHours(ctx context.Context, meta RequestMeta, trainerUsername string, req GetWorkingHoursRequest) (string, error)
}

// TrainerRepository определяет контракт хранилища агрегатов рабочих часов.
// Save сохраняет агрегат целиком (тренер + годы + месяцы) атомарно.
type TrainerRepository interface {
	GetByUsername(ctx context.Context, username string) (*Trainer, error)
	Save(ctx context.Context, trainer *Trainer) error
}

// TrainingRepository определяет контракт хранилища тренировок.
type TrainingRepository interface {
	Create(ctx context.Context, training *Training) (*Training, error)
	GetByID(ctx context.Context, trainingID int) (*Training, error)
	Delete(ctx context.Context, trainingID int) error
}

// WorkloadClient — синхронный клиент workload-сервиса (через circuit breaker).
// Запрос итога часов идет не здесь, а через очередь в режиме request/response.
type WorkloadClient interface {
	UpdateWorkingHours(ctx context.Context, meta RequestMeta, username string, action ActionType, req UpdateWorkingHoursRequest) (string, error)
}

// MessageProducer отправляет команды workload-сервису через очередь.
type MessageProducer interface {
	Send(ctx context.Context, meta RequestMeta, username string, action ActionType, payload any) error
	SendAndReceive(ctx context.Context, meta RequestMeta, username string, action ActionType, payload any) (string, error)
}

// TokenService — контракт проверки и выпуска JWT.
type TokenService interface {
	GenerateToken(username string) (string, error)
	Validate(token string) bool
	ExtractUsername(token string) (string, error)
}
