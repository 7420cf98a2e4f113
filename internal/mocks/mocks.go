package mocks

import (
	"context"

	"github.com/MerabQardava/EpamGymProject/internal/domain"

	"github.com/stretchr/testify/mock"
)

// TrainerRepository — мок domain.TrainerRepository.
type TrainerRepository struct {
	mock.Mock
}

func (m *TrainerRepository) GetByUsername(ctx context.Context, username string) (*domain.Trainer, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trainer), args.Error(1)
}

func (m *TrainerRepository) Save(ctx context.Context, trainer *domain.Trainer) error {
	args := m.Called(ctx, trainer)
	return args.Error(0)
}

// TrainingRepository — мок domain.TrainingRepository.
type TrainingRepository struct {
	mock.Mock
}

func (m *TrainingRepository) Create(ctx context.Context, training *domain.Training) (*domain.Training, error) {
	args := m.Called(ctx, training)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Training), args.Error(1)
}

func (m *TrainingRepository) GetByID(ctx context.Context, trainingID int) (*domain.Training, error) {
	args := m.Called(ctx, trainingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Training), args.Error(1)
}

func (m *TrainingRepository) Delete(ctx context.Context, trainingID int) error {
	args := m.Called(ctx, trainingID)
	return args.Error(0)
}

// WorkloadClient — мок domain.WorkloadClient.
type WorkloadClient struct {
	mock.Mock
}

func (m *WorkloadClient) UpdateWorkingHours(ctx context.Context, meta domain.RequestMeta, username string, action domain.ActionType, req domain.UpdateWorkingHoursRequest) (string, error) {
	args := m.Called(ctx, meta, username, action, req)
	return args.String(0), args.Error(1)
}

// MessageProducer — мок domain.MessageProducer.
type MessageProducer struct {
	mock.Mock
}

func (m *MessageProducer) Send(ctx context.Context, meta domain.RequestMeta, username string, action domain.ActionType, payload any) error {
	args := m.Called(ctx, meta, username, action, payload)
	return args.Error(0)
}

func (m *MessageProducer) SendAndReceive(ctx context.Context, meta domain.RequestMeta, username string, action domain.ActionType, payload any) (string, error) {
	args := m.Called(ctx, meta, username, action, payload)
	return args.String(0), args.Error(1)
}

// TokenService — мок domain.TokenService.
type TokenService struct {
	mock.Mock
}

func (m *TokenService) GenerateToken(username string) (string, error) {
	args := m.Called(username)
	return args.String(0), args.Error(1)
}

func (m *TokenService) Validate(token string) bool {
	args := m.Called(token)
	return args.Bool(0)
}

func (m *TokenService) ExtractUsername(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

// TrainingUseCase — мок domain.TrainingUseCase.
type TrainingUseCase struct {
	mock.Mock
}

func (m *TrainingUseCase) AddTraining(ctx context.Context, meta domain.RequestMeta, traineeUsername, trainerUsername string, req domain.CreateTrainingRequest) (*domain.Training, error) {
	args := m.Called(ctx, meta, traineeUsername, trainerUsername, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Training), args.Error(1)
}

func (m *TrainingUseCase) DeleteTraining(ctx context.Context, meta domain.RequestMeta, trainingID int) error {
	args := m.Called(ctx, meta, trainingID)
	return args.Error(0)
}

func (m *TrainingUseCase) GetTrainerWorkingHours(ctx context.Context, meta domain.RequestMeta, trainerUsername string, req domain.GetWorkingHoursRequest) (string, error) {
	args := m.Called(ctx, meta, trainerUsername, req)
	return args.String(0), args.Error(1)
}

// WorkloadUseCase — мок domain.WorkloadUseCase.
type WorkloadUseCase struct {
	mock.Mock
}

func (m *WorkloadUseCase) AddTraining(ctx context.Context, username string, req domain.UpdateWorkingHoursRequest) error {
	args := m.Called(ctx, username, req)
	return args.Error(0)
}

func (m *WorkloadUseCase) RemoveTraining(ctx context.Context, username string, req domain.UpdateWorkingHoursRequest) error {
	args := m.Called(ctx, username, req)
	return args.Error(0)
}

func (m *WorkloadUseCase) GetTotalHours(ctx context.Context, username string, year, month int) (int, error) {
	args := m.Called(ctx, username, year, month)
	return args.Int(0), args.Error(1)
}
