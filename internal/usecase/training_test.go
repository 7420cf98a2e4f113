package usecase_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/MerabQardava/EpamGymProject/internal/domain"
	"github.com/MerabQardava/EpamGymProject/internal/mocks"
	"github.com/MerabQardava/EpamGymProject/internal/usecase"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testMeta() domain.RequestMeta {
	return domain.RequestMeta{Token: "token", TransactionID: "tx-1234"}
}

func createRequest() domain.CreateTrainingRequest {
	return domain.CreateTrainingRequest{
		TrainingName:     "Strength basics",
		TrainerFirstName: "John",
		TrainerLastName:  "Doe",
		Date:             domain.NewDate(2025, time.October, 1),
		DurationMinutes:  60,
	}
}

func TestTrainingUseCase_AddTraining_Success(t *testing.T) {
	ctx := context.Background()
	trainingRepo := &mocks.TrainingRepository{}
	workloadClient := &mocks.WorkloadClient{}
	producer := &mocks.MessageProducer{}
	uc := usecase.NewTrainingUseCase(trainingRepo, workloadClient, producer, 5, testLogger())

	meta := testMeta()
	req := createRequest()

	created := &domain.Training{ID: 1, TraineeUsername: "jane.roe", TrainerUsername: "john.doe",
		Name: req.TrainingName, Date: req.Date, DurationMinutes: 60}

	trainingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Training")).Return(created, nil)
	workloadClient.On("UpdateWorkingHours", ctx, meta, "john.doe", domain.ActionAdd,
		mock.AnythingOfType("domain.UpdateWorkingHoursRequest")).Return("Training hours added successfully.", nil)
	producer.On("Send", ctx, meta, "john.doe", domain.ActionAdd,
		mock.AnythingOfType("domain.UpdateWorkingHoursRequest")).Return(nil)

	training, err := uc.AddTraining(ctx, meta, "jane.roe", "john.doe", req)

	assert.NoError(t, err)
	assert.Equal(t, 1, training.ID)
	workloadClient.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestTrainingUseCase_AddTraining_NegativeDuration(t *testing.T) {
	ctx := context.Background()
	trainingRepo := &mocks.TrainingRepository{}
	workloadClient := &mocks.WorkloadClient{}
	producer := &mocks.MessageProducer{}
	uc := usecase.NewTrainingUseCase(trainingRepo, workloadClient, producer, 5, testLogger())

	req := createRequest()
	req.DurationMinutes = -10

	training, err := uc.AddTraining(ctx, testMeta(), "jane.roe", "john.doe", req)

	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
	assert.Nil(t, training)
	trainingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTrainingUseCase_AddTraining_WorkloadUnavailable(t *testing.T) {
	ctx := context.Background()
	trainingRepo := &mocks.TrainingRepository{}
	workloadClient := &mocks.WorkloadClient{}
	producer := &mocks.MessageProducer{}
	uc := usecase.NewTrainingUseCase(trainingRepo, workloadClient, producer, 5, testLogger())

	meta := testMeta()
	req := createRequest()

	created := &domain.Training{ID: 2, TrainerUsername: "john.doe", Date: req.Date, DurationMinutes: 60}

	trainingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Training")).Return(created, nil)
	workloadClient.On("UpdateWorkingHours", ctx, meta, "john.doe", domain.ActionAdd,
		mock.AnythingOfType("domain.UpdateWorkingHoursRequest")).
		Return("Service unavailable: cannot add hours", domain.ErrWorkloadUnavailable)

	training, err := uc.AddTraining(ctx, meta, "jane.roe", "john.doe", req)

	assert.ErrorIs(t, err, domain.ErrWorkloadUnavailable)
	assert.Nil(t, training)
	producer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTrainingUseCase_DeleteTraining_Success(t *testing.T) {
	ctx := context.Background()
	trainingRepo := &mocks.TrainingRepository{}
	workloadClient := &mocks.WorkloadClient{}
	producer := &mocks.MessageProducer{}
	uc := usecase.NewTrainingUseCase(trainingRepo, workloadClient, producer, 5, testLogger())

	meta := testMeta()
	training := &domain.Training{ID: 3, TrainerUsername: "john.doe",
		Date: domain.NewDate(2025, time.October, 1), DurationMinutes: 45}

	trainingRepo.On("GetByID", ctx, 3).Return(training, nil)
	trainingRepo.On("Delete", ctx, 3).Return(nil)
	workloadClient.On("UpdateWorkingHours", ctx, meta, "john.doe", domain.ActionRemove,
		mock.AnythingOfType("domain.UpdateWorkingHoursRequest")).Return("Training hours removed successfully.", nil)
	producer.On("Send", ctx, meta, "john.doe", domain.ActionRemove,
		mock.AnythingOfType("domain.UpdateWorkingHoursRequest")).Return(nil)

	err := uc.DeleteTraining(ctx, meta, 3)

	assert.NoError(t, err)
	trainingRepo.AssertExpectations(t)
	workloadClient.AssertExpectations(t)
}

func TestTrainingUseCase_DeleteTraining_NotFound(t *testing.T) {
	ctx := context.Background()
	trainingRepo := &mocks.TrainingRepository{}
	workloadClient := &mocks.WorkloadClient{}
	producer := &mocks.MessageProducer{}
	uc := usecase.NewTrainingUseCase(trainingRepo, workloadClient, producer, 5, testLogger())

	trainingRepo.On("GetByID", ctx, 99).Return(nil, domain.ErrTrainingNotFound)

	err := uc.DeleteTraining(ctx, testMeta(), 99)

	assert.ErrorIs(t, err, domain.ErrTrainingNotFound)
	trainingRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	workloadClient.AssertNotCalled(t, "UpdateWorkingHours",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTrainingUseCase_GetTrainerWorkingHours_Success(t *testing.T) {
	ctx := context.Background()
	trainingRepo := &mocks.TrainingRepository{}
	workloadClient := &mocks.WorkloadClient{}
	producer := &mocks.MessageProducer{}
	uc := usecase.NewTrainingUseCase(trainingRepo, workloadClient, producer, 5, testLogger())

	meta := testMeta()
	req := domain.GetWorkingHoursRequest{YearNumber: 2025, MonthNumber: 10}

	producer.On("SendAndReceive", ctx, meta, "john.doe", domain.ActionHours, req).Return("8", nil)

	reply, err := uc.GetTrainerWorkingHours(ctx, meta, "john.doe", req)

	assert.NoError(t, err)
	assert.Equal(t, "8", reply)
}

func TestTrainingUseCase_GetTrainerWorkingHours_Timeout(t *testing.T) {
	ctx := context.Background()
	trainingRepo := &mocks.TrainingRepository{}
	workloadClient := &mocks.WorkloadClient{}
	producer := &mocks.MessageProducer{}
	uc := usecase.NewTrainingUseCase(trainingRepo, workloadClient, producer, 5, testLogger())

	meta := testMeta()
	req := domain.GetWorkingHoursRequest{YearNumber: 2025, MonthNumber: 10}

	producer.On("SendAndReceive", ctx, meta, "john.doe", domain.ActionHours, req).
		Return("", domain.ErrWorkloadTimeout)

	reply, err := uc.GetTrainerWorkingHours(ctx, meta, "john.doe", req)

	assert.ErrorIs(t, err, domain.ErrWorkloadTimeout)
	assert.Empty(t, reply)
}

func TestTrainingUseCase_GetTrainerWorkingHours_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	ctx := context.Background()
	trainingRepo := &mocks.TrainingRepository{}
	workloadClient := &mocks.WorkloadClient{}
	producer := &mocks.MessageProducer{}
	uc := usecase.NewTrainingUseCase(trainingRepo, workloadClient, producer, 3, testLogger())

	meta := testMeta()
	req := domain.GetWorkingHoursRequest{YearNumber: 2025, MonthNumber: 10}

	producer.On("SendAndReceive", ctx, meta, "john.doe", domain.ActionHours, req).
		Return("", domain.ErrWorkloadTimeout)

	// До порога отказы доходят до очереди, после — breaker открыт
	// и вызов падает сразу.
	for i := 0; i < 3; i++ {
		_, err := uc.GetTrainerWorkingHours(ctx, meta, "john.doe", req)
		assert.ErrorIs(t, err, domain.ErrWorkloadTimeout)
	}

	for i := 0; i < 17; i++ {
		_, err := uc.GetTrainerWorkingHours(ctx, meta, "john.doe", req)
		assert.ErrorIs(t, err, domain.ErrWorkloadUnavailable)
	}

	producer.AssertNumberOfCalls(t, "SendAndReceive", 3)
}
