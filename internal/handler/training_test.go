package handler_test

import (
	"net/http"
	"testing"

	"github.com/MerabQardava/EpamGymProject/internal/domain"
	"github.com/MerabQardava/EpamGymProject/internal/handler"
	"github.com/MerabQardava/EpamGymProject/internal/mocks"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestTrainingHandler_AddTraining_Accepted(t *testing.T) {
	e := echo.New()
	trainingUC := &mocks.TrainingUseCase{}
	h := handler.NewTrainingHandler(trainingUC, testLogger())

	body := `{"trainingName":"Strength basics","trainerFirstName":"John","trainerLastName":"Doe","date":"2025-10-01","durationMinutes":60}`
	c, rec := newTrainerContext(e, http.MethodPost, "/training/trainee/jane.roe/trainer/john.doe", body,
		[]string{"traineeUsername", "trainerUsername"}, []string{"jane.roe", "john.doe"})

	trainingUC.On("AddTraining", mock.Anything, mock.AnythingOfType("domain.RequestMeta"),
		"jane.roe", "john.doe", mock.AnythingOfType("domain.CreateTrainingRequest")).
		Return(&domain.Training{ID: 1}, nil)

	err := h.AddTraining(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "Training creation request accepted", rec.Body.String())
}

func TestTrainingHandler_AddTraining_WorkloadUnavailable(t *testing.T) {
	e := echo.New()
	trainingUC := &mocks.TrainingUseCase{}
	h := handler.NewTrainingHandler(trainingUC, testLogger())

	body := `{"trainingName":"Strength basics","date":"2025-10-01","durationMinutes":60}`
	c, rec := newTrainerContext(e, http.MethodPost, "/training/trainee/jane.roe/trainer/john.doe", body,
		[]string{"traineeUsername", "trainerUsername"}, []string{"jane.roe", "john.doe"})

	trainingUC.On("AddTraining", mock.Anything, mock.AnythingOfType("domain.RequestMeta"),
		"jane.roe", "john.doe", mock.AnythingOfType("domain.CreateTrainingRequest")).
		Return(nil, domain.ErrWorkloadUnavailable)

	err := h.AddTraining(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "workload service unavailable")
}

func TestTrainingHandler_DeleteTraining_Success(t *testing.T) {
	e := echo.New()
	trainingUC := &mocks.TrainingUseCase{}
	h := handler.NewTrainingHandler(trainingUC, testLogger())

	c, rec := newTrainerContext(e, http.MethodDelete, "/training/3", "",
		[]string{"trainingId"}, []string{"3"})

	trainingUC.On("DeleteTraining", mock.Anything, mock.AnythingOfType("domain.RequestMeta"), 3).Return(nil)

	err := h.DeleteTraining(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTrainingHandler_DeleteTraining_InvalidID(t *testing.T) {
	e := echo.New()
	trainingUC := &mocks.TrainingUseCase{}
	h := handler.NewTrainingHandler(trainingUC, testLogger())

	c, rec := newTrainerContext(e, http.MethodDelete, "/training/abc", "",
		[]string{"trainingId"}, []string{"abc"})

	err := h.DeleteTraining(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	trainingUC.AssertNotCalled(t, "DeleteTraining", mock.Anything, mock.Anything, mock.Anything)
}

func TestTrainingHandler_DeleteTraining_NotFound(t *testing.T) {
	e := echo.New()
	trainingUC := &mocks.TrainingUseCase{}
	h := handler.NewTrainingHandler(trainingUC, testLogger())

	c, rec := newTrainerContext(e, http.MethodDelete, "/training/99", "",
		[]string{"trainingId"}, []string{"99"})

	trainingUC.On("DeleteTraining", mock.Anything, mock.AnythingOfType("domain.RequestMeta"), 99).
		Return(domain.ErrTrainingNotFound)

	err := h.DeleteTraining(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTrainingHandler_GetTrainerWorkingHours_Success(t *testing.T) {
	e := echo.New()
	trainingUC := &mocks.TrainingUseCase{}
	h := handler.NewTrainingHandler(trainingUC, testLogger())

	c, rec := newTrainerContext(e, http.MethodPost, "/training/trainer/john.doe/hours",
		`{"yearNumber":2025,"monthNumber":10}`, []string{"trainerUsername"}, []string{"john.doe"})

	trainingUC.On("GetTrainerWorkingHours", mock.Anything, mock.AnythingOfType("domain.RequestMeta"),
		"john.doe", domain.GetWorkingHoursRequest{YearNumber: 2025, MonthNumber: 10}).Return("8", nil)

	err := h.GetTrainerWorkingHours(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "8", rec.Body.String())
}

func TestTrainingHandler_GetTrainerWorkingHours_Timeout(t *testing.T) {
	e := echo.New()
	trainingUC := &mocks.TrainingUseCase{}
	h := handler.NewTrainingHandler(trainingUC, testLogger())

	c, rec := newTrainerContext(e, http.MethodPost, "/training/trainer/john.doe/hours",
		`{"yearNumber":2025,"monthNumber":10}`, []string{"trainerUsername"}, []string{"john.doe"})

	trainingUC.On("GetTrainerWorkingHours", mock.Anything, mock.AnythingOfType("domain.RequestMeta"),
		"john.doe", domain.GetWorkingHoursRequest{YearNumber: 2025, MonthNumber: 10}).
		Return("", domain.ErrWorkloadTimeout)

	err := h.GetTrainerWorkingHours(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
