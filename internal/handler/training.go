package handler

import (
	"net/http"
	"strconv"

	"github.com/MerabQardava/EpamGymProject/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// TrainingHandler обрабатывает HTTP-запросы training-сервиса.
type TrainingHandler struct {
	*BaseHandler
	trainingUseCase domain.TrainingUseCase
}

// NewTrainingHandler создает новый экземпляр TrainingHandler.
func NewTrainingHandler(trainingUseCase domain.TrainingUseCase, logger *logrus.Logger) *TrainingHandler {
	return &TrainingHandler{
		BaseHandler:     NewBaseHandler(logger),
		trainingUseCase: trainingUseCase,
	}
}

// AddTraining создает тренировку и отправляет дельту часов workload-сервису.
func (h *TrainingHandler) AddTraining(c echo.Context) error {
	traineeUsername := c.Param("traineeUsername")
	trainerUsername := c.Param("trainerUsername")

	var req domain.CreateTrainingRequest
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind create training request")
		return c.String(http.StatusBadRequest, "Error creating training: "+err.Error())
	}

	logEntry := h.logRequest(c, "add_training").WithFields(logrus.Fields{
		"trainee":  traineeUsername,
		"trainer":  trainerUsername,
		"duration": req.DurationMinutes,
	})
	logEntry.Info("Creating training")

	training, err := h.trainingUseCase.AddTraining(c.Request().Context(), RequestMeta(c), traineeUsername, trainerUsername, req)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to create training")
		return c.String(getHTTPStatusCode(err), "Error creating training: "+err.Error())
	}

	logEntry.WithField("training_id", training.ID).Info("Training created successfully")
	return c.String(http.StatusAccepted, "Training creation request accepted")
}

// DeleteTraining удаляет тренировку и отправляет REMOVE-дельту.
func (h *TrainingHandler) DeleteTraining(c echo.Context) error {
	trainingID, err := strconv.Atoi(c.Param("trainingId"))
	if err != nil {
		return c.String(http.StatusBadRequest, "Error deleting training: invalid training id")
	}

	logEntry := h.logRequest(c, "delete_training").WithField("training_id", trainingID)
	logEntry.Info("Deleting training")

	if err := h.trainingUseCase.DeleteTraining(c.Request().Context(), RequestMeta(c), trainingID); err != nil {
		logEntry.WithError(err).Warn("Failed to delete training")
		return c.String(getHTTPStatusCode(err), "Error deleting training: "+err.Error())
	}

	logEntry.Info("Training deleted successfully")
	return c.String(http.StatusOK, "Training deleted successfully.")
}

// GetTrainerWorkingHours запрашивает итог часов тренера через очередь.
func (h *TrainingHandler) GetTrainerWorkingHours(c echo.Context) error {
	trainerUsername := c.Param("trainerUsername")

	var req domain.GetWorkingHoursRequest
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind get working hours request")
		return c.String(http.StatusBadRequest, "Error retrieving working hours: "+err.Error())
	}

	logEntry := h.logRequest(c, "get_trainer_working_hours").WithFields(logrus.Fields{
		"trainer": trainerUsername,
		"year":    req.YearNumber,
		"month":   req.MonthNumber,
	})
	logEntry.Info("Getting trainer working hours")

	reply, err := h.trainingUseCase.GetTrainerWorkingHours(c.Request().Context(), RequestMeta(c), trainerUsername, req)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to get trainer working hours")
		return c.String(getHTTPStatusCode(err), "Error retrieving working hours: "+err.Error())
	}

	logEntry.Info("Trainer working hours retrieved")
	return c.String(http.StatusOK, reply)
}
