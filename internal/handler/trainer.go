package handler

import (
	"net/http"
	"strconv"

	"github.com/MerabQardava/EpamGymProject/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// TrainerHandler обрабатывает HTTP-запросы workload-сервиса.
type TrainerHandler struct {
	*BaseHandler
	workloadUseCase domain.WorkloadUseCase
}

// NewTrainerHandler создает новый экземпляр TrainerHandler.
func NewTrainerHandler(workloadUseCase domain.WorkloadUseCase, logger *logrus.Logger) *TrainerHandler {
	return &TrainerHandler{
		BaseHandler:     NewBaseHandler(logger),
		workloadUseCase: workloadUseCase,
	}
}

// UpdateWorkingHours обрабатывает команду изменения часов: ADD или REMOVE.
func (h *TrainerHandler) UpdateWorkingHours(c echo.Context) error {
	username := c.Param("username")

	action, err := domain.ParseActionType(c.Param("action"))
	if err != nil {
		return c.String(http.StatusBadRequest, "Error updating working hours: "+err.Error())
	}

	var req domain.UpdateWorkingHoursRequest
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind update working hours request")
		return c.String(http.StatusBadRequest, "Error updating working hours: "+err.Error())
	}

	logEntry := h.logRequest(c, "update_working_hours").WithFields(logrus.Fields{
		"username": username,
		"action":   action,
		"duration": req.TrainingDuration,
	})
	logEntry.Info("Updating working hours")

	if action == domain.ActionAdd {
		err = h.workloadUseCase.AddTraining(c.Request().Context(), username, req)
	} else {
		err = h.workloadUseCase.RemoveTraining(c.Request().Context(), username, req)
	}
	if err != nil {
		logEntry.WithError(err).Warn("Failed to update working hours")
		return c.String(getHTTPStatusCode(err), "Error updating working hours: "+err.Error())
	}

	logEntry.Info("Working hours updated successfully")
	if action == domain.ActionAdd {
		return c.String(http.StatusOK, "Training hours added successfully.")
	}
	return c.String(http.StatusOK, "Training hours removed successfully.")
}

// GetWorkingHours обрабатывает запрос итога часов за месяц.
func (h *TrainerHandler) GetWorkingHours(c echo.Context) error {
	username := c.Param("username")

	var req domain.GetWorkingHoursRequest
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind get working hours request")
		return c.String(http.StatusBadRequest, "Error retrieving working hours: "+err.Error())
	}

	logEntry := h.logRequest(c, "get_working_hours").WithFields(logrus.Fields{
		"username": username,
		"year":     req.YearNumber,
		"month":    req.MonthNumber,
	})
	logEntry.Info("Getting working hours")

	hours, err := h.workloadUseCase.GetTotalHours(c.Request().Context(), username, req.YearNumber, req.MonthNumber)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to get working hours")
		return c.String(getHTTPStatusCode(err), "Error retrieving working hours: "+err.Error())
	}

	logEntry.WithField("hours", hours).Info("Working hours retrieved")
	return c.String(http.StatusOK, "Total hours: "+strconv.Itoa(hours))
}
