package handler

import (
	"net/http"

	"github.com/MerabQardava/EpamGymProject/internal/domain"
)

// Маппинг domain ошибок в HTTP статусы.
func getHTTPStatusCode(err error) int {
	switch err {
	// Bad Request errors (400) - валидация
	case domain.ErrInvalidDuration, domain.ErrInvalidYear,
		domain.ErrInvalidMonth, domain.ErrInvalidAction:
		return http.StatusBadRequest

	// Not Found errors (404)
	case domain.ErrTrainerNotFound, domain.ErrWorkYearNotFound,
		domain.ErrWorkMonthNotFound, domain.ErrTrainingNotFound:
		return http.StatusNotFound

	// Conflict errors (409)
	case domain.ErrInsufficientHours:
		return http.StatusConflict

	// Unauthorized (401)
	case domain.ErrInvalidToken:
		return http.StatusUnauthorized

	// Service Unavailable (503) - workload недоступен
	case domain.ErrWorkloadUnavailable, domain.ErrWorkloadTimeout:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
