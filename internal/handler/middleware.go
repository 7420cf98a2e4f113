package handler

import (
	"net/http"
	"time"

	"github.com/MerabQardava/EpamGymProject/internal/domain"
	"github.com/MerabQardava/EpamGymProject/internal/security"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	transactionIDHeader = "X-Transaction-ID"
	transactionIDKey    = "txID"
	bearerTokenKey      = "bearerToken"
)

// TransactionID возвращает идентификатор транзакции текущего запроса.
func TransactionID(c echo.Context) string {
	if txID, ok := c.Get(transactionIDKey).(string); ok {
		return txID
	}
	return ""
}

// RequestMeta собирает учетные данные и идентификатор транзакции запроса
// для явной передачи по цепочке вызовов.
func RequestMeta(c echo.Context) domain.RequestMeta {
	token, _ := c.Get(bearerTokenKey).(string)
	return domain.RequestMeta{
		Token:         token,
		TransactionID: TransactionID(c),
	}
}

// TransactionIDMiddleware принимает X-Transaction-ID или генерирует короткий
// идентификатор, кладет его в контекст запроса и возвращает в ответе.
func TransactionIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txID := c.Request().Header.Get(transactionIDHeader)
			if txID == "" {
				txID = uuid.NewString()[:8]
			}

			c.Set(transactionIDKey, txID)
			c.Response().Header().Set(transactionIDHeader, txID)

			return next(c)
		}
	}
}

// JWTMiddleware требует валидный bearer-токен и сохраняет его в контексте
// запроса для дальнейшей передачи.
func JWTMiddleware(tokens domain.TokenService, logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := security.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil || !tokens.Validate(token) {
				logger.WithFields(logrus.Fields{
					"path":  c.Request().URL.Path,
					"tx_id": TransactionID(c),
				}).Warn("Request rejected: invalid token")
				return c.String(http.StatusUnauthorized, "Error: "+domain.ErrInvalidToken.Error())
			}

			c.Set(bearerTokenKey, token)
			return next(c)
		}
	}
}

// LoggingMiddleware добавляет структурированное логирование
func LoggingMiddleware(logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Выполняем запрос
			err := next(c)

			// Логируем детали запроса
			latency := time.Since(start)
			status := c.Response().Status

			entry := logger.WithFields(logrus.Fields{
				"method":     c.Request().Method,
				"uri":        c.Request().URL.Path,
				"status":     status,
				"latency":    latency,
				"user_agent": c.Request().UserAgent(),
				"ip":         c.RealIP(),
				"tx_id":      TransactionID(c),
			})

			if err != nil {
				entry = entry.WithField("error", err.Error())
			}

			if status >= 500 {
				entry.Error("Server error")
			} else if status >= 400 {
				entry.Warn("Client error")
			} else {
				entry.Info("Request processed")
			}

			return err
		}
	}
}
