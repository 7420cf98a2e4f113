package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MerabQardava/EpamGymProject/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// WorkloadClient — синхронный HTTP-клиент workload-сервиса, обернутый
// в circuit breaker. Открытый breaker или отказ вызова уходит в fallback
// с ответом "service unavailable".
type WorkloadClient struct {
	baseURL string
	httpc   *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *logrus.Logger
}

// NewWorkloadClient создает новый экземпляр WorkloadClient.
func NewWorkloadClient(baseURL string, failureThreshold uint32, logger *logrus.Logger) domain.WorkloadClient {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "workloadService",
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

	return &WorkloadClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
		breaker: breaker,
		logger:  logger,
	}
}

// UpdateWorkingHours вызывает POST /trainer/{username}/{action}.
func (c *WorkloadClient) UpdateWorkingHours(ctx context.Context, meta domain.RequestMeta, username string, action domain.ActionType, req domain.UpdateWorkingHoursRequest) (string, error) {
	url := fmt.Sprintf("%s/trainer/%s/%s", c.baseURL, username, action)

	body, err := c.post(ctx, meta, url, req)
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"username": username,
			"action":   action,
		}).Warn("Fallback for updateWorkingHours")
		return "Service unavailable: cannot " + strings.ToLower(string(action)) + " hours", err
	}

	return body, nil
}

func (c *WorkloadClient) post(ctx context.Context, meta domain.RequestMeta, url string, payload any) (string, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doPost(ctx, meta, url, payload)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", domain.ErrWorkloadUnavailable
		}
		return "", err
	}

	return result.(string), nil
}

func (c *WorkloadClient) doPost(ctx context.Context, meta domain.RequestMeta, url string, payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+meta.Token)
	req.Header.Set("X-Transaction-ID", meta.TransactionID)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call workload service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("workload service returned %d: %s", resp.StatusCode, string(body))
	}

	return string(body), nil
}
