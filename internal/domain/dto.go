package domain

import (
	"fmt"
	"strings"
	"time"
)

// ActionType определяет тип команды для workload-сервиса.
type ActionType string

const (
	ActionAdd    ActionType = "ADD"
	ActionRemove ActionType = "REMOVE"
	ActionHours  ActionType = "HOURS"
)

// ParseActionType разбирает ActionType для команд изменения часов (ADD/REMOVE).
func ParseActionType(s string) (ActionType, error) {
	switch ActionType(strings.ToUpper(s)) {
	case ActionAdd:
		return ActionAdd, nil
	case ActionRemove:
		return ActionRemove, nil
	default:
		return "", ErrInvalidAction
	}
}

const dateLayout = "2006-01-02"

// Date — календарная дата без времени, сериализуется в JSON как "2006-01-02".
type Date struct {
	time.Time
}

// NewDate создает дату по году, месяцу и дню.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// UpdateWorkingHoursRequest — payload команд ADD/REMOVE.
type UpdateWorkingHoursRequest struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	IsActive         bool   `json:"isActive"`
	Date             Date   `json:"date"`
	TrainingDuration int    `json:"trainingDuration"`
}

// GetWorkingHoursRequest — payload запроса HOURS.
type GetWorkingHoursRequest struct {
	YearNumber  int `json:"yearNumber"`
	MonthNumber int `json:"monthNumber"`
}

// CreateTrainingRequest — тело запроса на создание тренировки.
type CreateTrainingRequest struct {
	TrainingName     string `json:"trainingName"`
	TrainerFirstName string `json:"trainerFirstName"`
	TrainerLastName  string `json:"trainerLastName"`
	Date             Date   `json:"date"`
	DurationMinutes  int    `json:"durationMinutes"`
}

// RequestMeta переносит учетные данные вызывающего и идентификатор транзакции
// через цепочку вызовов явно, без глобального состояния.
type RequestMeta struct {
	Token         string
	TransactionID string
}
