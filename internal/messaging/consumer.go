package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/MerabQardava/EpamGymProject/internal/domain"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// MessageConsumer принимает команды из очереди и передает их в учет часов.
// Команда с невалидным токеном отклоняется до обращения к бизнес-логике.
type MessageConsumer struct {
	channel  Channel
	queue    string
	tokens   domain.TokenService
	workload domain.WorkloadUseCase
	logger   *logrus.Logger
}

// NewMessageConsumer создает новый экземпляр MessageConsumer.
func NewMessageConsumer(
	channel Channel,
	queue string,
	tokens domain.TokenService,
	workload domain.WorkloadUseCase,
	logger *logrus.Logger,
) *MessageConsumer {
	return &MessageConsumer{
		channel:  channel,
		queue:    queue,
		tokens:   tokens,
		workload: workload,
		logger:   logger,
	}
}

// Run потребляет очередь до отмены контекста.
func (c *MessageConsumer) Run(ctx context.Context) error {
	deliveries, err := c.channel.ConsumeWithContext(ctx, c.queue, "", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume queue %s: %w", c.queue, err)
	}

	c.logger.WithField("queue", c.queue).Info("Consumer started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed for queue %s", c.queue)
			}
			c.handle(ctx, delivery)
		}
	}
}

func headerString(headers amqp.Table, key string) string {
	if value, ok := headers[key].(string); ok {
		return value
	}
	return ""
}

// handle обрабатывает одну команду: сначала аутентификация, затем диспетчеризация
// по ActionType. Для HOURS публикуется текстовый ответ на reply-очередь.
func (c *MessageConsumer) handle(ctx context.Context, delivery amqp.Delivery) {
	auth := headerString(delivery.Headers, "Authorization")
	action := headerString(delivery.Headers, "ActionType")
	username := headerString(delivery.Headers, "Username")

	txID := headerString(delivery.Headers, "TransactionID")
	if txID == "" {
		txID = uuid.NewString()[:8]
	}

	logEntry := c.logger.WithFields(logrus.Fields{
		"action":   action,
		"username": username,
		"tx_id":    txID,
	})

	if auth == "" || !strings.HasPrefix(auth, "Bearer ") ||
		!c.tokens.Validate(strings.TrimPrefix(auth, "Bearer ")) {
		logEntry.Warn("Invalid JWT, message rejected")
		return
	}

	switch domain.ActionType(action) {
	case domain.ActionAdd:
		var req domain.UpdateWorkingHoursRequest
		if err := json.Unmarshal(delivery.Body, &req); err != nil {
			logEntry.WithError(err).Error("Failed to decode ADD payload")
			return
		}
		if err := c.workload.AddTraining(ctx, username, req); err != nil {
			logEntry.WithError(err).Error("Failed to add training hours")
			return
		}
		logEntry.Info("Training hours added")

	case domain.ActionRemove:
		var req domain.UpdateWorkingHoursRequest
		if err := json.Unmarshal(delivery.Body, &req); err != nil {
			logEntry.WithError(err).Error("Failed to decode REMOVE payload")
			return
		}
		if err := c.workload.RemoveTraining(ctx, username, req); err != nil {
			logEntry.WithError(err).Error("Failed to remove training hours")
			return
		}
		logEntry.Info("Training hours removed")

	case domain.ActionHours:
		var req domain.GetWorkingHoursRequest
		reply := ""
		if err := json.Unmarshal(delivery.Body, &req); err != nil {
			reply = "Error: " + err.Error()
		} else if hours, err := c.workload.GetTotalHours(ctx, username, req.YearNumber, req.MonthNumber); err != nil {
			logEntry.WithError(err).Warn("Failed to get total hours")
			reply = "Error: " + err.Error()
		} else {
			reply = strconv.Itoa(hours)
		}
		c.reply(ctx, delivery, reply, logEntry)

	default:
		logEntry.Warn("Unknown ActionType, message dropped")
	}
}

func (c *MessageConsumer) reply(ctx context.Context, delivery amqp.Delivery, text string, logEntry *logrus.Entry) {
	if delivery.ReplyTo == "" {
		logEntry.Warn("HOURS command without reply queue")
		return
	}

	err := c.channel.PublishWithContext(ctx, "", delivery.ReplyTo, false, false, amqp.Publishing{
		ContentType:   "text/plain",
		CorrelationId: delivery.CorrelationId,
		Body:          []byte(text),
	})
	if err != nil {
		logEntry.WithError(err).Error("Failed to publish reply")
		return
	}

	logEntry.WithField("response", text).Info("Reply sent")
}
