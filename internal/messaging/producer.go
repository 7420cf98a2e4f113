package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MerabQardava/EpamGymProject/internal/domain"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Таймаут ожидания ответа в режиме request/response.
const replyTimeout = 5 * time.Second

// RabbitProducer отправляет команды workload-сервису через очередь:
// fire-and-forget для ADD/REMOVE и request/response для HOURS.
type RabbitProducer struct {
	channel Channel
	queue   string
	logger  *logrus.Logger
}

// NewRabbitProducer создает новый экземпляр RabbitProducer.
func NewRabbitProducer(channel Channel, queue string, logger *logrus.Logger) domain.MessageProducer {
	return &RabbitProducer{
		channel: channel,
		queue:   queue,
		logger:  logger,
	}
}

func commandHeaders(meta domain.RequestMeta, username string, action domain.ActionType) (amqp.Table, error) {
	if meta.Token == "" {
		return nil, domain.ErrInvalidToken
	}
	if meta.TransactionID == "" {
		return nil, errors.New("missing transaction id")
	}

	return amqp.Table{
		"Authorization": "Bearer " + meta.Token,
		"ActionType":    string(action),
		"Username":      username,
		"TransactionID": meta.TransactionID,
	}, nil
}

// Send отправляет команду без ожидания ответа.
func (p *RabbitProducer) Send(ctx context.Context, meta domain.RequestMeta, username string, action domain.ActionType, payload any) error {
	headers, err := commandHeaders(meta, username, action)
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	err = p.channel.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Headers:     headers,
		Body:        body,
	})
	if err != nil {
		p.logger.WithError(err).WithFields(logrus.Fields{
			"action": action,
			"tx_id":  meta.TransactionID,
		}).Error("Failed to send message")
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"action": action,
		"tx_id":  meta.TransactionID,
	}).Info("Sent async message")
	return nil
}

// SendAndReceive отправляет команду и ждет текстовый ответ на эксклюзивной
// reply-очереди с совпадающим correlation id. Превышение таймаута —
// domain.ErrWorkloadTimeout.
func (p *RabbitProducer) SendAndReceive(ctx context.Context, meta domain.RequestMeta, username string, action domain.ActionType, payload any) (string, error) {
	headers, err := commandHeaders(meta, username, action)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	replyQueue, err := p.channel.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return "", fmt.Errorf("failed to declare reply queue: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, replyTimeout)
	defer cancel()

	replies, err := p.channel.ConsumeWithContext(ctx, replyQueue.Name, "", true, true, false, false, nil)
	if err != nil {
		return "", fmt.Errorf("failed to consume reply queue: %w", err)
	}

	correlationID := uuid.NewString()

	err = p.channel.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:   "application/json",
		Headers:       headers,
		Body:          body,
		ReplyTo:       replyQueue.Name,
		CorrelationId: correlationID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to publish message: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			// Отмена вызывающей стороны — не таймаут ожидания ответа.
			if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return "", ctx.Err()
			}
			p.logger.WithFields(logrus.Fields{
				"action": action,
				"tx_id":  meta.TransactionID,
			}).Warn("No reply received before timeout")
			return "", domain.ErrWorkloadTimeout
		case reply, ok := <-replies:
			if !ok {
				return "", domain.ErrWorkloadTimeout
			}
			if reply.CorrelationId != correlationID {
				// Чужой ответ на этой очереди игнорируем.
				continue
			}

			response := string(reply.Body)
			p.logger.WithFields(logrus.Fields{
				"action":   action,
				"tx_id":    meta.TransactionID,
				"response": response,
			}).Info("Received reply")
			return response, nil
		}
	}
}
