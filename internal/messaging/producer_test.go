package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/MerabQardava/EpamGymProject/internal/domain"
	"github.com/MerabQardava/EpamGymProject/internal/mocks"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func producerMeta() domain.RequestMeta {
	return domain.RequestMeta{Token: "valid-token", TransactionID: "tx-1234"}
}

func TestRabbitProducer_Send_SetsHeaders(t *testing.T) {
	channel := &mocks.Channel{}
	producer := NewRabbitProducer(channel, "workload.queue", testLogger())

	channel.On("PublishWithContext", mock.Anything, "", "workload.queue", false, false,
		mock.MatchedBy(func(msg amqp.Publishing) bool {
			return msg.Headers["Authorization"] == "Bearer valid-token" &&
				msg.Headers["ActionType"] == "ADD" &&
				msg.Headers["Username"] == "john.doe" &&
				msg.Headers["TransactionID"] == "tx-1234"
		})).Return(nil)

	payload := domain.UpdateWorkingHoursRequest{TrainingDuration: 5}
	err := producer.Send(context.Background(), producerMeta(), "john.doe", domain.ActionAdd, payload)

	assert.NoError(t, err)
	channel.AssertExpectations(t)
}

func TestRabbitProducer_Send_MissingToken(t *testing.T) {
	channel := &mocks.Channel{}
	producer := NewRabbitProducer(channel, "workload.queue", testLogger())

	meta := domain.RequestMeta{TransactionID: "tx-1234"}
	err := producer.Send(context.Background(), meta, "john.doe", domain.ActionAdd, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	channel.AssertNotCalled(t, "PublishWithContext",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRabbitProducer_Send_MissingTransactionID(t *testing.T) {
	channel := &mocks.Channel{}
	producer := NewRabbitProducer(channel, "workload.queue", testLogger())

	meta := domain.RequestMeta{Token: "valid-token"}
	err := producer.Send(context.Background(), meta, "john.doe", domain.ActionAdd, nil)

	assert.Error(t, err)
	channel.AssertNotCalled(t, "PublishWithContext",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRabbitProducer_SendAndReceive_MatchesCorrelationID(t *testing.T) {
	channel := &mocks.Channel{}
	producer := NewRabbitProducer(channel, "workload.queue", testLogger())

	replies := make(chan amqp.Delivery, 2)
	var repliesRecv <-chan amqp.Delivery = replies

	channel.On("QueueDeclare", "", false, true, true, false, mock.Anything).
		Return(amqp.Queue{Name: "reply-q"}, nil)
	channel.On("ConsumeWithContext", mock.Anything, "reply-q", "", true, true, false, false, mock.Anything).
		Return(repliesRecv, nil)
	channel.On("PublishWithContext", mock.Anything, "", "workload.queue", false, false,
		mock.AnythingOfType("amqp091.Publishing")).
		Run(func(args mock.Arguments) {
			msg := args.Get(5).(amqp.Publishing)
			// Чужой ответ должен быть пропущен.
			replies <- amqp.Delivery{CorrelationId: "stale", Body: []byte("0")}
			replies <- amqp.Delivery{CorrelationId: msg.CorrelationId, Body: []byte("8")}
		}).Return(nil)

	req := domain.GetWorkingHoursRequest{YearNumber: 2025, MonthNumber: 10}
	reply, err := producer.SendAndReceive(context.Background(), producerMeta(), "john.doe", domain.ActionHours, req)

	assert.NoError(t, err)
	assert.Equal(t, "8", reply)
}

func TestRabbitProducer_SendAndReceive_Timeout(t *testing.T) {
	channel := &mocks.Channel{}
	producer := NewRabbitProducer(channel, "workload.queue", testLogger())

	replies := make(chan amqp.Delivery)
	var repliesRecv <-chan amqp.Delivery = replies

	channel.On("QueueDeclare", "", false, true, true, false, mock.Anything).
		Return(amqp.Queue{Name: "reply-q"}, nil)
	channel.On("ConsumeWithContext", mock.Anything, "reply-q", "", true, true, false, false, mock.Anything).
		Return(repliesRecv, nil)
	channel.On("PublishWithContext", mock.Anything, "", "workload.queue", false, false,
		mock.AnythingOfType("amqp091.Publishing")).Return(nil)

	// Сокращаем ожидание: дедлайн уже истек.
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	req := domain.GetWorkingHoursRequest{YearNumber: 2025, MonthNumber: 10}
	reply, err := producer.SendAndReceive(ctx, producerMeta(), "john.doe", domain.ActionHours, req)

	assert.ErrorIs(t, err, domain.ErrWorkloadTimeout)
	assert.Empty(t, reply)
}

func TestRabbitProducer_SendAndReceive_CallerCanceled(t *testing.T) {
	channel := &mocks.Channel{}
	producer := NewRabbitProducer(channel, "workload.queue", testLogger())

	replies := make(chan amqp.Delivery)
	var repliesRecv <-chan amqp.Delivery = replies

	channel.On("QueueDeclare", "", false, true, true, false, mock.Anything).
		Return(amqp.Queue{Name: "reply-q"}, nil)
	channel.On("ConsumeWithContext", mock.Anything, "reply-q", "", true, true, false, false, mock.Anything).
		Return(repliesRecv, nil)
	channel.On("PublishWithContext", mock.Anything, "", "workload.queue", false, false,
		mock.AnythingOfType("amqp091.Publishing")).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := domain.GetWorkingHoursRequest{YearNumber: 2025, MonthNumber: 10}
	reply, err := producer.SendAndReceive(ctx, producerMeta(), "john.doe", domain.ActionHours, req)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrWorkloadTimeout)
	assert.Empty(t, reply)
}
