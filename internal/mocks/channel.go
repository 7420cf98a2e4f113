package mocks

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"
)

// Channel — мок messaging.Channel.
type Channel struct {
	mock.Mock
}

func (m *Channel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	called := m.Called(name, durable, autoDelete, exclusive, noWait, args)
	return called.Get(0).(amqp.Queue), called.Error(1)
}

func (m *Channel) ConsumeWithContext(ctx context.Context, queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	called := m.Called(ctx, queue, consumer, autoAck, exclusive, noLocal, noWait, args)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(<-chan amqp.Delivery), called.Error(1)
}

func (m *Channel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	called := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return called.Error(0)
}
