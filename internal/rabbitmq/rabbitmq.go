package rabbitmq

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher is what services depend on; MQConn is the live implementation.
type Publisher interface {
	Publish(queue string, body []byte) error
}

type MQConn struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func Connect(url string) (*MQConn, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &MQConn{
		conn: conn,
		ch: ch,
	}, nil
}

func (m *MQConn) Publish(queue string, body []byte) error {
	q, err := m.ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	return m.ch.PublishWithContext(ctx, "", q.Name, false, false, amqp.Publishing{
		ContentType: "application/json",
		DeliveryMode: amqp.Persistent,
		Body: body,
	})
}

func (m *MQConn) Close() {
	m.ch.Close()
	m.conn.Close()
}
