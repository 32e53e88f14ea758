package rabbitmq

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

type Handler func(ctx context.Context, body []byte) error

// Consumer feeds the deliveries of one queue to a Handler, one at a time.
type Consumer struct {
	channel *amqp.Channel
	queue   string
	handler Handler
	// permanent errors are dropped instead of requeued.
	permanent []error
}

func NewConsumer(ch *amqp.Channel, queue string, handler Handler, permanent ...error) *Consumer {
	return &Consumer{channel: ch, queue: queue, handler: handler, permanent: permanent}
}

// Run consumes until ctx is done or the delivery channel closes.
func (c *Consumer) Run(ctx context.Context) error {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}
	msgs, err := c.channel.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Info().Str("queue", c.queue).Msg("waiting for messages")
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.handle(ctx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	err := c.handler(ctx, d.Body)
	if err == nil {
		if ackErr := d.Ack(false); ackErr != nil {
			log.Error().Err(ackErr).Msg("failed to ack message")
		}
		return
	}

	requeue := true
	for _, target := range c.permanent {
		if errors.Is(err, target) {
			requeue = false
			break
		}
	}
	log.Error().Err(err).Bool("requeue", requeue).Str("queue", c.queue).Msg("failed to process message")
	if nackErr := d.Nack(false, requeue); nackErr != nil {
		log.Error().Err(nackErr).Msg("failed to nack message")
	}
}
