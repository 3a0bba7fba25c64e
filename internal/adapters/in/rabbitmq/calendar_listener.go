package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/gcal-booking-agent/internal/config"
	"github.com/suchimauz/gcal-booking-agent/internal/core/ports/in"
	"github.com/suchimauz/gcal-booking-agent/internal/core/ports/out"
	"github.com/suchimauz/gcal-booking-agent/internal/utils"
)

// CalendarEventListener слушает сообщения об изменениях календаря извне
// (синхронизатор публикует их при создании/изменении/удалении событий)
// и инвалидирует кэш занятых интервалов
type CalendarEventListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.ChatUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

type CacheResourceType string

const (
	CacheResourceTypeAll   CacheResourceType = "_all_"
	CacheResourceTypeEvent CacheResourceType = "event"
)

type CacheMessageRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType CacheResourceType
	Action       string
}

// CalendarEventMessage - тело сообщения об измененном событии
type CalendarEventMessage struct {
	ID    string `json:"id"`
	Start string `json:"start"`
}

func NewCalendarEventListener(useCase in.ChatUseCase, cfg *config.Config, logger out.LoggerPort) (*CalendarEventListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMQ.URL,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &CalendarEventListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *CalendarEventListener) Start(ctx context.Context) error {
	if err := l.startEventQueue(ctx); err != nil {
		return err
	}
	l.logger.Info("event.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMQ.EventQueue,
	})

	if err := l.startAllQueue(ctx); err != nil {
		return err
	}
	l.logger.Info("_all_.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMQ.AllQueue,
	})

	return nil
}

func (l *CalendarEventListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

func (l *CalendarEventListener) startEventQueue(ctx context.Context) error {
	msgs, err := l.consume(l.cfg.RabbitMQ.EventQueue, l.cfg.RabbitMQ.EventQueueBind)
	if err != nil {
		return err
	}

	go l.loop(ctx, msgs, l.processEventMessage)
	return nil
}

func (l *CalendarEventListener) startAllQueue(ctx context.Context) error {
	msgs, err := l.consume(l.cfg.RabbitMQ.AllQueue, l.cfg.RabbitMQ.AllQueueBind)
	if err != nil {
		return err
	}

	go l.loop(ctx, msgs, l.processAllMessage)
	return nil
}

func (l *CalendarEventListener) consume(queueName, bindingKey string) (<-chan amqp.Delivery, error) {
	queue, err := l.channel.QueueDeclare(
		queueName,
		true,  // durable
		true,  // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}

	err = l.channel.QueueBind(
		queue.Name,
		bindingKey,
		l.cfg.RabbitMQ.Exchange,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
}

func (l *CalendarEventListener) loop(ctx context.Context, msgs <-chan amqp.Delivery, process func(context.Context, amqp.Delivery) error) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-msgs:
			if err := process(ctx, msg); err != nil {
				l.logger.Error("rabbitmq.message.process_failed", out.LogFields{
					"routingKey": msg.RoutingKey,
					"messageId":  msg.MessageId,
					"error":      err.Error(),
				})
				msg.Nack(false, true) // requeue message
				continue
			}
			msg.Ack(false)
		}
	}
}

// Пример routingKey:
// gcal.booking-agent.event.store
// gcal.booking-agent.event.invalidate
// gcal.booking-agent._all_.invalidate
func (l *CalendarEventListener) parseRoutingKey(msg amqp.Delivery) (CacheMessageRoutingKey, error) {
	parts := strings.Split(msg.RoutingKey, ".")
	if len(parts) < 4 {
		return CacheMessageRoutingKey{}, fmt.Errorf("invalid routing key: %s", msg.RoutingKey)
	}

	return CacheMessageRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: CacheResourceType(parts[2]),
		Action:       parts[3],
	}, nil
}

func (l *CalendarEventListener) processEventMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := l.parseRoutingKey(msg)
	if err != nil {
		return err
	}

	if routingKey.ResourceType != CacheResourceTypeEvent {
		return nil
	}

	var msgJson CalendarEventMessage
	if err := json.Unmarshal(msg.Body, &msgJson); err != nil {
		return err
	}

	start, err := utils.ParseDate(msgJson.Start)
	if err != nil {
		return err
	}

	// Занятость дня события могла измениться как при создании, так и при удалении
	l.useCase.InvalidateBusyCache(ctx, start)

	l.logger.Info("event.message.invalidated", out.LogFields{
		"eventId": msgJson.ID,
		"day":     utils.StartCurrentDay(start),
	})
	return nil
}

func (l *CalendarEventListener) processAllMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := l.parseRoutingKey(msg)
	if err != nil {
		return err
	}

	if routingKey.ResourceType != CacheResourceTypeAll {
		return nil
	}

	l.useCase.InvalidateAllBusyCache(ctx)

	l.logger.Info("_all_.message.invalidated", out.LogFields{
		"busy_cache": true,
	})
	return nil
}
