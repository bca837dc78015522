package rabbitmq

import (
	"context"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/physiocrm/agenda-period-cache/internal/config"
	"github.com/physiocrm/agenda-period-cache/internal/core/ports/in"
	"github.com/physiocrm/agenda-period-cache/internal/core/ports/out"
)

type MutationListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.PeriodCacheUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

type MutationType string

const (
	MutationTypeCreated MutationType = "created"
	MutationTypeUpdated MutationType = "updated"
	MutationTypeDeleted MutationType = "deleted"
	MutationTypeBulk    MutationType = "bulk"
	MutationTypeRefresh MutationType = "refresh"
)

type MutationRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType string
	MutationType MutationType
}

func NewMutationListener(useCase in.PeriodCacheUseCase, cfg *config.Config, logger out.LoggerPort) (*MutationListener, error) {
	if !cfg.RabbitMq.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMq.AmqpUri)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMq.AmqpUri,
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

	return &MutationListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *MutationListener) Start(ctx context.Context) error {
	if err := l.startAppointmentQueue(ctx); err != nil {
		return err
	}
	l.logger.Info("appointment.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMq.QueueConfig.AppointmentQueueName,
	})

	return nil
}

func (l *MutationListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

// Пример routingKey:
// clinic.agenda-cache-svc.appointment.v1.created
// clinic.agenda-cache-svc.appointment.v1.deleted
// clinic.agenda-cache-svc.appointment.v1.bulk
// clinic.agenda-cache-svc.appointment.v1.refresh
func (l *MutationListener) parseMutationRoutingKey(msg amqp.Delivery) (MutationRoutingKey, error) {
	routingKey := msg.RoutingKey
	parts := strings.Split(routingKey, ".")

	if len(parts) < 5 {
		return MutationRoutingKey{}, fmt.Errorf("invalid routing key: %s", routingKey)
	}

	return MutationRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: parts[2],
		MutationType: MutationType(parts[4]),
	}, nil
}
