package rabbitmq

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/physiocrm/agenda-period-cache/internal/core/ports/out"
)

type AppointmentMutationMessage struct {
	ClinicID  string `json:"clinic_id"`
	Date      string `json:"date,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

func (l *MutationListener) startAppointmentQueue(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMq.QueueConfig.AppointmentQueueName,
		true,  // durable
		true,  // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}
	err = l.channel.QueueBind(
		queue.Name,
		l.cfg.RabbitMq.QueueConfig.AppointmentQueueBind,
		l.cfg.RabbitMq.QueueConfig.AppointmentQueueExchange,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go l.consumeAppointments(ctx, msgs)

	return nil
}

func (l *MutationListener) consumeAppointments(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			// Закрытый канал - канал брокера умер, выходим, а не крутимся вхолостую
			if !ok {
				return
			}
			if err := l.processAppointmentMessage(ctx, msg); err != nil {
				msg.Nack(false, true) // requeue message
				continue
			}
			msg.Ack(false)
		}
	}
}

func (l *MutationListener) processAppointmentMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := l.parseMutationRoutingKey(msg)
	if err != nil {
		return err
	}

	if routingKey.ResourceType != "appointment" {
		return nil
	}

	var msgJson AppointmentMutationMessage
	if err := json.Unmarshal(msg.Body, &msgJson); err != nil {
		return err
	}

	l.logger.Info("appointment.message.received", out.LogFields{
		"clinicId":     msgJson.ClinicID,
		"mutationType": routingKey.MutationType,
	})

	// Инвалидация никогда не возвращает ошибку: поток мутации уже завершился
	// на бэкенде, сообщение подтверждаем в любом случае
	switch routingKey.MutationType {
	case MutationTypeCreated, MutationTypeUpdated, MutationTypeDeleted:
		l.useCase.InvalidateAffectedPeriods(ctx, msgJson.Date, msgJson.ClinicID)
	case MutationTypeBulk:
		l.useCase.InvalidateDateRange(ctx, msgJson.StartDate, msgJson.EndDate, msgJson.ClinicID)
	case MutationTypeRefresh:
		l.useCase.InvalidateAllForClinic(ctx, msgJson.ClinicID)
	default:
		l.logger.Warn("appointment.message.unknown_mutation", out.LogFields{
			"clinicId":     msgJson.ClinicID,
			"mutationType": routingKey.MutationType,
		})
	}

	return nil
}
