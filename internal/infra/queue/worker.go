package queue

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/vnnovate/crm-core/internal/usecase"
)

// SummaryMailer is the mail side of import notifications.
type SummaryMailer interface {
	SendImportSummary(to string, created, failed, total int) error
}

// Worker consumes CRM events. lead.won drives client auto-creation (behind
// the AutoCreateClient flag), import.completed drives the summary email.
// Everything here is downstream of best-effort publishes; a failure never
// reaches the operation that produced the event.
type Worker struct {
	Channel          *amqp.Channel
	Converter        *usecase.ConvertLeadUseCase
	Mailer           SummaryMailer
	AutoCreateClient bool
	Log              *logrus.Logger
}

func NewWorker(ch *amqp.Channel, converter *usecase.ConvertLeadUseCase, mailer SummaryMailer, autoCreateClient bool, log *logrus.Logger) *Worker {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Worker{
		Channel:          ch,
		Converter:        converter,
		Mailer:           mailer,
		AutoCreateClient: autoCreateClient,
		Log:              log,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		w.Log.WithError(err).Fatal("failed to register RabbitMQ consumer")
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var evt CRMEvent
			if err := json.Unmarshal(d.Body, &evt); err != nil {
				w.Log.WithError(err).Warn("malformed event, rejecting without requeue")
				d.Nack(false, false)
				continue
			}

			if err := w.processEvent(context.Background(), evt); err != nil {
				w.Log.WithError(err).WithField("type", evt.Type).Error("event processing failed")
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	w.Log.WithField("queue", queueName).Info("worker waiting for events")
	<-forever
}

func (w *Worker) processEvent(ctx context.Context, evt CRMEvent) error {
	switch evt.Type {
	case EventLeadWon:
		if !w.AutoCreateClient {
			w.Log.WithField("lead_id", evt.LeadID).Debug("client auto-creation disabled, skipping")
			return nil
		}
		_, err := w.Converter.Execute(ctx, evt.LeadID)
		return err

	case EventImportCompleted:
		if w.Mailer == nil || evt.RequesterEmail == "" {
			return nil
		}
		return w.Mailer.SendImportSummary(evt.RequesterEmail, evt.Created, evt.Failed, evt.Total)

	case EventLeadCreated:
		w.Log.WithFields(logrus.Fields{"lead_id": evt.LeadID, "assigned_to": evt.AssignedTo}).
			Info("lead created")
		return nil

	default:
		// Unknown events are acked so they do not clog the queue.
		w.Log.WithField("type", evt.Type).Warn("unknown event type")
		return nil
	}
}
