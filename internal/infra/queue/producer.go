package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/vnnovate/crm-core/internal/entity"
	"github.com/vnnovate/crm-core/internal/usecase"
)

const (
	EventLeadCreated     = "lead.created"
	EventLeadWon         = "lead.won"
	EventImportCompleted = "import.completed"
)

// CRMEvent is the single envelope published on the CRM exchange. Only the
// fields for the given Type are set.
type CRMEvent struct {
	Type string `json:"type"`

	LeadID     string `json:"lead_id,omitempty"`
	LeadName   string `json:"lead_name,omitempty"`
	AssignedTo string `json:"assigned_to,omitempty"`

	RequesterID    string `json:"requester_id,omitempty"`
	RequesterEmail string `json:"requester_email,omitempty"`
	Created        int    `json:"created,omitempty"`
	Failed         int    `json:"failed,omitempty"`
	Total          int    `json:"total,omitempty"`
}

// Producer implements usecase.Notifier over RabbitMQ.
type Producer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *Producer {
	return &Producer{Conn: conn, Ch: ch}
}

func (p *Producer) LeadCreated(ctx context.Context, lead *entity.Lead) error {
	return p.publish(ctx, CRMEvent{
		Type:       EventLeadCreated,
		LeadID:     lead.ID,
		LeadName:   lead.Name,
		AssignedTo: lead.AssignedTo,
	})
}

func (p *Producer) LeadWon(ctx context.Context, lead *entity.Lead) error {
	return p.publish(ctx, CRMEvent{
		Type:       EventLeadWon,
		LeadID:     lead.ID,
		LeadName:   lead.Name,
		AssignedTo: lead.AssignedTo,
	})
}

func (p *Producer) ImportCompleted(ctx context.Context, summary usecase.ImportSummary) error {
	return p.publish(ctx, CRMEvent{
		Type:           EventImportCompleted,
		RequesterID:    summary.RequesterID,
		RequesterEmail: summary.RequesterEmail,
		Created:        summary.Created,
		Failed:         summary.Failed,
		Total:          summary.Total,
	})
}

func (p *Producer) publish(ctx context.Context, evt CRMEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %w", err)
	}

	return nil
}
