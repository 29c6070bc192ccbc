package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storefront-service/models"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// PedidoCreatedEvent is the audit record published after checkout. The
// pedido itself lives upstream; this stream only feeds reporting.
type PedidoCreatedEvent struct {
	EventID    string           `json:"event_id"`
	Event      string           `json:"event"`
	PedidoID   int64            `json:"pedido_id"`
	ClienteID  int64            `json:"cliente_id"`
	SucursalID int64            `json:"sucursal_id"`
	TipoEnvio  models.TipoEnvio `json:"tipo_envio"`
	FormaPago  models.FormaPago `json:"forma_pago"`
	Total      float64          `json:"total"`
	Timestamp  time.Time        `json:"timestamp"`
}

type Producer struct {
	writer *kafka.Writer
	topic  string
}

func NewProducer(brokers string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(brokers, ",")...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Producer{writer: writer, topic: topic}
}

// PedidoCreated publishes the audit event keyed by cliente so one customer's
// orders stay ordered within a partition.
func (p *Producer) PedidoCreated(ctx context.Context, pedido *models.Pedido) error {
	event := PedidoCreatedEvent{
		EventID:    uuid.NewString(),
		Event:      "pedido.created",
		PedidoID:   pedido.ID,
		ClienteID:  pedido.ClienteID,
		SucursalID: pedido.SucursalID,
		TipoEnvio:  pedido.TipoEnvio,
		FormaPago:  pedido.FormaPago,
		Total:      pedido.Total,
		Timestamp:  time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprint(event.ClienteID)),
		Value: data,
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *Producer) Close() {
	_ = p.writer.Close()
}
