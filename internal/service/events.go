package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"supplychain-admin/internal/metrics"
)

const (
	EventOrderCreated    = "order.created"
	EventOrderUpdated    = "order.updated"
	EventOrderDeleted    = "order.deleted"
	EventDeliveryCreated = "delivery.created"
	EventDeliveryUpdated = "delivery.updated"
	EventDeliveryDeleted = "delivery.deleted"
)

// Event announces a committed change. Consumers reread the rows they care about.
type Event struct {
	Type       string    `json:"type"`
	OrderID    *int64    `json:"order_ID,omitempty"`
	DeliveryID *int64    `json:"delivery_ID,omitempty"`
	At         time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, key, payload []byte) error
}

// publish runs after commit only. A lost event never undoes the committed change.
func (s *Service) publish(ctx context.Context, ev Event) {
	if s.pub == nil {
		return
	}
	ev.At = time.Now().UTC()
	log := logrus.WithField("event", ev.Type)

	payload, err := json.Marshal(ev)
	if err != nil {
		log.WithError(err).Warn("encode event")
		return
	}
	err = s.pub.Publish(ctx, eventKey(ev), payload)
	metrics.EventPublished(ev.Type, err)
	if err != nil {
		log.WithError(err).Warn("publish event failed")
	}
}

// eventKey keeps every event about one order on one partition.
func eventKey(ev Event) []byte {
	switch {
	case ev.OrderID != nil:
		return []byte("order-" + strconv.FormatInt(*ev.OrderID, 10))
	case ev.DeliveryID != nil:
		return []byte("delivery-" + strconv.FormatInt(*ev.DeliveryID, 10))
	}
	return nil
}
