package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
)

// NATSOrderEventPubSubber fans order events out through NATS so every
// console replica sees transitions confirmed by any of them.
type NATSOrderEventPubSubber struct {
	nc      *nats.Conn
	subject string

	mu   sync.Mutex
	subs map[string]*nats.Subscription
}

var _ OrderEventPubSubber = (*NATSOrderEventPubSubber)(nil)

func NewNATSOrderEventPubSubber(nc *nats.Conn, subject string) *NATSOrderEventPubSubber {
	return &NATSOrderEventPubSubber{
		nc:      nc,
		subject: subject,
		subs:    make(map[string]*nats.Subscription),
	}
}

func (n *NATSOrderEventPubSubber) Publish(ctx context.Context, event OrderEvent) error {
	propagator := otel.GetTextMapPropagator()
	msg := &nats.Msg{
		Subject: n.subject,
		Header:  nats.Header{},
	}
	propagator.Inject(ctx, propagation.HeaderCarrier(msg.Header))

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg.Data = data
	return n.nc.PublishMsg(msg)
}

func (n *NATSOrderEventPubSubber) Subscribe(ctx context.Context) (string, <-chan OrderEvent, error) {
	ctx, span := tracer.Start(ctx, "NATSOrderEventPubSubber.Subscribe")
	defer span.End()

	propagator := otel.GetTextMapPropagator()

	id := uuid.New().String()
	eventCh := make(chan OrderEvent, subscriberBuffer)

	sub, err := n.nc.Subscribe(n.subject, func(msg *nats.Msg) {
		ctx := propagator.Extract(ctx, propagation.HeaderCarrier(msg.Header))

		var event OrderEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			slog.ErrorContext(ctx, "failed to unmarshal order event from NATS message", slog.Any("err", err))
			return
		}

		select {
		case eventCh <- event:
		default:
			slog.WarnContext(ctx, "dropping order event for slow subscriber", slog.String("subscriber", id))
		}
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to subscribe to NATS subject", slog.String("subject", n.subject), slog.Any("err", err))
		span.SetStatus(codes.Error, "failed to subscribe to NATS subject")
		span.RecordError(err)
		return "", nil, err
	}

	n.mu.Lock()
	n.subs[id] = sub
	n.mu.Unlock()

	return id, eventCh, nil
}

func (n *NATSOrderEventPubSubber) Unsubscribe(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "NATSOrderEventPubSubber.Unsubscribe")
	defer span.End()

	slog.InfoContext(ctx, "unsubscribing from order events")

	n.mu.Lock()
	defer n.mu.Unlock()

	sub, ok := n.subs[id]
	if !ok {
		slog.WarnContext(ctx, "no subscription found for subscriber", slog.String("subscriber", id))
		return nil
	}

	sub.Unsubscribe()
	delete(n.subs, id)

	return nil
}
