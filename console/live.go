package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// OrderEventPubSubber fans confirmed status transitions out to live
// subscribers. Subscribers are identified by an opaque id so the same
// backend serves SSE and WebSocket clients.
type OrderEventPubSubber interface {
	Publish(ctx context.Context, event OrderEvent) error
	Subscribe(ctx context.Context) (string, <-chan OrderEvent, error)
	Unsubscribe(ctx context.Context, id string) error
}

const subscriberBuffer = 16

// GoChannelOrderEventPubSubber is the in-process fan-out used when the
// console runs as a single replica.
type GoChannelOrderEventPubSubber struct {
	mu          sync.Mutex
	subscribers map[string]chan OrderEvent
}

var _ OrderEventPubSubber = (*GoChannelOrderEventPubSubber)(nil)

func NewGoChannelOrderEventPubSubber() *GoChannelOrderEventPubSubber {
	return &GoChannelOrderEventPubSubber{
		subscribers: make(map[string]chan OrderEvent),
	}
}

func (g *GoChannelOrderEventPubSubber) Publish(ctx context.Context, event OrderEvent) error {
	ctx, span := tracer.Start(ctx, "GoChannelOrderEventPubSubber.Publish")
	defer span.End()

	slog.DebugContext(ctx, "publishing order event", slog.String("order_id", event.OrderID))

	g.mu.Lock()
	defer g.mu.Unlock()

	for id, subChan := range g.subscribers {
		select {
		case subChan <- event:
		default:
			// A subscriber that cannot keep up misses the event; the next
			// list fetch reconciles it.
			slog.WarnContext(ctx, "dropping order event for slow subscriber", slog.String("subscriber", id))
		}
	}

	return nil
}

func (g *GoChannelOrderEventPubSubber) Subscribe(ctx context.Context) (string, <-chan OrderEvent, error) {
	_, span := tracer.Start(ctx, "GoChannelOrderEventPubSubber.Subscribe")
	defer span.End()

	id := uuid.New().String()
	ch := make(chan OrderEvent, subscriberBuffer)

	g.mu.Lock()
	g.subscribers[id] = ch
	g.mu.Unlock()

	return id, ch, nil
}

func (g *GoChannelOrderEventPubSubber) Unsubscribe(ctx context.Context, id string) error {
	_, span := tracer.Start(ctx, "GoChannelOrderEventPubSubber.Unsubscribe")
	defer span.End()

	g.mu.Lock()
	delete(g.subscribers, id)
	g.mu.Unlock()
	return nil
}

// GetLiveOrdersSSE godoc
//
// @Summary Stream order status events via Server-Sent Events
// @Tags orders
// @Produce text/event-stream
// @Success 200 {object} OrderEvent
// @Router /v1/orders/live [get]
func (h *MainHandler) GetLiveOrdersSSE(c echo.Context) error {
	ctx := c.Request().Context()

	flusher, ok := c.Response().Writer.(http.Flusher)
	if !ok {
		slog.ErrorContext(ctx, "streaming unsupported by response writer")
		return echo.NewHTTPError(http.StatusInternalServerError, "Streaming unsupported")
	}

	id, ch, err := h.pubsub.Subscribe(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to subscribe to order events", slog.Any("err", err))
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().WriteHeader(http.StatusOK)
	flusher.Flush()

	notify := ctx.Done()
	for {
		select {
		case <-notify:
			slog.InfoContext(ctx, "client closed connection")
			return h.pubsub.Unsubscribe(ctx, id)
		case event := <-ch:
			data, err := json.Marshal(event)
			if err != nil {
				slog.ErrorContext(ctx, "marshal order event for SSE", slog.Any("err", err))
				continue
			}
			_, err = c.Response().Writer.Write([]byte("data: " + string(data) + "\n\n"))
			if err != nil {
				slog.ErrorContext(ctx, "write SSE", slog.Any("err", err))
				h.pubsub.Unsubscribe(ctx, id)
				return err
			}
			flusher.Flush()
		}
	}
}

var upgrader = websocket.Upgrader{
	// CORS middleware already vetted the origin for the handshake request.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GetLiveOrdersWS godoc
//
// @Summary Stream order status events over a WebSocket
// @Tags orders
// @Success 101 {string} string "switching protocols"
// @Router /v1/orders/live/ws [get]
func (h *MainHandler) GetLiveOrdersWS(c echo.Context) error {
	ctx := c.Request().Context()

	ws, err := upgrader.Upgrade(c.Response().Writer, c.Request(), nil)
	if err != nil {
		slog.ErrorContext(ctx, "websocket upgrade failed", slog.Any("err", err))
		return err
	}
	defer ws.Close()

	id, ch, err := h.pubsub.Subscribe(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to subscribe to order events", slog.Any("err", err))
		return err
	}
	defer h.pubsub.Unsubscribe(ctx, id)

	closed := make(chan struct{})
	go func() {
		// The read loop only exists to observe the peer going away.
		defer close(closed)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-closed:
			slog.InfoContext(ctx, "websocket peer closed connection")
			return nil
		case event := <-ch:
			if err := ws.WriteJSON(event); err != nil {
				slog.ErrorContext(ctx, "write websocket event", slog.Any("err", err))
				return nil
			}
		}
	}
}
