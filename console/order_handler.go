package main

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/AffanWajid12/resturant-console/backend"
)

func orderSearchFields(o backend.Order) []string {
	fields := []string{string(o.OrderStatus), o.PaymentMethod}
	if o.User != nil {
		fields = append(fields, o.User.Username)
	}
	if o.Restaurant != nil {
		fields = append(fields, o.Restaurant.Name)
	}
	return fields
}

// GetOrders godoc
//
// @Summary List orders visible to the signed-in role
// @Tags orders
// @Produce json
// @Param search query string false "Filter the already-loaded list without re-fetching"
// @Success 200 {object} OrdersView
// @Router /v1/orders [get]
//
// A request without a search term is an activation: it performs exactly one
// platform fetch and replaces the view wholesale. A search term narrows the
// loaded collection client-side.
func (h *MainHandler) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	views := h.viewsFor(h.session(c).ID)

	if term := c.QueryParam("search"); term != "" {
		return c.JSON(http.StatusOK, OrdersView{
			Orders: views.orders.Filter(term, orderSearchFields),
			Error:  views.orders.Err(),
		})
	}

	orders, err := h.sessionClient(c).ListOrders(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch orders", slog.Any("err", err))
		views.orders.Fail(upstreamMessage(err, "Failed to fetch orders"))
		return c.JSON(http.StatusOK, OrdersView{Orders: []backend.Order{}, Error: views.orders.Err()})
	}

	views.orders.Replace(orders)
	return c.JSON(http.StatusOK, OrdersView{Orders: views.orders.Items()})
}

// UpdateOrderStatus godoc
//
// @Summary Move an order to a new lifecycle status
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order id"
// @Param status body StatusUpdateRequest true "Target status"
// @Success 200 {object} backend.Order
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /v1/orders/{id}/status [patch]
func (h *MainHandler) UpdateOrderStatus(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "MainHandler.UpdateOrderStatus")
	defer span.End()

	session := h.session(c)
	orderID := c.Param("id")
	span.SetAttributes(attribute.String("order.id", orderID))

	var req StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	target, err := backend.ParseOrderStatus(req.OrderStatus)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Message: err.Error()})
	}

	views := h.viewsFor(session.ID)
	current, ok := views.orders.Get(orderID)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Message: "order not loaded; fetch the order list first"})
	}

	if !backend.Allowed(current.OrderStatus, target) {
		slog.InfoContext(ctx, "transition rejected by lifecycle",
			slog.String("order_id", orderID),
			slog.String("from", string(current.OrderStatus)),
			slog.String("to", string(target)),
		)
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: "cannot move order from " + string(current.OrderStatus) + " to " + string(target),
		})
	}

	// One pending transition per order. A second request while the first is
	// unresolved is a conflict, not a queue.
	if !h.beginTransition(session.ID, orderID) {
		return c.JSON(http.StatusConflict, ErrorResponse{Message: "a transition for this order is already pending"})
	}
	defer h.endTransition(session.ID, orderID)

	start := time.Now()
	updated, err := h.sessionClient(c).UpdateOrderStatus(ctx, orderID, target)
	h.transitionDuration.Record(ctx, time.Since(start).Seconds())

	if err != nil {
		// The view keeps its last-confirmed status; the caller sees why.
		h.transitionCounter.Add(ctx, 1, metric.WithAttributes(attribute.Bool("accepted", false)))
		slog.ErrorContext(ctx, "failed to update order status",
			slog.String("order_id", orderID),
			slog.String("to", string(target)),
			slog.Any("err", err),
		)
		return relayUpstreamError(c, err)
	}

	h.transitionCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("accepted", true),
		attribute.String("to", string(target)),
	))

	// Confirm-then-apply: the local view changes only now.
	views.orders.Update(*updated)

	event := OrderEvent{
		OrderID:    updated.ID,
		Status:     updated.OrderStatus,
		ChangedBy:  session.Username,
		OccurredAt: time.Now().UTC(),
	}
	if err := h.pubsub.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish order event", slog.Any("err", err))
	}

	slog.InfoContext(ctx, "order status updated",
		slog.String("order_id", updated.ID),
		slog.String("status", string(updated.OrderStatus)),
	)

	return c.JSON(http.StatusOK, updated)
}

// upstreamMessage extracts the platform's message, falling back to a fixed
// string for transport failures.
func upstreamMessage(err error, fallback string) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return fallback
}
