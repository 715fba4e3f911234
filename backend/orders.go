package backend

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
)

// ListOrders fetches every order visible to the authenticated role.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}

	for _, order := range orders {
		if !order.TotalsConsistent() {
			slog.WarnContext(ctx, "order totals do not add up",
				slog.String("order_id", order.ID),
				slog.Float64("total_price", order.TotalPrice),
				slog.Float64("discount", order.Discount),
				slog.Float64("final_total", order.FinalTotal),
			)
		}
	}

	return orders, nil
}

type statusUpdate struct {
	OrderStatus OrderStatus `json:"orderStatus"`
}

// UpdateOrderStatus asks the platform to move an order to the given status
// and returns the updated order. The caller is expected to have checked
// Allowed already; the platform is still the final authority.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status OrderStatus) (*Order, error) {
	var updated Order
	path := fmt.Sprintf("/orders/%s/status", orderID)
	if err := c.do(ctx, http.MethodPatch, path, statusUpdate{OrderStatus: status}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
