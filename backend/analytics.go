package backend

import (
	"context"
	"io"
	"net/http"
)

type salesReportRequest struct {
	RestaurantID string `json:"restaurantId"`
	Period       string `json:"period"`
}

type popularItemsRequest struct {
	RestaurantID string `json:"restaurantId"`
}

type exportRequest struct {
	RestaurantID string `json:"restaurantId"`
	Format       string `json:"format"`
}

// GetSalesReport fetches aggregated sales figures for one restaurant over a
// period of "day", "week" or "month".
func (c *Client) GetSalesReport(ctx context.Context, restaurantID, period string) (*SalesReport, error) {
	var report SalesReport
	req := salesReportRequest{RestaurantID: restaurantID, Period: period}
	if err := c.do(ctx, http.MethodPost, "/sales-report", req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// GetPopularItems fetches the top-selling items of one restaurant.
func (c *Client) GetPopularItems(ctx context.Context, restaurantID string) ([]PopularItem, error) {
	var items []PopularItem
	req := popularItemsRequest{RestaurantID: restaurantID}
	if err := c.do(ctx, http.MethodPost, "/popular-items", req, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ExportData streams the platform's sales export in the requested format
// ("csv" or "json"). The body is a passthrough; the caller must close it.
func (c *Client) ExportData(ctx context.Context, restaurantID, format string) (io.ReadCloser, string, error) {
	req := exportRequest{RestaurantID: restaurantID, Format: format}
	return c.stream(ctx, http.MethodPost, "/export-data", req)
}
