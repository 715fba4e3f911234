package main

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetSalesReport godoc
//
// @Summary Aggregated sales figures for one restaurant
// @Tags analytics
// @Accept json
// @Produce json
// @Param report body SalesReportRequest true "Restaurant and period"
// @Success 200 {object} SalesReportResponse
// @Failure 422 {object} ErrorResponse
// @Router /v1/analytics/sales-report [post]
func (h *MainHandler) GetSalesReport(c echo.Context) error {
	ctx := c.Request().Context()

	var req SalesReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	report, err := h.sessionClient(c).GetSalesReport(ctx, req.RestaurantID, req.Period)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch sales report",
			slog.String("restaurant_id", req.RestaurantID),
			slog.Any("err", err),
		)
		return relayUpstreamError(c, err)
	}

	return c.JSON(http.StatusOK, SalesReportResponse{
		TotalSales:        report.TotalSales,
		TotalOrders:       report.TotalOrders,
		AverageOrderValue: report.AverageOrderValue(),
	})
}

// GetPopularItems godoc
//
// @Summary Top-selling items for one restaurant
// @Tags analytics
// @Accept json
// @Produce json
// @Param request body PopularItemsRequest true "Restaurant"
// @Success 200 {array} backend.PopularItem
// @Failure 422 {object} ErrorResponse
// @Router /v1/analytics/popular-items [post]
func (h *MainHandler) GetPopularItems(c echo.Context) error {
	ctx := c.Request().Context()

	var req PopularItemsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items, err := h.sessionClient(c).GetPopularItems(ctx, req.RestaurantID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch popular items",
			slog.String("restaurant_id", req.RestaurantID),
			slog.Any("err", err),
		)
		return relayUpstreamError(c, err)
	}

	return c.JSON(http.StatusOK, items)
}

// ExportData godoc
//
// @Summary Download the sales export in CSV or JSON
// @Tags analytics
// @Accept json
// @Produce text/csv
// @Produce json
// @Param request body ExportRequest true "Restaurant and format"
// @Success 200 {string} string "export body"
// @Failure 422 {object} ErrorResponse
// @Router /v1/analytics/export [post]
//
// The export body is a passthrough of the platform response; the console
// never parses it.
func (h *MainHandler) ExportData(c echo.Context) error {
	ctx := c.Request().Context()

	var req ExportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	body, contentType, err := h.sessionClient(c).ExportData(ctx, req.RestaurantID, req.Format)
	if err != nil {
		slog.ErrorContext(ctx, "failed to export sales data",
			slog.String("restaurant_id", req.RestaurantID),
			slog.String("format", req.Format),
			slog.Any("err", err),
		)
		return relayUpstreamError(c, err)
	}
	defer body.Close()

	if contentType == "" {
		if req.Format == "csv" {
			contentType = "text/csv"
		} else {
			contentType = echo.MIMEApplicationJSON
		}
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="sales_report.`+req.Format+`"`)
	c.Response().Header().Set(echo.HeaderContentType, contentType)
	c.Response().WriteHeader(http.StatusOK)

	_, err = io.Copy(c.Response().Writer, body)
	return err
}
