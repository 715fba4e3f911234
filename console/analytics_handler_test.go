package main

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AffanWajid12/resturant-console/backend"
)

func TestSalesReportDerivesAverageOrderValue(t *testing.T) {
	// Arrange
	mux := platformMux()
	mux.HandleFunc("POST /sales-report", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(backend.SalesReport{TotalSales: 250, TotalOrders: 10})
	})
	e := newTestConsole(t, mux)
	cookie := loginTestSession(t, e)

	// Act
	rec := doJSON(e, http.MethodPost, "/v1/analytics/sales-report",
		SalesReportRequest{RestaurantID: "rst-1", Period: "week"}, cookie)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	var report SalesReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, float64(250), report.TotalSales)
	assert.Equal(t, 10, report.TotalOrders)
	assert.InDelta(t, 25, report.AverageOrderValue, 0.001)
}

func TestSalesReportRejectsUnknownPeriod(t *testing.T) {
	// Arrange
	e := newTestConsole(t, platformMux())
	cookie := loginTestSession(t, e)

	// Act
	rec := doJSON(e, http.MethodPost, "/v1/analytics/sales-report",
		SalesReportRequest{RestaurantID: "rst-1", Period: "year"}, cookie)

	// Assert
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPopularItemsRelayPlatformRows(t *testing.T) {
	// Arrange
	mux := platformMux()
	mux.HandleFunc("POST /popular-items", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]backend.PopularItem{
			{Name: "Margherita", TotalSold: 42},
			{Name: "Tiramisu", TotalSold: 17},
		})
	})
	e := newTestConsole(t, mux)
	cookie := loginTestSession(t, e)

	// Act
	rec := doJSON(e, http.MethodPost, "/v1/analytics/popular-items",
		PopularItemsRequest{RestaurantID: "rst-1"}, cookie)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	var items []backend.PopularItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Margherita", items[0].Name)
	assert.Equal(t, 42, items[0].TotalSold)
}

func TestExportStreamsPlatformBodyAsAttachment(t *testing.T) {
	// Arrange
	const csv = "name,totalSold\nMargherita,42\n"
	mux := platformMux()
	mux.HandleFunc("POST /export-data", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(csv))
	})
	e := newTestConsole(t, mux)
	cookie := loginTestSession(t, e)

	// Act
	rec := doJSON(e, http.MethodPost, "/v1/analytics/export",
		ExportRequest{RestaurantID: "rst-1", Format: "csv"}, cookie)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, csv, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `sales_report.csv`)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
}

func TestExportRelaysPlatformRejection(t *testing.T) {
	// Arrange
	mux := platformMux()
	mux.HandleFunc("POST /export-data", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "export not allowed"})
	})
	e := newTestConsole(t, mux)
	cookie := loginTestSession(t, e)

	// Act
	rec := doJSON(e, http.MethodPost, "/v1/analytics/export",
		ExportRequest{RestaurantID: "rst-1", Format: "json"}, cookie)

	// Assert
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "export not allowed")
}
