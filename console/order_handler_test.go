package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	healthgo "github.com/hellofresh/health-go/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AffanWajid12/resturant-console/backend"
	"github.com/AffanWajid12/resturant-console/platform"
	"github.com/AffanWajid12/resturant-console/sessions"
)

func testSettings() *Settings {
	return &Settings{
		App: platform.AppSettings{Name: "console-test", Version: "test", Env: "test"},
		HTTP: platform.HTTPSettings{
			Port: "8080",
			IP:   "127.0.0.1",
			CORS: platform.CORSSettings{
				Origins: []string{"http://localhost:3000"},
				Methods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
				Headers: []string{"Content-Type"},
			},
		},
		Backend: platform.BackendSettings{BaseURL: "http://unused", TimeoutInSeconds: 5},
		Session: platform.SessionSettings{Store: "memory", TTLInMinutes: 60, CookieName: "console_session"},
		LiveFeed: platform.LiveFeedSettings{
			Backend: "channel",
			Subject: "console.orders.status",
		},
	}
}

// platformMux is a fake restaurant platform that accepts any credentials.
// Tests add the routes they exercise.
func platformMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(backend.LoginResult{Token: "tok-123", Username: "owner", Role: "owner"})
	})
	return mux
}

func newTestConsole(t *testing.T, upstream http.Handler) *echo.Echo {
	t.Helper()

	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	health, err := healthgo.New(healthgo.WithComponent(healthgo.Component{
		Name:    "console-test",
		Version: "test",
	}))
	require.NoError(t, err)

	e := echo.New()
	_, err = NewMainHandler(
		e,
		testSettings(),
		backend.New(server.URL, 5*time.Second),
		sessions.NewMemoryStore(),
		NewGoChannelOrderEventPubSubber(),
		health,
	)
	require.NoError(t, err)

	return e
}

func doJSON(e *echo.Echo, method, target string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func loginTestSession(t *testing.T, e *echo.Echo) *http.Cookie {
	t.Helper()

	rec := doJSON(e, http.MethodPost, "/v1/auth/login", map[string]string{
		"email":    "owner@example.com",
		"password": "secret",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "console_session" {
			return cookie
		}
	}
	t.Fatal("login response carries no session cookie")
	return nil
}

func sampleOrders() []backend.Order {
	return []backend.Order{
		{
			ID:            "ord-1",
			User:          &backend.OrderUser{ID: "usr-1", Username: "alice"},
			Restaurant:    &backend.OrderRestaurant{ID: "rst-1", Name: "Mario's Pizzeria"},
			Items:         []backend.OrderItem{{Name: "Margherita", Quantity: 2, Price: 12.5}},
			TotalPrice:    25,
			Discount:      5,
			FinalTotal:    20,
			PaymentMethod: "card",
			OrderStatus:   backend.StatusPlaced,
		},
		{
			ID:            "ord-2",
			User:          &backend.OrderUser{ID: "usr-2", Username: "bob"},
			Restaurant:    &backend.OrderRestaurant{ID: "rst-2", Name: "Sushi Corner"},
			Items:         []backend.OrderItem{{Name: "Nigiri Set", Quantity: 1, Price: 18}},
			TotalPrice:    18,
			FinalTotal:    18,
			PaymentMethod: "cash",
			OrderStatus:   backend.StatusPreparing,
		},
	}
}

func TestGatedRoutesRequireSession(t *testing.T) {
	// Arrange
	e := newTestConsole(t, platformMux())

	// Act
	noCookie := doJSON(e, http.MethodGet, "/v1/orders", nil, nil)
	unknownCookie := doJSON(e, http.MethodGet, "/v1/orders", nil, &http.Cookie{Name: "console_session", Value: "nope"})

	// Assert
	assert.Equal(t, http.StatusUnauthorized, noCookie.Code)
	assert.Contains(t, noCookie.Body.String(), "/v1/auth/login")
	assert.Equal(t, http.StatusUnauthorized, unknownCookie.Code)
}

func TestLoginCreatesSessionForMe(t *testing.T) {
	// Arrange
	e := newTestConsole(t, platformMux())
	cookie := loginTestSession(t, e)

	// Act
	rec := doJSON(e, http.MethodGet, "/v1/auth/me", nil, cookie)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	var me MeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "owner", me.Username)
	assert.Equal(t, "owner", me.Role)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	// Arrange
	e := newTestConsole(t, platformMux())
	cookie := loginTestSession(t, e)

	// Act
	logout := doJSON(e, http.MethodPost, "/v1/auth/logout", nil, cookie)
	afterwards := doJSON(e, http.MethodGet, "/v1/auth/me", nil, cookie)

	// Assert
	assert.Equal(t, http.StatusNoContent, logout.Code)
	assert.Equal(t, http.StatusUnauthorized, afterwards.Code)
}

func TestOrderSearchFiltersWithoutRefetching(t *testing.T) {
	// Arrange
	mux := platformMux()
	fetches := 0
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		fetches++
		json.NewEncoder(w).Encode(sampleOrders())
	})
	e := newTestConsole(t, mux)
	cookie := loginTestSession(t, e)

	// Act
	activation := doJSON(e, http.MethodGet, "/v1/orders", nil, cookie)
	filtered := doJSON(e, http.MethodGet, "/v1/orders?search=mario", nil, cookie)

	// Assert
	require.Equal(t, http.StatusOK, activation.Code)
	require.Equal(t, http.StatusOK, filtered.Code)
	assert.Equal(t, 1, fetches, "search must narrow the loaded list, not refetch")

	var view OrdersView
	require.NoError(t, json.Unmarshal(filtered.Body.Bytes(), &view))
	require.Len(t, view.Orders, 1)
	assert.Equal(t, "ord-1", view.Orders[0].ID)
}

func TestOrderFetchFailureEmptiesView(t *testing.T) {
	// Arrange
	mux := platformMux()
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "orders unavailable"})
	})
	e := newTestConsole(t, mux)
	cookie := loginTestSession(t, e)

	// Act
	rec := doJSON(e, http.MethodGet, "/v1/orders", nil, cookie)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	var view OrdersView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Empty(t, view.Orders)
	assert.Equal(t, "orders unavailable", view.Error)
}

func TestUpdateOrderStatusAppliesAfterConfirmation(t *testing.T) {
	// Arrange
	mux := platformMux()
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sampleOrders())
	})
	var patchBody []byte
	mux.HandleFunc("PATCH /orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		patchBody, _ = io.ReadAll(r.Body)
		updated := sampleOrders()[0]
		updated.OrderStatus = backend.StatusConfirmed
		json.NewEncoder(w).Encode(updated)
	})
	e := newTestConsole(t, mux)
	cookie := loginTestSession(t, e)
	doJSON(e, http.MethodGet, "/v1/orders", nil, cookie)

	// Act
	rec := doJSON(e, http.MethodPatch, "/v1/orders/ord-1/status",
		StatusUpdateRequest{OrderStatus: "Confirmed"}, cookie)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"orderStatus":"Confirmed"}`, string(patchBody))

	var updated backend.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, backend.StatusConfirmed, updated.OrderStatus)

	view := doJSON(e, http.MethodGet, "/v1/orders?search=confirmed", nil, cookie)
	var filtered OrdersView
	require.NoError(t, json.Unmarshal(view.Body.Bytes(), &filtered))
	require.Len(t, filtered.Orders, 1)
	assert.Equal(t, "ord-1", filtered.Orders[0].ID)
}

func TestUpdateOrderStatusRejectsIllegalTransition(t *testing.T) {
	// Arrange
	mux := platformMux()
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sampleOrders())
	})
	patched := false
	mux.HandleFunc("PATCH /orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		patched = true
	})
	e := newTestConsole(t, mux)
	cookie := loginTestSession(t, e)
	doJSON(e, http.MethodGet, "/v1/orders", nil, cookie)

	tests := []struct {
		name   string
		status string
	}{
		{name: "skips a step", status: "Delivered"},
		{name: "regresses", status: "Placed"},
		{name: "unknown status", status: "Returned"},
	}

	for _, tt := range tests {
		// Act
		rec := doJSON(e, http.MethodPatch, "/v1/orders/ord-1/status",
			StatusUpdateRequest{OrderStatus: tt.status}, cookie)

		// Assert
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, tt.name)
	}
	assert.False(t, patched, "rejected transitions must never reach the platform")
}

func TestUpdateOrderStatusKeepsViewOnPlatformRejection(t *testing.T) {
	// Arrange
	mux := platformMux()
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sampleOrders())
	})
	mux.HandleFunc("PATCH /orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "order already picked up"})
	})
	e := newTestConsole(t, mux)
	cookie := loginTestSession(t, e)
	doJSON(e, http.MethodGet, "/v1/orders", nil, cookie)

	// Act
	rec := doJSON(e, http.MethodPatch, "/v1/orders/ord-1/status",
		StatusUpdateRequest{OrderStatus: "Confirmed"}, cookie)

	// Assert
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "order already picked up")

	view := doJSON(e, http.MethodGet, "/v1/orders?search=placed", nil, cookie)
	var filtered OrdersView
	require.NoError(t, json.Unmarshal(view.Body.Bytes(), &filtered))
	require.Len(t, filtered.Orders, 1, "the view keeps its last-confirmed status")
	assert.Equal(t, "ord-1", filtered.Orders[0].ID)
}

func TestUpdateOrderStatusUnknownOrder(t *testing.T) {
	// Arrange
	mux := platformMux()
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sampleOrders())
	})
	e := newTestConsole(t, mux)
	cookie := loginTestSession(t, e)
	doJSON(e, http.MethodGet, "/v1/orders", nil, cookie)

	// Act
	rec := doJSON(e, http.MethodPatch, "/v1/orders/ord-999/status",
		StatusUpdateRequest{OrderStatus: "Confirmed"}, cookie)

	// Assert
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateOrderStatusConflictsWhilePending(t *testing.T) {
	// Arrange
	entered := make(chan struct{})
	release := make(chan struct{})
	mux := platformMux()
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sampleOrders())
	})
	mux.HandleFunc("PATCH /orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		entered <- struct{}{}
		<-release
		updated := sampleOrders()[0]
		updated.OrderStatus = backend.StatusConfirmed
		json.NewEncoder(w).Encode(updated)
	})
	e := newTestConsole(t, mux)
	cookie := loginTestSession(t, e)
	doJSON(e, http.MethodGet, "/v1/orders", nil, cookie)

	firstDone := make(chan *httptest.ResponseRecorder)
	go func() {
		firstDone <- doJSON(e, http.MethodPatch, "/v1/orders/ord-1/status",
			StatusUpdateRequest{OrderStatus: "Confirmed"}, cookie)
	}()
	<-entered

	// Act
	second := doJSON(e, http.MethodPatch, "/v1/orders/ord-1/status",
		StatusUpdateRequest{OrderStatus: "Cancelled"}, cookie)
	close(release)
	first := <-firstDone

	// Assert
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, http.StatusOK, first.Code)
}

func TestConfirmedTransitionIsPublishedToSubscribers(t *testing.T) {
	// Arrange
	mux := platformMux()
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sampleOrders())
	})
	mux.HandleFunc("PATCH /orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		updated := sampleOrders()[0]
		updated.OrderStatus = backend.StatusConfirmed
		json.NewEncoder(w).Encode(updated)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	health, err := healthgo.New(healthgo.WithComponent(healthgo.Component{Name: "console-test", Version: "test"}))
	require.NoError(t, err)

	pubsub := NewGoChannelOrderEventPubSubber()
	e := echo.New()
	_, err = NewMainHandler(e, testSettings(), backend.New(server.URL, 5*time.Second),
		sessions.NewMemoryStore(), pubsub, health)
	require.NoError(t, err)

	cookie := loginTestSession(t, e)
	doJSON(e, http.MethodGet, "/v1/orders", nil, cookie)

	_, events, err := pubsub.Subscribe(t.Context())
	require.NoError(t, err)

	// Act
	rec := doJSON(e, http.MethodPatch, "/v1/orders/ord-1/status",
		StatusUpdateRequest{OrderStatus: "Confirmed"}, cookie)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	select {
	case event := <-events:
		assert.Equal(t, "ord-1", event.OrderID)
		assert.Equal(t, backend.StatusConfirmed, event.Status)
		assert.Equal(t, "owner", event.ChangedBy)
	case <-time.After(time.Second):
		t.Fatal("no order event published")
	}
}
