package main

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	healthgo "github.com/hellofresh/health-go/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/AffanWajid12/resturant-console/backend"
	"github.com/AffanWajid12/resturant-console/sessions"
	"github.com/AffanWajid12/resturant-console/viewstate"
)

var (
	tracer = otel.Tracer("console")
	meter  = otel.Meter("console")
)

const sessionContextKey = "console.session"

// sessionViews is the per-login view state: one collection per list screen,
// menus keyed by restaurant. Mutations reconcile into these after the
// platform confirms them.
type sessionViews struct {
	orders      *viewstate.Collection[backend.Order]
	restaurants *viewstate.Collection[backend.Restaurant]

	mu    sync.Mutex
	menus map[string]*viewstate.Collection[backend.MenuItem]
}

func newSessionViews() *sessionViews {
	return &sessionViews{
		orders:      viewstate.NewCollection(func(o backend.Order) string { return o.ID }),
		restaurants: viewstate.NewCollection(func(r backend.Restaurant) string { return r.ID }),
		menus:       make(map[string]*viewstate.Collection[backend.MenuItem]),
	}
}

func (v *sessionViews) menuFor(restaurantID string) *viewstate.Collection[backend.MenuItem] {
	v.mu.Lock()
	defer v.mu.Unlock()

	collection, ok := v.menus[restaurantID]
	if !ok {
		collection = viewstate.NewCollection(func(m backend.MenuItem) string { return m.ID })
		v.menus[restaurantID] = collection
	}
	return collection
}

// findMenuItem scans every cached menu for the given item. Update and delete
// arrive keyed by item id alone, without the restaurant.
func (v *sessionViews) findMenuItem(itemID string) (*viewstate.Collection[backend.MenuItem], bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, collection := range v.menus {
		if _, ok := collection.Get(itemID); ok {
			return collection, true
		}
	}
	return nil, false
}

type MainHandler struct {
	settings *Settings
	client   *backend.Client
	store    sessions.Store
	pubsub   OrderEventPubSubber
	health   *healthgo.Health

	viewsMu sync.Mutex
	views   map[string]*sessionViews

	inflightMu sync.Mutex
	inflight   map[string]struct{}

	transitionCounter  metric.Int64Counter
	transitionDuration metric.Float64Histogram
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}

func NewMainHandler(
	e *echo.Echo,
	settings *Settings,
	client *backend.Client,
	store sessions.Store,
	pubsub OrderEventPubSubber,
	health *healthgo.Health,
) (*MainHandler, error) {
	transitionCounter, err := meter.Int64Counter(
		"console.order.transitions",
		metric.WithDescription("Number of order status transitions requested through the console"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	transitionDuration, err := meter.Float64Histogram(
		"console.order.transition.duration",
		metric.WithDescription("Duration of order status transition round trips"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	logger := slog.Default()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}
	e.Use(slogecho.New(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     settings.HTTP.CORS.Origins,
		AllowMethods:     settings.HTTP.CORS.Methods,
		AllowHeaders:     settings.HTTP.CORS.Headers,
		AllowCredentials: true,
	}))
	e.Use(otelecho.Middleware(settings.App.Name,
		otelecho.WithMetricAttributeFn(func(r *http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{
				attribute.String("client.ip", r.RemoteAddr),
				attribute.String("user.agent", r.UserAgent()),
			}
		}),
	))

	handler := &MainHandler{
		settings:           settings,
		client:             client,
		store:              store,
		pubsub:             pubsub,
		health:             health,
		views:              make(map[string]*sessionViews),
		inflight:           make(map[string]struct{}),
		transitionCounter:  transitionCounter,
		transitionDuration: transitionDuration,
	}

	e.GET("/healthz", handler.HealthCheck)

	v1 := e.Group("/v1")
	v1.POST("/auth/login", handler.Login)

	gated := v1.Group("", handler.requireSession)
	gated.POST("/auth/logout", handler.Logout)
	gated.GET("/auth/me", handler.Me)

	gated.GET("/orders", handler.GetOrders)
	gated.PATCH("/orders/:id/status", handler.UpdateOrderStatus)
	gated.GET("/orders/live", handler.GetLiveOrdersSSE)
	gated.GET("/orders/live/ws", handler.GetLiveOrdersWS)

	gated.GET("/restaurants", handler.GetRestaurants)
	gated.POST("/restaurants", handler.CreateRestaurant)
	gated.PUT("/restaurants/:id", handler.UpdateRestaurant)
	gated.DELETE("/restaurants/:id", handler.DeleteRestaurant)

	gated.GET("/restaurants/:restaurantId/menu-items", handler.GetMenuItems)
	gated.POST("/restaurants/:restaurantId/menu-items", handler.CreateMenuItem)
	gated.PUT("/menu-items/:id", handler.UpdateMenuItem)
	gated.DELETE("/menu-items/:id", handler.DeleteMenuItem)

	gated.POST("/analytics/sales-report", handler.GetSalesReport)
	gated.POST("/analytics/popular-items", handler.GetPopularItems)
	gated.POST("/analytics/export", handler.ExportData)

	return handler, nil
}

// requireSession gates every protected route on the presence of a console
// session. Presence only: the upstream token is never inspected here.
func (h *MainHandler) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		cookie, err := c.Cookie(h.settings.Session.CookieName)
		if err != nil || cookie.Value == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"message": "login required",
				"login":   "/v1/auth/login",
			})
		}

		session, err := h.store.Get(ctx, cookie.Value)
		if err != nil {
			slog.DebugContext(ctx, "rejecting unknown session", slog.Any("err", err))
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"message": "session expired",
				"login":   "/v1/auth/login",
			})
		}

		c.Set(sessionContextKey, session)
		return next(c)
	}
}

func (h *MainHandler) session(c echo.Context) *sessions.Session {
	session, _ := c.Get(sessionContextKey).(*sessions.Session)
	return session
}

// sessionClient derives a platform client carrying the caller's token.
func (h *MainHandler) sessionClient(c echo.Context) *backend.Client {
	return h.client.WithToken(h.session(c).Token)
}

func (h *MainHandler) viewsFor(sessionID string) *sessionViews {
	h.viewsMu.Lock()
	defer h.viewsMu.Unlock()

	views, ok := h.views[sessionID]
	if !ok {
		views = newSessionViews()
		h.views[sessionID] = views
	}
	return views
}

func (h *MainHandler) dropViews(sessionID string) {
	h.viewsMu.Lock()
	delete(h.views, sessionID)
	h.viewsMu.Unlock()
}

// beginTransition reserves the one pending-transition slot for an order.
func (h *MainHandler) beginTransition(sessionID, orderID string) bool {
	key := sessionID + "/" + orderID

	h.inflightMu.Lock()
	defer h.inflightMu.Unlock()

	if _, busy := h.inflight[key]; busy {
		return false
	}
	h.inflight[key] = struct{}{}
	return true
}

func (h *MainHandler) endTransition(sessionID, orderID string) {
	h.inflightMu.Lock()
	delete(h.inflight, sessionID+"/"+orderID)
	h.inflightMu.Unlock()
}

// relayUpstreamError maps a platform failure onto the console response:
// application errors keep their status and message, transport failures
// become a 502.
func relayUpstreamError(c echo.Context, err error) error {
	ctx := c.Request().Context()

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return c.JSON(apiErr.StatusCode, ErrorResponse{Message: apiErr.Message})
	}

	slog.ErrorContext(ctx, "platform unreachable", slog.Any("err", err))
	return c.JSON(http.StatusBadGateway, ErrorResponse{Message: "restaurant platform unreachable"})
}

// HealthCheck godoc
//
// @Summary Check the health of the service
// @Tags health
// @Produce json
// @Success 200 {object} healthgo.Check
// @Failure 503 {object} healthgo.Check
// @Router /healthz [get]
func (h *MainHandler) HealthCheck(c echo.Context) error {
	check := h.health.Measure(c.Request().Context())

	statusCode := http.StatusOK
	if check.Status != healthgo.StatusOK {
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, check)
}
