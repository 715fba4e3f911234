package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "net/http/pprof"

	"github.com/go-redis/redis/v8"
	healthgo "github.com/hellofresh/health-go/v5"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/AffanWajid12/resturant-console/backend"
	_ "github.com/AffanWajid12/resturant-console/console/docs"
	"github.com/AffanWajid12/resturant-console/platform/telemetry"
	"github.com/AffanWajid12/resturant-console/sessions"
)

// @title						Restaurant Admin Console
// @version						1.0
// @host						localhost:8080
// @BasePath  					/
// @description					Administrative console for the restaurant-ordering platform.
func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()
	retcode := 0
	defer func() {
		os.Exit(retcode)
	}()

	slog.InfoContext(ctx, "Launching resturant-console")

	slog.InfoContext(ctx, "Loading config")
	settings, err := LoadConfig()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", slog.Any("err", err))
		retcode = 1
		return
	}

	slog.InfoContext(ctx, "Setting up opentelemetry")
	otelShutdown, err := telemetry.SetupOTelSDK(ctx, settings.App, settings.OpenTelemetry)
	if err != nil {
		slog.Error("failed to setup telemetry", slog.Any("err", err))
		retcode = 1
		return
	}

	defer func() {
		err = errors.Join(err, otelShutdown(context.Background()))
		if err != nil {
			slog.ErrorContext(
				ctx,
				"failed to shutdown opentelemetry providers",
				slog.Any("err", err),
			)
			retcode = 1
		}
	}()

	client := backend.New(
		settings.Backend.BaseURL,
		time.Duration(settings.Backend.TimeoutInSeconds)*time.Second,
	)

	healthChecks := []healthgo.Config{
		{
			Name: "platform",
			Check: func(ctx context.Context) error {
				req, err := http.NewRequestWithContext(ctx, http.MethodGet, settings.Backend.BaseURL, nil)
				if err != nil {
					return err
				}
				resp, err := http.DefaultClient.Do(req)
				if err != nil {
					return err
				}
				resp.Body.Close()
				return nil
			},
		},
	}

	var store sessions.Store
	switch settings.Session.Store {
	case "redis":
		slog.InfoContext(ctx, "Using redis session store", slog.String("addr", settings.Redis.Addr()))
		redisClient := redis.NewClient(&redis.Options{
			Addr:     settings.Redis.Addr(),
			Password: settings.Redis.Password,
			DB:       settings.Redis.DB,
		})
		store = sessions.NewRedisStore(
			redisClient,
			time.Duration(settings.Session.TTLInMinutes)*time.Minute,
		)
		healthChecks = append(healthChecks, healthgo.Config{
			Name: "redis",
			Check: func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		})
	default:
		store = sessions.NewMemoryStore()
	}

	var pubsub OrderEventPubSubber
	switch settings.LiveFeed.Backend {
	case "nats":
		slog.InfoContext(ctx, "Connecting to NATS server")
		nc, err := settings.Nats.GetNatsClient()
		if err != nil {
			slog.ErrorContext(ctx, "failed to connect to NATS server", slog.Any("err", err))
			retcode = 1
			return
		}
		pubsub = NewNATSOrderEventPubSubber(nc, settings.LiveFeed.Subject)
		healthChecks = append(healthChecks, healthgo.Config{
			Name: "nats",
			Check: func(ctx context.Context) error {
				if !nc.IsConnected() {
					return errors.New("NATS connection is not active")
				}
				return nil
			},
		})
	default:
		pubsub = NewGoChannelOrderEventPubSubber()
	}

	slog.InfoContext(ctx, "Setting up health checker")
	health, err := healthgo.New(
		healthgo.WithComponent(healthgo.Component{
			Name:    settings.App.Name,
			Version: settings.App.Version,
		}),
		healthgo.WithChecks(healthChecks...),
	)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create health checker", slog.Any("err", err))
		retcode = 1
		return
	}

	errChan := make(chan error)
	server := echo.New()
	server.HideBanner = true

	_, err = NewMainHandler(server, settings, client, store, pubsub, health)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create handler", slog.Any("err", err))
		retcode = 1
		return
	}
	server.GET("/swagger/*", echoSwagger.WrapHandler)
	pprof.Register(server)

	go func() {
		slog.InfoContext(ctx, "listening for requests", slog.String("ip", settings.HTTP.IP), slog.String("port", settings.HTTP.Port))
		errChan <- server.Start(fmt.Sprintf("%s:%s", settings.HTTP.IP, settings.HTTP.Port))
	}()

	select {
	case err = <-errChan:
		slog.ErrorContext(ctx, "error when running server", slog.Any("err", err))
		retcode = 1
		return
	case <-ctx.Done():
		// Wait for first Signal arrives
	}

	err = server.Shutdown(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to shutdown gracefully the server", slog.Any("err", err))
	}
}
