// Package platform carries the settings structs shared by the console
// binaries. Values come from an embedded base.yaml with environment
// overrides; every struct is validated before use.
package platform

import (
	"strconv"

	"github.com/nats-io/nats.go"
)

type AppSettings struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"`
}

type CORSSettings struct {
	Origins []string `mapstructure:"origins" validate:"min=1,dive,url"`
	Methods []string `mapstructure:"methods" validate:"min=1,dive,oneof=GET POST PUT DELETE OPTIONS PATCH HEAD"`
	Headers []string `mapstructure:"headers" validate:"min=1,dive,baseheader"`
}

type HTTPSettings struct {
	Port string       `mapstructure:"port" validate:"required,numeric"`
	IP   string       `mapstructure:"ip" validate:"required,ip"`
	CORS CORSSettings `mapstructure:"cors" validate:"required"`
}

// BackendSettings points at the restaurant platform REST API the console
// fronts. Everything the console shows comes from this one collaborator.
type BackendSettings struct {
	BaseURL          string `mapstructure:"base-url" validate:"required,url"`
	TimeoutInSeconds int    `mapstructure:"timeout-in-seconds" validate:"required,min=1"`
}

// SessionSettings selects where login sessions live. The memory store is the
// default; redis lets several console replicas share sessions.
type SessionSettings struct {
	Store        string `mapstructure:"store" validate:"required,oneof=memory redis"`
	TTLInMinutes int    `mapstructure:"ttl-in-minutes" validate:"required,min=1"`
	CookieName   string `mapstructure:"cookie-name" validate:"required"`
}

type RedisSettings struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"required,min=1"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`
}

func (r *RedisSettings) Addr() string {
	return r.Host + ":" + strconv.Itoa(r.Port)
}

// LiveFeedSettings selects the fan-out backend for order status events.
type LiveFeedSettings struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=channel nats"`
	Subject string `mapstructure:"subject" validate:"required"`
}

type NatsSettings struct {
	UseCredentials bool `mapstructure:"usecredentials"`
	// Only used if UseCredentials is true
	Username string `mapstructure:"username" validate:"required_if=UseCredentials true"`
	Password string `mapstructure:"password" validate:"required_if=UseCredentials true"`
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"required,min=1"`
}

func (n *NatsSettings) GetNatsClient() (*nats.Conn, error) {
	portStr := strconv.Itoa(n.Port)
	return nats.Connect(
		n.Host+":"+portStr,
		nats.UserInfo(n.Username, n.Password),
	)
}

type OpenTelemetryLogSettings struct {
	TimeoutInSec  int64 `mapstructure:"timeout"`
	IntervalInSec int64 `mapstructure:"interval"`
	MaxQueueSize  int   `mapstructure:"maxqueuesize"`
	BatchSize     int   `mapstructure:"batchsize"`
}

type OpenTelemetryTraceSettings struct {
	TimeoutInSec int64 `mapstructure:"timeout"`
	MaxQueueSize int   `mapstructure:"maxqueuesize"`
	BatchSize    int   `mapstructure:"batchsize"`
	SampleRate   int   `mapstructure:"samplerate"`
}

type OpenTelemetryMetricSettings struct {
	IntervalInSec int64 `mapstructure:"interval"`
	TimeoutInSec  int64 `mapstructure:"timeout"`
}

type OpenTelemetrySettings struct {
	Enabled  bool                        `mapstructure:"enabled"`
	Endpoint string                      `mapstructure:"endpoint"`
	Metrics  OpenTelemetryMetricSettings `mapstructure:"metrics"`
	Traces   OpenTelemetryTraceSettings  `mapstructure:"traces"`
	Logs     OpenTelemetryLogSettings    `mapstructure:"logs"`
}
