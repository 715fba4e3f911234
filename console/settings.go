package main

import (
	"bytes"
	"log"
	"strings"

	_ "embed"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/AffanWajid12/resturant-console/platform"
)

//go:embed base.yaml
var baseConfig []byte

type Settings struct {
	App           platform.AppSettings           `mapstructure:"app" validate:"required"`
	HTTP          platform.HTTPSettings          `mapstructure:"http" validate:"required"`
	Backend       platform.BackendSettings       `mapstructure:"backend" validate:"required"`
	Session       platform.SessionSettings       `mapstructure:"session" validate:"required"`
	Redis         platform.RedisSettings         `mapstructure:"redis"`
	LiveFeed      platform.LiveFeedSettings      `mapstructure:"live-feed" validate:"required"`
	Nats          platform.NatsSettings          `mapstructure:"nats"`
	OpenTelemetry platform.OpenTelemetrySettings `mapstructure:"opentelemetry" validate:"required"`
}

func newSettingsValidator() *validator.Validate {
	validate := validator.New()
	allowedHeaders := map[string]struct{}{
		"Accept": {}, "Authorization": {}, "Content-Type": {}, "X-CSRF-Token": {},
	}
	validate.RegisterValidation("baseheader", func(fl validator.FieldLevel) bool {
		header := fl.Field().String()
		_, ok := allowedHeaders[header]
		return ok
	})
	return validate
}

func LoadConfig() (*Settings, error) {
	var cfg *Settings

	viper.SetConfigType("yaml")
	err := viper.ReadConfig(bytes.NewReader(baseConfig))
	if err != nil {
		log.Println("Failed to read config from yaml")
		return nil, err
	}

	viper.SetEnvPrefix("CONSOLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if err := newSettingsValidator().Struct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
