package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AffanWajid12/resturant-console/platform"
)

func TestCORSSettingsValidation(t *testing.T) {
	// Arrange
	validate := newSettingsValidator()

	tests := []struct {
		name    string
		cors    platform.CORSSettings
		wantErr bool
	}{
		{
			name: "valid cors",
			cors: platform.CORSSettings{
				Origins: []string{"https://example.com"},
				Methods: []string{"GET", "POST"},
				Headers: []string{"Accept", "Authorization"},
			},
			wantErr: false,
		},
		{
			name: "invalid method",
			cors: platform.CORSSettings{
				Origins: []string{"https://example.com"},
				Methods: []string{"FOO"},
				Headers: []string{"Accept"},
			},
			wantErr: true,
		},
		{
			name: "invalid header",
			cors: platform.CORSSettings{
				Origins: []string{"https://example.com"},
				Methods: []string{"GET"},
				Headers: []string{"X-INVALID"},
			},
			wantErr: true,
		},
		{
			name: "invalid origin",
			cors: platform.CORSSettings{
				Origins: []string{"*"},
				Methods: []string{"GET"},
				Headers: []string{"Accept"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		// Act
		err := validate.Struct(tt.cors)

		// Assert
		if tt.wantErr {
			assert.Error(t, err, tt.name)
		} else {
			assert.NoError(t, err, tt.name)
		}
	}
}

func TestSessionSettingsValidation(t *testing.T) {
	// Arrange
	validate := newSettingsValidator()

	tests := []struct {
		name    string
		session platform.SessionSettings
		wantErr bool
	}{
		{
			name: "memory store",
			session: platform.SessionSettings{
				Store:        "memory",
				TTLInMinutes: 720,
				CookieName:   "console_session",
			},
			wantErr: false,
		},
		{
			name: "redis store",
			session: platform.SessionSettings{
				Store:        "redis",
				TTLInMinutes: 60,
				CookieName:   "console_session",
			},
			wantErr: false,
		},
		{
			name: "unknown store",
			session: platform.SessionSettings{
				Store:        "postgres",
				TTLInMinutes: 60,
				CookieName:   "console_session",
			},
			wantErr: true,
		},
		{
			name: "missing cookie name",
			session: platform.SessionSettings{
				Store:        "memory",
				TTLInMinutes: 60,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		// Act
		err := validate.Struct(tt.session)

		// Assert
		if tt.wantErr {
			assert.Error(t, err, tt.name)
		} else {
			assert.NoError(t, err, tt.name)
		}
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	// Act
	settings, err := LoadConfig()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "memory", settings.Session.Store)
	assert.Equal(t, "channel", settings.LiveFeed.Backend)
	assert.NotEmpty(t, settings.Backend.BaseURL)
	assert.NotEmpty(t, settings.Session.CookieName)
}
