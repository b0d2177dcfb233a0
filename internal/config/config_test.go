package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/surveydesk/go-console/internal/config"
)

func TestDefaults(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("POLL_INTERVAL", "")
	t.Setenv("PORT", "")

	c := config.New()
	assert.Equal(t, "SurveyDesk Console", c.GetAppName())
	assert.Equal(t, "http://localhost:8080", c.GetAPIBaseURL())
	assert.Equal(t, "10s", c.GetPollInterval())
	assert.Equal(t, ":8080", c.GetPort())
	assert.NotEmpty(t, c.GetDataFolder())
}

func TestOverrides(t *testing.T) {
	t.Setenv("APP_NAME", "Test Console")
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("POLL_INTERVAL", "2s")
	t.Setenv("DATA_FOLDER", "/tmp/surveydesk-test")
	t.Setenv("PORT", "9090")

	c := config.New()
	assert.Equal(t, "Test Console", c.GetAppName())
	assert.Equal(t, "https://api.example.com", c.GetAPIBaseURL())
	assert.Equal(t, "2s", c.GetPollInterval())
	assert.Equal(t, "/tmp/surveydesk-test", c.GetDataFolder())
	assert.Equal(t, ":9090", c.GetPort())
}

func TestPortAlreadyPrefixed(t *testing.T) {
	t.Setenv("PORT", ":7000")

	c := config.New()
	assert.Equal(t, ":7000", c.GetPort())
}
