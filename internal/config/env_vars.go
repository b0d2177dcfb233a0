package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	portEnvVar      = "PORT"
	appNameVar      = "APP_NAME"
	apiBaseURLVar   = "API_BASE_URL"
	dataFolderVar   = "DATA_FOLDER"
	pollIntervalVar = "POLL_INTERVAL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "SurveyDesk Console")
}

func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:8080")
}

// GetDataFolder returns the folder holding client-side durable state
// (the credential database). Defaults to the OS user config dir.
func (EnvVars) GetDataFolder() string {
	if folder := GetEnv(dataFolderVar, ""); folder != "" {
		return folder
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "surveydesk")
}

// GetPollInterval returns the two-factor poll interval as a duration string.
func (EnvVars) GetPollInterval() string {
	return GetEnv(pollIntervalVar, "10s")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv("LOG_LEVEL", "info")
}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetEnv() string {
	return GetEnv("ENV", "DEV")
}

func GetEnv(name string, defaultValue string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return defaultValue
}
