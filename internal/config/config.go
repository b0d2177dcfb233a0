// Package config sources runtime configuration from the environment. A .env
// file in the working directory is honored when present.
package config

import "github.com/joho/godotenv"

type Config interface {
	EnvConfig
}

type EnvConfig interface {
	GetAppName() string
	GetAPIBaseURL() string
	GetDataFolder() string
	GetPollInterval() string
	GetLogLevel() string
	GetPort() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	_ = godotenv.Load()
	return mainConfig{}
}
