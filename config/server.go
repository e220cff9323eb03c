package config

import (
	"os"
	"time"
)

type ServerConfig struct {
	Port           string
	JwksUrl        string
	AdapterTimeout time.Duration
}

func GetServerConfig() (*ServerConfig, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	timeout := 30 * time.Second
	if raw := os.Getenv("ADAPTER_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, err
		}
		timeout = parsed
	}

	return &ServerConfig{
		Port:           port,
		JwksUrl:        os.Getenv("JWKS_URL"),
		AdapterTimeout: timeout,
	}, nil
}
