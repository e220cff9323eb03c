package config

import (
	"fmt"
	"os"
)

type DeepgramConfig struct {
	ApiUrl string
	ApiKey string
}

func GetDeepgramConfig() (*DeepgramConfig, error) {
	apiKey := os.Getenv("DEEPGRAM_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("DEEPGRAM_API_KEY must be set")
	}

	apiUrl := os.Getenv("DEEPGRAM_API_URL")
	if apiUrl == "" {
		apiUrl = "https://api.deepgram.com/v1/listen"
	}

	return &DeepgramConfig{
		ApiUrl: apiUrl,
		ApiKey: apiKey,
	}, nil
}
