package config

import (
	"fmt"
	"os"
)

type StabilityConfig struct {
	ApiUrl         string
	ApiKey         string
	ImageStrength  float64
	CfgScale       float64
	GuidancePreset string
	MaxPromptChars int
	JpegQuality    int
}

func GetStabilityConfig() (*StabilityConfig, error) {
	apiKey := os.Getenv("STABILITY_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("STABILITY_API_KEY must be set")
	}

	apiUrl := os.Getenv("STABILITY_API_URL")
	if apiUrl == "" {
		apiUrl = "https://api.stability.ai/v1/generation/stable-diffusion-v1-6/image-to-image"
	}

	return &StabilityConfig{
		ApiUrl:         apiUrl,
		ApiKey:         apiKey,
		ImageStrength:  0.55,
		CfgScale:       20,
		GuidancePreset: "FAST_BLUE",
		MaxPromptChars: 2000,
		JpegQuality:    90,
	}, nil
}
