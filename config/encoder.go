package config

import (
	"os"
	"time"
)

type EncoderConfig struct {
	BinaryPath  string
	OutputWidth int
	FrameRate   int
	ZoomStep    float64
	ZoomCeiling float64
	Timeout     time.Duration
}

func GetEncoderConfig() (*EncoderConfig, error) {
	binaryPath := os.Getenv("FFMPEG_PATH")
	if binaryPath == "" {
		binaryPath = "ffmpeg"
	}

	timeout := 120 * time.Second
	if raw := os.Getenv("ENCODER_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, err
		}
		timeout = parsed
	}

	return &EncoderConfig{
		BinaryPath:  binaryPath,
		OutputWidth: 1024,
		FrameRate:   30,
		ZoomStep:    0.001,
		ZoomCeiling: 1.5,
		Timeout:     timeout,
	}, nil
}
