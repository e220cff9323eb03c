package adapters

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"mime/multipart"
	"net/http"

	"github.com/anmicius0/vintage-adventure-server/application/ports/outbound"
	"github.com/anmicius0/vintage-adventure-server/config"
	"github.com/anmicius0/vintage-adventure-server/domain"
)

const stylizerProvider = "stability"

type stabilityStylizer struct {
	ContentFetcher
	logger          outbound.LoggerPort
	stabilityConfig *config.StabilityConfig
}

func NewStabilityStylizer(contentFetcher ContentFetcher, stabilityConfig *config.StabilityConfig, logger outbound.LoggerPort) outbound.ImageStylizerPort {
	return &stabilityStylizer{
		ContentFetcher:  contentFetcher,
		logger:          logger,
		stabilityConfig: stabilityConfig,
	}
}

func (s *stabilityStylizer) Stylize(ctx context.Context, job domain.StylizationJob) ([]byte, error) {
	format := domain.DetectImageFormat(job.Image)
	if format == domain.ImageFormatUnknown {
		return nil, domain.NewValidationError("unsupported image format, expected JPEG or PNG")
	}

	prompt := job.Prompt
	if len(prompt) > s.stabilityConfig.MaxPromptChars {
		prompt = prompt[:s.stabilityConfig.MaxPromptChars]
	}

	req, err := s.getRequest(ctx, job.Image, prompt)
	if err != nil {
		s.logger.Error(err, "Failed to create the HTTP request")
		return nil, domain.NewTransportError(stylizerProvider, err.Error(), err)
	}

	rawRes, err := s.FetchContent(req, stylizerProvider)
	if err != nil {
		return nil, err
	}

	return s.reencodeJpeg(rawRes)
}

// reencodeJpeg normalizes the provider's PNG output to JPEG at the configured
// quality before returning it to the caller.
func (s *stabilityStylizer) reencodeJpeg(data []byte) ([]byte, error) {
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		s.logger.Error(err, "Failed to decode the stylized image")
		return nil, domain.NewTransportError(stylizerProvider, "provider returned an undecodable image", err)
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, decoded, &jpeg.Options{Quality: s.stabilityConfig.JpegQuality}); err != nil {
		s.logger.Error(err, "Failed to encode the stylized image")
		return nil, domain.NewTransportError(stylizerProvider, err.Error(), err)
	}

	return out.Bytes(), nil
}

func (s *stabilityStylizer) getRequest(ctx context.Context, sourceImage []byte, prompt string) (*http.Request, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := map[string]string{
		"init_image_mode":         "IMAGE_STRENGTH",
		"image_strength":          fmt.Sprintf("%g", s.stabilityConfig.ImageStrength),
		"cfg_scale":               fmt.Sprintf("%g", s.stabilityConfig.CfgScale),
		"clip_guidance_preset":    s.stabilityConfig.GuidancePreset,
		"text_prompts[0][text]":   prompt,
		"text_prompts[0][weight]": "1",
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, err
		}
	}

	filePart, err := writer.CreateFormFile("init_image", "image.jpg")
	if err != nil {
		return nil, err
	}
	if _, err := filePart.Write(sourceImage); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.stabilityConfig.ApiUrl, &body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+s.stabilityConfig.ApiKey)
	req.Header.Set("Accept", "image/png")
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return req, nil
}
