package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/anmicius0/vintage-adventure-server/application/ports/outbound"
	"github.com/anmicius0/vintage-adventure-server/config"
	"github.com/anmicius0/vintage-adventure-server/domain"
)

const transcriberProvider = "deepgram"

// languageModels maps supported language tags to the provider model
// configuration used for them. Tags outside this map fail before any
// outbound call is made.
var languageModels = map[string]string{
	"en-US": "nova-2",
	"en-GB": "nova-2",
	"zh-TW": "nova-2",
	"ja-JP": "nova-2",
}

type deepgramResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

type deepgramTranscriber struct {
	ContentFetcher
	logger         outbound.LoggerPort
	deepgramConfig *config.DeepgramConfig
}

func NewDeepgramTranscriber(contentFetcher ContentFetcher, deepgramConfig *config.DeepgramConfig, logger outbound.LoggerPort) outbound.TranscriberPort {
	return &deepgramTranscriber{
		ContentFetcher: contentFetcher,
		logger:         logger,
		deepgramConfig: deepgramConfig,
	}
}

func (d *deepgramTranscriber) Transcribe(ctx context.Context, job domain.TranscriptionJob) (*domain.Transcription, error) {
	model, ok := languageModels[job.LanguageTag]
	if !ok {
		return nil, domain.NewValidationError("unsupported language: " + job.LanguageTag)
	}

	req, err := d.getRequest(ctx, model, job)
	if err != nil {
		d.logger.Error(err, "Failed to create the HTTP request")
		return nil, domain.NewTransportError(transcriberProvider, err.Error(), err)
	}

	rawRes, err := d.FetchContent(req, transcriberProvider)
	if err != nil {
		return nil, err
	}

	var dgRes deepgramResponse
	if err := json.Unmarshal(rawRes, &dgRes); err != nil {
		d.logger.Error(err, "Failed to unmarshal the response")
		return nil, domain.NewTransportError(transcriberProvider, err.Error(), err)
	}

	channels := dgRes.Results.Channels
	if len(channels) == 0 || len(channels[0].Alternatives) == 0 {
		return nil, domain.NewNoResultError(transcriberProvider, "transcription returned no channels")
	}

	// An empty transcript on a well-formed channel means no speech was
	// detected; that is a valid empty result, not a failure.
	return &domain.Transcription{
		Transcript:  channels[0].Alternatives[0].Transcript,
		LanguageTag: job.LanguageTag,
	}, nil
}

func (d *deepgramTranscriber) getRequest(ctx context.Context, model string, job domain.TranscriptionJob) (*http.Request, error) {
	params := url.Values{}
	params.Set("model", model)
	params.Set("language", job.LanguageTag)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.deepgramConfig.ApiUrl+"?"+params.Encode(), bytes.NewReader(job.Audio))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Token "+d.deepgramConfig.ApiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	return req, nil
}
