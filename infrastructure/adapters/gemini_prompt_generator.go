package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/anmicius0/vintage-adventure-server/application/ports/outbound"
	"github.com/anmicius0/vintage-adventure-server/config"
	"github.com/anmicius0/vintage-adventure-server/domain"
	"github.com/donovanhide/eventsource"
)

const promptProvider = "gemini"
const MaxStreamRetries = 3

// promptTemplateV1 is the versioned instruction text for prompt synthesis.
// Changing it is a product decision, not a code branch.
const promptTemplateV1 = "Summarize the story into a stable diffusion prompt.\n" +
	"Be concise, less than %d words.\n" +
	"The story: %s"

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiChunkBody struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiPromptGenerator struct {
	logger       outbound.LoggerPort
	geminiConfig *config.GeminiConfig
	workerPool   outbound.TaskDispatcher
}

func NewGeminiPromptGenerator(geminiConfig *config.GeminiConfig, workerPool outbound.TaskDispatcher, logger outbound.LoggerPort) outbound.PromptGeneratorPort {
	return &geminiPromptGenerator{
		logger:       logger,
		geminiConfig: geminiConfig,
		workerPool:   workerPool,
	}
}

func (g *geminiPromptGenerator) Generate(ctx context.Context, story string) (string, error) {
	type streamResult struct {
		prompt string
		err    error
	}

	done := make(chan streamResult, 1)

	newCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	err := g.workerPool.Submit(func() {
		prompt, err := g.consumeStream(newCtx, story)
		done <- streamResult{prompt: prompt, err: err}
	})
	if err != nil {
		g.logger.Error(err, "Failed to submit task to worker pool")
		return "", domain.NewTransportError(promptProvider, err.Error(), err)
	}

	select {
	case res := <-done:
		if res.err != nil {
			return "", res.err
		}
		return domain.BoundWords(res.prompt, g.geminiConfig.MaxPromptWords), nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", domain.NewTimeoutError(promptProvider, ctx.Err())
		}
		return "", domain.NewTransportError(promptProvider, "request cancelled", ctx.Err())
	}
}

func (g *geminiPromptGenerator) consumeStream(ctx context.Context, story string) (string, error) {
	req, err := g.createRequest(ctx, story)
	if err != nil {
		g.logger.Error(err, "Failed to create HTTP request for prompt stream")
		return "", domain.NewTransportError(promptProvider, err.Error(), err)
	}

	stream, err := eventsource.SubscribeWithRequest("", req)
	if err != nil {
		g.logger.Error(err, "Failed to subscribe to prompt stream")
		return "", domain.NewTransportError(promptProvider, err.Error(), err)
	}
	defer stream.Close()

	var accumulated strings.Builder
	retryCount := 0

	for {
		select {
		case <-ctx.Done():
			return "", domain.NewTransportError(promptProvider, "stream cancelled", ctx.Err())
		case ev := <-stream.Events:
			chunk, err := g.extractPayload(ev)
			if err != nil {
				return "", err
			}
			accumulated.WriteString(chunk)
			retryCount = 0
		case err := <-stream.Errors:
			if err == io.EOF {
				if accumulated.Len() == 0 {
					return "", domain.NewNoResultError(promptProvider, "prompt stream yielded no content")
				}
				return accumulated.String(), nil
			}
			if retryCount < MaxStreamRetries {
				g.logger.ErrorWithFields(err, "Error occurred during streaming, retrying", map[string]interface{}{
					"retry_count": retryCount})
				retryCount++
				continue
			}
			g.logger.Error(err, "Error occurred during streaming, max retries reached")
			return "", domain.NewTransportError(promptProvider, err.Error(), err)
		}
	}
}

func (g *geminiPromptGenerator) extractPayload(event eventsource.Event) (string, error) {
	var chunkBody geminiChunkBody
	err := json.Unmarshal([]byte(event.Data()), &chunkBody)
	if err != nil {
		g.logger.Error(err, "Failed to unmarshal event data")
		return "", domain.NewTransportError(promptProvider, err.Error(), err)
	}

	if len(chunkBody.Candidates) == 0 {
		return "", nil
	}

	var chunk strings.Builder
	for _, part := range chunkBody.Candidates[0].Content.Parts {
		chunk.WriteString(part.Text)
	}

	return chunk.String(), nil
}

func (g *geminiPromptGenerator) createRequest(ctx context.Context, story string) (*http.Request, error) {
	promptReq := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: fmt.Sprintf(promptTemplateV1, g.geminiConfig.MaxPromptWords, story)}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature: g.geminiConfig.Temperature,
		},
	}

	payloadBytes, err := json.Marshal(promptReq)
	if err != nil {
		return nil, err
	}

	streamUrl := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse&key=%s",
		g.geminiConfig.ApiUrl, g.geminiConfig.Model, g.geminiConfig.ApiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, streamUrl, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	return req, nil
}
