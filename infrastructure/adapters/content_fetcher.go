package adapters

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/anmicius0/vintage-adventure-server/application/ports/outbound"
	"github.com/anmicius0/vintage-adventure-server/domain"
)

// ContentFetcher performs one outbound HTTP call and normalizes its outcome:
// non-2xx responses become transport failures carrying the provider's body
// verbatim, exceeded deadlines become timeout failures.
type ContentFetcher interface {
	FetchContent(req *http.Request, provider string) ([]byte, error)
}

type contentFetcher struct {
	logger outbound.LoggerPort
	client *http.Client
}

func NewContentFetcher(logger outbound.LoggerPort) ContentFetcher {
	return &contentFetcher{
		logger: logger,
		client: &http.Client{},
	}
}

func (c *contentFetcher) FetchContent(req *http.Request, provider string) ([]byte, error) {
	res, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.NewTimeoutError(provider, err)
		}
		c.logger.ErrorWithFields(err, "Failed to send the HTTP request", map[string]interface{}{
			"provider": provider,
			"method":   req.Method,
			"URL":      req.URL.String(),
		})
		return nil, domain.NewTransportError(provider, err.Error(), err)
	}

	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			c.logger.Error(err, "Failed to close the response body")
		}
	}(res.Body)

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.NewTimeoutError(provider, err)
		}
		c.logger.ErrorWithFields(err, "Failed to read the response body", map[string]interface{}{
			"provider": provider,
			"URL":      req.URL.String(),
		})
		return nil, domain.NewTransportError(provider, err.Error(), err)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		c.logger.ErrorWithFields(nil, "HTTP request returned non-OK status code", map[string]interface{}{
			"provider": provider,
			"URL":      req.URL.String(),
			"status":   res.StatusCode,
			"message":  string(payload),
		})
		return nil, domain.NewTransportError(provider, string(payload), nil)
	}

	return payload, nil
}
