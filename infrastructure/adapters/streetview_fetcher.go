package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/anmicius0/vintage-adventure-server/application/ports/outbound"
	"github.com/anmicius0/vintage-adventure-server/config"
	"github.com/anmicius0/vintage-adventure-server/domain"
)

const streetviewProvider = "streetview"

// streetviewFetcher performs the two-step panorama fetch: the first request
// resolves the provider's signed, redirected image URL, the second downloads
// the actual bytes from it.
type streetviewFetcher struct {
	ContentFetcher
	logger     outbound.LoggerPort
	mapsConfig *config.MapsConfig
	client     *http.Client
}

func NewStreetviewFetcher(contentFetcher ContentFetcher, mapsConfig *config.MapsConfig, logger outbound.LoggerPort) outbound.PanoramaFetcherPort {
	return &streetviewFetcher{
		ContentFetcher: contentFetcher,
		logger:         logger,
		mapsConfig:     mapsConfig,
		client:         &http.Client{},
	}
}

func (s *streetviewFetcher) Fetch(ctx context.Context, req domain.PanoramaRequest) ([]byte, error) {
	signedUrl, err := s.resolveImageUrl(ctx, req)
	if err != nil {
		return nil, err
	}

	imageReq, err := http.NewRequestWithContext(ctx, http.MethodGet, signedUrl, nil)
	if err != nil {
		s.logger.Error(err, "Failed to create the image fetch request")
		return nil, domain.NewTransportError(streetviewProvider, err.Error(), err)
	}

	return s.FetchContent(imageReq, streetviewProvider)
}

func (s *streetviewFetcher) resolveImageUrl(ctx context.Context, req domain.PanoramaRequest) (string, error) {
	params := url.Values{}
	params.Set("key", s.mapsConfig.ApiKey)
	params.Set("size", s.mapsConfig.ImageSize)
	params.Set("pano", req.PanoramaID)
	params.Set("heading", fmt.Sprintf("%g", req.Heading))
	params.Set("pitch", fmt.Sprintf("%g", req.Pitch))

	resolveReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.mapsConfig.StreetviewUrl+"?"+params.Encode(), nil)
	if err != nil {
		s.logger.Error(err, "Failed to create the URL resolve request")
		return "", domain.NewTransportError(streetviewProvider, err.Error(), err)
	}

	res, err := s.client.Do(resolveReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", domain.NewTimeoutError(streetviewProvider, err)
		}
		s.logger.Error(err, "Failed to resolve the panorama image URL")
		return "", domain.NewTransportError(streetviewProvider, err.Error(), err)
	}

	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			s.logger.Error(err, "Failed to close the resolve response body")
		}
	}(res.Body)

	if res.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(res.Body)
		return "", domain.NewTransportError(streetviewProvider, string(payload), nil)
	}

	// The client follows the provider's redirect chain; res.Request holds the
	// final signed URL the image must be fetched from.
	return res.Request.URL.String(), nil
}
