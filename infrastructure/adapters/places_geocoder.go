package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/anmicius0/vintage-adventure-server/application/ports/outbound"
	"github.com/anmicius0/vintage-adventure-server/config"
	"github.com/anmicius0/vintage-adventure-server/domain"
)

const geocoderProvider = "places"

type placesApiResponse struct {
	Candidates []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"candidates"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

type placesGeocoder struct {
	ContentFetcher
	logger     outbound.LoggerPort
	mapsConfig *config.MapsConfig
}

func NewPlacesGeocoder(contentFetcher ContentFetcher, mapsConfig *config.MapsConfig, logger outbound.LoggerPort) outbound.GeocoderPort {
	return &placesGeocoder{
		ContentFetcher: contentFetcher,
		logger:         logger,
		mapsConfig:     mapsConfig,
	}
}

func (p *placesGeocoder) FindPlace(ctx context.Context, query string) (domain.GeoPoint, error) {
	req, err := p.getRequest(ctx, query)
	if err != nil {
		p.logger.Error(err, "Failed to create the HTTP request")
		return domain.GeoPoint{}, domain.NewTransportError(geocoderProvider, err.Error(), err)
	}

	rawRes, err := p.FetchContent(req, geocoderProvider)
	if err != nil {
		return domain.GeoPoint{}, err
	}

	var placesRes placesApiResponse
	if err := json.Unmarshal(rawRes, &placesRes); err != nil {
		p.logger.Error(err, "Failed to unmarshal the response")
		return domain.GeoPoint{}, domain.NewTransportError(geocoderProvider, err.Error(), err)
	}

	if placesRes.ErrorMessage != "" {
		return domain.GeoPoint{}, domain.NewTransportError(geocoderProvider, placesRes.ErrorMessage, nil)
	}

	if len(placesRes.Candidates) == 0 {
		return domain.GeoPoint{}, domain.NewNoResultError(geocoderProvider, "no location found for query")
	}

	location := placesRes.Candidates[0].Geometry.Location
	return domain.GeoPoint{
		Latitude:  location.Lat,
		Longitude: location.Lng,
	}, nil
}

func (p *placesGeocoder) getRequest(ctx context.Context, query string) (*http.Request, error) {
	params := url.Values{}
	params.Set("key", p.mapsConfig.ApiKey)
	params.Set("input", query)
	params.Set("inputtype", "textquery")
	params.Set("fields", "geometry")

	return http.NewRequestWithContext(ctx, http.MethodGet, p.mapsConfig.PlacesApiUrl+"?"+params.Encode(), nil)
}
