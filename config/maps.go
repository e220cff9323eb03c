package config

import (
	"fmt"
	"os"
)

type MapsConfig struct {
	ApiKey        string
	PlacesApiUrl  string
	StreetviewUrl string
	ImageSize     string
}

func GetMapsConfig() (*MapsConfig, error) {
	apiKey := os.Getenv("GMAPS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GMAPS_API_KEY must be set")
	}

	placesApiUrl := os.Getenv("GMAPS_PLACES_API_URL")
	if placesApiUrl == "" {
		placesApiUrl = "https://maps.googleapis.com/maps/api/place/findplacefromtext/json"
	}

	streetviewUrl := os.Getenv("GMAPS_STREETVIEW_URL")
	if streetviewUrl == "" {
		streetviewUrl = "https://maps.googleapis.com/maps/api/streetview"
	}

	return &MapsConfig{
		ApiKey:        apiKey,
		PlacesApiUrl:  placesApiUrl,
		StreetviewUrl: streetviewUrl,
		ImageSize:     "640x640",
	}, nil
}
