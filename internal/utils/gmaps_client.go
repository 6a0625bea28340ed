package utils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"googlemaps.github.io/maps"
)

/*──────────── reusable, thread-safe Geocoding client ────────────*/

var (
	geocodeClientOnce sync.Once
	geocodeClient     *maps.Client
	geocodeClientErr  error
)

func getGeocodeClient(apiKey string) (*maps.Client, error) {
	geocodeClientOnce.Do(func() {
		Logger.Info("[GMapsClient] Initializing Google Maps Geocoding client...")
		geocodeClient, geocodeClientErr = maps.NewClient(maps.WithAPIKey(apiKey))
		if geocodeClientErr != nil {
			Logger.WithError(geocodeClientErr).Error("[GMapsClient] Failed to initialize Google Maps client")
		}
	})
	return geocodeClient, geocodeClientErr
}

// GeocodeAddress resolves a street address to (lat, lng). An empty API
// key or an empty result set is an error; callers treat geocoding as
// best-effort and log instead of failing the save.
func GeocodeAddress(ctx context.Context, address, apiKey string) (float64, float64, error) {
	if apiKey == "" {
		return 0, 0, fmt.Errorf("gmaps api key is empty")
	}

	cli, err := getGeocodeClient(apiKey)
	if err != nil {
		return 0, 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	results, err := cli.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no geocoding results for %q", address)
	}

	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}
