package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"foodshare/internal/cache"
	"foodshare/internal/errors"
)

const (
	lookupCacheTTL       = 24 * time.Hour
	lookupCacheKeyPrefix = "geocode:"
)

// Result is a single geocoded location.
type Result struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formatted_address"`
	Street           string  `json:"street"`
	City             string  `json:"city"`
	StateCode        string  `json:"state_code"`
	Zipcode          string  `json:"zipcode"`
	CountryCode      string  `json:"country_code"`
}

// Geocoder converts free-text addresses or postal codes into coordinates plus
// structured address parts.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*Result, error)
}

// mapquestResponse mirrors the MapQuest geocoding API response shape.
type mapquestResponse struct {
	Results []struct {
		Locations []struct {
			LatLng struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"latLng"`
			Street     string `json:"street"`
			AdminArea5 string `json:"adminArea5"` // city
			AdminArea3 string `json:"adminArea3"` // state
			AdminArea1 string `json:"adminArea1"` // country
			PostalCode string `json:"postalCode"`
		} `json:"locations"`
	} `json:"results"`
}

// HTTPGeocoder calls a MapQuest-compatible provider, caching lookups in redis
// so repeated queries for the same address skip the upstream round-trip.
type HTTPGeocoder struct {
	client *resty.Client
	apiKey string
	cache  *cache.Client
}

// NewHTTPGeocoder creates a geocoder against the given provider base URL.
func NewHTTPGeocoder(baseURL, apiKey string, cache *cache.Client) *HTTPGeocoder {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)
	return &HTTPGeocoder{
		client: client,
		apiKey: apiKey,
		cache:  cache,
	}
}

// Geocode resolves query to its first candidate location.
func (g *HTTPGeocoder) Geocode(ctx context.Context, query string) (*Result, error) {
	key := lookupCacheKeyPrefix + strings.ToLower(strings.TrimSpace(query))
	if data, _ := g.cache.Get(ctx, key); data != nil {
		var cached Result
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	var body mapquestResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":        g.apiKey,
			"location":   query,
			"maxResults": "1",
		}).
		SetResult(&body).
		Get("/geocoding/v1/address")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrGeocode, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: provider returned status %d", errors.ErrGeocode, resp.StatusCode())
	}
	if len(body.Results) == 0 || len(body.Results[0].Locations) == 0 {
		return nil, fmt.Errorf("%w: no match for %q", errors.ErrGeocode, query)
	}

	loc := body.Results[0].Locations[0]
	result := &Result{
		Latitude:         loc.LatLng.Lat,
		Longitude:        loc.LatLng.Lng,
		FormattedAddress: formatAddress(loc.Street, loc.AdminArea5, loc.AdminArea3, loc.PostalCode, loc.AdminArea1),
		Street:           loc.Street,
		City:             loc.AdminArea5,
		StateCode:        loc.AdminArea3,
		Zipcode:          loc.PostalCode,
		CountryCode:      loc.AdminArea1,
	}

	if payload, err := json.Marshal(result); err == nil {
		_ = g.cache.Set(ctx, key, payload, lookupCacheTTL)
	}

	return result, nil
}

func formatAddress(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}
