// Package mapbox talks to the Mapbox forward-geocoding API.
package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mietwerklabs/mietwerk/internal/config"
	"github.com/mietwerklabs/mietwerk/internal/geocode/domain"
)

type Provider struct {
	baseURL string
	token   string
	client  *http.Client
}

func New(cfg *config.Config) domain.Provider {
	return &Provider{
		baseURL: strings.TrimRight(cfg.Geocode.BaseURL, "/"),
		token:   cfg.Geocode.Token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type featureCollection struct {
	Features []struct {
		PlaceName string    `json:"place_name"`
		Center    []float64 `json:"center"`
	} `json:"features"`
}

func (p *Provider) Forward(ctx context.Context, address string) (*domain.Location, error) {
	endpoint := fmt.Sprintf("%s/%s.json?access_token=%s&limit=1",
		p.baseURL, url.PathEscape(address), url.QueryEscape(p.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding api error: %d", resp.StatusCode)
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, err
	}
	if len(fc.Features) == 0 || len(fc.Features[0].Center) < 2 {
		return nil, domain.ErrNotFound
	}

	// Mapbox centers are [longitude, latitude].
	feature := fc.Features[0]
	return &domain.Location{
		Longitude: feature.Center[0],
		Latitude:  feature.Center[1],
		PlaceName: feature.PlaceName,
	}, nil
}
