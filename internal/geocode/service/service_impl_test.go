package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/mietwerklabs/mietwerk/internal/config"
	"github.com/mietwerklabs/mietwerk/internal/geocode/domain"
	"github.com/mietwerklabs/mietwerk/internal/geocode/provider/mapbox"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, upstream *httptest.Server) domain.Service {
	t.Helper()

	mr := miniredis.RunT(t)
	cfg := &config.Config{}
	cfg.Geocode.BaseURL = upstream.URL
	cfg.Geocode.Token = "pk.test"
	cfg.Geocode.CacheTTL = time.Hour

	return New(Params{
		Log:      zap.NewNop(),
		Cfg:      cfg,
		Redis:    goredis.NewClient(&goredis.Options{Addr: mr.Addr()}),
		Provider: mapbox.New(cfg),
	})
}

func TestForwardCachesUpstreamHits(t *testing.T) {
	var calls atomic.Int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"features":[{"place_name":"Musterstraße 1, 10115 Berlin","center":[13.4,52.52]}]}`))
	}))
	defer upstream.Close()

	svc := newTestService(t, upstream)

	loc, err := svc.Forward(context.Background(), "Musterstraße 1, 10115 Berlin")
	require.NoError(t, err)
	assert.InDelta(t, 52.52, loc.Latitude, 0.001)
	assert.InDelta(t, 13.4, loc.Longitude, 0.001)
	assert.Equal(t, "Musterstraße 1, 10115 Berlin", loc.PlaceName)

	// Same address again, with different whitespace: cache hit.
	again, err := svc.Forward(context.Background(), "  Musterstraße 1,   10115 Berlin ")
	require.NoError(t, err)
	assert.Equal(t, loc, again)
	assert.Equal(t, int64(1), calls.Load())
}

func TestForwardRejectsEmptyAddress(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("upstream must not be called")
	}))
	defer upstream.Close()

	svc := newTestService(t, upstream)
	_, err := svc.Forward(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)
}

func TestForwardNoMatch(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"features":[]}`))
	}))
	defer upstream.Close()

	svc := newTestService(t, upstream)
	_, err := svc.Forward(context.Background(), "Nirgendwostraße 99")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
