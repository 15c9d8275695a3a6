package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/perpetual-help/egov-api/internal/config"
	"github.com/perpetual-help/egov-api/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usgsFixture = `{
	"features": [
		{
			"id": "us7000abcd",
			"properties": {"mag": 5.4, "place": "12 km SE of Surigao", "time": 1756700000000, "url": "https://earthquake.usgs.gov/earthquakes/eventpage/us7000abcd"},
			"geometry": {"coordinates": [125.49, 9.75, 31.0]}
		},
		{
			"id": "us7000dcba",
			"properties": {"mag": 4.1, "place": "Mindoro", "time": 1756600000000, "url": ""},
			"geometry": {"coordinates": [121.1]}
		}
	]
}`

const typhoonFixture = `{
	"storms": [
		{
			"name": "Tino",
			"signal_level": 3,
			"wind_speed_kph": 150,
			"movement": "WNW at 20 kph",
			"forecast_start": "2026-08-30T00:00:00Z",
			"forecast_end": "2026-09-02T00:00:00Z"
		}
	]
}`

func feedTestConfig(usgsURL, typhoonURL string) *config.Config {
	return &config.Config{
		USGSFeedURL:      usgsURL,
		USGSMinMagnitude: 4.0,
		USGSMinLatitude:  4.5,
		USGSMaxLatitude:  21.5,
		USGSMinLongitude: 116.0,
		USGSMaxLongitude: 127.5,
		USGSWindow:       168 * time.Hour,
		TyphoonFeedURL:   typhoonURL,
	}
}

func TestFetchEarthquakes(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(usgsFixture))
	}))
	defer server.Close()

	config.AppConfig = feedTestConfig(server.URL, "")
	poller := NewFeedPoller(logging.NewSafeLogger(nil))

	quakes, err := poller.FetchEarthquakes(context.Background())
	require.NoError(t, err)

	// The entry with truncated coordinates is dropped
	require.Len(t, quakes, 1)
	assert.Equal(t, "us7000abcd", quakes[0].EventID)
	assert.Equal(t, 5.4, quakes[0].Magnitude)
	assert.Equal(t, 9.75, quakes[0].Latitude)
	assert.Equal(t, 125.49, quakes[0].Longitude)
	assert.Equal(t, 31.0, quakes[0].DepthKm)
	assert.Equal(t, time.UnixMilli(1756700000000).UTC(), quakes[0].Time)

	assert.Contains(t, gotQuery, "format=geojson")
	assert.Contains(t, gotQuery, "minmagnitude=4.0")
	assert.Contains(t, gotQuery, "minlatitude=4.5")
	assert.Contains(t, gotQuery, "maxlongitude=127.5")
	assert.Contains(t, gotQuery, "starttime=")
}

func TestFetchEarthquakesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	config.AppConfig = feedTestConfig(server.URL, "")
	poller := NewFeedPoller(logging.NewSafeLogger(nil))

	_, err := poller.FetchEarthquakes(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestFetchTyphoons(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(typhoonFixture))
	}))
	defer server.Close()

	config.AppConfig = feedTestConfig("", server.URL)
	poller := NewFeedPoller(logging.NewSafeLogger(nil))

	storms, err := poller.FetchTyphoons(context.Background())
	require.NoError(t, err)
	require.Len(t, storms, 1)
	assert.Equal(t, "Tino", storms[0].Name)
	assert.Equal(t, 3, storms[0].SignalLevel)
	assert.Equal(t, 150.0, storms[0].WindSpeedKph)
}

func TestRefreshTyphoonsUnconfigured(t *testing.T) {
	config.AppConfig = feedTestConfig("", "")
	poller := NewFeedPoller(logging.NewSafeLogger(nil))

	// No proxy configured is not a failure, the source is simply absent
	assert.NoError(t, poller.RefreshTyphoons(context.Background()))
}

func TestFetchTyphoonsBadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	config.AppConfig = feedTestConfig("", server.URL)
	poller := NewFeedPoller(logging.NewSafeLogger(nil))

	_, err := poller.FetchTyphoons(context.Background())
	require.Error(t, err)
}
