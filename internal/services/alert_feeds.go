package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/perpetual-help/egov-api/internal/config"
	"github.com/perpetual-help/egov-api/internal/logging"
	"github.com/perpetual-help/egov-api/internal/models"
	"github.com/perpetual-help/egov-api/internal/observability"
	"go.uber.org/zap"
)

// usgsResponse is the subset of the USGS GeoJSON envelope we read
type usgsResponse struct {
	Features []struct {
		ID         string `json:"id"`
		Properties struct {
			Mag   float64 `json:"mag"`
			Place string  `json:"place"`
			Time  int64   `json:"time"`
			URL   string  `json:"url"`
		} `json:"properties"`
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// typhoonResponse is the envelope returned by the typhoon proxy feed
type typhoonResponse struct {
	Storms []struct {
		Name          string    `json:"name"`
		SignalLevel   int       `json:"signal_level"`
		WindSpeedKph  float64   `json:"wind_speed_kph"`
		Movement      string    `json:"movement"`
		ForecastStart time.Time `json:"forecast_start"`
		ForecastEnd   time.Time `json:"forecast_end"`
	} `json:"storms"`
}

// FeedPoller refreshes the external disaster feed snapshots in Redis.
// Each source is fetched independently so one dead feed never blanks
// the other.
type FeedPoller struct {
	logger *logging.SafeLogger
	client *http.Client

	usgsURL    string
	typhoonURL string
}

// NewFeedPoller creates a poller over the configured feed endpoints
func NewFeedPoller(logger *logging.SafeLogger) *FeedPoller {
	return &FeedPoller{
		logger:     logger,
		client:     &http.Client{Timeout: 15 * time.Second},
		usgsURL:    config.AppConfig.USGSFeedURL,
		typhoonURL: config.AppConfig.TyphoonFeedURL,
	}
}

// Run polls both feeds on the configured interval until ctx is cancelled.
// The first poll happens immediately.
func (p *FeedPoller) Run(ctx context.Context) {
	p.pollOnce(ctx)

	ticker := time.NewTicker(config.AppConfig.AlertPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("feed poller stopping")
			return
		case <-ticker.C:
			p.pollOnce(ctx)
		}
	}
}

func (p *FeedPoller) pollOnce(ctx context.Context) {
	if err := p.RefreshEarthquakes(ctx); err != nil {
		observability.AlertFeedFailures.WithLabelValues("usgs").Inc()
		p.logger.Warn("earthquake feed refresh failed", zap.Error(err))
	}
	if err := p.RefreshTyphoons(ctx); err != nil {
		observability.AlertFeedFailures.WithLabelValues("typhoon").Inc()
		p.logger.Warn("typhoon feed refresh failed", zap.Error(err))
	}
}

// RefreshEarthquakes fetches the USGS feed and stores the filtered snapshot
func (p *FeedPoller) RefreshEarthquakes(ctx context.Context) error {
	quakes, err := p.FetchEarthquakes(ctx)
	if err != nil {
		return err
	}
	return storeSnapshot(ctx, earthquakeSnapshotKey, quakes)
}

// RefreshTyphoons fetches the typhoon proxy and stores the snapshot.
// An unconfigured proxy URL is a no-op, not an error.
func (p *FeedPoller) RefreshTyphoons(ctx context.Context) error {
	if p.typhoonURL == "" {
		return nil
	}
	storms, err := p.FetchTyphoons(ctx)
	if err != nil {
		return err
	}
	return storeSnapshot(ctx, typhoonSnapshotKey, storms)
}

// FetchEarthquakes queries the USGS event API scoped to the configured
// bounding box, magnitude floor and time window.
func (p *FeedPoller) FetchEarthquakes(ctx context.Context) ([]models.EarthquakeAlert, error) {
	cfg := config.AppConfig
	params := url.Values{}
	params.Set("format", "geojson")
	params.Set("minmagnitude", strconv.FormatFloat(cfg.USGSMinMagnitude, 'f', 1, 64))
	params.Set("minlatitude", strconv.FormatFloat(cfg.USGSMinLatitude, 'f', 1, 64))
	params.Set("maxlatitude", strconv.FormatFloat(cfg.USGSMaxLatitude, 'f', 1, 64))
	params.Set("minlongitude", strconv.FormatFloat(cfg.USGSMinLongitude, 'f', 1, 64))
	params.Set("maxlongitude", strconv.FormatFloat(cfg.USGSMaxLongitude, 'f', 1, 64))
	params.Set("starttime", time.Now().Add(-cfg.USGSWindow).UTC().Format(time.RFC3339))
	params.Set("orderby", "time")

	var payload usgsResponse
	if err := p.fetchJSON(ctx, p.usgsURL+"?"+params.Encode(), &payload); err != nil {
		return nil, err
	}

	quakes := make([]models.EarthquakeAlert, 0, len(payload.Features))
	for _, feature := range payload.Features {
		if len(feature.Geometry.Coordinates) < 3 {
			continue
		}
		quakes = append(quakes, models.EarthquakeAlert{
			EventID:   feature.ID,
			Magnitude: feature.Properties.Mag,
			Place:     feature.Properties.Place,
			Longitude: feature.Geometry.Coordinates[0],
			Latitude:  feature.Geometry.Coordinates[1],
			DepthKm:   feature.Geometry.Coordinates[2],
			Time:      time.UnixMilli(feature.Properties.Time).UTC(),
			DetailURL: feature.Properties.URL,
		})
	}
	return quakes, nil
}

// FetchTyphoons queries the typhoon proxy feed
func (p *FeedPoller) FetchTyphoons(ctx context.Context) ([]models.TyphoonAlert, error) {
	var payload typhoonResponse
	if err := p.fetchJSON(ctx, p.typhoonURL, &payload); err != nil {
		return nil, err
	}

	storms := make([]models.TyphoonAlert, 0, len(payload.Storms))
	for _, storm := range payload.Storms {
		storms = append(storms, models.TyphoonAlert{
			Name:          storm.Name,
			SignalLevel:   storm.SignalLevel,
			WindSpeedKph:  storm.WindSpeedKph,
			Movement:      storm.Movement,
			ForecastStart: storm.ForecastStart,
			ForecastEnd:   storm.ForecastEnd,
		})
	}
	return storms, nil
}

func (p *FeedPoller) fetchJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("feed returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode feed response: %w", err)
	}
	return nil
}

func storeSnapshot(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := config.Redis.Set(ctx, key, data, config.AppConfig.AlertCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}
