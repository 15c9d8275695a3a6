package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/perpetual-help/egov-api/internal/config"
	"github.com/perpetual-help/egov-api/internal/logging"
	"github.com/perpetual-help/egov-api/internal/models"
	"github.com/perpetual-help/egov-api/internal/observability"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Redis keys holding the latest snapshot of each external feed. The feed
// poller writes them, the aggregator reads them.
const (
	earthquakeSnapshotKey = "alerts:snapshot:earthquake"
	typhoonSnapshotKey    = "alerts:snapshot:typhoon"
)

// AlertService manages admin-issued alerts and aggregates them with the
// external feed snapshots into a single list.
type AlertService struct {
	logger *logging.SafeLogger
}

// NewAlertService creates a new alert service
func NewAlertService(logger *logging.SafeLogger) *AlertService {
	return &AlertService{logger: logger}
}

func (s *AlertService) collection() *mongo.Collection {
	return config.MongoDB.Collection(config.AppConfig.AlertsCollection)
}

// Create issues a new admin alert
func (s *AlertService) Create(ctx context.Context, req models.AdminAlertRequest) (*models.AdminAlert, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	alert := &models.AdminAlert{
		Title:        req.Title,
		DisasterType: req.DisasterType,
		Severity:     req.Severity,
		Instructions: req.Instructions,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
	}
	alert.BeforeCreate()

	result, err := s.collection().InsertOne(ctx, alert)
	if err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}
	alert.ID = result.InsertedID.(primitive.ObjectID)

	s.logger.Info("admin alert issued",
		zap.String("alert_id", alert.ID.Hex()),
		zap.String("disaster_type", alert.DisasterType),
		zap.String("severity", alert.Severity))
	return alert, nil
}

// Get retrieves one admin alert
func (s *AlertService) Get(ctx context.Context, id string) (*models.AdminAlert, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidAlertID
	}

	var alert models.AdminAlert
	err = s.collection().FindOne(ctx, bson.M{"_id": objectID}).Decode(&alert)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return &alert, nil
}

// List returns one admin page of issued alerts, newest window first
func (s *AlertService) List(ctx context.Context, page, perPage int) (*models.PaginatedData, error) {
	filter := bson.M{}
	total, err := s.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count alerts: %w", err)
	}

	findOptions := options.Find().
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage)).
		SetSort(bson.D{{Key: "starts_at", Value: -1}})

	cursor, err := s.collection().Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer cursor.Close(ctx)

	alerts := []models.AdminAlert{}
	for cursor.Next(ctx) {
		var alert models.AdminAlert
		if err := cursor.Decode(&alert); err != nil {
			continue
		}
		alerts = append(alerts, alert)
	}

	data := models.NewPaginatedData(alerts, len(alerts), total, page, perPage)
	return &data, nil
}

// Update replaces the editable fields of an admin alert
func (s *AlertService) Update(ctx context.Context, id string, req models.AdminAlertRequest) (*models.AdminAlert, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	alert, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	alert.Title = req.Title
	alert.DisasterType = req.DisasterType
	alert.Severity = req.Severity
	alert.Instructions = req.Instructions
	alert.StartsAt = req.StartsAt
	alert.EndsAt = req.EndsAt
	alert.BeforeUpdate()

	_, err = s.collection().UpdateOne(ctx, bson.M{"_id": alert.ID}, bson.M{"$set": bson.M{
		"title":         alert.Title,
		"disaster_type": alert.DisasterType,
		"severity":      alert.Severity,
		"instructions":  alert.Instructions,
		"starts_at":     alert.StartsAt,
		"ends_at":       alert.EndsAt,
		"updated_at":    alert.UpdatedAt,
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to update alert: %w", err)
	}
	return alert, nil
}

// Delete withdraws an admin alert
func (s *AlertService) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidAlertID
	}

	result, err := s.collection().DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrAlertNotFound
	}
	return nil
}

// Aggregate merges admin alerts with the latest earthquake and typhoon
// snapshots. Each source degrades independently: a failed one contributes
// nothing while the others still appear. The active flag is computed
// against now on every call.
func (s *AlertService) Aggregate(ctx context.Context, now time.Time) ([]models.Alert, error) {
	merged := []models.Alert{}

	adminAlerts, err := s.activeWindowAlerts(ctx)
	if err != nil {
		s.logger.Warn("admin alerts unavailable", zap.Error(err))
		observability.AlertFeedFailures.WithLabelValues("admin").Inc()
		adminAlerts = nil
	}
	for i := range adminAlerts {
		a := adminAlerts[i]
		merged = append(merged, models.Alert{
			Kind:   models.AlertKindAdmin,
			Active: models.IsActiveWindow(now, a.StartsAt, a.EndsAt),
			Admin:  &a,
		})
	}

	for _, quake := range s.earthquakeSnapshot(ctx) {
		q := quake
		merged = append(merged, models.Alert{
			Kind:       models.AlertKindEarthquake,
			Active:     now.Sub(q.Time) <= config.AppConfig.USGSWindow,
			Earthquake: &q,
		})
	}

	for _, storm := range s.typhoonSnapshot(ctx) {
		t := storm
		merged = append(merged, models.Alert{
			Kind:    models.AlertKindTyphoon,
			Active:  models.IsActiveWindow(now, t.ForecastStart, t.ForecastEnd),
			Typhoon: &t,
		})
	}

	return merged, nil
}

// activeWindowAlerts returns admin alerts whose window has not yet closed
func (s *AlertService) activeWindowAlerts(ctx context.Context) ([]models.AdminAlert, error) {
	cursor, err := s.collection().Find(ctx,
		bson.M{"ends_at": bson.M{"$gte": time.Now().Add(-24 * time.Hour)}},
		options.Find().SetSort(bson.D{{Key: "starts_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to load admin alerts: %w", err)
	}
	defer cursor.Close(ctx)

	alerts := []models.AdminAlert{}
	for cursor.Next(ctx) {
		var alert models.AdminAlert
		if err := cursor.Decode(&alert); err != nil {
			continue
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

func (s *AlertService) earthquakeSnapshot(ctx context.Context) []models.EarthquakeAlert {
	raw, err := config.Redis.Get(ctx, earthquakeSnapshotKey).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("earthquake snapshot unavailable", zap.Error(err))
		}
		return nil
	}
	observability.CacheHits.WithLabelValues("earthquake_snapshot").Inc()

	var quakes []models.EarthquakeAlert
	if err := json.Unmarshal([]byte(raw), &quakes); err != nil {
		s.logger.Warn("earthquake snapshot corrupt", zap.Error(err))
		return nil
	}
	return quakes
}

func (s *AlertService) typhoonSnapshot(ctx context.Context) []models.TyphoonAlert {
	raw, err := config.Redis.Get(ctx, typhoonSnapshotKey).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("typhoon snapshot unavailable", zap.Error(err))
		}
		return nil
	}
	observability.CacheHits.WithLabelValues("typhoon_snapshot").Inc()

	var storms []models.TyphoonAlert
	if err := json.Unmarshal([]byte(raw), &storms); err != nil {
		s.logger.Warn("typhoon snapshot corrupt", zap.Error(err))
		return nil
	}
	return storms
}
