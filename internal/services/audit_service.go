package services

import (
	"context"
	"fmt"
	"time"

	"github.com/perpetual-help/egov-api/internal/config"
	"github.com/perpetual-help/egov-api/internal/logging"
	"github.com/perpetual-help/egov-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// AuditService records status transitions for audit display
type AuditService struct {
	logger *logging.SafeLogger
}

// NewAuditService creates a new audit service
func NewAuditService(logger *logging.SafeLogger) *AuditService {
	return &AuditService{logger: logger}
}

// RecordTransition appends one audit entry. Audit writes must never fail a
// transition; errors are logged and swallowed.
func (s *AuditService) RecordTransition(ctx context.Context, resource, resourceID string, previous, next models.ApplicationStatus, reason, actor string) {
	entry := models.StatusAudit{
		Resource:       resource,
		ResourceID:     resourceID,
		PreviousStatus: previous,
		NewStatus:      next,
		Reason:         reason,
		Actor:          actor,
		Timestamp:      time.Now(),
	}

	collection := config.MongoDB.Collection(config.AppConfig.StatusAuditsCollection)
	if _, err := collection.InsertOne(ctx, entry); err != nil {
		s.logger.Error("failed to record status audit",
			zap.String("resource", resource),
			zap.String("resource_id", resourceID),
			zap.Error(err))
	}
}

// History returns the transition history for one record, newest first
func (s *AuditService) History(ctx context.Context, resource, resourceID string) ([]models.StatusAudit, error) {
	collection := config.MongoDB.Collection(config.AppConfig.StatusAuditsCollection)

	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := collection.Find(ctx, bson.M{"resource": resource, "resource_id": resourceID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to load audit history: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.StatusAudit
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode audit history: %w", err)
	}
	return entries, nil
}
