package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/perpetual-help/egov-api/internal/config"
	"github.com/perpetual-help/egov-api/internal/logging"
	"github.com/perpetual-help/egov-api/internal/models"
	"github.com/perpetual-help/egov-api/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ApplicationService owns the application lifecycle: creation from a
// completed wizard, citizen tracking, admin review and status transitions.
type ApplicationService struct {
	logger *logging.SafeLogger
	audit  *AuditService
}

// NewApplicationService creates a new application service
func NewApplicationService(logger *logging.SafeLogger, audit *AuditService) *ApplicationService {
	return &ApplicationService{logger: logger, audit: audit}
}

func (s *ApplicationService) collection() *mongo.Collection {
	return config.MongoDB.Collection(config.AppConfig.ApplicationsCollection)
}

// Create persists a new application. The server assigns id, reference
// number, and the initial pending status; a duplicate reference number is
// retried a few times before giving up.
func (s *ApplicationService) Create(ctx context.Context, app *models.Application) (*models.ApplicationResponse, error) {
	app.BeforeCreate()

	for attempt := 0; attempt < 3; attempt++ {
		ref, err := GenerateReferenceNumber(app.Type)
		if err != nil {
			return nil, err
		}
		app.ReferenceNumber = ref

		result, err := s.collection().InsertOne(ctx, app)
		if err == nil {
			app.ID = result.InsertedID.(primitive.ObjectID)
			observability.ApplicationsSubmitted.WithLabelValues(string(app.Type)).Inc()
			s.logger.Info("application submitted",
				zap.String("type", string(app.Type)),
				zap.String("reference_number", app.ReferenceNumber))
			resp := app.ToResponse()
			return &resp, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("failed to create application: %w", err)
		}
	}

	return nil, fmt.Errorf("failed to allocate a unique reference number")
}

// GetByID retrieves one application, constrained to a service type
func (s *ApplicationService) GetByID(ctx context.Context, t models.ApplicationType, id string) (*models.Application, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidApplicationID
	}

	var app models.Application
	err = s.collection().FindOne(ctx, bson.M{"_id": objectID, "type": t}).Decode(&app)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &app, nil
}

// GetByReference looks up the citizen-facing tracking view
func (s *ApplicationService) GetByReference(ctx context.Context, reference string) (*models.TrackingResponse, error) {
	reference = strings.ToUpper(strings.TrimSpace(reference))

	var app models.Application
	err := s.collection().FindOne(ctx, bson.M{"reference_number": reference}).Decode(&app)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrReferenceNotFound
		}
		return nil, fmt.Errorf("failed to track application: %w", err)
	}

	tracking := app.ToTracking()
	return &tracking, nil
}

// buildListFilter merges the admin console's filter and search query.
// Search matches reference number and applicant name, case-insensitive.
func buildListFilter(t models.ApplicationType, status models.ApplicationStatus, search string) bson.M {
	filter := bson.M{"type": t}
	if status != "" {
		filter["status"] = status
	}
	if search = strings.TrimSpace(search); search != "" {
		quoted := primitive.Regex{Pattern: regexQuote(search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"reference_number": quoted},
			bson.M{"applicant.name": quoted},
		}
	}
	return filter
}

// regexQuote escapes regex metacharacters in a user-supplied search string
func regexQuote(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// List returns one page of applications for the admin review console.
// Counters in the returned block are server-authoritative.
func (s *ApplicationService) List(ctx context.Context, t models.ApplicationType, page, perPage int, status models.ApplicationStatus, search string) (*models.PaginatedData, error) {
	if status != "" && !models.IsValidStatus(status) {
		return nil, models.ErrInvalidStatus
	}

	filter := buildListFilter(t, status, search)

	total, err := s.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	findOptions := options.Find().
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.collection().Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.ApplicationResponse{}
	for cursor.Next(ctx) {
		var app models.Application
		if err := cursor.Decode(&app); err != nil {
			continue
		}
		items = append(items, app.ToResponse())
	}

	data := models.NewPaginatedData(items, len(items), total, page, perPage)
	return &data, nil
}

// ListForExport returns all applications matching the export filters,
// oldest first, uncapped by pagination. Used by the PDF export.
func (s *ApplicationService) ListForExport(ctx context.Context, t models.ApplicationType, status models.ApplicationStatus, from, to time.Time) ([]models.Application, error) {
	if status != "" && !models.IsValidStatus(status) {
		return nil, models.ErrInvalidStatus
	}

	filter := buildListFilter(t, status, "")
	created := bson.M{}
	if !from.IsZero() {
		created["$gte"] = from
	}
	if !to.IsZero() {
		created["$lte"] = to
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}

	cursor, err := s.collection().Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query applications for export: %w", err)
	}
	defer cursor.Close(ctx)

	apps := []models.Application{}
	for cursor.Next(ctx) {
		var app models.Application
		if err := cursor.Decode(&app); err != nil {
			continue
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// Transition applies an admin status transition. Legality is a transition
// table lookup; negative transitions demand a non-empty reason. The previous
// rejection reason is retained across re-approval for audit display.
func (s *ApplicationService) Transition(ctx context.Context, t models.ApplicationType, id string, req models.TransitionRequest, actor string) (*models.ApplicationResponse, error) {
	if !models.IsValidStatus(req.Status) {
		return nil, models.ErrInvalidStatus
	}

	reason := ""
	if req.RejectionReason != nil {
		reason = strings.TrimSpace(*req.RejectionReason)
	}
	if models.RequiresReason(req.Status) && reason == "" {
		return nil, models.ErrReasonRequired
	}

	app, err := s.GetByID(ctx, t, id)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(models.ScopeApplication, app.Status, req.Status) {
		return nil, models.ErrIllegalTransition
	}

	update := bson.M{
		"status":     req.Status,
		"updated_at": app.UpdatedAt,
	}
	if models.RequiresReason(req.Status) {
		update["rejection_reason"] = reason
	}
	if req.AdminNote != "" {
		update["admin_note"] = req.AdminNote
	}

	previous := app.Status
	app.Status = req.Status
	if models.RequiresReason(req.Status) {
		app.RejectionReason = reason
	}
	if req.AdminNote != "" {
		app.AdminNote = req.AdminNote
	}
	app.BeforeUpdate()
	update["updated_at"] = app.UpdatedAt

	_, err = s.collection().UpdateOne(ctx, bson.M{"_id": app.ID}, bson.M{"$set": update})
	if err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	s.audit.RecordTransition(ctx, "application", app.ID.Hex(), previous, req.Status, reason, actor)
	observability.StatusTransitions.WithLabelValues(string(t), string(req.Status)).Inc()
	s.logger.Info("application status transition",
		zap.String("type", string(t)),
		zap.String("reference_number", app.ReferenceNumber),
		zap.String("from", string(previous)),
		zap.String("to", string(req.Status)))

	resp := app.ToResponse()
	return &resp, nil
}

// Delete removes one application outright. Only legitimacy requests may be
// deleted; every other type is retained for audit.
func (s *ApplicationService) Delete(ctx context.Context, t models.ApplicationType, id string) error {
	if t != models.TypeLegitimacy {
		return models.ErrIllegalTransition
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidApplicationID
	}

	result, err := s.collection().DeleteOne(ctx, bson.M{"_id": objectID, "type": t})
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrApplicationNotFound
	}
	return nil
}
