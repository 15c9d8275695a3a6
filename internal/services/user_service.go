package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/perpetual-help/egov-api/internal/config"
	"github.com/perpetual-help/egov-api/internal/logging"
	"github.com/perpetual-help/egov-api/internal/models"
	"github.com/perpetual-help/egov-api/internal/observability"
	"github.com/perpetual-help/egov-api/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// UserService manages portal accounts and their access status
type UserService struct {
	logger *logging.SafeLogger
	audit  *AuditService
}

// NewUserService creates a new user service
func NewUserService(logger *logging.SafeLogger, audit *AuditService) *UserService {
	return &UserService{logger: logger, audit: audit}
}

func (s *UserService) collection() *mongo.Collection {
	return config.MongoDB.Collection(config.AppConfig.UsersCollection)
}

// Register creates a pending account from a registration request
func (s *UserService) Register(ctx context.Context, req models.UserRequest) (*models.UserResponse, error) {
	phone, err := utils.NormalizePhoneNumber(req.PhoneNumber)
	if err != nil {
		return nil, models.ErrInvalidPhone
	}

	user := &models.User{
		Name:             strings.TrimSpace(req.Name),
		Email:            req.Email,
		PhoneNumber:      phone,
		Address:          strings.TrimSpace(req.Address),
		FraternityNumber: strings.TrimSpace(req.FraternityNumber),
	}
	user.Email = user.NormalizedEmail()
	user.BeforeCreate()

	result, err := s.collection().InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrEmailExists
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	s.logger.Info("user registered", zap.String("email", observability.MaskEmail(user.Email)))

	resp := user.ToResponse()
	return &resp, nil
}

// GetByID retrieves one user account
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidUserID
	}

	var user models.User
	err = s.collection().FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// List returns one page of users for the admin console. Search matches name
// and email, case-insensitive.
func (s *UserService) List(ctx context.Context, page, perPage int, status models.ApplicationStatus, search string) (*models.PaginatedData, error) {
	if status != "" && !models.IsValidStatus(status) {
		return nil, models.ErrInvalidStatus
	}

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if search = strings.TrimSpace(search); search != "" {
		quoted := primitive.Regex{Pattern: regexQuote(search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": quoted},
			bson.M{"email": quoted},
		}
	}

	total, err := s.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	findOptions := options.Find().
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.collection().Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.UserResponse{}
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			continue
		}
		items = append(items, user.ToResponse())
	}

	data := models.NewPaginatedData(items, len(items), total, page, perPage)
	return &data, nil
}

// Transition applies an account status transition. Users follow the extended
// table: approved accounts can be deactivated and later reactivated.
func (s *UserService) Transition(ctx context.Context, id string, req models.TransitionRequest, actor string) (*models.UserResponse, error) {
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

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(models.ScopeUser, user.Status, req.Status) {
		return nil, models.ErrIllegalTransition
	}

	previous := user.Status
	user.Status = req.Status
	if models.RequiresReason(req.Status) {
		user.RejectionReason = reason
	}
	user.BeforeUpdate()

	update := bson.M{
		"status":     user.Status,
		"updated_at": user.UpdatedAt,
	}
	if models.RequiresReason(req.Status) {
		update["rejection_reason"] = reason
	}

	_, err = s.collection().UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": update})
	if err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	s.audit.RecordTransition(ctx, "user", user.ID.Hex(), previous, req.Status, reason, actor)
	observability.StatusTransitions.WithLabelValues("user", string(req.Status)).Inc()
	s.logger.Info("user status transition",
		zap.String("user_id", user.ID.Hex()),
		zap.String("from", string(previous)),
		zap.String("to", string(req.Status)))

	resp := user.ToResponse()
	return &resp, nil
}
