package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/perpetual-help/egov-api/internal/config"
	"github.com/perpetual-help/egov-api/internal/logging"
	"github.com/perpetual-help/egov-api/internal/models"
	"github.com/perpetual-help/egov-api/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AnnouncementService provides direct admin CRUD over announcements
type AnnouncementService struct {
	logger *logging.SafeLogger
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(logger *logging.SafeLogger) *AnnouncementService {
	return &AnnouncementService{logger: logger}
}

func (s *AnnouncementService) collection() *mongo.Collection {
	return config.MongoDB.Collection(config.AppConfig.AnnouncementsCollection)
}

func normalizeAnnouncementImage(a *models.Announcement) {
	a.ImageURL = utils.NormalizeAssetURL(config.AppConfig.BaseAssetURL, a.ImageURL)
}

// Create inserts an announcement; unset is_active defaults to true
func (s *AnnouncementService) Create(ctx context.Context, req models.AnnouncementRequest) (*models.Announcement, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	item := &models.Announcement{
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		Category: req.Category,
		IsActive: active,
		Priority: req.Priority,
		ImageURL: req.ImageURL,
	}
	item.BeforeCreate()

	result, err := s.collection().InsertOne(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}
	item.ID = result.InsertedID.(primitive.ObjectID)

	normalizeAnnouncementImage(item)
	return item, nil
}

// Get retrieves one announcement
func (s *AnnouncementService) Get(ctx context.Context, id string) (*models.Announcement, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidAnnouncementID
	}

	var item models.Announcement
	err = s.collection().FindOne(ctx, bson.M{"_id": objectID}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("failed to get announcement: %w", err)
	}
	normalizeAnnouncementImage(&item)
	return &item, nil
}

// List returns one admin page of announcements
func (s *AnnouncementService) List(ctx context.Context, page, perPage int, search string) (*models.PaginatedData, error) {
	filter := bson.M{}
	if search = strings.TrimSpace(search); search != "" {
		filter["title"] = primitive.Regex{Pattern: regexQuote(search), Options: "i"}
	}
	return s.page(ctx, filter, page, perPage)
}

// ListActive returns the citizen-facing page: active announcements only
func (s *AnnouncementService) ListActive(ctx context.Context, page, perPage int) (*models.PaginatedData, error) {
	return s.page(ctx, bson.M{"is_active": true}, page, perPage)
}

func (s *AnnouncementService) page(ctx context.Context, filter bson.M, page, perPage int) (*models.PaginatedData, error) {
	total, err := s.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count announcements: %w", err)
	}

	findOptions := options.Find().
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage)).
		SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "created_at", Value: -1}})

	cursor, err := s.collection().Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.Announcement{}
	for cursor.Next(ctx) {
		var item models.Announcement
		if err := cursor.Decode(&item); err != nil {
			continue
		}
		normalizeAnnouncementImage(&item)
		items = append(items, item)
	}

	data := models.NewPaginatedData(items, len(items), total, page, perPage)
	return &data, nil
}

// Update replaces the editable fields of an announcement
func (s *AnnouncementService) Update(ctx context.Context, id string, req models.AnnouncementRequest) (*models.Announcement, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Title = strings.TrimSpace(req.Title)
	item.Content = req.Content
	item.Category = req.Category
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	item.Priority = req.Priority
	if req.ImageURL != "" {
		item.ImageURL = req.ImageURL
	}
	item.BeforeUpdate()

	update := bson.M{
		"title":      item.Title,
		"content":    item.Content,
		"category":   item.Category,
		"is_active":  item.IsActive,
		"priority":   item.Priority,
		"updated_at": item.UpdatedAt,
	}
	if req.ImageURL != "" {
		update["image_url"] = req.ImageURL
	}

	_, err = s.collection().UpdateOne(ctx, bson.M{"_id": item.ID}, bson.M{"$set": update})
	if err != nil {
		return nil, fmt.Errorf("failed to update announcement: %w", err)
	}

	normalizeAnnouncementImage(item)
	return item, nil
}

// Delete removes an announcement outright
func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidAnnouncementID
	}

	result, err := s.collection().DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrAnnouncementNotFound
	}
	return nil
}
