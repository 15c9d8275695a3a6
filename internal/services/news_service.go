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
	"go.uber.org/zap"
)

// NewsService provides direct admin CRUD over news items; no approval
// workflow applies.
type NewsService struct {
	logger *logging.SafeLogger
}

// NewNewsService creates a new news service
func NewNewsService(logger *logging.SafeLogger) *NewsService {
	return &NewsService{logger: logger}
}

func (s *NewsService) collection() *mongo.Collection {
	return config.MongoDB.Collection(config.AppConfig.NewsCollection)
}

// normalizeNews resolves the stored image reference against the asset base
func normalizeNewsImage(n *models.News) {
	n.ImageURL = utils.NormalizeAssetURL(config.AppConfig.BaseAssetURL, n.ImageURL)
}

// Create inserts a news item
func (s *NewsService) Create(ctx context.Context, req models.NewsRequest) (*models.News, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item := &models.News{
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		Category: req.Category,
		Status:   req.Status,
		Priority: req.Priority,
		ImageURL: req.ImageURL,
	}
	item.BeforeCreate()

	result, err := s.collection().InsertOne(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to create news item: %w", err)
	}
	item.ID = result.InsertedID.(primitive.ObjectID)

	s.logger.Info("news item created", zap.String("id", item.ID.Hex()), zap.String("title", item.Title))
	normalizeNewsImage(item)
	return item, nil
}

// Get retrieves one news item
func (s *NewsService) Get(ctx context.Context, id string) (*models.News, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidNewsID
	}

	var item models.News
	err = s.collection().FindOne(ctx, bson.M{"_id": objectID}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNewsNotFound
		}
		return nil, fmt.Errorf("failed to get news item: %w", err)
	}
	normalizeNewsImage(&item)
	return &item, nil
}

// List returns one admin page of news items, optionally filtered by status,
// sorted by priority then recency.
func (s *NewsService) List(ctx context.Context, page, perPage int, status models.NewsStatus, search string) (*models.PaginatedData, error) {
	if status != "" && !models.IsValidNewsStatus(status) {
		return nil, models.ErrInvalidNewsStatus
	}

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if search = strings.TrimSpace(search); search != "" {
		filter["title"] = primitive.Regex{Pattern: regexQuote(search), Options: "i"}
	}

	return s.page(ctx, filter, page, perPage)
}

// ListPublished returns the citizen-facing page: published items only
func (s *NewsService) ListPublished(ctx context.Context, page, perPage int) (*models.PaginatedData, error) {
	return s.page(ctx, bson.M{"status": models.NewsPublished}, page, perPage)
}

func (s *NewsService) page(ctx context.Context, filter bson.M, page, perPage int) (*models.PaginatedData, error) {
	total, err := s.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count news items: %w", err)
	}

	findOptions := options.Find().
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage)).
		SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "created_at", Value: -1}})

	cursor, err := s.collection().Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list news items: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.News{}
	for cursor.Next(ctx) {
		var item models.News
		if err := cursor.Decode(&item); err != nil {
			continue
		}
		normalizeNewsImage(&item)
		items = append(items, item)
	}

	data := models.NewPaginatedData(items, len(items), total, page, perPage)
	return &data, nil
}

// Update replaces the editable fields of a news item
func (s *NewsService) Update(ctx context.Context, id string, req models.NewsRequest) (*models.News, error) {
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
	if req.Status != "" {
		item.Status = req.Status
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
		"status":     item.Status,
		"priority":   item.Priority,
		"image_url":  req.ImageURL,
		"updated_at": item.UpdatedAt,
	}
	if req.ImageURL == "" {
		delete(update, "image_url")
	}

	_, err = s.collection().UpdateOne(ctx, bson.M{"_id": item.ID}, bson.M{"$set": update})
	if err != nil {
		return nil, fmt.Errorf("failed to update news item: %w", err)
	}

	normalizeNewsImage(item)
	return item, nil
}

// Delete removes a news item outright
func (s *NewsService) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidNewsID
	}

	result, err := s.collection().DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete news item: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrNewsNotFound
	}
	return nil
}
