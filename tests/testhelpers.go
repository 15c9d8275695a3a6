package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/perpetual-help/egov-api/internal/config"
	"github.com/perpetual-help/egov-api/internal/redisclient"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestContainers holds references to test containers
type TestContainers struct {
	MongoContainer *mongodb.MongoDBContainer
	RedisContainer *redis.RedisContainer
	MongoDB        *mongo.Database
	Cleanup        func()
}

// SetupTestContainers starts MongoDB and Redis containers for testing
func SetupTestContainers(t *testing.T) *TestContainers {
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx,
		"mongo:7.0",
		mongodb.WithUsername("root"),
		mongodb.WithPassword("password"),
	)
	require.NoError(t, err, "Failed to start MongoDB container")

	redisContainer, err := redis.Run(ctx,
		"redis:7-alpine",
	)
	require.NoError(t, err, "Failed to start Redis container")

	mongoURI, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get MongoDB connection string")

	redisEndpoint, err := redisContainer.Endpoint(ctx, "")
	require.NoError(t, err, "Failed to get Redis endpoint")

	clientOptions := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(ctx, clientOptions)
	require.NoError(t, err, "Failed to connect to MongoDB")

	err = mongoClient.Ping(ctx, nil)
	require.NoError(t, err, "Failed to ping MongoDB")

	database := mongoClient.Database("egov_test")

	if config.AppConfig == nil {
		config.AppConfig = &config.Config{}
	}

	config.AppConfig.MongoURI = mongoURI
	config.AppConfig.MongoDatabase = "egov_test"
	config.AppConfig.RedisURI = redisEndpoint
	config.AppConfig.ApplicationsCollection = "applications"
	config.AppConfig.UsersCollection = "users"
	config.AppConfig.NewsCollection = "news"
	config.AppConfig.AnnouncementsCollection = "announcements"
	config.AppConfig.AlertsCollection = "alerts"
	config.AppConfig.StatusAuditsCollection = "status_audits"
	config.AppConfig.AdminGroup = "egov-admin"
	config.AppConfig.WizardSessionTTL = 2 * time.Hour
	config.AppConfig.UploadDir = t.TempDir()
	config.AppConfig.MaxUploadBytes = 10 << 20
	config.AppConfig.BaseAssetURL = "http://localhost:8080"
	config.AppConfig.USGSWindow = 168 * time.Hour
	config.AppConfig.AlertPollInterval = 30 * time.Second
	config.AppConfig.AlertCacheTTL = 5 * time.Minute
	config.AppConfig.RedisTTL = 60 * time.Minute
	config.AppConfig.RedisDB = 0
	config.AppConfig.RedisPassword = ""

	config.MongoDB = database
	config.Redis = redisclient.NewClient(goredis.NewClient(&goredis.Options{
		Addr: redisEndpoint,
	}))

	cleanup := func() {
		if mongoClient != nil {
			ctx := context.Background()
			mongoClient.Disconnect(ctx)
		}

		if mongoContainer != nil {
			mongoContainer.Terminate(ctx)
		}
		if redisContainer != nil {
			redisContainer.Terminate(ctx)
		}
	}

	return &TestContainers{
		MongoContainer: mongoContainer,
		RedisContainer: redisContainer,
		MongoDB:        database,
		Cleanup:        cleanup,
	}
}

// CleanupDatabase drops all collections in the test database
func CleanupDatabase(t *testing.T, db *mongo.Database) {
	ctx := context.Background()
	collections, err := db.ListCollectionNames(ctx, map[string]interface{}{})
	require.NoError(t, err, "Failed to list collections")

	for _, collection := range collections {
		err := db.Collection(collection).Drop(ctx)
		require.NoError(t, err, fmt.Sprintf("Failed to drop collection %s", collection))
	}
}
