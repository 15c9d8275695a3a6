package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// MongoDB configuration
	MongoURI      string `json:"mongo_uri"`
	MongoDatabase string `json:"mongo_database"`

	// Redis configuration
	RedisURI      string        `json:"redis_uri"`
	RedisPassword string        `json:"redis_password"`
	RedisDB       int           `json:"redis_db"`
	RedisTTL      time.Duration `json:"redis_ttl"`

	// Collection names
	ApplicationsCollection  string `json:"mongo_applications_collection"`
	UsersCollection         string `json:"mongo_users_collection"`
	NewsCollection          string `json:"mongo_news_collection"`
	AnnouncementsCollection string `json:"mongo_announcements_collection"`
	AlertsCollection        string `json:"mongo_alerts_collection"`
	StatusAuditsCollection  string `json:"mongo_status_audits_collection"`

	// Authorization
	AdminGroup string `json:"admin_group"`

	// Wizard sessions
	WizardSessionTTL time.Duration `json:"wizard_session_ttl"`

	// Uploads and assets
	UploadDir      string `json:"upload_dir"`
	MaxUploadBytes int64  `json:"max_upload_bytes"`
	BaseAssetURL   string `json:"base_asset_url"`

	// Disaster feeds
	USGSFeedURL       string        `json:"usgs_feed_url"`
	USGSMinMagnitude  float64       `json:"usgs_min_magnitude"`
	USGSMinLatitude   float64       `json:"usgs_min_latitude"`
	USGSMaxLatitude   float64       `json:"usgs_max_latitude"`
	USGSMinLongitude  float64       `json:"usgs_min_longitude"`
	USGSMaxLongitude  float64       `json:"usgs_max_longitude"`
	USGSWindow        time.Duration `json:"usgs_window"`
	TyphoonFeedURL    string        `json:"typhoon_feed_url"`
	AlertPollInterval time.Duration `json:"alert_poll_interval"`
	AlertCacheTTL     time.Duration `json:"alert_cache_ttl"`

	// Tracing
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	redisTTL, err := time.ParseDuration(getEnvOrDefault("REDIS_TTL", "60m"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_TTL: %w", err)
	}

	wizardTTL, err := time.ParseDuration(getEnvOrDefault("WIZARD_SESSION_TTL", "2h"))
	if err != nil {
		return fmt.Errorf("invalid WIZARD_SESSION_TTL: %w", err)
	}

	maxUpload, err := strconv.ParseInt(getEnvOrDefault("MAX_UPLOAD_BYTES", "10485760"), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid MAX_UPLOAD_BYTES: %w", err)
	}

	minMagnitude, err := strconv.ParseFloat(getEnvOrDefault("USGS_MIN_MAGNITUDE", "4.0"), 64)
	if err != nil {
		return fmt.Errorf("invalid USGS_MIN_MAGNITUDE: %w", err)
	}

	// Bounding box defaults cover the Philippine archipelago
	minLat, err := strconv.ParseFloat(getEnvOrDefault("USGS_MIN_LATITUDE", "4.5"), 64)
	if err != nil {
		return fmt.Errorf("invalid USGS_MIN_LATITUDE: %w", err)
	}
	maxLat, err := strconv.ParseFloat(getEnvOrDefault("USGS_MAX_LATITUDE", "21.5"), 64)
	if err != nil {
		return fmt.Errorf("invalid USGS_MAX_LATITUDE: %w", err)
	}
	minLon, err := strconv.ParseFloat(getEnvOrDefault("USGS_MIN_LONGITUDE", "116.0"), 64)
	if err != nil {
		return fmt.Errorf("invalid USGS_MIN_LONGITUDE: %w", err)
	}
	maxLon, err := strconv.ParseFloat(getEnvOrDefault("USGS_MAX_LONGITUDE", "127.5"), 64)
	if err != nil {
		return fmt.Errorf("invalid USGS_MAX_LONGITUDE: %w", err)
	}

	usgsWindow, err := time.ParseDuration(getEnvOrDefault("USGS_WINDOW", "168h"))
	if err != nil {
		return fmt.Errorf("invalid USGS_WINDOW: %w", err)
	}

	pollInterval, err := time.ParseDuration(getEnvOrDefault("ALERT_POLL_INTERVAL", "30s"))
	if err != nil {
		return fmt.Errorf("invalid ALERT_POLL_INTERVAL: %w", err)
	}

	alertCacheTTL, err := time.ParseDuration(getEnvOrDefault("ALERT_CACHE_TTL", "5m"))
	if err != nil {
		return fmt.Errorf("invalid ALERT_CACHE_TTL: %w", err)
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		// MongoDB configuration
		MongoURI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "egov"),

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		RedisTTL:      redisTTL,

		// Collection names
		ApplicationsCollection:  getEnvOrDefault("MONGODB_APPLICATIONS_COLLECTION", "applications"),
		UsersCollection:         getEnvOrDefault("MONGODB_USERS_COLLECTION", "users"),
		NewsCollection:          getEnvOrDefault("MONGODB_NEWS_COLLECTION", "news"),
		AnnouncementsCollection: getEnvOrDefault("MONGODB_ANNOUNCEMENTS_COLLECTION", "announcements"),
		AlertsCollection:        getEnvOrDefault("MONGODB_ALERTS_COLLECTION", "alerts"),
		StatusAuditsCollection:  getEnvOrDefault("MONGODB_STATUS_AUDITS_COLLECTION", "status_audits"),

		// Authorization
		AdminGroup: getEnvOrDefault("ADMIN_GROUP", "egov-admin"),

		// Wizard sessions
		WizardSessionTTL: wizardTTL,

		// Uploads and assets
		UploadDir:      getEnvOrDefault("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes: maxUpload,
		BaseAssetURL:   getEnvOrDefault("BASE_ASSET_URL", "http://localhost:8080"),

		// Disaster feeds
		USGSFeedURL:       getEnvOrDefault("USGS_FEED_URL", "https://earthquake.usgs.gov/fdsnws/event/1/query"),
		USGSMinMagnitude:  minMagnitude,
		USGSMinLatitude:   minLat,
		USGSMaxLatitude:   maxLat,
		USGSMinLongitude:  minLon,
		USGSMaxLongitude:  maxLon,
		USGSWindow:        usgsWindow,
		TyphoonFeedURL:    getEnvOrDefault("TYPHOON_FEED_URL", ""),
		AlertPollInterval: pollInterval,
		AlertCacheTTL:     alertCacheTTL,

		// Tracing
		TracingEnabled:  getEnvOrDefault("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
