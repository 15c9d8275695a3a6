package services

import (
	"os"
	"sync"
	"testing"

	"github.com/perpetual-help/egov-api/internal/config"
	"go.uber.org/zap"
)

var (
	testSetupOnce sync.Once
	testInitError error
)

// setupTestEnvironment initializes the test environment once for the entire package
func setupTestEnvironment() {
	testSetupOnce.Do(func() {
		if os.Getenv("MONGODB_URI") == "" {
			os.Setenv("MONGODB_URI", "mongodb://localhost:27017")
		}
		if os.Getenv("REDIS_URI") == "" {
			os.Setenv("REDIS_URI", "localhost:6379")
		}

		collections := map[string]string{
			"MONGODB_DATABASE":                 "egov_test",
			"MONGODB_APPLICATIONS_COLLECTION":  "applications",
			"MONGODB_USERS_COLLECTION":         "users",
			"MONGODB_NEWS_COLLECTION":          "news",
			"MONGODB_ANNOUNCEMENTS_COLLECTION": "announcements",
			"MONGODB_ALERTS_COLLECTION":        "alerts",
			"MONGODB_STATUS_AUDITS_COLLECTION": "status_audits",
		}
		for key, defaultValue := range collections {
			if os.Getenv(key) == "" {
				os.Setenv(key, defaultValue)
			}
		}

		if os.Getenv("PORT") == "" {
			os.Setenv("PORT", "8080")
		}

		if err := config.LoadConfig(); err != nil {
			testInitError = err
			return
		}
		config.InitMongoDB()
		config.InitRedis()

		zap.L().Info("Test environment initialized for services package")
	})
}

// TestMain is the entry point for all tests in the services package
func TestMain(m *testing.M) {
	setupTestEnvironment()

	if testInitError != nil {
		panic(testInitError)
	}

	exitCode := m.Run()

	os.Exit(exitCode)
}
