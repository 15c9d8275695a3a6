package handlers

import (
	"bytes"
	"context"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/perpetual-help/egov-api/internal/config"
	"github.com/perpetual-help/egov-api/internal/logging"
	"github.com/perpetual-help/egov-api/internal/models"
	"github.com/perpetual-help/egov-api/internal/services"
	"github.com/perpetual-help/egov-api/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
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
		if os.Getenv("MONGODB_DATABASE") == "" {
			os.Setenv("MONGODB_DATABASE", "egov_test")
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
	})
}

// TestMain is the entry point for all tests in the handlers package
func TestMain(m *testing.M) {
	setupTestEnvironment()

	if testInitError != nil {
		panic(testInitError)
	}

	os.Exit(m.Run())
}

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestWizardSubmit_DiscardsUploadsWhenCreateFails(t *testing.T) {
	logging.InitLogger()

	config.AppConfig.ApplicationsCollection = "test_applications"
	config.AppConfig.StatusAuditsCollection = "test_status_audits"
	config.AppConfig.UploadDir = t.TempDir()
	config.AppConfig.MaxUploadBytes = 1 << 20

	ctx := context.Background()
	store := wizard.NewStore(config.Redis, time.Hour, logging.Logger)
	audit := services.NewAuditService(logging.Logger)
	applications := services.NewApplicationService(logging.Logger, audit)
	uploads := services.NewUploadService(logging.Logger)
	handler := NewWizardHandler(store, applications, uploads, logging.Logger)

	session, err := store.Start(ctx, models.TypeCedula)
	require.NoError(t, err)
	defer store.Delete(ctx, session.ID)

	schema, err := wizard.SchemaFor(session.Type)
	require.NoError(t, err)
	session.CurrentStep = schema.StepCount()
	session.FormData = map[string]interface{}{
		"fullName":          "Juan Dela Cruz",
		"birthDate":         "1990-05-15",
		"civilStatus":       "married",
		"height":            float64(170),
		"weight":            float64(65),
		"occupation":        "Clerk",
		"grossAnnualIncome": float64(180000),
	}
	require.NoError(t, store.Save(ctx, session))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("photo", "photo.png")
	require.NoError(t, err)
	part.Write(pngSignature)
	require.NoError(t, writer.Close())

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost,
		"/v1/wizard/sessions/"+session.ID+"/submit", &body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	c.Params = gin.Params{{Key: "id", Value: session.ID}}

	// Point Mongo at a dead endpoint so the application insert fails
	deadClient, err := mongo.Connect(ctx, options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(200*time.Millisecond))
	require.NoError(t, err)
	liveDatabase := config.MongoDB
	config.MongoDB = deadClient.Database("egov_test")
	defer func() {
		config.MongoDB = liveDatabase
		deadClient.Disconnect(ctx)
	}()

	handler.Submit(c)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Empty(t, storedUploadPaths(t, config.AppConfig.UploadDir),
		"failed submit must not leave stored files behind")
}

// storedUploadPaths lists regular files under the upload directory
func storedUploadPaths(t *testing.T, dir string) []string {
	t.Helper()

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			paths = append(paths, path)
		}
		return nil
	})
	require.NoError(t, err)
	return paths
}
