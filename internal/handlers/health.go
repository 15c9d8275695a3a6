package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/perpetual-help/egov-api/internal/config"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthCheck godoc
// @Summary Health check
// @Description Reports service health including MongoDB and Redis connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service healthy"
// @Failure 503 {object} map[string]interface{} "A dependency is unreachable"
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()
	status := http.StatusOK
	checks := gin.H{}

	mongoStatus := "ok"
	if err := config.MongoDB.Client().Ping(ctx, readpref.Primary()); err != nil {
		mongoStatus = "unreachable"
		status = http.StatusServiceUnavailable
	}
	checks["mongodb"] = mongoStatus

	redisStatus := "ok"
	if err := config.Redis.Ping(ctx).Err(); err != nil {
		redisStatus = "unreachable"
		status = http.StatusServiceUnavailable
	}
	checks["redis"] = redisStatus

	c.JSON(status, gin.H{
		"status":    statusWord(status),
		"checks":    checks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func statusWord(status int) string {
	if status == http.StatusOK {
		return "healthy"
	}
	return "degraded"
}
