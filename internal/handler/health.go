package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// HealthHandler reports process and dependency health.
type HealthHandler struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb}
}

// Check pings Postgres and Redis. Any dependency down turns the
// response into a 503 so load balancers stop routing here.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()
	status := http.StatusOK
	deps := gin.H{}

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		deps["database"] = "down"
		status = http.StatusServiceUnavailable
	} else {
		deps["database"] = "up"
	}

	if err := h.rdb.Ping(ctx).Err(); err != nil {
		deps["redis"] = "down"
		status = http.StatusServiceUnavailable
	} else {
		deps["redis"] = "up"
	}

	c.JSON(status, gin.H{
		"status": map[bool]string{true: "ok", false: "degraded"}[status == http.StatusOK],
		"time":   time.Now().UTC().Format(time.RFC3339),
		"deps":   deps,
	})
}
