package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"rapid-pay-api/internal/constant"
	"rapid-pay-api/internal/utils"
)

// HealthHandler pings the database and Redis. Either may be nil.
type HealthHandler struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"db": "skipped", "redis": "skipped"}
	healthy := true
	if h.db != nil {
		status["db"] = "ok"
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			status["db"] = err.Error()
			healthy = false
		}
	}
	if h.rdb != nil {
		status["redis"] = "ok"
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			status["redis"] = err.Error()
			healthy = false
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, utils.ErrorWithData(constant.CodeServiceUnavailable, status))
		return
	}
	ok(c, status)
}
