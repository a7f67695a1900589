package handler

import (
	"net/http"

	"github.com/Epaval/factura-con-api-facdin/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db  *gorm.DB
	rdb *redis.Client
	api *infra.FacdinClient
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client, api *infra.FacdinClient) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb, api: api}
}

// Check reports the local store, the job queue and the remote circuit state.
// The endpoint answers 200 as long as the local store works: the service is
// designed to keep selling with the remote API down.
func (h *HealthHandler) Check(c *gin.Context) {
	status := http.StatusOK
	dbStatus := "ok"
	if sqlDB, err := h.db.DB(); err != nil {
		dbStatus = "error"
		status = http.StatusServiceUnavailable
	} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		dbStatus = "error"
		status = http.StatusServiceUnavailable
	}

	redisStatus := "ok"
	if err := h.rdb.Ping(c.Request.Context()).Err(); err != nil {
		redisStatus = "error"
	}

	var remoto string
	switch h.api.Breaker().State() {
	case infra.CBOpen:
		remoto = "caido"
	case infra.CBHalfOpen:
		remoto = "recuperando"
	default:
		remoto = "ok"
	}

	c.JSON(status, gin.H{
		"db":     dbStatus,
		"redis":  redisStatus,
		"remoto": remoto,
	})
}
