package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthStatus struct {
	Status      string    `json:"status"`
	LastChecked time.Time `json:"last_checked"`
	Uptime      string    `json:"uptime"`
}

var (
	healthMutex sync.RWMutex
	healthState = "ok"
	healthStart = time.Now()
)

func HealthCheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		healthMutex.RLock()
		status := HealthStatus{
			Status:      healthState,
			LastChecked: time.Now(),
			Uptime:      time.Since(healthStart).String(),
		}
		healthMutex.RUnlock()

		c.JSON(http.StatusOK, status)
	}
}

func UpdateHealthStatus(status string) {
	healthMutex.Lock()
	defer healthMutex.Unlock()
	healthState = status
}
