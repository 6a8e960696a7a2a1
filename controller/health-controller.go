package controller

import (
	"github.com/gin-gonic/gin"
)

type HealthController struct{}

func setupHealthController() []RouteInfo {
	e := &HealthController{}
	return []RouteInfo{
		{Method: "GET", Path: "/health", HandlerFunc: e.healthHandler()},
	}
}

// @id GetHealth
// @Description Reports service liveness
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (e *HealthController) healthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	}
}
