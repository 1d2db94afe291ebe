package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/health/ready", s.readinessCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/config", s.handleGetConfig)
		v1.GET("/params", s.handleGetParams)
		v1.GET("/pool", s.handleGetPool)
		v1.GET("/shares/:address", s.handleGetShares)
		v1.GET("/allowance/:address", s.handleGetAllowance)
		v1.GET("/simulate-swap", s.handleSimulateSwap)
	}
}
