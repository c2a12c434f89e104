package handler

import (
	"net/http"

	"currency_agent_back/pkg/middleware"
	"currency_agent_back/pkg/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	service     *service.Service
	corsOrigins []string
}

func NewHandler(service *service.Service, corsOrigins []string) *Handler {
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	return &Handler{
		service:     service,
		corsOrigins: corsOrigins,
	}
}

func (h *Handler) InitRoute() *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())
	router.Use(cors.New(h.corsConfig()))

	router.POST("/convert", h.Convert)
	router.GET("/conversions", h.GetConversions)
	router.GET("/health", h.Health)

	return router
}

func (h *Handler) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
	}
	for _, origin := range h.corsOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = h.corsOrigins
	return cfg
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
