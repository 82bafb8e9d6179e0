package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"home_inventory/internal/logger"
	"home_inventory/internal/service"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services       *service.Service
	log            *logger.Logger
	allowedOrigins []string
}

// NewHandler constructs a new HTTP handler with dependencies. allowedOrigins
// restricts cross-origin callers; empty means allow all.
func NewHandler(services *service.Service, log *logger.Logger, allowedOrigins []string) *Handler {
	return &Handler{services: services, log: log, allowedOrigins: allowedOrigins}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.CustomRecovery(h.recovery))
	router.Use(cors.New(h.corsConfig()))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Item endpoints (protected)
	h.registerItemRoutes(router)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route Not Found"})
	})

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}
}

func (h *Handler) registerItemRoutes(r *gin.Engine) {
	items := r.Group("/items", h.userIdMiddleware)
	{
		items.GET("", h.listItems)
		items.POST("", h.createItem)
		items.PUT("/:id", h.updateItem)
		items.DELETE("/:id", h.deleteItem)
	}
}

func (h *Handler) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	if len(h.allowedOrigins) > 0 {
		cfg.AllowOrigins = h.allowedOrigins
	} else {
		cfg.AllowAllOrigins = true
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cfg
}

// recovery turns an uncaught panic into a generic JSON 500. Details stay in
// the server log only.
func (h *Handler) recovery(c *gin.Context, recovered any) {
	if h.log != nil {
		h.log.Errorw("panic_recovered", "panic", recovered, "path", c.Request.URL.Path)
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
