package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"fintrack/internal/apperr"
	"fintrack/internal/logger"
	"fintrack/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Live dashboard stream (HTTP upgrade, token via query param)
	router.GET("/ws", h.wsDashboard)

	api := router.Group("/api")
	{
		api.POST("/signup", h.signUp)
		api.POST("/login", h.logIn)

		authed := api.Group("", h.authMiddleware)
		{
			authed.GET("/me", h.me)

			authed.GET("/transactions", h.listTransactions)
			authed.POST("/transactions", h.createTransaction)
			authed.GET("/transactions/export", h.exportTransactions)
			authed.DELETE("/transactions/:id", h.deleteTransaction)

			authed.GET("/dashboard", h.getDashboard)

			authed.GET("/budgets", h.listBudgets)
			authed.POST("/budgets", h.createBudget)
			authed.PUT("/budgets/:id", h.updateBudget)
			authed.DELETE("/budgets/:id", h.deleteBudget)

			authed.GET("/goals", h.listGoals)
			authed.POST("/goals", h.createGoal)
			authed.PUT("/goals/:id", h.updateGoal)
			authed.DELETE("/goals/:id", h.deleteGoal)
		}
	}

	return router
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps service errors onto the HTTP taxonomy. Typed errors
// carry their own status and user-facing message; everything else is a 500
// with a generic body and a logged cause.
func (h *Handler) respondError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	if ae, ok := apperr.From(err); ok {
		if h.log != nil {
			fields := append([]interface{}{"err", err}, kv...)
			h.log.Infow(logKey, fields...)
		}
		c.JSON(ae.HTTPStatus(), gin.H{"error": ae.Message})
		return
	}
	if h.log != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// bindJSONOrBadRequest binds the request body into dst, writing a 400 JSON
// on failure. Returns false if the request was already handled.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body is required"})
		return false
	}
	return true
}

// pathID parses the :id path parameter, writing a 404 for non-numeric IDs
// (they cannot name any resource).
func (h *Handler) pathID(c *gin.Context, notFoundMsg string) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return 0, false
	}
	return id, true
}

var errNoIdentity = errors.New("no authenticated identity in context")

// callerID returns the authenticated user's ID stored by authMiddleware.
func callerID(c *gin.Context) (int, error) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, errNoIdentity
	}
	id, ok := v.(int)
	if !ok {
		return 0, errNoIdentity
	}
	return id, nil
}
