package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scrapehub/listings-api/internal/api/handler"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Hello, World!",
		})
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "listings-api",
		})
	})

	statusHandler := handler.NewStatusHandler(deps.Logger, deps.Store, deps.Hub)
	authHandler := handler.NewAuthHandler(deps.Logger, deps.Store, deps.Auth)
	userHandler := handler.NewUserHandler(deps.Logger, deps.Store)
	listingsHandler := handler.NewListingsHandler(deps.Logger, deps.Store, deps.Auth.AdminUsername)

	// Push channel: one producer, any number of long-lived consumers
	r.GET("/status-updates", statusHandler.StreamUpdates)
	r.POST("/webhook", statusHandler.Webhook)

	// Sign-in stays outside the token guard
	r.POST("/api/signin", authHandler.SignIn)

	api := r.Group("/api")
	if deps.Auth.RequireToken {
		api.Use(AuthMiddleware(deps.Logger, deps.Auth.SigningSecret))
	}
	{
		api.GET("/data/:tableName", listingsHandler.GetTableData)
		api.PUT("/status/:scriptName", statusHandler.MarkRunning)
		api.POST("/delete-listings", listingsHandler.DeleteListings)

		api.POST("/create-user", userHandler.CreateUser)
		api.PUT("/edit-user/:id", userHandler.EditUser)
		api.DELETE("/delete-user/:id", userHandler.DeleteUser)
	}

	return r
}
