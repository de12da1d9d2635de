package router

import (
	"github.com/gin-gonic/gin"

	"github.com/localconnect/localconnect-backend/config"
	"github.com/localconnect/localconnect-backend/internal/app/controller"
	"github.com/localconnect/localconnect-backend/internal/middleware"
	"github.com/localconnect/localconnect-backend/internal/ws"
)

type Router struct {
	businessController *controller.BusinessController
	reviewController   *controller.ReviewController
	favoriteController *controller.FavoriteController
	listingController  *controller.ListingController
	uploadController   *controller.UploadController
	wsHandler          *ws.Handler
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	businessController *controller.BusinessController,
	reviewController *controller.ReviewController,
	favoriteController *controller.FavoriteController,
	listingController *controller.ListingController,
	uploadController *controller.UploadController,
	wsHandler *ws.Handler,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		businessController: businessController,
		reviewController:   reviewController,
		favoriteController: favoriteController,
		listingController:  listingController,
		uploadController:   uploadController,
		wsHandler:          wsHandler,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))
	router.Use(middleware.SessionMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "LocalConnect API is running",
		})
	})

	router.GET("/ws/location", r.wsHandler.Serve)

	v1 := router.Group("/api/v1")
	{
		businesses := v1.Group("/businesses")
		{
			businesses.GET("", r.businessController.List)
			businesses.GET("/nearby", r.businessController.Nearby)
			businesses.GET("/:id", r.businessController.Get)
			businesses.GET("/:id/reviews", r.reviewController.ForBusiness)
		}

		reviews := v1.Group("/reviews")
		{
			reviews.GET("/mine", r.authMiddleware.OptionalAuthenticate(), r.reviewController.Mine)
			reviews.POST("", r.authMiddleware.OptionalAuthenticate(), r.reviewController.Create)
			reviews.DELETE("/:id", r.authMiddleware.OptionalAuthenticate(), r.reviewController.Delete)
		}

		favorites := v1.Group("/favorites")
		{
			favorites.GET("", r.favoriteController.List)
			favorites.POST("/:id/toggle", r.favoriteController.Toggle)
		}

		listings := v1.Group("/listings")
		{
			listings.GET("", r.listingController.List)
			listings.GET("/mine", r.authMiddleware.Authenticate(), r.listingController.Mine)
			listings.GET("/reviews/export", r.authMiddleware.Authenticate(), r.listingController.ExportReviews)
			listings.POST("", r.authMiddleware.Authenticate(), r.listingController.Create)
			listings.DELETE("/:id", r.authMiddleware.Authenticate(), r.listingController.Delete)
		}

		uploads := v1.Group("/uploads")
		{
			uploads.POST("/listing-image", r.authMiddleware.Authenticate(), r.uploadController.PresignListingImage)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Session-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Session-ID, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
