package server

import (
	"net/http"

	"best-offer/internal/auth"
	offer "best-offer/internal/offerService"
	handler "best-offer/services/offers/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(offerService *offer.OfferService, verifier auth.Verifier) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(MetricsMiddleware)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", MetricsHandler())

	offersHandler := handler.NewOffersHandler(offerService)

	offers := router.Group("/offers")
	offers.Use(AuthMiddleware(verifier))
	{
		offers.POST("", offersHandler.CreateOfferHandler)
		offers.GET("", offersHandler.ListOffersHandler)
		offers.GET("/:offer_id", offersHandler.GetOfferHandler)
		offers.POST("/:offer_id/counter", offersHandler.CounterOfferHandler)
		offers.POST("/:offer_id/accept", offersHandler.AcceptOfferHandler)
		offers.POST("/:offer_id/decline", offersHandler.DeclineOfferHandler)
		offers.POST("/:offer_id/withdraw", offersHandler.WithdrawOfferHandler)
	}

	return router
}
