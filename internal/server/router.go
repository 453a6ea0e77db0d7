package server

import (
	handler "github.com/aseell-s/E-auctionCompletedVersion-sub000/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the marketplace
func SetupRouter(service handler.AuctionServiceInterface) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(service)

	auctions := router.Group("/auctions")
	{
		auctions.POST("", auctionHandler.CreateAuctionHandler)
		auctions.GET("", auctionHandler.ListAuctionsHandler)
		auctions.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctions.GET("/:auction_id/bids", auctionHandler.GetBidsHandler)
		auctions.POST("/:auction_id/bids", auctionHandler.PlaceBidHandler)
		auctions.POST("/:auction_id/end", auctionHandler.EndAuctionHandler)
	}

	users := router.Group("/users")
	{
		users.GET("/:user_id", auctionHandler.GetUserHandler)
	}

	admin := router.Group("/admin")
	{
		admin.POST("/process-ended-auctions", auctionHandler.ProcessEndedAuctionsHandler)
		admin.PATCH("/approvals", auctionHandler.ApprovalHandler)
		admin.POST("/users/:user_id/funds", auctionHandler.AddFundsHandler)
		admin.POST("/sellers/:seller_id/redeem", auctionHandler.RedeemPointsHandler)
	}

	return router
}
