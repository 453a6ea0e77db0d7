package handler

import (
	"context"
	"fmt"
	"net/http"

	auction "github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/auctionService"
	model "github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/models"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/services/auction/helpers"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ActorHeader carries the authenticated user's id, set by the fronting auth
// layer. Session issuance itself is outside this service.
const ActorHeader = "X-User-ID"

type AuctionServiceInterface interface {
	CreateAuction(ctx context.Context, actorID string, in auction.CreateAuctionInput) (model.Auction, error)
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)
	ListAuctions(ctx context.Context, status *model.AuctionStatus) ([]model.Auction, error)
	GetBidsForAuction(ctx context.Context, auctionID string) ([]model.Bid, error)
	GetUser(ctx context.Context, userID string) (model.User, error)
	PlaceBid(ctx context.Context, actorID, auctionID string, amount decimal.Decimal) (model.Bid, error)
	EndAuction(ctx context.Context, actorID, auctionID string) (auction.SweepDetail, error)
	ProcessEndedAuctions(ctx context.Context, actorID string) (auction.SweepResult, error)
	SetSellerApproval(ctx context.Context, actorID, sellerID string, approved bool) (model.User, error)
	SetAuctionApproval(ctx context.Context, actorID, auctionID string, approved bool) (model.Auction, error)
	AddFunds(ctx context.Context, actorID, userID string, amount decimal.Decimal) (model.User, error)
	RedeemPoints(ctx context.Context, actorID, sellerID string, pts int64) (model.User, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

func actorID(c *gin.Context) string {
	return c.GetHeader(ActorHeader)
}

func (h *AuctionHandler) fail(c *gin.Context, handlerName string, err error) {
	status, message := helpers.MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
	utils.Warn(handlerName+": request failed", map[string]any{
		"handler": handlerName,
		"status":  status,
		"error":   err.Error(),
	})
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	created, err := h.service.CreateAuction(c.Request.Context(), actorID(c), auction.CreateAuctionInput{
		Title:       req.Title,
		Description: req.Description,
		Images:      req.Images,
		ItemType:    req.ItemType,
		StartPrice:  req.StartPrice,
		EndTime:     req.EndTime,
	})
	if err != nil {
		h.fail(c, "CreateAuctionHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, created, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": created.AuctionID,
		"seller_id":  created.SellerID,
	})
}

// ListAuctionsHandler handles GET /auctions
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	var status *model.AuctionStatus
	if raw := c.Query("status"); raw != "" {
		s := model.AuctionStatus(raw)
		status = &s
	}

	auctions, err := h.service.ListAuctions(c.Request.Context(), status)
	if err != nil {
		h.fail(c, "ListAuctionsHandler", err)
		return
	}
	if auctions == nil {
		auctions = []model.Auction{}
	}

	utils.JSONResponse(c, http.StatusOK, auctions, "auctions retrieved successfully")
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	a, err := h.service.GetAuction(c.Request.Context(), c.Param("auction_id"))
	if err != nil {
		h.fail(c, "GetAuctionHandler", err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, a, "auction retrieved successfully")
}

// GetBidsHandler handles GET /auctions/:auction_id/bids
func (h *AuctionHandler) GetBidsHandler(c *gin.Context) {
	bids, err := h.service.GetBidsForAuction(c.Request.Context(), c.Param("auction_id"))
	if err != nil {
		h.fail(c, "GetBidsHandler", err)
		return
	}
	if bids == nil {
		bids = []model.Bid{}
	}
	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
}

// GetUserHandler handles GET /users/:user_id
func (h *AuctionHandler) GetUserHandler(c *gin.Context) {
	u, err := h.service.GetUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		h.fail(c, "GetUserHandler", err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, u, "user retrieved successfully")
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(c.Request.Context(), actorID(c), c.Param("auction_id"), req.Amount)
	if err != nil {
		h.fail(c, "PlaceBidHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewBidResponse(bid), "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":     bid.BidID,
		"auction_id": bid.AuctionID,
		"bidder_id":  bid.BidderID,
		"amount":     bid.Amount.String(),
	})
}

// EndAuctionHandler handles POST /auctions/:auction_id/end
func (h *AuctionHandler) EndAuctionHandler(c *gin.Context) {
	detail, err := h.service.EndAuction(c.Request.Context(), actorID(c), c.Param("auction_id"))
	if err != nil {
		h.fail(c, "EndAuctionHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, detail, "auction ended successfully")
	helpers.LogSuccess("EndAuctionHandler", "auction ended successfully", map[string]any{
		"auction_id":     detail.AuctionID,
		"bid_count":      detail.BidCount,
		"points_awarded": detail.PointsAwarded,
	})
}

// ProcessEndedAuctionsHandler handles POST /admin/process-ended-auctions
func (h *AuctionHandler) ProcessEndedAuctionsHandler(c *gin.Context) {
	result, err := h.service.ProcessEndedAuctions(c.Request.Context(), actorID(c))
	if err != nil {
		h.fail(c, "ProcessEndedAuctionsHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, result, "ended auctions processed")
	helpers.LogSuccess("ProcessEndedAuctionsHandler", "ended auctions processed", map[string]any{
		"processed":      result.Processed,
		"points_awarded": result.PointsAwarded,
	})
}

// ApprovalHandler handles PATCH /admin/approvals
func (h *AuctionHandler) ApprovalHandler(c *gin.Context) {
	var req helpers.ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "ApprovalHandler", err)
		return
	}

	var (
		data any
		err  error
	)
	switch req.Type {
	case "seller":
		data, err = h.service.SetSellerApproval(c.Request.Context(), actorID(c), req.ID, *req.Approved)
	case "auction":
		data, err = h.service.SetAuctionApproval(c.Request.Context(), actorID(c), req.ID, *req.Approved)
	}
	if err != nil {
		h.fail(c, "ApprovalHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, data, "approval updated successfully")
	helpers.LogSuccess("ApprovalHandler", "approval updated successfully", map[string]any{
		"type":     req.Type,
		"id":       req.ID,
		"approved": *req.Approved,
	})
}

// AddFundsHandler handles POST /admin/users/:user_id/funds
func (h *AuctionHandler) AddFundsHandler(c *gin.Context) {
	var req helpers.AddFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AddFundsHandler", err)
		return
	}

	u, err := h.service.AddFunds(c.Request.Context(), actorID(c), c.Param("user_id"), req.Amount)
	if err != nil {
		h.fail(c, "AddFundsHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, u, "wallet funded successfully")
	helpers.LogSuccess("AddFundsHandler", "wallet funded successfully", map[string]any{
		"user_id": u.UserID,
		"amount":  req.Amount.String(),
	})
}

// RedeemPointsHandler handles POST /admin/sellers/:seller_id/redeem
func (h *AuctionHandler) RedeemPointsHandler(c *gin.Context) {
	var req helpers.RedeemPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RedeemPointsHandler", err)
		return
	}

	u, err := h.service.RedeemPoints(c.Request.Context(), actorID(c), c.Param("seller_id"), req.Points)
	if err != nil {
		h.fail(c, "RedeemPointsHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, u, "points redeemed successfully")
	helpers.LogSuccess("RedeemPointsHandler", "points redeemed successfully", map[string]any{
		"seller_id": u.UserID,
		"points":    req.Points,
	})
}
