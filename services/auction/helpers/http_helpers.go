package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/auctionerrors"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message.
// Bid rejections stay distinct so callers can tell "raise the bid" from
// "top up the wallet" from "stop bidding".
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, auctionerrors.ErrForbidden):
		return http.StatusForbidden, "operation not permitted for this role"
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, auctionerrors.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrAuctionNotActive):
		return http.StatusBadRequest, "auction is not active"
	case errors.Is(err, auctionerrors.ErrAuctionEnded):
		return http.StatusBadRequest, "auction has already ended"
	case errors.Is(err, auctionerrors.ErrSelfBid):
		return http.StatusBadRequest, "cannot bid on your own auction"
	case errors.Is(err, auctionerrors.ErrInsufficientFunds):
		return http.StatusBadRequest, "insufficient wallet balance"
	case errors.Is(err, auctionerrors.ErrInsufficientPoints):
		return http.StatusBadRequest, "insufficient points balance"
	case errors.Is(err, auctionerrors.ErrInvalidTransition):
		return http.StatusBadRequest, "invalid auction status transition"
	case errors.Is(err, auctionerrors.ErrAuctionNotEnded):
		return http.StatusBadRequest, "auction end time has not passed"
	case errors.Is(err, auctionerrors.ErrAlreadySettled):
		return http.StatusBadRequest, "auction already settled"
	case errors.Is(err, auctionerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid request details"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
