package auctionerrors

import "errors"

// Actor / permission errors
var (
	ErrUnauthenticated = errors.New("actor is not authenticated")
	ErrForbidden       = errors.New("actor role does not permit this operation")
)

// Lookup errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrUserNotFound    = errors.New("user not found")
)

// Bid placement errors
var (
	ErrAuctionNotActive  = errors.New("auction is not active")
	ErrAuctionEnded      = errors.New("auction has already ended")
	ErrBidTooLow         = errors.New("bid amount must exceed the current price")
	ErrSelfBid           = errors.New("sellers cannot bid on their own auction")
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
)

// Lifecycle / settlement errors
var (
	ErrInvalidTransition = errors.New("invalid auction status transition")
	ErrAuctionNotEnded   = errors.New("auction end time has not passed yet")
	ErrAlreadySettled    = errors.New("auction points have already been awarded")
)

// Wallet / input errors
var (
	ErrInsufficientPoints = errors.New("insufficient points balance")
	ErrInvalidInput       = errors.New("invalid input")
)
