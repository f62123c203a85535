package offererrors

import (
	"errors"
	"fmt"
)

// Not-found errors
var (
	ErrOfferNotFound   = errors.New("offer not found")
	ErrListingNotFound = errors.New("listing not found")
)

// Permission errors
var (
	ErrNotParticipant       = errors.New("actor is not a participant in this offer")
	ErrOwnListing           = errors.New("you cannot make an offer on your own listing")
	ErrCounterNotAllowed    = errors.New("seller has not enabled counter offers on this listing")
	ErrSellerCannotWithdraw = errors.New("only the buyer can withdraw an offer")
)

// State errors
var (
	ErrAlreadyAccepted      = errors.New("offer has already been accepted")
	ErrOfferClosed          = errors.New("offer is no longer active")
	ErrOfferExpired         = errors.New("offer has expired")
	ErrBuyerAcceptFromOpen  = errors.New("only countered offers can be accepted by the buyer")
	ErrBuyerCounterFromOpen = errors.New("you can only counter after the seller has countered")
	ErrBuyerDeclineFromOpen = errors.New("only countered offers can be declined by the buyer")
	ErrListingNotActive     = errors.New("listing is not active")
	ErrBestOfferDisabled    = errors.New("listing does not accept offers")
)

// Conflict errors
var (
	ErrListingReserved      = errors.New("listing is reserved by another offer")
	ErrDuplicateActiveOffer = errors.New("you already have an active offer on this listing")
	ErrOfferLimitReached    = errors.New("offer limit reached for this listing")
)

// Validation and infrastructure errors
var (
	ErrInvalidOffer     = errors.New("invalid offer")
	ErrBelowMinimum     = errors.New("offer amount is below the seller's minimum")
	ErrStoreUnavailable = errors.New("offer store unavailable")
)

// Machine-readable codes for the HTTP error body, stable across releases
// so clients can branch on them.
const (
	CodeOfferNotFound        = "OFFER_NOT_FOUND"
	CodeListingNotFound      = "LISTING_NOT_FOUND"
	CodeNotParticipant       = "NOT_PARTICIPANT"
	CodeOwnListing           = "OWN_LISTING"
	CodeCounterNotAllowed    = "COUNTER_NOT_ALLOWED"
	CodeSellerCannotWithdraw = "SELLER_CANNOT_WITHDRAW"
	CodeAlreadyAccepted      = "ALREADY_ACCEPTED"
	CodeOfferClosed          = "OFFER_CLOSED"
	CodeOfferExpired         = "OFFER_EXPIRED"
	CodeBuyerAcceptFromOpen  = "BUYER_ACCEPT_FROM_OPEN"
	CodeBuyerCounterFromOpen = "BUYER_COUNTER_FROM_OPEN"
	CodeBuyerDeclineFromOpen = "BUYER_DECLINE_FROM_OPEN"
	CodeListingNotActive     = "LISTING_NOT_ACTIVE"
	CodeBestOfferDisabled    = "BEST_OFFER_DISABLED"
	CodeListingReserved      = "LISTING_RESERVED"
	CodeDuplicateActiveOffer = "DUPLICATE_ACTIVE_OFFER"
	CodeOfferLimitReached    = "OFFER_LIMIT_REACHED"
	CodeInvalidOffer         = "INVALID_OFFER"
	CodeBelowMinimum         = "OFFER_BELOW_MINIMUM"
	CodeStoreUnavailable     = "STORE_UNAVAILABLE"
	CodeValidationError      = "VALIDATION_ERROR"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeEmailNotVerified     = "EMAIL_NOT_VERIFIED"
	CodeInternal             = "INTERNAL_ERROR"
)

// LimitError wraps ErrOfferLimitReached with the numbers the client
// displays to the buyer.
type LimitError struct {
	Limit int `json:"limit"`
	Used  int `json:"used"`
	Left  int `json:"left"`
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("offer limit reached: %d of %d offers used", e.Used, e.Limit)
}

// Unwrap lets errors.Is match ErrOfferLimitReached.
func (e *LimitError) Unwrap() error {
	return ErrOfferLimitReached
}

// NewLimitError builds a LimitError from the configured limit and the
// buyer's current offer count on the listing.
func NewLimitError(limit, used int) *LimitError {
	left := limit - used
	if left < 0 {
		left = 0
	}
	return &LimitError{Limit: limit, Used: used, Left: left}
}
