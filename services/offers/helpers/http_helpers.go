package helpers

import (
	"errors"
	"net/http"

	"best-offer/internal/offererrors"
	"best-offer/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid request payload", offererrors.CodeValidationError, nil)
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status, machine code,
// user-facing message and optional structured details. Precondition
// failures keep specific messages so clients can show them verbatim.
func MapErrorToHTTP(err error) (int, string, string, any) {
	var limitErr *offererrors.LimitError
	if errors.As(err, &limitErr) {
		return http.StatusConflict, offererrors.CodeOfferLimitReached,
			"You have reached the offer limit for this listing", limitErr
	}

	switch {
	case errors.Is(err, offererrors.ErrOfferNotFound):
		return http.StatusNotFound, offererrors.CodeOfferNotFound, "Offer not found", nil
	case errors.Is(err, offererrors.ErrListingNotFound):
		return http.StatusNotFound, offererrors.CodeListingNotFound, "Listing not found", nil

	case errors.Is(err, offererrors.ErrNotParticipant):
		return http.StatusForbidden, offererrors.CodeNotParticipant, "You are not a participant in this offer", nil
	case errors.Is(err, offererrors.ErrOwnListing):
		return http.StatusForbidden, offererrors.CodeOwnListing, "You cannot make an offer on your own listing", nil
	case errors.Is(err, offererrors.ErrCounterNotAllowed):
		return http.StatusForbidden, offererrors.CodeCounterNotAllowed, "Counter offers are not enabled on this listing", nil
	case errors.Is(err, offererrors.ErrSellerCannotWithdraw):
		return http.StatusForbidden, offererrors.CodeSellerCannotWithdraw, "Only the buyer can withdraw an offer", nil

	case errors.Is(err, offererrors.ErrAlreadyAccepted):
		return http.StatusConflict, offererrors.CodeAlreadyAccepted, "Offer has already been accepted", nil
	case errors.Is(err, offererrors.ErrOfferExpired):
		return http.StatusConflict, offererrors.CodeOfferExpired, "Offer has expired", nil
	case errors.Is(err, offererrors.ErrOfferClosed):
		return http.StatusConflict, offererrors.CodeOfferClosed, "Offer is no longer active", nil
	case errors.Is(err, offererrors.ErrBuyerAcceptFromOpen):
		return http.StatusConflict, offererrors.CodeBuyerAcceptFromOpen, "Only countered offers can be accepted by the buyer", nil
	case errors.Is(err, offererrors.ErrBuyerCounterFromOpen):
		return http.StatusConflict, offererrors.CodeBuyerCounterFromOpen, "You can only counter after the seller has countered", nil
	case errors.Is(err, offererrors.ErrBuyerDeclineFromOpen):
		return http.StatusConflict, offererrors.CodeBuyerDeclineFromOpen, "Only countered offers can be declined by the buyer", nil
	case errors.Is(err, offererrors.ErrListingNotActive):
		return http.StatusConflict, offererrors.CodeListingNotActive, "Listing is not active", nil
	case errors.Is(err, offererrors.ErrListingReserved):
		return http.StatusConflict, offererrors.CodeListingReserved, "Listing is reserved by another offer", nil
	case errors.Is(err, offererrors.ErrDuplicateActiveOffer):
		return http.StatusConflict, offererrors.CodeDuplicateActiveOffer, "You already have an active offer on this listing", nil

	case errors.Is(err, offererrors.ErrBestOfferDisabled):
		return http.StatusBadRequest, offererrors.CodeBestOfferDisabled, "This listing does not accept offers", nil
	case errors.Is(err, offererrors.ErrBelowMinimum):
		return http.StatusBadRequest, offererrors.CodeBelowMinimum, "Offer amount is below the seller's minimum", nil
	case errors.Is(err, offererrors.ErrInvalidOffer):
		return http.StatusBadRequest, offererrors.CodeInvalidOffer, "Invalid offer details", nil

	case errors.Is(err, offererrors.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, offererrors.CodeStoreUnavailable, "Offer store is unavailable", nil

	default:
		return http.StatusInternalServerError, offererrors.CodeInternal, "internal server error", nil
	}
}

// HandleServiceError maps the error, writes the response and logs it.
func HandleServiceError(c *gin.Context, handlerName string, err error, ctx map[string]any) {
	status, code, message, details := MapErrorToHTTP(err)
	utils.JSONError(c, status, message, code, details)

	if ctx == nil {
		ctx = map[string]any{}
	}
	ctx["handler"] = handlerName
	ctx["code"] = code
	ctx["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": operation failed", ctx)
	} else {
		utils.Warn(handlerName+": operation rejected", ctx)
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
