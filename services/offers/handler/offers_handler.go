package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"best-offer/internal/auth"
	model "best-offer/internal/models"
	"best-offer/internal/repository"
	"best-offer/services/offers/helpers"
	"best-offer/utils"

	"github.com/gin-gonic/gin"
)

type OfferServiceInterface interface {
	CreateOffer(buyerID, listingID string, amount float64, note string) (model.Offer, error)
	CounterOffer(actorID, offerID string, amount float64, note string) (model.Offer, error)
	AcceptOffer(actorID, offerID string) (model.Offer, error)
	DeclineOffer(actorID, offerID, note string) (model.Offer, error)
	WithdrawOffer(actorID, offerID, note string) (model.Offer, error)
	GetOffer(actorID, offerID string) (model.Offer, error)
	OffersByBuyer(buyerID string, f repository.OfferFilter) ([]model.Offer, error)
	OffersBySeller(sellerID string, f repository.OfferFilter) ([]model.Offer, error)
}

type OffersHandler struct {
	service OfferServiceInterface
}

func NewOffersHandler(service OfferServiceInterface) *OffersHandler {
	return &OffersHandler{service: service}
}

// CreateOfferHandler handles POST /offers
func (h *OffersHandler) CreateOfferHandler(c *gin.Context) {
	var req helpers.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateOfferHandler", err)
		return
	}

	actor := auth.Actor(c)
	offer, err := h.service.CreateOffer(actor, req.ListingID, req.Amount, req.Note)
	if err != nil {
		helpers.HandleServiceError(c, "CreateOfferHandler", err, map[string]any{
			"listing_id": req.ListingID,
			"buyer_id":   actor,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.CreateOfferResponse{
		OfferID: offer.OfferID,
		Status:  string(offer.Status),
	})
	helpers.LogSuccess("CreateOfferHandler", "offer created", map[string]any{
		"offer_id":   offer.OfferID,
		"listing_id": offer.ListingID,
		"buyer_id":   actor,
		"amount":     offer.CurrentAmount,
		"status":     offer.Status,
	})
}

// CounterOfferHandler handles POST /offers/:offer_id/counter
func (h *OffersHandler) CounterOfferHandler(c *gin.Context) {
	var req helpers.CounterOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CounterOfferHandler", err)
		return
	}

	offerID := c.Param("offer_id")
	actor := auth.Actor(c)
	offer, err := h.service.CounterOffer(actor, offerID, req.Amount, req.Note)
	if err != nil {
		helpers.HandleServiceError(c, "CounterOfferHandler", err, map[string]any{
			"offer_id": offerID,
			"actor_id": actor,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.OKResponse{OK: true, Status: string(offer.Status)})
	helpers.LogSuccess("CounterOfferHandler", "counter recorded", map[string]any{
		"offer_id": offer.OfferID,
		"actor_id": actor,
		"amount":   offer.CurrentAmount,
	})
}

// AcceptOfferHandler handles POST /offers/:offer_id/accept
func (h *OffersHandler) AcceptOfferHandler(c *gin.Context) {
	offerID := c.Param("offer_id")
	actor := auth.Actor(c)
	offer, err := h.service.AcceptOffer(actor, offerID)
	if err != nil {
		helpers.HandleServiceError(c, "AcceptOfferHandler", err, map[string]any{
			"offer_id": offerID,
			"actor_id": actor,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.OKResponse{OK: true, Status: string(offer.Status)})
	helpers.LogSuccess("AcceptOfferHandler", "offer accepted", map[string]any{
		"offer_id":        offer.OfferID,
		"actor_id":        actor,
		"accepted_amount": offer.AcceptedAmount,
	})
}

// DeclineOfferHandler handles POST /offers/:offer_id/decline
func (h *OffersHandler) DeclineOfferHandler(c *gin.Context) {
	req, ok := bindOptionalNote(c, "DeclineOfferHandler")
	if !ok {
		return
	}

	offerID := c.Param("offer_id")
	actor := auth.Actor(c)
	offer, err := h.service.DeclineOffer(actor, offerID, req.Note)
	if err != nil {
		helpers.HandleServiceError(c, "DeclineOfferHandler", err, map[string]any{
			"offer_id": offerID,
			"actor_id": actor,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.OKResponse{OK: true, Status: string(offer.Status)})
	helpers.LogSuccess("DeclineOfferHandler", "offer declined", map[string]any{
		"offer_id": offer.OfferID,
		"actor_id": actor,
	})
}

// WithdrawOfferHandler handles POST /offers/:offer_id/withdraw
func (h *OffersHandler) WithdrawOfferHandler(c *gin.Context) {
	req, ok := bindOptionalNote(c, "WithdrawOfferHandler")
	if !ok {
		return
	}

	offerID := c.Param("offer_id")
	actor := auth.Actor(c)
	offer, err := h.service.WithdrawOffer(actor, offerID, req.Note)
	if err != nil {
		helpers.HandleServiceError(c, "WithdrawOfferHandler", err, map[string]any{
			"offer_id": offerID,
			"actor_id": actor,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.OKResponse{OK: true, Status: string(offer.Status)})
	helpers.LogSuccess("WithdrawOfferHandler", "offer withdrawn", map[string]any{
		"offer_id": offer.OfferID,
		"actor_id": actor,
	})
}

// GetOfferHandler handles GET /offers/:offer_id
func (h *OffersHandler) GetOfferHandler(c *gin.Context) {
	offerID := c.Param("offer_id")
	actor := auth.Actor(c)
	offer, err := h.service.GetOffer(actor, offerID)
	if err != nil {
		helpers.HandleServiceError(c, "GetOfferHandler", err, map[string]any{
			"offer_id": offerID,
			"actor_id": actor,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.FromOffer(offer))
}

// ListOffersHandler handles GET /offers?role=&status=&listing_id=&limit=.
// role=buyer (default) lists the actor's own offers; role=seller is the
// seller inbox.
func (h *OffersHandler) ListOffersHandler(c *gin.Context) {
	actor := auth.Actor(c)
	filter := repository.OfferFilter{
		Status:    model.OfferStatus(c.Query("status")),
		ListingID: c.Query("listing_id"),
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := parsePositiveInt(limit)
		if err != nil {
			helpers.HandleBindError(c, "ListOffersHandler", err)
			return
		}
		filter.Limit = n
	}

	var offers []model.Offer
	var err error
	switch role := c.DefaultQuery("role", "buyer"); role {
	case "buyer":
		offers, err = h.service.OffersByBuyer(actor, filter)
	case "seller":
		offers, err = h.service.OffersBySeller(actor, filter)
	default:
		helpers.HandleBindError(c, "ListOffersHandler", errors.New("role must be buyer or seller"))
		return
	}
	if err != nil {
		helpers.HandleServiceError(c, "ListOffersHandler", err, map[string]any{
			"actor_id": actor,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.FromOffers(offers))
}

// bindOptionalNote binds the optional {note} body, treating an empty body
// as no note.
func bindOptionalNote(c *gin.Context, handlerName string) (helpers.NoteRequest, bool) {
	var req helpers.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		helpers.HandleBindError(c, handlerName, err)
		return helpers.NoteRequest{}, false
	}
	return req, true
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}
	return n, nil
}
