package helpers

import (
	model "best-offer/internal/models"
)

// Request DTOs. Binding tags reject malformed payloads before any
// transactional work begins.
type CreateOfferRequest struct {
	ListingID string  `json:"listing_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0,lte=1000000000"`
	Note      string  `json:"note" binding:"omitempty,max=500"`
}

type CounterOfferRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0,lte=1000000000"`
	Note   string  `json:"note" binding:"omitempty,max=500"`
}

// NoteRequest is the optional body for decline and withdraw.
type NoteRequest struct {
	Note string `json:"note" binding:"omitempty,max=500"`
}

// Response DTOs. Timestamps are serialized as epoch milliseconds.
type CreateOfferResponse struct {
	OfferID string `json:"offer_id"`
	Status  string `json:"status"`
}

type OKResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status,omitempty"`
}

type HistoryEntryResponse struct {
	Type      string  `json:"type"`
	ActorID   string  `json:"actor_id"`
	ActorRole string  `json:"actor_role"`
	Amount    float64 `json:"amount,omitempty"`
	Note      string  `json:"note,omitempty"`
	CreatedAt int64   `json:"created_at"`
}

type OfferResponse struct {
	OfferID        string                 `json:"offer_id"`
	ListingID      string                 `json:"listing_id"`
	SellerID       string                 `json:"seller_id"`
	BuyerID        string                 `json:"buyer_id"`
	Status         string                 `json:"status"`
	CurrentAmount  float64                `json:"current_amount"`
	OriginalAmount float64                `json:"original_amount"`
	LastActorRole  string                 `json:"last_actor_role"`
	ExpiresAt      int64                  `json:"expires_at"`
	AcceptedAmount float64                `json:"accepted_amount,omitempty"`
	AcceptedAt     int64                  `json:"accepted_at,omitempty"`
	AcceptedBy     string                 `json:"accepted_by,omitempty"`
	AcceptedUntil  int64                  `json:"accepted_until,omitempty"`
	CreatedAt      int64                  `json:"created_at"`
	History        []HistoryEntryResponse `json:"history"`
}

// FromOffer converts the domain offer to its wire shape.
func FromOffer(o model.Offer) OfferResponse {
	history := make([]HistoryEntryResponse, 0, len(o.History))
	for _, h := range o.History {
		history = append(history, HistoryEntryResponse{
			Type:      h.Type,
			ActorID:   h.ActorID,
			ActorRole: string(h.ActorRole),
			Amount:    h.Amount,
			Note:      h.Note,
			CreatedAt: h.CreatedAt.UnixMilli(),
		})
	}

	resp := OfferResponse{
		OfferID:        o.OfferID,
		ListingID:      o.ListingID,
		SellerID:       o.SellerID,
		BuyerID:        o.BuyerID,
		Status:         string(o.Status),
		CurrentAmount:  o.CurrentAmount,
		OriginalAmount: o.OriginalAmount,
		LastActorRole:  string(o.LastActorRole),
		ExpiresAt:      o.ExpiresAt.UnixMilli(),
		AcceptedAmount: o.AcceptedAmount,
		AcceptedBy:     o.AcceptedBy,
		CreatedAt:      o.CreatedAt.UnixMilli(),
		History:        history,
	}
	if !o.AcceptedAt.IsZero() {
		resp.AcceptedAt = o.AcceptedAt.UnixMilli()
	}
	if !o.AcceptedUntil.IsZero() {
		resp.AcceptedUntil = o.AcceptedUntil.UnixMilli()
	}
	return resp
}

// FromOffers converts a list, keeping [] over null for empty results.
func FromOffers(offers []model.Offer) []OfferResponse {
	out := make([]OfferResponse, 0, len(offers))
	for _, o := range offers {
		out = append(out, FromOffer(o))
	}
	return out
}
