package models

import "time"

// OfferStatus is the negotiation state of an offer.
type OfferStatus string

const (
	StatusOpen      OfferStatus = "open"
	StatusCountered OfferStatus = "countered"
	StatusAccepted  OfferStatus = "accepted"
	StatusDeclined  OfferStatus = "declined"
	StatusWithdrawn OfferStatus = "withdrawn"
	StatusExpired   OfferStatus = "expired"
)

// IsTerminal reports whether no further transitions are allowed from s.
func (s OfferStatus) IsTerminal() bool {
	return s != StatusOpen && s != StatusCountered
}

// ActorRole identifies who made a move on an offer.
type ActorRole string

const (
	RoleBuyer  ActorRole = "buyer"
	RoleSeller ActorRole = "seller"
	RoleSystem ActorRole = "system"
)

// History event types. The last entry's type always matches the offer status.
const (
	EventOffer    = "offer"
	EventCounter  = "counter"
	EventAccept   = "accept"
	EventDecline  = "decline"
	EventWithdraw = "withdraw"
	EventExpire   = "expire"
)

// HistoryEntry is one move in an offer's negotiation history.
// Entries are append-only; past entries are never mutated.
type HistoryEntry struct {
	Type      string    `json:"type"`
	ActorID   string    `json:"actor_id"`
	ActorRole ActorRole `json:"actor_role"`
	Amount    float64   `json:"amount,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Offer represents a buyer's negotiable price proposal on a listing.
type Offer struct {
	OfferID        string         `json:"offer_id"`
	ListingID      string         `json:"listing_id"`
	SellerID       string         `json:"seller_id"`
	BuyerID        string         `json:"buyer_id"`
	Status         OfferStatus    `json:"status"`
	CurrentAmount  float64        `json:"current_amount"`
	OriginalAmount float64        `json:"original_amount"`
	LastActorRole  ActorRole      `json:"last_actor_role"`
	ExpiresAt      time.Time      `json:"expires_at"`
	AcceptedAmount float64        `json:"accepted_amount,omitempty"`
	AcceptedAt     time.Time      `json:"accepted_at,omitzero"`
	AcceptedBy     string         `json:"accepted_by,omitempty"`
	AcceptedUntil  time.Time      `json:"accepted_until,omitzero"`
	CreatedAt      time.Time      `json:"created_at"`
	History        []HistoryEntry `json:"history"`
}

// BestOfferSettings is the seller-configured negotiation policy on a listing.
// The engine consumes these values and never mutates them.
type BestOfferSettings struct {
	Enabled          bool    `json:"enabled"`
	MinPrice         float64 `json:"min_price,omitempty"`
	AutoAcceptPrice  float64 `json:"auto_accept_price,omitempty"`
	AllowCounter     bool    `json:"allow_counter"`
	OfferExpiryHours int     `json:"offer_expiry_hours,omitempty"`
}

// Listing statuses relevant to negotiation.
const (
	ListingActive = "active"
	ListingSold   = "sold"
	ListingPaused = "paused"
)

// Listing is the subset of a marketplace listing the engine works with.
// The reservation fields are owned by the engine while an offer is live;
// ownership passes to checkout once an offer is accepted.
type Listing struct {
	ListingID              string            `json:"listing_id"`
	SellerID               string            `json:"seller_id"`
	Title                  string            `json:"title"`
	Status                 string            `json:"status"`
	OfferReservedByOfferID string            `json:"offer_reserved_by_offer_id,omitempty"`
	OfferReservedAt        time.Time         `json:"offer_reserved_at,omitzero"`
	OfferReservedUntil     time.Time         `json:"offer_reserved_until,omitzero"`
	BestOffer              BestOfferSettings `json:"best_offer"`
}

// Reserved reports whether the listing currently holds an offer reservation.
func (l Listing) Reserved() bool {
	return l.OfferReservedByOfferID != ""
}
