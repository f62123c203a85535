package offer

import (
	"fmt"
	"math"
	"time"

	"best-offer/internal/config"
	model "best-offer/internal/models"
	"best-offer/internal/notify"
	"best-offer/internal/offererrors"
	"best-offer/internal/repository"
	"best-offer/utils"
)

// MaxAmount bounds offer amounts; anything above it is treated as malformed
// input rather than a real price.
const MaxAmount = 1e9

// OfferService is the negotiation engine. Every mutating operation runs as
// a single store transaction: read offer (and listing where needed),
// validate against that snapshot, write the new state. Of two racing
// operations on the same offer, exactly one commits; the other observes the
// committed state and fails its precondition check.
type OfferService struct {
	repo     repository.NegotiationDB
	policy   config.Policy
	auditor  notify.Auditor
	notifier notify.Notifier
}

// NewOfferService creates a new OfferService instance. Policy values are
// fixed at construction; nothing is read from the environment per request.
func NewOfferService(repo repository.NegotiationDB, policy config.Policy, auditor notify.Auditor, notifier notify.Notifier) *OfferService {
	return &OfferService{
		repo:     repo,
		policy:   policy,
		auditor:  auditor,
		notifier: notifier,
	}
}

// CreateOffer validates and records a buyer's offer on a listing. When the
// amount meets the listing's auto-accept price the offer is created
// directly in accepted state and the listing is reserved in the same
// transaction.
func (s *OfferService) CreateOffer(buyerID, listingID string, amount float64, note string) (model.Offer, error) {
	if buyerID == "" || listingID == "" {
		return model.Offer{}, fmt.Errorf("service: %w - missing buyerID or listingID", offererrors.ErrInvalidOffer)
	}
	if err := validateAmount(amount); err != nil {
		return model.Offer{}, err
	}

	var created, expiredPrior model.Offer
	autoAccepted := false

	err := s.repo.Update(func(tx repository.Tx) error {
		listing, err := tx.GetListing(listingID)
		if err != nil {
			return err
		}
		if listing.Status != model.ListingActive {
			return fmt.Errorf("service: listing %s: %w", listingID, offererrors.ErrListingNotActive)
		}
		if !listing.BestOffer.Enabled {
			return fmt.Errorf("service: listing %s: %w", listingID, offererrors.ErrBestOfferDisabled)
		}
		if listing.SellerID == buyerID {
			return fmt.Errorf("service: %w", offererrors.ErrOwnListing)
		}
		if listing.Reserved() {
			return fmt.Errorf("service: listing %s reserved by offer %s: %w",
				listingID, listing.OfferReservedByOfferID, offererrors.ErrListingReserved)
		}
		if min := listing.BestOffer.MinPrice; min > 0 && amount < min {
			return fmt.Errorf("service: amount %.2f below minimum %.2f: %w", amount, min, offererrors.ErrBelowMinimum)
		}

		now := time.Now().UTC()

		prior, exists, err := tx.FindActiveOffer(listingID, buyerID)
		if err != nil {
			return err
		}
		if exists {
			if !now.After(prior.ExpiresAt) {
				return fmt.Errorf("service: %w", offererrors.ErrDuplicateActiveOffer)
			}
			// A stale offer does not block a new one; flip it here so the
			// buyer is not stuck waiting for another touch on it.
			expire(&prior, now)
			if err := tx.PutOffer(prior); err != nil {
				return err
			}
			expiredPrior = prior
		}
		used, err := tx.CountOffersByBuyer(listingID, buyerID)
		if err != nil {
			return err
		}
		if used >= s.policy.OfferLimit {
			return fmt.Errorf("service: %w", offererrors.NewLimitError(s.policy.OfferLimit, used))
		}

		offer := model.Offer{
			OfferID:        utils.GenerateID(),
			ListingID:      listingID,
			SellerID:       listing.SellerID,
			BuyerID:        buyerID,
			Status:         model.StatusOpen,
			CurrentAmount:  amount,
			OriginalAmount: amount,
			LastActorRole:  model.RoleBuyer,
			ExpiresAt:      now.Add(s.expiryWindow(listing)),
			CreatedAt:      now,
			History: []model.HistoryEntry{{
				Type:      model.EventOffer,
				ActorID:   buyerID,
				ActorRole: model.RoleBuyer,
				Amount:    amount,
				Note:      note,
				CreatedAt: now,
			}},
		}

		// Auto-accept is evaluated only at creation.
		if aap := listing.BestOffer.AutoAcceptPrice; aap > 0 && amount >= aap {
			s.applyAcceptance(&offer, &listing, "system", model.RoleSystem, now)
			if err := tx.PutListing(listing); err != nil {
				return err
			}
			autoAccepted = true
		}

		if err := tx.PutOffer(offer); err != nil {
			return err
		}
		created = offer
		return nil
	})
	if err != nil {
		return model.Offer{}, err
	}

	if expiredPrior.OfferID != "" {
		s.audit("offer_expired", expiredPrior)
	}
	if autoAccepted {
		s.audit("offer_auto_accepted", created)
		s.emit(created, model.EventAccept, "system", created.BuyerID)
	} else {
		s.audit("offer_created", created)
		s.emit(created, model.EventOffer, created.BuyerID, created.SellerID)
	}
	return created, nil
}

// CounterOffer places a counter amount on an open or countered offer and
// pushes the expiry window forward.
func (s *OfferService) CounterOffer(actorID, offerID string, amount float64, note string) (model.Offer, error) {
	if err := validateAmount(amount); err != nil {
		return model.Offer{}, err
	}

	return s.mutate(actorID, offerID, func(tx repository.Tx, offer *model.Offer, role model.ActorRole, now time.Time) error {
		listing, err := s.loadActiveListing(tx, offer)
		if err != nil {
			return err
		}
		if role == model.RoleSeller && !listing.BestOffer.AllowCounter {
			return fmt.Errorf("service: %w", offererrors.ErrCounterNotAllowed)
		}
		if role == model.RoleBuyer && offer.Status != model.StatusCountered {
			return fmt.Errorf("service: %w", offererrors.ErrBuyerCounterFromOpen)
		}
		if min := listing.BestOffer.MinPrice; min > 0 && amount < min {
			return fmt.Errorf("service: amount %.2f below minimum %.2f: %w", amount, min, offererrors.ErrBelowMinimum)
		}

		offer.Status = model.StatusCountered
		offer.CurrentAmount = amount
		offer.ExpiresAt = now.Add(s.expiryWindow(listing))
		offer.LastActorRole = role
		offer.History = append(offer.History, model.HistoryEntry{
			Type:      model.EventCounter,
			ActorID:   actorID,
			ActorRole: role,
			Amount:    amount,
			Note:      note,
			CreatedAt: now,
		})
		return nil
	})
}

// AcceptOffer freezes the current amount and reserves the listing for the
// payment window, all in one transaction.
func (s *OfferService) AcceptOffer(actorID, offerID string) (model.Offer, error) {
	return s.mutate(actorID, offerID, func(tx repository.Tx, offer *model.Offer, role model.ActorRole, now time.Time) error {
		listing, err := s.loadActiveListing(tx, offer)
		if err != nil {
			return err
		}
		if role == model.RoleBuyer && offer.Status != model.StatusCountered {
			return fmt.Errorf("service: %w", offererrors.ErrBuyerAcceptFromOpen)
		}

		s.applyAcceptance(offer, &listing, actorID, role, now)
		return tx.PutListing(listing)
	})
}

// DeclineOffer closes the offer without sale.
func (s *OfferService) DeclineOffer(actorID, offerID, note string) (model.Offer, error) {
	return s.mutate(actorID, offerID, func(tx repository.Tx, offer *model.Offer, role model.ActorRole, now time.Time) error {
		if role == model.RoleBuyer && offer.Status != model.StatusCountered {
			return fmt.Errorf("service: %w", offererrors.ErrBuyerDeclineFromOpen)
		}

		offer.Status = model.StatusDeclined
		offer.LastActorRole = role
		offer.History = append(offer.History, model.HistoryEntry{
			Type:      model.EventDecline,
			ActorID:   actorID,
			ActorRole: role,
			Note:      note,
			CreatedAt: now,
		})
		return nil
	})
}

// WithdrawOffer lets the buyer retract an active offer.
func (s *OfferService) WithdrawOffer(actorID, offerID, note string) (model.Offer, error) {
	return s.mutate(actorID, offerID, func(tx repository.Tx, offer *model.Offer, role model.ActorRole, now time.Time) error {
		if role == model.RoleSeller {
			return fmt.Errorf("service: %w", offererrors.ErrSellerCannotWithdraw)
		}

		offer.Status = model.StatusWithdrawn
		offer.LastActorRole = role
		offer.History = append(offer.History, model.HistoryEntry{
			Type:      model.EventWithdraw,
			ActorID:   actorID,
			ActorRole: role,
			Note:      note,
			CreatedAt: now,
		})
		return nil
	})
}

// GetOffer returns the full offer including history. Only the buyer and the
// seller may read it.
func (s *OfferService) GetOffer(actorID, offerID string) (model.Offer, error) {
	if offerID == "" {
		return model.Offer{}, fmt.Errorf("service: %w - empty offer ID", offererrors.ErrInvalidOffer)
	}

	var offer model.Offer
	err := s.repo.View(func(tx repository.Tx) error {
		o, err := tx.GetOffer(offerID)
		if err != nil {
			return err
		}
		if _, err := participantRole(o, actorID); err != nil {
			return err
		}
		offer = o
		return nil
	})
	if err != nil {
		return model.Offer{}, err
	}
	return offer, nil
}

// OffersByBuyer lists the buyer's own offers, newest first.
func (s *OfferService) OffersByBuyer(buyerID string, f repository.OfferFilter) ([]model.Offer, error) {
	if buyerID == "" {
		return nil, fmt.Errorf("service: %w - empty buyer ID", offererrors.ErrInvalidOffer)
	}

	var offers []model.Offer
	err := s.repo.View(func(tx repository.Tx) error {
		var err error
		offers, err = tx.OffersByBuyer(buyerID, f)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list offers for buyer %s: %w", buyerID, err)
	}
	return offers, nil
}

// OffersBySeller lists the seller's inbox, newest first.
func (s *OfferService) OffersBySeller(sellerID string, f repository.OfferFilter) ([]model.Offer, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("service: %w - empty seller ID", offererrors.ErrInvalidOffer)
	}

	var offers []model.Offer
	err := s.repo.View(func(tx repository.Tx) error {
		var err error
		offers, err = tx.OffersBySeller(sellerID, f)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list offers for seller %s: %w", sellerID, err)
	}
	return offers, nil
}

// mutate wraps the shared transition plumbing: load the offer, resolve the
// actor's role, enforce lazy expiry and terminal-state rules, run the
// transition, persist. The expiry flip must COMMIT even though the caller's
// operation fails, so it is staged and the domain error is carried out of
// the transaction callback instead of aborting it.
func (s *OfferService) mutate(actorID, offerID string, transition func(tx repository.Tx, offer *model.Offer, role model.ActorRole, now time.Time) error) (model.Offer, error) {
	if actorID == "" || offerID == "" {
		return model.Offer{}, fmt.Errorf("service: %w - missing actorID or offerID", offererrors.ErrInvalidOffer)
	}

	var result model.Offer
	var expiredErr error

	err := s.repo.Update(func(tx repository.Tx) error {
		offer, err := tx.GetOffer(offerID)
		if err != nil {
			return err
		}
		role, err := participantRole(offer, actorID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()

		if err := terminalStateError(offer.Status); err != nil {
			return err
		}

		// Lazy expiry: the first touch past expiresAt flips the offer to
		// expired and fails the requested operation. The flip itself must
		// commit, so it is the one domain failure that returns nil here.
		if now.After(offer.ExpiresAt) {
			expire(&offer, now)
			if err := tx.PutOffer(offer); err != nil {
				return err
			}
			expiredErr = fmt.Errorf("service: offer %s: %w", offerID, offererrors.ErrOfferExpired)
			result = offer
			return nil
		}

		if err := transition(tx, &offer, role, now); err != nil {
			return err
		}
		if err := tx.PutOffer(offer); err != nil {
			return err
		}
		result = offer
		return nil
	})
	if err != nil {
		return model.Offer{}, err
	}
	if expiredErr != nil {
		s.audit("offer_expired", result)
		return model.Offer{}, expiredErr
	}

	s.afterTransition(actorID, result)
	return result, nil
}

// loadActiveListing fetches the offer's listing and checks it still accepts
// negotiation moves: active status and no reservation held by another
// offer. Checkout-owned reservations use the same fields, so they block
// negotiation the same way.
func (s *OfferService) loadActiveListing(tx repository.Tx, offer *model.Offer) (model.Listing, error) {
	listing, err := tx.GetListing(offer.ListingID)
	if err != nil {
		return model.Listing{}, err
	}
	if listing.Status != model.ListingActive {
		return model.Listing{}, fmt.Errorf("service: listing %s: %w", listing.ListingID, offererrors.ErrListingNotActive)
	}
	if listing.Reserved() && listing.OfferReservedByOfferID != offer.OfferID {
		return model.Listing{}, fmt.Errorf("service: listing %s reserved by offer %s: %w",
			listing.ListingID, listing.OfferReservedByOfferID, offererrors.ErrListingReserved)
	}
	return listing, nil
}

// applyAcceptance performs the accepted-state transition and the listing
// reservation handshake. Callers persist both records in the same
// transaction.
func (s *OfferService) applyAcceptance(offer *model.Offer, listing *model.Listing, actorID string, role model.ActorRole, now time.Time) {
	offer.Status = model.StatusAccepted
	offer.AcceptedAmount = offer.CurrentAmount
	offer.AcceptedAt = now
	offer.AcceptedBy = actorID
	offer.AcceptedUntil = now.Add(time.Duration(s.policy.PaymentWindowHours) * time.Hour)
	offer.LastActorRole = role
	offer.History = append(offer.History, model.HistoryEntry{
		Type:      model.EventAccept,
		ActorID:   actorID,
		ActorRole: role,
		Amount:    offer.CurrentAmount,
		CreatedAt: now,
	})

	listing.OfferReservedByOfferID = offer.OfferID
	listing.OfferReservedAt = now
	listing.OfferReservedUntil = offer.AcceptedUntil
}

// expiryWindow resolves the listing's configured expiry against the policy
// clamp.
func (s *OfferService) expiryWindow(listing model.Listing) time.Duration {
	hours := s.policy.ClampExpiryHours(listing.BestOffer.OfferExpiryHours)
	return time.Duration(hours) * time.Hour
}

// afterTransition fans out best-effort audit and notification side effects
// once a transition has committed.
func (s *OfferService) afterTransition(actorID string, offer model.Offer) {
	event := lastEventType(offer)
	s.audit("offer_"+event, offer)

	// Notify the counterparty of the actor's move.
	recipient := offer.SellerID
	if actorID == offer.SellerID {
		recipient = offer.BuyerID
	}
	s.emit(offer, event, actorID, recipient)
}

// audit records a committed transition; failures are logged and swallowed,
// never surfaced as the operation's outcome.
func (s *OfferService) audit(action string, offer model.Offer) {
	err := s.auditor.Record(action, map[string]any{
		"offer_id":   offer.OfferID,
		"listing_id": offer.ListingID,
		"status":     offer.Status,
		"amount":     offer.CurrentAmount,
	})
	if err != nil {
		utils.Warn("audit record failed", map[string]any{
			"action":   action,
			"offer_id": offer.OfferID,
			"error":    err.Error(),
		})
	}
}

// emit dispatches a notification event keyed for idempotent delivery.
func (s *OfferService) emit(offer model.Offer, event, actorID, recipient string) {
	err := s.notifier.Notify(notify.Event{
		Key:       fmt.Sprintf("offer:%s:%s", offer.OfferID, event),
		Type:      event,
		OfferID:   offer.OfferID,
		ListingID: offer.ListingID,
		Recipient: recipient,
		Amount:    offer.CurrentAmount,
	})
	if err != nil {
		utils.Warn("notification dispatch failed", map[string]any{
			"event":    event,
			"offer_id": offer.OfferID,
			"actor_id": actorID,
			"error":    err.Error(),
		})
	}
}

// participantRole resolves the actor to buyer or seller, rejecting anyone
// else.
func participantRole(offer model.Offer, actorID string) (model.ActorRole, error) {
	switch actorID {
	case offer.BuyerID:
		return model.RoleBuyer, nil
	case offer.SellerID:
		return model.RoleSeller, nil
	default:
		return "", fmt.Errorf("service: actor %s on offer %s: %w", actorID, offer.OfferID, offererrors.ErrNotParticipant)
	}
}

// expire flips an offer past its deadline into the expired terminal state.
func expire(offer *model.Offer, now time.Time) {
	offer.Status = model.StatusExpired
	offer.LastActorRole = model.RoleSystem
	offer.History = append(offer.History, model.HistoryEntry{
		Type:      model.EventExpire,
		ActorID:   "system",
		ActorRole: model.RoleSystem,
		CreatedAt: now,
	})
}

// terminalStateError maps an already-terminal status to its specific error.
// An already-expired offer fails identically to a just-expired one, without
// appending another expire event.
func terminalStateError(status model.OfferStatus) error {
	switch status {
	case model.StatusAccepted:
		return fmt.Errorf("service: %w", offererrors.ErrAlreadyAccepted)
	case model.StatusExpired:
		return fmt.Errorf("service: %w", offererrors.ErrOfferExpired)
	case model.StatusDeclined, model.StatusWithdrawn:
		return fmt.Errorf("service: %w", offererrors.ErrOfferClosed)
	default:
		return nil
	}
}

// validateAmount rejects malformed amounts before any transactional work.
func validateAmount(amount float64) error {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) || amount > MaxAmount {
		return fmt.Errorf("service: %w - amount must be positive and at most %.0f", offererrors.ErrInvalidOffer, float64(MaxAmount))
	}
	return nil
}

// lastEventType reads the event type of the newest history entry; status
// and last entry type are kept consistent by every transition.
func lastEventType(offer model.Offer) string {
	if len(offer.History) == 0 {
		return ""
	}
	return offer.History[len(offer.History)-1].Type
}
