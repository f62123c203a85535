package repository

import (
	"fmt"
	"sort"
	"sync"

	model "best-offer/internal/models"
	"best-offer/internal/offererrors"
)

// OfferFilter narrows the inbox/outbox queries.
type OfferFilter struct {
	Status    model.OfferStatus // zero value matches all statuses
	ListingID string            // empty matches all listings
	Limit     int               // 0 means DefaultQueryLimit
}

// DefaultQueryLimit bounds list queries when the caller does not.
const DefaultQueryLimit = 50

// Tx is a consistent transactional view over offers and listings. Writes
// made through PutOffer/PutListing are staged and become visible to other
// transactions only when the enclosing Update callback returns nil; any
// error return aborts the transaction with no partial state change.
type Tx interface {
	GetOffer(offerID string) (model.Offer, error)
	PutOffer(offer model.Offer) error
	GetListing(listingID string) (model.Listing, error)
	PutListing(listing model.Listing) error

	// FindActiveOffer returns the buyer's open or countered offer on the
	// listing, if one exists.
	FindActiveOffer(listingID, buyerID string) (model.Offer, bool, error)

	// CountOffersByBuyer counts all of the buyer's offers on the listing,
	// terminal states included.
	CountOffersByBuyer(listingID, buyerID string) (int, error)

	OffersByBuyer(buyerID string, f OfferFilter) ([]model.Offer, error)
	OffersBySeller(sellerID string, f OfferFilter) ([]model.Offer, error)
}

// NegotiationDB is the offer storage interface for the negotiation engine.
// All coordination between concurrent operations is pushed down to the
// store: of two racing Update calls touching the same records, exactly one
// commits first and the other observes the committed state.
type NegotiationDB interface {
	Update(fn func(tx Tx) error) error
	View(fn func(tx Tx) error) error
}

// MemoryRepo is a concurrency-safe in-memory implementation of
// NegotiationDB. Update transactions stage their writes and apply them
// under the write lock only on success, so an aborted transaction is
// invisible to other goroutines.
type MemoryRepo struct {
	mu       sync.RWMutex
	offers   map[string]model.Offer
	listings map[string]model.Listing
}

// NewMemoryRepo creates a new in-memory repository instance.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		offers:   make(map[string]model.Offer),
		listings: make(map[string]model.Listing),
	}
}

// Update runs fn in a write transaction and commits its staged writes when
// fn returns nil.
func (r *MemoryRepo) Update(fn func(tx Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &memTx{
		repo:           r,
		stagedOffers:   make(map[string]model.Offer),
		stagedListings: make(map[string]model.Listing),
	}

	if err := fn(tx); err != nil {
		return err
	}

	for id, o := range tx.stagedOffers {
		r.offers[id] = o
	}
	for id, l := range tx.stagedListings {
		r.listings[id] = l
	}
	return nil
}

// View runs fn in a read-only transaction. Writes staged by fn are
// discarded.
func (r *MemoryRepo) View(fn func(tx Tx) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tx := &memTx{
		repo:           r,
		stagedOffers:   make(map[string]model.Offer),
		stagedListings: make(map[string]model.Listing),
	}
	return fn(tx)
}

// AddListing seeds a listing outside any negotiation transaction. Intended
// for startup seeding and tests.
func (r *MemoryRepo) AddListing(listing model.Listing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings[listing.ListingID] = listing
}

// memTx implements Tx over the repo maps with staged writes.
type memTx struct {
	repo           *MemoryRepo
	stagedOffers   map[string]model.Offer
	stagedListings map[string]model.Listing
}

func (t *memTx) GetOffer(offerID string) (model.Offer, error) {
	if o, ok := t.stagedOffers[offerID]; ok {
		return cloneOffer(o), nil
	}
	o, ok := t.repo.offers[offerID]
	if !ok {
		return model.Offer{}, fmt.Errorf("get offer %s: %w", offerID, offererrors.ErrOfferNotFound)
	}
	return cloneOffer(o), nil
}

func (t *memTx) PutOffer(offer model.Offer) error {
	t.stagedOffers[offer.OfferID] = cloneOffer(offer)
	return nil
}

func (t *memTx) GetListing(listingID string) (model.Listing, error) {
	if l, ok := t.stagedListings[listingID]; ok {
		return l, nil
	}
	l, ok := t.repo.listings[listingID]
	if !ok {
		return model.Listing{}, fmt.Errorf("get listing %s: %w", listingID, offererrors.ErrListingNotFound)
	}
	return l, nil
}

func (t *memTx) PutListing(listing model.Listing) error {
	t.stagedListings[listing.ListingID] = listing
	return nil
}

func (t *memTx) FindActiveOffer(listingID, buyerID string) (model.Offer, bool, error) {
	var found model.Offer
	ok := false
	t.forEachOffer(func(o model.Offer) {
		if o.ListingID == listingID && o.BuyerID == buyerID && !o.Status.IsTerminal() {
			found = cloneOffer(o)
			ok = true
		}
	})
	return found, ok, nil
}

func (t *memTx) CountOffersByBuyer(listingID, buyerID string) (int, error) {
	count := 0
	t.forEachOffer(func(o model.Offer) {
		if o.ListingID == listingID && o.BuyerID == buyerID {
			count++
		}
	})
	return count, nil
}

func (t *memTx) OffersByBuyer(buyerID string, f OfferFilter) ([]model.Offer, error) {
	var offers []model.Offer
	t.forEachOffer(func(o model.Offer) {
		if o.BuyerID == buyerID && matchFilter(o, f) {
			offers = append(offers, cloneOffer(o))
		}
	})
	return sortAndLimit(offers, f.Limit), nil
}

func (t *memTx) OffersBySeller(sellerID string, f OfferFilter) ([]model.Offer, error) {
	var offers []model.Offer
	t.forEachOffer(func(o model.Offer) {
		if o.SellerID == sellerID && matchFilter(o, f) {
			offers = append(offers, cloneOffer(o))
		}
	})
	return sortAndLimit(offers, f.Limit), nil
}

// forEachOffer visits committed offers not shadowed by a staged write, then
// staged offers.
func (t *memTx) forEachOffer(visit func(model.Offer)) {
	for id, o := range t.repo.offers {
		if _, shadowed := t.stagedOffers[id]; shadowed {
			continue
		}
		visit(o)
	}
	for _, o := range t.stagedOffers {
		visit(o)
	}
}

// cloneOffer deep-copies the history slice so callers appending to a
// returned offer never alias stored state.
func cloneOffer(o model.Offer) model.Offer {
	o.History = append([]model.HistoryEntry(nil), o.History...)
	return o
}

func matchFilter(o model.Offer, f OfferFilter) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.ListingID != "" && o.ListingID != f.ListingID {
		return false
	}
	return true
}

// sortAndLimit orders offers newest first and truncates to the query limit.
func sortAndLimit(offers []model.Offer, limit int) []model.Offer {
	sort.Slice(offers, func(i, j int) bool {
		if offers[i].CreatedAt.Equal(offers[j].CreatedAt) {
			return offers[i].OfferID < offers[j].OfferID
		}
		return offers[i].CreatedAt.After(offers[j].CreatedAt)
	})
	if limit <= 0 || limit > DefaultQueryLimit {
		limit = DefaultQueryLimit
	}
	if len(offers) > limit {
		offers = offers[:limit]
	}
	return offers
}
