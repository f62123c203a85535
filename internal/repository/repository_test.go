package repository

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	model "best-offer/internal/models"
	"best-offer/internal/offererrors"

	"github.com/stretchr/testify/require"
)

// Helper to create a new active Listing
func newListing(listingID, sellerID string) model.Listing {
	return model.Listing{
		ListingID: listingID,
		SellerID:  sellerID,
		Title:     fmt.Sprintf("%s title", listingID),
		Status:    model.ListingActive,
		BestOffer: model.BestOfferSettings{Enabled: true, AllowCounter: true},
	}
}

// Helper to create a new Offer
func newOffer(offerID, listingID, buyerID string, status model.OfferStatus, amount float64, createdAt time.Time) model.Offer {
	return model.Offer{
		OfferID:        offerID,
		ListingID:      listingID,
		SellerID:       "seller1",
		BuyerID:        buyerID,
		Status:         status,
		CurrentAmount:  amount,
		OriginalAmount: amount,
		LastActorRole:  model.RoleBuyer,
		ExpiresAt:      createdAt.Add(48 * time.Hour),
		CreatedAt:      createdAt,
		History: []model.HistoryEntry{{
			Type:      model.EventOffer,
			ActorID:   buyerID,
			ActorRole: model.RoleBuyer,
			Amount:    amount,
			CreatedAt: createdAt,
		}},
	}
}

func seedOffer(t *testing.T, repo *MemoryRepo, offer model.Offer) {
	t.Helper()
	err := repo.Update(func(tx Tx) error {
		return tx.PutOffer(offer)
	})
	require.NoError(t, err)
}

// Test Update commit and abort semantics
func TestMemoryRepo_Update(t *testing.T) {
	t.Parallel()

	t.Run("commit_applies_staged_writes", func(t *testing.T) {
		t.Parallel()

		repo := NewMemoryRepo()
		repo.AddListing(newListing("listing1", "seller1"))
		offer := newOffer("offer1", "listing1", "buyer1", model.StatusOpen, 100, time.Now().UTC())

		err := repo.Update(func(tx Tx) error {
			return tx.PutOffer(offer)
		})
		require.NoError(t, err)

		err = repo.View(func(tx Tx) error {
			got, err := tx.GetOffer("offer1")
			require.NoError(t, err)
			require.Equal(t, offer, got)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("abort_discards_staged_writes", func(t *testing.T) {
		t.Parallel()

		repo := NewMemoryRepo()
		boom := errors.New("abort")

		err := repo.Update(func(tx Tx) error {
			require.NoError(t, tx.PutOffer(newOffer("offer1", "listing1", "buyer1", model.StatusOpen, 100, time.Now().UTC())))
			require.NoError(t, tx.PutListing(newListing("listing1", "seller1")))
			return boom
		})
		require.ErrorIs(t, err, boom)

		err = repo.View(func(tx Tx) error {
			_, err := tx.GetOffer("offer1")
			require.ErrorIs(t, err, offererrors.ErrOfferNotFound)
			_, err = tx.GetListing("listing1")
			require.ErrorIs(t, err, offererrors.ErrListingNotFound)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("staged_write_visible_within_transaction", func(t *testing.T) {
		t.Parallel()

		repo := NewMemoryRepo()
		offer := newOffer("offer1", "listing1", "buyer1", model.StatusOpen, 100, time.Now().UTC())

		err := repo.Update(func(tx Tx) error {
			require.NoError(t, tx.PutOffer(offer))
			got, err := tx.GetOffer("offer1")
			require.NoError(t, err)
			require.Equal(t, offer, got)

			count, err := tx.CountOffersByBuyer("listing1", "buyer1")
			require.NoError(t, err)
			require.Equal(t, 1, count)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("returned_offer_does_not_alias_stored_history", func(t *testing.T) {
		t.Parallel()

		repo := NewMemoryRepo()
		seedOffer(t, repo, newOffer("offer1", "listing1", "buyer1", model.StatusOpen, 100, time.Now().UTC()))

		err := repo.Update(func(tx Tx) error {
			got, err := tx.GetOffer("offer1")
			require.NoError(t, err)
			got.History = append(got.History, model.HistoryEntry{Type: model.EventCounter})
			return errors.New("abort")
		})
		require.Error(t, err)

		err = repo.View(func(tx Tx) error {
			got, err := tx.GetOffer("offer1")
			require.NoError(t, err)
			require.Len(t, got.History, 1)
			return nil
		})
		require.NoError(t, err)
	})

	// concurrency test: racing updates on the same offer serialize; each
	// transaction observes the previous commit.
	t.Run("concurrent_updates_serialize", func(t *testing.T) {
		t.Parallel()

		repo := NewMemoryRepo()
		seedOffer(t, repo, newOffer("offer1", "listing1", "buyer1", model.StatusOpen, 100, time.Now().UTC()))

		var wg sync.WaitGroup
		concurrentCount := 50

		for i := 0; i < concurrentCount; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := repo.Update(func(tx Tx) error {
					offer, err := tx.GetOffer("offer1")
					if err != nil {
						return err
					}
					offer.History = append(offer.History, model.HistoryEntry{Type: model.EventCounter, CreatedAt: time.Now().UTC()})
					return tx.PutOffer(offer)
				})
				require.NoError(t, err)
			}()
		}

		wg.Wait()

		err := repo.View(func(tx Tx) error {
			offer, err := tx.GetOffer("offer1")
			require.NoError(t, err)
			require.Len(t, offer.History, 1+concurrentCount)
			return nil
		})
		require.NoError(t, err)
	})
}

// Test FindActiveOffer
func TestMemoryRepo_FindActiveOffer(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	now := time.Now().UTC()
	seedOffer(t, repo, newOffer("offer1", "listing1", "buyer1", model.StatusOpen, 100, now))
	seedOffer(t, repo, newOffer("offer2", "listing1", "buyer2", model.StatusDeclined, 120, now))
	seedOffer(t, repo, newOffer("offer3", "listing2", "buyer3", model.StatusCountered, 130, now))

	tests := []struct {
		name      string
		listingID string
		buyerID   string
		wantID    string
		wantFound bool
	}{
		{name: "open_offer_found", listingID: "listing1", buyerID: "buyer1", wantID: "offer1", wantFound: true},
		{name: "countered_offer_found", listingID: "listing2", buyerID: "buyer3", wantID: "offer3", wantFound: true},
		{name: "terminal_offer_not_active", listingID: "listing1", buyerID: "buyer2", wantFound: false},
		{name: "no_offer_for_buyer", listingID: "listing1", buyerID: "buyerX", wantFound: false},
		{name: "unknown_listing", listingID: "listingX", buyerID: "buyer1", wantFound: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := repo.View(func(tx Tx) error {
				offer, found, err := tx.FindActiveOffer(tc.listingID, tc.buyerID)
				require.NoError(t, err)
				require.Equal(t, tc.wantFound, found)
				if tc.wantFound {
					require.Equal(t, tc.wantID, offer.OfferID)
				}
				return nil
			})
			require.NoError(t, err)
		})
	}
}

// Test CountOffersByBuyer
func TestMemoryRepo_CountOffersByBuyer(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	now := time.Now().UTC()
	// Terminal offers count toward the total: the creation limit covers all
	// of a buyer's offers on a listing, not just live ones.
	seedOffer(t, repo, newOffer("offer1", "listing1", "buyer1", model.StatusDeclined, 100, now))
	seedOffer(t, repo, newOffer("offer2", "listing1", "buyer1", model.StatusWithdrawn, 110, now))
	seedOffer(t, repo, newOffer("offer3", "listing1", "buyer1", model.StatusOpen, 120, now))
	seedOffer(t, repo, newOffer("offer4", "listing2", "buyer1", model.StatusOpen, 130, now))
	seedOffer(t, repo, newOffer("offer5", "listing1", "buyer2", model.StatusOpen, 140, now))

	err := repo.View(func(tx Tx) error {
		count, err := tx.CountOffersByBuyer("listing1", "buyer1")
		require.NoError(t, err)
		require.Equal(t, 3, count)

		count, err = tx.CountOffersByBuyer("listing2", "buyer1")
		require.NoError(t, err)
		require.Equal(t, 1, count)

		count, err = tx.CountOffersByBuyer("listing1", "buyerX")
		require.NoError(t, err)
		require.Equal(t, 0, count)
		return nil
	})
	require.NoError(t, err)
}

// Test OffersByBuyer and OffersBySeller
func TestMemoryRepo_OfferQueries(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		offer := newOffer(fmt.Sprintf("offer%d", i), "listing1", "buyer1", model.StatusOpen, float64(100+i), base.Add(time.Duration(i)*time.Minute))
		if i%2 == 1 {
			offer.Status = model.StatusDeclined
		}
		seedOffer(t, repo, offer)
	}
	other := newOffer("offerX", "listing2", "buyer2", model.StatusOpen, 500, base)
	other.SellerID = "seller2"
	seedOffer(t, repo, other)

	tests := []struct {
		name    string
		query   func(tx Tx) ([]model.Offer, error)
		wantIDs []string
	}{
		{
			name: "buyer_all_newest_first",
			query: func(tx Tx) ([]model.Offer, error) {
				return tx.OffersByBuyer("buyer1", OfferFilter{})
			},
			wantIDs: []string{"offer4", "offer3", "offer2", "offer1", "offer0"},
		},
		{
			name: "buyer_status_filter",
			query: func(tx Tx) ([]model.Offer, error) {
				return tx.OffersByBuyer("buyer1", OfferFilter{Status: model.StatusDeclined})
			},
			wantIDs: []string{"offer3", "offer1"},
		},
		{
			name: "buyer_limit",
			query: func(tx Tx) ([]model.Offer, error) {
				return tx.OffersByBuyer("buyer1", OfferFilter{Limit: 2})
			},
			wantIDs: []string{"offer4", "offer3"},
		},
		{
			name: "buyer_listing_filter",
			query: func(tx Tx) ([]model.Offer, error) {
				return tx.OffersByBuyer("buyer2", OfferFilter{ListingID: "listing2"})
			},
			wantIDs: []string{"offerX"},
		},
		{
			name: "seller_inbox",
			query: func(tx Tx) ([]model.Offer, error) {
				return tx.OffersBySeller("seller2", OfferFilter{})
			},
			wantIDs: []string{"offerX"},
		},
		{
			name: "seller_no_offers",
			query: func(tx Tx) ([]model.Offer, error) {
				return tx.OffersBySeller("sellerX", OfferFilter{})
			},
			wantIDs: []string{},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := repo.View(func(tx Tx) error {
				offers, err := tc.query(tx)
				require.NoError(t, err)

				ids := make([]string, 0, len(offers))
				for _, o := range offers {
					ids = append(ids, o.OfferID)
				}
				require.Equal(t, tc.wantIDs, ids)
				return nil
			})
			require.NoError(t, err)
		})
	}
}
