package repository

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	model "best-offer/internal/models"
	"best-offer/internal/offererrors"

	"github.com/stretchr/testify/require"
)

func newBoltRepo(t *testing.T) *BoltRepo {
	t.Helper()
	repo, err := NewBoltRepo(filepath.Join(t.TempDir(), "offers.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestBoltRepo_RoundTrip(t *testing.T) {
	repo := newBoltRepo(t)
	now := time.Now().UTC().Truncate(time.Millisecond)

	listing := newListing("listing1", "seller1")
	require.NoError(t, repo.AddListing(listing))

	offer := newOffer("offer1", "listing1", "buyer1", model.StatusOpen, 100, now)
	err := repo.Update(func(tx Tx) error {
		return tx.PutOffer(offer)
	})
	require.NoError(t, err)

	err = repo.View(func(tx Tx) error {
		gotListing, err := tx.GetListing("listing1")
		require.NoError(t, err)
		require.Equal(t, listing, gotListing)

		gotOffer, err := tx.GetOffer("offer1")
		require.NoError(t, err)
		require.Equal(t, offer.OfferID, gotOffer.OfferID)
		require.Equal(t, offer.Status, gotOffer.Status)
		require.Equal(t, offer.CurrentAmount, gotOffer.CurrentAmount)
		require.Len(t, gotOffer.History, 1)
		require.True(t, offer.CreatedAt.Equal(gotOffer.CreatedAt))
		return nil
	})
	require.NoError(t, err)
}

func TestBoltRepo_NotFound(t *testing.T) {
	repo := newBoltRepo(t)

	err := repo.View(func(tx Tx) error {
		_, err := tx.GetOffer("missing")
		require.ErrorIs(t, err, offererrors.ErrOfferNotFound)

		_, err = tx.GetListing("missing")
		require.ErrorIs(t, err, offererrors.ErrListingNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestBoltRepo_AbortRollsBack(t *testing.T) {
	repo := newBoltRepo(t)
	boom := errors.New("abort")

	err := repo.Update(func(tx Tx) error {
		require.NoError(t, tx.PutOffer(newOffer("offer1", "listing1", "buyer1", model.StatusOpen, 100, time.Now().UTC())))
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = repo.View(func(tx Tx) error {
		_, err := tx.GetOffer("offer1")
		require.ErrorIs(t, err, offererrors.ErrOfferNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestBoltRepo_Queries(t *testing.T) {
	repo := newBoltRepo(t)
	base := time.Now().UTC().Add(-time.Hour)

	err := repo.Update(func(tx Tx) error {
		for i, status := range []model.OfferStatus{model.StatusOpen, model.StatusDeclined, model.StatusCountered} {
			offer := newOffer(string(rune('a'+i)), "listing1", "buyer1", status, float64(100+i), base.Add(time.Duration(i)*time.Minute))
			if err := tx.PutOffer(offer); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	err = repo.View(func(tx Tx) error {
		// Active offer lookup skips terminal states.
		active, found, err := tx.FindActiveOffer("listing1", "buyer1")
		require.NoError(t, err)
		require.True(t, found)
		require.False(t, active.Status.IsTerminal())

		count, err := tx.CountOffersByBuyer("listing1", "buyer1")
		require.NoError(t, err)
		require.Equal(t, 3, count)

		offers, err := tx.OffersByBuyer("buyer1", OfferFilter{})
		require.NoError(t, err)
		require.Len(t, offers, 3)
		require.Equal(t, "c", offers[0].OfferID) // newest first

		sellers, err := tx.OffersBySeller("seller1", OfferFilter{Status: model.StatusDeclined})
		require.NoError(t, err)
		require.Len(t, sellers, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestBoltRepo_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offers.db")

	repo, err := NewBoltRepo(path)
	require.NoError(t, err)
	require.NoError(t, repo.AddListing(newListing("listing1", "seller1")))
	require.NoError(t, repo.Close())

	repo, err = NewBoltRepo(path)
	require.NoError(t, err)
	defer repo.Close()

	err = repo.View(func(tx Tx) error {
		listing, err := tx.GetListing("listing1")
		require.NoError(t, err)
		require.Equal(t, "seller1", listing.SellerID)
		return nil
	})
	require.NoError(t, err)
}
