package repository

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"

	model "best-offer/internal/models"
	"best-offer/internal/offererrors"
)

var (
	bucketOffers   = []byte("offers")
	bucketListings = []byte("listings")
)

// BoltRepo is a BoltDB-backed implementation of NegotiationDB. All data
// lives in a single file; bolt.Update gives the atomic read-modify-write
// transaction the negotiation engine is built on.
type BoltRepo struct {
	db *bolt.DB
}

// NewBoltRepo opens (or creates) the database file and ensures both
// buckets exist.
func NewBoltRepo(path string) (*BoltRepo, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open offer db %s: %v: %w", path, err, offererrors.ErrStoreUnavailable)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketOffers); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketListings)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init offer db buckets: %v: %w", err, offererrors.ErrStoreUnavailable)
	}

	return &BoltRepo{db: db}, nil
}

// Close releases the database file lock.
func (r *BoltRepo) Close() error {
	return r.db.Close()
}

// Update runs fn in a writable transaction; staged writes commit when fn
// returns nil and roll back otherwise.
func (r *BoltRepo) Update(fn func(tx Tx) error) error {
	return r.db.Update(func(btx *bolt.Tx) error {
		return fn(&boltTx{tx: btx})
	})
}

// View runs fn in a read-only transaction.
func (r *BoltRepo) View(fn func(tx Tx) error) error {
	return r.db.View(func(btx *bolt.Tx) error {
		return fn(&boltTx{tx: btx})
	})
}

// AddListing seeds a listing outside any negotiation transaction. Intended
// for startup seeding and tests.
func (r *BoltRepo) AddListing(listing model.Listing) error {
	return r.Update(func(tx Tx) error {
		return tx.PutListing(listing)
	})
}

// boltTx implements Tx over JSON-encoded records in the two buckets.
type boltTx struct {
	tx *bolt.Tx
}

func (t *boltTx) bucket(name []byte) (*bolt.Bucket, error) {
	b := t.tx.Bucket(name)
	if b == nil {
		// Missing bucket means the database file was not initialized by
		// NewBoltRepo; treat as a store misconfiguration.
		return nil, fmt.Errorf("bucket %s missing: %w", name, offererrors.ErrStoreUnavailable)
	}
	return b, nil
}

func (t *boltTx) GetOffer(offerID string) (model.Offer, error) {
	b, err := t.bucket(bucketOffers)
	if err != nil {
		return model.Offer{}, err
	}
	v := b.Get([]byte(offerID))
	if v == nil {
		return model.Offer{}, fmt.Errorf("get offer %s: %w", offerID, offererrors.ErrOfferNotFound)
	}
	var o model.Offer
	if err := json.Unmarshal(v, &o); err != nil {
		return model.Offer{}, fmt.Errorf("decode offer %s: %w", offerID, err)
	}
	return o, nil
}

func (t *boltTx) PutOffer(offer model.Offer) error {
	b, err := t.bucket(bucketOffers)
	if err != nil {
		return err
	}
	data, err := json.Marshal(offer)
	if err != nil {
		return fmt.Errorf("encode offer %s: %w", offer.OfferID, err)
	}
	return b.Put([]byte(offer.OfferID), data)
}

func (t *boltTx) GetListing(listingID string) (model.Listing, error) {
	b, err := t.bucket(bucketListings)
	if err != nil {
		return model.Listing{}, err
	}
	v := b.Get([]byte(listingID))
	if v == nil {
		return model.Listing{}, fmt.Errorf("get listing %s: %w", listingID, offererrors.ErrListingNotFound)
	}
	var l model.Listing
	if err := json.Unmarshal(v, &l); err != nil {
		return model.Listing{}, fmt.Errorf("decode listing %s: %w", listingID, err)
	}
	return l, nil
}

func (t *boltTx) PutListing(listing model.Listing) error {
	b, err := t.bucket(bucketListings)
	if err != nil {
		return err
	}
	data, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("encode listing %s: %w", listing.ListingID, err)
	}
	return b.Put([]byte(listing.ListingID), data)
}

func (t *boltTx) FindActiveOffer(listingID, buyerID string) (model.Offer, bool, error) {
	var found model.Offer
	ok := false
	err := t.forEachOffer(func(o model.Offer) {
		if o.ListingID == listingID && o.BuyerID == buyerID && !o.Status.IsTerminal() {
			found = o
			ok = true
		}
	})
	if err != nil {
		return model.Offer{}, false, err
	}
	return found, ok, nil
}

func (t *boltTx) CountOffersByBuyer(listingID, buyerID string) (int, error) {
	count := 0
	err := t.forEachOffer(func(o model.Offer) {
		if o.ListingID == listingID && o.BuyerID == buyerID {
			count++
		}
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (t *boltTx) OffersByBuyer(buyerID string, f OfferFilter) ([]model.Offer, error) {
	var offers []model.Offer
	err := t.forEachOffer(func(o model.Offer) {
		if o.BuyerID == buyerID && matchFilter(o, f) {
			offers = append(offers, o)
		}
	})
	if err != nil {
		return nil, err
	}
	return sortAndLimit(offers, f.Limit), nil
}

func (t *boltTx) OffersBySeller(sellerID string, f OfferFilter) ([]model.Offer, error) {
	var offers []model.Offer
	err := t.forEachOffer(func(o model.Offer) {
		if o.SellerID == sellerID && matchFilter(o, f) {
			offers = append(offers, o)
		}
	})
	if err != nil {
		return nil, err
	}
	return sortAndLimit(offers, f.Limit), nil
}

// forEachOffer scans the offers bucket. Offer volumes per deployment are
// small enough that a full scan beats maintaining index buckets.
func (t *boltTx) forEachOffer(visit func(model.Offer)) error {
	b, err := t.bucket(bucketOffers)
	if err != nil {
		return err
	}
	return b.ForEach(func(k, v []byte) error {
		var o model.Offer
		if err := json.Unmarshal(v, &o); err != nil {
			return fmt.Errorf("decode offer %s: %w", k, err)
		}
		visit(o)
		return nil
	})
}
