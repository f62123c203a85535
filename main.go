package main

import (
	"fmt"
	"os"

	"best-offer/internal/auth"
	"best-offer/internal/config"
	model "best-offer/internal/models"
	"best-offer/internal/notify"
	offer "best-offer/internal/offerService"
	"best-offer/internal/repository"
	"best-offer/internal/server"
	"best-offer/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	repo, cleanup, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open offer store: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	offerSvc := offer.NewOfferService(repo, cfg.Policy, notify.LogAuditor{}, notify.LogNotifier{})

	verifier := auth.NewStaticVerifier(cfg.AuthTokens, cfg.UnverifiedAuthTokens)

	router := server.SetupRouter(offerSvc, verifier)

	addr := ":" + cfg.Port
	fmt.Printf("Starting offer service on %s...\n", addr)
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// openStore selects the bolt-backed store when OFFER_DB_PATH is set and
// falls back to the in-memory store otherwise.
func openStore(cfg config.Config) (repository.NegotiationDB, func(), error) {
	if cfg.DBPath == "" {
		utils.Warn("OFFER_DB_PATH not set, using in-memory store", nil)
		repo := repository.NewMemoryRepo()
		prepopulateListings(repo)
		return repo, func() {}, nil
	}

	repo, err := repository.NewBoltRepo(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return repo, func() { repo.Close() }, nil
}

// prepopulateListings seeds sample listings into the in-memory store so the
// service is usable out of the box in development.
func prepopulateListings(repo *repository.MemoryRepo) {
	listings := []model.Listing{
		{
			ListingID: "listing1",
			SellerID:  "seller1",
			Title:     "Breeding pair of Nigerian dwarf goats",
			Status:    model.ListingActive,
			BestOffer: model.BestOfferSettings{Enabled: true, MinPrice: 300, AutoAcceptPrice: 550, AllowCounter: true, OfferExpiryHours: 48},
		},
		{
			ListingID: "listing2",
			SellerID:  "seller1",
			Title:     "Juvenile sulcata tortoise",
			Status:    model.ListingActive,
			BestOffer: model.BestOfferSettings{Enabled: true, MinPrice: 150, AllowCounter: true},
		},
		{
			ListingID: "listing3",
			SellerID:  "seller2",
			Title:     "Alpaca yearling, halter trained",
			Status:    model.ListingActive,
			BestOffer: model.BestOfferSettings{Enabled: true, AllowCounter: false},
		},
	}

	for _, listing := range listings {
		repo.AddListing(listing)
	}
}
