package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"best-offer/internal/auth"
	"best-offer/internal/config"
	model "best-offer/internal/models"
	"best-offer/internal/notify"
	offer "best-offer/internal/offerService"
	"best-offer/internal/repository"
	"best-offer/internal/server"

	"github.com/gin-gonic/gin"
)

// Fixed bearer tokens for the static verifier. unverified-token resolves
// to an identity that has not confirmed its email.
const (
	buyerToken      = "buyer-token"
	sellerToken     = "seller-token"
	buyer2Token     = "buyer2-token"
	unverifiedToken = "unverified-token"
)

var testTokens = map[string]string{
	buyerToken:  "buyer1",
	sellerToken: "seller1",
	buyer2Token: "buyer2",
}

var testUnverifiedTokens = map[string]string{
	unverifiedToken: "buyer3",
}

var testPolicy = config.Policy{
	OfferLimit:         5,
	PaymentWindowHours: 72,
	DefaultExpiryHours: 48,
}

// SetupTestRouter initializes the router with an in-memory repository,
// seeding the given listings.
func SetupTestRouter(listings ...model.Listing) *gin.Engine {
	gin.SetMode(gin.TestMode)
	repo := repository.NewMemoryRepo()
	for _, listing := range listings {
		repo.AddListing(listing)
	}
	service := offer.NewOfferService(repo, testPolicy, notify.LogAuditor{}, notify.LogNotifier{})
	verifier := auth.NewStaticVerifier(testTokens, testUnverifiedTokens)
	return server.SetupRouter(service, verifier)
}

// ActiveListing builds an active listing with best-offer negotiation on.
func ActiveListing(listingID, sellerID string, settings model.BestOfferSettings) model.Listing {
	return model.Listing{
		ListingID: listingID,
		SellerID:  sellerID,
		Title:     "Pair of Nigerian dwarf goats",
		Status:    model.ListingActive,
		BestOffer: settings,
	}
}

// ExecuteRequest executes an HTTP request with the given bearer token and
// returns the response recorder.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url, token string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes an HTTP request and parses the JSON
// object response.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url, token string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := ExecuteRequest(t, router, method, url, token, reqBody)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 && w.Body.Bytes()[0] == '{' {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}
