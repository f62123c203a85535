package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings. Negotiation policy values are parsed
// here once and injected into the engine at construction; nothing reads
// environment variables during request handling.
type Config struct {
	Port   string `env:"PORT" envDefault:"8080"`
	DBPath string `env:"OFFER_DB_PATH"` // empty selects the in-memory store

	// AuthTokens maps bearer tokens to email-verified user ids for the
	// static verifier, e.g. "tok-alice:alice,tok-bob:bob". Production
	// deployments swap in a real identity provider.
	AuthTokens map[string]string `env:"AUTH_TOKENS" envSeparator:","`

	// UnverifiedAuthTokens maps tokens to user ids whose email is not
	// verified yet; requests with these tokens are rejected by the email
	// gate.
	UnverifiedAuthTokens map[string]string `env:"AUTH_TOKENS_UNVERIFIED" envSeparator:","`

	Policy Policy
}

// Policy is the negotiation engine's tunable rule set.
type Policy struct {
	// OfferLimit caps how many offers one buyer may create on one listing.
	OfferLimit int `env:"OFFER_LIMIT_PER_LISTING" envDefault:"5"`

	// PaymentWindowHours is how long an accepted offer reserves the listing.
	PaymentWindowHours int `env:"PAYMENT_WINDOW_HOURS" envDefault:"72"`

	// DefaultExpiryHours applies when a listing does not configure
	// OfferExpiryHours. Listing values are clamped to [MinExpiryHours,
	// MaxExpiryHours].
	DefaultExpiryHours int `env:"OFFER_EXPIRY_HOURS_DEFAULT" envDefault:"48"`
}

// Expiry clamp bounds, in hours.
const (
	MinExpiryHours = 1
	MaxExpiryHours = 168
)

// Load reads configuration from the environment, optionally seeded from a
// .env file in the working directory.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if cfg.Policy.OfferLimit < 1 {
		return Config{}, fmt.Errorf("OFFER_LIMIT_PER_LISTING must be at least 1, got %d", cfg.Policy.OfferLimit)
	}
	if cfg.Policy.PaymentWindowHours < 1 {
		return Config{}, fmt.Errorf("PAYMENT_WINDOW_HOURS must be at least 1, got %d", cfg.Policy.PaymentWindowHours)
	}
	if cfg.Policy.DefaultExpiryHours < MinExpiryHours || cfg.Policy.DefaultExpiryHours > MaxExpiryHours {
		return Config{}, fmt.Errorf("OFFER_EXPIRY_HOURS_DEFAULT must be in [%d,%d], got %d",
			MinExpiryHours, MaxExpiryHours, cfg.Policy.DefaultExpiryHours)
	}

	return cfg, nil
}

// ClampExpiryHours normalizes a listing-configured expiry to the allowed
// range, falling back to the policy default when unset.
func (p Policy) ClampExpiryHours(hours int) int {
	if hours == 0 {
		return p.DefaultExpiryHours
	}
	if hours < MinExpiryHours {
		return MinExpiryHours
	}
	if hours > MaxExpiryHours {
		return MaxExpiryHours
	}
	return hours
}
