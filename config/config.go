package config

import "time"

type Config struct {
	Web    Web
	Cors   Cors
	DB     DB
	Auth   Auth
	Oauth  Oauth
	Paypal Paypal
	Stripe Stripe
	Rate   Rate
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type Cors struct {
	Origin string
}

type DB struct {
	User       string `conf:"default:postgres"`
	Password   string `conf:"default:postgres,mask"`
	Host       string `conf:"default:localhost:5432"`
	Name       string `conf:"default:skillupnow"`
	DisableTLS bool   `conf:"default:true"`
}

// Auth configures the bearer token issuer. Tokens signed with
// TokenSecret stay valid for TokenTTL no matter what happens to the
// account in the meantime.
type Auth struct {
	TokenSecret string        `conf:"mask"`
	TokenTTL    time.Duration `conf:"default:24h"`
}

type Oauth struct {
	Google           Provider
	LoginRedirectURL string
	DiscoveryTimeout time.Duration `conf:"default:30s"`
}

type Provider struct {
	Client      string
	Secret      string `conf:"mask"`
	URL         string
	RedirectURL string
}

type Paypal struct {
	ClientID string
	Secret   string `conf:"mask"`
	URL      string
}

type Stripe struct {
	APISecret     string `conf:"mask"`
	WebhookSecret string `conf:"mask"`
	SuccessURL    string
	CancelURL     string
}

// Rate bounds unauthenticated signup/login traffic per client address.
type Rate struct {
	Burst    int           `conf:"default:5"`
	Interval time.Duration `conf:"default:1s"`
	Expiry   time.Duration `conf:"default:10m"`
}
