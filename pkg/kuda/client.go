package kuda

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/finverge-hq/gokuda/pkg/endpoints"
	"github.com/finverge-hq/gokuda/pkg/httpclient"
)

// DefaultTimeout bounds every HTTP call the client issues.
const DefaultTimeout = 10 * time.Second

// Environment variables NewFromEnv reads.
const (
	EnvKudaKey           = "KUDA_KEY"
	EnvTokenURL          = "TOKEN_URL"
	EnvRequestURL        = "REQUEST_URL"
	EnvEmail             = "EMAIL"
	EnvMainAccountNumber = "MAIN_ACCOUNT_NUMBER"
)

var validate = validator.New()

// Credentials identifies one Kuda API account.
type Credentials struct {
	KudaKey           string `validate:"required"`
	TokenURL          string `validate:"required,url"`
	RequestURL        string `validate:"required,url"`
	Email             string `validate:"required,email"`
	MainAccountNumber string `validate:"required"`
}

// Options tunes client construction; zero values fall back to defaults.
type Options struct {
	HTTPClient   httpclient.Client
	Timeout      time.Duration
	HeaderSource HeaderSource
	Endpoints    *endpoints.Registry
	Logger       Logger
}

// Client talks to the Kuda open API. It holds no per-call state and is safe
// for concurrent use.
type Client struct {
	creds    Credentials
	http     httpclient.Client
	auth     HeaderSource
	registry *endpoints.Registry
	log      Logger
}

// New builds a client for the given credentials.
func New(creds Credentials, opts Options) (*Client, error) {
	creds = sanitizeCredentials(creds)
	if err := validate.Struct(creds); err != nil {
		return nil, fmt.Errorf("validate credentials: %w", err)
	}

	opts = normalizeOptions(opts)

	c := &Client{
		creds:    creds,
		http:     opts.HTTPClient,
		auth:     opts.HeaderSource,
		registry: opts.Endpoints,
		log:      opts.Logger,
	}
	if c.auth == nil {
		c.auth = newTokenSource(creds, c.http, c.log)
	}

	return c, nil
}

// NewFromEnv builds a client from environment variables, loading a local
// .env file first when one exists. Missing variables are reported together
// in a single error.
func NewFromEnv(opts Options) (*Client, error) {
	_ = godotenv.Load()

	creds := Credentials{
		KudaKey:           os.Getenv(EnvKudaKey),
		TokenURL:          os.Getenv(EnvTokenURL),
		RequestURL:        os.Getenv(EnvRequestURL),
		Email:             os.Getenv(EnvEmail),
		MainAccountNumber: os.Getenv(EnvMainAccountNumber),
	}

	var missing []string
	for _, v := range []struct {
		name  string
		value string
	}{
		{EnvKudaKey, creds.KudaKey},
		{EnvTokenURL, creds.TokenURL},
		{EnvRequestURL, creds.RequestURL},
		{EnvEmail, creds.Email},
		{EnvMainAccountNumber, creds.MainAccountNumber},
	} {
		if strings.TrimSpace(v.value) == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}

	return New(creds, opts)
}

// Endpoints returns the registry backing this client, for callers that
// register custom operations.
func (c *Client) Endpoints() *endpoints.Registry {
	return c.registry
}

func normalizeOptions(opts Options) Options {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = httpclient.NewRestyClient(opts.Timeout)
	}
	if opts.Endpoints == nil {
		opts.Endpoints = endpoints.Defaults()
	}
	opts.Logger = ensureLogger(opts.Logger)
	return opts
}

func sanitizeCredentials(creds Credentials) Credentials {
	creds.KudaKey = strings.TrimSpace(creds.KudaKey)
	creds.TokenURL = strings.TrimSpace(creds.TokenURL)
	creds.RequestURL = strings.TrimSpace(creds.RequestURL)
	creds.Email = strings.TrimSpace(creds.Email)
	creds.MainAccountNumber = strings.TrimSpace(creds.MainAccountNumber)
	return creds
}
