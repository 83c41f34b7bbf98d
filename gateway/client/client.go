// Package client is a thin Go wrapper around the ProjectX Gateway API.
// Each method performs a single HTTP call; the only stateful piece is
// the session, which logs in, holds the bearer token and refreshes it
// transparently when the gateway stops accepting it.
package client

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/betbot/projectx/gateway/types"
	"github.com/betbot/projectx/pkg/config"
	"github.com/betbot/projectx/pkg/logger"
	"github.com/betbot/projectx/pkg/ratelimit"
	"github.com/betbot/projectx/pkg/tokenstore"
)

// Options tunes the client. The zero value targets the demo gateway
// with a 30s timeout, no token persistence and validation before every
// call.
type Options struct {
	// BaseURL of the gateway; defaults to the demo gateway.
	BaseURL string
	// Timeout for each HTTP call; defaults to 30s. Cancellation beyond
	// that is up to the caller's context.
	Timeout time.Duration
	// TokenStore persists the session token across processes; nil keeps
	// it in memory only. The client closes the store on Close.
	TokenStore tokenstore.Store
	// TokenTTL is the local advisory token lifetime; defaults to 24h.
	TokenTTL time.Duration
	// ValidateInterval is how long a token is trusted between validation
	// calls. Zero validates before every request; negative trusts the
	// token until the TTL passes.
	ValidateInterval time.Duration
	// Logger receives client logs; defaults to the package logger.
	Logger *logrus.Logger
}

// Client wraps the gateway. Safe for concurrent use.
type Client struct {
	transport *transport
	session   *session
	limiter   *ratelimit.Manager
	store     tokenstore.Store
	log       *logrus.Entry
}

// NewClient builds a client for the given credentials.
func NewClient(creds Credentials, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = config.DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.TokenTTL == 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.Logger == nil {
		opts.Logger = logger.Logger
	}

	log := opts.Logger.WithField("component", "gateway")
	tr := newTransport(opts.BaseURL, opts.Timeout)

	return &Client{
		transport: tr,
		session:   newSession(creds, tr, opts.TokenStore, opts.TokenTTL, opts.ValidateInterval, log),
		limiter:   ratelimit.NewManager(),
		store:     opts.TokenStore,
		log:       log,
	}
}

// NewClientFromConfig wires the token store and options from a loaded
// configuration.
func NewClientFromConfig(cfg *config.Config) (*Client, error) {
	var store tokenstore.Store
	switch cfg.Session.CacheBackend {
	case "", "none":
	case "file":
		store = tokenstore.NewFileStore(cfg.Session.CacheDir)
	case "badger":
		key, err := tokenstore.ParseKey(cfg.Session.EncryptionKey)
		if err != nil {
			return nil, err
		}
		store, err = tokenstore.OpenBadger(tokenstore.BadgerOptions{
			Path:          cfg.Session.CacheDir,
			EncryptionKey: key,
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.Errorf("unknown cache backend %q", cfg.Session.CacheBackend)
	}

	creds := Credentials{Username: cfg.Gateway.Username, APIKey: cfg.Gateway.APIKey}
	return NewClient(creds, Options{
		BaseURL:          cfg.Gateway.BaseURL,
		Timeout:          cfg.Gateway.RequestTimeout.Std(),
		TokenStore:       store,
		TokenTTL:         cfg.Session.TokenTTL.Std(),
		ValidateInterval: cfg.Session.ValidateInterval.Std(),
	}), nil
}

// Close releases the token store, if any.
func (c *Client) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}

// Login authenticates eagerly. Calling it is optional; every operation
// ensures a valid session on its own.
func (c *Client) Login(ctx context.Context) (string, error) {
	if err := c.limiter.Wait(ctx, ratelimit.KeyAuth); err != nil {
		return "", err
	}
	return c.session.Login(ctx)
}

// ValidateSession reports whether the gateway still accepts the current
// token. A plain "no" is (false, nil); only transport failures error.
func (c *Client) ValidateSession(ctx context.Context) (bool, error) {
	if err := c.limiter.Wait(ctx, ratelimit.KeyAuth); err != nil {
		return false, err
	}
	return c.session.Validate(ctx)
}

// call is the uniform signed-call contract: pace, ensure a session,
// issue, and classify. A 401 on a token that predates this call gets
// one transparent re-login and a single retry.
func (c *Client) call(ctx context.Context, limitKey, endpoint string, body any, out types.Enveloped) error {
	if err := c.limiter.Wait(ctx, limitKey); err != nil {
		return err
	}

	token, refreshed, err := c.session.ensure(ctx)
	if err != nil {
		return err
	}

	err = c.transport.post(ctx, endpoint, token, body, out)

	var auth *AuthenticationError
	if errors.As(err, &auth) && !refreshed {
		c.log.WithField("endpoint", endpoint).Debug("token rejected, re-authenticating")
		c.session.invalidate(token)
		token, _, err = c.session.ensure(ctx)
		if err != nil {
			return err
		}
		err = c.transport.post(ctx, endpoint, token, body, out)
	}
	if err != nil {
		return err
	}
	return apiError(out.Status())
}
