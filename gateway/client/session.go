package client

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/betbot/projectx/gateway/types"
	"github.com/betbot/projectx/pkg/tokenstore"
)

// Credentials authenticate against the gateway. They are immutable for
// the lifetime of the client.
type Credentials struct {
	Username string
	APIKey   string
}

// session owns the bearer token: obtain, hold, validate, refresh.
// The slot is mutex-guarded so concurrent callers cannot race a refresh
// or trigger redundant logins.
type session struct {
	creds            Credentials
	transport        *transport
	store            tokenstore.Store // nil disables persistence
	ttl              time.Duration
	validateInterval time.Duration // 0 validates every call, <0 never
	log              *logrus.Entry

	mu          sync.Mutex
	token       string
	expiresAt   time.Time // local advisory expiry, gateway stays authoritative
	lastChecked time.Time
	storeLoaded bool
}

func newSession(creds Credentials, tr *transport, store tokenstore.Store, ttl, validateInterval time.Duration, log *logrus.Entry) *session {
	return &session{
		creds:            creds,
		transport:        tr,
		store:            store,
		ttl:              ttl,
		validateInterval: validateInterval,
		log:              log,
	}
}

// Login authenticates unconditionally and replaces the token slot.
// No token is stored when the gateway rejects the credentials.
func (s *session) Login(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginLocked(ctx)
}

func (s *session) loginLocked(ctx context.Context) (string, error) {
	var out types.LoginResponse
	err := s.transport.post(ctx, EndpointLoginKey, "", types.LoginRequest{
		UserName: s.creds.Username,
		APIKey:   s.creds.APIKey,
	}, &out)
	if err != nil {
		// Any gateway rejection of the login call is an authentication
		// failure; transport failures keep their own kind.
		var invalid *InvalidRequestError
		if errors.As(err, &invalid) {
			return "", &AuthenticationError{
				StatusCode: invalid.StatusCode,
				ErrorCode:  invalid.ErrorCode,
				Message:    invalid.Message,
			}
		}
		return "", err
	}
	if !out.Success || out.Token == "" {
		s.log.WithField("errorCode", out.ErrorCode).Warn("login rejected")
		return "", &AuthenticationError{ErrorCode: out.ErrorCode, Message: out.ErrorMessage}
	}

	s.setTokenLocked(out.Token)
	s.log.WithField("user", s.creds.Username).Info("session authenticated")
	return out.Token, nil
}

// Validate asks the gateway whether the current token is still accepted.
// A normal "invalid" answer is (false, nil); only transport failures
// return an error. The gateway may rotate the token on validation.
func (s *session) Validate(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateLocked(ctx)
}

func (s *session) validateLocked(ctx context.Context) (bool, error) {
	if s.token == "" {
		return false, nil
	}
	var out types.ValidateResponse
	err := s.transport.post(ctx, EndpointValidate, s.token, struct{}{}, &out)
	if err != nil {
		var auth *AuthenticationError
		if errors.As(err, &auth) {
			return false, nil
		}
		return false, err
	}
	s.lastChecked = time.Now()
	if !out.Success {
		return false, nil
	}
	if out.NewToken != "" && out.NewToken != s.token {
		s.log.Debug("gateway rotated session token")
		s.setTokenLocked(out.NewToken)
	}
	return true, nil
}

// ensure returns a token the gateway should accept, logging in at most
// once: when the slot is empty, past its advisory expiry, or when a due
// validation comes back negative. refreshed reports whether this call
// performed a login, so the caller does not re-login a second time on
// a 401 for a token minted moments ago.
func (s *session) ensure(ctx context.Context) (token string, refreshed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" && s.store != nil && !s.storeLoaded {
		s.loadStoreLocked()
	}

	if s.token == "" || (s.ttl > 0 && time.Now().After(s.expiresAt)) {
		tok, err := s.loginLocked(ctx)
		return tok, true, err
	}

	if s.validationDueLocked() {
		ok, err := s.validateLocked(ctx)
		if err != nil {
			return "", false, err
		}
		if !ok {
			tok, err := s.loginLocked(ctx)
			return tok, true, err
		}
	}

	return s.token, false, nil
}

// invalidate clears the slot if it still holds tok. Another caller may
// have refreshed the session in the meantime; its token survives.
func (s *session) invalidate(tok string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == tok {
		s.token = ""
	}
}

func (s *session) validationDueLocked() bool {
	if s.validateInterval < 0 {
		return false
	}
	if s.validateInterval == 0 {
		return true
	}
	return time.Since(s.lastChecked) >= s.validateInterval
}

func (s *session) setTokenLocked(tok string) {
	now := time.Now()
	s.token = tok
	s.expiresAt = now.Add(s.ttl)
	s.lastChecked = now

	if s.store != nil {
		s.storeLoaded = true
		if err := s.store.Save(tokenstore.Entry{Token: tok, Expiry: s.expiresAt}); err != nil {
			// Persistence is best effort; the in-memory slot is enough.
			s.log.WithError(err).Warn("could not persist session token")
		}
	}
}

func (s *session) loadStoreLocked() {
	s.storeLoaded = true
	entry, err := s.store.Load()
	if err != nil {
		s.log.WithError(err).Warn("could not read cached session token")
		return
	}
	if entry == nil || (s.ttl > 0 && time.Now().After(entry.Expiry)) {
		return
	}
	s.token = entry.Token
	s.expiresAt = entry.Expiry
	// Never checked in this process; a due validation decides its fate.
	s.lastChecked = time.Time{}
	s.log.Debug("loaded cached session token")
}
