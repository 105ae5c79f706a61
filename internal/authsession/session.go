// Package authsession owns the bearer token lifecycle: credential exchange,
// durable persistence, attachment to requests, and forced clearing when the
// profile endpoint reports the token dead.
package authsession

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/WildTrack-Africa/field_client/internal/apiclient"
	"github.com/WildTrack-Africa/field_client/internal/domain"
)

// ErrNoSession is returned by profile calls when no token is stored.
var ErrNoSession = errors.New("authsession: no session")

// ErrAuthExpired is returned when /auth/me answers 401; the stored token is
// cleared before this error is surfaced.
var ErrAuthExpired = errors.New("authsession: session expired")

// AuthError is a failed credential exchange. Detail carries the server
// message when one was supplied.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string { return e.Detail }

const loginFallbackMessage = "login failed"

// Session pairs the token store with the API client.
type Session struct {
	store TokenStore
	api   *apiclient.Client
	log   zerolog.Logger

	mu          sync.Mutex
	subscribers []func(authenticated bool)
}

// New builds a session over the given store and client. The client's token
// source should read from the same store so requests pick up the token as
// soon as it is saved.
func New(store TokenStore, api *apiclient.Client, log zerolog.Logger) *Session {
	return &Session{store: store, api: api, log: log}
}

// TokenSource adapts a store for apiclient.Config.
func TokenSource(store TokenStore) apiclient.TokenSource {
	return store.Token
}

// Subscribe registers a callback fired after every authentication state
// change: successful login, logout, and forced clear on expiry.
func (s *Session) Subscribe(fn func(authenticated bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Session) notify(authenticated bool) {
	s.mu.Lock()
	subs := make([]func(bool), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(authenticated)
	}
}

// Login exchanges credentials for a bearer token at /auth/login. The
// credentials travel as form fields, not JSON. On success the token is
// persisted and returned.
func (s *Session) Login(ctx context.Context, username, password string) (domain.Token, error) {
	var token domain.Token
	err := s.api.PostMultipart(ctx, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "", "", nil, &token)
	if err != nil {
		var httpErr *apiclient.HTTPError
		if errors.As(err, &httpErr) {
			detail := httpErr.Detail
			if detail == "" {
				detail = loginFallbackMessage
			}
			return domain.Token{}, &AuthError{Detail: detail}
		}
		return domain.Token{}, err
	}

	if err := s.store.Save(token.AccessToken); err != nil {
		return domain.Token{}, err
	}
	s.log.Info().Str("user", username).Msg("logged in")
	s.notify(true)
	return token, nil
}

// CurrentUser fetches the authenticated profile from /auth/me. A 401
// specifically clears the stored token before the error is raised; other
// failures leave the session untouched.
func (s *Session) CurrentUser(ctx context.Context) (domain.User, error) {
	if _, ok := s.store.Token(); !ok {
		return domain.User{}, ErrNoSession
	}

	var user domain.User
	err := s.api.GetJSON(ctx, "/auth/me", nil, &user)
	if err != nil {
		var httpErr *apiclient.HTTPError
		if errors.As(err, &httpErr) && httpErr.Status == http.StatusUnauthorized {
			if clearErr := s.store.Clear(); clearErr != nil {
				s.log.Warn().Err(clearErr).Msg("clear expired token")
			}
			s.notify(false)
			return domain.User{}, ErrAuthExpired
		}
		return domain.User{}, err
	}
	return user, nil
}

// Logout clears the persisted token. No network call; safe to repeat.
func (s *Session) Logout() error {
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.log.Info().Msg("logged out")
	s.notify(false)
	return nil
}

// Authenticated reports token presence only. Freshness is discovered on the
// next authenticated call.
func (s *Session) Authenticated() bool {
	_, ok := s.store.Token()
	return ok
}
