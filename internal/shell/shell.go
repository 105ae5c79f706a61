// Package shell is the top-level view composition: it decides which route
// set is available from the authentication state and replays the startup
// profile check.
package shell

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/WildTrack-Africa/field_client/internal/authsession"
	"github.com/WildTrack-Africa/field_client/internal/domain"
)

// Route names one navigable view.
type Route string

const (
	RouteLogin     Route = "login"
	RouteDashboard Route = "dashboard"
	RouteSpecies   Route = "species"
	RouteMap       Route = "map"
	RouteDataEntry Route = "data-entry"
)

// Shell composes the route set over the session.
type Shell struct {
	session *authsession.Session
	log     zerolog.Logger

	mu   sync.Mutex
	user *domain.User
}

// New builds the shell and subscribes to session changes so the cached
// profile is dropped the moment the session ends.
func New(session *authsession.Session, log zerolog.Logger) *Shell {
	s := &Shell{session: session, log: log}
	session.Subscribe(func(authenticated bool) {
		if !authenticated {
			s.mu.Lock()
			s.user = nil
			s.mu.Unlock()
		}
	})
	return s
}

// Bootstrap replays app startup: when a token is present the profile is
// fetched; any failure clears the stale token and leaves the shell
// unauthenticated rather than blocking startup.
func (s *Shell) Bootstrap(ctx context.Context) *domain.User {
	if !s.session.Authenticated() {
		return nil
	}

	user, err := s.session.CurrentUser(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("stored session rejected, signing out")
		if logoutErr := s.session.Logout(); logoutErr != nil {
			s.log.Warn().Err(logoutErr).Msg("clear stale token")
		}
		return nil
	}

	s.SetUser(user)
	return s.User()
}

// SetUser caches the profile after a successful login.
func (s *Shell) SetUser(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
}

// User returns the cached profile, nil when unauthenticated.
func (s *Shell) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Routes returns the reachable views: only the login route without a
// session, the full authenticated set with one.
func (s *Shell) Routes() []Route {
	if !s.session.Authenticated() {
		return []Route{RouteLogin}
	}
	return []Route{RouteDashboard, RouteSpecies, RouteMap, RouteDataEntry}
}
