package shell

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/WildTrack-Africa/field_client/internal/apiclient"
	"github.com/WildTrack-Africa/field_client/internal/authsession"
)

func newTestShell(t *testing.T, handler http.Handler) (*Shell, *authsession.Session, *authsession.FileStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := authsession.NewFileStore(filepath.Join(t.TempDir(), "token"))
	api, err := apiclient.New(apiclient.Config{
		BaseURL: srv.URL,
		Token:   authsession.TokenSource(store),
		Logger:  zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("apiclient.New() err = %v", err)
	}
	session := authsession.New(store, api, zerolog.Nop())
	return New(session, zerolog.Nop()), session, store
}

func TestRoutesGatedBySession(t *testing.T) {
	shell, _, store := newTestShell(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	routes := shell.Routes()
	if len(routes) != 1 || routes[0] != RouteLogin {
		t.Fatalf("routes=%v want login only", routes)
	}

	if err := store.Save("tok"); err != nil {
		t.Fatalf("Save() err = %v", err)
	}
	routes = shell.Routes()
	if len(routes) != 4 {
		t.Fatalf("routes=%v want full authenticated set", routes)
	}
	for _, r := range routes {
		if r == RouteLogin {
			t.Fatal("login route must not appear when authenticated")
		}
	}
}

func TestBootstrapWithoutToken(t *testing.T) {
	shell, _, _ := newTestShell(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without a token")
	}))
	if user := shell.Bootstrap(context.Background()); user != nil {
		t.Fatalf("user=%+v want nil", user)
	}
}

func TestBootstrapFetchesProfile(t *testing.T) {
	shell, _, store := newTestShell(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":7,"username":"ranger","email":"r@example.org","role":"observer","is_active":true}`))
	}))
	if err := store.Save("tok"); err != nil {
		t.Fatalf("Save() err = %v", err)
	}

	user := shell.Bootstrap(context.Background())
	if user == nil || user.Username != "ranger" {
		t.Fatalf("user=%+v want ranger", user)
	}
	if cached := shell.User(); cached == nil || cached.ID != 7 {
		t.Fatalf("cached=%+v want profile retained", cached)
	}
}

func TestBootstrapClearsRejectedToken(t *testing.T) {
	shell, session, store := newTestShell(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	if err := store.Save("stale"); err != nil {
		t.Fatalf("Save() err = %v", err)
	}

	if user := shell.Bootstrap(context.Background()); user != nil {
		t.Fatalf("user=%+v want nil after rejection", user)
	}
	if session.Authenticated() {
		t.Fatal("rejected token must be cleared")
	}
	routes := shell.Routes()
	if len(routes) != 1 || routes[0] != RouteLogin {
		t.Fatalf("routes=%v want login only after rejection", routes)
	}
}

func TestLogoutDropsCachedUser(t *testing.T) {
	shell, session, store := newTestShell(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":7,"username":"ranger","email":"r@example.org","role":"observer","is_active":true}`))
	}))
	if err := store.Save("tok"); err != nil {
		t.Fatalf("Save() err = %v", err)
	}
	shell.Bootstrap(context.Background())
	if shell.User() == nil {
		t.Fatal("expected cached user")
	}

	if err := session.Logout(); err != nil {
		t.Fatalf("Logout() err = %v", err)
	}
	if shell.User() != nil {
		t.Fatal("cached user must be dropped on logout")
	}
}
