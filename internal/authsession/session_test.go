package authsession

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/WildTrack-Africa/field_client/internal/apiclient"
)

func newTestSession(t *testing.T, handler http.Handler) (*Session, *FileStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := NewFileStore(filepath.Join(t.TempDir(), "token"))
	api, err := apiclient.New(apiclient.Config{
		BaseURL: srv.URL,
		Token:   TokenSource(store),
		Logger:  zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("apiclient.New() err = %v", err)
	}
	return New(store, api, zerolog.Nop()), store
}

func TestLoginSendsFormFieldsAndSavesToken(t *testing.T) {
	session, store := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path=%q want /auth/login", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("expected multipart form: %v", err)
		}
		if got := r.FormValue("username"); got != "ranger" {
			t.Errorf("username=%q want ranger", got)
		}
		if got := r.FormValue("password"); got != "s3cret" {
			t.Errorf("password=%q want s3cret", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-123","token_type":"bearer"}`))
	}))

	token, err := session.Login(context.Background(), "ranger", "s3cret")
	if err != nil {
		t.Fatalf("Login() err = %v", err)
	}
	if token.AccessToken != "tok-123" {
		t.Fatalf("AccessToken=%q want tok-123", token.AccessToken)
	}
	stored, ok := store.Token()
	if !ok || stored != "tok-123" {
		t.Fatalf("stored=%q ok=%v want persisted token", stored, ok)
	}
	if !session.Authenticated() {
		t.Fatal("expected authenticated session after login")
	}
}

func TestLoginFailureSurfacesDetail(t *testing.T) {
	session, store := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"incorrect username or password"}`))
	}))

	_, err := session.Login(context.Background(), "ranger", "wrong")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("err=%v want *AuthError", err)
	}
	if authErr.Error() != "incorrect username or password" {
		t.Fatalf("Error()=%q want server detail", authErr.Error())
	}
	if _, ok := store.Token(); ok {
		t.Fatal("no token should be stored after failed login")
	}
}

func TestLoginFailureFallbackMessage(t *testing.T) {
	session, _ := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := session.Login(context.Background(), "ranger", "pw")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("err=%v want *AuthError", err)
	}
	if authErr.Error() != "login failed" {
		t.Fatalf("Error()=%q want fallback message", authErr.Error())
	}
}

func TestCurrentUserWithoutToken(t *testing.T) {
	session, _ := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without a session")
	}))

	_, err := session.CurrentUser(context.Background())
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("err=%v want ErrNoSession", err)
	}
}

func TestCurrentUserExpiredClearsToken(t *testing.T) {
	session, store := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	if err := store.Save("stale-token"); err != nil {
		t.Fatalf("Save() err = %v", err)
	}

	var notified []bool
	session.Subscribe(func(authenticated bool) { notified = append(notified, authenticated) })

	_, err := session.CurrentUser(context.Background())
	if !errors.Is(err, ErrAuthExpired) {
		t.Fatalf("err=%v want ErrAuthExpired", err)
	}
	if _, ok := store.Token(); ok {
		t.Fatal("expired token should be cleared")
	}
	if len(notified) != 1 || notified[0] {
		t.Fatalf("notified=%v want single logout notification", notified)
	}
}

func TestCurrentUserOtherErrorsKeepToken(t *testing.T) {
	session, store := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	if err := store.Save("good-token"); err != nil {
		t.Fatalf("Save() err = %v", err)
	}

	_, err := session.CurrentUser(context.Background())
	if err == nil || errors.Is(err, ErrAuthExpired) {
		t.Fatalf("err=%v want non-expiry failure", err)
	}
	if _, ok := store.Token(); !ok {
		t.Fatal("token must survive non-401 failures")
	}
}

func TestCurrentUserFetchesProfile(t *testing.T) {
	session, store := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/me" {
			t.Errorf("path=%q want /auth/me", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization=%q want bearer token", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":7,"username":"ranger","email":"r@example.org","role":"observer","is_active":true}`))
	}))
	if err := store.Save("tok"); err != nil {
		t.Fatalf("Save() err = %v", err)
	}

	user, err := session.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser() err = %v", err)
	}
	if user.Username != "ranger" || user.Role != "observer" {
		t.Fatalf("user=%+v want profile fields", user)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	session, store := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("logout must not call the API")
	}))
	if err := store.Save("tok"); err != nil {
		t.Fatalf("Save() err = %v", err)
	}

	if err := session.Logout(); err != nil {
		t.Fatalf("Logout() err = %v", err)
	}
	if err := session.Logout(); err != nil {
		t.Fatalf("second Logout() err = %v", err)
	}
	if session.Authenticated() {
		t.Fatal("expected unauthenticated session after logout")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nested", "token"))

	if _, ok := store.Token(); ok {
		t.Fatal("fresh store should be empty")
	}
	if err := store.Save("abc"); err != nil {
		t.Fatalf("Save() err = %v", err)
	}
	token, ok := store.Token()
	if !ok || token != "abc" {
		t.Fatalf("Token()=%q,%v want abc", token, ok)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() err = %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Fatal("cleared store should be empty")
	}
}
