package forms

import (
	"context"

	"github.com/WildTrack-Africa/field_client/internal/authsession"
	"github.com/WildTrack-Africa/field_client/internal/domain"
)

// LoginForm holds the credential fields for the unauthenticated view.
type LoginForm struct {
	session *authsession.Session

	username string
	password string
	errMsg   string
}

// NewLoginForm returns an empty login form over the session.
func NewLoginForm(session *authsession.Session) *LoginForm {
	return &LoginForm{session: session}
}

// SetUsername updates the username field.
func (f *LoginForm) SetUsername(v string) { f.username = v }

// SetPassword updates the password field.
func (f *LoginForm) SetPassword(v string) { f.password = v }

// ErrorMessage is the last user-visible error string.
func (f *LoginForm) ErrorMessage() string { return f.errMsg }

// Submit exchanges the credentials and fetches the profile, mirroring the
// login flow: token first, then /auth/me for the user handed to the shell.
func (f *LoginForm) Submit(ctx context.Context) (domain.User, error) {
	f.errMsg = ""

	if f.username == "" {
		verr := invalid("username", "required", "username is required")
		f.errMsg = verr.Message
		return domain.User{}, verr
	}
	if f.password == "" {
		verr := invalid("password", "required", "password is required")
		f.errMsg = verr.Message
		return domain.User{}, verr
	}

	if _, err := f.session.Login(ctx, f.username, f.password); err != nil {
		f.errMsg = err.Error()
		return domain.User{}, err
	}

	user, err := f.session.CurrentUser(ctx)
	if err != nil {
		f.errMsg = err.Error()
		return domain.User{}, err
	}

	f.password = ""
	return user, nil
}
