package tasks

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/flick/internal/models"
	"github.com/desertthunder/flick/internal/services"
	"github.com/desertthunder/flick/internal/session"
	"github.com/desertthunder/flick/internal/shared"
)

const (
	RequiredFieldsMessage  = "Username and password are required."
	NoSessionTokenMessage  = "No session token returned from server."
	LoginFailedMessage     = "Login failed"
	RegisterFailedMessage  = "Registration failed"
	RegisteredMessage      = "Registration successful. Please log in."
	sessionSaveFailMessage = "Could not save your session."
)

// AuthMode selects between logging in and registering.
type AuthMode int

const (
	ModeLogin AuthMode = iota
	ModeRegister
)

func (m AuthMode) String() string {
	if m == ModeRegister {
		return "Register"
	}
	return "Login"
}

// AuthFlow is the login/register screen.
type AuthFlow struct {
	screen

	Mode    AuthMode
	Error   string
	Notice  string
	Pending bool
}

// NewAuthFlow creates an [AuthFlow] in login mode.
func NewAuthFlow(sess *session.Context, client services.MovieClient, logger *log.Logger) *AuthFlow {
	return &AuthFlow{screen: newScreen(sess, client, logger)}
}

// Mount starts the screen. A user with a valid session is sent to discovery instead.
func (a *AuthFlow) Mount() Route {
	a.remount()
	a.Pending = false
	if _, ok := a.session.Load(); ok {
		return RouteDiscovery
	}
	return RouteNone
}

// Toggle switches between login and register and clears any message.
func (a *AuthFlow) Toggle() {
	if a.Mode == ModeLogin {
		a.Mode = ModeRegister
	} else {
		a.Mode = ModeLogin
	}
	a.Error = ""
	a.Notice = ""
}

// Begin validates the credentials and returns the login or register call.
//
// Blank fields are rejected without a call. The returned call's Key is the trimmed username; the password is
// sent exactly as entered.
func (a *AuthFlow) Begin(username, password string) (*Call[string], error) {
	username = strings.TrimSpace(username)

	if username == "" || strings.TrimSpace(password) == "" {
		a.Error = RequiredFieldsMessage
		a.Notice = ""
		return nil, models.ValidationError(RequiredFieldsMessage)
	}
	if a.Pending {
		return nil, shared.ErrBusy
	}

	a.Pending = true
	a.Error = ""
	a.Notice = ""

	creds := models.Credentials{Username: username, Password: password}
	client := a.client

	if a.Mode == ModeRegister {
		return &Call[string]{
			Mount: a.mount,
			Op:    OpRegister,
			Key:   username,
			run: func(ctx context.Context) (string, error) {
				return "", client.Register(ctx, creds)
			},
		}, nil
	}

	return &Call[string]{
		Mount: a.mount,
		Op:    OpLogin,
		Key:   username,
		run: func(ctx context.Context) (string, error) {
			return client.Login(ctx, creds)
		},
	}, nil
}

// Apply consumes a login or register result.
//
// A login 401 is a credential failure and never expires a session.
func (a *AuthFlow) Apply(res Result[string]) Route {
	if !a.current(res.Mount) {
		return RouteNone
	}
	a.Pending = false

	switch res.Op {
	case OpRegister:
		if res.Err != nil {
			a.logger.Warn("registration failed", "username", res.Key, "error", res.Err)
			a.Error = describe(res.Err, RegisterFailedMessage)
			return RouteNone
		}
		a.Mode = ModeLogin
		a.Error = ""
		a.Notice = RegisteredMessage
		return RouteNone

	case OpLogin:
		if res.Err != nil {
			a.logger.Warn("login failed", "username", res.Key, "error", res.Err)
			a.Error = describe(res.Err, LoginFailedMessage)
			return RouteNone
		}
		if res.Value == "" {
			a.Error = NoSessionTokenMessage
			return RouteNone
		}
		if err := a.session.Start(session.Session{Token: res.Value, Username: res.Key}); err != nil {
			a.logger.Error("failed to persist session", "error", err)
			a.Error = sessionSaveFailMessage
			return RouteNone
		}
		a.Error = ""
		return RouteDiscovery
	}
	return RouteNone
}
