// Package session owns the authenticated session shared by every screen.
//
// A single [Context] is created at startup and handed to each screen. It persists the session in two
// storage slots, clears both together on logout and notifies subscribers so every consumer leaves
// protected state at once.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/flick/internal/shared"
)

// Storage slot names.
const (
	TokenKey    = "sessionToken"
	UsernameKey = "username"
)

// Store is durable slot storage, implemented by [repositories.SlotRepository].
type Store interface {
	Load(keys ...string) (map[string]string, error)
	Save(values map[string]string) error
	Delete(keys ...string) error
}

// Session is an authenticated identity. It is valid only when both fields are set.
type Session struct {
	Token    string
	Username string
}

// Valid reports whether both the token and username are present.
func (s Session) Valid() bool {
	return strings.TrimSpace(s.Token) != "" && strings.TrimSpace(s.Username) != ""
}

// Reason explains why a session ended.
type Reason int

const (
	LogoutRequested Reason = iota
	SessionExpired
)

func (r Reason) String() string {
	switch r {
	case SessionExpired:
		return "session expired"
	default:
		return "logged out"
	}
}

// Listener is notified after the session slots have been cleared.
type Listener func(Reason)

// Context guards the current session. It is safe for concurrent use.
type Context struct {
	mu        sync.Mutex
	store     Store
	logger    *log.Logger
	listeners map[int]Listener
	nextID    int
}

// NewContext creates a [Context] backed by store.
func NewContext(store Store, logger *log.Logger) *Context {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Context{store: store, logger: logger, listeners: make(map[int]Listener)}
}

// Load reads both slots. The second result is false when either slot is missing.
func (c *Context) Load() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	values, err := c.store.Load(TokenKey, UsernameKey)
	if err != nil {
		c.logger.Warn("failed to read session storage", "error", err)
		return Session{}, false
	}

	s := Session{Token: values[TokenKey], Username: values[UsernameKey]}
	if !s.Valid() {
		return Session{}, false
	}
	return s, true
}

// Require returns the current session or [shared.ErrNotAuthenticated].
func (c *Context) Require() (Session, error) {
	s, ok := c.Load()
	if !ok {
		return Session{}, shared.ErrNotAuthenticated
	}
	return s, nil
}

// Start persists s in both slots.
func (c *Context) Start(s Session) error {
	if !s.Valid() {
		return fmt.Errorf("%w: session requires a token and username", shared.ErrInvalidInput)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Save(map[string]string{TokenKey: s.Token, UsernameKey: s.Username}); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	c.logger.Debug("session started", "username", s.Username)
	return nil
}

// Logout clears both slots and notifies every subscriber.
//
// Subscribers are called without the lock held, so they may call back into the Context.
func (c *Context) Logout(reason Reason) error {
	c.mu.Lock()
	err := c.store.Delete(TokenKey, UsernameKey)
	listeners := make([]Listener, 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Error("failed to clear session storage", "error", err)
	} else {
		c.logger.Info("session cleared", "reason", reason)
	}

	for _, fn := range listeners {
		fn(reason)
	}

	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Expire handles an authorization failure. When err wraps [shared.ErrUnauthorized] the session is
// cleared with [SessionExpired] and Expire reports true; any other error is left to the caller.
func (c *Context) Expire(err error) bool {
	if !errors.Is(err, shared.ErrUnauthorized) {
		return false
	}
	_ = c.Logout(SessionExpired)
	return true
}

// Subscribe registers fn for logout notifications and returns a function that removes it.
func (c *Context) Subscribe(fn Listener) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}
