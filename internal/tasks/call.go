package tasks

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/flick/internal/models"
	"github.com/desertthunder/flick/internal/services"
	"github.com/desertthunder/flick/internal/session"
	"github.com/desertthunder/flick/internal/shared"
)

// Route names a screen a controller wants to navigate to.
type Route int

const (
	RouteNone Route = iota
	RouteAuth
	RouteDiscovery
	RouteAccount
)

func (r Route) String() string {
	switch r {
	case RouteAuth:
		return "auth"
	case RouteDiscovery:
		return "discovery"
	case RouteAccount:
		return "account"
	default:
		return ""
	}
}

// RedirectFor maps a Begin error to the route the front end should show, if any.
func RedirectFor(err error) Route {
	if errors.Is(err, shared.ErrNotAuthenticated) || errors.Is(err, shared.ErrUnauthorized) {
		return RouteAuth
	}
	return RouteNone
}

// Op identifies the kind of call a screen issued.
type Op int

const (
	OpLogin Op = iota
	OpRegister
	OpRatings
	OpFetch
	OpAdd
	OpWatched
	OpCreate
	OpStatus
	OpReview
	OpDelete
)

func (o Op) String() string {
	return [...]string{"login", "register", "ratings", "fetch", "add", "watched", "create", "status", "review", "delete"}[o]
}

// Call is a pending service call. It touches no screen state and may run on any goroutine.
type Call[T any] struct {
	Mount string
	Op    Op
	Key   string
	run   func(ctx context.Context) (T, error)
}

// Run performs the call.
func (c *Call[T]) Run(ctx context.Context) Result[T] {
	v, err := c.run(ctx)
	return Result[T]{Mount: c.Mount, Op: c.Op, Key: c.Key, Value: v, Err: err}
}

// Result is the outcome of a [Call], tagged with the issuing screen's mount id.
type Result[T any] struct {
	Mount string
	Op    Op
	Key   string
	Value T
	Err   error
}

// screen holds what every controller needs: the session, the service client and the mount id.
type screen struct {
	session *session.Context
	client  services.MovieClient
	logger  *log.Logger
	mount   string
}

func newScreen(sess *session.Context, client services.MovieClient, logger *log.Logger) screen {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return screen{session: sess, client: client, logger: logger}
}

// remount starts a new mount generation. Results from earlier mounts become stale.
func (s *screen) remount() {
	s.mount = shared.GenerateID()
}

// Unmount marks the screen as gone; every in-flight result is ignored.
func (s *screen) Unmount() {
	s.mount = ""
}

// Mounted reports whether the screen is currently mounted.
func (s *screen) Mounted() bool {
	return s.mount != ""
}

func (s *screen) current(mount string) bool {
	return s.mount != "" && s.mount == mount
}

// expired routes a 401 to the single session teardown. It runs even for stale results.
func (s *screen) expired(err error) bool {
	if s.session.Expire(err) {
		s.logger.Warn("session expired", "error", err)
		return true
	}
	return false
}

// describe returns the message to show for err: a local validation message, the server-provided
// message, or fallback.
func describe(err error, fallback string) string {
	var verr models.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}

	if errors.Is(err, shared.ErrNoSessionToken) {
		return NoSessionTokenMessage
	}

	var apiErr *services.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
