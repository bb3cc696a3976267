package authclient

import (
	"context"
	"errors"
	"time"

	internalmetrics "github.com/solivaga/authclient/internal/metrics"
	"github.com/solivaga/authclient/internal/notify"
	"github.com/solivaga/authclient/session"
)

// Client is the session orchestrator: the façade application code talks to.
// It bridges gateway results into the session store and turns outcomes into
// side-effect events; the pipeline underneath has already handled error
// messaging, so Client methods never re-wrap errors.
//
// Client is safe for concurrent use after [Builder.Build].
type Client struct {
	config    Config
	store     *session.Store
	pipe      *pipeline
	gateway   *gateway
	events    *notify.Dispatcher
	metrics   *internalmetrics.Metrics
	navigator Navigator
}

// Session returns a snapshot of the current authentication state.
func (c *Client) Session() Session {
	if c == nil {
		return Session{}
	}
	return c.store.Get()
}

// CurrentUser returns the authenticated user, or nil when logged out.
func (c *Client) CurrentUser() *User {
	return c.Session().User
}

// IsAuthenticated reports whether a login, register, or refresh has
// installed a full credential set and no logout has occurred since.
func (c *Client) IsAuthenticated() bool {
	return c.Session().IsAuthenticated
}

// IsInitialized reports whether the startup hydration and refresh check has
// completed. Callers gating protected behavior should wait for it.
func (c *Client) IsInitialized() bool {
	return c.Session().IsInitialized
}

// Close flushes and stops the event dispatcher.
func (c *Client) Close() {
	if c == nil {
		return
	}
	c.events.Close()
}

// NotificationsDropped reports events discarded under dispatcher
// backpressure.
func (c *Client) NotificationsDropped() uint64 {
	if c == nil {
		return 0
	}
	return c.events.Dropped()
}

// MetricsSnapshot returns a deep copy of all counters.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return c.metrics.Snapshot()
}

func (c *Client) metricInc(id MetricID) {
	if c == nil {
		return
	}
	c.metrics.Inc(id)
}

func (c *Client) emit(ctx context.Context, event Event) {
	if c == nil {
		return
	}
	c.events.Emit(ctx, event)
}

func (c *Client) navigateTo(ctx context.Context, target string) {
	c.emit(ctx, Event{
		Type:     EventNavigate,
		Severity: SeverityInfo,
		Target:   target,
	})
	if c.navigator != nil {
		c.navigator(ctx, target)
	}
}

// Initialize performs the one-time startup sequence: hydrate the session
// from persisted storage and mark the store initialized. When a refresh
// token survived the restart but the access token did not (or has already
// expired), it is eagerly exchanged once so the first real request does not
// have to bounce through a 401.
//
// A failed eager refresh clears the session and is returned; the client is
// initialized and usable (logged out) regardless. Initialize is idempotent.
func (c *Client) Initialize(ctx context.Context) error {
	if c == nil {
		return ErrNotInitialized
	}

	if !c.store.Get().IsInitialized {
		if err := c.store.Hydrate(ctx); err != nil {
			return err
		}
		c.store.Initialize()
	}

	if c.config.Session.DisableEagerRefresh {
		return nil
	}

	sess := c.store.Get()
	if sess.RefreshToken == "" {
		return nil
	}
	if sess.AccessToken != "" && !tokenExpired(sess.AccessToken, time.Now()) {
		return nil
	}
	return c.refreshTokens(ctx, false)
}

// Login authenticates with the given credentials. On success the token pair
// and user are installed atomically and a navigation to the dashboard is
// signaled. On failure the session is left untouched; the pipeline has
// already surfaced the error to the notifier, so callers only need the
// returned error for control flow.
func (c *Client) Login(ctx context.Context, req LoginRequest) error {
	if c == nil {
		return ErrNotInitialized
	}

	res, err := c.gateway.login(ctx, req)
	if err != nil {
		c.metricInc(MetricLoginFailure)
		return err
	}

	if err := c.store.SetTokens(ctx, res.AccessToken, res.RefreshToken, res.User); err != nil {
		return err
	}

	c.metricInc(MetricLoginSuccess)
	c.emit(ctx, Event{
		Type:     EventLogin,
		Severity: SeveritySuccess,
		Message:  "Logged in successfully",
	})
	c.navigateTo(ctx, RouteDashboard)
	return nil
}

// Register creates an account and, like Login, installs the returned
// credential set on success.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	if c == nil {
		return ErrNotInitialized
	}

	res, err := c.gateway.register(ctx, req)
	if err != nil {
		c.metricInc(MetricRegisterFailure)
		return err
	}

	if err := c.store.SetTokens(ctx, res.AccessToken, res.RefreshToken, res.User); err != nil {
		return err
	}

	c.metricInc(MetricRegisterSuccess)
	c.emit(ctx, Event{
		Type:     EventRegister,
		Severity: SeveritySuccess,
		Message:  "Registered successfully",
	})
	c.navigateTo(ctx, RouteDashboard)
	return nil
}

// Logout deactivates the remote session best-effort, then ALWAYS clears the
// local session and signals navigation to the login screen: a dead network
// must never trap a user in a logged-in shell. An optional sessionID
// deactivates that server-side session instead of the current one.
//
// The returned error reflects the remote call; the local session is cleared
// even when it is non-nil.
func (c *Client) Logout(ctx context.Context, sessionID ...string) error {
	if c == nil {
		return ErrNotInitialized
	}

	var sid string
	if len(sessionID) > 0 {
		sid = sessionID[0]
	}

	_, remoteErr := c.gateway.logout(ctx, sid)

	localErr := c.store.Logout(ctx)
	c.metricInc(MetricLogout)
	if remoteErr == nil {
		c.emit(ctx, Event{
			Type:     EventLogout,
			Severity: SeveritySuccess,
			Message:  "Logged out successfully",
		})
	}
	c.navigateTo(ctx, RouteLogin)

	return errors.Join(remoteErr, localErr)
}

// RefreshTokens is the explicit refresh path, used outside the context of a
// failed request. It shares the pipeline's single-flight exchange, so an
// explicit refresh racing an automatic one produces a single network call.
// On failure the session is cleared and navigation to the login screen is
// signaled.
func (c *Client) RefreshTokens(ctx context.Context) error {
	if c == nil {
		return ErrNotInitialized
	}
	return c.refreshTokens(ctx, true)
}

func (c *Client) refreshTokens(ctx context.Context, redirect bool) error {
	if c.store.Get().RefreshToken == "" {
		return ErrSessionExpired
	}

	if err := c.pipe.refreshShared(ctx); err != nil {
		// Session already cleared and expiry reported by the shared path.
		if redirect {
			c.navigateTo(ctx, RouteLogin)
		}
		return err
	}
	return nil
}

// VerifyEmail submits an emailed verification code.
func (c *Client) VerifyEmail(ctx context.Context, req VerifyEmailRequest) (MessageResponse, error) {
	if c == nil {
		return MessageResponse{}, ErrNotInitialized
	}
	return c.gateway.verifyEmail(ctx, req)
}

// ChangePassword rotates the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, req ChangePasswordRequest) (MessageResponse, error) {
	if c == nil {
		return MessageResponse{}, ErrNotInitialized
	}
	return c.gateway.changePassword(ctx, req)
}

// Sessions lists the user's server-side sessions.
func (c *Client) Sessions(ctx context.Context) ([]SessionInfo, error) {
	if c == nil {
		return nil, ErrNotInitialized
	}
	return c.gateway.sessions(ctx)
}

// DeactivateSession remotely deactivates one session by ID. Deactivating
// the current session does not clear local state; use [Client.Logout] for
// that.
func (c *Client) DeactivateSession(ctx context.Context, sessionID string) (MessageResponse, error) {
	if c == nil {
		return MessageResponse{}, ErrNotInitialized
	}
	if sessionID == "" {
		return MessageResponse{}, errors.New("sessionID required")
	}
	return c.gateway.deactivateSession(ctx, sessionID)
}

// DeactivateAllSessions remotely deactivates every session of the user.
func (c *Client) DeactivateAllSessions(ctx context.Context) (CountedMessageResponse, error) {
	if c == nil {
		return CountedMessageResponse{}, ErrNotInitialized
	}
	return c.gateway.deactivateAllSessions(ctx)
}

// Profile fetches the authenticated user's profile and refreshes the stored
// user snapshot.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	if c == nil {
		return nil, ErrNotInitialized
	}

	user, err := c.gateway.profile(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.store.SetUser(ctx, user); err != nil {
		return user, err
	}
	return user, nil
}

// UpdateProfile patches the profile and refreshes the stored user snapshot
// with the server's authoritative result.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*User, error) {
	if c == nil {
		return nil, ErrNotInitialized
	}

	user, err := c.gateway.updateProfile(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := c.store.SetUser(ctx, user); err != nil {
		return user, err
	}
	return user, nil
}
