package authclient

import (
	"context"
	"io"
	"time"

	internalmetrics "github.com/solivaga/authclient/internal/metrics"
	"github.com/solivaga/authclient/internal/notify"
	"github.com/solivaga/authclient/session"
)

// User is the authenticated principal's profile snapshot.
type User = session.User

// Session is a snapshot of the client-side authentication state.
type Session = session.Session

// LoginRequest carries already-validated login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries already-validated registration input.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest is the body of POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// VerifyEmailRequest is the body of POST /auth/verify-email.
type VerifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// ChangePasswordRequest is the body of POST /auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdateProfileRequest is the body of PATCH /users/profile. Empty fields are
// omitted so the server only touches what the caller set.
type UpdateProfileRequest struct {
	Username string `json:"username,omitempty"`
}

// AuthResponse is the token-bearing response shared by register, login, and
// refresh.
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

// MessageResponse is the generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// CountedMessageResponse acknowledges a bulk operation.
type CountedMessageResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// SessionInfo is one remote session record as listed by GET /sessions. It
// describes a server-side session, not the local [Session] state.
type SessionInfo struct {
	ID        string    `json:"id"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// logoutRequest is the optional body of POST /auth/logout. A nil body
// deactivates only the current session.
type logoutRequest struct {
	SessionID string `json:"sessionId"`
}

// Event is a user-facing side effect emitted by the client: an error toast,
// a success message, a session-expiry warning, or a navigation intent.
type Event = notify.Event

// Severity classifies an [Event] for presentation.
type Severity = notify.Severity

// Event severities.
const (
	SeverityInfo    = notify.SeverityInfo
	SeveritySuccess = notify.SeveritySuccess
	SeverityError   = notify.SeverityError
)

// Event types.
const (
	EventLogin          = notify.EventLogin
	EventRegister       = notify.EventRegister
	EventLogout         = notify.EventLogout
	EventSessionExpired = notify.EventSessionExpired
	EventRequestFailed  = notify.EventRequestFailed
	EventNavigate       = notify.EventNavigate
)

// Navigation targets carried by EventNavigate events.
const (
	RouteDashboard = "/dashboard"
	RouteLogin     = "/login"
)

// Sink receives [Event] values from the client's dispatcher.
type Sink = notify.Sink

// NoOpSink is a [Sink] that silently discards all events.
type NoOpSink = notify.NoOpSink

// ChannelSink is a buffered channel-based [Sink].
type ChannelSink = notify.ChannelSink

// JSONWriterSink is a [Sink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = notify.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return notify.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return notify.NewJSONWriterSink(w)
}

// Navigator is an optional synchronous navigation hook invoked with the
// destination route whenever the client wants the embedding application to
// move: to the dashboard after login or register, to the login screen after
// logout or session expiry. Navigation is also emitted as an EventNavigate
// event regardless of whether a Navigator is set.
type Navigator func(ctx context.Context, target string)

// MetricID identifies a specific counter in the in-process metrics system.
type MetricID = internalmetrics.MetricID

const (
	MetricLoginSuccess    = internalmetrics.MetricLoginSuccess
	MetricLoginFailure    = internalmetrics.MetricLoginFailure
	MetricRegisterSuccess = internalmetrics.MetricRegisterSuccess
	MetricRegisterFailure = internalmetrics.MetricRegisterFailure
	MetricRefreshSuccess  = internalmetrics.MetricRefreshSuccess
	MetricRefreshFailure  = internalmetrics.MetricRefreshFailure
	MetricRefreshShared   = internalmetrics.MetricRefreshShared
	MetricRetrySuccess    = internalmetrics.MetricRetrySuccess
	MetricRetryFailure    = internalmetrics.MetricRetryFailure
	MetricSessionExpired  = internalmetrics.MetricSessionExpired
	MetricLogout          = internalmetrics.MetricLogout
	MetricRequestError    = internalmetrics.MetricRequestError
	MetricNetworkError    = internalmetrics.MetricNetworkError
)

// Metrics holds the client's atomic counters.
type Metrics = internalmetrics.Metrics

// MetricsSnapshot is a point-in-time deep copy of all counters.
type MetricsSnapshot = internalmetrics.Snapshot
