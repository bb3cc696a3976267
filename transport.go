package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	internalmetrics "github.com/solivaga/authclient/internal/metrics"
	"github.com/solivaga/authclient/internal/notify"
	"github.com/solivaga/authclient/session"
)

// maxBodyBytes caps response reads; auth payloads are tiny.
const maxBodyBytes = 1 << 20

// request is one logical API call as it moves through the pipeline. The
// attempt counter lives here, on the per-call value, never on shared state:
// two concurrent calls hitting 401 each carry their own retry budget.
type request struct {
	method string
	path   string
	body   any
	out    any

	attempt int

	// noRefresh marks calls that must never enter the refresh-and-retry
	// path, i.e. the refresh exchange itself.
	noRefresh bool
}

// pipeline turns every outbound call into "authenticated if possible,
// self-healing on expiry". It reads the bearer token from the session store
// at send time, and recovers exactly the 401-with-valid-refresh-token case;
// every other failure is reported and propagated unchanged.
type pipeline struct {
	base      *url.URL
	client    *http.Client
	store     *session.Store
	events    *notify.Dispatcher
	metrics   *internalmetrics.Metrics
	userAgent string

	// refresh performs the token exchange. Wired to the gateway after
	// construction; kept as a function value to avoid a cycle between
	// pipeline and gateway.
	refresh func(ctx context.Context, refreshToken string) (AuthResponse, error)

	// group coalesces concurrent refresh attempts: all 401 handlers
	// share one in-flight exchange and resume with the same token pair.
	group singleflight.Group
}

// do runs req to completion, refreshing and re-issuing at most once.
func (p *pipeline) do(ctx context.Context, req *request) error {
	for {
		err := p.send(ctx, req)
		if err == nil {
			if req.attempt > 0 {
				p.metrics.Inc(internalmetrics.MetricRetrySuccess)
			}
			return nil
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			return err
		}

		if apiErr.Status == http.StatusUnauthorized && req.attempt == 0 && !req.noRefresh {
			req.attempt++
			if p.refreshShared(ctx) != nil {
				// Session handling and messaging happened inside the
				// shared refresh; the caller gets the original error.
				return err
			}
			continue
		}

		if req.attempt > 0 {
			p.metrics.Inc(internalmetrics.MetricRetryFailure)
		}
		p.report(ctx, apiErr)
		return err
	}
}

// send performs one HTTP attempt. The bearer token is read from the store
// immediately before sending, so a retry after refresh picks up the renewed
// token without any handoff.
func (p *pipeline) send(ctx context.Context, req *request) error {
	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, p.base.JoinPath(req.path).String(), body)
	if err != nil {
		return err
	}

	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if p.userAgent != "" {
		httpReq.Header.Set("User-Agent", p.userAgent)
	}
	requestID := requestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	httpReq.Header.Set("X-Request-ID", requestID)

	if token := p.store.Get().AccessToken; token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		p.metrics.Inc(internalmetrics.MetricNetworkError)
		return newNetworkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		p.metrics.Inc(internalmetrics.MetricNetworkError)
		return newNetworkError(err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if req.out != nil && len(data) > 0 {
			if err := json.Unmarshal(data, req.out); err != nil {
				return &APIError{
					Status:  resp.StatusCode,
					Message: "Malformed response body",
					class:   ErrServer,
				}
			}
		}
		return nil
	}

	var msg MessageResponse
	_ = json.Unmarshal(data, &msg)
	return newAPIError(resp.StatusCode, msg.Message)
}

// refreshShared exchanges the refresh token, coalescing concurrent callers
// behind one in-flight exchange. On success the renewed pair is already in
// the store when this returns. On failure (or when no refresh token exists)
// the session is cleared, expiry is reported once, and the error tells the
// caller to give up on its retry.
//
// The winning caller's context governs the network exchange; waiters joined
// mid-flight share its outcome.
func (p *pipeline) refreshShared(ctx context.Context) error {
	_, err, shared := p.group.Do("refresh", func() (any, error) {
		sess := p.store.Get()
		if sess.RefreshToken == "" {
			_ = p.store.Logout(ctx)
			p.metrics.Inc(internalmetrics.MetricSessionExpired)
			return nil, ErrSessionExpired
		}

		res, err := p.refresh(ctx, sess.RefreshToken)
		if err != nil {
			_ = p.store.Logout(ctx)
			p.metrics.Inc(internalmetrics.MetricRefreshFailure)
			p.metrics.Inc(internalmetrics.MetricSessionExpired)
			p.events.Emit(ctx, notify.Event{
				Type:     notify.EventSessionExpired,
				Severity: notify.SeverityError,
				Message:  "Your session has expired. Please log in again.",
			})
			return nil, err
		}

		// Persistence is best-effort here: the renewed pair is live in
		// memory and the retry must proceed with it either way.
		_ = p.store.SetTokens(ctx, res.AccessToken, res.RefreshToken, res.User)
		p.metrics.Inc(internalmetrics.MetricRefreshSuccess)
		return nil, nil
	})
	if shared {
		p.metrics.Inc(internalmetrics.MetricRefreshShared)
	}
	return err
}

// report surfaces a terminal request failure as an event. 401 is excluded:
// expiry messaging belongs to the refresh path, and a 401 that survived it
// has already been reported there.
func (p *pipeline) report(ctx context.Context, apiErr *APIError) {
	if apiErr.Status == http.StatusUnauthorized {
		return
	}
	if !errors.Is(apiErr, ErrNetwork) {
		p.metrics.Inc(internalmetrics.MetricRequestError)
	}
	p.events.Emit(ctx, notify.Event{
		Type:     notify.EventRequestFailed,
		Severity: notify.SeverityError,
		Message:  apiErr.Message,
		Status:   apiErr.Status,
	})
}
