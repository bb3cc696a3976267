package authclient

import (
	"errors"
	"net/url"
	"time"
)

// Config groups all tunables of the client. Zero values are filled with the
// defaults from defaultConfig by [Builder.Build]; instances are treated as
// immutable after construction.
type Config struct {
	// BaseURL is the root of the auth service, e.g. "https://api.example.com".
	BaseURL string

	HTTP    HTTPConfig
	Session SessionConfig
	Notify  NotifyConfig
	Metrics MetricsConfig
}

// HTTPConfig controls the request pipeline.
type HTTPConfig struct {
	// Timeout bounds every network call, including the refresh issued on
	// behalf of a failed request. A timed-out call fails as a network
	// error and is never retried.
	Timeout time.Duration

	// UserAgent is sent on every request.
	UserAgent string
}

// SessionConfig controls session persistence.
type SessionConfig struct {
	// StorageKey is the fixed namespace under which the durable session
	// record lives. Adapters the builder constructs itself (see
	// [Builder.WithRedis]) are keyed by it; an adapter supplied through
	// [Builder.WithStorage] was constructed by the caller and carries its
	// own namespace.
	StorageKey string

	// DisableEagerRefresh turns off the startup behavior of
	// [Client.Initialize] that exchanges a surviving refresh token once
	// when the access token is absent or already expired.
	DisableEagerRefresh bool
}

// NotifyConfig controls the event dispatcher.
type NotifyConfig struct {
	// Disabled turns event dispatch off entirely, including for a sink
	// supplied through [Builder.WithNotifier]. The zero value keeps events
	// flowing, so a sparse Config does not silently swallow them.
	Disabled   bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the in-process counters.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:3000",
		HTTP: HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "authclient/1",
		},
		Session: SessionConfig{
			StorageKey: "auth-storage",
		},
		Notify: NotifyConfig{
			BufferSize: 64,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

// applyDefaults fills zero-valued fields from defaultConfig so a sparse
// Config handed to [Builder.WithConfig] still builds.
func applyDefaults(c Config) Config {
	def := defaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = def.HTTP.Timeout
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = def.HTTP.UserAgent
	}
	if c.Session.StorageKey == "" {
		c.Session.StorageKey = def.Session.StorageKey
	}
	if c.Notify.BufferSize == 0 {
		c.Notify.BufferSize = def.Notify.BufferSize
	}
	return c
}

// Validate reports configuration errors a Build must refuse.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("BaseURL required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("BaseURL must be an absolute URL")
	}
	if c.HTTP.Timeout <= 0 {
		return errors.New("HTTP Timeout must be positive")
	}
	if c.Session.StorageKey == "" {
		return errors.New("Session StorageKey required")
	}
	if c.Notify.BufferSize < 0 {
		return errors.New("Notify BufferSize must not be negative")
	}
	return nil
}
