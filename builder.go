package authclient

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/redis/go-redis/v9"

	internalmetrics "github.com/solivaga/authclient/internal/metrics"
	"github.com/solivaga/authclient/internal/notify"
	"github.com/solivaga/authclient/session"
)

// Builder assembles a [Client]. Construction is allocation-only: no network
// or storage I/O happens before [Client.Initialize].
type Builder struct {
	config      Config
	httpClient  *http.Client
	storage     session.Storage
	redisClient *redis.Client
	sink        Sink
	navigator   Navigator

	built bool
}

// New returns a builder preloaded with defaults.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithBaseURL overrides only the service root.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.BaseURL = baseURL
	return b
}

// WithHTTPClient substitutes the underlying HTTP client, e.g. to install a
// proxy or test transport. The client is copied; its zero Timeout is filled
// from the configuration.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithStorage selects the persistence adapter for the session record.
// Defaults to [session.MemoryStorage]. The adapter carries its own
// namespace and takes precedence over [Builder.WithRedis].
func (b *Builder) WithStorage(storage session.Storage) *Builder {
	b.storage = storage
	return b
}

// WithRedis persists the session record in Redis under the key configured
// by Config.Session.StorageKey.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redisClient = client
	return b
}

// WithNotifier installs the sink receiving notification and navigation
// events.
func (b *Builder) WithNotifier(sink Sink) *Builder {
	b.sink = sink
	return b
}

// WithNavigator installs a synchronous navigation hook in addition to the
// EventNavigate events every client emits.
func (b *Builder) WithNavigator(nav Navigator) *Builder {
	b.navigator = nav
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and wires store, pipeline, and gateway
// into a ready Client. A builder builds at most once.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := applyDefaults(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	storage := b.storage
	if storage == nil && b.redisClient != nil {
		storage = session.NewRedisStorage(b.redisClient, cfg.Session.StorageKey, 0)
	}
	store := session.NewStore(storage)

	events := notify.NewDispatcher(notify.Config{
		Enabled:    !cfg.Notify.Disabled,
		BufferSize: cfg.Notify.BufferSize,
		DropIfFull: cfg.Notify.DropIfFull,
	}, b.sink)

	m := internalmetrics.New(internalmetrics.Config{
		Enabled: cfg.Metrics.Enabled,
	})

	httpClient := &http.Client{}
	if b.httpClient != nil {
		clone := *b.httpClient
		httpClient = &clone
	}
	if httpClient.Timeout == 0 {
		httpClient.Timeout = cfg.HTTP.Timeout
	}

	pipe := &pipeline{
		base:      base,
		client:    httpClient,
		store:     store,
		events:    events,
		metrics:   m,
		userAgent: cfg.HTTP.UserAgent,
	}

	gw := &gateway{pipe: pipe}
	pipe.refresh = gw.refresh

	client := &Client{
		config:    cfg,
		store:     store,
		pipe:      pipe,
		gateway:   gw,
		events:    events,
		metrics:   m,
		navigator: b.navigator,
	}

	b.built = true

	return client, nil
}
