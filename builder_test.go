package authclient

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/solivaga/authclient/session"
)

func TestBuildWithDefaults(t *testing.T) {
	c, err := New().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(c.Close)

	if c.Session().IsInitialized {
		t.Fatal("fresh client must start uninitialized")
	}
	if c.IsAuthenticated() {
		t.Fatal("fresh client must start logged out")
	}
}

func TestBuildRejectsSecondUse(t *testing.T) {
	b := New()
	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(c.Close)

	if _, err := b.Build(); err == nil {
		t.Fatal("expected error on second Build")
	}
}

func TestBuildRejectsInvalidBaseURL(t *testing.T) {
	if _, err := New().WithBaseURL("not a url").Build(); err == nil {
		t.Fatal("expected error for invalid base URL")
	}
}

func TestBuildWithSparseConfig(t *testing.T) {
	c, err := New().WithConfig(Config{BaseURL: "https://api.example.com"}).Build()
	if err != nil {
		t.Fatalf("sparse config must build: %v", err)
	}
	t.Cleanup(c.Close)

	if c.config.HTTP.Timeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %v", c.config.HTTP.Timeout)
	}
	if c.config.Session.StorageKey != "auth-storage" {
		t.Fatalf("expected default storage key, got %q", c.config.Session.StorageKey)
	}
}

func TestBuildCopiesHTTPClient(t *testing.T) {
	custom := &http.Client{}
	c, err := New().WithHTTPClient(custom).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(c.Close)

	if c.pipe.client == custom {
		t.Fatal("Build must copy the supplied client")
	}
	if c.pipe.client.Timeout != 10*time.Second {
		t.Fatalf("zero Timeout must be filled from config, got %v", c.pipe.client.Timeout)
	}
	if custom.Timeout != 0 {
		t.Fatal("the caller's client must not be mutated")
	}
}

func TestBuildHonorsExplicitClientTimeout(t *testing.T) {
	c, err := New().WithHTTPClient(&http.Client{Timeout: time.Minute}).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(c.Close)

	if c.pipe.client.Timeout != time.Minute {
		t.Fatalf("explicit timeout must survive, got %v", c.pipe.client.Timeout)
	}
}

func TestBuildHonorsNotifyDisabled(t *testing.T) {
	cfg := defaultConfig()
	cfg.Notify.Disabled = true

	sink := NewChannelSink(4)
	c, err := New().WithConfig(cfg).WithNotifier(sink).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(c.Close)

	if c.events != nil {
		t.Fatal("an explicit disable must win over a supplied sink")
	}

	// Emitting through a disabled client is a no-op.
	c.emit(context.Background(), Event{Type: EventLogin})
	select {
	case event := <-sink.Events():
		t.Fatalf("unexpected event %+v", event)
	default:
	}
}

func TestBuildSparseConfigKeepsEventsWired(t *testing.T) {
	sink := NewChannelSink(4)
	c, err := New().WithConfig(Config{BaseURL: "https://api.example.com"}).WithNotifier(sink).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(c.Close)

	if c.events == nil {
		t.Fatal("a zero-value notify config must not disable an explicit sink")
	}
}

func newBuilderTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis failed to start: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestBuildWithRedisUsesStorageKey(t *testing.T) {
	mr, rdb := newBuilderTestRedis(t)

	cfg := defaultConfig()
	cfg.Session.StorageKey = "tenant-7-session"

	c, err := New().WithConfig(cfg).WithRedis(rdb).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(c.Close)

	if err := c.store.SetTokens(context.Background(), "a1", "r1", newTestUser()); err != nil {
		t.Fatalf("SetTokens failed: %v", err)
	}
	if !mr.Exists("tenant-7-session") {
		t.Fatal("record must persist under the configured storage key")
	}
	if mr.Exists("auth-storage") {
		t.Fatal("default key must not be written when a key is configured")
	}
}

func TestBuildExplicitStorageWinsOverRedis(t *testing.T) {
	mr, rdb := newBuilderTestRedis(t)
	storage := session.NewMemoryStorage()

	c, err := New().WithStorage(storage).WithRedis(rdb).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(c.Close)

	ctx := context.Background()
	if err := c.store.SetTokens(ctx, "a1", "r1", newTestUser()); err != nil {
		t.Fatalf("SetTokens failed: %v", err)
	}

	if mr.Exists("auth-storage") {
		t.Fatal("explicit adapter must take precedence over WithRedis")
	}
	if _, err := storage.Load(ctx); err != nil {
		t.Fatalf("expected record in the explicit adapter, got %v", err)
	}
}

func TestWithConfigCopiesValue(t *testing.T) {
	cfg := defaultConfig()
	cfg.BaseURL = "https://api.example.com"

	b := New().WithConfig(cfg)
	cfg.BaseURL = "https://mutated.example.com"

	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(c.Close)

	if c.config.BaseURL != "https://api.example.com" {
		t.Fatalf("config must be captured at WithConfig time, got %q", c.config.BaseURL)
	}
}
