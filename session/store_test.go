package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func testUser() *User {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &User{
		ID:              "1",
		Email:           "demo@example.com",
		Username:        "demo_user",
		IsEmailVerified: true,
		CreatedAt:       created,
		UpdatedAt:       created,
	}
}

func TestSetTokensMarksAuthenticated(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	if err := store.SetTokens(ctx, "a1", "r1", testUser()); err != nil {
		t.Fatalf("SetTokens failed: %v", err)
	}

	sess := store.Get()
	if !sess.IsAuthenticated {
		t.Fatal("expected IsAuthenticated true")
	}
	if sess.AccessToken != "a1" || sess.RefreshToken != "r1" {
		t.Fatalf("unexpected tokens %q/%q", sess.AccessToken, sess.RefreshToken)
	}
	if sess.User == nil || sess.User.ID != "1" {
		t.Fatal("expected user record installed")
	}
}

func TestSetUserLeavesTokensUntouched(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	if err := store.SetTokens(ctx, "a1", "r1", testUser()); err != nil {
		t.Fatalf("SetTokens failed: %v", err)
	}

	renamed := testUser()
	renamed.Username = "renamed"
	if err := store.SetUser(ctx, renamed); err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}

	sess := store.Get()
	if sess.AccessToken != "a1" || sess.RefreshToken != "r1" {
		t.Fatal("SetUser must not touch tokens")
	}
	if !sess.IsAuthenticated {
		t.Fatal("SetUser must not flip IsAuthenticated")
	}
	if sess.User.Username != "renamed" {
		t.Fatalf("expected replaced user, got %q", sess.User.Username)
	}
}

func TestLogoutClearsEverythingExceptInitialized(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	store.Initialize()
	if err := store.SetTokens(ctx, "a1", "r1", testUser()); err != nil {
		t.Fatalf("SetTokens failed: %v", err)
	}
	if err := store.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	sess := store.Get()
	if sess.AccessToken != "" || sess.RefreshToken != "" || sess.User != nil || sess.IsAuthenticated {
		t.Fatalf("expected cleared session, got %+v", sess)
	}
	if !sess.IsInitialized {
		t.Fatal("Logout must not reset IsInitialized")
	}
}

func TestLogoutIdempotent(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	if err := store.Logout(ctx); err != nil {
		t.Fatalf("Logout on empty store failed: %v", err)
	}
	first := store.Get()

	if err := store.Logout(ctx); err != nil {
		t.Fatalf("second Logout failed: %v", err)
	}
	if store.Get() != first {
		t.Fatal("repeated Logout changed state")
	}
}

func TestInitializeIdempotentAndNotPersisted(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage)
	ctx := context.Background()

	store.Initialize()
	store.Initialize()
	if !store.Get().IsInitialized {
		t.Fatal("expected IsInitialized true")
	}

	if err := store.SetTokens(ctx, "a1", "r1", testUser()); err != nil {
		t.Fatalf("SetTokens failed: %v", err)
	}

	reloaded := NewStore(storage)
	if err := reloaded.Hydrate(ctx); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if reloaded.Get().IsInitialized {
		t.Fatal("IsInitialized must restart false after reload")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage)
	ctx := context.Background()

	store.Initialize()
	if err := store.SetTokens(ctx, "a1", "r1", testUser()); err != nil {
		t.Fatalf("SetTokens failed: %v", err)
	}
	written := store.Get()

	reloaded := NewStore(storage)
	if err := reloaded.Hydrate(ctx); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}

	got := reloaded.Get()
	if got.AccessToken != written.AccessToken ||
		got.RefreshToken != written.RefreshToken ||
		got.IsAuthenticated != written.IsAuthenticated {
		t.Fatalf("round trip mismatch: wrote %+v, got %+v", written, got)
	}
	if got.User == nil || *got.User != *written.User {
		t.Fatalf("round trip user mismatch: %+v vs %+v", written.User, got.User)
	}
	if got.IsInitialized {
		t.Fatal("IsInitialized must not survive the round trip")
	}
}

func TestHydrateMissingStateLeavesStoreEmpty(t *testing.T) {
	store := NewStore(NewMemoryStorage())

	if err := store.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate with no state failed: %v", err)
	}
	if sess := store.Get(); sess != (Session{}) {
		t.Fatalf("expected empty session, got %+v", sess)
	}
}

func TestHydrateCorruptStateLeavesStoreEmpty(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()
	if err := storage.Save(ctx, []byte("{not json")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	store := NewStore(storage)
	if err := store.Hydrate(ctx); err != nil {
		t.Fatalf("Hydrate of corrupt state must not error, got %v", err)
	}
	if sess := store.Get(); sess.IsAuthenticated || sess.AccessToken != "" {
		t.Fatalf("expected empty session, got %+v", sess)
	}
}

type failingStorage struct {
	loadErr error
	saveErr error
}

func (f *failingStorage) Load(context.Context) ([]byte, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return nil, ErrNoState
}

func (f *failingStorage) Save(context.Context, []byte) error {
	return f.saveErr
}

func TestMutationAppliesBeforePersistError(t *testing.T) {
	saveErr := errors.New("disk full")
	store := NewStore(&failingStorage{saveErr: saveErr})
	ctx := context.Background()

	err := store.SetTokens(ctx, "a1", "r1", testUser())
	if !errors.Is(err, saveErr) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if store.Get().AccessToken != "a1" {
		t.Fatal("mutation must apply even when persistence fails")
	}
}

func TestHydrateStorageFailurePropagates(t *testing.T) {
	loadErr := errors.New("backend down")
	store := NewStore(&failingStorage{loadErr: loadErr})

	if err := store.Hydrate(context.Background()); !errors.Is(err, loadErr) {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestConcurrentMutationsKeepInvariant(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = store.SetTokens(ctx, "a", "r", testUser())
			} else {
				_ = store.Logout(ctx)
			}
			_ = store.Get()
		}(i)
	}
	wg.Wait()

	sess := store.Get()
	if sess.IsAuthenticated && (sess.AccessToken == "" || sess.RefreshToken == "" || sess.User == nil) {
		t.Fatalf("authenticated session missing credentials: %+v", sess)
	}
	if !sess.IsAuthenticated && (sess.AccessToken != "" || sess.User != nil) {
		t.Fatalf("cleared session kept credentials: %+v", sess)
	}
}
