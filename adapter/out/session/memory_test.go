package session

import (
	"context"
	"sync"
	"testing"

	"quotable_server/core/domain"
	"quotable_server/pkg/apperr"
)

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "nope")
	if err == nil {
		t.Fatal("Get() expected error for unknown session")
	}
	if !apperr.IsCode(err, apperr.CodeSessionNotFound) {
		t.Errorf("Get() error = %v, want SESSION_NOT_FOUND", err)
	}
}

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	token := &domain.TokenPayload{AccessToken: "tok-1"}
	if err := store.Save(ctx, "s1", token); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.AccessToken != "tok-1" {
		t.Errorf("Get() token = %q, want tok-1", got.AccessToken)
	}

	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, "s1"); !apperr.IsCode(err, apperr.CodeSessionNotFound) {
		t.Errorf("Get() after delete = %v, want SESSION_NOT_FOUND", err)
	}
}

func TestMemoryStoreDeleteIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete() of absent session = %v, want nil", err)
	}
	// Second logout of the same session is also a no-op.
	if err := store.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("second Delete() = %v, want nil", err)
	}
}

func TestMemoryStoreSaveOverwrites(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Save(ctx, "s1", &domain.TokenPayload{AccessToken: "old"})
	_ = store.Save(ctx, "s1", &domain.TokenPayload{AccessToken: "new"})

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.AccessToken != "new" {
		t.Errorf("Get() token = %q, want new", got.AccessToken)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n%8))
			_ = store.Save(ctx, id, &domain.TokenPayload{AccessToken: id})
			_, _ = store.Get(ctx, id)
			_ = store.Delete(ctx, id)
		}(i)
	}
	wg.Wait()
}
