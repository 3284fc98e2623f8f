package session

import (
	"context"
	"testing"
	"time"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
)

func testSession() domain.Session {
	return domain.Session{
		User:  &domain.User{ID: 1, Username: "amina", Role: domain.RoleCitizen},
		Token: "tok",
	}
}

func TestMemoryStore_SetLoadClear(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	if sess, err := store.Load(ctx, "absent"); err != nil || !sess.IsEmpty() {
		t.Fatalf("absent sid must load empty, got %+v err=%v", sess, err)
	}

	if err := store.Set(ctx, "sid-1", testSession()); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	sess, err := store.Load(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if sess.IsEmpty() || sess.User.Username != "amina" || sess.Token != "tok" {
		t.Fatalf("loaded session incomplete: %+v", sess)
	}

	if err := store.Clear(ctx, "sid-1"); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if sess, _ := store.Load(ctx, "sid-1"); !sess.IsEmpty() {
		t.Fatalf("cleared session still loads: %+v", sess)
	}

	// Clearing again is a no-op.
	if err := store.Clear(ctx, "sid-1"); err != nil {
		t.Fatalf("repeat Clear returned error: %v", err)
	}
}

func TestMemoryStore_ReplaceIsWholesale(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	if err := store.Set(ctx, "sid-1", testSession()); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	replacement := domain.Session{
		User:  &domain.User{ID: 2, Username: "root", Role: domain.RoleAdmin},
		Token: "tok-2",
	}
	if err := store.Set(ctx, "sid-1", replacement); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	sess, _ := store.Load(ctx, "sid-1")
	if sess.User.Username != "root" || sess.Token != "tok-2" {
		t.Fatalf("replacement not wholesale: %+v", sess)
	}
	if store.Len() != 1 {
		t.Fatalf("replace must not grow the store")
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Millisecond)
	ctx := context.Background()

	if err := store.Set(ctx, "sid-1", testSession()); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if sess, _ := store.Load(ctx, "sid-1"); !sess.IsEmpty() {
		t.Fatalf("expired session must load empty: %+v", sess)
	}
}
