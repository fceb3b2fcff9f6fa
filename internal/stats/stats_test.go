package stats

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func testLedger(t *testing.T) *Ledger {
	t.Helper()

	return New(filepath.Join(t.TempDir(), "stats.json"), zap.NewNop())
}

func TestTrackUserIsIdempotent(t *testing.T) {
	t.Parallel()

	l := testLedger(t)
	for i := 0; i < 3; i++ {
		if err := l.TrackUser(42); err != nil {
			t.Fatalf("TrackUser: %v", err)
		}
	}
	if err := l.TrackUser(43); err != nil {
		t.Fatalf("TrackUser: %v", err)
	}

	if got := l.Stats().Users; got != 2 {
		t.Fatalf("users = %d, want 2", got)
	}
}

func TestFreeQuota(t *testing.T) {
	t.Parallel()

	l := testLedger(t)

	if !l.CanUseFree(7, ActionCover) {
		t.Fatal("fresh user must have free cover quota")
	}
	if err := l.MarkFreeUsed(7, ActionCover); err != nil {
		t.Fatalf("MarkFreeUsed: %v", err)
	}
	if l.CanUseFree(7, ActionCover) {
		t.Error("cover quota must be exhausted after one use")
	}

	// Quotas are independent per action and per user.
	if !l.CanUseFree(7, ActionAdapt) {
		t.Error("adapt quota must be untouched")
	}
	if !l.CanUseFree(8, ActionCover) {
		t.Error("another user must keep their quota")
	}
}

func TestMarkFreeUsedUnknownAction(t *testing.T) {
	t.Parallel()

	l := testLedger(t)
	if err := l.MarkFreeUsed(1, "translate"); err == nil {
		t.Fatal("expected error for unknown action")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stats.json")

	first := New(path, zap.NewNop())
	if err := first.TrackUser(100); err != nil {
		t.Fatalf("TrackUser: %v", err)
	}
	if err := first.TrackSearch(); err != nil {
		t.Fatalf("TrackSearch: %v", err)
	}
	if err := first.TrackSearch(); err != nil {
		t.Fatalf("TrackSearch: %v", err)
	}
	if err := first.MarkFreeUsed(100, ActionCover); err != nil {
		t.Fatalf("MarkFreeUsed: %v", err)
	}

	second := New(path, zap.NewNop())
	second.Load()

	snap := second.Stats()
	if snap.Users != 1 || snap.TotalSearches != 2 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if second.CanUseFree(100, ActionCover) {
		t.Error("used quota must survive reload")
	}
	if !second.CanUseFree(100, ActionAdapt) {
		t.Error("unused quota must survive reload")
	}
}

func TestLoadCorruptFileStartsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stats.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	l := New(path, zap.NewNop())
	l.Load()
	if got := l.Stats(); got.Users != 0 || got.TotalSearches != 0 {
		t.Fatalf("snapshot = %+v, want empty", got)
	}
}
