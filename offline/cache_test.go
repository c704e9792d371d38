package offline

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"civictrack-be/models"
	"civictrack-be/repository"
)

type failingStore struct{ err error }

func (s failingStore) Read(ctx context.Context) ([]byte, bool, error) { return nil, false, s.err }
func (s failingStore) Write(ctx context.Context, data []byte) error   { return s.err }
func (s failingStore) Delete(ctx context.Context) error              { return s.err }

func manyIssues(n int) []models.Issue {
	out := make([]models.Issue, n)
	for i := range out {
		out[i] = models.Issue{
			ID:       fmt.Sprintf("issue-%d", i),
			Title:    fmt.Sprintf("Issue %d", i),
			Category: models.Roads,
			Status:   models.Reported,
			Timeline: []models.StatusUpdate{{Status: models.Reported, Timestamp: time.Now(), UpdatedBy: "System"}},
		}
	}
	return out
}

func TestCacheIssuesTruncatesToTwenty(t *testing.T) {
	cache := New(NewMemoryStore(), nil)
	ctx := context.Background()

	cache.CacheIssues(ctx, manyIssues(25), nil)

	got := cache.CachedIssues(ctx)
	if len(got) != MaxCachedIssues {
		t.Fatalf("expected %d cached issues, got %d", MaxCachedIssues, len(got))
	}
	// The retained slice is the first 20 of the caller's order.
	for i := 0; i < MaxCachedIssues; i++ {
		want := fmt.Sprintf("issue-%d", i)
		if got[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, got[i].ID)
		}
	}
}

func TestCacheIssuesIdempotent(t *testing.T) {
	cache := New(NewMemoryStore(), nil)
	ctx := context.Background()
	input := manyIssues(3)

	cache.CacheIssues(ctx, input, nil)
	first := cache.CachedIssues(ctx)

	cache.CacheIssues(ctx, input, nil)
	second := cache.CachedIssues(ctx)

	if len(first) != len(second) || len(first) != 3 {
		t.Fatalf("expected identical snapshots of 3 issues, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("snapshot diverged at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestCacheRecordRoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 30, 0, 123e6, time.UTC)
	cache := New(NewMemoryStore(), nil, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	loc := &models.Location{Latitude: 28.6139, Longitude: 77.209, Address: "Sector 45"}
	seed := repository.DemoIssues(now)
	cache.CacheIssues(ctx, seed, loc)

	got := cache.CachedIssues(ctx)
	if len(got) != len(seed) {
		t.Fatalf("expected %d issues, got %d", len(seed), len(got))
	}
	for i := range seed {
		if got[i].ID != seed[i].ID {
			t.Fatalf("issue %d: expected %s, got %s", i, seed[i].ID, got[i].ID)
		}
		if !got[i].ReportedAt.Equal(seed[i].ReportedAt) {
			t.Fatalf("issue %s: reportedAt lost precision: %v vs %v", got[i].ID, got[i].ReportedAt, seed[i].ReportedAt)
		}
	}

	gotLoc := cache.CachedLocation(ctx)
	if gotLoc == nil || *gotLoc != *loc {
		t.Fatalf("expected location %+v, got %+v", loc, gotLoc)
	}

	last := cache.LastUpdate(ctx)
	if last == nil || !last.Equal(now) {
		t.Fatalf("expected lastUpdated %v, got %v", now, last)
	}
}

func TestCacheStripsPerViewDistance(t *testing.T) {
	cache := New(NewMemoryStore(), nil)
	ctx := context.Background()

	d := 1.5
	issues := manyIssues(1)
	issues[0].Distance = &d
	cache.CacheIssues(ctx, issues, nil)

	got := cache.CachedIssues(ctx)
	if got[0].Distance != nil {
		t.Fatalf("expected distance stripped from persisted record, got %v", *got[0].Distance)
	}
	// Caller's slice is untouched.
	if issues[0].Distance == nil {
		t.Fatal("caller slice should not be mutated")
	}
}

func TestCacheStorageFailuresDegrade(t *testing.T) {
	cache := New(failingStore{err: errors.New("quota exceeded")}, nil)
	ctx := context.Background()

	// None of these may panic or surface the error.
	cache.CacheIssues(ctx, manyIssues(2), nil)
	if got := cache.CachedIssues(ctx); len(got) != 0 {
		t.Fatalf("expected empty cache on storage failure, got %d", len(got))
	}
	if cache.LastUpdate(ctx) != nil {
		t.Fatal("expected nil last update on storage failure")
	}
	cache.ClearCache(ctx)
}

func TestCacheCorruptRecordIsAMiss(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Write(context.Background(), []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	cache := New(store, nil)

	if got := cache.CachedIssues(context.Background()); len(got) != 0 {
		t.Fatalf("expected corrupt record to read as empty, got %d", len(got))
	}
}

func TestClearCacheRemovesRecord(t *testing.T) {
	cache := New(NewMemoryStore(), nil)
	ctx := context.Background()

	cache.CacheIssues(ctx, manyIssues(2), nil)
	cache.ClearCache(ctx)

	if got := cache.CachedIssues(ctx); len(got) != 0 {
		t.Fatalf("expected empty cache after clear, got %d", len(got))
	}
	if cache.LastUpdate(ctx) != nil {
		t.Fatal("expected nil last update after clear")
	}
}

func TestConnectivityStateMachine(t *testing.T) {
	probeErr := errors.New("still unreachable")
	var probeResult error
	cache := New(NewMemoryStore(), func(ctx context.Context) error { return probeResult })

	if cache.State() != StateOnline {
		t.Fatalf("expected initial state online, got %s", cache.State())
	}

	cache.MarkOffline()
	if cache.State() != StateOffline {
		t.Fatalf("expected offline, got %s", cache.State())
	}

	// Failed retry is swallowed and leaves the cache offline.
	probeResult = probeErr
	if cache.RetryConnection(context.Background()) {
		t.Fatal("expected retry to fail")
	}
	if cache.State() != StateOffline {
		t.Fatalf("expected offline after failed retry, got %s", cache.State())
	}

	// Successful retry restores online.
	probeResult = nil
	if !cache.RetryConnection(context.Background()) {
		t.Fatal("expected retry to succeed")
	}
	if cache.State() != StateOnline {
		t.Fatalf("expected online after retry, got %s", cache.State())
	}

	cache.MarkOnline()
	if !cache.IsOnline() {
		t.Fatal("expected online")
	}
}

func TestRetryConnectionSwallowsProbePanic(t *testing.T) {
	cache := New(NewMemoryStore(), func(ctx context.Context) error { panic("boom") })
	cache.MarkOffline()

	if cache.RetryConnection(context.Background()) {
		t.Fatal("expected panicking probe to count as failure")
	}
	if cache.State() != StateOffline {
		t.Fatalf("expected offline, got %s", cache.State())
	}
}
