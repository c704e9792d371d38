package repository

import (
	"context"
	"sync"
	"time"

	"civictrack-be/models"
)

// Memory is an in-memory IssueRepository used in development mode and
// tests. It is safe for concurrent use. An optional latency simulates the
// round trip a real backend would cost.
type Memory struct {
	latency time.Duration
	now     func() time.Time

	mu        sync.Mutex
	issues    []models.Issue
	reactions map[string]struct{}
}

// MemoryOption configures a Memory repository.
type MemoryOption func(*Memory)

// WithLatency makes List pause for d before returning, respecting context
// cancellation.
func WithLatency(d time.Duration) MemoryOption {
	return func(m *Memory) { m.latency = d }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// NewMemory returns a repository seeded with the given issues
// (most-recent-first, as List will return them).
func NewMemory(seed []models.Issue, opts ...MemoryOption) *Memory {
	m := &Memory{
		issues:    append([]models.Issue(nil), seed...),
		reactions: make(map[string]struct{}),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) List(ctx context.Context) ([]models.Issue, error) {
	if m.latency > 0 {
		select {
		case <-time.After(m.latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Issue, len(m.issues))
	copy(out, m.issues)
	return out, nil
}

func (m *Memory) Get(ctx context.Context, id string) (models.Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, is := range m.issues {
		if is.ID == id {
			return is, nil
		}
	}
	return models.Issue{}, ErrNotFound
}

func (m *Memory) Create(ctx context.Context, draft Draft) (models.Issue, error) {
	if err := ValidateDraft(draft); err != nil {
		return models.Issue{}, err
	}

	issue := NewIssue(draft, m.now())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.issues = append([]models.Issue{issue}, m.issues...)
	return issue, nil
}

func (m *Memory) Upvote(ctx context.Context, issueID, userID string) (int, error) {
	return m.react(issueID, userID, models.ReactionUpvote)
}

func (m *Memory) Flag(ctx context.Context, issueID, userID string) (int, error) {
	return m.react(issueID, userID, models.ReactionFlag)
}

func (m *Memory) react(issueID, userID string, kind models.ReactionKind) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := -1
	for i := range m.issues {
		if m.issues[i].ID == issueID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, ErrNotFound
	}

	key := issueID + "/" + userID + "/" + string(kind)
	if _, seen := m.reactions[key]; !seen {
		m.reactions[key] = struct{}{}
		switch kind {
		case models.ReactionUpvote:
			m.issues[idx].Upvotes++
		case models.ReactionFlag:
			m.issues[idx].FlagCount++
		}
	}

	if kind == models.ReactionUpvote {
		return m.issues[idx].Upvotes, nil
	}
	return m.issues[idx].FlagCount, nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }
