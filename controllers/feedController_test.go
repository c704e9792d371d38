package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"civictrack-be/feed"
	"civictrack-be/models"
	"civictrack-be/offline"
	"civictrack-be/repository"
)

func newFeedRouter(t *testing.T) (*gin.Engine, *offline.Cache) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemory(repository.DemoIssues(time.Now()))
	cache := offline.New(offline.NewMemoryStore(), repo.Ping)
	fc := NewFeedController(feed.New(repo, cache), cache)

	r := gin.New()
	r.GET("/api/issues", fc.ListIssues)
	r.GET("/api/status", fc.GetStatus)
	r.POST("/api/status/retry", fc.RetryConnection)
	return r, cache
}

type feedResponse struct {
	Issues      []models.Issue `json:"issues"`
	TotalIssues int            `json:"totalIssues"`
	Offline     bool           `json:"offline"`
}

func doFeedRequest(t *testing.T, r *gin.Engine, url string) (*httptest.ResponseRecorder, feedResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)

	var body feedResponse
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return w, body
}

func TestListIssuesDefaults(t *testing.T) {
	r, _ := newFeedRouter(t)

	w, body := doFeedRequest(t, r, "/api/issues")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if body.TotalIssues != 3 || body.Offline {
		t.Fatalf("unexpected response: %+v", body)
	}
}

func TestListIssuesSortAndViewer(t *testing.T) {
	r, _ := newFeedRouter(t)

	w, body := doFeedRequest(t, r, "/api/issues?lat=28.6139&lng=77.2090&distance=5&sort=upvotes")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(body.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(body.Issues))
	}
	if body.Issues[0].Upvotes != 15 {
		t.Fatalf("expected most upvoted first, got %d", body.Issues[0].Upvotes)
	}
	if body.Issues[0].Distance == nil {
		t.Fatal("expected distance attached when viewer location supplied")
	}
}

func TestListIssuesFilterValidation(t *testing.T) {
	r, _ := newFeedRouter(t)

	cases := []string{
		"/api/issues?status=bogus",
		"/api/issues?categories=bogus",
		"/api/issues?distance=0",
		"/api/issues?distance=11",
		"/api/issues?sort=bogus",
	}
	for _, url := range cases {
		w, _ := doFeedRequest(t, r, url)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", url, w.Code)
		}
	}
}

func TestListIssuesStatusFilter(t *testing.T) {
	r, _ := newFeedRouter(t)

	w, body := doFeedRequest(t, r, "/api/issues?status=resolved")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(body.Issues) != 1 || body.Issues[0].Status != models.Resolved {
		t.Fatalf("expected only the resolved issue, got %+v", body.Issues)
	}
}

func TestListIssuesOfflineFlag(t *testing.T) {
	r, cache := newFeedRouter(t)

	// Populate the snapshot, then drop connectivity.
	if w, _ := doFeedRequest(t, r, "/api/issues"); w.Code != http.StatusOK {
		t.Fatalf("warm-up request failed: %d", w.Code)
	}
	cache.MarkOffline()

	w, body := doFeedRequest(t, r, "/api/issues")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 offline, got %d", w.Code)
	}
	if !body.Offline {
		t.Fatal("expected offline flag set")
	}
	if len(body.Issues) != 3 {
		t.Fatalf("expected cached snapshot of 3, got %d", len(body.Issues))
	}
}

func TestRetryConnectionEndpoint(t *testing.T) {
	r, cache := newFeedRouter(t)
	cache.MarkOffline()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/status/retry", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Online bool   `json:"online"`
		State  string `json:"state"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// The memory repository's probe always succeeds.
	if !body.Online || body.State != string(offline.StateOnline) {
		t.Fatalf("expected online after retry, got %+v", body)
	}
}
