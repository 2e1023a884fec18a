package posts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/studiowebux/postboard/internal/fixture"
	"github.com/studiowebux/postboard/internal/types"
)

type memRecorder struct {
	mu      sync.Mutex
	entries []types.FetchRequest
	results []types.FetchResult
}

func (r *memRecorder) Save(req *types.FetchRequest, result *types.FetchResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *req)
	r.results = append(r.results, *result)
	return nil
}

func newFixture(t *testing.T, posts []types.Post, opts ...fixture.Option) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(fixture.NewServer(posts, opts...).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_ListPreservesServerOrder(t *testing.T) {
	srv := newFixture(t, []types.Post{
		{ID: 3, Title: "c"},
		{ID: 1, Title: "a"},
		{ID: 2, Title: "b"},
	})
	c := New(srv.URL+"/", "/posts/")

	got, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []int{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("got[%d].ID = %d, want %d", i, got[i].ID, id)
		}
	}
}

func TestClient_Get(t *testing.T) {
	srv := newFixture(t, fixture.Generate(5))
	c := New(srv.URL, "posts")

	post, err := c.Get(context.Background(), 4)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if post.ID != 4 || post.Title != "post 4" {
		t.Errorf("post = %+v", post)
	}
}

func TestClient_GetNotFound(t *testing.T) {
	srv := newFixture(t, fixture.Generate(5))
	c := New(srv.URL, "posts")

	_, err := c.Get(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "posts").List(context.Background())
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if statusErr.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d", statusErr.Status)
	}
}

func TestClient_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	if _, err := New(srv.URL, "posts").List(context.Background()); err == nil {
		t.Error("expected decode error")
	}
}

func TestClient_TimeoutIsAnError(t *testing.T) {
	srv := newFixture(t, fixture.Generate(1), fixture.WithDelay(500*time.Millisecond))
	c := New(srv.URL, "posts", WithTimeout(20*time.Millisecond))

	if _, err := c.List(context.Background()); err == nil {
		t.Error("expected timeout error")
	}
}

func TestClient_RecordsEveryRead(t *testing.T) {
	srv := newFixture(t, fixture.Generate(2))
	rec := &memRecorder{}
	c := New(srv.URL, "posts", WithRecorder(rec))

	c.List(context.Background())
	c.Get(context.Background(), 1)
	c.Get(context.Background(), 77)

	if len(rec.entries) != 3 {
		t.Fatalf("recorded %d reads, want 3", len(rec.entries))
	}
	if rec.entries[0].Name != "list" || rec.entries[1].Name != "detail" {
		t.Errorf("names = %q, %q", rec.entries[0].Name, rec.entries[1].Name)
	}
	if rec.entries[2].URL != srv.URL+"/posts/77" {
		t.Errorf("URL = %q", rec.entries[2].URL)
	}
	if rec.results[2].Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.results[2].Status)
	}
}
