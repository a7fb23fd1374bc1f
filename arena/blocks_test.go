package arena

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetBlockDecodesPayloadByKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/blocks/12345" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"id": 12345, "kind": "Image", "title": "A photo",
			"image": {"url": "https://img/full.jpg", "thumb_url": "https://img/thumb.jpg"}
		}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	b, err := c.GetBlock(context.Background(), 12345)
	if err != nil {
		t.Fatalf("GetBlock: %v", err)
	}
	if b.Kind != KindImage {
		t.Fatalf("kind = %q", b.Kind)
	}
	img, ok := b.Body().(*ImagePayload)
	if !ok || img.URL != "https://img/full.jpg" {
		t.Fatalf("Body() = %T %+v", b.Body(), b.Body())
	}
}

func TestGetBlockRejectsNonPositiveIDs(t *testing.T) {
	c := testClient("http://unused")
	for _, id := range []int64{0, -1} {
		if _, err := c.GetBlock(context.Background(), id); err == nil {
			t.Fatalf("id %d accepted", id)
		}
	}
}

func TestGetBlockChannelsServedFromCache(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{
			"length": 1, "per": 20, "current_page": 1, "total_pages": 1,
			"channels": [{"id": 1, "kind": "Channel", "slug": "home"}]
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithPacing(time.Millisecond), WithCacheDir(t.TempDir()))
	ctx := context.Background()

	first, err := c.GetBlockChannels(ctx, 99, PageOptions{})
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := c.GetBlockChannels(ctx, 99, PageOptions{})
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if calls != 1 {
		t.Fatalf("backend hit %d times, want 1 (second call should be a cache hit)", calls)
	}
	fb, _ := json.Marshal(first)
	sb, _ := json.Marshal(second)
	if !bytes.Equal(fb, sb) {
		t.Fatal("cache hit returned a different result than the original fetch")
	}
}

func TestGetBlockChannelsDistinctPagesNotConflated(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"length": 0, "per": 20, "current_page": 1, "total_pages": 1, "channels": []}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithPacing(time.Millisecond), WithCacheDir(t.TempDir()))
	ctx := context.Background()

	if _, err := c.GetBlockChannels(ctx, 99, PageOptions{Page: 1}); err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if _, err := c.GetBlockChannels(ctx, 99, PageOptions{Page: 2}); err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if calls != 2 {
		t.Fatalf("backend hit %d times, want 2 (different pages are different records)", calls)
	}
}

func TestGetBlockChannelsErrorsNotCached(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"length": 0, "per": 20, "current_page": 1, "total_pages": 1, "channels": []}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithPacing(time.Millisecond), WithCacheDir(t.TempDir()))
	ctx := context.Background()

	if _, err := c.GetBlockChannels(ctx, 99, PageOptions{}); err == nil {
		t.Fatal("expected first call to fail")
	}
	if _, err := c.GetBlockChannels(ctx, 99, PageOptions{}); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if calls != 2 {
		t.Fatalf("backend hit %d times, want 2 (failures must not be cached)", calls)
	}
}
