package arena

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetChannelDecodesCanonicalRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/channels/tools-for-thought" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"id": 42, "slug": "tools-for-thought", "title": "Tools for Thought",
			"kind": "Channel", "visibility": "public",
			"counts": {"blocks": 10, "channels": 2, "total": 12, "collaborators": 1},
			"owner": {"id": 7, "kind": "User", "display_name": "Jane Doe", "slug": "jane"}
		}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	ch, err := c.GetChannel(context.Background(), "tools-for-thought")
	if err != nil {
		t.Fatalf("GetChannel: %v", err)
	}
	if ch.ID != 42 || ch.Kind != KindChannel || ch.Visibility != "public" {
		t.Fatalf("channel = %+v", ch)
	}
	if ch.Counts.Total != 12 || ch.Owner == nil || ch.Owner.DisplayName != "Jane Doe" {
		t.Fatalf("channel = %+v", ch)
	}
}

func TestGetChannelEscapesKey(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"id": 1}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.GetChannel(context.Background(), "weird%slug"); err != nil {
		t.Fatalf("GetChannel: %v", err)
	}
	if gotPath != "/channels/weird%25slug" {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestGetChannelRejectsBadKeys(t *testing.T) {
	c := testClient("http://unused")
	for _, key := range []string{"", "  ", "a/b", "a?b", "a#b"} {
		if _, err := c.GetChannel(context.Background(), key); err == nil {
			t.Fatalf("key %q accepted", key)
		}
	}
}

func TestGetChannelContentsMixedMembers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/channels/mixed/contents" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"length": 3, "per": 20, "current_page": 1, "total_pages": 1,
			"contents": [
				{"id": 1, "kind": "Text", "content": {"markdown": "# hi", "html": "<h1>hi</h1>", "plain": "hi"}, "position": 1, "pinned": true},
				{"id": 2, "kind": "Channel", "slug": "nested", "counts": {"blocks": 0, "channels": 0, "total": 0, "collaborators": 0}},
				{"id": 3, "kind": "Link", "source": {"url": "https://example.com"}, "position": 3}
			]
		}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	page, err := c.GetChannelContents(context.Background(), "mixed", PageOptions{})
	if err != nil {
		t.Fatalf("GetChannelContents: %v", err)
	}
	if len(page.Items) != 3 {
		t.Fatalf("items = %d", len(page.Items))
	}

	txt, ok := page.Items[0].(*Block)
	if !ok || txt.Kind != KindText {
		t.Fatalf("item 0 = %T %v", page.Items[0], page.Items[0])
	}
	if txt.Text == nil || txt.Text.Markdown != "# hi" {
		t.Fatalf("text payload = %+v", txt.Text)
	}
	if txt.Position != 1 || !txt.Pinned {
		t.Fatalf("membership fields = pos %d pinned %v", txt.Position, txt.Pinned)
	}
	if _, ok := page.Items[1].(*Channel); !ok {
		t.Fatalf("nested channel decoded as %T", page.Items[1])
	}
	lnk := page.Items[2].(*Block)
	if lnk.Link == nil || lnk.Link.URL != "https://example.com" {
		t.Fatalf("link payload = %+v", lnk.Link)
	}
	if page.ApproxTotal {
		t.Fatal("contents endpoint reports exact counts")
	}
}

func TestGetChannelContentsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.GetChannelContents(context.Background(), "nope", PageOptions{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Key != "nope" {
		t.Fatalf("err = %v", err)
	}
}

func TestGetChannelConnectionsPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/channels/hub/connections" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "2" || r.URL.Query().Get("per") != "5" {
			t.Errorf("query = %v", r.URL.Query())
		}
		_, _ = w.Write([]byte(`{
			"length": 12, "per": 5, "current_page": 2, "total_pages": 3,
			"channels": [
				{"id": 1, "kind": "Channel", "slug": "neighbor-a"},
				{"id": 2, "kind": "Channel", "slug": "neighbor-b"}
			]
		}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	page, err := c.GetChannelConnections(context.Background(), "hub", PageOptions{Page: 2, Per: 5})
	if err != nil {
		t.Fatalf("GetChannelConnections: %v", err)
	}
	if len(page.Items) != 2 || page.Items[0].Slug != "neighbor-a" {
		t.Fatalf("items = %+v", page.Items)
	}
	if page.Current != 2 || page.TotalCount != 12 || !page.HasMore {
		t.Fatalf("pagination = %+v", page.Pagination)
	}
	if page.Prev == nil || *page.Prev != 1 || page.Next == nil || *page.Next != 3 {
		t.Fatalf("prev/next = %v/%v", page.Prev, page.Next)
	}
}
