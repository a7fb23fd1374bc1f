package arena

import (
	"reflect"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestNormalizeChannelFromLegacy(t *testing.T) {
	ch := &Channel{
		ID:                42,
		Slug:              "tools-for-thought",
		Title:             "Tools for Thought",
		Class:             "Channel",
		Status:            "closed",
		Length:            intPtr(17),
		CollaboratorCount: intPtr(3),
		LegacyUser:        &legacyUser{Username: "jane", FullName: "Jane Doe", Avatar: "https://img/avatar.png"},
	}
	normalizeChannel(ch)

	if ch.Kind != KindChannel {
		t.Fatalf("kind = %q, want %q", ch.Kind, KindChannel)
	}
	if ch.Visibility != "closed" {
		t.Fatalf("visibility = %q, want closed", ch.Visibility)
	}
	if ch.Counts == nil {
		t.Fatal("counts not populated")
	}
	if ch.Counts.Blocks != 17 || ch.Counts.Channels != 0 || ch.Counts.Total != 17 || ch.Counts.Collaborators != 3 {
		t.Fatalf("counts = %+v", ch.Counts)
	}
	if ch.Owner == nil || ch.Owner.DisplayName != "Jane Doe" || ch.Owner.Slug != "jane" || ch.Owner.Initials != "" {
		t.Fatalf("owner = %+v", ch.Owner)
	}
}

func TestNormalizeChannelNoCollaboratorCount(t *testing.T) {
	ch := &Channel{Class: "Channel", Length: intPtr(5)}
	normalizeChannel(ch)
	if ch.Counts.Collaborators != 0 {
		t.Fatalf("collaborators = %d, want 0", ch.Counts.Collaborators)
	}
}

func TestNormalizeChannelOwnerFallsBackToUsername(t *testing.T) {
	ch := &Channel{Class: "Channel", LegacyUser: &legacyUser{Username: "jane"}}
	normalizeChannel(ch)
	if ch.Owner.DisplayName != "jane" {
		t.Fatalf("display name = %q, want username fallback", ch.Owner.DisplayName)
	}
}

func TestNormalizeUserFromLegacy(t *testing.T) {
	u := &User{
		ID:            7,
		Class:         "User",
		Username:      "jdoe",
		FullName:      "Jane Doe",
		ChannelCount:  intPtr(12),
		FollowerCount: intPtr(44),
	}
	normalizeUser(u)

	if u.Kind != KindUser {
		t.Fatalf("kind = %q", u.Kind)
	}
	if u.DisplayName != "Jane Doe" {
		t.Fatalf("display name = %q", u.DisplayName)
	}
	if u.Slug != "jdoe" {
		t.Fatalf("slug = %q", u.Slug)
	}
	if u.Counts == nil || u.Counts.Channels != 12 || u.Counts.Followers != 44 || u.Counts.Following != 0 {
		t.Fatalf("counts = %+v (absent legacy scalars must default to 0)", u.Counts)
	}
}

func TestNormalizeBlockRenamesDiscriminatorOnly(t *testing.T) {
	b := &Block{
		ID:    9,
		Class: "Link",
		Link:  &LinkPayload{URL: "https://example.com"},
	}
	normalizeBlock(b)
	if b.Kind != KindLink {
		t.Fatalf("kind = %q", b.Kind)
	}
	if b.Link == nil || b.Link.URL != "https://example.com" {
		t.Fatal("payload must pass through untouched")
	}
}

// Normalizing twice must be a no-op: every rule fires only when the
// canonical field is absent.
func TestNormalizeIdempotent(t *testing.T) {
	ch := &Channel{
		Class:             "Channel",
		Status:            "public",
		Length:            intPtr(8),
		CollaboratorCount: intPtr(1),
		LegacyUser:        &legacyUser{Username: "a", FullName: "A B"},
	}
	normalizeChannel(ch)
	once := *ch
	normalizeChannel(ch)
	if !reflect.DeepEqual(once, *ch) {
		t.Fatalf("second normalization changed the record:\n%+v\n%+v", once, *ch)
	}

	u := &User{Class: "User", Username: "x", FollowingCount: intPtr(2)}
	normalizeUser(u)
	onceU := *u
	normalizeUser(u)
	if !reflect.DeepEqual(onceU, *u) {
		t.Fatal("second user normalization changed the record")
	}
}

// An already-canonical record must not be altered even when legacy fields
// are also present.
func TestNormalizeCanonicalWins(t *testing.T) {
	ch := &Channel{
		Kind:       KindChannel,
		Visibility: "public",
		Counts:     &ChannelCounts{Blocks: 3, Channels: 2, Total: 5},
		Owner:      &User{DisplayName: "Canonical Owner"},
		Class:      "Channel",
		Status:     "private",
		Length:     intPtr(99),
		LegacyUser: &legacyUser{Username: "legacy"},
	}
	normalizeChannel(ch)
	if ch.Visibility != "public" || ch.Counts.Total != 5 || ch.Owner.DisplayName != "Canonical Owner" {
		t.Fatalf("canonical fields overwritten: %+v", ch)
	}
}
