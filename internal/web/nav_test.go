package web

import (
	"testing"

	"github.com/beanhall/beanhall/internal/account"
)

func TestBuildNavAnonymous(t *testing.T) {
	nav := buildNav(nil, "home")

	got := make([]string, 0, len(nav))
	for _, item := range nav {
		got = append(got, item.ID)
	}
	want := []string{"home", "catalog", "about", "login", "register"}
	if len(got) != len(want) {
		t.Fatalf("nav = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("nav[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if !nav[0].Active {
		t.Fatal("expected home entry to be active")
	}
	if nav[1].Active {
		t.Fatal("expected catalog entry to be inactive")
	}
}

func TestBuildNavAuthenticated(t *testing.T) {
	identity := &account.Identity{AccountID: "acct-1", Username: "nadia"}
	nav := buildNav(identity, "catalog")

	got := make([]string, 0, len(nav))
	for _, item := range nav {
		got = append(got, item.ID)
	}
	want := []string{"home", "catalog", "about", "logout"}
	if len(got) != len(want) {
		t.Fatalf("nav = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("nav[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if nav[len(nav)-1].URL != "/logout" {
		t.Fatalf("logout url = %q, want %q", nav[len(nav)-1].URL, "/logout")
	}
}

func TestBuildNavPreservesOrderAcrossStates(t *testing.T) {
	anonymous := buildNav(nil, "about")
	authed := buildNav(&account.Identity{AccountID: "a", Username: "u"}, "about")

	// The shared prefix must be identical in both states.
	shared := []string{"home", "catalog", "about"}
	for i, id := range shared {
		if anonymous[i].ID != id || authed[i].ID != id {
			t.Fatalf("shared nav prefix diverged at %d: %q vs %q", i, anonymous[i].ID, authed[i].ID)
		}
	}
}
