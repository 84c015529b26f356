package strings_test

import (
	"testing"

	pstrings "boardstore/internal/platform/strings"
	"boardstore/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	def := []string{"POST", "OPTIONS"}
	if got := pstrings.IfEmpty(nil, def); len(got) != 2 {
		t.Fatalf("expected default slice, got %v", got)
	}
	in := []string{"GET"}
	if got := pstrings.IfEmpty(in, def); len(got) != 1 || got[0] != "GET" {
		t.Fatalf("expected input preserved, got %v", got)
	}
}

func TestMustString(t *testing.T) {
	if got := pstrings.MustString("importer", "name"); got != "importer" {
		t.Fatalf("got %q", got)
	}
	testkit.MustPanic(t, func() { pstrings.MustString("   ", "name") })
}

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"import":   "/import",
		"/import":  "/import",
		"/import/": "/import",
		" meta ":   "/meta",
	}
	for in, want := range cases {
		if got := pstrings.MustPrefix(in); got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
	}
	testkit.MustPanic(t, func() { pstrings.MustPrefix("  /  ") })
}

func TestPtrDeref(t *testing.T) {
	if pstrings.Ptr("") != nil {
		t.Fatalf("empty string should yield nil")
	}
	p := pstrings.Ptr("x")
	if pstrings.Deref(p) != "x" || pstrings.Deref(nil) != "" {
		t.Fatalf("ptr/deref roundtrip failed")
	}
}

func TestCollapse(t *testing.T) {
	if got := pstrings.Collapse("  ESP32   DevKit \n v1 "); got != "ESP32 DevKit v1" {
		t.Fatalf("got %q", got)
	}
}
