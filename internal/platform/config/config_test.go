package config_test

import (
	"testing"
	"time"

	"boardstore/internal/platform/config"
	"boardstore/internal/platform/testkit"
)

func TestPrefixComposition(t *testing.T) {
	t.Setenv("AMAZON_US_ACCESS_KEY", "AKIDEXAMPLE")

	cfg := config.New().Prefix("AMAZON_").Prefix("US_")
	if got := cfg.MustString("ACCESS_KEY"); got != "AKIDEXAMPLE" {
		t.Fatalf("expected composed prefix lookup, got %q", got)
	}
}

func TestMustStringPanicsOnMissing(t *testing.T) {
	cfg := config.New().Prefix("BOARDSTORE_TEST_NOPE_")
	testkit.MustPanic(t, func() { cfg.MustString("MISSING") })
}

func TestHas(t *testing.T) {
	t.Setenv("IMPORTER_TEST_SECRET", "  ")
	cfg := config.New().Prefix("IMPORTER_TEST_")
	if cfg.Has("SECRET") {
		t.Fatalf("whitespace-only should count as absent")
	}
	t.Setenv("IMPORTER_TEST_SECRET", "v")
	if !cfg.Has("SECRET") {
		t.Fatalf("expected present")
	}
}

func TestMayHelpersFallBack(t *testing.T) {
	cfg := config.New().Prefix("BOARDSTORE_TEST_")

	if got := cfg.MayString("NAME", "def"); got != "def" {
		t.Fatalf("MayString default: %q", got)
	}
	if got := cfg.MayInt("COUNT", 7); got != 7 {
		t.Fatalf("MayInt default: %d", got)
	}
	if got := cfg.MayBool("FLAG", true); !got {
		t.Fatalf("MayBool default")
	}
	if got := cfg.MayDuration("COOLDOWN", 30*time.Second); got != 30*time.Second {
		t.Fatalf("MayDuration default: %v", got)
	}

	t.Setenv("BOARDSTORE_TEST_COUNT", "not-a-number")
	if got := cfg.MayInt("COUNT", 7); got != 7 {
		t.Fatalf("invalid int should fall back, got %d", got)
	}

	t.Setenv("BOARDSTORE_TEST_COOLDOWN", "45s")
	if got := cfg.MayDuration("COOLDOWN", time.Second); got != 45*time.Second {
		t.Fatalf("MayDuration parse: %v", got)
	}
}

func TestMayCSV(t *testing.T) {
	cfg := config.New().Prefix("BOARDSTORE_TEST_")
	t.Setenv("BOARDSTORE_TEST_ORIGINS", " https://a.example , ,https://b.example ")
	got := cfg.MayCSV("ORIGINS", nil)
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("unexpected csv parse: %v", got)
	}
	if def := cfg.MayCSV("EMPTY", []string{"*"}); len(def) != 1 || def[0] != "*" {
		t.Fatalf("expected default, got %v", def)
	}
}
