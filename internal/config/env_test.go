package config

import (
	"testing"
	"time"
)

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{" on ", true},
		{"OFF", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestIntEnvOrDefault(t *testing.T) {
	cases := []struct {
		val      string
		expected int
	}{
		{"", 7},
		{"12", 12},
		{"0", 7},
		{"-3", 7},
		{"many", 7},
	}

	for _, tc := range cases {
		t.Setenv("INT_TEST", tc.val)
		if got := intEnvOrDefault("INT_TEST", 7); got != tc.expected {
			t.Fatalf("expected %d for %q, got %d", tc.expected, tc.val, got)
		}
	}
}

func TestDurationEnvOrDefault(t *testing.T) {
	t.Setenv("DURATION_TEST", "90s")
	if got := durationEnvOrDefault("DURATION_TEST", time.Minute); got != 90*time.Second {
		t.Fatalf("expected 90s, got %s", got)
	}

	t.Setenv("DURATION_TEST", "-1s")
	if got := durationEnvOrDefault("DURATION_TEST", time.Minute); got != time.Minute {
		t.Fatalf("expected default for negative duration, got %s", got)
	}
}

func TestEnvOrDefaultTreatsBlankAsUnset(t *testing.T) {
	t.Setenv("STRING_TEST", "   ")
	if got := envOrDefault("STRING_TEST", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for blank value, got %q", got)
	}

	t.Setenv("STRING_TEST", "  value ")
	if got := envOrDefault("STRING_TEST", "fallback"); got != "value" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}
