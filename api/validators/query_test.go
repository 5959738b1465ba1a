package validators

import (
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestParseQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/orders?limit=25", nil)
	got, err := ParseQueryInt(r, "limit", 20, 1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 25 {
		t.Fatalf("limit = %d, want 25", got)
	}

	r = httptest.NewRequest("GET", "/api/v1/orders", nil)
	got, err = ParseQueryInt(r, "limit", 20, 1, 100)
	if err != nil || got != 20 {
		t.Fatalf("default = %d, err = %v", got, err)
	}

	r = httptest.NewRequest("GET", "/api/v1/orders?limit=abc", nil)
	if _, err = ParseQueryInt(r, "limit", 20, 1, 100); err == nil {
		t.Fatal("expected error for non-numeric value")
	}

	r = httptest.NewRequest("GET", "/api/v1/orders?limit=500", nil)
	if _, err = ParseQueryInt(r, "limit", 20, 1, 100); err == nil {
		t.Fatal("expected error for out-of-range value")
	}
}

func TestSanitizeStringTrimsAndCaps(t *testing.T) {
	if got := SanitizeString("  chemise  ", 100); got != "chemise" {
		t.Fatalf("got %q", got)
	}
	if got := SanitizeString("abcdef", 4); got != "abcd" {
		t.Fatalf("got %q", got)
	}
	if got := SanitizeString("abc", 0); got != "abc" {
		t.Fatalf("unlimited cap mangled input: %q", got)
	}
}

func TestSanitizeStringKeepsRunesIntact(t *testing.T) {
	// "é" is two bytes; a byte-boundary cut at 5 would split it.
	input := "thé légère"
	got := SanitizeString(input, 5)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}
	if got != "thé " {
		t.Fatalf("got %q, want %q", got, "thé ")
	}

	long := strings.Repeat("é", 150)
	got = SanitizeString(long, 201)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}
	if len(got) != 200 {
		t.Fatalf("len = %d, want 200", len(got))
	}
}
