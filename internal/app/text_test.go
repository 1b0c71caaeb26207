package app

import "testing"

func TestGenreSlug(t *testing.T) {
	for in, want := range map[string]string{
		"Science Fiction":  "science-fiction",
		"Sci-Fi & Fantasy": "sci-fi-fantasy",
		"Comédie":          "comedie",
		"  Action  ":       "action",
		"":                 "",
	} {
		if got := GenreSlug(in); got != want {
			t.Fatalf("GenreSlug(%q): want %q, got %q", in, want, got)
		}
	}
}

func TestFormatters(t *testing.T) {
	if got := FormatRuntime(139); got != "2h 19m" {
		t.Fatalf("FormatRuntime: %q", got)
	}
	if got := FormatRuntime(0); got != "" {
		t.Fatalf("FormatRuntime(0): %q", got)
	}
	if got := FormatUSD(1234567); got != "$1,234,567" {
		t.Fatalf("FormatUSD: %q", got)
	}
	if got := FormatUSD(0); got != "N/A" {
		t.Fatalf("FormatUSD(0): %q", got)
	}
	if got := FormatRating(8.438); got != "8.4" {
		t.Fatalf("FormatRating: %q", got)
	}
}

func TestNormalizeQuery(t *testing.T) {
	// "e" + accent combinant devient "é" précomposé.
	if got := NormalizeQuery("  Ame\u0301lie \t poulain "); got != "Am\u00e9lie poulain" {
		t.Fatalf("NormalizeQuery: %q", got)
	}
}
