package app

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var reHyphens = regexp.MustCompile(`-+`)

var usdPrinter = message.NewPrinter(language.AmericanEnglish)

// NormalizeQuery nettoie une saisie de recherche: NFC, espaces compactés.
func NormalizeQuery(q string) string {
	q = norm.NFC.String(q)
	return strings.Join(strings.Fields(q), " ")
}

// GenreSlug produit une forme ASCII stable ("Science Fiction" et
// "science-fiction" donnent "science-fiction", "Comédie" donne "comedie").
func GenreSlug(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	if s == "" {
		return ""
	}

	// Remove accents (NFD -> remove Mn -> NFC), puis translittération.
	tr := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(tr, s); err == nil {
		s = out
	}
	s = strings.ToLower(unidecode.Unidecode(s))

	b := strings.Builder{}
	b.Grow(len(s))
	for _, ch := range s {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
			b.WriteRune(ch)
		default:
			b.WriteRune('-')
		}
	}
	s = reHyphens.ReplaceAllString(b.String(), "-")
	return strings.Trim(s, "-")
}

// FormatRuntime: 139 -> "2h 19m".
func FormatRuntime(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	return strconv.Itoa(minutes/60) + "h " + strconv.Itoa(minutes%60) + "m"
}

// FormatUSD: 63000000 -> "$63,000,000"; 0 -> "N/A".
func FormatUSD(amount int64) string {
	if amount <= 0 {
		return "N/A"
	}
	return usdPrinter.Sprintf("$%d", amount)
}

// FormatRating: 8.4379 -> "8.4".
func FormatRating(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
