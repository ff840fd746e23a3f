package shared

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugReplacer = strings.NewReplacer("&", " and ", "'", "", "’", "")

// Slugify turns a display name into a URL-safe lowercase slug.
// Diacritics are stripped ("Électronique" -> "electronique") and every run
// of characters other than letters and digits becomes a single hyphen.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = slugReplacer.Replace(strings.ToLower(folded))

	var b strings.Builder
	b.Grow(len(folded))
	pendingDash := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// SlugifyMax is Slugify capped at max runes. A cut never leaves a trailing hyphen.
func SlugifyMax(s string, max int) string {
	slug := Slugify(s)
	if max <= 0 || utf8.RuneCountInString(slug) <= max {
		return slug
	}
	n := 0
	for i := range slug {
		if n == max {
			slug = slug[:i]
			break
		}
		n++
	}
	return strings.TrimRight(slug, "-")
}
