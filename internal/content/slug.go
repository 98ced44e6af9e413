package content

import (
	"path"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// validSlug accepts lowercase ASCII path segments joined by '/'.
var validSlug = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*(/[a-z0-9][a-z0-9_-]*)*$`)

// ValidSlug reports whether s is usable as a URL path.
func ValidSlug(s string) bool {
	return validSlug.MatchString(s)
}

// SlugFromPath derives a slug from a slash-separated path relative to the
// content root: the extension is dropped, a trailing "index" names its
// directory, and each segment is folded to lowercase ASCII.
//
//	posts/Hello World.md   -> posts/hello-world
//	first-post/index.md    -> first-post
func SlugFromPath(p string) (string, error) {
	p = strings.TrimSuffix(p, path.Ext(p))
	segments := strings.Split(path.Clean(p), "/")
	if n := len(segments); n > 1 && segments[n-1] == "index" {
		segments = segments[:n-1]
	}

	for i, seg := range segments {
		segments[i] = slugSegment(seg)
	}
	slug := strings.Join(segments, "/")
	if !ValidSlug(slug) {
		return "", &Error{Source: p, Field: "slug", Err: ErrInvalidSlug}
	}
	return slug, nil
}

// slugSegment strips accents, lowercases, and turns separators into '-'.
func slugSegment(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = cases.Lower(language.Und).String(folded)

	var b strings.Builder
	pendingSep := false
	for _, r := range folded {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == '-' || r == '.' || unicode.IsSpace(r):
			pendingSep = true
		}
	}
	return b.String()
}
