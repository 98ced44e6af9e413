// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForSiteRoot returns the hint shown when the feed was built without a
// usable site root.
func ForSiteRoot() string {
	return format("set site.root in blogkit.yaml, BLOGKIT_SITE_ROOT, or --site (e.g. https://example.com/)")
}

// ForContentDir returns hints for a missing or unreadable content directory.
func ForContentDir(dir string) string {
	if dir == "" {
		return format("set content.dir in blogkit.yaml or pass --content")
	}
	return format("check that " + dir + " exists and contains .md files")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/blogkit/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/blogkit.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/blogkit") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForExcludedDocuments returns a hint listing the front matter fields a
// feed entry needs.
func ForExcludedDocuments(count int) string {
	if count == 0 {
		return ""
	}
	return format("add title and publicationDate to the front matter of excluded documents")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
