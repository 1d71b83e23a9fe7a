package differ

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)
	repeatedUnderscores = regexp.MustCompile(`_+`)
)

const maxFilenameStem = 120

// SanitizeFilename turns an arbitrary string into a safe file name stem.
func SanitizeFilename(input string) string {
	name := input
	if i := strings.Index(name, "://"); i != -1 {
		name = name[i+3:]
	}
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.ReplaceAll(name, "..", "_")
	name = repeatedUnderscores.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_.")
	if len(name) > maxFilenameStem {
		name = strings.TrimRight(name[:maxFilenameStem], "_.")
	}
	if name == "" {
		return "resource"
	}
	return name
}

// ArtifactFilename names the diff document for identifier as
// diff_<host-path>.html. Query and fragment are not part of the name.
func ArtifactFilename(identifier string) string {
	stem := identifier
	if u, err := url.Parse(identifier); err == nil && u.Host != "" {
		stem = u.Host + u.EscapedPath()
	}
	return "diff_" + SanitizeFilename(stem) + ".html"
}
