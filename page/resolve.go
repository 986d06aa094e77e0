package page

import (
	"errors"
	"net/url"
	"path"
	"strings"
)

// DefaultPage is served when the caller does not name a page.
const DefaultPage = "playground.html"

var ErrInvalidPath = errors.New("invalid page path")

// Resolve maps a page reference (full URL, path or empty) to a clean path
// relative to the public root. References that would climb out of the root
// are rejected with ErrInvalidPath.
func Resolve(input string) (string, error) {
	candidate := strings.TrimSpace(input)
	if candidate == "" {
		return DefaultPage, nil
	}

	escaped := false
	if u, err := url.Parse(candidate); err == nil {
		candidate = u.EscapedPath()
		if u.Opaque != "" {
			candidate = u.Opaque
		}
		escaped = true
	}

	if i := strings.IndexAny(candidate, "?#"); i >= 0 {
		candidate = candidate[:i]
	}
	// decode only after the suffix strip so %3F and %23 stay part of the name
	if escaped {
		if decoded, err := url.PathUnescape(candidate); err == nil {
			candidate = decoded
		}
	}
	candidate = strings.TrimLeft(candidate, "/")

	cleaned := path.Clean(candidate)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") || path.IsAbs(cleaned) {
		return "", ErrInvalidPath
	}
	if cleaned == "." {
		return DefaultPage, nil
	}
	return cleaned, nil
}
