// Package optiontree implements the path-addressable selection trees that
// movement and location modules are coded in.
package optiontree

import "strings"

const (
	// Delimiter separates path components.
	Delimiter = '>'
	// Escape protects a literal delimiter or escape character in a label.
	Escape = '\\'
)

// JoinPath joins labels into a path string, escaping any delimiter or escape
// characters inside a label.
func JoinPath(components ...string) string {
	var sb strings.Builder

	for i, c := range components {
		if i > 0 {
			sb.WriteRune(Delimiter)
		}

		for _, r := range c {
			if r == Delimiter || r == Escape {
				sb.WriteRune(Escape)
			}

			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// SplitPath splits a path string into its unescaped components. The empty
// path has no components.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}

	var (
		components []string
		current    strings.Builder
		escaped    bool
	)

	for _, r := range path {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == Escape:
			escaped = true
		case r == Delimiter:
			components = append(components, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}

	if escaped {
		// trailing escape is kept literally
		current.WriteRune(Escape)
	}

	return append(components, current.String())
}

// PathRoot returns the first component of path.
func PathRoot(path string) string {
	components := SplitPath(path)
	if len(components) == 0 {
		return ""
	}

	return components[0]
}

// IsPathPrefix reports whether every component of prefix matches the
// corresponding leading component of path. A path is a prefix of itself.
func IsPathPrefix(prefix, path string) bool {
	return hasPrefix(SplitPath(path), SplitPath(prefix))
}

func hasPrefix(components, prefix []string) bool {
	if len(prefix) > len(components) {
		return false
	}

	for i := range prefix {
		if components[i] != prefix[i] {
			return false
		}
	}

	return true
}

func hasSuffix(components, suffix []string) bool {
	if len(suffix) > len(components) {
		return false
	}

	offset := len(components) - len(suffix)
	for i := range suffix {
		if components[offset+i] != suffix[i] {
			return false
		}
	}

	return true
}

// HasPathSuffix reports whether the trailing components of path equal the
// components of suffix, which is how partially specified paths match.
func HasPathSuffix(path, suffix string) bool {
	s := SplitPath(suffix)

	return len(s) > 0 && hasSuffix(SplitPath(path), s)
}
