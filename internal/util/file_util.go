package util

import (
	"path"
	"regexp"
	"strings"
)

var partRe = regexp.MustCompile(`[^a-z0-9_\-]`)

func SanitizePart(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = partRe.ReplaceAllString(s, "")
	if s == "" {
		return "unknown"
	}
	return s
}

func ExtFromFilenameOrMime(filename, mime string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext != "" {
		return ext
	}
	switch strings.ToLower(mime) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/heic":
		return ".heic"
	case "application/pdf":
		return ".pdf"
	case "text/plain":
		return ".txt"
	default:
		return ".bin"
	}
}

// SafeBaseName strips the extension and sanitizes what remains so it can be
// embedded in a storage object path.
func SafeBaseName(name string) string {
	name = strings.TrimSpace(name)
	ext := path.Ext(name)
	base := strings.TrimSpace(strings.TrimSuffix(name, ext))
	base = SanitizePart(base)
	if base == "" {
		base = "file"
	}
	return base
}
