package naming

import (
	"strings"

	"github.com/google/uuid"
)

// Prefix is prepended to every generated server name.
const Prefix = "occopus"

// UniqueVM returns a fresh server name for a node of the given
// infrastructure. Empty parts are skipped.
func UniqueVM(infraID, nodeName string) string {
	parts := []string{Prefix}
	for _, p := range []string{infraID, nodeName} {
		if p = sanitize(p); p != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, Suffix())
	return strings.Join(parts, "-")
}

// Suffix returns eight random hex characters.
func Suffix() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}

func sanitize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '-'
		}
	}, s)
}
