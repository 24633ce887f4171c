package tools

import (
	"fmt"
	"regexp"
	"strings"
)

// Tool identifiers exposed to a model: lowercase [a-z0-9_-], max 64.
const (
	maxToolNameLen  = 64
	defaultToolName = "blueprint"
)

var (
	whitespaceRun    = regexp.MustCompile(`\s+`)
	invalidToolChars = regexp.MustCompile(`[^a-z0-9_-]`)
)

// SanitizeToolName converts a blueprint display name into a safe tool
// identifier.
func SanitizeToolName(name string) string {
	s := strings.ToLower(name)
	s = whitespaceRun.ReplaceAllString(s, "_")
	s = invalidToolChars.ReplaceAllString(s, "")
	if len(s) > maxToolNameLen {
		s = s[:maxToolNameLen]
	}
	if s == "" {
		return defaultToolName
	}
	return s
}

// DedupeToolNames appends _1, _2, … to repeated identifiers in encounter
// order, re-truncating when the suffix would overflow the limit. The
// suffix counter skips names already emitted, so a literal "run_1" in
// the input cannot be clobbered by a deduplicated "run".
func DedupeToolNames(names []string) []string {
	used := make(map[string]bool, len(names))
	count := make(map[string]int, len(names))
	out := make([]string, len(names))
	for i, name := range names {
		candidate := name
		for used[candidate] {
			count[name]++
			suffix := fmt.Sprintf("_%d", count[name])
			base := name
			if len(base)+len(suffix) > maxToolNameLen {
				base = base[:maxToolNameLen-len(suffix)]
			}
			candidate = base + suffix
		}
		used[candidate] = true
		out[i] = candidate
	}
	return out
}
