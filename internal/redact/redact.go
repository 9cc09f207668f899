// Package redact masks key material before it reaches audit logs.
package redact

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	neverPersistKey = "never_persist"
	redactedSecret  = "[REDACTED_SECRET]"
)

// sensitiveKeys are metadata names whose values are always masked.
var sensitiveKeys = map[string]struct{}{
	"key":      {},
	"key_hex":  {},
	"iv":       {},
	"secret":   {},
	"password": {},
}

var (
	kvSecretRe = regexp.MustCompile(`(?i)\b((?:key|iv|secret)(?:_hex)?\s*[:=]\s*)(['"]?)([A-Za-z0-9+/=_\-]{2,})(['"]?)`)
	longHexRe  = regexp.MustCompile(`\b[0-9A-Fa-f]{32,}\b`)
)

// String masks key=value assignments of key material and long hex runs.
func String(in string) string {
	if strings.TrimSpace(in) == "" {
		return in
	}
	masked := kvSecretRe.ReplaceAllString(in, `$1$2`+redactedSecret+`$4`)
	return longHexRe.ReplaceAllString(masked, redactedSecret)
}

// Map returns a copy of in with sensitive entries masked. Entries named in
// a "never_persist" list (comma separated string or slice) are masked as
// well, and the list itself is dropped.
func Map(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	extra := map[string]struct{}{}
	for k, v := range in {
		if strings.EqualFold(k, neverPersistKey) {
			for _, name := range collectNeverPersist(v) {
				extra[strings.ToLower(name)] = struct{}{}
			}
		}
	}

	out := make(map[string]any, len(in))
	for k, v := range in {
		lower := strings.ToLower(k)
		if lower == neverPersistKey {
			continue
		}
		_, sensitive := sensitiveKeys[lower]
		_, listed := extra[lower]
		if sensitive || listed {
			out[k] = redactedSecret
			continue
		}
		if s, ok := v.(string); ok {
			out[k] = String(s)
			continue
		}
		out[k] = v
	}
	return out
}

func collectNeverPersist(value any) []string {
	switch v := value.(type) {
	case string:
		var out []string
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			out = append(out, fmt.Sprint(elem))
		}
		return out
	default:
		return nil
	}
}
