package services

import "strings"

// NormalizeTypeNames turns raw type-name input into its canonical form:
// each entry trimmed and lower-cased, empty/whitespace-only entries
// dropped, duplicates removed keeping first-seen order.
//
// Returns nil when nothing remains - for a nil input and for an input
// that filters down to nothing alike. Callers treat nil as "no type
// change requested" and leave existing links untouched, so an explicit
// empty list does NOT clear a pokemon's types. Known ambiguity, kept
// deliberately: clearing would need a distinct signal.
func NormalizeTypeNames(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(raw))
	names := make([]string, 0, len(raw))
	for _, entry := range raw {
		name := strings.ToLower(strings.TrimSpace(entry))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	if len(names) == 0 {
		return nil
	}
	return names
}
