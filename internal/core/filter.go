package core

import "strings"

// SelectAllSentinel is the criterion value meaning "no filter" on a
// select field. Compared case-insensitively.
const SelectAllSentinel = "all"

// Matches evaluates a record against a set of active filter criteria.
// Every non-blank criterion must pass (logical AND); no active criteria
// matches every record. Matches is pure and holds no state between
// calls, so it is safe to re-run over the full record set on every
// filter change.
//
// Per-type rules:
//   - date: exact equality of DateOnly(raw) against the criterion; an
//     unparseable raw value fails the record.
//   - select: the "all" sentinel skips the field; otherwise
//     case-insensitive substring containment over the normalized value
//     (booleans as Yes/No).
//   - everything else: the same containment rule.
func Matches(rec Record, criteria FilterCriteria, registry *Registry, resolver *Resolver) bool {
	for _, d := range registry.Descriptors() {
		criterion := strings.TrimSpace(criteria[d.ID])
		if criterion == "" {
			continue
		}

		raw := resolver.RawValue(rec, d.ID)

		switch d.Type {
		case TypeDate:
			if DateOnly(raw) != criterion {
				return false
			}
		case TypeSelect:
			if strings.EqualFold(criterion, SelectAllSentinel) {
				continue
			}
			if !containsFold(stringify(raw), criterion) {
				return false
			}
		default:
			if !containsFold(stringify(raw), criterion) {
				return false
			}
		}
	}
	return true
}

// containsFold reports case-insensitive substring containment.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
