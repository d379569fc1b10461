package programs

import "strings"

// Filter holds the optional in-memory predicates applied after a fetch.
// Nil or empty fields are ignored.
type Filter struct {
	Online       *bool
	WithPresence *bool
	Language     string
}

// Matches reports whether p satisfies every set predicate
func (f Filter) Matches(p Program) bool {
	if f.Online != nil && p.Flag("is_online") != *f.Online {
		return false
	}

	if f.WithPresence != nil && p.Flag("is_sadhguru") != *f.WithPresence {
		return false
	}

	if f.Language != "" {
		language, _ := p.Field("language")
		if !strings.Contains(strings.ToLower(language), strings.ToLower(f.Language)) {
			return false
		}
	}

	return true
}

// Apply returns the matching programs in input order, stopping as soon as
// limit programs have been kept.
func (f Filter) Apply(programs []Program, limit int) []Program {
	matched := make([]Program, 0, min(len(programs), max(limit, 0)))
	if limit <= 0 {
		return matched
	}

	for _, p := range programs {
		if !f.Matches(p) {
			continue
		}

		matched = append(matched, p)
		if len(matched) >= limit {
			break
		}
	}

	return matched
}
