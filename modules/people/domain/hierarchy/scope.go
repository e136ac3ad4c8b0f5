package hierarchy

import "sort"

// Scope is a set of employee identities a viewer may observe.
type Scope map[string]struct{}

func NewScope(empIDs ...string) Scope {
	s := make(Scope, len(empIDs))
	for _, id := range empIDs {
		s.Add(id)
	}
	return s
}

func (s Scope) Add(empID string) {
	s[empID] = struct{}{}
}

func (s Scope) Contains(empID string) bool {
	_, ok := s[empID]
	return ok
}

func (s Scope) Len() int {
	return len(s)
}

// IDs returns the members in sorted order for stable SQL parameters and logs.
func (s Scope) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
