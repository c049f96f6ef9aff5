package classify

import "strings"

// Subtype describes one registered event specialization: how calls to a
// known API family are named and what operation they map to.
type Subtype struct {
	// Tag is matched as a substring of the request host. The empty tag is
	// reserved for the generic fallback.
	Tag string
	// Type is the resource type label and the event ID prefix.
	Type string
	// Operation extracts the logical action from the request.
	Operation func(req Request) string
	// Retype optionally overrides the resource type from request data.
	Retype func(req Request) string
}

// Registry is the ordered table of known subtypes. Populated once at
// process start and read concurrently by in-flight calls without
// synchronization.
type Registry struct {
	fallback Subtype
	entries  []Subtype
}

// NewRegistry creates a Registry with the given fallback and ordered
// entries.
func NewRegistry(fallback Subtype, entries ...Subtype) *Registry {
	return &Registry{fallback: fallback, entries: entries}
}

// Resolve picks the most specific subtype for a request host: the longest
// registered tag that is a substring of the host wins, equal lengths go to
// the earliest registered entry. No match yields the generic fallback.
func (r *Registry) Resolve(host string) Subtype {
	host = strings.ToLower(host)
	best := r.fallback
	bestLen := 0
	for _, st := range r.entries {
		if st.Tag == "" {
			continue
		}
		if strings.Contains(host, st.Tag) && len(st.Tag) > bestLen {
			best = st
			bestLen = len(st.Tag)
		}
	}
	return best
}

// Tags lists the registered tags in registration order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.entries))
	for _, st := range r.entries {
		tags = append(tags, st.Tag)
	}
	return tags
}
