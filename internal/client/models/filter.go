package models

// TypeAll is the Filter.Type value that matches every event type.
const TypeAll = "all"

// Filter narrows the catalog. Type is "all" or an EventType value; an
// unknown value matches nothing.
type Filter struct {
	Search string `json:"search"`
	Type   string `json:"type"`
}

// DefaultFilter matches every approved event.
func DefaultFilter() Filter {
	return Filter{Search: "", Type: TypeAll}
}

// FilterPatch changes only the non-nil fields of a Filter.
type FilterPatch struct {
	Search *string
	Type   *string
}

// Apply returns f with the fields of p merged in.
func (p FilterPatch) Apply(f Filter) Filter {
	if p.Search != nil {
		f.Search = *p.Search
	}
	if p.Type != nil {
		f.Type = *p.Type
	}
	return f
}
