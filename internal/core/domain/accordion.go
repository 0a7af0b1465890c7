package domain

const (
	// IndicatorExpanded marks an expanded outline section.
	IndicatorExpanded = "▼"

	// IndicatorCollapsed marks a collapsed outline section.
	IndicatorCollapsed = "►"
)

// AccordionState holds the expanded/collapsed flag of each outline category.
// It is owned by the caller and passed to the outline renderer explicitly.
type AccordionState struct {
	defaultExpanded bool
	expanded        map[string]bool

	// configured holds per-category defaults that outlive Retain.
	configured map[string]bool
}

// NewAccordionState creates an empty state. Categories seen for the first
// time take defaultExpanded.
func NewAccordionState(defaultExpanded bool) *AccordionState {
	return &AccordionState{
		defaultExpanded: defaultExpanded,
		expanded:        make(map[string]bool),
		configured:      make(map[string]bool),
	}
}

// Configure sets the flag category takes whenever it starts being tracked,
// including after Retain has dropped it.
func (s *AccordionState) Configure(category string, expanded bool) {
	s.configured[category] = expanded
}

// initial returns the flag an untracked category starts with.
func (s *AccordionState) initial(category string) bool {
	if v, ok := s.configured[category]; ok {
		return v
	}
	return s.defaultExpanded
}

// Ensure adds category with its configured or default flag if it is not
// tracked yet.
func (s *AccordionState) Ensure(category string) {
	if _, ok := s.expanded[category]; !ok {
		s.expanded[category] = s.initial(category)
	}
}

// Expanded reports whether category is expanded. Untracked categories
// report the flag Ensure would give them.
func (s *AccordionState) Expanded(category string) bool {
	v, ok := s.expanded[category]
	if !ok {
		return s.initial(category)
	}
	return v
}

// Known reports whether category has been tracked.
func (s *AccordionState) Known(category string) bool {
	_, ok := s.expanded[category]
	return ok
}

// Set forces the flag for category.
func (s *AccordionState) Set(category string, expanded bool) {
	s.expanded[category] = expanded
}

// Toggle flips category and returns the new flag.
func (s *AccordionState) Toggle(category string) bool {
	s.Ensure(category)
	s.expanded[category] = !s.expanded[category]
	return s.expanded[category]
}

// Retain drops categories not present in keep. Configured flags are kept.
func (s *AccordionState) Retain(keep []string) {
	live := make(map[string]bool, len(keep))
	for _, k := range keep {
		live[k] = true
	}
	for k := range s.expanded {
		if !live[k] {
			delete(s.expanded, k)
		}
	}
}

// Indicator returns the glyph for category's current state.
func (s *AccordionState) Indicator(category string) string {
	if s.Expanded(category) {
		return IndicatorExpanded
	}
	return IndicatorCollapsed
}
