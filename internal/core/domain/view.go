package domain

// Region identifies which rendered view an element belongs to.
type Region string

const (
	// RegionDocument is the document-with-highlights view.
	RegionDocument Region = "document"

	// RegionOutline is the categorised outline view.
	RegionOutline Region = "outline"
)

// String returns the string representation of the region.
func (r Region) String() string {
	return string(r)
}

// Element is a highlightable element in a rendered view. Elements are
// recreated on every render; the highlight coordinator toggles Active.
type Element struct {
	// Region is the view the element lives in.
	Region Region

	// ID is the annotation id the element represents.
	ID string

	// Method is the annotation's extraction method.
	Method string

	// Active is true while the element is highlighted.
	Active bool
}

// FragmentKind distinguishes literal text from highlighted spans.
type FragmentKind int

const (
	// FragmentText is literal document text.
	FragmentText FragmentKind = iota

	// FragmentHighlight is an annotation span.
	FragmentHighlight
)

// Fragment is one displayed piece of the document view.
type Fragment struct {
	Kind FragmentKind

	// Text is the unescaped text to display.
	Text string

	// Element is set for FragmentHighlight.
	Element *Element
}

// DocumentView is the rendered document: fragments in display order.
type DocumentView struct {
	Title     string
	Fragments []Fragment

	// Rejected lists annotations that could not be placed.
	Rejected []Rejection
}

// Elements returns the highlight elements in display order.
func (v *DocumentView) Elements() []*Element {
	if v == nil {
		return nil
	}
	var out []*Element
	for i := range v.Fragments {
		if v.Fragments[i].Element != nil {
			out = append(out, v.Fragments[i].Element)
		}
	}
	return out
}

// PlainText concatenates every fragment's visible text.
func (v *DocumentView) PlainText() string {
	if v == nil {
		return ""
	}
	n := 0
	for i := range v.Fragments {
		n += len(v.Fragments[i].Text)
	}
	buf := make([]byte, 0, n)
	for i := range v.Fragments {
		buf = append(buf, v.Fragments[i].Text...)
	}
	return string(buf)
}

// OutlineItem is one annotation row of the outline.
type OutlineItem struct {
	Label      string
	Value      string
	Confidence string
	Element    *Element
}

// OutlineSection is one category of the outline.
type OutlineSection struct {
	// Category is the grouping key.
	Category string

	// Label is the humanised category name.
	Label string

	// Expanded reports whether the items are visible.
	Expanded bool

	// Indicator is the expand/collapse glyph.
	Indicator string

	// Items are kept even when the section is collapsed.
	Items []OutlineItem
}

// OutlineView is the rendered outline.
type OutlineView struct {
	Sections []OutlineSection
}

// Elements returns every item element, hidden ones included.
func (v *OutlineView) Elements() []*Element {
	if v == nil {
		return nil
	}
	var out []*Element
	for i := range v.Sections {
		for j := range v.Sections[i].Items {
			out = append(out, v.Sections[i].Items[j].Element)
		}
	}
	return out
}

// Section returns the section for category.
func (v *OutlineView) Section(category string) (*OutlineSection, bool) {
	if v == nil {
		return nil, false
	}
	for i := range v.Sections {
		if v.Sections[i].Category == category {
			return &v.Sections[i], true
		}
	}
	return nil, false
}
