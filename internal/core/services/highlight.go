package services

import (
	"sort"
	"sync"

	"github.com/custodia-labs/extractview/internal/core/domain"
)

// HighlightCoordinator marks the elements of both views that share an
// annotation id as active. It keeps an id → elements index that is
// rebuilt every time a region is registered, i.e. on every render.
type HighlightCoordinator struct {
	mu      sync.RWMutex
	regions map[domain.Region][]*domain.Element
	index   map[string][]*domain.Element
}

// NewHighlightCoordinator creates an empty coordinator.
func NewHighlightCoordinator() *HighlightCoordinator {
	return &HighlightCoordinator{
		regions: make(map[domain.Region][]*domain.Element),
		index:   make(map[string][]*domain.Element),
	}
}

// Register replaces the elements of region and rebuilds the index.
// Elements from an earlier render of the region are dropped.
func (c *HighlightCoordinator) Register(region domain.Region, elements []*domain.Element) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.regions[region] = elements
	c.rebuild()
}

// rebuild recomputes the index (caller must hold lock).
func (c *HighlightCoordinator) rebuild() {
	c.index = make(map[string][]*domain.Element)
	for _, elements := range c.regions {
		for _, el := range elements {
			if el == nil {
				continue
			}
			c.index[el.ID] = append(c.index[el.ID], el)
		}
	}
}

// Activate marks exactly the elements tagged with id as active, in every
// region, and clears all others. It returns the number of elements marked.
func (c *HighlightCoordinator) Activate(id string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clear()
	matches := c.index[id]
	for _, el := range matches {
		el.Active = true
	}
	return len(matches)
}

// Deactivate clears the active mark from every element.
func (c *HighlightCoordinator) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clear()
}

// clear resets all elements (caller must hold lock).
func (c *HighlightCoordinator) clear() {
	for _, elements := range c.regions {
		for _, el := range elements {
			if el != nil {
				el.Active = false
			}
		}
	}
}

// Active returns the sorted ids of elements currently marked active.
func (c *HighlightCoordinator) Active() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var ids []string
	for id, elements := range c.index {
		for _, el := range elements {
			if el.Active {
				ids = append(ids, id)
				break
			}
		}
	}
	sort.Strings(ids)
	return ids
}

// Elements returns the elements registered for id, across regions.
func (c *HighlightCoordinator) Elements(id string) []*domain.Element {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*domain.Element(nil), c.index[id]...)
}
