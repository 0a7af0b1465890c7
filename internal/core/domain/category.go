package domain

// CategoryGroup is the ordered set of annotations sharing a category.
type CategoryGroup struct {
	Category    string
	Annotations []Annotation
}

// GroupByCategory groups annotations by CategoryKey. Groups appear in the
// order their category is first seen; items keep their input order.
func GroupByCategory(annotations []Annotation) []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[string]int)

	for i := range annotations {
		key := annotations[i].CategoryKey()
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, CategoryGroup{Category: key})
		}
		groups[pos].Annotations = append(groups[pos].Annotations, annotations[i])
	}
	return groups
}
