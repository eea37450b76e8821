package video

// GroupByAspectRatio partitions the catalog by canonical aspect ratio.
// Groups appear in the order their ratio is first seen and entries keep
// their catalog order within each group.
func GroupByAspectRatio(catalog Catalog) []Group {
	index := make(map[string]int)
	var groups []Group

	for _, entry := range catalog {
		key := entry.AspectRatio()
		if i, ok := index[key]; ok {
			groups[i].Entries = append(groups[i].Entries, entry)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, Group{Key: key, Entries: []VideoEntry{entry}})
	}

	return groups
}

// CombineAll returns the whole catalog as a single group together with the
// target resolution every member is scaled and padded to: the maximum width
// and the maximum height found in the catalog. An empty catalog yields no group.
func CombineAll(catalog Catalog) (Group, Resolution, bool) {
	if len(catalog) == 0 {
		return Group{}, Resolution{}, false
	}

	var target Resolution
	for _, entry := range catalog {
		target.Width = max(target.Width, entry.Width)
		target.Height = max(target.Height, entry.Height)
	}

	entries := make([]VideoEntry, len(catalog))
	copy(entries, catalog)

	return Group{Key: CombineAllKey, Entries: entries}, target, true
}
