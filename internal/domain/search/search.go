// Package search holds the free-text search contract shared by the listing
// services: each searchable field is matched independently and the per-field
// results are unioned, deduplicated by primary key.
package search

// UnionByID merges per-field match groups into a single result. A row
// matching on several fields appears exactly once; first occurrence wins so
// the base ordering of the leading group is preserved.
func UnionByID[T any](id func(T) uint, groups ...[]T) []T {
	seen := make(map[uint]struct{})
	var result []T

	for _, group := range groups {
		for _, item := range group {
			key := id(item)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			result = append(result, item)
		}
	}
	return result
}
