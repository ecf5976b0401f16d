// Package labels maps machine keys (transaction types, payment methods) to
// display labels. Catalogs are plain maps supplied by the caller; an unknown
// key resolves to itself so new enum values never render blank.
package labels

// Catalog maps machine keys to display labels.
type Catalog map[string]string

// Resolve returns the catalog's label for key, or the raw key when the
// catalog has no entry (or is nil).
func Resolve(catalog Catalog, key string) string {
	if catalog == nil {
		return key
	}
	if label, ok := catalog[key]; ok && label != "" {
		return label
	}
	return key
}

// Merge overlays catalogs left to right into a new catalog.
func Merge(catalogs ...Catalog) Catalog {
	merged := Catalog{}
	for _, catalog := range catalogs {
		for key, label := range catalog {
			merged[key] = label
		}
	}
	return merged
}
