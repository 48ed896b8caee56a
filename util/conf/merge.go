package conf

// MergeDefaults merges component default maps into base, prefixing
// their keys with the component's namespace.
func MergeDefaults[M ~map[string]V, V any](base M, ns string, maps ...M) M {
	fullCap := len(base)
	for _, m := range maps {
		fullCap += len(m)
	}

	merged := make(M, fullCap)
	for key, val := range base {
		merged[key] = val
	}
	for _, m := range maps {
		for key, val := range m {
			merged[ns+"."+key] = val
		}
	}

	return merged
}
