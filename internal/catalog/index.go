package catalog

func buildIndex(regions []Region) map[string]Region {
	idx := make(map[string]Region, len(regions))
	for _, r := range regions {
		idx[string(r)] = r
	}
	return idx
}
