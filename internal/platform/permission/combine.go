package permission

// Combine merges permission maps from multiple roles into the effective
// permission map: per resource, the union of every action set that any
// input grants. A user holds the broadest capability any of their roles
// grants.
//
// Zero maps yield an empty map; a single map is returned as an equal
// value. No implication rules are applied here; maps are normalized at
// write time.
func Combine(maps ...Map) Map {
	sets := make(map[string]map[Action]bool)
	for _, m := range maps {
		for resource, actions := range m {
			set, ok := sets[resource]
			if !ok {
				set = make(map[Action]bool)
				sets[resource] = set
			}
			for _, a := range actions {
				set[a] = true
			}
		}
	}

	out := make(Map, len(sets))
	for resource, set := range sets {
		out[resource] = canonical(set)
	}
	return out
}
