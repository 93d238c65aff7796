package permission

// Normalize applies the action implication rules to a permission map and
// returns a new map; the input is never mutated.
//
// For every resource:
//   - any of create/update/delete implies read (writing without reading
//     is meaningless);
//   - any of create/delete implies update (the broader capabilities
//     subsume the narrower one).
//
// Normalize is idempotent: Normalize(Normalize(m)) == Normalize(m).
func Normalize(m Map) Map {
	out := make(Map, len(m))
	for resource, actions := range m {
		set := toSet(actions)

		if set[ActionCreate] || set[ActionDelete] {
			set[ActionUpdate] = true
		}
		if set[ActionCreate] || set[ActionUpdate] || set[ActionDelete] {
			set[ActionRead] = true
		}

		out[resource] = canonical(set)
	}
	return out
}
