// Package permission defines the permission map value type and the pure
// functions operating on it: action implication and role combination.
package permission

import "fmt"

// Action is a single capability on a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// actionOrder is the canonical ordering used when materializing action
// sets, keeping stored and combined maps deterministic.
var actionOrder = []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete}

// ParseAction validates an action token.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionRead, ActionCreate, ActionUpdate, ActionDelete:
		return Action(s), true
	}
	return "", false
}

// Map maps a resource name to the set of allowed actions. Action sets are
// unordered and deduplicated; resource ordering carries no meaning.
type Map map[string][]Action

// Validate checks every action token in the map against the known set.
func (m Map) Validate() error {
	for resource, actions := range m {
		for _, a := range actions {
			if _, ok := ParseAction(string(a)); !ok {
				return fmt.Errorf("resource %q: unknown action %q", resource, a)
			}
		}
	}
	return nil
}

// Has reports whether the map grants action a on the resource.
func (m Map) Has(resource string, a Action) bool {
	for _, got := range m[resource] {
		if got == a {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the map.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for resource, actions := range m {
		out[resource] = append([]Action(nil), actions...)
	}
	return out
}

// Equal compares two maps as resource → action-set, ignoring order and
// duplicates.
func (m Map) Equal(other Map) bool {
	if len(m) != len(other) {
		return false
	}
	for resource := range m {
		if _, ok := other[resource]; !ok {
			return false
		}
		for _, a := range m[resource] {
			if !other.Has(resource, a) {
				return false
			}
		}
		for _, a := range other[resource] {
			if !m.Has(resource, a) {
				return false
			}
		}
	}
	return true
}

// canonical returns the action set reduced to unique members in canonical
// order.
func canonical(actions map[Action]bool) []Action {
	out := make([]Action, 0, len(actions))
	for _, a := range actionOrder {
		if actions[a] {
			out = append(out, a)
		}
	}
	return out
}

// toSet converts an action slice to a set.
func toSet(actions []Action) map[Action]bool {
	set := make(map[Action]bool, len(actions))
	for _, a := range actions {
		set[a] = true
	}
	return set
}
