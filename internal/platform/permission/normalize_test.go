package permission

import "testing"

func TestNormalize_Implications(t *testing.T) {
	tests := []struct {
		name     string
		input    []Action
		expected []Action
	}{
		{"read only", []Action{ActionRead}, []Action{ActionRead}},
		{"update implies read", []Action{ActionUpdate}, []Action{ActionRead, ActionUpdate}},
		{"create implies read and update", []Action{ActionCreate}, []Action{ActionRead, ActionCreate, ActionUpdate}},
		{"delete implies read and update", []Action{ActionDelete}, []Action{ActionRead, ActionUpdate, ActionDelete}},
		{"full set unchanged", []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete}, []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete}},
		{"duplicates collapsed", []Action{ActionRead, ActionRead}, []Action{ActionRead}},
		{"empty action set stays empty", []Action{}, []Action{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Normalize(Map{"res": test.input})

			want := Map{"res": test.expected}
			if !got.Equal(want) {
				t.Errorf("Normalize(%v) = %v, want %v", test.input, got["res"], test.expected)
			}
		})
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	input := Map{"res": {ActionCreate}}

	Normalize(input)

	if len(input["res"]) != 1 || input["res"][0] != ActionCreate {
		t.Errorf("Normalize mutated its input: %v", input["res"])
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []Map{
		{},
		{"a": {ActionCreate}},
		{"a": {ActionDelete}, "b": {ActionRead}, "c": {ActionUpdate, ActionDelete}},
	}

	for _, m := range inputs {
		once := Normalize(m)
		twice := Normalize(once)
		if !once.Equal(twice) {
			t.Errorf("Normalize not idempotent for %v: once=%v twice=%v", m, once, twice)
		}
	}
}

func TestNormalize_CreateSuperset(t *testing.T) {
	got := Normalize(Map{"x": {ActionCreate}})

	for _, a := range []Action{ActionCreate, ActionRead, ActionUpdate} {
		if !got.Has("x", a) {
			t.Errorf("Normalize({x:[create]}) missing %q, got %v", a, got["x"])
		}
	}
}

func TestNormalize_MultipleResources(t *testing.T) {
	got := Normalize(Map{
		"orders":  {ActionDelete},
		"reports": {ActionRead},
	})

	if !got.Has("orders", ActionRead) || !got.Has("orders", ActionUpdate) {
		t.Errorf("orders not normalized: %v", got["orders"])
	}
	if len(got["reports"]) != 1 {
		t.Errorf("reports should be untouched, got %v", got["reports"])
	}
}

func TestMap_Validate(t *testing.T) {
	valid := Map{"res": {ActionRead, ActionDelete}}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid map rejected: %v", err)
	}

	invalid := Map{"res": {Action("write")}}
	if err := invalid.Validate(); err == nil {
		t.Error("expected error for unknown action token")
	}
}
