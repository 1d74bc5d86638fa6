package flow

import "testing"

func newSurvey(t *testing.T) *Flow {
	t.Helper()
	f, err := New("Survey",
		StepDef{Name: "name"},
		StepDef{Name: "age"},
		StepDef{Name: "city", CanSkip: true},
	)
	if err != nil {
		t.Fatalf("new flow: %v", err)
	}
	return f
}

func TestLinkingOrderAndNames(t *testing.T) {
	f := newSurvey(t)

	name := f.Resolve("name")
	age := f.Resolve("age")
	city := f.Resolve("city")
	if name == nil || age == nil || city == nil {
		t.Fatal("steps not resolvable by short name")
	}

	if name.Previous() != nil {
		t.Error("first step should have no previous")
	}
	if name.Next() != age {
		t.Error("name.Next should be age")
	}
	if age.Previous() != name || age.Next() != city {
		t.Error("age should link name <- age -> city")
	}
	if city.Previous() != age {
		t.Error("city.Previous should be age")
	}
	if city.Next() != nil {
		t.Error("last step should have no next")
	}

	for i, st := range []*Step{name, age, city} {
		if st.OrderNumber() != i+1 {
			t.Errorf("step %s order = %d, want %d", st.Name(), st.OrderNumber(), i+1)
		}
	}

	if got := name.Qualified(); got != "Survey:name" {
		t.Errorf("qualified name = %q, want Survey:name", got)
	}
	if !city.CanSkip() || name.CanSkip() || age.CanSkip() {
		t.Error("only city should be skippable")
	}
	if f.Len() != 3 {
		t.Errorf("Len = %d, want 3", f.Len())
	}
	if f.First() != name {
		t.Error("First should return the name step")
	}
}

func TestResolveIsTotal(t *testing.T) {
	f := newSurvey(t)
	other := newSurvey(t)

	cases := []struct {
		in   any
		want *Step
	}{
		{nil, nil},
		{f.Resolve("name"), f.Resolve("name")},
		{"Survey:age", f.Resolve("age")},
		{"city", f.Resolve("city")},
		{"unknown", nil},
		{"Other:age", nil},
		{42, nil},
		{struct{ state string }{"xxx"}, nil},
		{(*Step)(nil), nil},
		{other.Resolve("age"), nil}, // step from a different flow instance
	}
	for i, tc := range cases {
		if got := f.Resolve(tc.in); got != tc.want {
			t.Errorf("case %d: Resolve(%v) = %v, want %v", i, tc.in, got, tc.want)
		}
	}
}

func TestDuplicateStepNameFails(t *testing.T) {
	if _, err := New("Broken", StepDef{Name: "a"}, StepDef{Name: "a"}); err == nil {
		t.Fatal("expected duplicate step name to fail")
	}
}

func TestEmptyStepNameFails(t *testing.T) {
	if _, err := New("Broken", StepDef{Name: ""}); err == nil {
		t.Fatal("expected empty step name to fail")
	}
}
