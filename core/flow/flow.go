// Package flow implements a linked, ordered group of conversation steps
// for multi-step Telegram forms. A Flow is built once at startup and is
// read-only afterwards; navigation is pointer-following, not index math.
package flow

import "fmt"

// StepDef declares a single step of a flow in declaration order.
type StepDef struct {
	Name    string
	CanSkip bool
}

// Step is one stage of a multi-step form. Steps are created by New and
// immutable afterwards.
type Step struct {
	name    string
	canSkip bool
	order   int
	prev    *Step
	next    *Step
	flow    *Flow
}

// Name returns the short step identifier, unique within its flow.
func (s *Step) Name() string { return s.name }

// CanSkip reports whether a user may bypass providing a value for this step.
func (s *Step) CanSkip() bool { return s.canSkip }

// OrderNumber returns the 1-based position of the step in its flow.
func (s *Step) OrderNumber() int { return s.order }

// Previous returns the preceding step, or nil for the first step.
func (s *Step) Previous() *Step { return s.prev }

// Next returns the following step, or nil for the last step.
func (s *Step) Next() *Step { return s.next }

// Qualified returns the full state token "<flow>:<step>".
func (s *Step) Qualified() string {
	return s.flow.name + ":" + s.name
}

// Flow is a named, ordered set of steps with lookup by full and short name.
type Flow struct {
	name    string
	steps   []*Step
	byFull  map[string]*Step
	byShort map[string]*Step
}

// New builds a flow from step definitions, assigning order numbers in
// declaration order and linking previous/next pointers. Duplicate short
// names are a definition-time bug and make New fail.
func New(name string, defs ...StepDef) (*Flow, error) {
	if name == "" {
		return nil, fmt.Errorf("flow: name is required")
	}
	f := &Flow{
		name:    name,
		steps:   make([]*Step, 0, len(defs)),
		byFull:  make(map[string]*Step, len(defs)),
		byShort: make(map[string]*Step, len(defs)),
	}
	for i, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("flow %s: step %d has no name", name, i+1)
		}
		if _, dup := f.byShort[def.Name]; dup {
			return nil, fmt.Errorf("flow %s: duplicate step name %q", name, def.Name)
		}
		st := &Step{
			name:    def.Name,
			canSkip: def.CanSkip,
			order:   i + 1,
			flow:    f,
		}
		f.steps = append(f.steps, st)
		f.byShort[st.name] = st
		f.byFull[st.Qualified()] = st
	}
	for i, st := range f.steps {
		if i > 0 {
			st.prev = f.steps[i-1]
		}
		if i+1 < len(f.steps) {
			st.next = f.steps[i+1]
		}
	}
	return f, nil
}

// MustNew is New for flows declared at package init, where a definition
// error is fatal.
func MustNew(name string, defs ...StepDef) *Flow {
	f, err := New(name, defs...)
	if err != nil {
		panic(err)
	}
	return f
}

// Name returns the flow name.
func (f *Flow) Name() string { return f.name }

// Len returns the total step count.
func (f *Flow) Len() int { return len(f.steps) }

// First returns the entry step of the flow, or nil for an empty flow.
func (f *Flow) First() *Step {
	if len(f.steps) == 0 {
		return nil
	}
	return f.steps[0]
}

// Resolve maps an opaque state token back to a step of this flow.
// It accepts a *Step, a qualified "<flow>:<step>" string, or a short step
// name, and returns nil for anything else: nil input, unknown strings,
// steps belonging to another flow, or values of any other type.
func (f *Flow) Resolve(token any) *Step {
	switch v := token.(type) {
	case nil:
		return nil
	case *Step:
		if v == nil || v.flow != f {
			return nil
		}
		return v
	case string:
		if st, ok := f.byFull[v]; ok {
			return st
		}
		return f.byShort[v]
	default:
		return nil
	}
}
