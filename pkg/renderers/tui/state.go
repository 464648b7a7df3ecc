package tui

import "github.com/goliatone/go-opsform/pkg/validation"

// State tracks the raw answers collected so far and errors reported for a
// previous attempt, both keyed by field name.
type State struct {
	values validation.Values
	errors map[string][]string
}

// NewState seeds the state with prefilled values and errors.
func NewState(prefill map[string][]string, errs map[string][]string) *State {
	return &State{
		values: cloneStrings(prefill),
		errors: cloneStrings(errs),
	}
}

// Values returns a copy of the collected answers.
func (s *State) Values() validation.Values {
	if s == nil {
		return nil
	}
	return validation.Values(cloneStrings(s.values))
}

// ErrorsFor returns the errors attached to a field.
func (s *State) ErrorsFor(name string) []string {
	if s == nil || len(s.errors) == 0 {
		return nil
	}
	return s.errors[name]
}

// Get returns the raw answers for a field.
func (s *State) Get(name string) ([]string, bool) {
	if s == nil {
		return nil, false
	}
	vals, ok := s.values[name]
	return vals, ok
}

// Set records the raw answers for a field and clears its errors.
func (s *State) Set(name string, values ...string) {
	if s == nil {
		return
	}
	s.values[name] = append([]string(nil), values...)
	delete(s.errors, name)
}

func cloneStrings(src map[string][]string) map[string][]string {
	out := make(map[string][]string, len(src))
	for key, vals := range src {
		out[key] = append([]string(nil), vals...)
	}
	return out
}
