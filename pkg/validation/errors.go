package validation

import (
	"errors"
	"sort"
	"strings"
)

// ErrInvalid is matched by errors.Is for every Errors value.
var ErrInvalid = errors.New("validation: invalid submission")

// Errors maps field names to messages.
type Errors map[string][]string

// Add appends a message for field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Fields returns the field names with errors, sorted.
func (e Errors) Fields() []string {
	keys := make([]string, 0, len(e))
	for key := range e {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, field := range e.Fields() {
		parts = append(parts, field+": "+strings.Join(e[field], "; "))
	}
	return "validation: " + strings.Join(parts, ", ")
}

// Is lets errors.Is(err, ErrInvalid) match.
func (e Errors) Is(target error) bool {
	return target == ErrInvalid
}

// AsErrors unwraps an Errors value from err.
func AsErrors(err error) (Errors, bool) {
	var verrs Errors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}
