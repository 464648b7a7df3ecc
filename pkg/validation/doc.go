// Package validation decodes submitted form values into positional
// operation arguments, enforcing the rules implied by each parameter's UI
// hint. HTML and terminal renderers share it so a value accepted in one is
// accepted in the other.
package validation
