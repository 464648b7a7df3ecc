package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm    ChromeClass = "opsform-form"
	ClassHeader  ChromeClass = "opsform-header"
	ClassField   ChromeClass = "opsform-field"
	ClassActions ChromeClass = "opsform-actions"
	ClassErrors  ChromeClass = "opsform-errors"
	ClassResult  ChromeClass = "opsform-result"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"form":    string(ClassForm),
		"header":  string(ClassHeader),
		"field":   string(ClassField),
		"actions": string(ClassActions),
		"errors":  string(ClassErrors),
		"result":  string(ClassResult),
	}
}
