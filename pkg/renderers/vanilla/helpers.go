package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-opsform/pkg/render/template/pongo"
)

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

// sanitizeDescription keeps inline formatting in operation and field
// descriptions and strips everything else.
func sanitizeDescription(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	descriptionPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("b", "strong", "i", "em", "code", "br", "p", "ul", "ol", "li")
		policy.AllowStandardURLs()
		policy.AllowAttrs("href").OnElements("a")
		policy.RequireNoFollowOnLinks(true)
		descriptionPolicy = policy
	})
	return strings.TrimSpace(descriptionPolicy.Sanitize(value))
}

func controlID(formID, name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "of-" + pongo.Slug(formID) + "-" + pongo.Slug(trimmed)
}

func sanitizeClassList(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "of-") || strings.ContainsAny(token, `"'<>`) {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}
