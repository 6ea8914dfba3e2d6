package output

import (
	"regexp"
	"strings"

	"github.com/virta-dl/virta/media"
)

// tokenPattern matches the substitution tokens supported in filename templates.
var tokenPattern = regexp.MustCompile(`\$\{(title|publish_date|webpage)\}`)

// Template renders output base names from clip attributes.
type Template struct {
	pattern string
}

// NewTemplate compiles a filename template. Unknown tokens are left verbatim.
func NewTemplate(pattern string) *Template {
	return &Template{pattern: pattern}
}

// Pattern returns the raw template string.
func (t *Template) Pattern() string {
	return t.pattern
}

// IsConstant reports whether the template contains no substitution tokens and
// therefore renders the same name for every clip. A constant template cannot
// disambiguate the clips of a multi-clip playlist.
func (t *Template) IsConstant() bool {
	return !tokenPattern.MatchString(t.pattern)
}

// Render substitutes clip attributes into the template.
func (t *Template) Render(clip *media.Clip) string {
	return tokenPattern.ReplaceAllStringFunc(t.pattern, func(token string) string {
		switch token {
		case "${title}":
			return clip.Title
		case "${publish_date}":
			// Date part of the RFC 3339 timestamp.
			if len(clip.PublishTimestamp) >= 10 {
				return clip.PublishTimestamp[:10]
			}
			return clip.PublishTimestamp
		case "${webpage}":
			parts := strings.Split(strings.TrimRight(clip.Webpage, "/"), "/")
			return parts[len(parts)-1]
		default:
			return token
		}
	})
}
