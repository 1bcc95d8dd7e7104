package import_service

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// DeriveQuestionID takes the last path segment of link, or the one before it
// when the link ends in a slash. When the link is not an absolute url or has
// no usable segment, a random id built from the title is returned; such ids
// are not checked against existing questions.
func DeriveQuestionID(link, title string) (id string, derived bool) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err == nil && u.IsAbs() {
		segments := strings.Split(u.Path, "/")
		n := len(segments)
		if n > 0 && segments[n-1] != "" {
			return segments[n-1], true
		}
		if n > 1 && segments[n-2] != "" {
			return segments[n-2], true
		}
	}
	return fallbackQuestionID(title), false
}

func fallbackQuestionID(title string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	s := slug.Make(title)
	if s == "" {
		return "q-" + suffix
	}
	if len(s) > 64 {
		s = strings.TrimRight(s[:64], "-")
	}
	return s + "-" + suffix
}
