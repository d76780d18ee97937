package content

import (
	"fmt"
	"strings"
)

// keyDelimiter joins the three section key components. None of the
// components may contain it, otherwise the key cannot be split back.
const keyDelimiter = "_"

// Content type identifiers carried as the third section key component.
const (
	TypeLessons    = "lessons"
	TypeDates      = "dates"
	TypeTerms      = "terms"
	TypeCharacters = "characters"
	TypePhilosophy = "philosophy"
	TypeLaws       = "laws"
)

// SectionKey addresses one bucket of content: a subject, a term and a
// content type. Serialized as "{subject}_{term}_{contentType}" it is used
// both as the storage filter value and as a routing token.
type SectionKey struct {
	Subject     string
	Term        string
	ContentType string
}

func NewSectionKey(subject, term, contentType string) (SectionKey, error) {
	for _, part := range []string{subject, term, contentType} {
		if part == "" {
			return SectionKey{}, fmt.Errorf("section key component empty")
		}
		if strings.Contains(part, keyDelimiter) {
			return SectionKey{}, fmt.Errorf("section key component %q contains %q", part, keyDelimiter)
		}
	}
	return SectionKey{Subject: subject, Term: term, ContentType: contentType}, nil
}

// ParseSectionKey splits on the first two delimiters only, so the key always
// decomposes into exactly three parts.
func ParseSectionKey(s string) (SectionKey, error) {
	parts := strings.SplitN(s, keyDelimiter, 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return SectionKey{}, fmt.Errorf("malformed section key %q", s)
	}
	return SectionKey{Subject: parts[0], Term: parts[1], ContentType: parts[2]}, nil
}

func (k SectionKey) String() string {
	return k.Subject + keyDelimiter + k.Term + keyDelimiter + k.ContentType
}

func (k SectionKey) IsZero() bool {
	return k.Subject == "" && k.Term == "" && k.ContentType == ""
}
