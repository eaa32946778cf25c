// Package i18n defines the languages the site is served in.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

var (
	tagEnglish    = language.AmericanEnglish
	tagIndonesian = language.MustParse("id-ID")

	supported = []language.Tag{tagEnglish, tagIndonesian}
	matcher   = language.NewMatcher(supported)
)

// DefaultTag is the fallback language.
func DefaultTag() language.Tag {
	return tagEnglish
}

// SupportedTags returns the served languages, default first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// ParseTag parses value and maps it onto a supported tag. ok is false when
// value is not a language tag or matches no supported language.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTag(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return DefaultTag(), false
	}
	_, idx, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultTag(), false
	}
	return supported[idx], true
}

// MatchTags picks the best supported tag for a preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supported[idx]
}
