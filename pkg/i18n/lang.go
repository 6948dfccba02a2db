package i18n

import (
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

var languagePattern = regexp.MustCompile(`^[a-zA-Z]{2,8}(-[a-zA-Z0-9]{1,8})*$`)

// validLanguage reports whether lang looks like a BCP 47 tag and is safe to use in a path.
func validLanguage(lang string) bool {
	return len(lang) <= 35 && languagePattern.MatchString(lang)
}

// normalizeLanguage reduces a tag to its lower-case base language ("en-US" -> "en").
func normalizeLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return strings.ToLower(lang)
	}
	base, _ := tag.Base()
	return base.String()
}

// negotiator matches requested languages against the supported set.
// The first supported language is the fallback.
type negotiator struct {
	supported []string
	matcher   language.Matcher
}

func newNegotiator(supported []string) negotiator {
	tags := make([]language.Tag, 0, len(supported))
	for _, lang := range supported {
		tags = append(tags, language.Make(lang))
	}
	return negotiator{supported: supported, matcher: language.NewMatcher(tags)}
}

// parse returns the supported language for an explicit choice such as a
// query parameter or cookie value.
func (n negotiator) parse(value string) (string, bool) {
	if !validLanguage(strings.TrimSpace(value)) {
		return "", false
	}
	lang := normalizeLanguage(value)
	for _, s := range n.supported {
		if s == lang {
			return s, true
		}
	}
	return "", false
}

// matchAcceptLanguage picks the best supported language for an Accept-Language header.
func (n negotiator) matchAcceptLanguage(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, idx, confidence := n.matcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}
	return n.supported[idx], true
}
