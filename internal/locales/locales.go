// Package locales embeds the site translations, one JSON document per
// language and namespace.
package locales

import (
	"embed"

	"github.com/dmitrymomot/folio/pkg/i18n"
)

// FS holds es/*.json and en/*.json.
//
//go:embed es/*.json en/*.json
var FS embed.FS

const (
	Common     i18n.Namespace = "common"
	Hero       i18n.Namespace = "hero"
	Projects   i18n.Namespace = "projects"
	Experience i18n.Namespace = "experience"
	Skills     i18n.Namespace = "skills"
	Contact    i18n.Namespace = "contact"
)

// Namespaces lists every bundled namespace.
func Namespaces() []i18n.Namespace {
	return []i18n.Namespace{Common, Hero, Projects, Experience, Skills, Contact}
}

// Source serves the embedded documents.
func Source() *i18n.FSSource {
	return i18n.NewFSSource(FS)
}
