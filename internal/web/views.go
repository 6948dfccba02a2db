package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/folio/internal/contact"
	"github.com/dmitrymomot/folio/internal/portfolio"
	"github.com/dmitrymomot/folio/pkg/i18n"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	pageHome       = "home"
	pageProjects   = "projects"
	pageProject    = "project"
	pageExperience = "experience"
	pageContact    = "contact"
	pageError      = "error"
)

var pageNames = []string{pageHome, pageProjects, pageProject, pageExperience, pageContact, pageError}

// pageData is the root value of every template.
type pageData struct {
	Lang      string
	Languages []string
	Path      string
	Site      portfolio.Site
	Social    []portfolio.SocialLink
	Year      int
	RequestID string
	Data      any

	tr *i18n.Set
}

// T translates key of namespace ns.
func (p pageData) T(ns, key string) string {
	if p.tr == nil {
		return key
	}
	return p.tr.T(i18n.Namespace(ns), key)
}

// Loading reports whether some namespace of the page is not populated yet.
func (p pageData) Loading() bool {
	return p.tr != nil && p.tr.Loading()
}

type homeData struct {
	Featured []portfolio.Project
	Skills   []portfolio.SkillCategory
	Process  []portfolio.ProcessStep
}

type projectsData struct {
	Active   portfolio.Category
	Counts   []portfolio.CategoryCount
	Projects []portfolio.Project
}

type projectData struct {
	Project portfolio.Project
}

type experienceData struct {
	Experiences []portfolio.Experience
}

type contactData struct {
	Form    formState
	Options portfolio.ContactOptions
}

type errorData struct {
	Key        string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// formState is the contact form as rendered after a submission attempt.
type formState struct {
	Values contact.Submission
	Errors map[string]string
	Sent   bool
	Failed bool
}

// Signals returns the initial datastar signals of the form.
func (f formState) Signals() string {
	b, err := json.Marshal(f.Values)
	if err != nil {
		return "{}"
	}
	return string(b)
}

type fieldView struct {
	Page  pageData
	Name  string
	Type  string
	Value string
	Error string
}

type cardView struct {
	Page    pageData
	Lang    string
	Project portfolio.Project
}

type toastView struct {
	Type           string
	Message        string
	RequestID      string
	RequestIDLabel string
}

var funcs = template.FuncMap{
	"field": func(p pageData, name, typ, value string) fieldView {
		v := fieldView{Page: p, Name: name, Type: typ, Value: value}
		if d, ok := p.Data.(contactData); ok {
			v.Error = d.Form.Errors[name]
		}
		return v
	},
	"card": func(p pageData, project portfolio.Project) cardView {
		return cardView{Page: p, Lang: p.Lang, Project: project}
	},
}

// views holds one template set per page, each with the shared layout and partials.
type views struct {
	pages map[string]*template.Template
}

func parseViews() (*views, error) {
	base, err := template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/layout.tmpl", "templates/partials.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	v := &views{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".tmpl"); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

// page renders a full document.
func (v *views) page(name string, data pageData) templ.Component {
	return templ.FromGoHTML(v.pages[name].Lookup("layout"), data)
}

// partial renders one named template of a page set.
func (v *views) partial(page, name string, data any) templ.Component {
	return templ.FromGoHTML(v.pages[page].Lookup(name), data)
}

func currentYear() int {
	return time.Now().Year()
}
