// Package portfolio holds the site content: owner details, projects, work
// history, skills and contact form options.
package portfolio

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

var ErrInvalidContent = errors.New("portfolio: invalid content")

// FeaturedLimit is the number of projects shown on the home page.
const FeaturedLimit = 4

// Text is a value translated per language code.
type Text map[string]string

// In returns the text for lang, falling back to Spanish and then English.
func (t Text) In(lang string) string {
	for _, l := range []string{lang, "es", "en"} {
		if s := t[l]; s != "" {
			return s
		}
	}
	return ""
}

type Category string

const (
	CategoryAll       Category = "all"
	CategoryFullstack Category = "fullstack"
	CategoryFrontend  Category = "frontend"
	CategoryBackend   Category = "backend"
	CategoryDevops    Category = "devops"
)

// Categories lists the filterable categories in display order.
var Categories = []Category{CategoryFullstack, CategoryDevops, CategoryBackend, CategoryFrontend}

type Status string

const (
	StatusCompleted  Status = "completed"
	StatusInProgress Status = "in-progress"
	StatusPlanned    Status = "planned"
)

// TranslationKey returns the projects namespace key of the status label.
func (s Status) TranslationKey() string {
	switch s {
	case StatusInProgress:
		return "status.in_progress"
	case StatusPlanned:
		return "status.planned"
	default:
		return "status.completed"
	}
}

type Project struct {
	Slug         string   `yaml:"slug"`
	CaseStudy    string   `yaml:"case_study"`
	Title        Text     `yaml:"title"`
	Description  Text     `yaml:"description"`
	Technologies []string `yaml:"technologies"`
	Category     Category `yaml:"category"`
	DemoURL      string   `yaml:"demo_url"`
	GithubURL    string   `yaml:"github_url"`
	Featured     bool     `yaml:"featured"`
	Metrics      Text     `yaml:"metrics"`
	Status       Status   `yaml:"status"`
	Year         int      `yaml:"year"`
}

// CaseStudyKey returns the projects namespace prefix of the case study texts.
func (p Project) CaseStudyKey() string {
	if p.CaseStudy == "" {
		return "case_studies.default"
	}
	return "case_studies." + p.CaseStudy
}

type Experience struct {
	ID           string   `yaml:"id"`
	Company      string   `yaml:"company"`
	CompanyURL   string   `yaml:"company_url"`
	Role         Text     `yaml:"role"`
	Period       Text     `yaml:"period"`
	Location     Text     `yaml:"location"`
	Description  Text     `yaml:"description"`
	Achievements []Text   `yaml:"achievements"`
	Technologies []string `yaml:"technologies"`
}

type Skill struct {
	Name        string `yaml:"name"`
	Proficiency int    `yaml:"proficiency"`
	Years       int    `yaml:"years"`
	Icon        string `yaml:"icon"`
}

type SkillCategory struct {
	Name        Text    `yaml:"name"`
	Description Text    `yaml:"description"`
	Skills      []Skill `yaml:"skills"`
}

type ProcessStep struct {
	Order       int    `yaml:"order"`
	Icon        string `yaml:"icon"`
	Title       Text   `yaml:"title"`
	Description Text   `yaml:"description"`
}

type SocialLink struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Icon string `yaml:"icon"`
}

type Stats struct {
	Years    string `yaml:"years"`
	Projects string `yaml:"projects"`
	Teams    string `yaml:"teams"`
}

type Site struct {
	Name        string `yaml:"name"`
	Title       Text   `yaml:"title"`
	Description Text   `yaml:"description"`
	URL         string `yaml:"url"`
	Email       string `yaml:"email"`
	Phone       string `yaml:"phone"`
	Location    Text   `yaml:"location"`
	Stats       Stats  `yaml:"stats"`
}

// Option is a select option of the contact form.
type Option struct {
	Value string `yaml:"value"`
	Label Text   `yaml:"label"`
}

type ContactOptions struct {
	Budget   []Option `yaml:"budget_options"`
	Timeline []Option `yaml:"timeline_options"`
}

// Content is the whole site content.
type Content struct {
	Site        Site            `yaml:"site"`
	Social      []SocialLink    `yaml:"social"`
	Projects    []Project       `yaml:"projects"`
	Experiences []Experience    `yaml:"experiences"`
	Skills      []SkillCategory `yaml:"skills"`
	Process     []ProcessStep   `yaml:"process"`
	Contact     ContactOptions  `yaml:"contact"`
}

//go:embed content.yaml
var embedded []byte

// Default returns the embedded content. It panics if the embedded document is invalid.
var Default = sync.OnceValue(func() *Content {
	c, err := Parse(embedded)
	if err != nil {
		panic(err)
	}
	return c
})

// Parse decodes and validates a content document.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Join(ErrInvalidContent, err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	slices.SortStableFunc(c.Process, func(a, b ProcessStep) int { return a.Order - b.Order })
	return &c, nil
}

func (c *Content) validate() error {
	if c.Site.Name == "" {
		return fmt.Errorf("%w: site name is required", ErrInvalidContent)
	}
	seen := make(map[string]bool, len(c.Projects))
	for _, p := range c.Projects {
		switch {
		case p.Slug == "":
			return fmt.Errorf("%w: project without slug", ErrInvalidContent)
		case seen[p.Slug]:
			return fmt.Errorf("%w: duplicate project slug %q", ErrInvalidContent, p.Slug)
		case !slices.Contains(Categories, p.Category):
			return fmt.Errorf("%w: project %q has unknown category %q", ErrInvalidContent, p.Slug, p.Category)
		case p.Status != StatusCompleted && p.Status != StatusInProgress && p.Status != StatusPlanned:
			return fmt.Errorf("%w: project %q has unknown status %q", ErrInvalidContent, p.Slug, p.Status)
		}
		seen[p.Slug] = true
	}
	return nil
}

// Featured returns up to limit featured projects in document order.
func (c *Content) Featured(limit int) []Project {
	var out []Project
	for _, p := range c.Projects {
		if len(out) == limit {
			break
		}
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// ByCategory filters projects. An empty or "all" category returns every project.
func (c *Content) ByCategory(cat Category) []Project {
	if cat == "" || cat == CategoryAll {
		return slices.Clone(c.Projects)
	}
	var out []Project
	for _, p := range c.Projects {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}

// Project finds a project by slug.
func (c *Content) Project(slug string) (Project, bool) {
	i := slices.IndexFunc(c.Projects, func(p Project) bool { return p.Slug == slug })
	if i < 0 {
		return Project{}, false
	}
	return c.Projects[i], true
}

// CategoryCount is a filter entry with the number of matching projects.
type CategoryCount struct {
	Category Category
	Count    int
}

// CategoryCounts returns "all" followed by Categories with their project counts.
func (c *Content) CategoryCounts() []CategoryCount {
	out := []CategoryCount{{Category: CategoryAll, Count: len(c.Projects)}}
	for _, cat := range Categories {
		out = append(out, CategoryCount{Category: cat, Count: len(c.ByCategory(cat))})
	}
	return out
}

// ParseCategory maps a query value to a Category; unknown values mean all.
func ParseCategory(s string) Category {
	if cat := Category(s); slices.Contains(Categories, cat) {
		return cat
	}
	return CategoryAll
}

// Values returns the option values.
func Values(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

// Label returns the label of the option with value v in lang, or v itself.
func Label(opts []Option, v, lang string) string {
	for _, o := range opts {
		if o.Value == v {
			return o.Label.In(lang)
		}
	}
	return v
}
