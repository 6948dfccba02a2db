package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/folio/handler"
	"github.com/dmitrymomot/folio/internal/locales"
	"github.com/dmitrymomot/folio/internal/portfolio"
)

// featuredLimit is the number of projects shown on the home page.
const featuredLimit = 4

// render writes resp, routing render failures to the error handler.
func (s *Server) render(w http.ResponseWriter, r *http.Request, resp handler.Response) {
	if err := resp.Render(w, r); err != nil {
		s.errorHandler(handler.NewContext(w, r), err)
	}
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	data := s.pageData(r, homeData{
		Featured: s.content.Featured(featuredLimit),
		Skills:   s.content.Skills,
		Process:  s.content.Process,
	}, locales.Hero, locales.Projects, locales.Skills)
	s.render(w, r, handler.Templ(s.views.page(pageHome, data)))
}

func (s *Server) projects(w http.ResponseWriter, r *http.Request) {
	active := portfolio.ParseCategory(r.URL.Query().Get("category"))
	data := s.pageData(r, projectsData{
		Active:   active,
		Counts:   s.content.CategoryCounts(),
		Projects: s.content.ByCategory(active),
	}, locales.Projects)
	s.render(w, r, handler.Templ(s.views.page(pageProjects, data)))
}

func (s *Server) project(w http.ResponseWriter, r *http.Request) {
	p, ok := s.content.Project(chi.URLParam(r, "slug"))
	if !ok {
		s.errorHandler(handler.NewContext(w, r), handler.ErrNotFound)
		return
	}
	data := s.pageData(r, projectData{Project: p}, locales.Projects)
	s.render(w, r, handler.Templ(s.views.page(pageProject, data)))
}

func (s *Server) experience(w http.ResponseWriter, r *http.Request) {
	data := s.pageData(r, experienceData{Experiences: s.content.Experiences}, locales.Experience)
	s.render(w, r, handler.Templ(s.views.page(pageExperience, data)))
}

func (s *Server) contactPage(w http.ResponseWriter, r *http.Request) {
	form := formState{Sent: r.URL.Query().Get("sent") == "1"}
	data := s.pageData(r, contactData{Form: form, Options: s.content.Contact}, locales.Contact)
	s.render(w, r, handler.Templ(s.views.page(pageContact, data)))
}
