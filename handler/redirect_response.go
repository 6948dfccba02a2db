package handler

import (
	"net/http"
	"net/url"

	"github.com/starfederation/datastar-go/datastar"
)

type redirectResponse struct {
	url  string
	code int
}

func (r redirectResponse) Render(w http.ResponseWriter, req *http.Request) error {
	if IsDataStar(req) {
		return datastar.NewSSE(w, req).Redirect(r.url)
	}
	http.Redirect(w, req, r.url, r.code)
	return nil
}

// Redirect sends a 303 redirect, or a datastar redirect script.
func Redirect(url string) Response {
	return redirectResponse{url: url, code: http.StatusSeeOther}
}

// RedirectBack redirects to the same-host Referer, or to fallback.
func RedirectBack(req *http.Request, fallback string) Response {
	target := fallback
	if referer := req.Header.Get("Referer"); referer != "" && sameHost(referer, req) {
		target = referer
	}
	return Redirect(target)
}

func sameHost(raw string, r *http.Request) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Host == "" || parsed.Host == r.Host
}
