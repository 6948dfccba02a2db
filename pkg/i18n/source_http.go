package i18n

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxDocumentSize bounds the size of a remote translation document.
const maxDocumentSize = 1 << 20

// HTTPSource fetches "<baseURL>/<lang>/<namespace>.json" over HTTP.
type HTTPSource struct {
	baseURL string
	client  *http.Client
	parser  Parser
}

// HTTPSourceOption configures an HTTPSource.
type HTTPSourceOption func(*HTTPSource)

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(c *http.Client) HTTPSourceOption {
	return func(s *HTTPSource) {
		if c != nil {
			s.client = c
		}
	}
}

// WithHTTPParser overrides the document parser (JSON by default).
func WithHTTPParser(p Parser) HTTPSourceOption {
	return func(s *HTTPSource) {
		if p != nil {
			s.parser = p
		}
	}
}

// NewHTTPSource creates a Source that reads documents below baseURL.
func NewHTTPSource(baseURL string, opts ...HTTPSourceOption) (*HTTPSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid translation base URL %q", baseURL)
	}

	s := &HTTPSource{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		parser:  NewJSONParser(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *HTTPSource) Fetch(ctx context.Context, lang string, ns Namespace) (Node, error) {
	if !ValidNamespace(ns) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNamespace, ns)
	}
	if !validLanguage(lang) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
	}

	endpoint := fmt.Sprintf("%s/%s/%s.json", s.baseURL, url.PathEscape(lang), url.PathEscape(string(ns)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Join(ErrFailedToRead, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Join(ErrFetchCancelled, ctx.Err())
		}
		return nil, errors.Join(ErrFailedToRead, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s/%s", ErrNamespaceNotFound, lang, ns)
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: %s", ErrSourceAccessDenied, resp.Status)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	content, err := readDocument(resp.Body)
	if err != nil {
		return nil, err
	}

	return s.parser.Parse(ctx, content)
}

// readDocument reads a remote document, failing with ErrDocumentTooLarge when
// it exceeds maxDocumentSize.
func readDocument(r io.Reader) ([]byte, error) {
	content, err := io.ReadAll(io.LimitReader(r, maxDocumentSize+1))
	if err != nil {
		return nil, errors.Join(ErrFailedToRead, err)
	}
	if len(content) > maxDocumentSize {
		return nil, fmt.Errorf("%w: max %d bytes", ErrDocumentTooLarge, maxDocumentSize)
	}
	return content, nil
}
