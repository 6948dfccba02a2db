package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
)

// Namespace names a bundle of translated strings, e.g. "common" or "contact".
type Namespace string

var namespacePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// ValidNamespace reports whether ns is safe to use as a resource name.
func ValidNamespace(ns Namespace) bool {
	return namespacePattern.MatchString(string(ns))
}

// Source fetches the translation tree of one namespace in one language.
type Source interface {
	Fetch(ctx context.Context, lang string, ns Namespace) (Node, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, lang string, ns Namespace) (Node, error)

func (f SourceFunc) Fetch(ctx context.Context, lang string, ns Namespace) (Node, error) {
	return f(ctx, lang, ns)
}

// FSSource reads "<lang>/<namespace>.<ext>" documents from a file system.
// It works with embed.FS, os.DirFS and fstest.MapFS alike.
type FSSource struct {
	fsys fs.FS
	root string
	exts []string
}

// FSSourceOption configures an FSSource.
type FSSourceOption func(*FSSource)

// WithRoot sets the directory inside the file system that holds the language folders.
func WithRoot(dir string) FSSourceOption {
	return func(s *FSSource) {
		if dir != "" {
			s.root = dir
		}
	}
}

// NewFSSource creates a Source over fsys. JSON files take precedence over YAML.
func NewFSSource(fsys fs.FS, opts ...FSSourceOption) *FSSource {
	s := &FSSource{
		fsys: fsys,
		root: ".",
		exts: []string{"json", "yaml", "yml"},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FSSource) Fetch(ctx context.Context, lang string, ns Namespace) (Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrFetchCancelled, err)
	}
	if !ValidNamespace(ns) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNamespace, ns)
	}
	if !validLanguage(lang) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
	}

	for _, ext := range s.exts {
		name := path.Join(s.root, lang, string(ns)+"."+ext)
		content, err := fs.ReadFile(s.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Join(ErrFailedToRead, err)
		}
		return NewParserForFile(name).Parse(ctx, content)
	}

	return nil, fmt.Errorf("%w: %s/%s", ErrNamespaceNotFound, lang, ns)
}
