package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser decodes one namespace document into a translation tree.
type Parser interface {
	// Parse decodes content. The document root must be a mapping.
	Parse(ctx context.Context, content []byte) (Node, error)

	// SupportsFileExtension reports whether the parser handles ext.
	// The extension may or may not include a leading dot.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile returns a parser based on the file extension, or nil.
func NewParserForFile(filename string) Parser {
	idx := strings.LastIndex(filename, ".")
	if idx == -1 {
		return nil
	}

	switch strings.ToLower(filename[idx+1:]) {
	case "json":
		return NewJSONParser()
	case "yaml", "yml":
		return NewYAMLParser()
	default:
		return nil
	}
}

// JSONParser implements Parser for JSON documents.
type JSONParser struct{}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) Parse(ctx context.Context, content []byte) (Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var data any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}

	return rootNode(data)
}

func (p *JSONParser) SupportsFileExtension(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), "json")
}

// YAMLParser implements Parser for YAML documents.
type YAMLParser struct{}

func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

func (p *YAMLParser) Parse(ctx context.Context, content []byte) (Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var data any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}

	return rootNode(data)
}

func (p *YAMLParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}

func rootNode(data any) (Node, error) {
	tree, ok := FromValue(data)
	if !ok {
		return nil, ErrInvalidTree
	}
	node, ok := tree.(Node)
	if !ok {
		return nil, ErrInvalidTree
	}
	return node, nil
}
