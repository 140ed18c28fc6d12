package loader

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"

	"github.com/smallnest/semrouter/router"
)

// MarkdownLoader extracts destination definitions from a Markdown document.
// A heading at the configured level starts a destination named by the
// heading text; every list item below it (until the next such heading)
// becomes one description.
//
//	## billing
//	- invoice and payment questions
//	- refund requests
//
//	## technical
//	- bug reports and crashes
type MarkdownLoader struct {
	path         string
	source       []byte
	headingLevel int
	metadata     map[string]any
}

var _ Loader = (*MarkdownLoader)(nil)

// MarkdownOption configures the MarkdownLoader.
type MarkdownOption func(*MarkdownLoader)

// WithHeadingLevel sets the heading level that starts a destination,
// default 2.
func WithHeadingLevel(level int) MarkdownOption {
	return func(l *MarkdownLoader) {
		l.headingLevel = level
	}
}

// WithMarkdownMetadata attaches metadata to every loaded definition.
func WithMarkdownMetadata(metadata map[string]any) MarkdownOption {
	return func(l *MarkdownLoader) {
		l.metadata = metadata
	}
}

// NewMarkdownLoader creates a loader that reads a Markdown file.
func NewMarkdownLoader(path string, opts ...MarkdownOption) *MarkdownLoader {
	l := &MarkdownLoader{
		path:         path,
		headingLevel: 2,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewMarkdownSourceLoader creates a loader over in-memory Markdown source.
func NewMarkdownSourceLoader(source []byte, opts ...MarkdownOption) *MarkdownLoader {
	l := &MarkdownLoader{
		source:       source,
		headingLevel: 2,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load parses the Markdown document into destination definitions.
func (l *MarkdownLoader) Load(ctx context.Context) ([]router.Definition, error) {
	source := l.source
	if source == nil {
		data, err := os.ReadFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read markdown file: %w", err)
		}
		source = data
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse(source)

	var defs []router.Definition
	var current *router.Definition

	flush := func() {
		if current != nil {
			defs = append(defs, *current)
			current = nil
		}
	}

	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}

		switch n := node.(type) {
		case *ast.Heading:
			if n.Level > l.headingLevel {
				return ast.GoToNext
			}
			flush()
			if n.Level == l.headingLevel {
				name := strings.TrimSpace(nodeText(n))
				if name != "" {
					current = &router.Definition{Name: name, Metadata: l.metadata}
				}
			}
			return ast.SkipChildren

		case *ast.ListItem:
			if current == nil {
				return ast.SkipChildren
			}
			if desc := strings.TrimSpace(nodeText(n)); desc != "" {
				current.Descriptions = append(current.Descriptions, desc)
			}
			return ast.SkipChildren
		}

		return ast.GoToNext
	})
	flush()

	return defs, nil
}

// nodeText concatenates the literal text beneath a node.
func nodeText(node ast.Node) string {
	var sb strings.Builder
	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch t := n.(type) {
		case *ast.Text:
			sb.Write(t.Literal)
		case *ast.Code:
			sb.Write(t.Literal)
		}
		return ast.GoToNext
	})
	return sb.String()
}
