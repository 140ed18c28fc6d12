package loader

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/smallnest/semrouter/router"
)

// HTMLLoader extracts destination definitions from an HTML page. Elements
// matching the name selector start a destination; sibling content up to the
// next name element is scanned for description elements. The markup is run
// through a bluemonday UGC policy first, so untrusted pages (scraped docs,
// user submissions) are safe to load.
type HTMLLoader struct {
	path     string
	source   []byte
	nameSel  string
	descSel  string
	sanitize bool
	metadata map[string]any
}

var _ Loader = (*HTMLLoader)(nil)

// HTMLOption configures the HTMLLoader.
type HTMLOption func(*HTMLLoader)

// WithNameSelector sets the selector for destination names, default "h2".
func WithNameSelector(selector string) HTMLOption {
	return func(l *HTMLLoader) {
		l.nameSel = selector
	}
}

// WithDescriptionSelector sets the selector for description elements,
// default "li".
func WithDescriptionSelector(selector string) HTMLOption {
	return func(l *HTMLLoader) {
		l.descSel = selector
	}
}

// WithoutSanitization skips the bluemonday pass for trusted markup.
func WithoutSanitization() HTMLOption {
	return func(l *HTMLLoader) {
		l.sanitize = false
	}
}

// WithHTMLMetadata attaches metadata to every loaded definition.
func WithHTMLMetadata(metadata map[string]any) HTMLOption {
	return func(l *HTMLLoader) {
		l.metadata = metadata
	}
}

// NewHTMLLoader creates a loader that reads an HTML file.
func NewHTMLLoader(path string, opts ...HTMLOption) *HTMLLoader {
	l := &HTMLLoader{
		path:     path,
		nameSel:  "h2",
		descSel:  "li",
		sanitize: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewHTMLSourceLoader creates a loader over in-memory HTML source.
func NewHTMLSourceLoader(source []byte, opts ...HTMLOption) *HTMLLoader {
	l := &HTMLLoader{
		source:   source,
		nameSel:  "h2",
		descSel:  "li",
		sanitize: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load parses the HTML document into destination definitions.
func (l *HTMLLoader) Load(ctx context.Context) ([]router.Definition, error) {
	source := l.source
	if source == nil {
		data, err := os.ReadFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read html file: %w", err)
		}
		source = data
	}

	if l.sanitize {
		source = bluemonday.UGCPolicy().SanitizeBytes(source)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	var defs []router.Definition
	doc.Find(l.nameSel).Each(func(_ int, name *goquery.Selection) {
		title := strings.TrimSpace(name.Text())
		if title == "" {
			return
		}

		def := router.Definition{Name: title, Metadata: l.metadata}
		name.NextUntil(l.nameSel).Each(func(_ int, sibling *goquery.Selection) {
			if sibling.Is(l.descSel) {
				if text := strings.TrimSpace(sibling.Text()); text != "" {
					def.Descriptions = append(def.Descriptions, text)
				}
				return
			}
			sibling.Find(l.descSel).Each(func(_ int, item *goquery.Selection) {
				if text := strings.TrimSpace(item.Text()); text != "" {
					def.Descriptions = append(def.Descriptions, text)
				}
			})
		})

		defs = append(defs, def)
	})

	return defs, nil
}
