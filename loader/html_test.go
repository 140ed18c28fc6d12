package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const supportHTML = `<html><body>
<h1>Support Routes</h1>
<h2>billing</h2>
<ul>
  <li>invoice and payment questions</li>
  <li>refund requests</li>
</ul>
<h2>technical</h2>
<ul>
  <li>bug reports and crashes</li>
</ul>
</body></html>`

func TestHTMLLoader(t *testing.T) {
	ctx := context.Background()

	t.Run("parses headings and list items", func(t *testing.T) {
		defs, err := NewHTMLSourceLoader([]byte(supportHTML)).Load(ctx)
		assert.NoError(t, err)
		assert.Len(t, defs, 2)

		assert.Equal(t, "billing", defs[0].Name)
		assert.Equal(t, []string{"invoice and payment questions", "refund requests"}, defs[0].Descriptions)

		assert.Equal(t, "technical", defs[1].Name)
		assert.Equal(t, []string{"bug reports and crashes"}, defs[1].Descriptions)
	})

	t.Run("custom selectors", func(t *testing.T) {
		source := `<div>
			<h3 class="route">billing</h3>
			<p class="desc">invoices</p>
			<h3 class="route">technical</h3>
			<p class="desc">bugs</p>
		</div>`

		// Class attributes only survive on trusted markup, the UGC policy
		// strips them.
		defs, err := NewHTMLSourceLoader([]byte(source),
			WithNameSelector("h3.route"),
			WithDescriptionSelector("p.desc"),
			WithoutSanitization()).Load(ctx)
		assert.NoError(t, err)
		assert.Len(t, defs, 2)
		assert.Equal(t, []string{"invoices"}, defs[0].Descriptions)
		assert.Equal(t, []string{"bugs"}, defs[1].Descriptions)
	})

	t.Run("sanitizes untrusted markup", func(t *testing.T) {
		source := `<h2>billing</h2>
			<ul><li>invoices<script>alert("x")</script></li></ul>`

		defs, err := NewHTMLSourceLoader([]byte(source)).Load(ctx)
		assert.NoError(t, err)
		assert.Len(t, defs, 1)
		assert.Equal(t, []string{"invoices"}, defs[0].Descriptions)
	})

	t.Run("attaches metadata", func(t *testing.T) {
		defs, err := NewHTMLSourceLoader([]byte(supportHTML),
			WithHTMLMetadata(map[string]any{"source": "docs"})).Load(ctx)
		assert.NoError(t, err)
		for _, def := range defs {
			assert.Equal(t, "docs", def.Metadata["source"])
		}
	})

	t.Run("loads from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "routes.html")
		assert.NoError(t, os.WriteFile(path, []byte(supportHTML), 0o644))

		defs, err := NewHTMLLoader(path).Load(ctx)
		assert.NoError(t, err)
		assert.Len(t, defs, 2)
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := NewHTMLLoader("/nonexistent/routes.html").Load(ctx)
		assert.Error(t, err)
	})

	t.Run("page without matches yields no definitions", func(t *testing.T) {
		defs, err := NewHTMLSourceLoader([]byte("<p>nothing here</p>")).Load(ctx)
		assert.NoError(t, err)
		assert.Empty(t, defs)
	})
}
