package loader

import (
	"context"

	"github.com/smallnest/semrouter/router"
)

// Loader produces destination definitions from some source. The result is
// fed to Registry.RegisterAll.
type Loader interface {
	Load(ctx context.Context) ([]router.Definition, error)
}

// StaticLoader serves a fixed list of definitions.
type StaticLoader struct {
	Definitions []router.Definition
}

var _ Loader = (*StaticLoader)(nil)

// NewStaticLoader creates a loader over a static definition list.
func NewStaticLoader(definitions []router.Definition) *StaticLoader {
	return &StaticLoader{
		Definitions: definitions,
	}
}

// Load returns the static list of definitions.
func (l *StaticLoader) Load(ctx context.Context) ([]router.Definition, error) {
	return l.Definitions, nil
}
