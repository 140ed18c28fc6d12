// Package loader produces destination definitions from external sources.
//
// Loaders turn documents a team already maintains into the definition list
// that Registry.RegisterAll consumes, so the routing table can live next to
// the docs instead of in code:
//
//	defs, err := loader.NewMarkdownLoader("routes.md").Load(ctx)
//	if err != nil {
//		return err
//	}
//	if err := registry.RegisterAll(ctx, defs); err != nil {
//		return err
//	}
//
// # Markdown
//
// A heading at the configured level (default 2) names a destination; list
// items beneath it become its descriptions:
//
//	## billing
//	- invoice and payment questions
//	- refund requests
//
// # HTML
//
// Elements matching the name selector (default "h2") name a destination;
// description elements (default "li") are collected from the content up to
// the next name element. Untrusted markup is sanitized with a bluemonday
// UGC policy first; disable that with WithoutSanitization for trusted
// sources.
//
// StaticLoader wraps a fixed in-code list behind the same interface.
package loader
