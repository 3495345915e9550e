package ir

import (
	"context"
	"fmt"

	language "github.com/hanpama/sdlgen/internal/language"
)

// Document is one parsed schema file tagged with its platform.
type Document struct {
	Filename string
	AST      *language.SchemaDocument
	Platform Platform
}

// Parse reads and parses every source of disc in listing order. The first
// malformed document aborts with a *ParseError and no documents are returned.
func Parse(ctx context.Context, disc Discovery) ([]*Document, error) {
	srcs, err := disc.ListSources(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]*Document, 0, len(srcs))
	for _, src := range srcs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sdl, err := disc.ReadSource(ctx, src.Filename)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", src.Filename, err)
		}
		ast, err := language.ParseSchema(src.Filename, sdl)
		if err != nil {
			return nil, newParseError(src.Filename, err)
		}
		docs = append(docs, &Document{
			Filename: src.Filename,
			AST:      ast,
			Platform: src.Platform,
		})
	}
	return docs, nil
}
