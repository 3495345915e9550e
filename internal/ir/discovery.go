package ir

import (
	"context"
)

type SourceMetadata struct {
	// Filename is the slash-separated path relative to the discovery root.
	Filename string
	Platform Platform
}

type Discovery interface {
	ListSources(ctx context.Context) ([]*SourceMetadata, error)
	ReadSource(ctx context.Context, filename string) (string, error)
}
