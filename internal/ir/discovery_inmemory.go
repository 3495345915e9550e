package ir

import (
	"context"
	"fmt"
)

type InMemorySource struct {
	Filename string
	Content  string
}

// InMemoryDiscovery is a test implementation of Discovery that stores data in memory.
// Sources are listed in insertion order.
type InMemoryDiscovery struct {
	sources  []*SourceMetadata
	contents map[string]string
}

// NewInMemoryDiscovery creates a new InMemoryDiscovery instance
func NewInMemoryDiscovery(srcs []InMemorySource) *InMemoryDiscovery {
	discovery := &InMemoryDiscovery{
		contents: make(map[string]string, len(srcs)),
	}
	for _, src := range srcs {
		discovery.sources = append(discovery.sources, &SourceMetadata{
			Filename: src.Filename,
			Platform: PlatformFromFilename(src.Filename),
		})
		discovery.contents[src.Filename] = src.Content
	}
	return discovery
}

// ListSources implements Discovery interface
func (d *InMemoryDiscovery) ListSources(ctx context.Context) ([]*SourceMetadata, error) {
	return append([]*SourceMetadata(nil), d.sources...), nil
}

// ReadSource implements Discovery interface
func (d *InMemoryDiscovery) ReadSource(ctx context.Context, filename string) (string, error) {
	content, exists := d.contents[filename]
	if !exists {
		return "", fmt.Errorf("source %q not found", filename)
	}
	return content, nil
}
