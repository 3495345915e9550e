package ir

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// DefaultExtensions are the schema file extensions recognised when none are configured.
var DefaultExtensions = []string{".graphql", ".graphqls", ".gql"}

type discoveryOptions struct {
	extensions []string
	exclude    []string
}

type DiscoveryOption func(*discoveryOptions)

// WithExtensions replaces the recognised file extensions.
func WithExtensions(exts ...string) DiscoveryOption {
	return func(o *discoveryOptions) {
		o.extensions = nil
		for _, ext := range exts {
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			o.extensions = append(o.extensions, strings.ToLower(ext))
		}
	}
}

// WithExclude skips files whose stem ends with any of the given patterns.
func WithExclude(patterns ...string) DiscoveryOption {
	return func(o *discoveryOptions) {
		o.exclude = append(o.exclude, patterns...)
	}
}

func newDiscoveryOptions(opts []DiscoveryOption) discoveryOptions {
	o := discoveryOptions{extensions: DefaultExtensions}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o discoveryOptions) match(name string) bool {
	return slices.Contains(o.extensions, strings.ToLower(filepath.Ext(name))) && !IsExcluded(name, o.exclude)
}

// IsSchemaFile reports whether discovery with opts would pick up filename.
func IsSchemaFile(filename string, opts ...DiscoveryOption) bool {
	return newDiscoveryOptions(opts).match(filepath.Base(filename))
}

// FileSystemDiscovery implements Discovery for a directory of schema documents.
type FileSystemDiscovery struct {
	rootDir string
	sources []*SourceMetadata
	paths   map[string]string
}

// NewFileSystemDiscovery walks rootDir and records every recognised, non-excluded schema file.
func NewFileSystemDiscovery(ctx context.Context, rootDir string, opts ...DiscoveryOption) (*FileSystemDiscovery, error) {
	o := newDiscoveryOptions(opts)
	discovery := &FileSystemDiscovery{
		rootDir: rootDir,
		paths:   make(map[string]string),
	}

	err := filepath.WalkDir(rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !o.match(d.Name()) {
			return nil
		}

		relPath, err := filepath.Rel(rootDir, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %q: %w", path, err)
		}
		filename := filepath.ToSlash(relPath)

		discovery.paths[filename] = path
		discovery.sources = append(discovery.sources, &SourceMetadata{
			Filename: filename,
			Platform: PlatformFromFilename(filename),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk root directory %q: %w", rootDir, err)
	}
	sort.Slice(discovery.sources, func(i, j int) bool {
		return discovery.sources[i].Filename < discovery.sources[j].Filename
	})
	return discovery, nil
}

// IsExcluded reports whether the stem of filename ends with one of patterns.
// Matching is by suffix so that "user_draft" is excluded by "_draft" while
// "drafts_user" is not.
func IsExcluded(filename string, patterns []string) bool {
	stem := fileStem(filename)
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if strings.HasSuffix(stem, pattern) {
			return true
		}
	}
	return false
}

// ListSources returns the discovered documents sorted by relative path.
func (d *FileSystemDiscovery) ListSources(ctx context.Context) ([]*SourceMetadata, error) {
	return slices.Clone(d.sources), nil
}

// ReadSource reads the SDL content of a discovered document.
func (d *FileSystemDiscovery) ReadSource(ctx context.Context, filename string) (string, error) {
	fp, ok := d.paths[filename]
	if !ok {
		return "", fmt.Errorf("source %q not found", filename)
	}
	content, err := os.ReadFile(fp)
	if err != nil {
		return "", fmt.Errorf("failed to read schema %q: %w", filename, err)
	}
	return string(content), nil
}

// Load is a convenience function that discovers rootDir and builds its schema.
func Load(ctx context.Context, rootDir string, opts ...DiscoveryOption) (*Schema, error) {
	discovery, err := NewFileSystemDiscovery(ctx, rootDir, opts...)
	if err != nil {
		return nil, err
	}
	return Build(ctx, discovery)
}
