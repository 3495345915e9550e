// Package emittertest holds fixtures shared by the backend tests.
package emittertest

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hanpama/sdlgen/internal/ir"
	"github.com/stretchr/testify/require"
)

// SchemaDir is the fixture directory shared by every backend: a common
// schema plus one Android and one iOS document.
func SchemaDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "testdata", "schema")
}

// Load builds the shared fixture schema.
func Load(t testing.TB) *ir.Schema {
	t.Helper()
	schema, err := ir.Load(t.Context(), SchemaDir())
	require.NoError(t, err)
	return schema
}

// Build builds a schema from inline documents.
func Build(t testing.TB, srcs ...ir.InMemorySource) *ir.Schema {
	t.Helper()
	schema, err := ir.Build(t.Context(), ir.NewInMemoryDiscovery(srcs))
	require.NoError(t, err)
	return schema
}

var update = flag.Bool("update", false, "rewrite golden files in testdata")

// Golden compares got with testdata/<name>. With -update the file is
// rewritten from got first; otherwise a missing file fails the test.
func Golden(t testing.TB, name, got string) {
	t.Helper()
	path := filepath.Join("testdata", name)

	if *update {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(got), 0644))
		t.Logf("Golden file updated: %s", path)
	}

	want, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("golden file %s is missing; run the tests with -update to create it", path)
	}
	require.NoError(t, err)
	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Errorf("%s mismatch (-expected +got):\n%s", name, diff)
	}
}
