package artifact

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRegistry(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "models")
	require.NoError(t, SaveBundle(dir, newTestBundle(t)))

	reg, err := OpenRegistry(dir)
	require.NoError(t, err)
	require.NotNil(t, reg.Current())
	assert.True(t, reg.Current().TextClassifier.Fitted())
}

func TestOpenRegistryMissingDir(t *testing.T) {
	_, err := OpenRegistry(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestRegistryReplace(t *testing.T) {
	b1 := newTestBundle(t)
	reg := NewRegistry(b1)
	assert.Same(t, b1, reg.Current())

	b2 := newTestBundle(t)
	reg.Replace(b2)
	assert.Same(t, b2, reg.Current())
	assert.NotSame(t, b1, reg.Current())
}

func TestRegistryReload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "models")
	require.NoError(t, SaveBundle(dir, newTestBundle(t)))
	reg, err := OpenRegistry(dir)
	require.NoError(t, err)
	before := reg.Current()

	b2 := newTestBundle(t)
	b2.Manifest.Columns = append(b2.Manifest.Columns, "extra_column")
	require.NoError(t, SaveBundle(dir, b2))

	require.NoError(t, reg.Reload())
	assert.NotSame(t, before, reg.Current())
	assert.Contains(t, reg.Current().Manifest.Columns, "extra_column")
}
