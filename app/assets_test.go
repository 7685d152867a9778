package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"board-customizer/customizer"
)

func TestMissingAssets(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, customizer.StaticAssets(), missingAssets(dir))

	for _, asset := range []string{customizer.DefaultWheelTexture, customizer.EnvironmentFile} {
		path := filepath.Join(dir, filepath.FromSlash(asset))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("asset"), 0o644))
	}
	// a directory in place of a file does not count
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "concrete-normal.avif"), 0o755))

	assert.Equal(t, []string{customizer.DefaultDeckTexture, customizer.FloorNormalMap}, missingAssets(dir))
}
