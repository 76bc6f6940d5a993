package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepOld(t *testing.T) {
	t.Run("removes only files older than max age", func(t *testing.T) {
		dir := t.TempDir()

		stale := filepath.Join(dir, "stale.mp4")
		fresh := filepath.Join(dir, "fresh.mp4")
		require.NoError(t, os.WriteFile(stale, []byte("old"), 0o600))
		require.NoError(t, os.WriteFile(fresh, []byte("new"), 0o600))

		old := time.Now().Add(-2 * time.Hour)
		require.NoError(t, os.Chtimes(stale, old, old))

		removed, err := SweepOld(dir, time.Hour, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		_, err = os.Stat(stale)
		assert.True(t, os.IsNotExist(err))
		_, err = os.Stat(fresh)
		assert.NoError(t, err)
	})

	t.Run("leaves subdirectories alone", func(t *testing.T) {
		dir := t.TempDir()
		sub := filepath.Join(dir, "keep")
		require.NoError(t, os.Mkdir(sub, 0o750))

		old := time.Now().Add(-2 * time.Hour)
		require.NoError(t, os.Chtimes(sub, old, old))

		removed, err := SweepOld(dir, time.Hour, nil)
		require.NoError(t, err)
		assert.Zero(t, removed)

		_, err = os.Stat(sub)
		assert.NoError(t, err)
	})

	t.Run("fails on missing directory", func(t *testing.T) {
		_, err := SweepOld(filepath.Join(t.TempDir(), "absent"), time.Hour, nil)
		assert.Error(t, err)
	})
}
