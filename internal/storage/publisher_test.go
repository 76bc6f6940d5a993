package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublisher(t *testing.T) {
	t.Run("creates directory if not exists", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "served")

		p, err := NewPublisher(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, p.FilesDir())

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestPublisher_Publish(t *testing.T) {
	p, err := NewPublisher(t.TempDir())
	require.NoError(t, err)

	t.Run("allocates prefix plus random hex plus extension", func(t *testing.T) {
		a := p.Publish("trim-out-", ".mp4")

		re := regexp.MustCompile(`^trim-out-[0-9a-f]{16}\.mp4$`)
		assert.Regexp(t, re, a.Name)
		assert.Equal(t, filepath.Join(p.FilesDir(), a.Name), a.LocalPath)
		assert.Equal(t, "/files/"+a.Name, a.RelativePath)
	})

	t.Run("defaults extension to .mp4", func(t *testing.T) {
		a := p.Publish("out-", "")
		assert.Regexp(t, `\.mp4$`, a.Name)
	})

	t.Run("successive artifacts are distinct", func(t *testing.T) {
		a := p.Publish("out-", ".mp4")
		b := p.Publish("out-", ".mp4")
		assert.NotEqual(t, a.Name, b.Name)
	})
}

func TestPublisher_PublishNamed(t *testing.T) {
	p, err := NewPublisher(t.TempDir())
	require.NoError(t, err)

	t.Run("uses caller-chosen name", func(t *testing.T) {
		a := p.PublishNamed("my-reel", ".mp4")
		assert.Equal(t, "my-reel.mp4", a.Name)
		assert.Equal(t, "/files/my-reel.mp4", a.RelativePath)
	})

	t.Run("strips path components from the name", func(t *testing.T) {
		a := p.PublishNamed("../../etc/passwd", ".mp4")
		assert.Equal(t, "passwd.mp4", a.Name)
	})
}
