package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFile_URLs(t *testing.T) {
	tests := []struct {
		src      string
		dirURLs  bool
		wantDest string
		wantURL  string
	}{
		{"index.md", true, "index.html", "./"},
		{"index.md", false, "index.html", "index.html"},
		{"README.md", true, "index.html", "./"},
		{"about.md", true, "about/index.html", "about/"},
		{"about.md", false, "about.html", "about.html"},
		{"guide/index.md", true, "guide/index.html", "guide/"},
		{"guide/setup.markdown", true, "guide/setup/index.html", "guide/setup/"},
		{"img/logo.png", true, "img/logo.png", "img/logo.png"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f := NewFile(tt.src, "/docs", tt.dirURLs)
			assert.Equal(t, tt.wantDest, f.DestPath)
			assert.Equal(t, tt.wantURL, f.URL)
			assert.Equal(t, filepath.Join("/docs", filepath.FromSlash(tt.src)), f.AbsSrcPath)
		})
	}
}

func TestFile_IsDocumentation(t *testing.T) {
	assert.True(t, NewFile("a.md", "/d", true).IsDocumentation())
	assert.True(t, NewFile("a.MD", "/d", true).IsDocumentation())
	assert.False(t, NewFile("a.txt", "/d", true).IsDocumentation())
	assert.False(t, NewFile("a", "/d", true).IsDocumentation())
}

func TestDiscover(t *testing.T) {
	docs := t.TempDir()
	for _, name := range []string{
		"index.md",
		"README.md",
		"about.md",
		"guide/README.md",
		"guide/setup.md",
		"img/logo.png",
		".hidden.md",
		".git/config",
	} {
		p := filepath.Join(docs, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("# x\n"), 0o644))
	}

	files, err := Discover(docs, true)
	require.NoError(t, err)

	var srcs []string
	for _, f := range files.All() {
		srcs = append(srcs, f.SrcPath)
	}
	assert.Equal(t, []string{"about.md", "guide/README.md", "guide/setup.md", "img/logo.png", "index.md"}, srcs)
	assert.Len(t, files.Documentation(), 4)
	assert.Len(t, files.Static(), 1)
	assert.Equal(t, "guide/", files.Get("guide/README.md").URL)
	assert.Nil(t, files.Get("README.md"))
}

func TestDiscover_MissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), true)
	require.Error(t, err)
}
