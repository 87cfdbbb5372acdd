package toc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNestsByLevel(t *testing.T) {
	got := Build([]Heading{
		{Level: 1, ID: "guide", Title: "Guide"},
		{Level: 2, ID: "install", Title: "Install"},
		{Level: 3, ID: "linux", Title: "Linux"},
		{Level: 2, ID: "usage", Title: "Usage"},
		{Level: 1, ID: "faq", Title: "FAQ"},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "guide", got[0].ID)
	require.Len(t, got[0].Children, 2)
	assert.Equal(t, "install", got[0].Children[0].ID)
	require.Len(t, got[0].Children[0].Children, 1)
	assert.Equal(t, "linux", got[0].Children[0].Children[0].ID)
	assert.Equal(t, "usage", got[0].Children[1].ID)
	assert.Equal(t, "faq", got[1].ID)
	assert.Equal(t, 5, got.Len())
	assert.Equal(t, "#faq", got[1].URL())
}

func TestBuildSkippedLevelsAndLeadingDeepHeading(t *testing.T) {
	got := Build([]Heading{
		{Level: 3, ID: "deep", Title: "Deep"},
		{Level: 1, ID: "top", Title: "Top"},
		{Level: 4, ID: "skip", Title: "Skip"},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "deep", got[0].ID)
	require.Len(t, got[1].Children, 1)
	assert.Equal(t, "skip", got[1].Children[0].ID)
}

func TestBuildEmpty(t *testing.T) {
	var got TOC = Build(nil)
	assert.Empty(t, got)
	assert.Nil(t, got.First())
	assert.Equal(t, 0, got.Len())
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":         "hello-world",
		"  Padded  ":          "padded",
		"Crème Brûlée":        "creme-brulee",
		"snake_case stays":    "snake_case-stays",
		"a -- b":              "a-b",
		"What's new? (v2.0)":  "whats-new-v20",
		"日本語":                 "",
		"Tabs\tand\nnewlines": "tabs-and-newlines",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestIDSetUnique(t *testing.T) {
	ids := NewIDSet()

	assert.Equal(t, "intro", ids.Unique("intro"))
	assert.Equal(t, "intro_1", ids.Unique("intro"))
	assert.Equal(t, "intro_2", ids.Unique("intro"))
	assert.Equal(t, "_1", ids.Unique(""))
	assert.Equal(t, "_2", ids.Unique(""))

	ids.Reserve("custom")
	assert.Equal(t, "custom_1", ids.Unique("custom"))
}
