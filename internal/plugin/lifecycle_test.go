package plugin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite-commonmark/internal/config"
)

// hookPlugin records lifecycle calls into a shared journal.
type hookPlugin struct {
	mockPlugin
	journal *[]string
	preErr  error
	postErr error
}

func (h *hookPlugin) OnPreBuild(pctx *PluginContext) error {
	*h.journal = append(*h.journal, "pre:"+h.metadata.Name+":"+tag(pctx))
	return h.preErr
}

func tag(pctx *PluginContext) string {
	if v, ok := pctx.Options["tag"].(string); ok {
		return v
	}
	return "-"
}

func (h *hookPlugin) OnPostBuild(pctx *PluginContext) error {
	*h.journal = append(*h.journal, "post:"+h.metadata.Name)
	return h.postErr
}

func newHookPlugin(name string, journal *[]string) *hookPlugin {
	return &hookPlugin{
		mockPlugin: mockPlugin{metadata: PluginMetadata{Name: name, Version: "v1", Type: PluginTypeRenderer}},
		journal:    journal,
	}
}

func TestLifecycleOrder(t *testing.T) {
	var journal []string
	a := newHookPlugin("a", &journal)
	b := newHookPlugin("b", &journal)
	plain := newMockPlugin("plain", "v1", PluginTypeRenderer)

	enabled := []Enabled{
		{Plugin: a, Options: map[string]any{"tag": "x"}},
		{Plugin: plain},
		{Plugin: b},
	}
	pctx := NewPluginContext(context.Background(), nil, config.Default(), "build-1")

	ran, err := RunPreBuild(pctx, enabled)
	require.NoError(t, err)
	assert.Len(t, ran, 2)
	require.NoError(t, RunPostBuild(pctx, ran))

	assert.Equal(t, []string{"pre:a:x", "pre:b:-", "post:b", "post:a"}, journal)
}

func TestPreBuildFailureReportsWhatRan(t *testing.T) {
	var journal []string
	a := newHookPlugin("a", &journal)
	b := newHookPlugin("b", &journal)
	b.preErr = errors.New("host mismatch")
	c := newHookPlugin("c", &journal)

	pctx := NewPluginContext(context.Background(), nil, config.Default(), "build-2")
	ran, err := RunPreBuild(pctx, []Enabled{{Plugin: a}, {Plugin: b}, {Plugin: c}})

	require.Error(t, err)
	var perr *PluginError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "b", perr.PluginName)
	assert.Equal(t, "pre_build", perr.Operation)
	require.Len(t, ran, 1)
	assert.Equal(t, "a", ran[0].Name())
	assert.NotContains(t, journal, "pre:c:-")
}

func TestPostBuildRunsAllAndJoinsErrors(t *testing.T) {
	var journal []string
	a := newHookPlugin("a", &journal)
	a.postErr = errors.New("a broke")
	b := newHookPlugin("b", &journal)
	b.postErr = errors.New("b broke")

	pctx := NewPluginContext(context.Background(), nil, config.Default(), "build-3")
	err := RunPostBuild(pctx, []Enabled{{Plugin: a}, {Plugin: b}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "a broke")
	assert.Contains(t, err.Error(), "b broke")
	assert.Equal(t, []string{"post:b", "post:a"}, journal)
}

func TestPluginContextOptions(t *testing.T) {
	pctx := NewPluginContext(context.Background(), nil, config.Default(), "id").
		ForPlugin("commonmark", map[string]any{"strict": true, "style": "monokai", "n": 3})

	assert.True(t, pctx.Bool("strict", false))
	assert.True(t, pctx.Bool("missing", true))
	assert.False(t, pctx.Bool("n", false))
	assert.Equal(t, "monokai", pctx.Options["style"])
	assert.Equal(t, "id", pctx.BuildID)
}
