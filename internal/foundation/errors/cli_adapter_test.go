package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation", ValidationError("bad flag").Build(), 2},
		{"not found", NotFoundError("no such file").Build(), 3},
		{"config", ConfigError("bad config").Build(), 7},
		{"compat", CompatError("host mismatch").Build(), 9},
		{"plugin", PluginError("unknown plugin").Build(), 9},
		{"render", NewError(CategoryRender, "parse failed").Build(), 11},
		{"internal", InternalError("boom").Build(), 10},
		{"unclassified", errors.New("unknown error"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())

	err := ConfigError("docs_dir does not exist").WithContext("docs_dir", "docs").Build()

	assert.Equal(t, "Error: docs_dir does not exist", quiet.FormatError(err))
	assert.Equal(t, "[config:error] docs_dir does not exist", verbose.FormatError(err))
	assert.Equal(t, "Internal error occurred (use -v for details)", quiet.FormatError(InternalError("x").Build()))
	assert.Equal(t, "Error: plain", quiet.FormatError(errors.New("plain")))
	assert.Empty(t, quiet.FormatError(nil))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs, stderr bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.stderr = &stderr

	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(CompatError("patch target missing").WithContext("target", "page.render").Build())

	assert.Equal(t, 9, code)
	assert.Contains(t, stderr.String(), "patch target missing")
	assert.Contains(t, logs.String(), "category=compat")
	assert.Contains(t, logs.String(), "target=page.render")
}

func TestCLIErrorAdapter_LogsOnlyFatalWhenQuiet(t *testing.T) {
	var logs bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.stderr = &bytes.Buffer{}
	adapter.exit = func(int) {}

	adapter.HandleError(ConfigError("bad config").Build())
	assert.Empty(t, logs.String())

	adapter.HandleError(CompatError("host mismatch").Build())
	assert.Contains(t, logs.String(), "host mismatch")
}
