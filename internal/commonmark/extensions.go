package commonmark

import (
	"fmt"
	"maps"
	"slices"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultPermalink is the anchor text used when the toc extension is given
// permalink: true.
const DefaultPermalink = "¶"

// engineBuilder accumulates goldmark options while extension names are mapped.
type engineBuilder struct {
	extenders    []goldmark.Extender
	enabled      map[string]bool
	parserOpts   []parser.Option
	rendererOpts []renderer.Option
	attributes   bool
	permalink    string
	unsupported  []string
}

// use adds an extender once, however many names map onto it.
func (b *engineBuilder) use(key string, ext goldmark.Extender) {
	if b.enabled[key] {
		return
	}
	b.enabled[key] = true
	b.extenders = append(b.extenders, ext)
}

func (b *engineBuilder) reject(item string) {
	b.unsupported = append(b.unsupported, item)
}

// extensionMapping binds one site extension name to goldmark. keys lists the
// config keys the mapping understands; anything else is unsupported.
type extensionMapping struct {
	keys  []string
	apply func(b *engineBuilder, name string, cfg map[string]any)
}

func enable(key string, ext goldmark.Extender) extensionMapping {
	return extensionMapping{apply: func(b *engineBuilder, _ string, _ map[string]any) {
		b.use(key, ext)
	}}
}

var noop = extensionMapping{apply: func(*engineBuilder, string, map[string]any) {}}

var highlight = extensionMapping{
	keys: []string{"style", "pygments_style", "linenums", "noclasses"},
	apply: func(b *engineBuilder, name string, cfg map[string]any) {
		opts := highlightOptions(b, name, cfg)
		b.use("highlight", highlighting.NewHighlighting(opts...))
	},
}

var extensionMappings = map[string]extensionMapping{
	"tables":             enable("table", extension.Table),
	"footnotes":          enable("footnote", extension.Footnote),
	"def_list":           enable("definition_list", extension.DefinitionList),
	"smarty":             enable("typographer", extension.Typographer),
	"strikethrough":      enable("strikethrough", extension.Strikethrough),
	"pymdownx.tilde":     enable("strikethrough", extension.Strikethrough),
	"tasklist":           enable("tasklist", extension.TaskList),
	"pymdownx.tasklist":  enable("tasklist", extension.TaskList),
	"linkify":            enable("linkify", extension.Linkify),
	"pymdownx.magiclink": enable("linkify", extension.Linkify),
	"codehilite":         highlight,
	"pymdownx.highlight": highlight,
	"meta":               noop,
	"fenced_code":        noop,
	"attr_list": {apply: func(b *engineBuilder, _ string, _ map[string]any) {
		b.attributes = true
	}},
	"nl2br": {apply: func(b *engineBuilder, _ string, _ map[string]any) {
		b.rendererOpts = append(b.rendererOpts, html.WithHardWraps())
	}},
	"gfm": {apply: func(b *engineBuilder, _ string, _ map[string]any) {
		b.use("linkify", extension.Linkify)
		b.use("table", extension.Table)
		b.use("strikethrough", extension.Strikethrough)
		b.use("tasklist", extension.TaskList)
	}},
	"extra": {apply: func(b *engineBuilder, _ string, _ map[string]any) {
		b.use("table", extension.Table)
		b.use("footnote", extension.Footnote)
		b.use("definition_list", extension.DefinitionList)
		b.attributes = true
	}},
	"toc": {
		keys: []string{"permalink"},
		apply: func(b *engineBuilder, name string, cfg map[string]any) {
			switch v := cfg["permalink"].(type) {
			case nil:
			case bool:
				if v {
					b.permalink = DefaultPermalink
				}
			case string:
				b.permalink = v
			default:
				b.reject(name + ".permalink")
			}
		},
	},
}

// SupportedExtensions lists every extension name New understands.
func SupportedExtensions() []string {
	return slices.Sorted(maps.Keys(extensionMappings))
}

func (b *engineBuilder) apply(names []string, configs map[string]map[string]any) {
	for _, name := range names {
		m, ok := extensionMappings[name]
		if !ok {
			b.reject(name)
			continue
		}
		cfg := configs[name]
		for _, key := range slices.Sorted(maps.Keys(cfg)) {
			if !slices.Contains(m.keys, key) {
				b.reject(fmt.Sprintf("%s.%s", name, key))
			}
		}
		m.apply(b, name, cfg)
	}
}

func highlightOptions(b *engineBuilder, name string, cfg map[string]any) []highlighting.Option {
	var opts []highlighting.Option
	style := ""
	for _, key := range []string{"pygments_style", "style"} {
		if v, ok := cfg[key]; ok {
			s, isString := v.(string)
			if !isString {
				b.reject(name + "." + key)
				continue
			}
			style = s
		}
	}
	if style != "" {
		opts = append(opts, highlighting.WithStyle(style))
	}

	var format []chromahtml.Option
	if v, ok := flag(b, name, cfg, "linenums"); ok && v {
		format = append(format, chromahtml.WithLineNumbers(true))
	}
	noClasses, _ := flag(b, name, cfg, "noclasses")
	if !noClasses {
		format = append(format, chromahtml.WithClasses(true))
	}
	return append(opts, highlighting.WithFormatOptions(format...))
}

// flag reads a boolean config value. A value of any other type is rejected.
func flag(b *engineBuilder, name string, cfg map[string]any, key string) (bool, bool) {
	v, ok := cfg[key]
	if !ok || v == nil {
		return false, false
	}
	set, isBool := v.(bool)
	if !isBool {
		b.reject(name + "." + key)
		return false, false
	}
	return set, true
}
