package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// NamedEntry is one item of a markdown_extensions or plugins list.
type NamedEntry struct {
	Name    string
	Options map[string]any
}

// NamedEntries accepts the three shapes used in site configs:
//
//	markdown_extensions:
//	  - tables                  # bare name
//	  - toc:                    # single-key mapping with options
//	      permalink: true
//
//	plugins:                    # or a plain mapping, name -> options
//	  commonmark: {strict: true}
type NamedEntries []NamedEntry

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *NamedEntries) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		out := make(NamedEntries, 0, len(node.Content))
		for _, item := range node.Content {
			entries, err := decodeEntry(item)
			if err != nil {
				return err
			}
			out = append(out, entries...)
		}
		*n = out
		return nil
	case yaml.MappingNode:
		entries, err := decodeMapping(node)
		if err != nil {
			return err
		}
		*n = entries
		return nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*n = nil
			return nil
		}
	}
	return fmt.Errorf("line %d: expected a list or mapping of names", node.Line)
}

func decodeEntry(node *yaml.Node) (NamedEntries, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return NamedEntries{{Name: node.Value}}, nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return nil, fmt.Errorf("line %d: entry must have exactly one name", node.Line)
		}
		return decodeMapping(node)
	}
	return nil, fmt.Errorf("line %d: entry must be a name or a single-key mapping", node.Line)
}

func decodeMapping(node *yaml.Node) (NamedEntries, error) {
	out := make(NamedEntries, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: entry name must be a string", key.Line)
		}
		entry := NamedEntry{Name: key.Value}
		if !(value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
			var opts map[string]any
			if err := value.Decode(&opts); err != nil {
				return nil, fmt.Errorf("line %d: options for %q: %w", value.Line, key.Value, err)
			}
			entry.Options = opts
		}
		out = append(out, entry)
	}
	return out, nil
}

// MarshalYAML writes entries back in list form.
func (n NamedEntries) MarshalYAML() (any, error) {
	out := make([]any, 0, len(n))
	for _, e := range n {
		if len(e.Options) == 0 {
			out = append(out, e.Name)
			continue
		}
		out = append(out, map[string]any{e.Name: e.Options})
	}
	return out, nil
}

// Names returns entry names in declaration order.
func (n NamedEntries) Names() []string {
	names := make([]string, 0, len(n))
	for _, e := range n {
		names = append(names, e.Name)
	}
	return names
}

// Configs returns the options of every entry that has some.
func (n NamedEntries) Configs() map[string]map[string]any {
	out := make(map[string]map[string]any)
	for _, e := range n {
		if len(e.Options) > 0 {
			out[e.Name] = e.Options
		}
	}
	return out
}

// Get looks up an entry by name.
func (n NamedEntries) Get(name string) (NamedEntry, bool) {
	for _, e := range n {
		if e.Name == name {
			return e, true
		}
	}
	return NamedEntry{}, false
}
