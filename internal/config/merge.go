package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var errNilMergeTarget = errors.New("nil target *Config in ShallowMergeYAML")

// sectionDecoder decodes one top-level YAML section into its Config field.
type sectionDecoder func(node *yaml.Node) error

// replaceSection decodes into a zero value before assigning, so keys the
// overlay omits inside a section are reset rather than kept.
func replaceSection[T any](dst *T) sectionDecoder {
	return func(node *yaml.Node) error {
		var v T
		if err := node.Decode(&v); err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

// sections maps the top-level keys of a config file to their fields.
func (c *Config) sections() map[string]sectionDecoder {
	return map[string]sectionDecoder{
		"version": replaceSection(&c.Version),
		"source":  replaceSection(&c.Source),
		"view":    replaceSection(&c.View),
		"update":  replaceSection(&c.Update),
		"server":  replaceSection(&c.Server),
		"logging": replaceSection(&c.Logging),
	}
}

// ShallowMergeYAML overlays a YAML file onto target one section at a time.
// A section present in the file replaces the whole section in target;
// absent sections and unknown keys leave target untouched.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errNilMergeTarget
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var doc yaml.Node
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}
	if len(doc.Content) == 0 {
		return nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("overlay %s: top level must be a mapping", overlayPath)
	}

	decoders := target.sections()
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		decode, ok := decoders[key]
		if !ok {
			continue
		}
		if err = decode(root.Content[i+1]); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	return nil
}
