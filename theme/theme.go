// Package theme loads named style templates from TOML and YAML files.
//
// A theme file holds a "styles" table keyed by template name. Each entry
// maps kebab-case property names to values and may list the templates it
// inherits from and the transitions it declares:
//
//	[styles.button]
//	inherit = ["base"]
//	background-color = "#2b6cb0"
//	width = "120px"
//	[styles.button.transitions]
//	background-color = { duration = 0.2, easing = "ease-out" }
//
//	[styles."button:hovered"]
//	background-color = "#2c5282"
//
// A "classes" table declares whole style families with utility classes:
//
//	[classes]
//	chip = "bg-[#edf2f7] hover:bg-[#e2e8f0] rounded-full px-3 transition-colors"
package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/agiangrant/paper/internal/logger"
	"github.com/agiangrant/paper/style"
)

var (
	// ErrInvalidTheme is returned for theme files that cannot be decoded or
	// that contain invalid entries.
	ErrInvalidTheme = errors.New("theme: invalid theme")

	// ErrInheritCycle is returned when templates inherit from each other.
	ErrInheritCycle = errors.New("theme: inheritance cycle")
)

// Format identifies a theme file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unsupported file extension %q", ErrInvalidTheme, filepath.Ext(path))
	}
}

const (
	keyInherit     = "inherit"
	keyTransitions = "transitions"
)

// document is the raw decoded file.
type document struct {
	Styles  map[string]map[string]any `toml:"styles" yaml:"styles"`
	Classes map[string]string         `toml:"classes" yaml:"classes"`
}

// Definition is one compiled template.
type Definition struct {
	Name     string
	Inherit  []string
	Template *style.Template
}

// Family is a style family declared with utility classes.
type Family struct {
	Name string
	*ClassFamily
}

// Theme is a decoded theme. Definitions are ordered so that every template
// comes after the templates it inherits from.
type Theme struct {
	Definitions []Definition
	Families    []Family
}

// Names returns the template names in install order, followed by the
// families declared with classes.
func (th *Theme) Names() []string {
	names := make([]string, 0, len(th.Definitions)+len(th.Families))
	for _, d := range th.Definitions {
		names = append(names, d.Name)
	}
	for _, f := range th.Families {
		names = append(names, f.Name)
	}
	return names
}

// Parse decodes and compiles a theme.
func Parse(data []byte, format Format) (*Theme, error) {
	var doc document
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidTheme, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidTheme, err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidTheme, format)
	}
	return compile(doc)
}

// LoadFile reads the theme at path and installs it into set.
func LoadFile(path string, set *style.TemplateSet, log *logger.Logger) (*Theme, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme %s: %w", path, err)
	}
	th, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := th.Install(set); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Component("theme").Debug("theme loaded", "path", path, "styles", len(th.Definitions), "families", len(th.Families))
	return th, nil
}

// Install defines every template of the theme in set. Parents that are not
// part of the theme must already be registered in set. Nothing is
// registered when a parent is missing.
func (th *Theme) Install(set *style.TemplateSet) error {
	local := make(map[string]bool, len(th.Definitions))
	for _, d := range th.Definitions {
		local[d.Name] = true
	}
	for _, d := range th.Definitions {
		for _, parent := range d.Inherit {
			if local[parent] {
				continue
			}
			if _, ok := set.Lookup(parent); !ok {
				return fmt.Errorf("%w: %q (parent of %q)", style.ErrStyleNotFound, parent, d.Name)
			}
		}
	}

	for _, d := range th.Definitions {
		t, err := set.Define(d.Name, d.Inherit...)
		if err != nil {
			return err
		}
		if err := d.Template.ApplyTo(t); err != nil {
			return fmt.Errorf("install %q: %w", d.Name, err)
		}
	}
	for _, f := range th.Families {
		f.Register(set, f.Name)
	}
	return nil
}

func compile(doc document) (*Theme, error) {
	names := make([]string, 0, len(doc.Styles))
	for name := range doc.Styles {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make(map[string]Definition, len(names))
	for _, name := range names {
		if err := validateName(name); err != nil {
			return nil, err
		}
		d, err := compileStyle(name, doc.Styles[name])
		if err != nil {
			return nil, fmt.Errorf("%w: style %q: %w", ErrInvalidTheme, name, err)
		}
		defs[name] = d
	}

	order, err := installOrder(names, defs)
	if err != nil {
		return nil, err
	}
	th := &Theme{Definitions: make([]Definition, 0, len(order))}
	for _, name := range order {
		th.Definitions = append(th.Definitions, defs[name])
	}

	families := make([]string, 0, len(doc.Classes))
	for name := range doc.Classes {
		families = append(families, name)
	}
	sort.Strings(families)
	for _, name := range families {
		if err := validateName(name); err != nil {
			return nil, err
		}
		if _, dup := defs[name]; dup {
			return nil, fmt.Errorf("%w: %q is declared as both a style and classes", ErrInvalidTheme, name)
		}
		f, err := ParseClasses(doc.Classes[name])
		if err != nil {
			return nil, fmt.Errorf("%w: classes %q: %w", ErrInvalidTheme, name, err)
		}
		th.Families = append(th.Families, Family{Name: name, ClassFamily: f})
	}
	return th, nil
}

func compileStyle(name string, entries map[string]any) (Definition, error) {
	d := Definition{Name: name, Template: style.NewTemplate()}

	if raw, ok := entries[keyInherit]; ok {
		inherit, err := stringList(raw)
		if err != nil {
			return d, fmt.Errorf("%s: %w", keyInherit, err)
		}
		d.Inherit = inherit
	}

	if raw, ok := entries[keyTransitions]; ok {
		table, ok := raw.(map[string]any)
		if !ok {
			return d, fmt.Errorf("%s: want a table, got %T", keyTransitions, raw)
		}
		for _, key := range sortedKeys(table) {
			p, err := style.ParseProperty(key)
			if err != nil {
				return d, fmt.Errorf("%s: %w", keyTransitions, err)
			}
			tr, err := decodeTransition(table[key])
			if err != nil {
				return d, fmt.Errorf("%s.%s: %w", keyTransitions, key, err)
			}
			d.Template.Transition(p, tr.Duration, style.EasingByName(tr.Easing))
		}
	}

	for _, key := range sortedKeys(entries) {
		if key == keyInherit || key == keyTransitions {
			continue
		}
		p, err := style.ParseProperty(key)
		if err != nil {
			return d, err
		}
		v, err := decodeValue(p, entries[key])
		if err != nil {
			return d, fmt.Errorf("%s: %w", key, err)
		}
		d.Template.Set(p, v)
	}
	return d, d.Template.Err()
}

// installOrder sorts names so that parents precede children. Parents that
// are not in defs are left for Install to resolve.
func installOrder(names []string, defs map[string]Definition) ([]string, error) {
	visiting := make(map[string]bool, len(names))
	visited := make(map[string]bool, len(names))
	order := make([]string, 0, len(names))
	var stack []string

	var visit func(string) error
	visit = func(name string) error {
		if visited[name] {
			return nil
		}
		if visiting[name] {
			idx := slices.Index(stack, name)
			cycle := append(slices.Clone(stack[idx:]), name)
			return fmt.Errorf("%w: %s", ErrInheritCycle, strings.Join(cycle, " -> "))
		}
		visiting[name] = true
		stack = append(stack, name)

		for _, parent := range defs[name].Inherit {
			if _, local := defs[parent]; !local {
				continue
			}
			if err := visit(parent); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		visiting[name] = false
		visited[name] = true
		order = append(order, name)
		return nil
	}

	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func stringList(raw any) ([]string, error) {
	if s, ok := raw.(string); ok {
		return []string{s}, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("want a list of names, got %T", raw)
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("want a name, got %T", v)
		}
		out = append(out, s)
	}
	return out, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
