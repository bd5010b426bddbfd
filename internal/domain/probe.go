package domain

import (
	"strings"
	"unicode"

	"github.com/fatih/camelcase"
)

// ConfigTree is the parsed form of the Storybook main configuration file.
type ConfigTree map[string]any

// GetField follows path through nested maps and returns the value found.
// The second result is false at the first missing segment, when a segment
// is not a map, or when the value is null.
func GetField(tree ConfigTree, path ...string) (any, bool) {
	var cur any = map[string]any(tree)
	for _, key := range path {
		var (
			next any
			ok   bool
		)
		switch node := cur.(type) {
		case map[string]any:
			next, ok = node[key]
		case ConfigTree:
			next, ok = node[key]
		case map[any]any:
			next, ok = node[key]
		default:
			return nil, false
		}
		if !ok || next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// FrameworkField is the value of the "framework" main-config field. It is
// either a FrameworkName or a FrameworkDescriptor.
type FrameworkField interface {
	isFrameworkField()
}

// FrameworkName is the bare string form: framework: "@storybook/react-vite".
type FrameworkName string

// FrameworkDescriptor is the object form: framework: {name: ..., options: ...}.
type FrameworkDescriptor struct {
	Name    string
	Options map[string]any
}

func (FrameworkName) isFrameworkField()       {}
func (FrameworkDescriptor) isFrameworkField() {}

// ParseFrameworkField classifies a raw config value. It returns false for
// values of any other shape.
func ParseFrameworkField(v any) (FrameworkField, bool) {
	switch val := v.(type) {
	case string:
		return FrameworkName(val), true
	case FrameworkName:
		return val, true
	case FrameworkDescriptor:
		return val, true
	case map[string]any:
		return descriptorFrom(ConfigTree(val))
	case ConfigTree:
		return descriptorFrom(val)
	case map[any]any:
		tree := make(ConfigTree, len(val))
		for k, item := range val {
			if ks, ok := k.(string); ok {
				tree[ks] = item
			}
		}
		return descriptorFrom(tree)
	}
	return nil, false
}

func descriptorFrom(tree ConfigTree) (FrameworkField, bool) {
	name, _ := tree["name"].(string)
	d := FrameworkDescriptor{Name: name}
	if opts, ok := tree["options"].(map[string]any); ok {
		d.Options = opts
	}
	return d, true
}

// EffectiveIdentifier returns the framework identifier regardless of shape.
func EffectiveIdentifier(f FrameworkField) string {
	switch val := f.(type) {
	case FrameworkName:
		return strings.TrimSpace(string(val))
	case FrameworkDescriptor:
		return strings.TrimSpace(val.Name)
	}
	return ""
}

const storybookScope = "@storybook/"

// CanonicalFramework reduces a framework identifier to its unscoped,
// kebab-case package name. "@storybook/react-webpack5", "reactWebpack5" and
// "/abs/node_modules/@storybook/react-webpack5" all become "react-webpack5".
func CanonicalFramework(id string) string {
	id = strings.TrimSpace(id)
	if i := strings.LastIndex(id, storybookScope); i >= 0 {
		id = id[i+len(storybookScope):]
	}
	id = strings.TrimSuffix(id, "/")
	if id == "" {
		return ""
	}
	if strings.ContainsAny(id, "-/@") || !hasUpper(id) {
		return strings.ToLower(id)
	}

	var b strings.Builder
	for i, word := range camelcase.Split(id) {
		word = strings.ToLower(word)
		if i > 0 && !isDigits(word) {
			b.WriteByte('-')
		}
		b.WriteString(word)
	}
	return b.String()
}

// FrameworkPackage returns the scoped package name for a canonical id.
func FrameworkPackage(canonical string) string {
	if canonical == "" {
		return ""
	}
	return storybookScope + canonical
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
