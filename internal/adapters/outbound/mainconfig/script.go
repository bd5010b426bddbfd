package mainconfig

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/openkraft/automigrate/internal/domain"
)

// maxResolveDepth bounds identifier chains such as `const a = b; const b = {...}`.
const maxResolveDepth = 8

// wrappers return (a path derived from) their first argument. Main configs
// written for pnp and monorepos wrap package names in them.
var wrappers = map[string]bool{
	"getAbsolutePath": true,
	"wrapForPnP":      true,
	"require.resolve": true,
	"path.dirname":    true,
	"dirname":         true,
	"path.join":       true,
	"join":            true,
	"defineMain":      true,
}

func languageFor(path string) unsafe.Pointer {
	switch filepath.Ext(path) {
	case ".ts", ".mts", ".cts":
		return tree_sitter_typescript.LanguageTypescript()
	case ".tsx":
		return tree_sitter_typescript.LanguageTSX()
	default:
		return tree_sitter_javascript.Language()
	}
}

// parseScript reads the exported config object of a JS/TS main config.
// Properties whose value cannot be known without running the file are
// omitted.
func parseScript(path string, data []byte) (domain.ConfigTree, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(tree_sitter.NewLanguage(languageFor(path))); err != nil {
		return nil, fmt.Errorf("loading grammar for %s: %w", filepath.Base(path), err)
	}

	tree := parser.Parse(data, nil)
	if tree == nil {
		return nil, fmt.Errorf("parsing %s: parser returned no tree", filepath.Base(path))
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if bad := firstError(root); bad != nil {
			pos := bad.StartPosition()
			return nil, fmt.Errorf("parsing %s: syntax error at line %d, column %d", filepath.Base(path), pos.Row+1, pos.Column+1)
		}
		return nil, fmt.Errorf("parsing %s: syntax error", filepath.Base(path))
	}

	s := &script{src: data, decls: map[string]*tree_sitter.Node{}}
	s.collect(root)
	return s.exported(), nil
}

type script struct {
	src   []byte
	decls map[string]*tree_sitter.Node

	defaultExport *tree_sitter.Node
	named         []namedExport
}

type namedExport struct {
	key   string
	value *tree_sitter.Node
}

// collect records top-level declarations and every form of export.
func (s *script) collect(root *tree_sitter.Node) {
	for i := uint(0); i < root.NamedChildCount(); i++ {
		stmt := root.NamedChild(i)
		switch stmt.Kind() {
		case "lexical_declaration", "variable_declaration":
			s.declare(stmt, false)
		case "export_statement":
			if value := stmt.ChildByFieldName("value"); value != nil {
				s.defaultExport = value
			} else if decl := stmt.ChildByFieldName("declaration"); decl != nil {
				s.declare(decl, true)
			}
		case "expression_statement":
			s.assignment(stmt.NamedChild(0))
		}
	}
}

func (s *script) declare(decl *tree_sitter.Node, exported bool) {
	for i := uint(0); i < decl.NamedChildCount(); i++ {
		d := decl.NamedChild(i)
		if d.Kind() != "variable_declarator" {
			continue
		}
		name, value := d.ChildByFieldName("name"), d.ChildByFieldName("value")
		if name == nil || value == nil || name.Kind() != "identifier" {
			continue
		}
		key := s.text(name)
		s.decls[key] = value
		if exported {
			s.named = append(s.named, namedExport{key: key, value: value})
		}
	}
}

// assignment handles module.exports = ..., module.exports.x = ... and exports.x = ....
func (s *script) assignment(expr *tree_sitter.Node) {
	if expr == nil || expr.Kind() != "assignment_expression" {
		return
	}
	left, right := expr.ChildByFieldName("left"), expr.ChildByFieldName("right")
	if left == nil || right == nil {
		return
	}
	target := s.text(left)
	switch {
	case target == "module.exports":
		s.defaultExport = right
	case strings.HasPrefix(target, "module.exports."):
		s.named = append(s.named, namedExport{key: strings.TrimPrefix(target, "module.exports."), value: right})
	case strings.HasPrefix(target, "exports."):
		s.named = append(s.named, namedExport{key: strings.TrimPrefix(target, "exports."), value: right})
	}
}

func (s *script) exported() domain.ConfigTree {
	tree := domain.ConfigTree{}
	if s.defaultExport != nil {
		if obj, ok := s.value(s.defaultExport, 0).(map[string]any); ok {
			for k, v := range obj {
				tree[k] = v
			}
		}
	}
	for _, n := range s.named {
		if _, set := tree[n.key]; set || strings.Contains(n.key, ".") {
			continue
		}
		if v, ok := s.resolve(n.value, 0); ok {
			tree[n.key] = v
		}
	}
	return tree
}

// value is resolve without the ok flag; unknown values become nil.
func (s *script) value(n *tree_sitter.Node, depth int) any {
	v, _ := s.resolve(n, depth)
	return v
}

// resolve turns a literal expression into its Go value. It reports false
// for anything that would need evaluation.
func (s *script) resolve(n *tree_sitter.Node, depth int) (any, bool) {
	if n == nil || depth > maxResolveDepth {
		return nil, false
	}

	switch n.Kind() {
	case "string":
		return s.stringValue(n), true
	case "template_string":
		return s.templateValue(n)
	case "number":
		f, err := strconv.ParseFloat(strings.ReplaceAll(s.text(n), "_", ""), 64)
		return f, err == nil
	case "true":
		return true, true
	case "false":
		return false, true
	case "null":
		return nil, true
	case "object":
		return s.objectValue(n, depth), true
	case "array":
		return s.arrayValue(n, depth), true
	case "identifier":
		decl, ok := s.decls[s.text(n)]
		if !ok {
			return nil, false
		}
		return s.resolve(decl, depth+1)
	case "parenthesized_expression", "as_expression", "satisfies_expression", "non_null_expression":
		return s.resolve(firstNamed(n), depth+1)
	case "call_expression":
		fn := n.ChildByFieldName("function")
		args := n.ChildByFieldName("arguments")
		if fn == nil || args == nil || !wrappers[s.text(fn)] {
			return nil, false
		}
		return s.resolve(firstNamed(args), depth+1)
	}
	return nil, false
}

func (s *script) objectValue(n *tree_sitter.Node, depth int) map[string]any {
	obj := map[string]any{}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		member := n.NamedChild(i)
		switch member.Kind() {
		case "pair":
			key, ok := s.key(member.ChildByFieldName("key"))
			if !ok {
				continue
			}
			if v, ok := s.resolve(member.ChildByFieldName("value"), depth+1); ok {
				obj[key] = v
			}
		case "shorthand_property_identifier":
			key := s.text(member)
			if decl, ok := s.decls[key]; ok {
				if v, ok := s.resolve(decl, depth+1); ok {
					obj[key] = v
				}
			}
		case "spread_element":
			if spread, ok := s.resolve(firstNamed(member), depth+1); ok {
				if m, ok := spread.(map[string]any); ok {
					for k, v := range m {
						obj[k] = v
					}
				}
			}
		}
	}
	return obj
}

func (s *script) arrayValue(n *tree_sitter.Node, depth int) []any {
	arr := []any{}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		item := n.NamedChild(i)
		if item.Kind() == "comment" {
			continue
		}
		arr = append(arr, s.value(item, depth+1))
	}
	return arr
}

func (s *script) key(n *tree_sitter.Node) (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Kind() {
	case "property_identifier", "number":
		return s.text(n), true
	case "string":
		return s.stringValue(n), true
	}
	return "", false
}

func (s *script) stringValue(n *tree_sitter.Node) string {
	var b strings.Builder
	for i := uint(0); i < n.NamedChildCount(); i++ {
		part := n.NamedChild(i)
		switch part.Kind() {
		case "string_fragment":
			b.WriteString(s.text(part))
		case "escape_sequence":
			b.WriteString(unescape(s.text(part)))
		}
	}
	return b.String()
}

func (s *script) templateValue(n *tree_sitter.Node) (any, bool) {
	var b strings.Builder
	for i := uint(0); i < n.NamedChildCount(); i++ {
		part := n.NamedChild(i)
		switch part.Kind() {
		case "template_substitution":
			return nil, false
		case "string_fragment":
			b.WriteString(s.text(part))
		case "escape_sequence":
			b.WriteString(unescape(s.text(part)))
		}
	}
	return b.String(), true
}

func (s *script) text(n *tree_sitter.Node) string {
	return n.Utf8Text(s.src)
}

func unescape(seq string) string {
	switch seq {
	case `\'`, `\"`, "\\`":
		return seq[1:]
	}
	if u, err := strconv.Unquote(`"` + seq + `"`); err == nil {
		return u
	}
	return strings.TrimPrefix(seq, `\`)
}

func firstNamed(n *tree_sitter.Node) *tree_sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if c := n.NamedChild(i); c.Kind() != "comment" {
			return c
		}
	}
	return nil
}

func firstError(n *tree_sitter.Node) *tree_sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if bad := firstError(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}
