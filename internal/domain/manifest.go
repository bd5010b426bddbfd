package domain

import "encoding/json"

// Manifest is a read-only snapshot of a project's package.json.
type Manifest struct {
	Name             string            `json:"name,omitempty"`
	Version          string            `json:"version,omitempty"`
	Scripts          map[string]string `json:"scripts,omitempty"`
	Dependencies     map[string]string `json:"dependencies,omitempty"`
	DevDependencies  map[string]string `json:"devDependencies,omitempty"`
	PeerDependencies map[string]string `json:"peerDependencies,omitempty"`

	// Fields holds every top-level field verbatim, including the ones above.
	Fields map[string]json.RawMessage `json:"-"`
}

// HasField reports whether the manifest declares a truthy top-level field.
// null, false, "" and 0 count as absent. Used for inline tool configuration
// such as "babel".
func (m *Manifest) HasField(name string) bool {
	if m == nil {
		return false
	}
	raw, ok := m.Fields[name]
	if !ok {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	}
	return true
}

// DependencyVersion returns the declared specifier for pkg, looking at
// dependencies, devDependencies and peerDependencies in that order.
func (m *Manifest) DependencyVersion(pkg string) (string, bool) {
	if m == nil {
		return "", false
	}
	for _, deps := range []map[string]string{m.Dependencies, m.DevDependencies, m.PeerDependencies} {
		if v, ok := deps[pkg]; ok {
			return v, true
		}
	}
	return "", false
}

// ScriptUpdate rewrites one package.json script from From to To.
type ScriptUpdate struct {
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}
