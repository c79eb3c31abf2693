package config

import "strings"

// Tree is a configuration mapping from string keys to values. Values are
// scalars, []any lists, or nested mappings (Tree or the map[string]any that
// yaml.v3 produces for nested documents). Key order is irrelevant and no
// schema is enforced beyond the top level being a mapping.
type Tree map[string]any

// DeepMerge combines base and override into a new Tree, with override taking
// precedence. Keys present in both sides with mapping values on both sides
// are merged recursively; any other conflict takes the override value
// verbatim, including a mapping being replaced by a scalar or vice versa.
// Lists are never merged element-wise.
//
// Neither input is mutated. Nil inputs are treated as empty mappings, so the
// function is total over any two inputs.
func DeepMerge(base, override Tree) Tree {
	result := make(Tree, len(base)+len(override))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range override {
		existing, ok := asTree(result[k])
		if incoming, okOverride := asTree(v); ok && okOverride {
			result[k] = DeepMerge(existing, incoming)
			continue
		}
		result[k] = v
	}
	return result
}

// asTree reports whether v is a mapping, normalizing both Tree and the
// map[string]any representation produced by the YAML decoder.
func asTree(v any) (Tree, bool) {
	switch m := v.(type) {
	case Tree:
		return m, true
	case map[string]any:
		return Tree(m), true
	default:
		return nil, false
	}
}

// Sub returns the nested mapping at the dotted path, or nil if the path is
// absent or any intermediate value is not a mapping.
func (t Tree) Sub(path string) Tree {
	current := t
	for _, key := range strings.Split(path, ".") {
		next, ok := asTree(current[key])
		if !ok {
			return nil
		}
		current = next
	}
	return current
}

// Value returns the raw value at the dotted path. The second return value
// reports whether the path was present.
func (t Tree) Value(path string) (any, bool) {
	keys := strings.Split(path, ".")
	current := t
	for _, key := range keys[:len(keys)-1] {
		next, ok := asTree(current[key])
		if !ok {
			return nil, false
		}
		current = next
	}
	v, ok := current[keys[len(keys)-1]]
	return v, ok
}

// String returns the string value at the dotted path, or fallback if the
// path is absent or holds a non-string value.
func (t Tree) String(path, fallback string) string {
	if v, ok := t.Value(path); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// Bool returns the boolean value at the dotted path, or fallback if the path
// is absent or holds a non-boolean value.
func (t Tree) Bool(path string, fallback bool) bool {
	if v, ok := t.Value(path); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return fallback
}

// Strings returns the list of strings at the dotted path. Non-string list
// elements are skipped. An absent path or a non-list value yields nil.
func (t Tree) Strings(path string) []string {
	v, ok := t.Value(path)
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
