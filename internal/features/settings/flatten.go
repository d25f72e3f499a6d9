package settings

import "strings"

// Flatten turns a nested settings document into dotted leaf paths.
// Maps recurse; everything else (scalars, lists) is a leaf.
func Flatten(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	flattenInto(out, "", in)
	return out
}

func flattenInto(out map[string]interface{}, prefix string, in map[string]interface{}) {
	for key, value := range in {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			flattenInto(out, path, nested)
			continue
		}
		out[path] = value
	}
}

// Expand is the inverse of Flatten: dotted paths become nested maps.
func Expand(flat map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for path, value := range flat {
		setPath(out, path, value)
	}
	return out
}

func setPath(out map[string]interface{}, path string, value interface{}) {
	parts := strings.Split(path, ".")
	node := out
	for _, part := range parts[:len(parts)-1] {
		next, ok := node[part].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			node[part] = next
		}
		node = next
	}
	node[parts[len(parts)-1]] = value
}
