package output

import (
	"strings"
)

// SlimResource removes verbose fields from a resource map. Paths use dot
// notation with [*] for array wildcards. The input is not modified.
func SlimResource(obj map[string]interface{}, excludedFields []string) map[string]interface{} {
	if obj == nil {
		return nil
	}

	if len(excludedFields) == 0 {
		excludedFields = DefaultExcludedFields()
	}

	result := deepCopyMap(obj)
	for _, field := range excludedFields {
		removeField(result, field)
	}

	return result
}

// removeAnnotations deletes the given annotation keys in place. The
// annotations map is dropped when it ends up empty.
func removeAnnotations(obj map[string]interface{}, keys []string) {
	metadata, ok := obj["metadata"].(map[string]interface{})
	if !ok {
		return
	}
	annotations, ok := metadata["annotations"].(map[string]interface{})
	if !ok {
		return
	}

	for _, key := range keys {
		delete(annotations, key)
	}
	if len(annotations) == 0 {
		delete(metadata, "annotations")
	}
}

// removeField removes a field at the specified path from a map.
// Examples:
//   - "metadata.managedFields" -> removes obj["metadata"]["managedFields"]
//   - "status.conditions[*].lastTransitionTime" -> removes field from all array elements
func removeField(obj map[string]interface{}, path string) {
	if obj == nil || path == "" {
		return
	}

	removeFieldRecursive(obj, strings.Split(path, "."))
}

func removeFieldRecursive(obj map[string]interface{}, parts []string) {
	if len(parts) == 0 || obj == nil {
		return
	}

	current := parts[0]
	remaining := parts[1:]

	if fieldName, ok := strings.CutSuffix(current, "[*]"); ok {
		array, ok := obj[fieldName].([]interface{})
		if !ok || len(remaining) == 0 {
			return
		}
		for _, elem := range array {
			if elemMap, ok := elem.(map[string]interface{}); ok {
				removeFieldRecursive(elemMap, remaining)
			}
		}
		return
	}

	if len(remaining) == 0 {
		delete(obj, current)
		return
	}

	nextMap, ok := obj[current].(map[string]interface{})
	if !ok {
		return
	}
	removeFieldRecursive(nextMap, remaining)
}

// deepCopyMap creates a deep copy of a map.
func deepCopyMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}

	result := make(map[string]interface{}, len(m))
	for k, v := range m {
		result[k] = deepCopyValue(v)
	}

	return result
}

func deepCopyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return deepCopyMap(val)
	case []interface{}:
		result := make([]interface{}, len(val))
		for i, item := range val {
			result[i] = deepCopyValue(item)
		}
		return result
	default:
		// Primitives (string, int64, bool, etc.) are copied by value
		return v
	}
}
