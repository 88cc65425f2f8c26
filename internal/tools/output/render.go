package output

import (
	"encoding/json"
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/yaml"
)

// Prepare applies the slim and secret masking steps of cfg to obj and
// returns the resulting map. A nil cfg uses DefaultConfig.
func Prepare(obj *unstructured.Unstructured, cfg *Config) map[string]interface{} {
	if obj == nil {
		return nil
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	result := deepCopyMap(obj.Object)
	if cfg.SlimOutput {
		result = SlimResource(result, cfg.ExcludedFields)
		removeAnnotations(result, cfg.ExcludedAnnotations)
	}
	if cfg.MaskSecrets {
		result = MaskSecrets(result)
	}
	return result
}

// RenderObject prepares obj with cfg and encodes it in format.
func RenderObject(obj *unstructured.Unstructured, format Format, cfg *Config) ([]byte, error) {
	if obj == nil {
		return nil, fmt.Errorf("no object to render")
	}
	return Marshal(Prepare(obj, cfg), format)
}

// Marshal encodes v as indented JSON or as YAML. YAML goes through the JSON
// representation so json struct tags apply to both.
func Marshal(v interface{}, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return out, nil
	case FormatJSON, "":
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}
