package output

import (
	"fmt"
	"strings"
)

// Format is an encoding for rendered objects.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a user supplied format name to a Format. The empty
// string selects JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (expected json or yaml)", s)
	}
}

// ContentType returns the HTTP content type for f.
func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// Config controls how objects are prepared before rendering.
type Config struct {
	// SlimOutput removes the fields listed in ExcludedFields and the
	// annotations listed in ExcludedAnnotations.
	SlimOutput bool `json:"slimOutput" yaml:"slimOutput"`

	// MaskSecrets replaces secret data with "***REDACTED***".
	// Default: true (security critical - should rarely be disabled)
	MaskSecrets bool `json:"maskSecrets" yaml:"maskSecrets"`

	// ExcludedFields lists dotted paths removed in slim mode.
	ExcludedFields []string `json:"excludedFields,omitempty" yaml:"excludedFields,omitempty"`

	// ExcludedAnnotations lists annotation keys removed in slim mode.
	ExcludedAnnotations []string `json:"excludedAnnotations,omitempty" yaml:"excludedAnnotations,omitempty"`
}

// DefaultConfig returns the configuration used by the details endpoint.
func DefaultConfig() *Config {
	return &Config{
		SlimOutput:          true,
		MaskSecrets:         true,
		ExcludedFields:      DefaultExcludedFields(),
		ExcludedAnnotations: DefaultExcludedAnnotations(),
	}
}

// DefaultExcludedFields returns the fields removed in slim mode.
func DefaultExcludedFields() []string {
	return []string{
		// Managed fields are verbose and rarely useful when inspecting an object
		"metadata.managedFields",
		// Self link is deprecated
		"metadata.selfLink",
	}
}

// DefaultExcludedAnnotations returns the annotations removed in slim mode.
// Annotation keys contain dots, so they cannot be expressed as field paths.
func DefaultExcludedAnnotations() []string {
	return []string{
		// Duplicates the entire manifest
		"kubectl.kubernetes.io/last-applied-configuration",
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c

	if c.ExcludedFields != nil {
		clone.ExcludedFields = make([]string, len(c.ExcludedFields))
		copy(clone.ExcludedFields, c.ExcludedFields)
	}
	if c.ExcludedAnnotations != nil {
		clone.ExcludedAnnotations = make([]string, len(c.ExcludedAnnotations))
		copy(clone.ExcludedAnnotations, c.ExcludedAnnotations)
	}

	return &clone
}
