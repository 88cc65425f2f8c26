package output

import (
	"strings"
)

// RedactedValue is the placeholder used for masked secret data.
const RedactedValue = "***REDACTED***"

// sensitiveAnnotations lists annotations that contain sensitive data.
var sensitiveAnnotations = map[string]bool{
	"kubernetes.io/service-account.uid":   true,
	"kubernetes.io/service-account.name":  true,
	"kubernetes.io/service-account-token": true,
	// Holds the applied manifest, data included
	"kubectl.kubernetes.io/last-applied-configuration": true,
}

// MaskSecrets replaces secret data with redacted placeholders. Keys stay
// visible; only values are replaced. The input is not modified.
func MaskSecrets(obj map[string]interface{}) map[string]interface{} {
	if obj == nil {
		return nil
	}

	result := deepCopyMap(obj)
	if IsSecretResource(result) {
		maskSecretData(result)
	}

	return result
}

// maskSecretData masks the data and stringData fields of a Secret.
func maskSecretData(secret map[string]interface{}) {
	for _, field := range []string{"data", "stringData"} {
		values, ok := secret[field].(map[string]interface{})
		if !ok {
			continue
		}
		masked := make(map[string]interface{}, len(values))
		for key := range values {
			masked[key] = RedactedValue
		}
		secret[field] = masked
	}

	// The type stays visible for context (e.g. kubernetes.io/tls)
	maskSensitiveAnnotations(secret)
}

// maskSensitiveAnnotations masks known sensitive annotations.
func maskSensitiveAnnotations(obj map[string]interface{}) {
	metadata, ok := obj["metadata"].(map[string]interface{})
	if !ok {
		return
	}

	annotations, ok := metadata["annotations"].(map[string]interface{})
	if !ok {
		return
	}

	for key := range annotations {
		if sensitiveAnnotations[key] {
			annotations[key] = RedactedValue
		}
	}
}

// IsSecretResource checks if a resource is a Kubernetes Secret.
func IsSecretResource(obj map[string]interface{}) bool {
	if obj == nil {
		return false
	}

	kind, _ := obj["kind"].(string)
	return strings.EqualFold(kind, "Secret")
}
