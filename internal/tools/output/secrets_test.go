package output

import (
	"testing"
)

func TestMaskSecrets(t *testing.T) {
	tests := []struct {
		name       string
		obj        map[string]interface{}
		wantMasked bool
	}{
		{
			name:       "nil object",
			obj:        nil,
			wantMasked: false,
		},
		{
			name: "non-secret resource",
			obj: map[string]interface{}{
				"kind":       "ConfigMap",
				"apiVersion": "v1",
				"metadata": map[string]interface{}{
					"name": "settings",
				},
				"data": map[string]interface{}{
					"mode": "production",
				},
			},
			wantMasked: false,
		},
		{
			name: "secret with data",
			obj: map[string]interface{}{
				"kind":       "Secret",
				"apiVersion": "v1",
				"metadata": map[string]interface{}{
					"name": "test-secret",
				},
				"data": map[string]interface{}{
					"username": "dXNlcm5hbWU=",
					"password": "cGFzc3dvcmQ=",
				},
				"type": "Opaque",
			},
			wantMasked: true,
		},
		{
			name: "secret with stringData",
			obj: map[string]interface{}{
				"kind":       "Secret",
				"apiVersion": "v1",
				"metadata": map[string]interface{}{
					"name": "test-secret",
				},
				"stringData": map[string]interface{}{
					"config": "sensitive-config-data",
				},
				"type": "Opaque",
			},
			wantMasked: true,
		},
		{
			name: "secret - lowercase kind",
			obj: map[string]interface{}{
				"kind": "secret",
				"data": map[string]interface{}{
					"key": "value",
				},
			},
			wantMasked: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MaskSecrets(tt.obj)

			if tt.obj == nil {
				if result != nil {
					t.Errorf("MaskSecrets(nil) = %v, want nil", result)
				}
				return
			}

			for _, field := range []string{"data", "stringData"} {
				original, ok := tt.obj[field].(map[string]interface{})
				if !ok {
					continue
				}
				masked, ok := result[field].(map[string]interface{})
				if !ok {
					t.Fatalf("%s missing from result", field)
				}
				if len(masked) != len(original) {
					t.Errorf("%s has %d keys, want %d", field, len(masked), len(original))
				}
				for key, value := range original {
					got := masked[key]
					if tt.wantMasked && got != RedactedValue {
						t.Errorf("%s[%s] = %v, want %s", field, key, got, RedactedValue)
					}
					if !tt.wantMasked && got != value {
						t.Errorf("%s[%s] = %v, want unchanged %v", field, key, got, value)
					}
				}
			}
		})
	}
}

func TestMaskSecrets_DoesNotModifyInput(t *testing.T) {
	obj := map[string]interface{}{
		"kind": "Secret",
		"data": map[string]interface{}{
			"token": "c2VjcmV0",
		},
	}

	_ = MaskSecrets(obj)

	data := obj["data"].(map[string]interface{})
	if data["token"] != "c2VjcmV0" {
		t.Errorf("input was modified: data[token] = %v", data["token"])
	}
}

func TestMaskSecrets_SensitiveAnnotations(t *testing.T) {
	obj := map[string]interface{}{
		"kind": "Secret",
		"metadata": map[string]interface{}{
			"name": "sa-token",
			"annotations": map[string]interface{}{
				"kubernetes.io/service-account.name": "builder",
				"owner":                              "platform",
			},
		},
		"type": "kubernetes.io/service-account-token",
	}

	result := MaskSecrets(obj)

	annotations := result["metadata"].(map[string]interface{})["annotations"].(map[string]interface{})
	if annotations["kubernetes.io/service-account.name"] != RedactedValue {
		t.Errorf("service account annotation not masked: %v", annotations["kubernetes.io/service-account.name"])
	}
	if annotations["owner"] != "platform" {
		t.Errorf("unrelated annotation changed: %v", annotations["owner"])
	}
	if result["type"] != "kubernetes.io/service-account-token" {
		t.Errorf("type should stay visible, got %v", result["type"])
	}
}

func TestMaskSecrets_LastAppliedConfiguration(t *testing.T) {
	const applied = `{"apiVersion":"v1","kind":"Secret","data":{"password":"aHVudGVyMg=="}}`

	tests := []struct {
		name string
		kind string
		want string
	}{
		{name: "secret", kind: "Secret", want: RedactedValue},
		{name: "config map keeps it", kind: "ConfigMap", want: applied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := map[string]interface{}{
				"kind": tt.kind,
				"metadata": map[string]interface{}{
					"annotations": map[string]interface{}{
						"kubectl.kubernetes.io/last-applied-configuration": applied,
					},
				},
			}

			result := MaskSecrets(obj)

			annotations := result["metadata"].(map[string]interface{})["annotations"].(map[string]interface{})
			if got := annotations["kubectl.kubernetes.io/last-applied-configuration"]; got != tt.want {
				t.Errorf("last-applied-configuration = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsSecretResource(t *testing.T) {
	tests := []struct {
		name string
		obj  map[string]interface{}
		want bool
	}{
		{name: "nil", obj: nil, want: false},
		{name: "secret", obj: map[string]interface{}{"kind": "Secret"}, want: true},
		{name: "upper case", obj: map[string]interface{}{"kind": "SECRET"}, want: true},
		{name: "pod", obj: map[string]interface{}{"kind": "Pod"}, want: false},
		{name: "no kind", obj: map[string]interface{}{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSecretResource(tt.obj); got != tt.want {
				t.Errorf("IsSecretResource() = %v, want %v", got, tt.want)
			}
		})
	}
}
