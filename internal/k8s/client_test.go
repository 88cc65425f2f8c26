package k8s

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockLogger for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.Called(msg, args)
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.Called(msg, args)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.Called(msg, args)
}

func (m *MockLogger) Error(msg string, args ...interface{}) {
	m.Called(msg, args)
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		config      *ClientConfig
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      nil,
			expectError: true,
			errorMsg:    "client configuration is required",
		},
		{
			name:        "valid config with defaults",
			config:      &ClientConfig{},
			expectError: false,
		},
		{
			name: "valid config with custom values",
			config: &ClientConfig{
				QPSLimit:   50.0,
				BurstLimit: 100,
				Timeout:    60 * time.Second,
			},
			expectError: false,
		},
		{
			name: "explicit context",
			config: &ClientConfig{
				Context: "other-context",
			},
			expectError: false,
		},
		{
			name: "unknown context",
			config: &ClientConfig{
				Context: "missing",
			},
			expectError: true,
			errorMsg:    `context "missing" does not exist`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			kubeconfigPath := filepath.Join(tmpDir, "kubeconfig")

			if tt.config != nil {
				tt.config.KubeconfigPath = kubeconfigPath
				createMinimalKubeconfig(t, kubeconfigPath)
			}

			client, err := NewClient(tt.config)

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, client)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, client)

			// NewClient fills defaults into the config it was given.
			assert.Equal(t, tt.config.QPSLimit, client.qpsLimit)
			assert.Equal(t, tt.config.BurstLimit, client.burstLimit)
			assert.Equal(t, tt.config.Timeout, client.timeout)

			if tt.config.Context != "" {
				assert.Equal(t, tt.config.Context, client.CurrentContext())
			} else {
				assert.Equal(t, "test-context", client.CurrentContext())
			}
		})
	}
}

func TestNewClient_AppliesDefaults(t *testing.T) {
	kubeconfigPath := filepath.Join(t.TempDir(), "kubeconfig")
	createMinimalKubeconfig(t, kubeconfigPath)

	config := &ClientConfig{KubeconfigPath: kubeconfigPath}
	client, err := NewClient(config)
	require.NoError(t, err)

	assert.Equal(t, float32(20.0), client.qpsLimit)
	assert.Equal(t, 30, client.burstLimit)
	assert.Equal(t, 30*time.Second, client.timeout)
	assert.NotNil(t, config.Logger)
}

func TestNewClient_LogsContext(t *testing.T) {
	kubeconfigPath := filepath.Join(t.TempDir(), "kubeconfig")
	createMinimalKubeconfig(t, kubeconfigPath)

	mockLogger := &MockLogger{}
	mockLogger.On("Info", "Using kubeconfig authentication", mock.Anything).Return()

	_, err := NewClient(&ClientConfig{KubeconfigPath: kubeconfigPath, Logger: mockLogger})
	require.NoError(t, err)

	mockLogger.AssertExpectations(t)
}

func TestNewClient_KubeconfigFromEnv(t *testing.T) {
	kubeconfigPath := filepath.Join(t.TempDir(), "kubeconfig")
	createMinimalKubeconfig(t, kubeconfigPath)
	t.Setenv("KUBECONFIG", kubeconfigPath)

	config := &ClientConfig{}
	client, err := NewClient(config)
	require.NoError(t, err)

	assert.Equal(t, kubeconfigPath, config.KubeconfigPath)
	assert.Equal(t, "test-context", client.CurrentContext())
}

func TestKubernetesClient_LazyClients(t *testing.T) {
	kubeconfigPath := filepath.Join(t.TempDir(), "kubeconfig")
	createMinimalKubeconfig(t, kubeconfigPath)

	mockLogger := &MockLogger{}
	mockLogger.On("Info", mock.Anything, mock.Anything).Return()
	mockLogger.On("Debug", "created REST config", mock.Anything).Return().Once()

	client, err := NewClient(&ClientConfig{
		KubeconfigPath: kubeconfigPath,
		DebugMode:      true,
		Logger:         mockLogger,
	})
	require.NoError(t, err)

	dyn, err := client.Dynamic()
	require.NoError(t, err)
	assert.NotNil(t, dyn)

	disc, err := client.Discovery()
	require.NoError(t, err)
	assert.NotNil(t, disc)

	again, err := client.Dynamic()
	require.NoError(t, err)
	assert.Same(t, dyn, again)

	restConfig, err := client.getRestConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://test.example.com", restConfig.Host)
	assert.Equal(t, float32(DefaultQPSLimit), restConfig.QPS)
	assert.Equal(t, DefaultBurstLimit, restConfig.Burst)

	// The REST config is built once and shared by both clients.
	mockLogger.AssertExpectations(t)
}

func TestNewStaticClient(t *testing.T) {
	client := NewStaticClient(nil, nil, "fake")

	assert.Equal(t, "fake", client.CurrentContext())
	dyn, err := client.Dynamic()
	assert.NoError(t, err)
	assert.Nil(t, dyn)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".kube", "config"), expandHome("~/.kube/config"))
	assert.Equal(t, "/etc/kubeconfig", expandHome("/etc/kubeconfig"))
	assert.Equal(t, "~other/config", expandHome("~other/config"))
}

// Helper function to create minimal kubeconfig for testing
func createMinimalKubeconfig(t testing.TB, path string) {
	t.Helper()
	kubeconfig := `
apiVersion: v1
kind: Config
clusters:
- cluster:
    server: https://test.example.com
  name: test-cluster
contexts:
- context:
    cluster: test-cluster
    user: test-user
  name: test-context
- context:
    cluster: test-cluster
    user: test-user
    namespace: other
  name: other-context
current-context: test-context
users:
- name: test-user
  user:
    token: test-token
`
	err := os.WriteFile(path, []byte(kubeconfig), 0644)
	require.NoError(t, err)
}

func BenchmarkNewClient(b *testing.B) {
	tmpDir := b.TempDir()
	kubeconfigPath := filepath.Join(tmpDir, "kubeconfig")
	createMinimalKubeconfig(b, kubeconfigPath)

	config := &ClientConfig{
		KubeconfigPath: kubeconfigPath,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		client, err := NewClient(config)
		if err != nil {
			b.Fatal(err)
		}
		_ = client
	}
}
