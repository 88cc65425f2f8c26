package k8s

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"

	"github.com/giantswarm/kube-explorer/internal/logging"
)

// kubernetesClient implements Client using client-go.
type kubernetesClient struct {
	config *ClientConfig

	kubeconfigData *clientcmdapi.Config
	currentContext string

	restConfig      lazyValue[*rest.Config]
	dynamicClient   lazyValue[dynamic.Interface]
	discoveryClient lazyValue[discovery.DiscoveryInterface]

	qpsLimit   float32
	burstLimit int
	timeout    time.Duration
}

// ClientConfig holds configuration for the Kubernetes client.
type ClientConfig struct {
	// Kubeconfig settings
	KubeconfigPath string
	Context        string

	// InCluster uses the pod's service account instead of a kubeconfig.
	InCluster bool

	// Performance settings
	QPSLimit   float32
	BurstLimit int
	Timeout    time.Duration

	// DebugMode logs every client construction step.
	DebugMode bool

	Logger logging.Logger
}

// NewClient creates a Kubernetes client with the given configuration. The
// REST, dynamic and discovery clients are created on first use.
func NewClient(config *ClientConfig) (*kubernetesClient, error) {
	if config == nil {
		return nil, fmt.Errorf("client configuration is required")
	}

	if config.QPSLimit == 0 {
		config.QPSLimit = DefaultQPSLimit
	}
	if config.BurstLimit == 0 {
		config.BurstLimit = DefaultBurstLimit
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout * time.Second
	}
	if config.Logger == nil {
		config.Logger = logging.DefaultLogger()
	}

	client := &kubernetesClient{
		config:     config,
		qpsLimit:   config.QPSLimit,
		burstLimit: config.BurstLimit,
		timeout:    config.Timeout,
	}

	if config.InCluster {
		client.currentContext = InClusterContext

		if err := client.validateInClusterEnvironment(); err != nil {
			return nil, fmt.Errorf("in-cluster authentication not available: %w", err)
		}

		config.Logger.Info("Using in-cluster authentication")
		return client, nil
	}

	if err := client.loadKubeconfig(); err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	if config.Context != "" {
		client.currentContext = config.Context
	} else {
		client.currentContext = client.kubeconfigData.CurrentContext
	}

	if _, exists := client.kubeconfigData.Contexts[client.currentContext]; !exists && client.currentContext != "" {
		return nil, fmt.Errorf("context %q does not exist in kubeconfig", client.currentContext)
	}

	config.Logger.Info("Using kubeconfig authentication", "context", client.currentContext)
	return client, nil
}

// CurrentContext returns the context the client talks to.
func (c *kubernetesClient) CurrentContext() string {
	return c.currentContext
}

// Dynamic returns the dynamic client, creating it on first use.
func (c *kubernetesClient) Dynamic() (dynamic.Interface, error) {
	return c.dynamicClient.Get(func() (dynamic.Interface, error) {
		restConfig, err := c.getRestConfig()
		if err != nil {
			return nil, err
		}
		dyn, err := dynamic.NewForConfig(restConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create dynamic client: %w", err)
		}
		return dyn, nil
	})
}

// Discovery returns the discovery client, creating it on first use.
func (c *kubernetesClient) Discovery() (discovery.DiscoveryInterface, error) {
	return c.discoveryClient.Get(func() (discovery.DiscoveryInterface, error) {
		restConfig, err := c.getRestConfig()
		if err != nil {
			return nil, err
		}
		disc, err := discovery.NewDiscoveryClientForConfig(restConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create discovery client: %w", err)
		}
		return disc, nil
	})
}

// validateInClusterEnvironment checks that the service account files are mounted.
func (c *kubernetesClient) validateInClusterEnvironment() error {
	if _, err := os.Stat(DefaultTokenPath); os.IsNotExist(err) {
		return fmt.Errorf("service account token not found at %s", DefaultTokenPath)
	}

	if _, err := os.Stat(DefaultCACertPath); os.IsNotExist(err) {
		return fmt.Errorf("service account CA certificate not found at %s", DefaultCACertPath)
	}

	return nil
}

// loadKubeconfig loads the kubeconfig from the configured path, $KUBECONFIG
// or the default locations.
func (c *kubernetesClient) loadKubeconfig() error {
	if kconf := os.Getenv("KUBECONFIG"); kconf != "" && c.config.KubeconfigPath == "" {
		c.config.KubeconfigPath = expandHome(kconf)
	}

	rawConfig, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		c.loadingRules(),
		&clientcmd.ConfigOverrides{},
	).RawConfig()
	if err != nil {
		return fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	c.kubeconfigData = &rawConfig

	return nil
}

func (c *kubernetesClient) loadingRules() *clientcmd.ClientConfigLoadingRules {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if c.config.KubeconfigPath != "" {
		loadingRules.ExplicitPath = c.config.KubeconfigPath
	}
	return loadingRules
}

// getRestConfig returns the rest.Config for the current context.
func (c *kubernetesClient) getRestConfig() (*rest.Config, error) {
	return c.restConfig.Get(func() (*rest.Config, error) {
		var (
			restConfig *rest.Config
			err        error
		)

		if c.config.InCluster {
			restConfig, err = rest.InClusterConfig()
			if err != nil {
				return nil, fmt.Errorf("failed to create in-cluster rest config: %w", err)
			}
		} else {
			restConfig, err = clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
				c.loadingRules(),
				&clientcmd.ConfigOverrides{CurrentContext: c.currentContext},
			).ClientConfig()
			if err != nil {
				return nil, fmt.Errorf("failed to create rest config for context %q: %w", c.currentContext, err)
			}
		}

		restConfig.QPS = c.qpsLimit
		restConfig.Burst = c.burstLimit
		restConfig.Timeout = c.timeout

		if c.config.DebugMode {
			c.config.Logger.Debug("created REST config",
				"context", c.currentContext,
				logging.Host(restConfig.Host),
				"qps", c.qpsLimit,
				"burst", c.burstLimit,
				"timeout", c.timeout)
		}

		return restConfig, nil
	})
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
