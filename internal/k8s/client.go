package k8s

import (
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
)

// Client gives the catalog loader access to one cluster.
type Client interface {
	// Dynamic returns a dynamic client for listing arbitrary resources.
	Dynamic() (dynamic.Interface, error)

	// Discovery returns a discovery client for enumerating served resources.
	Discovery() (discovery.DiscoveryInterface, error)

	// CurrentContext returns the kubeconfig context in use, or
	// InClusterContext when running inside a pod.
	CurrentContext() string
}

// staticClient serves pre-built clients. Tests and embedders use it to run
// the loader against fakes.
type staticClient struct {
	dynamic   dynamic.Interface
	discovery discovery.DiscoveryInterface
	context   string
}

// NewStaticClient returns a Client backed by the given interfaces.
func NewStaticClient(dyn dynamic.Interface, disc discovery.DiscoveryInterface, contextName string) Client {
	return &staticClient{dynamic: dyn, discovery: disc, context: contextName}
}

func (c *staticClient) Dynamic() (dynamic.Interface, error) {
	return c.dynamic, nil
}

func (c *staticClient) Discovery() (discovery.DiscoveryInterface, error) {
	return c.discovery, nil
}

func (c *staticClient) CurrentContext() string {
	return c.context
}
