package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/giantswarm/kube-explorer/internal/k8s"
	"github.com/giantswarm/kube-explorer/internal/k8s/k8stest"
	"github.com/giantswarm/kube-explorer/internal/logging"
)

var testNow = k8stest.Now

func newTestLogger() logging.Logger {
	return k8stest.DiscardLogger()
}

func newTestLoader(t *testing.T, contextName string) *k8s.Loader {
	return k8stest.NewLoader(t, contextName)
}

// newTestServerContext returns a server context over the fake cluster. The
// catalog is loaded when load is true.
func newTestServerContext(t *testing.T, load bool) *ServerContext {
	t.Helper()

	sc, err := NewServerContext(context.Background(),
		WithLoader(newTestLoader(t, "test-context")),
		WithLogger(newTestLogger()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })

	if load {
		_, err := sc.Loader().Refresh(context.Background())
		require.NoError(t, err)
	}
	return sc
}
