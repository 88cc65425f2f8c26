// Package k8stest provides a fake cluster for tests of packages built on the
// catalog loader.
package k8stest

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	fakediscovery "k8s.io/client-go/discovery/fake"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	clienttesting "k8s.io/client-go/testing"

	"github.com/giantswarm/kube-explorer/internal/k8s"
	"github.com/giantswarm/kube-explorer/internal/logging"
)

// Now is the clock of the fake cluster.
var Now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

var listVerbs = metav1.Verbs{"get", "list", "watch"}

// APIResources describes pods, services, secrets and deployments.
func APIResources() []*metav1.APIResourceList {
	return []*metav1.APIResourceList{
		{
			GroupVersion: "v1",
			APIResources: []metav1.APIResource{
				{Name: "pods", Kind: "Pod", Namespaced: true, Verbs: listVerbs},
				{Name: "services", Kind: "Service", Namespaced: true, Verbs: listVerbs},
				{Name: "secrets", Kind: "Secret", Namespaced: true, Verbs: listVerbs},
			},
		},
		{
			GroupVersion: "apps/v1",
			APIResources: []metav1.APIResource{
				{Name: "deployments", Kind: "Deployment", Namespaced: true, Verbs: listVerbs},
			},
		},
	}
}

// Object returns an object in the default namespace created an hour before Now.
func Object(apiVersion, kind, name string, labels map[string]string, fields map[string]interface{}) *unstructured.Unstructured {
	obj := &unstructured.Unstructured{Object: map[string]interface{}{}}
	for k, v := range fields {
		obj.Object[k] = v
	}
	obj.SetAPIVersion(apiVersion)
	obj.SetKind(kind)
	obj.SetNamespace("default")
	obj.SetName(name)
	obj.SetLabels(labels)
	obj.SetCreationTimestamp(metav1.NewTime(Now.Add(-time.Hour)))
	return obj
}

// Objects returns the content of the fake cluster:
//
//	pods        default/db-0 (app=db, Pending), default/web-1 (app=web, Running)
//	deployments default/web (app=web, 2/2 ready)
//	services    default/web (app=web, LoadBalancer)
//	secrets     default/web-tls (app=web, created 100 days before Now)
func Objects() []runtime.Object {
	web := map[string]string{"app": "web"}

	secret := Object("v1", "Secret", "web-tls", web, map[string]interface{}{
		"type": "Opaque",
		"data": map[string]interface{}{"password": "c2VjcmV0"},
	})
	secret.SetCreationTimestamp(metav1.NewTime(Now.Add(-100 * 24 * time.Hour)))

	return []runtime.Object{
		Object("v1", "Pod", "web-1", web, map[string]interface{}{
			"status": map[string]interface{}{"phase": "Running"},
		}),
		Object("v1", "Pod", "db-0", map[string]string{"app": "db"}, map[string]interface{}{
			"status": map[string]interface{}{"phase": "Pending"},
		}),
		Object("v1", "Service", "web", web, map[string]interface{}{
			"spec": map[string]interface{}{"type": "LoadBalancer"},
		}),
		Object("apps/v1", "Deployment", "web", web, map[string]interface{}{
			"spec":   map[string]interface{}{"replicas": int64(2)},
			"status": map[string]interface{}{"readyReplicas": int64(2), "availableReplicas": int64(2)},
		}),
		secret,
	}
}

// NewClient returns a client for the fake cluster holding objects.
func NewClient(contextName string, objects ...runtime.Object) k8s.Client {
	gvrToListKind := map[schema.GroupVersionResource]string{
		{Version: "v1", Resource: "pods"}:                       "PodList",
		{Version: "v1", Resource: "services"}:                   "ServiceList",
		{Version: "v1", Resource: "secrets"}:                    "SecretList",
		{Group: "apps", Version: "v1", Resource: "deployments"}: "DeploymentList",
	}
	dyn := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(), gvrToListKind, objects...)
	disc := &fakediscovery.FakeDiscovery{Fake: &clienttesting.Fake{Resources: APIResources()}}
	return k8s.NewStaticClient(dyn, disc, contextName)
}

// NewLoader returns a loader over Objects whose clock is fixed at Now.
func NewLoader(t testing.TB, contextName string) *k8s.Loader {
	t.Helper()

	loader, err := k8s.NewLoader(k8s.LoaderConfig{
		Client: NewClient(contextName, Objects()...),
		Logger: DiscardLogger(),
		Now:    func() time.Time { return Now },
	})
	require.NoError(t, err)
	return loader
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() logging.Logger {
	return logging.NewSlogAdapter(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
