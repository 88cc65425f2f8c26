package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultCategories(t *testing.T) {
	cs := DefaultCategories()

	assert.Equal(t, []string{"Workloads", "Network", "Config & Storage", "RBAC", "Cluster", "Other"}, cs.Names())

	workloads, ok := cs.Lookup("Workloads")
	assert.True(t, ok)
	assert.Equal(t, Kind("pods"), workloads.Kinds[0])
}

func TestCategories_Lookup(t *testing.T) {
	cs := Categories{
		{Name: "network", Kinds: []Kind{"endpoints"}},
		{Name: "Network", Kinds: []Kind{"services"}},
	}

	c, ok := cs.Lookup("Network")
	assert.True(t, ok)
	assert.Equal(t, []Kind{"services"}, c.Kinds)

	c, ok = cs.Lookup("NETWORK")
	assert.True(t, ok)
	assert.Equal(t, "network", c.Name)

	_, ok = cs.Lookup("storage")
	assert.False(t, ok)
}

func TestCategories_Order(t *testing.T) {
	cs := Categories{
		{Name: "a", Kinds: []Kind{"pods", "services"}},
		{Name: "b", Kinds: []Kind{"services", "secrets"}},
	}

	assert.Equal(t, []Kind{"pods", "services", "secrets"}, cs.Order())
	assert.Equal(t, []string{"a", "b"}, cs.For("services"))
	assert.Empty(t, cs.For("jobs"))
	assert.Equal(t, []Kind{"jobs", "leases"}, cs.Uncategorized([]Kind{"jobs", "pods", "leases"}))
}

func TestIcon(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{"pods", "Box"},
		{"secrets", "Lock"},
		{"cronjobs", "Clock"},
		{"customthings", DefaultIcon},
		{"", DefaultIcon},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, Icon(tt.kind))
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{"pods", "Pods"},
		{"statefulsets", "Stateful Sets"},
		{"persistentvolumeclaims", "Persistent Volume Claims"},
		{"csistoragecapacities", "CSI Storage Capacities"},
		{"widgets", "Widgets"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.kind))
		})
	}
}
