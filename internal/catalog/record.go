package catalog

import (
	"time"
)

// Kind names a collection of records, using the plural resource name the
// API server reports (e.g. "pods", "services", "persistentvolumeclaims").
type Kind string

// String returns the kind as a plain string.
func (k Kind) String() string {
	return string(k)
}

// Record is one formatted cluster object.
//
// Records are values: they are built once by the loader and never modified
// afterwards. The label and annotation maps are shared between copies and must
// be treated as read-only.
type Record struct {
	Name        string            `json:"name"`
	Namespace   string            `json:"namespace,omitempty"`
	Age         string            `json:"age"`
	Status      string            `json:"status,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`

	// Details holds the kind-specific fields. Nil for kinds without a
	// dedicated payload.
	Details Payload `json:"details,omitempty"`
}

// Key returns "namespace/name" for namespaced records and "name" otherwise.
func (r Record) Key() string {
	if r.Namespace == "" {
		return r.Name
	}
	return r.Namespace + "/" + r.Name
}

// Payload is the closed set of kind-specific record fields.
type Payload interface {
	isPayload()
}

// PodDetails describes a pod.
type PodDetails struct {
	Phase      string `json:"phase,omitempty"`
	Node       string `json:"nodeName,omitempty"`
	Ready      string `json:"ready,omitempty"`
	Restarts   int64  `json:"restarts"`
	Containers int    `json:"containers"`
	PodIP      string `json:"podIP,omitempty"`
}

// WorkloadDetails describes replicated workloads: deployments, replica sets,
// stateful sets and daemon sets. For daemon sets Replicas is the desired
// number of scheduled pods.
type WorkloadDetails struct {
	Replicas          int64  `json:"replicas"`
	ReadyReplicas     int64  `json:"readyReplicas"`
	AvailableReplicas int64  `json:"availableReplicas,omitempty"`
	Ready             string `json:"ready"`
}

// Healthy reports whether every desired replica is ready.
func (w WorkloadDetails) Healthy() bool {
	return w.ReadyReplicas == w.Replicas
}

// ServiceDetails describes a service.
type ServiceDetails struct {
	Type      string   `json:"type,omitempty"`
	ClusterIP string   `json:"clusterIP,omitempty"`
	Ports     []string `json:"ports,omitempty"`
}

// ConfigMapDetails describes a config map.
type ConfigMapDetails struct {
	Keys int `json:"keys"`
}

// SecretDetails describes a secret without exposing its data.
type SecretDetails struct {
	Type string `json:"type,omitempty"`
	Keys int    `json:"keys"`
}

// VolumeClaimDetails describes a persistent volume claim.
type VolumeClaimDetails struct {
	Phase    string `json:"phase,omitempty"`
	Capacity string `json:"capacity,omitempty"`
}

// IngressDetails describes an ingress.
type IngressDetails struct {
	Hosts []string `json:"hosts,omitempty"`
}

// JobDetails describes a job.
type JobDetails struct {
	Succeeded int64 `json:"succeeded"`
	Failed    int64 `json:"failed"`
}

// CronJobDetails describes a cron job.
type CronJobDetails struct {
	Schedule     string `json:"schedule,omitempty"`
	LastSchedule string `json:"lastSchedule,omitempty"`
}

// NodeDetails describes a node.
type NodeDetails struct {
	Ready string `json:"ready,omitempty"`
}

func (PodDetails) isPayload()         {}
func (WorkloadDetails) isPayload()    {}
func (ServiceDetails) isPayload()     {}
func (ConfigMapDetails) isPayload()   {}
func (SecretDetails) isPayload()      {}
func (VolumeClaimDetails) isPayload() {}
func (IngressDetails) isPayload()     {}
func (JobDetails) isPayload()         {}
func (CronJobDetails) isPayload()     {}
func (NodeDetails) isPayload()        {}
