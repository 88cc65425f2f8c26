package k8s

import (
	"fmt"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/giantswarm/kube-explorer/internal/catalog"
)

// systemAnnotationPrefixes are dropped from records; they are noise for search.
var systemAnnotationPrefixes = []string{
	"kubectl.kubernetes.io/",
	"deployment.kubernetes.io/",
	"control-plane.alpha.kubernetes.io/",
	"node.alpha.kubernetes.io/",
	"volume.beta.kubernetes.io/",
	"pv.kubernetes.io/",
}

// FormatRecord turns a listed object of the given kind into a catalog record.
func FormatRecord(kind catalog.Kind, obj *unstructured.Unstructured, now time.Time) catalog.Record {
	created := obj.GetCreationTimestamp().Time

	r := catalog.Record{
		Name:        obj.GetName(),
		Namespace:   obj.GetNamespace(),
		Age:         FormatAge(created, now),
		Labels:      obj.GetLabels(),
		Annotations: filterAnnotations(obj.GetAnnotations()),
		CreatedAt:   created,
	}

	switch kind {
	case "pods":
		r.Status, r.Details = podDetails(obj)
	case "deployments", "replicasets", "statefulsets":
		r.Details = replicaDetails(obj)
	case "daemonsets":
		r.Details = daemonSetDetails(obj)
	case "services":
		r.Details = serviceDetails(obj)
	case "configmaps":
		data, _, _ := unstructured.NestedMap(obj.Object, "data")
		binary, _, _ := unstructured.NestedMap(obj.Object, "binaryData")
		r.Details = catalog.ConfigMapDetails{Keys: len(data) + len(binary)}
	case "secrets":
		data, _, _ := unstructured.NestedMap(obj.Object, "data")
		secretType, _, _ := unstructured.NestedString(obj.Object, "type")
		r.Details = catalog.SecretDetails{Type: secretType, Keys: len(data)}
	case "persistentvolumeclaims":
		r.Status, r.Details = volumeClaimDetails(obj)
	case "ingresses":
		r.Details = ingressDetails(obj)
	case "jobs":
		r.Status, r.Details = jobDetails(obj)
	case "cronjobs":
		schedule, _, _ := unstructured.NestedString(obj.Object, "spec", "schedule")
		last, _, _ := unstructured.NestedString(obj.Object, "status", "lastScheduleTime")
		r.Details = catalog.CronJobDetails{Schedule: schedule, LastSchedule: last}
	case "nodes":
		ready := nodeReady(obj)
		r.Status = ready
		r.Details = catalog.NodeDetails{Ready: ready}
	default:
		// Many kinds carry a phase (namespaces, persistentvolumes, CRDs).
		r.Status, _, _ = unstructured.NestedString(obj.Object, "status", "phase")
	}

	return r
}

func podDetails(obj *unstructured.Unstructured) (string, catalog.PodDetails) {
	var d catalog.PodDetails

	d.Phase, _, _ = unstructured.NestedString(obj.Object, "status", "phase")
	d.Node, _, _ = unstructured.NestedString(obj.Object, "spec", "nodeName")
	d.PodIP, _, _ = unstructured.NestedString(obj.Object, "status", "podIP")

	if containers, found, _ := unstructured.NestedSlice(obj.Object, "spec", "containers"); found {
		d.Containers = len(containers)
	}

	if statuses, found, _ := unstructured.NestedSlice(obj.Object, "status", "containerStatuses"); found {
		var ready int
		for _, cs := range statuses {
			csMap, ok := cs.(map[string]interface{})
			if !ok {
				continue
			}
			if ok, found, _ := unstructured.NestedBool(csMap, "ready"); found && ok {
				ready++
			}
			if restarts, found, _ := unstructured.NestedInt64(csMap, "restartCount"); found {
				d.Restarts += restarts
			}
		}
		d.Ready = fmt.Sprintf("%d/%d", ready, len(statuses))
	}

	return d.Phase, d
}

func replicaDetails(obj *unstructured.Unstructured) catalog.WorkloadDetails {
	replicas, found, _ := unstructured.NestedInt64(obj.Object, "spec", "replicas")
	if !found {
		// The API server defaults spec.replicas to 1.
		replicas = 1
	}
	ready, _, _ := unstructured.NestedInt64(obj.Object, "status", "readyReplicas")
	available, _, _ := unstructured.NestedInt64(obj.Object, "status", "availableReplicas")

	return catalog.WorkloadDetails{
		Replicas:          replicas,
		ReadyReplicas:     ready,
		AvailableReplicas: available,
		Ready:             fmt.Sprintf("%d/%d", ready, replicas),
	}
}

func daemonSetDetails(obj *unstructured.Unstructured) catalog.WorkloadDetails {
	desired, _, _ := unstructured.NestedInt64(obj.Object, "status", "desiredNumberScheduled")
	ready, _, _ := unstructured.NestedInt64(obj.Object, "status", "numberReady")
	available, _, _ := unstructured.NestedInt64(obj.Object, "status", "numberAvailable")

	return catalog.WorkloadDetails{
		Replicas:          desired,
		ReadyReplicas:     ready,
		AvailableReplicas: available,
		Ready:             fmt.Sprintf("%d/%d", ready, desired),
	}
}

func serviceDetails(obj *unstructured.Unstructured) catalog.ServiceDetails {
	var d catalog.ServiceDetails

	d.Type, _, _ = unstructured.NestedString(obj.Object, "spec", "type")
	if d.Type == "" {
		d.Type = string(corev1.ServiceTypeClusterIP)
	}
	d.ClusterIP, _, _ = unstructured.NestedString(obj.Object, "spec", "clusterIP")

	if ports, found, _ := unstructured.NestedSlice(obj.Object, "spec", "ports"); found {
		for _, port := range ports {
			portMap, ok := port.(map[string]interface{})
			if !ok {
				continue
			}
			portNum, _, _ := unstructured.NestedInt64(portMap, "port")
			protocol, _, _ := unstructured.NestedString(portMap, "protocol")
			if protocol == "" {
				protocol = string(corev1.ProtocolTCP)
			}
			d.Ports = append(d.Ports, fmt.Sprintf("%d/%s", portNum, protocol))
		}
	}

	return d
}

func volumeClaimDetails(obj *unstructured.Unstructured) (string, catalog.VolumeClaimDetails) {
	var d catalog.VolumeClaimDetails

	d.Phase, _, _ = unstructured.NestedString(obj.Object, "status", "phase")
	d.Capacity, _, _ = unstructured.NestedString(obj.Object, "status", "capacity", "storage")

	return d.Phase, d
}

func ingressDetails(obj *unstructured.Unstructured) catalog.IngressDetails {
	var d catalog.IngressDetails

	if rules, found, _ := unstructured.NestedSlice(obj.Object, "spec", "rules"); found {
		for _, rule := range rules {
			ruleMap, ok := rule.(map[string]interface{})
			if !ok {
				continue
			}
			if host, found, _ := unstructured.NestedString(ruleMap, "host"); found && host != "" {
				d.Hosts = append(d.Hosts, host)
			}
		}
	}

	return d
}

func jobDetails(obj *unstructured.Unstructured) (string, catalog.JobDetails) {
	succeeded, _, _ := unstructured.NestedInt64(obj.Object, "status", "succeeded")
	failed, _, _ := unstructured.NestedInt64(obj.Object, "status", "failed")

	status := "Running"
	switch {
	case succeeded > 0:
		status = "Succeeded"
	case failed > 0:
		status = "Failed"
	}

	return status, catalog.JobDetails{Succeeded: succeeded, Failed: failed}
}

// nodeReady returns the status of the node's Ready condition.
func nodeReady(obj *unstructured.Unstructured) string {
	conditions, found, _ := unstructured.NestedSlice(obj.Object, "status", "conditions")
	if !found {
		return string(corev1.ConditionUnknown)
	}
	for _, condition := range conditions {
		condMap, ok := condition.(map[string]interface{})
		if !ok {
			continue
		}
		if condType, _, _ := unstructured.NestedString(condMap, "type"); condType == string(corev1.NodeReady) {
			status, _, _ := unstructured.NestedString(condMap, "status")
			return status
		}
	}
	return string(corev1.ConditionUnknown)
}

// FormatAge renders the time since created as the largest whole unit:
// "3d", "5h", "12m" or "40s". A zero creation time yields "".
func FormatAge(created, now time.Time) string {
	if created.IsZero() {
		return ""
	}

	duration := now.Sub(created)
	if duration < 0 {
		duration = 0
	}

	days := int(duration.Hours() / 24)
	hours := int(duration.Hours()) % 24
	minutes := int(duration.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh", hours)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%ds", int(duration.Seconds()))
}

func filterAnnotations(annotations map[string]string) map[string]string {
	if len(annotations) == 0 {
		return nil
	}
	filtered := make(map[string]string, len(annotations))
	for k, v := range annotations {
		if !isSystemAnnotation(k) {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}

func isSystemAnnotation(key string) bool {
	for _, prefix := range systemAnnotationPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}
