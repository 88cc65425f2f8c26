package catalog

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultIcon is used for kinds without a dedicated icon.
const DefaultIcon = "Component"

var icons = map[Kind]string{
	"pods":                     "Box",
	"deployments":              "Database",
	"replicasets":              "Database",
	"services":                 "Globe",
	"endpoints":                "Globe",
	"secrets":                  "Lock",
	"configmaps":               "FileText",
	"persistentvolumeclaims":   "HardDrive",
	"networkpolicies":          "Network",
	"ingresses":                "Cloud",
	"statefulsets":             "Layers",
	"daemonsets":               "Cpu",
	"cronjobs":                 "Clock",
	"jobs":                     "Clock",
	"roles":                    "Shield",
	"rolebindings":             "Shield",
	"serviceaccounts":          "Shield",
	"resourcequotas":           "Settings",
	"horizontalpodautoscalers": "Settings",
}

// Icon returns the icon identifier rendered next to kind.
func Icon(kind Kind) string {
	if icon, ok := icons[kind]; ok {
		return icon
	}
	return DefaultIcon
}

// kindWords splits compound plural names of the configured kinds into words.
var kindWords = map[Kind]string{
	"replicationcontrollers":   "replication controllers",
	"statefulsets":             "stateful sets",
	"daemonsets":               "daemon sets",
	"replicasets":              "replica sets",
	"cronjobs":                 "cron jobs",
	"networkpolicies":          "network policies",
	"endpointslices":           "endpoint slices",
	"configmaps":               "config maps",
	"persistentvolumeclaims":   "persistent volume claims",
	"csistoragecapacities":     "CSI storage capacities",
	"serviceaccounts":          "service accounts",
	"rolebindings":             "role bindings",
	"resourcequotas":           "resource quotas",
	"limitranges":              "limit ranges",
	"horizontalpodautoscalers": "horizontal pod autoscalers",
	"poddisruptionbudgets":     "pod disruption budgets",
	"controllerrevisions":      "controller revisions",
	"podtemplates":             "pod templates",
}

// DisplayName returns the title shown for kind, e.g. "Stateful Sets".
func DisplayName(kind Kind) string {
	words, ok := kindWords[kind]
	if !ok {
		words = string(kind)
	}
	// Casers keep state and must not be shared between goroutines.
	return cases.Title(language.English, cases.NoLower).String(words)
}
