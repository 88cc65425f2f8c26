package catalog

import "time"

// SecretRotationDays is the number of whole days a secret may reach before it
// is reported as due for rotation.
const SecretRotationDays = 90

// Stats are the dashboard counters derived from a snapshot.
type Stats struct {
	Pods                   int `json:"pods"`
	RunningPods            int `json:"runningPods"`
	Deployments            int `json:"deployments"`
	HealthyDeployments     int `json:"healthyDeployments"`
	Services               int `json:"services"`
	LoadBalancers          int `json:"loadBalancers"`
	Secrets                int `json:"secrets"`
	SecretsNeedingRotation int `json:"secretsNeedingRotation"`
}

// ComputeStats derives Stats from c as of now.
func ComputeStats(c *Catalog, now time.Time) Stats {
	var s Stats

	for _, r := range c.Get("pods") {
		s.Pods++
		if r.Status == "Running" {
			s.RunningPods++
		}
	}

	for _, r := range c.Get("deployments") {
		s.Deployments++
		if w, ok := r.Details.(WorkloadDetails); ok && w.Healthy() {
			s.HealthyDeployments++
		}
	}

	for _, r := range c.Get("services") {
		s.Services++
		if svc, ok := r.Details.(ServiceDetails); ok && svc.Type == "LoadBalancer" {
			s.LoadBalancers++
		}
	}

	for _, r := range c.Get("secrets") {
		s.Secrets++
		if !r.CreatedAt.IsZero() && wholeDays(now.Sub(r.CreatedAt)) > SecretRotationDays {
			s.SecretsNeedingRotation++
		}
	}

	return s
}

func wholeDays(d time.Duration) int {
	return int(d / (24 * time.Hour))
}
