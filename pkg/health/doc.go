// Package health serves liveness and readiness probes.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"redis": redis.Healthcheck(client),
//	}, health.WithTimeout(3*time.Second)))
//
// Probes answer plain "OK" or "Service Unavailable". Send
// Accept: application/json or ?format=json for the per-check report:
//
//	{"checks":{"redis":{"status":"unhealthy","error":"..."}},"status":"unhealthy"}
package health
