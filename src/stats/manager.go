package stats

import stats "github.com/lyft/gostats"

type Manager interface {
	// Create stats for a named jitter policy.
	// @param key supplies the policy name.
	NewPolicyStats(key string) PolicyStats
	NewServiceStats() ServiceStats
	AddPolicyHit(u uint64, policyStats PolicyStats)
	AddPolicyJitterMs(ms float64, policyStats PolicyStats)
	GetStatsStore() stats.Store
}

// Stats for a single named jitter policy.
type PolicyStats struct {
	Key      string
	Hits     stats.Counter
	JitterMs stats.Timer
}

// Stats for the draw endpoints of the entropy service.
type DrawStats struct {
	Draws           stats.Counter
	BytesGenerated  stats.Counter
	JitterComputed  stats.Counter
	InvalidRequests stats.Counter
	ServiceError    stats.Counter
}

type ServiceStats struct {
	ConfigLoadSuccess stats.Counter
	ConfigLoadError   stats.Counter
	Draw              DrawStats
}
