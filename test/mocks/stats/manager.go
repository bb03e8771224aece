package stats

import (
	gostats "github.com/lyft/gostats"
	logger "github.com/sirupsen/logrus"

	stat "github.com/entropyd/entropyd/src/stats"
)

type MockStatManager struct {
	store gostats.Store
}

func (m *MockStatManager) GetStatsStore() gostats.Store {
	return m.store
}

func (m *MockStatManager) NewServiceStats() stat.ServiceStats {
	ret := stat.ServiceStats{}
	ret.ConfigLoadSuccess = m.store.NewCounter("config_load_success")
	ret.ConfigLoadError = m.store.NewCounter("config_load_error")
	ret.Draw.Draws = m.store.NewCounter("draws")
	ret.Draw.BytesGenerated = m.store.NewCounter("bytes_generated")
	ret.Draw.JitterComputed = m.store.NewCounter("jitter_computed")
	ret.Draw.InvalidRequests = m.store.NewCounter("invalid_requests")
	ret.Draw.ServiceError = m.store.NewCounter("service_error")
	return ret
}

func (m *MockStatManager) NewPolicyStats(key string) stat.PolicyStats {
	logger.Debugf("outputing test stats %s", key)
	ret := stat.PolicyStats{}
	ret.Key = key
	ret.Hits = m.store.NewCounter(key + ".hits")
	ret.JitterMs = m.store.NewTimer(key + ".jitter_ms")
	return ret
}

func (m *MockStatManager) AddPolicyHit(u uint64, policyStats stat.PolicyStats) {
	policyStats.Hits.Add(u)
}

func (m *MockStatManager) AddPolicyJitterMs(ms float64, policyStats stat.PolicyStats) {
	policyStats.JitterMs.AddValue(ms)
}

func NewMockStatManager(store gostats.Store) stat.Manager {
	return &MockStatManager{store: store}
}
