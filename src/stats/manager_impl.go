package stats

import (
	gostats "github.com/lyft/gostats"
	logger "github.com/sirupsen/logrus"

	"github.com/entropyd/entropyd/src/settings"
)

type ManagerImpl struct {
	store             gostats.Store
	policyStatsScope  gostats.Scope
	serviceStatsScope gostats.Scope
}

func NewStatManager(store gostats.Store, settings settings.Settings) *ManagerImpl {
	serviceScope := store.ScopeWithTags("entropyd", settings.ExtraTags).Scope("service")
	return &ManagerImpl{
		store:             store,
		policyStatsScope:  serviceScope.Scope("policy"),
		serviceStatsScope: serviceScope,
	}
}

func (this *ManagerImpl) GetStatsStore() gostats.Store {
	return this.store
}

func (this *ManagerImpl) AddPolicyHit(u uint64, policyStats PolicyStats) {
	policyStats.Hits.Add(u)
}

func (this *ManagerImpl) AddPolicyJitterMs(ms float64, policyStats PolicyStats) {
	policyStats.JitterMs.AddValue(ms)
}

// Create new stats for a jitter policy.
// @param key supplies the policy name.
// @return new stats.
func (this *ManagerImpl) NewPolicyStats(key string) PolicyStats {
	ret := PolicyStats{}
	logger.Debugf("Creating stats for policy: '%s'", key)
	ret.Key = key
	ret.Hits = this.policyStatsScope.NewCounter(key + ".hits")
	ret.JitterMs = this.policyStatsScope.NewTimer(key + ".jitter_ms")
	return ret
}

func (this *ManagerImpl) newDrawStats() DrawStats {
	s := this.serviceStatsScope.Scope("call.draw")
	ret := DrawStats{}
	ret.Draws = s.NewCounter("draws")
	ret.BytesGenerated = s.NewCounter("bytes_generated")
	ret.JitterComputed = s.NewCounter("jitter_computed")
	ret.InvalidRequests = s.NewCounter("invalid_requests")
	ret.ServiceError = s.NewCounter("service_error")
	return ret
}

func (this *ManagerImpl) NewServiceStats() ServiceStats {
	ret := ServiceStats{}
	ret.ConfigLoadSuccess = this.serviceStatsScope.NewCounter("config_load_success")
	ret.ConfigLoadError = this.serviceStatsScope.NewCounter("config_load_error")
	ret.Draw = this.newDrawStats()
	return ret
}

func (this PolicyStats) GetKey() string {
	return this.Key
}
