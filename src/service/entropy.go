package entropy

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/entropyd/entropyd/src/config"
	"github.com/entropyd/entropyd/src/provider"
	"github.com/entropyd/entropyd/src/random"
	"github.com/entropyd/entropyd/src/server"
	"github.com/entropyd/entropyd/src/settings"
	"github.com/entropyd/entropyd/src/stats"
)

var tracer = otel.Tracer("entropy.service")

type EntropyService interface {
	// HTTP handlers for the draw endpoints.
	BytesHandler(writer http.ResponseWriter, request *http.Request)
	RangeHandler(writer http.ResponseWriter, request *http.Request)
	JitterHandler(writer http.ResponseWriter, request *http.Request)

	GetCurrentConfig() config.JitterPolicyConfig
}

type service struct {
	configLock              sync.RWMutex
	config                  config.JitterPolicyConfig
	configUpdateEvent       <-chan provider.ConfigUpdateEvent
	stats                   stats.ServiceStats
	statsManager            stats.Manager
	health                  *server.HealthChecker
	maxDrawBytes            uint64
	defaultJitterExpiration time.Duration
	defaultJitterRatio      uint8
	healthyWithConfigLoaded bool
}

type serviceError string

func (e serviceError) Error() string {
	return string(e)
}

// invalidRequestError marks caller mistakes that become 400s rather than 500s.
type invalidRequestError string

func (e invalidRequestError) Error() string {
	return string(e)
}

func checkRequest(ok bool, msg string) {
	if !ok {
		panic(invalidRequestError(msg))
	}
}

type bytesResponse struct {
	Count uint64 `json:"count"`
	Bytes string `json:"bytes"`
}

type rangeResponse struct {
	Begin uint64 `json:"begin"`
	End   uint64 `json:"end"`
	Value uint64 `json:"value"`
}

type jitterResponse struct {
	Policy     string `json:"policy,omitempty"`
	Expiration string `json:"expiration"`
	Ratio      uint8  `json:"ratio"`
	Duration   string `json:"duration"`
	DurationMs int64  `json:"duration_ms"`
}

func (this *service) setConfig(updateEvent provider.ConfigUpdateEvent) {
	newConfig, err := updateEvent.GetConfig()
	if err != nil {
		configError, ok := err.(config.JitterPolicyConfigError)
		if !ok {
			panic(err)
		}

		this.stats.ConfigLoadError.Inc()
		logger.Errorf("error loading new policy configuration: %s", configError.Error())
		return
	}

	this.stats.ConfigLoadSuccess.Inc()
	this.configLock.Lock()
	this.config = newConfig
	this.configLock.Unlock()
	logger.Infof("loaded policy configuration:\n%s", newConfig.Dump())

	if this.healthyWithConfigLoaded && !newConfig.IsEmptyPolicies() {
		_ = this.health.Ok(server.ConfigHealthComponentName)
	}
}

// serve translates handler panics into HTTP status codes: caller mistakes
// become 400s, everything else recognized becomes a 500. Entropy-source
// failures are neither; they stay fatal.
func (this *service) serve(writer http.ResponseWriter, handler func() interface{}) {
	defer func() {
		err := recover()
		if err == nil {
			return
		}

		logger.Debugf("caught error during call")
		switch t := err.(type) {
		case invalidRequestError:
			this.stats.Draw.InvalidRequests.Inc()
			http.Error(writer, t.Error(), http.StatusBadRequest)
		case serviceError:
			this.stats.Draw.ServiceError.Inc()
			http.Error(writer, t.Error(), http.StatusInternalServerError)
		default:
			panic(err)
		}
	}()

	response := handler()
	writer.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(writer).Encode(response); err != nil {
		logger.Errorf("error encoding response to json: %s", err.Error())
	}
}

func queryUint(request *http.Request, key string, fallback uint64) uint64 {
	raw := request.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	checkRequest(err == nil, fmt.Sprintf("query parameter '%s' must be an unsigned integer", key))
	return value
}

func (this *service) BytesHandler(writer http.ResponseWriter, request *http.Request) {
	this.serve(writer, func() interface{} {
		count := queryUint(request, "count", 32)
		checkRequest(count > 0, "count must be positive")
		checkRequest(count <= this.maxDrawBytes,
			fmt.Sprintf("count must not exceed %d", this.maxDrawBytes))

		_, span := tracer.Start(request.Context(), "entropy bytes draw",
			trace.WithAttributes(attribute.Int64("count", int64(count))))
		defer span.End()

		buf := make([]byte, count)
		random.Fill(buf)

		this.stats.Draw.Draws.Inc()
		this.stats.Draw.BytesGenerated.Add(count)
		return bytesResponse{Count: count, Bytes: base64.StdEncoding.EncodeToString(buf)}
	})
}

func (this *service) RangeHandler(writer http.ResponseWriter, request *http.Request) {
	this.serve(writer, func() interface{} {
		begin := queryUint(request, "begin", 0)
		end := queryUint(request, "end", 0)
		checkRequest(request.URL.Query().Get("end") != "", "query parameter 'end' is required")
		checkRequest(begin <= end, "begin must not exceed end")

		_, span := tracer.Start(request.Context(), "entropy range draw",
			trace.WithAttributes(attribute.Int64("begin", int64(begin)), attribute.Int64("end", int64(end))))
		defer span.End()

		value := random.NextInRange(begin, end)

		this.stats.Draw.Draws.Inc()
		return rangeResponse{Begin: begin, End: end, Value: value}
	})
}

func (this *service) JitterHandler(writer http.ResponseWriter, request *http.Request) {
	this.serve(writer, func() interface{} {
		policyName := request.URL.Query().Get("policy")

		expiration := this.defaultJitterExpiration
		ratio := this.defaultJitterRatio
		var policy *config.JitterPolicy

		if policyName != "" {
			snappedConfig := this.GetCurrentConfig()
			if snappedConfig == nil {
				panic(serviceError("no policy configuration loaded"))
			}
			policy = snappedConfig.GetPolicy(policyName)
			checkRequest(policy != nil, fmt.Sprintf("unknown jitter policy '%s'", policyName))
			expiration = policy.Expiration
			ratio = policy.Ratio
		} else {
			if raw := request.URL.Query().Get("expiration"); raw != "" {
				parsed, err := time.ParseDuration(raw)
				checkRequest(err == nil && parsed >= 0, "expiration must be a non-negative duration")
				expiration = parsed
			}
			rawRatio := queryUint(request, "ratio", uint64(this.defaultJitterRatio))
			checkRequest(rawRatio <= 255, "ratio must be in [0, 255]")
			ratio = uint8(rawRatio)
		}

		_, span := tracer.Start(request.Context(), "jitter draw",
			trace.WithAttributes(attribute.String("expiration", expiration.String()), attribute.Int("ratio", int(ratio))))
		defer span.End()

		jittered := random.Duration(expiration, ratio)

		this.stats.Draw.JitterComputed.Inc()
		if policy != nil {
			this.statsManager.AddPolicyHit(1, policy.Stats)
			this.statsManager.AddPolicyJitterMs(float64(jittered.Milliseconds()), policy.Stats)
		}

		return jitterResponse{
			Policy:     policyName,
			Expiration: expiration.String(),
			Ratio:      ratio,
			Duration:   jittered.String(),
			DurationMs: jittered.Milliseconds(),
		}
	})
}

func (this *service) GetCurrentConfig() config.JitterPolicyConfig {
	this.configLock.RLock()
	defer this.configLock.RUnlock()
	return this.config
}

func NewService(configProvider provider.PolicyConfigProvider, statsManager stats.Manager,
	health *server.HealthChecker, s settings.Settings) EntropyService {

	newService := &service{
		configLock:              sync.RWMutex{},
		config:                  nil,
		configUpdateEvent:       configProvider.ConfigUpdateEvent(),
		stats:                   statsManager.NewServiceStats(),
		statsManager:            statsManager,
		health:                  health,
		maxDrawBytes:            s.MaxDrawBytes,
		defaultJitterExpiration: s.DefaultJitterExpiration,
		defaultJitterRatio:      s.DefaultJitterRatio,
		healthyWithConfigLoaded: s.HealthyWithAtLeastOneConfigLoaded,
	}

	if !s.ForceStartWithoutInitialConfig {
		logger.Info("Waiting for initial policy configuration")
		newService.setConfig(<-newService.configUpdateEvent)
	}

	go func() {
		// No exit right now.
		for {
			logger.Debugf("waiting for policy config update")
			updateEvent := <-newService.configUpdateEvent
			logger.Debugf("got policy config update and reloading config")
			newService.setConfig(updateEvent)
		}
	}()

	return newService
}
