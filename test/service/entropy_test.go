package entropy_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os/signal"
	"syscall"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	gostats "github.com/lyft/gostats"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/health"

	"github.com/entropyd/entropyd/src/config"
	"github.com/entropyd/entropyd/src/provider"
	"github.com/entropyd/entropyd/src/server"
	entropy "github.com/entropyd/entropyd/src/service"
	"github.com/entropyd/entropyd/src/settings"
	"github.com/entropyd/entropyd/src/stats"
	mock_provider "github.com/entropyd/entropyd/test/mocks/provider"
	mock_stats "github.com/entropyd/entropyd/test/mocks/stats"
)

type entropyServiceTestSuite struct {
	assert       *assert.Assertions
	controller   *gomock.Controller
	provider     *mock_provider.MockPolicyConfigProvider
	updateChan   chan provider.ConfigUpdateEvent
	statStore    gostats.Store
	statsManager stats.Manager
	health       *server.HealthChecker
	settings     settings.Settings
}

func commonSetup(t *testing.T) entropyServiceTestSuite {
	ret := entropyServiceTestSuite{}
	ret.assert = assert.New(t)
	ret.controller = gomock.NewController(t)
	ret.provider = mock_provider.NewMockPolicyConfigProvider(ret.controller)
	ret.updateChan = make(chan provider.ConfigUpdateEvent, 1)
	ret.statStore = gostats.NewStore(gostats.NewNullSink(), false)
	ret.statsManager = mock_stats.NewMockStatManager(ret.statStore)
	ret.health = server.NewHealthChecker(health.NewServer(), "entropyd", false)
	ret.settings = settings.Settings{
		MaxDrawBytes:            64,
		DefaultJitterExpiration: 10 * time.Second,
		DefaultJitterRatio:      4,
	}
	return ret
}

func (this *entropyServiceTestSuite) loadPolicies(yaml string) {
	configs := []config.PolicyConfigToLoad{
		{Name: "policies.yaml", ConfigYaml: config.ConfigFileContentToYaml("policies.yaml", yaml)},
	}
	policyConfig := config.NewJitterPolicyConfigImpl(configs, this.statsManager)

	event := mock_provider.NewMockConfigUpdateEvent(this.controller)
	event.EXPECT().GetConfig().Return(policyConfig, nil).AnyTimes()
	this.updateChan <- event
}

func (this *entropyServiceTestSuite) setupBasicService() entropy.EntropyService {
	this.provider.EXPECT().ConfigUpdateEvent().Return((<-chan provider.ConfigUpdateEvent)(this.updateChan)).AnyTimes()
	this.loadPolicies(`
policies:
  - name: session_token
    expiration: 10s
    ratio: 4
  - name: no_jitter
    expiration: 30s
    ratio: 0
`)
	return entropy.NewService(this.provider, this.statsManager, this.health, this.settings)
}

func doRequest(handler http.HandlerFunc, url string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest("GET", url, nil)
	handler(recorder, request)
	return recorder
}

func TestBytesDraw(t *testing.T) {
	defer signal.Reset(syscall.SIGTERM)
	suite := commonSetup(t)
	service := suite.setupBasicService()

	recorder := doRequest(service.BytesHandler, "/v1/bytes?count=16")
	suite.assert.Equal(200, recorder.Code)

	response := map[string]interface{}{}
	suite.assert.NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	suite.assert.Equal(float64(16), response["count"])

	decoded, err := base64.StdEncoding.DecodeString(response["bytes"].(string))
	suite.assert.NoError(err)
	suite.assert.Equal(16, len(decoded))
}

func TestBytesDrawDefaultCount(t *testing.T) {
	defer signal.Reset(syscall.SIGTERM)
	suite := commonSetup(t)
	service := suite.setupBasicService()

	recorder := doRequest(service.BytesHandler, "/v1/bytes")
	suite.assert.Equal(200, recorder.Code)

	response := map[string]interface{}{}
	suite.assert.NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	suite.assert.Equal(float64(32), response["count"])
}

func TestBytesDrawRejectsBadCounts(t *testing.T) {
	defer signal.Reset(syscall.SIGTERM)
	suite := commonSetup(t)
	service := suite.setupBasicService()

	suite.assert.Equal(400, doRequest(service.BytesHandler, "/v1/bytes?count=0").Code)
	suite.assert.Equal(400, doRequest(service.BytesHandler, "/v1/bytes?count=65").Code)
	suite.assert.Equal(400, doRequest(service.BytesHandler, "/v1/bytes?count=-1").Code)
	suite.assert.Equal(400, doRequest(service.BytesHandler, "/v1/bytes?count=many").Code)
	suite.assert.Equal(uint64(4), suite.statStore.NewCounter("invalid_requests").Value())
}

func TestRangeDraw(t *testing.T) {
	defer signal.Reset(syscall.SIGTERM)
	suite := commonSetup(t)
	service := suite.setupBasicService()

	for i := 0; i < 50; i++ {
		recorder := doRequest(service.RangeHandler, "/v1/range?begin=10&end=20")
		suite.assert.Equal(200, recorder.Code)

		response := map[string]interface{}{}
		suite.assert.NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
		suite.assert.GreaterOrEqual(response["value"], float64(10))
		suite.assert.LessOrEqual(response["value"], float64(20))
	}
}

func TestRangeDrawDegenerate(t *testing.T) {
	defer signal.Reset(syscall.SIGTERM)
	suite := commonSetup(t)
	service := suite.setupBasicService()

	recorder := doRequest(service.RangeHandler, "/v1/range?begin=5&end=5")
	suite.assert.Equal(200, recorder.Code)

	response := map[string]interface{}{}
	suite.assert.NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	suite.assert.Equal(float64(5), response["value"])
}

func TestRangeDrawRejectsBadRanges(t *testing.T) {
	defer signal.Reset(syscall.SIGTERM)
	suite := commonSetup(t)
	service := suite.setupBasicService()

	// end is required, an inverted range is a caller mistake
	suite.assert.Equal(400, doRequest(service.RangeHandler, "/v1/range?begin=10").Code)
	suite.assert.Equal(400, doRequest(service.RangeHandler, "/v1/range?begin=10&end=9").Code)
}

func TestJitterWithPolicy(t *testing.T) {
	defer signal.Reset(syscall.SIGTERM)
	suite := commonSetup(t)
	service := suite.setupBasicService()

	for i := 0; i < 100; i++ {
		recorder := doRequest(service.JitterHandler, "/v1/jitter?policy=session_token")
		suite.assert.Equal(200, recorder.Code)

		response := map[string]interface{}{}
		suite.assert.NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
		suite.assert.Equal("session_token", response["policy"])
		suite.assert.GreaterOrEqual(response["duration_ms"], float64(7500))
		suite.assert.LessOrEqual(response["duration_ms"], float64(10000))
	}

	suite.assert.Equal(uint64(100), suite.statStore.NewCounter("session_token.hits").Value())
}

func TestJitterWithZeroRatioPolicy(t *testing.T) {
	defer signal.Reset(syscall.SIGTERM)
	suite := commonSetup(t)
	service := suite.setupBasicService()

	recorder := doRequest(service.JitterHandler, "/v1/jitter?policy=no_jitter")
	suite.assert.Equal(200, recorder.Code)

	response := map[string]interface{}{}
	suite.assert.NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	suite.assert.Equal(float64(30000), response["duration_ms"])
}

func TestJitterWithUnknownPolicy(t *testing.T) {
	defer signal.Reset(syscall.SIGTERM)
	suite := commonSetup(t)
	service := suite.setupBasicService()

	suite.assert.Equal(400, doRequest(service.JitterHandler, "/v1/jitter?policy=missing").Code)
}

func TestJitterWithExplicitParameters(t *testing.T) {
	defer signal.Reset(syscall.SIGTERM)
	suite := commonSetup(t)
	service := suite.setupBasicService()

	recorder := doRequest(service.JitterHandler, "/v1/jitter?expiration=1s&ratio=0")
	suite.assert.Equal(200, recorder.Code)

	response := map[string]interface{}{}
	suite.assert.NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	suite.assert.Equal(float64(1000), response["duration_ms"])
	// policy is omitted from the response when the draw used explicit parameters
	suite.assert.Nil(response["policy"])

	suite.assert.Equal(400, doRequest(service.JitterHandler, "/v1/jitter?ratio=256").Code)
	suite.assert.Equal(400, doRequest(service.JitterHandler, "/v1/jitter?expiration=-1s").Code)
	suite.assert.Equal(400, doRequest(service.JitterHandler, "/v1/jitter?expiration=eventually").Code)
}

func TestJitterDefaults(t *testing.T) {
	defer signal.Reset(syscall.SIGTERM)
	suite := commonSetup(t)
	service := suite.setupBasicService()

	// settings supply 10s with ratio 4 when the request names nothing
	recorder := doRequest(service.JitterHandler, "/v1/jitter")
	suite.assert.Equal(200, recorder.Code)

	response := map[string]interface{}{}
	suite.assert.NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	suite.assert.GreaterOrEqual(response["duration_ms"], float64(7500))
	suite.assert.LessOrEqual(response["duration_ms"], float64(10000))
}

func TestConfigReload(t *testing.T) {
	defer signal.Reset(syscall.SIGTERM)
	suite := commonSetup(t)
	service := suite.setupBasicService()

	suite.assert.NotNil(service.GetCurrentConfig().GetPolicy("session_token"))

	suite.loadPolicies(`
policies:
  - name: refresh_window
    expiration: 5s
    ratio: 2
`)

	suite.assert.Eventually(func() bool {
		return service.GetCurrentConfig().GetPolicy("refresh_window") != nil
	}, time.Second, 5*time.Millisecond)
	suite.assert.Nil(service.GetCurrentConfig().GetPolicy("session_token"))
	suite.assert.Equal(uint64(2), suite.statStore.NewCounter("config_load_success").Value())
}

func TestConfigLoadError(t *testing.T) {
	defer signal.Reset(syscall.SIGTERM)
	suite := commonSetup(t)
	service := suite.setupBasicService()

	event := mock_provider.NewMockConfigUpdateEvent(suite.controller)
	event.EXPECT().GetConfig().Return(nil, config.JitterPolicyConfigError("bad config")).AnyTimes()
	suite.updateChan <- event

	suite.assert.Eventually(func() bool {
		return suite.statStore.NewCounter("config_load_error").Value() == 1
	}, time.Second, 5*time.Millisecond)

	// the previous good config stays active
	suite.assert.NotNil(service.GetCurrentConfig().GetPolicy("session_token"))
}

func TestForceStartWithoutInitialConfig(t *testing.T) {
	defer signal.Reset(syscall.SIGTERM)
	suite := commonSetup(t)
	suite.provider.EXPECT().ConfigUpdateEvent().Return((<-chan provider.ConfigUpdateEvent)(suite.updateChan)).AnyTimes()
	suite.settings.ForceStartWithoutInitialConfig = true

	service := entropy.NewService(suite.provider, suite.statsManager, suite.health, suite.settings)

	// draws work before any config has arrived
	suite.assert.Equal(200, doRequest(service.BytesHandler, "/v1/bytes?count=8").Code)
	// policy lookups cannot be served yet
	suite.assert.Equal(500, doRequest(service.JitterHandler, "/v1/jitter?policy=session_token").Code)
	suite.assert.Equal(uint64(1), suite.statStore.NewCounter("service_error").Value())
}
