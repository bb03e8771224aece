package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os/signal"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/entropyd/entropyd/src/server"
)

func checkStatus(hc *server.HealthChecker) int {
	recorder := httptest.NewRecorder()
	r, _ := http.NewRequest("GET", "http://1.2.3.4/healthcheck", nil)
	hc.ServeHTTP(recorder, r)
	return recorder.Code
}

func TestHealthCheck(t *testing.T) {
	defer signal.Reset(syscall.SIGTERM)
	assert := assert.New(t)

	hc := server.NewHealthChecker(health.NewServer(), "entropyd", false)

	assert.Equal(200, checkStatus(hc))

	assert.NoError(hc.Fail(server.SigtermComponentName))
	assert.Equal(500, checkStatus(hc))

	assert.NoError(hc.Ok(server.SigtermComponentName))
	assert.Equal(200, checkStatus(hc))

	assert.Error(hc.Fail("not_a_component"))
	assert.Error(hc.Ok("not_a_component"))
}

func TestHealthyWithAtLeastOneConfigLoad(t *testing.T) {
	defer signal.Reset(syscall.SIGTERM)
	assert := assert.New(t)

	hc := server.NewHealthChecker(health.NewServer(), "entropyd", true)

	// unhealthy until a config load is reported
	assert.Equal(500, checkStatus(hc))

	assert.NoError(hc.Ok(server.ConfigHealthComponentName))
	assert.Equal(200, checkStatus(hc))

	assert.NoError(hc.Fail(server.ConfigHealthComponentName))
	assert.Equal(500, checkStatus(hc))
}

func TestGrpcHealthServerTracksComponents(t *testing.T) {
	defer signal.Reset(syscall.SIGTERM)
	assert := assert.New(t)

	hc := server.NewHealthChecker(health.NewServer(), "entropyd", true)

	response, err := hc.Server().Check(context.Background(), &healthpb.HealthCheckRequest{Service: "entropyd"})
	assert.NoError(err)
	assert.Equal(healthpb.HealthCheckResponse_NOT_SERVING, response.Status)

	assert.NoError(hc.Ok(server.ConfigHealthComponentName))

	response, err = hc.Server().Check(context.Background(), &healthpb.HealthCheckRequest{Service: "entropyd"})
	assert.NoError(err)
	assert.Equal(healthpb.HealthCheckResponse_SERVING, response.Status)
}
