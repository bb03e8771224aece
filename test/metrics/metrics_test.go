package metrics_test

import (
	"context"
	"testing"
	"time"

	stats "github.com/lyft/gostats"
	statsMock "github.com/lyft/gostats/mock"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"

	"github.com/entropyd/entropyd/src/metrics"
)

func TestMetricsInterceptor(t *testing.T) {
	mockSink := statsMock.NewSink()
	statsStore := stats.NewStore(mockSink, false)
	serverReporter := metrics.NewServerReporter(statsStore)

	unaryInfo := &grpc.UnaryServerInfo{
		FullMethod: "/grpc.health.v1.Health/Check",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		time.Sleep(10 * time.Millisecond)
		return req, nil
	}

	ctx := context.Background()
	interceptor := serverReporter.UnaryServerInterceptor()

	var iterations uint64 = 5

	for i := uint64(0); i < iterations; i++ {
		_, err := interceptor(ctx, nil, unaryInfo, handler)
		assert.NoError(t, err)
	}

	totalRequestsCounter := statsStore.NewCounter("Check.total_requests")
	assert.Equal(t, iterations, totalRequestsCounter.Value())
}
