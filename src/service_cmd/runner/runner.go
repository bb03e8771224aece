package runner

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	gostats "github.com/lyft/gostats"
	logger "github.com/sirupsen/logrus"

	"github.com/entropyd/entropyd/src/godogstats"
	"github.com/entropyd/entropyd/src/metrics"
	"github.com/entropyd/entropyd/src/server"
	entropy "github.com/entropyd/entropyd/src/service"
	"github.com/entropyd/entropyd/src/settings"
	"github.com/entropyd/entropyd/src/stats"
	"github.com/entropyd/entropyd/src/stats/prom"
	"github.com/entropyd/entropyd/src/trace"
)

type Runner struct {
	statsManager stats.Manager
	settings     settings.Settings
	srv          server.Server
	mu           sync.Mutex
}

func NewRunner(s settings.Settings) Runner {
	return Runner{
		statsManager: stats.NewStatManager(createStatsStore(s), s),
		settings:     s,
	}
}

func createStatsStore(s settings.Settings) gostats.Store {
	if s.DisableStats {
		logger.Info("Stats disabled")
		return gostats.NewStore(gostats.NewNullSink(), false)
	}

	var sink gostats.Sink
	switch {
	case s.UseDogStatsd:
		if s.UsePrometheus {
			logger.Fatalf("Error: unable to use both stats sink at the same time. Please only select one of UseDogStatsd and UsePrometheus")
		}
		var err error
		sink, err = godogstats.NewSink(
			godogstats.WithStatsdHost(s.StatsdHost),
			godogstats.WithStatsdPort(s.StatsdPort))
		if err != nil {
			logger.Fatalf("Failed to create dogstatsd sink: %v", err)
		}
		logger.Info("Stats initialized for dogstatsd")
	case s.UsePrometheus:
		sink = prom.NewPrometheusSink(
			prom.WithAddr(s.PrometheusAddr),
			prom.WithPath(s.PrometheusPath),
			prom.WithMapperYamlPath(s.PrometheusMapperYaml))
		logger.Info("Stats initialized for Prometheus")
	case s.UseStatsd:
		sink = gostats.NewTCPStatsdSink(
			gostats.WithStatsdHost(s.StatsdHost),
			gostats.WithStatsdPort(s.StatsdPort))
		logger.Info("Stats initialized for statsd")
	default:
		sink = &stats.LoggingSink{}
		logger.Info("Stats initialized for stdout")
	}

	store := gostats.NewStore(sink, false)
	go store.Start(time.NewTicker(s.StatsFlushInterval))
	return store
}

func (runner *Runner) GetStatsStore() gostats.Store {
	return runner.statsManager.GetStatsStore()
}

func (runner *Runner) Run() {
	s := runner.settings
	if s.TracingEnabled {
		tp := trace.InitProductionTraceProvider(s.TracingExporterProtocol, s.TracingServiceName, s.TracingServiceNamespace, s.TracingServiceInstanceId, s.TracingSamplingRate)
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Printf("Error shutting down tracer provider: %v", err)
			}
		}()
	} else {
		logger.Infof("Tracing disabled")
	}

	logLevel, err := logger.ParseLevel(s.LogLevel)
	if err != nil {
		logger.Fatalf("Could not parse log level. %v\n", err)
	} else {
		logger.SetLevel(logLevel)
	}
	if strings.ToLower(s.LogFormat) == "json" {
		logger.SetFormatter(&logger.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logger.FieldMap{
				logger.FieldKeyTime: "@timestamp",
				logger.FieldKeyMsg:  "@message",
			},
		})
	}

	serverReporter := metrics.NewServerReporter(runner.statsManager.GetStatsStore().ScopeWithTags("entropyd_server", s.ExtraTags))

	srv := server.NewServer(s, "entropyd", runner.statsManager, settings.GrpcUnaryInterceptor(serverReporter.UnaryServerInterceptor()))
	runner.mu.Lock()
	runner.srv = srv
	runner.mu.Unlock()

	service := entropy.NewService(
		srv.Provider(),
		runner.statsManager,
		srv.HealthChecker(),
		s,
	)

	srv.AddDebugHttpEndpoint(
		"/policyconfig",
		"print out the currently loaded jitter policy configuration for debugging",
		func(writer http.ResponseWriter, request *http.Request) {
			if current := service.GetCurrentConfig(); current != nil {
				io.WriteString(writer, current.Dump())
			}
		})

	srv.AddApiHandler(
		"/v1/bytes",
		"draw uniformly random bytes (query: count)",
		service.BytesHandler)
	srv.AddApiHandler(
		"/v1/range",
		"draw a uniformly random integer in an inclusive range (query: begin, end)",
		service.RangeHandler)
	srv.AddApiHandler(
		"/v1/jitter",
		"jitter an expiration duration (query: policy, or expiration and ratio)",
		service.JitterHandler)

	srv.Start()
}

func (runner *Runner) Stop() {
	runner.mu.Lock()
	srv := runner.srv
	runner.mu.Unlock()
	if srv != nil {
		srv.Stop()
	}
}
