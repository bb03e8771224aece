package server

import (
	"expvar"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"github.com/gorilla/mux"
	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	reuseport "github.com/kavu/go_reuseport"
	gostats "github.com/lyft/gostats"
	logger "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"

	"github.com/entropyd/entropyd/src/provider"
	"github.com/entropyd/entropyd/src/settings"
	"github.com/entropyd/entropyd/src/stats"
)

type serverDebugListener struct {
	endpoints map[string]string
	debugMux  *http.ServeMux
	listener  net.Listener
}

type server struct {
	httpAddress   string
	grpcAddress   string
	debugAddress  string
	router        *mux.Router
	grpcServer    *grpc.Server
	store         gostats.Store
	scope         gostats.Scope
	provider      provider.PolicyConfigProvider
	debugListener serverDebugListener
	httpServer    *http.Server
	listenerMu    sync.Mutex
	health        *HealthChecker
	stopped       bool
}

func (server *server) AddDebugHttpEndpoint(path string, help string, handler http.HandlerFunc) {
	server.debugListener.debugMux.HandleFunc(path, handler)
	server.debugListener.endpoints[path] = help
}

func (server *server) AddApiHandler(path string, help string, handler http.HandlerFunc) {
	server.router.HandleFunc(path, handler)
	server.debugListener.endpoints[path] = help
}

func (server *server) GrpcServer() *grpc.Server {
	return server.grpcServer
}

func (server *server) HealthChecker() *HealthChecker {
	return server.health
}

func (server *server) Provider() provider.PolicyConfigProvider {
	return server.provider
}

func (server *server) Start() {
	go func() {
		logger.Warnf("Listening for debug on '%s'", server.debugAddress)
		var err error
		server.listenerMu.Lock()
		server.debugListener.listener, err = reuseport.Listen("tcp", server.debugAddress)
		server.listenerMu.Unlock()

		if err != nil {
			logger.Errorf("Failed to open debug HTTP listener: '%+v'", err)
			return
		}
		err = http.Serve(server.debugListener.listener, server.debugListener.debugMux)
		logger.Infof("Failed to start debug server '%+v'", err)
	}()

	go server.startGrpc()

	server.handleGracefulShutdown()

	logger.Warnf("Listening for HTTP on '%s'", server.httpAddress)
	list, err := reuseport.Listen("tcp", server.httpAddress)
	if err != nil {
		logger.Fatalf("Failed to open HTTP listener: '%+v'", err)
	}
	server.listenerMu.Lock()
	server.httpServer = &http.Server{Handler: server.router}
	server.listenerMu.Unlock()
	logger.Fatal(server.httpServer.Serve(list))
}

func (server *server) Stop() {
	server.listenerMu.Lock()
	defer server.listenerMu.Unlock()
	if server.stopped {
		return
	}
	server.stopped = true
	server.grpcServer.GracefulStop()
	if server.debugListener.listener != nil {
		server.debugListener.listener.Close()
	}
	if server.httpServer != nil {
		server.httpServer.Close()
	}
	server.provider.Stop()
}

func (server *server) startGrpc() {
	logger.Warnf("Listening for gRPC on '%s'", server.grpcAddress)
	lis, err := reuseport.Listen("tcp", server.grpcAddress)
	if err != nil {
		logger.Fatalf("Failed to listen for gRPC: %v", err)
	}
	server.grpcServer.Serve(lis)
}

func (server *server) Scope() gostats.Scope {
	return server.scope
}

func NewServer(s settings.Settings, name string, statsManager stats.Manager, opts ...settings.Option) Server {
	return newServer(s, name, statsManager, opts...)
}

func newServer(s settings.Settings, name string, statsManager stats.Manager, opts ...settings.Option) *server {
	for _, opt := range opts {
		opt(&s)
	}

	ret := new(server)

	keepaliveOpt := grpc.KeepaliveParams(keepalive.ServerParameters{
		MaxConnectionAge:      s.GrpcMaxConnectionAge,
		MaxConnectionAgeGrace: s.GrpcMaxConnectionAgeGrace,
	})
	grpcOptions := []grpc.ServerOption{keepaliveOpt}
	if s.GrpcUnaryInterceptor != nil {
		grpcOptions = append(grpcOptions,
			grpc.UnaryInterceptor(grpc_middleware.ChainUnaryServer(s.GrpcUnaryInterceptor)))
	}
	if s.GrpcServerUseTLS {
		grpcOptions = append(grpcOptions, grpc.Creds(credentials.NewTLS(s.GrpcServerTlsConfig)))
	}
	ret.grpcServer = grpc.NewServer(grpcOptions...)

	// setup listen addresses
	ret.httpAddress = net.JoinHostPort(s.Host, fmt.Sprintf("%d", s.Port))
	ret.grpcAddress = net.JoinHostPort(s.GrpcHost, fmt.Sprintf("%d", s.GrpcPort))
	ret.debugAddress = net.JoinHostPort(s.DebugHost, fmt.Sprintf("%d", s.DebugPort))

	// setup stats
	ret.store = statsManager.GetStatsStore()
	ret.scope = ret.store.ScopeWithTags(name, s.ExtraTags)
	ret.store.AddStatGenerator(gostats.NewRuntimeStats(ret.scope.Scope("go")))

	// setup config provider
	ret.provider = provider.NewFileProvider(s, statsManager, ret.store)

	// setup http router
	ret.router = mux.NewRouter()

	// setup healthcheck path
	ret.health = NewHealthChecker(health.NewServer(), name, s.HealthyWithAtLeastOneConfigLoaded)
	ret.router.Path("/healthcheck").Handler(ret.health)
	healthpb.RegisterHealthServer(ret.grpcServer, ret.health.Server())

	// setup default debug listener
	ret.debugListener.debugMux = http.NewServeMux()
	ret.debugListener.endpoints = map[string]string{}
	ret.AddDebugHttpEndpoint(
		"/debug/pprof/",
		"root of various pprof endpoints. hit for help.",
		func(writer http.ResponseWriter, request *http.Request) {
			pprof.Index(writer, request)
		})

	// setup stats endpoint
	ret.AddDebugHttpEndpoint(
		"/stats",
		"print out stats",
		func(writer http.ResponseWriter, request *http.Request) {
			expvar.Do(func(kv expvar.KeyValue) {
				io.WriteString(writer, fmt.Sprintf("%s: %s\n", kv.Key, kv.Value))
			})
		})

	// setup debug root
	ret.debugListener.debugMux.HandleFunc(
		"/",
		func(writer http.ResponseWriter, request *http.Request) {
			sortedKeys := []string{}
			for key := range ret.debugListener.endpoints {
				sortedKeys = append(sortedKeys, key)
			}

			sort.Strings(sortedKeys)
			for _, key := range sortedKeys {
				io.WriteString(
					writer, fmt.Sprintf("%s: %s\n", key, ret.debugListener.endpoints[key]))
			}
		})

	return ret
}

func (server *server) handleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		sig := <-sigs

		logger.Infof("Entropyd server received %v, shutting down gracefully", sig)
		server.Stop()
		os.Exit(0)
	}()
}
