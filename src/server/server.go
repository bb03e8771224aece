package server

import (
	"net/http"

	stats "github.com/lyft/gostats"
	"google.golang.org/grpc"

	"github.com/entropyd/entropyd/src/provider"
)

type Server interface {
	/**
	 * Starts the HTTP and gRPC servers. This should be done after
	 * all endpoints have been registered through 'AddApiHandler'
	 * and 'AddDebugHttpEndpoint'.
	 */
	Start()

	/**
	 * Returns the root of the stats tree for the server
	 */
	Scope() stats.Scope

	/**
	 * Add an HTTP endpoint to the main API port.
	 */
	AddApiHandler(path string, help string, handler http.HandlerFunc)

	/**
	 * Add an HTTP endpoint to the local debug port.
	 */
	AddDebugHttpEndpoint(path string, help string, handler http.HandlerFunc)

	/**
	 * Returns the embedded gRPC server. It carries the health service and
	 * any gRPC endpoints registered by the caller.
	 */
	GrpcServer() *grpc.Server

	/**
	* Returns the health checker for the server.
	 */
	HealthChecker() *HealthChecker

	/**
	 * Returns the policy configuration provider for the server.
	 */
	Provider() provider.PolicyConfigProvider

	/**
	 *  Stops serving (for integration testing).
	 */
	Stop()
}
