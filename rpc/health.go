package rpc

import (
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/wfunc/monopoly/logger"
)

// HealthServer answers the standard gRPC health protocol for load
// balancers and orchestrators.
type HealthServer struct {
	address string
	grpc    *grpc.Server
	health  *health.Server
}

func NewHealthServer(addr string) *HealthServer {
	s := &HealthServer{
		address: addr,
		grpc:    grpc.NewServer(),
		health:  health.NewServer(),
	}
	healthpb.RegisterHealthServer(s.grpc, s.health)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	return s
}

func (s *HealthServer) Serve(listener net.Listener) error {
	logger.Log.Infof("gRPC health server listening on %s", listener.Addr())
	return s.grpc.Serve(listener)
}

// ListenAndServe blocks until Stop.
func (s *HealthServer) ListenAndServe() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Stop reports NOT_SERVING to watchers and drains open calls.
func (s *HealthServer) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
