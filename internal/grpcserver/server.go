package grpcserver

import (
	"context"
	"strings"
	"time"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"solarapi/internal/bodies"
	"solarapi/pkg/models"
)

type Server struct {
	Service *bodies.Service
}

func NewServer(svc *bodies.Service) *Server {
	return &Server{Service: svc}
}

// New returns a grpc.Server with BodyService registered and every call
// logged.
func New(svc *bodies.Service, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(LoggingInterceptor))
	s := grpc.NewServer(opts...)
	RegisterBodyServiceServer(s, NewServer(svc))
	return s
}

func (s *Server) ListBodies(ctx context.Context, req *ListBodiesRequest) (*ListBodiesResponse, error) {
	if req == nil {
		req = &ListBodiesRequest{}
	}
	items, err := s.Service.ListBodies(ctx, bodies.ListParams{IsPlanet: req.IsPlanet, Name: req.Name})
	if err != nil {
		return nil, toStatus(err, "list failed")
	}
	return &ListBodiesResponse{Bodies: items}, nil
}

func (s *Server) GetBody(ctx context.Context, req *GetBodyRequest) (*GetBodyResponse, error) {
	if req == nil || req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}

	b, err := s.Service.GetBody(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err, "Body not found")
	}
	return &GetBodyResponse{Body: b}, nil
}

func (s *Server) GetPreset(ctx context.Context, req *GetPresetRequest) (*GetPresetResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "preset name required")
	}
	p, ok := bodies.LookupPreset(strings.ToLower(strings.TrimSpace(req.Name)))
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "unknown preset %q", req.Name)
	}

	resp := &GetPresetResponse{Name: p.Name}
	if p.Many {
		items, err := s.Service.ListPreset(ctx, p)
		if err != nil {
			return nil, toStatus(err, p.NotFound)
		}
		if items == nil {
			items = []models.CelestialBody{}
		}
		resp.Bodies = items
		return resp, nil
	}

	b, err := s.Service.FindPreset(ctx, p)
	if err != nil {
		return nil, toStatus(err, p.NotFound)
	}
	resp.Body = b
	return resp, nil
}

// toStatus maps service errors onto gRPC codes. Store details stay in the
// server log.
func toStatus(err error, notFound string) error {
	switch {
	case errors.Is(err, bodies.ErrNotFound):
		return status.Error(codes.NotFound, notFound)
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	default:
		return status.Error(codes.Internal, "query failed")
	}
}

func LoggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	startAt := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	m := message.Fields{
		"action":      "completed",
		"method":      info.FullMethod,
		"code":        code.String(),
		"duration_ms": time.Since(startAt).Milliseconds(),
	}
	if code == codes.Internal || code == codes.Unknown {
		grip.Error(m)
	} else {
		grip.Info(m)
	}
	return resp, err
}
