package grpcserver

import (
	"context"

	"google.golang.org/grpc"

	"solarapi/pkg/models"
)

const ServiceName = "solar.v1.BodyService"

type ListBodiesRequest struct {
	// IsPlanet takes the same lenient "true"/"false" token as the HTTP API.
	IsPlanet string `json:"isPlanet,omitempty"`
	Name     string `json:"name,omitempty"`
}

type ListBodiesResponse struct {
	Bodies []models.CelestialBody `json:"bodies"`
}

type GetBodyRequest struct {
	ID string `json:"id"`
}

type GetBodyResponse struct {
	Body *models.CelestialBody `json:"body"`
}

type GetPresetRequest struct {
	Name string `json:"name"`
}

// GetPresetResponse sets Body for single-body presets and Bodies for list
// presets. Bodies is always present for a list preset, possibly empty.
type GetPresetResponse struct {
	Name   string                 `json:"name"`
	Body   *models.CelestialBody  `json:"body,omitempty"`
	Bodies []models.CelestialBody `json:"bodies"`
}

type BodyServiceServer interface {
	ListBodies(context.Context, *ListBodiesRequest) (*ListBodiesResponse, error)
	GetBody(context.Context, *GetBodyRequest) (*GetBodyResponse, error)
	GetPreset(context.Context, *GetPresetRequest) (*GetPresetResponse, error)
}

func RegisterBodyServiceServer(s grpc.ServiceRegistrar, srv BodyServiceServer) {
	s.RegisterService(&BodyServiceDesc, srv)
}

var BodyServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BodyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListBodies", Handler: listBodiesHandler},
		{MethodName: "GetBody", Handler: getBodyHandler},
		{MethodName: "GetPreset", Handler: getPresetHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "solar/v1/bodies.json",
}

func listBodiesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListBodiesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BodyServiceServer).ListBodies(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/ListBodies"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BodyServiceServer).ListBodies(ctx, req.(*ListBodiesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getBodyHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetBodyRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BodyServiceServer).GetBody(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetBody"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BodyServiceServer).GetBody(ctx, req.(*GetBodyRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getPresetHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetPresetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BodyServiceServer).GetPreset(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetPreset"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BodyServiceServer).GetPreset(ctx, req.(*GetPresetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Client is a typed wrapper around a connection to BodyService. Calls are
// sent with the JSON content-subtype.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

func (c *Client) ListBodies(ctx context.Context, in *ListBodiesRequest, opts ...grpc.CallOption) (*ListBodiesResponse, error) {
	out := new(ListBodiesResponse)
	if err := c.invoke(ctx, "ListBodies", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBody(ctx context.Context, in *GetBodyRequest, opts ...grpc.CallOption) (*GetBodyResponse, error) {
	out := new(GetBodyResponse)
	if err := c.invoke(ctx, "GetBody", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPreset(ctx context.Context, in *GetPresetRequest, opts ...grpc.CallOption) (*GetPresetResponse, error) {
	out := new(GetPresetResponse)
	if err := c.invoke(ctx, "GetPreset", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
