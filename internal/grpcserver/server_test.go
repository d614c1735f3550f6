package grpcserver

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"solarapi/internal/bodies"
	"solarapi/pkg/models"
)

type sliceStore struct {
	bodies []models.CelestialBody
	err    error
}

func (s *sliceStore) FindAll(_ context.Context, f bodies.Filter) ([]models.CelestialBody, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.CelestialBody
	for _, b := range s.bodies {
		if f.Matches(b) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *sliceStore) FindOne(ctx context.Context, f bodies.Filter) (*models.CelestialBody, error) {
	out, err := s.FindAll(ctx, f)
	if err != nil || len(out) == 0 {
		return nil, err
	}
	return &out[0], nil
}

func (s *sliceStore) Ping(context.Context) error { return s.err }

type serverSuite struct {
	suite.Suite
	store  *sliceStore
	client *Client
	ctx    context.Context
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(serverSuite))
}

func (s *serverSuite) SetupTest() {
	s.store = &sliceStore{bodies: []models.CelestialBody{
		{ID: "soleil", Name: "Le Soleil", EnglishName: "Sun", BodyType: models.BodyTypeStar},
		{ID: "terre", Name: "La Terre", EnglishName: "Earth", BodyType: models.BodyTypePlanet, IsPlanet: true,
			Moons: []models.Moon{{Moon: "La Lune", Rel: "https://api.le-systeme-solaire.net/rest/bodies/lune"}}},
		{ID: "lune", Name: "La Lune", EnglishName: "Moon", BodyType: models.BodyTypeMoon,
			AroundPlanet: models.DirectParent("terre")},
		{ID: "mars", Name: "Mars", EnglishName: "Mars", BodyType: models.BodyTypePlanet, IsPlanet: true},
	}}

	lis := bufconn.Listen(1 << 20)
	srv := New(bodies.NewService(s.store, bodies.Options{Timeout: time.Second}))
	go func() { _ = srv.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)

	s.T().Cleanup(func() {
		_ = conn.Close()
		srv.Stop()
	})
	s.client = NewClient(conn)
	s.ctx = context.Background()
}

func (s *serverSuite) code(err error) codes.Code {
	s.Require().Error(err)
	return status.Code(err)
}

func (s *serverSuite) TestListBodies() {
	resp, err := s.client.ListBodies(s.ctx, &ListBodiesRequest{})
	s.Require().NoError(err)
	s.Len(resp.Bodies, 4)

	resp, err = s.client.ListBodies(s.ctx, &ListBodiesRequest{IsPlanet: "TRUE", Name: "ter"})
	s.Require().NoError(err)
	s.Require().Len(resp.Bodies, 1)
	s.Equal("terre", resp.Bodies[0].ID)
	s.Len(resp.Bodies[0].Moons, 1)

	resp, err = s.client.ListBodies(s.ctx, &ListBodiesRequest{IsPlanet: "maybe"})
	s.Require().NoError(err)
	s.Len(resp.Bodies, 4)

	resp, err = s.client.ListBodies(s.ctx, &ListBodiesRequest{Name: "vulcain"})
	s.Require().NoError(err)
	s.NotNil(resp.Bodies)
	s.Empty(resp.Bodies)
}

func (s *serverSuite) TestGetBody() {
	resp, err := s.client.GetBody(s.ctx, &GetBodyRequest{ID: "lune"})
	s.Require().NoError(err)
	s.Require().NotNil(resp.Body.AroundPlanet)
	s.Equal("terre", resp.Body.AroundPlanet.Planet)

	_, err = s.client.GetBody(s.ctx, &GetBodyRequest{ID: "vulcain"})
	s.Equal(codes.NotFound, s.code(err))

	_, err = s.client.GetBody(s.ctx, &GetBodyRequest{})
	s.Equal(codes.InvalidArgument, s.code(err))

	_, err = s.client.GetBody(s.ctx, &GetBodyRequest{ID: " lune "})
	s.Equal(codes.NotFound, s.code(err))
}

func (s *serverSuite) TestGetPreset() {
	resp, err := s.client.GetPreset(s.ctx, &GetPresetRequest{Name: "sun"})
	s.Require().NoError(err)
	s.Require().NotNil(resp.Body)
	s.Equal("soleil", resp.Body.ID)
	s.Empty(resp.Bodies)

	resp, err = s.client.GetPreset(s.ctx, &GetPresetRequest{Name: "Planets"})
	s.Require().NoError(err)
	s.Equal("planets", resp.Name)
	s.Len(resp.Bodies, 2)
	s.Nil(resp.Body)

	_, err = s.client.GetPreset(s.ctx, &GetPresetRequest{Name: "pluto"})
	s.Equal(codes.NotFound, s.code(err))

	_, err = s.client.GetPreset(s.ctx, &GetPresetRequest{Name: "comets"})
	s.Equal(codes.InvalidArgument, s.code(err))
}

func (s *serverSuite) TestEmptyPlanetListIsPresent() {
	s.store.bodies = s.store.bodies[:1]

	resp, err := s.client.GetPreset(s.ctx, &GetPresetRequest{Name: "planets"})
	s.Require().NoError(err)
	s.NotNil(resp.Bodies)
	s.Empty(resp.Bodies)
	s.Nil(resp.Body)

	sun, err := s.client.GetPreset(s.ctx, &GetPresetRequest{Name: "sun"})
	s.Require().NoError(err)
	s.Nil(sun.Bodies)
}

func (s *serverSuite) TestStoreFailureIsInternal() {
	s.store.err = errors.Wrap(bodies.ErrStoreUnavailable, "server selection timeout")

	_, err := s.client.ListBodies(s.ctx, &ListBodiesRequest{})
	s.Equal(codes.Internal, s.code(err))
	s.NotContains(status.Convert(err).Message(), "selection")

	_, err = s.client.GetBody(s.ctx, &GetBodyRequest{ID: "terre"})
	s.Equal(codes.Internal, s.code(err))

	_, err = s.client.GetPreset(s.ctx, &GetPresetRequest{Name: "planets"})
	s.Equal(codes.Internal, s.code(err))
}
