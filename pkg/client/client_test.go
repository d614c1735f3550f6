package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"

	"solarapi/internal/bodies"
	"solarapi/internal/server"
	"solarapi/pkg/database"
	"solarapi/pkg/models"
	"solarapi/pkg/utils"
)

type clientSuite struct {
	suite.Suite
	srv    *httptest.Server
	client *Client
	ctx    context.Context
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(clientSuite))
}

func (s *clientSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.ctx = context.Background()

	db, err := database.OpenSQLite(s.ctx, filepath.Join(s.T().TempDir(), "bodies.db"))
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = db.Close() })

	store := bodies.NewSQLiteStore(db)
	_, err = store.UpsertAll(s.ctx, []models.CelestialBody{
		{ID: "soleil", Name: "Le Soleil", EnglishName: "Sun", BodyType: models.BodyTypeStar},
		{ID: "terre", Name: "La Terre", EnglishName: "Earth", BodyType: models.BodyTypePlanet, IsPlanet: true},
		{ID: "mars", Name: "Mars", EnglishName: "Mars", BodyType: models.BodyTypePlanet, IsPlanet: true},
		{ID: "lune", Name: "La Lune", EnglishName: "Moon", BodyType: models.BodyTypeMoon, AroundPlanet: models.DirectParent("terre")},
	})
	s.Require().NoError(err)

	svc := bodies.NewService(store, bodies.Options{})
	router := server.NewRouter(bodies.NewHandler(svc), server.RouterOptions{
		CORS:      utils.DefaultConfig().CORS,
		StoreName: utils.StoreSQLite,
		Pinger:    svc,
	})
	s.srv = httptest.NewServer(router)
	s.client = New(s.srv.URL + "/")
}

func (s *clientSuite) TearDownSuite() {
	s.srv.Close()
}

func (s *clientSuite) TestListBodies() {
	all, err := s.client.ListBodies(s.ctx, ListOptions{})
	s.Require().NoError(err)
	s.Len(all, 4)

	yes := true
	planets, err := s.client.ListBodies(s.ctx, ListOptions{IsPlanet: &yes, Name: "TER"})
	s.Require().NoError(err)
	s.Require().Len(planets, 1)
	s.Equal("terre", planets[0].ID)

	none, err := s.client.ListBodies(s.ctx, ListOptions{Name: "vulcain"})
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *clientSuite) TestGetBody() {
	b, err := s.client.GetBody(s.ctx, "lune")
	s.Require().NoError(err)
	s.Equal("terre", b.AroundPlanet.Planet)

	_, err = s.client.GetBody(s.ctx, "vulcain")
	s.True(errors.Is(err, ErrNotFound))
	s.Contains(err.Error(), "Body not found")
}

func (s *clientSuite) TestPresets() {
	sun, err := s.client.Sun(s.ctx)
	s.Require().NoError(err)
	s.Equal("soleil", sun.ID)

	_, err = s.client.Pluto(s.ctx)
	s.True(errors.Is(err, ErrNotFound))

	planets, err := s.client.Planets(s.ctx)
	s.Require().NoError(err)
	s.Len(planets, 2)
}

func (s *clientSuite) TestServerError() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Error fetching bodies"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListBodies(s.ctx, ListOptions{})
	var apiErr *APIError
	s.Require().True(errors.As(err, &apiErr))
	s.Equal(http.StatusInternalServerError, apiErr.StatusCode)
	s.Equal("Error fetching bodies", apiErr.Message)
}
