package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/allbodies", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("isPlanet"))
		assert.Equal(t, "ter", r.URL.Query().Get("name"))
		_, _ = w.Write([]byte(`{"bodies":[{"id":"terre","name":"La Terre","englishName":"Earth","bodyType":"Planet","isPlanet":true,"moons":[{"moon":"La Lune"}],"aroundPlanet":null}]}`))
	})
	mux.HandleFunc("/api/sun", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"sun":{"id":"soleil","name":"Le Soleil","bodyType":"Star","gravity":274}}`))
	})
	mux.HandleFunc("/api/body/terre", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"body":{"id":"terre","name":"La Terre","moons":[{"moon":"La Lune"}]}}`))
	})
	mux.HandleFunc("/api/body/vulcain", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Body not found"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestBodiesListTable(t *testing.T) {
	srv := fakeAPI(t)
	var out bytes.Buffer

	err := newApp(&out).Run([]string{"solar", "--api", srv.URL, "--table", "bodies", "list", "--isPlanet", "true", "--name", "ter"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "terre")
	assert.Contains(t, out.String(), "La Terre")
	assert.Contains(t, out.String(), "1 bodies")
}

func TestSunJSON(t *testing.T) {
	srv := fakeAPI(t)
	var out bytes.Buffer

	require.NoError(t, newApp(&out).Run([]string{"solar", "--api", srv.URL, "sun"}))
	assert.Contains(t, out.String(), `"id": "soleil"`)
	assert.Contains(t, out.String(), `"gravity": 274`)
}

func TestShowTableListsMoons(t *testing.T) {
	srv := fakeAPI(t)
	var out bytes.Buffer

	require.NoError(t, newApp(&out).Run([]string{"solar", "--api", srv.URL, "--table", "bodies", "show", "terre"}))
	assert.Contains(t, out.String(), "La Lune")
	assert.Contains(t, out.String(), "moons")
}

func TestShowMissingBody(t *testing.T) {
	srv := fakeAPI(t)
	var out bytes.Buffer

	err := newApp(&out).Run([]string{"solar", "--api", srv.URL, "bodies", "show", "vulcain"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Body not found")

	err = newApp(&out).Run([]string{"solar", "--api", srv.URL, "bodies", "show"})
	assert.Error(t, err)
}

func TestBadIsPlanetFlag(t *testing.T) {
	var out bytes.Buffer
	err := newApp(&out).Run([]string{"solar", "bodies", "list", "--isPlanet", "maybe"})
	assert.Error(t, err)
}
