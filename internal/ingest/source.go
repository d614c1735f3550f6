package ingest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"solarapi/pkg/models"
	"solarapi/pkg/utils"
)

// Source is implemented by each place bodies can be loaded from. A source
// maps its own format into CelestialBody.
type Source interface {
	Name() string
	FetchAll(ctx context.Context) ([]models.CelestialBody, error)
}

// Snapshot is the document layout read by JSONFileSource and HTTPSource and
// written by export-bodies. It matches the list endpoint's response body.
type Snapshot struct {
	Bodies []models.CelestialBody `json:"bodies"`
}

// DecodeSnapshot accepts either {"bodies": [...]} or a bare array.
func DecodeSnapshot(data []byte) ([]models.CelestialBody, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err == nil {
		return snap.Bodies, nil
	}

	var items []models.CelestialBody
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}
	return items, nil
}

type JSONFileSource struct {
	Path string
}

func (s JSONFileSource) Name() string { return "json:" + filepath.Base(s.Path) }

func (s JSONFileSource) FetchAll(context.Context) ([]models.CelestialBody, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", s.Path)
	}
	return DecodeSnapshot(data)
}

type CSVFileSource struct {
	Path string
}

func (s CSVFileSource) Name() string { return "csv:" + filepath.Base(s.Path) }

func (s CSVFileSource) FetchAll(context.Context) ([]models.CelestialBody, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", s.Path)
	}
	defer f.Close()

	items, err := ReadCSV(f)
	return items, errors.Wrapf(err, "read %s", s.Path)
}

// HTTPSource fetches a snapshot from a remote endpoint, such as another
// instance's /api/allbodies or a mirror-server.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{URL: url, Client: utils.NewRetryingClient(utils.DefaultHTTPRetryConfig())}
}

func (s *HTTPSource) Name() string { return "http:" + s.URL }

func (s *HTTPSource) FetchAll(ctx context.Context) ([]models.CelestialBody, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "get %s", s.URL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("get %s: unexpected status %d", s.URL, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", s.URL)
	}
	return DecodeSnapshot(data)
}
