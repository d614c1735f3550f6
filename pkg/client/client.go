// Package client is a typed Go client for the Solar API HTTP interface.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"solarapi/pkg/models"
	"solarapi/pkg/utils"
)

// ErrNotFound is returned for a 404 response.
var ErrNotFound = errors.New("not found")

// APIError is any other non-200 response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("solar api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("solar api: status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a client for baseURL (for example http://localhost:3001) using
// a retrying transport.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    utils.NewRetryingClient(utils.DefaultHTTPRetryConfig()),
	}
}

type ListOptions struct {
	IsPlanet *bool
	Name     string
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.IsPlanet != nil {
		q.Set("isPlanet", strconv.FormatBool(*o.IsPlanet))
	}
	if o.Name != "" {
		q.Set("name", o.Name)
	}
	return q
}

func (c *Client) ListBodies(ctx context.Context, opts ListOptions) ([]models.CelestialBody, error) {
	var out struct {
		Bodies []models.CelestialBody `json:"bodies"`
	}
	if err := c.get(ctx, "/api/allbodies", opts.query(), &out); err != nil {
		return nil, err
	}
	return out.Bodies, nil
}

func (c *Client) GetBody(ctx context.Context, id string) (*models.CelestialBody, error) {
	var out struct {
		Body *models.CelestialBody `json:"body"`
	}
	if err := c.get(ctx, "/api/body/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return out.Body, nil
}

func (c *Client) Sun(ctx context.Context) (*models.CelestialBody, error) {
	var out struct {
		Sun *models.CelestialBody `json:"sun"`
	}
	if err := c.get(ctx, "/api/sun", nil, &out); err != nil {
		return nil, err
	}
	return out.Sun, nil
}

func (c *Client) Pluto(ctx context.Context) (*models.CelestialBody, error) {
	var out struct {
		Pluto *models.CelestialBody `json:"pluto"`
	}
	if err := c.get(ctx, "/api/pluto", nil, &out); err != nil {
		return nil, err
	}
	return out.Pluto, nil
}

func (c *Client) Planets(ctx context.Context) ([]models.CelestialBody, error) {
	var out struct {
		Planets []models.CelestialBody `json:"planets"`
	}
	if err := c.get(ctx, "/api/planets", nil, &out); err != nil {
		return nil, err
	}
	return out.Planets, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Accept", "application/json")

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "GET %s", path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return errors.Wrapf(json.Unmarshal(body, out), "decoding %s", path)
	case http.StatusNotFound:
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &msg)
		if msg.Message == "" {
			return ErrNotFound
		}
		return errors.Wrap(ErrNotFound, msg.Message)
	default:
		var msg struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &msg)
		return &APIError{StatusCode: resp.StatusCode, Message: msg.Error}
	}
}
