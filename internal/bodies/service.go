package bodies

import (
	"context"
	"fmt"
	"time"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"

	"solarapi/pkg/models"
)

var (
	// ErrNotFound means the query ran and nothing matched.
	ErrNotFound = errors.New("body not found")
	// ErrQueryFailure means the query could not be answered.
	ErrQueryFailure = errors.New("query failure")
)

// QueryError is returned for every store failure, including timeouts. It
// matches ErrQueryFailure and unwraps to the store error.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *QueryError) Unwrap() error { return e.Err }

func (e *QueryError) Is(target error) bool { return target == ErrQueryFailure }

const DefaultTimeout = 5 * time.Second

type Options struct {
	// Timeout bounds each store call. Zero means DefaultTimeout.
	Timeout time.Duration
	// EmptyListNotFound turns an empty result for a list preset into
	// ErrNotFound instead of an empty success.
	EmptyListNotFound bool
}

// Service turns request parameters into store filters and classifies the
// outcome as a result, ErrNotFound or a QueryError.
type Service struct {
	Store Store
	opts  Options
}

func NewService(store Store, opts Options) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Service{Store: store, opts: opts}
}

// ListBodies returns every body matching the parameters. No match is an empty
// slice, not an error.
func (s *Service) ListBodies(ctx context.Context, p ListParams) ([]models.CelestialBody, error) {
	return s.findAll(ctx, "list bodies", p.Filter())
}

func (s *Service) GetBody(ctx context.Context, id string) (*models.CelestialBody, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, "get body", Filter{ID: id})
}

// FindPreset resolves a single-body preset.
func (s *Service) FindPreset(ctx context.Context, p Preset) (*models.CelestialBody, error) {
	return s.findOne(ctx, "get "+p.Name, p.Filter)
}

// ListPreset resolves a list preset, applying the empty list policy.
func (s *Service) ListPreset(ctx context.Context, p Preset) ([]models.CelestialBody, error) {
	out, err := s.findAll(ctx, "list "+p.Name, p.Filter)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 && s.opts.EmptyListNotFound {
		return nil, ErrNotFound
	}
	return out, nil
}

func (s *Service) Sun(ctx context.Context) (*models.CelestialBody, error) {
	return s.FindPreset(ctx, PresetSun)
}

func (s *Service) Pluto(ctx context.Context) (*models.CelestialBody, error) {
	return s.FindPreset(ctx, PresetPluto)
}

func (s *Service) Planets(ctx context.Context) ([]models.CelestialBody, error) {
	return s.ListPreset(ctx, PresetPlanets)
}

// Ping reports whether the store answers within the query timeout.
func (s *Service) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()
	return s.Store.Ping(ctx)
}

func (s *Service) findAll(ctx context.Context, op string, f Filter) ([]models.CelestialBody, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	out, err := s.Store.FindAll(ctx, f)
	if err != nil {
		return nil, s.failure(op, f, err)
	}
	if out == nil {
		out = []models.CelestialBody{}
	}
	return out, nil
}

func (s *Service) findOne(ctx context.Context, op string, f Filter) (*models.CelestialBody, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	b, err := s.Store.FindOne(ctx, f)
	if err != nil {
		return nil, s.failure(op, f, err)
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *Service) failure(op string, f Filter, err error) error {
	grip.Error(message.WrapError(err, message.Fields{
		"message":  "body query failed",
		"op":       op,
		"filter":   f.fields(),
		"timeout":  s.opts.Timeout.String(),
		"deadline": errors.Is(err, context.DeadlineExceeded),
	}))
	return &QueryError{Op: op, Err: err}
}
