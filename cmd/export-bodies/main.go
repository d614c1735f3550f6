package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"

	"solarapi/internal/app"
	"solarapi/internal/bodies"
	"solarapi/internal/ingest"
	"solarapi/pkg/models"
	"solarapi/pkg/utils"
)

func main() {
	var (
		out      = flag.String("out", "data/bodies.json", "output path, or - for stdout")
		format   = flag.String("format", "", "csv or json (default: from the output extension)")
		isPlanet = flag.String("isPlanet", "", "only export bodies with this isPlanet value")
		name     = flag.String("name", "", "only export bodies whose name contains this text")
	)
	flag.Parse()

	cfg, err := utils.LoadConfig()
	if err != nil {
		fatal(err, "loading config")
	}
	if err := utils.SetupLogging("solar-export", cfg.LogLevel); err != nil {
		fatal(err, "setting up logging")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	backend, err := app.OpenBackend(ctx, cfg.Store)
	if err != nil {
		fatal(err, "opening store")
	}
	defer backend.Close(context.Background())

	svc := bodies.NewService(backend.Store, app.ServiceOptions(cfg.Query))
	items, err := svc.ListBodies(ctx, bodies.ListParams{IsPlanet: *isPlanet, Name: *name})
	if err != nil {
		fatal(err, "listing bodies")
	}

	if err := export(*out, resolveFormat(*format, *out), items); err != nil {
		fatal(err, "export failed")
	}
	grip.Info(message.Fields{"message": "export complete", "count": len(items), "out": *out})
}

func resolveFormat(format, out string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	if strings.EqualFold(filepath.Ext(out), ".csv") {
		return "csv"
	}
	return "json"
}

func export(outPath, format string, items []models.CelestialBody) error {
	var w io.Writer = os.Stdout
	if outPath != "-" {
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "csv":
		return ingest.WriteCSV(w, items)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ingest.Snapshot{Bodies: items})
	}
	return errors.Errorf("unknown format '%s'", format)
}

func fatal(err error, msg string) {
	grip.Emergency(message.WrapError(err, message.Fields{"message": msg}))
	os.Exit(1)
}
