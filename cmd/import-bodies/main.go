package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"

	"solarapi/internal/app"
	"solarapi/internal/ingest"
	"solarapi/pkg/models"
	"solarapi/pkg/utils"
)

func main() {
	var (
		jsonIn  = flag.String("json", "", "comma-separated JSON snapshot files ({\"bodies\": [...]} or a bare array)")
		csvIn   = flag.String("csv", "", "comma-separated CSV files")
		urlIn   = flag.String("url", "", "comma-separated URLs serving a JSON snapshot")
		timeout = flag.Duration("timeout", 2*time.Minute, "overall timeout")
		dryRun  = flag.Bool("dry-run", false, "merge and report without writing to the store")
	)
	flag.Parse()

	cfg, err := utils.LoadConfig()
	if err != nil {
		fatal(err, "loading config")
	}
	if err := utils.SetupLogging("solar-import", cfg.LogLevel); err != nil {
		fatal(err, "setting up logging")
	}

	var sources []ingest.Source
	for _, path := range utils.SplitList(*jsonIn) {
		sources = append(sources, ingest.JSONFileSource{Path: path})
	}
	for _, path := range utils.SplitList(*csvIn) {
		sources = append(sources, ingest.CSVFileSource{Path: path})
	}
	for _, u := range utils.SplitList(*urlIn) {
		sources = append(sources, ingest.NewHTTPSource(u))
	}
	if len(sources) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	items, err := ingest.NewAggregator(sources...).FetchAndMerge(ctx)
	if err != nil {
		fatal(err, "fetching sources")
	}
	grip.Info(message.Fields{"message": "merged bodies", "count": len(items), "sources": len(sources)})

	if *dryRun {
		return
	}

	backend, err := app.OpenBackend(ctx, cfg.Store)
	if err != nil {
		fatal(err, "opening store")
	}
	name := backend.Name

	n, err := saveAndClose(ctx, backend, items)
	if err != nil {
		fatal(err, "saving bodies")
	}
	grip.Info(message.Fields{"message": "import complete", "written": n, "store": name})
}

// saveAndClose writes items and closes the backend whether or not the write
// succeeded.
func saveAndClose(ctx context.Context, backend *app.Backend, items []models.CelestialBody) (int, error) {
	defer func() {
		if err := backend.Close(context.Background()); err != nil {
			grip.Warning(message.WrapError(err, message.Fields{"message": "closing store", "store": backend.Name}))
		}
	}()
	return ingest.Save(ctx, backend.Store, items)
}

func fatal(err error, msg string) {
	grip.Emergency(message.WrapError(err, message.Fields{"message": msg}))
	os.Exit(1)
}
