package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"

	"solarapi/internal/ingest"
	"solarapi/internal/server"
	"solarapi/pkg/utils"
)

// mirror-server serves a JSON snapshot at GET /api/allbodies so HTTPSource
// can be exercised without a database.
func main() {
	var (
		dataPath = flag.String("data", "data/bodies.json", "snapshot written by export-bodies")
		addr     = flag.String("addr", ":9000", "listen address")
	)
	flag.Parse()

	if err := utils.SetupLogging("solar-mirror", utils.GetString("SOLAR_LOG_LEVEL", "info")); err != nil {
		grip.Emergency(err)
		os.Exit(1)
	}
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(server.RequestID(), server.RequestLogger(nil), gin.Recovery())

	router.GET("/api/allbodies", snapshotHandler(*dataPath))

	grip.Info(message.Fields{"message": "mirror-server listening", "addr": *addr, "data": *dataPath})
	if err := server.NewHTTPServer(*addr, router).Start(); err != nil {
		grip.Emergency(message.WrapError(err, message.Fields{"message": "mirror-server stopped"}))
		os.Exit(1)
	}
}

// snapshotHandler re-reads the snapshot on every request; a file that fails
// to parse is reported as a 500 rather than served as-is.
func snapshotHandler(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := ingest.JSONFileSource{Path: path}.FetchAll(c.Request.Context())
		if err != nil {
			grip.Error(message.WrapError(err, message.Fields{"message": "cannot serve snapshot", "path": path}))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching bodies"})
			return
		}
		c.JSON(http.StatusOK, ingest.Snapshot{Bodies: items})
	}
}
