package bodies

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type Handler struct {
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

// RegisterRoutes mounts the catalog under rg (normally /api).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/allbodies", h.list) // GET /api/allbodies?isPlanet=&name=
	rg.GET("/bodies", h.list)
	rg.GET("/body/:id", h.getByID) // GET /api/body/:id

	for _, p := range Presets {
		rg.GET("/"+p.Name, h.preset(p))
	}
}

// RegisterLegacyRoutes mounts the list endpoint at paths used by earlier
// clients.
func (h *Handler) RegisterLegacyRoutes(rg *gin.RouterGroup) {
	rg.GET("/planets", h.list)
}

func (h *Handler) list(c *gin.Context) {
	params := ListParams{
		IsPlanet: c.Query("isPlanet"),
		Name:     c.Query("name"),
	}

	items, err := h.Service.ListBodies(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching bodies"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bodies": items})
}

func (h *Handler) getByID(c *gin.Context) {
	b, err := h.Service.GetBody(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Body not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching body"})
	default:
		c.JSON(http.StatusOK, gin.H{"body": b})
	}
}

func (h *Handler) preset(p Preset) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			result any
			err    error
		)
		if p.Many {
			result, err = h.Service.ListPreset(c.Request.Context(), p)
		} else {
			result, err = h.Service.FindPreset(c.Request.Context(), p)
		}

		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": p.NotFound})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching " + p.Name})
		default:
			c.JSON(http.StatusOK, gin.H{p.Name: result})
		}
	}
}
