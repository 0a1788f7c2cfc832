package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"zorgkaart/internal/geo"
	"zorgkaart/internal/logging"
)

// PlaceSearcher is the slice of the geo client the handler needs.
type PlaceSearcher interface {
	Search(ctx context.Context, q string) ([]geo.Place, error)
}

// PlaceHandler serves free-text place lookups used by the address form.
type PlaceHandler struct {
	log    logging.Logger
	places PlaceSearcher
}

func NewPlaceHandler(log logging.Logger, places PlaceSearcher) *PlaceHandler {
	return &PlaceHandler{log: log.With("handler", "places"), places: places}
}

type placesResponse struct {
	Places []geo.Place `json:"places"`
}

// Search handles GET /api/places?q=. Queries under three characters return
// an empty result instead of hammering the geocoder with every keystroke.
func (h *PlaceHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if len([]rune(q)) < 3 {
		RespondOK(c, placesResponse{Places: []geo.Place{}})
		return
	}

	places, err := h.places.Search(c.Request.Context(), q)
	if err != nil {
		h.log.Error(c.Request.Context(), "place lookup failed", "error", err)
		RespondError(c, http.StatusBadGateway, "geocoder", errors.New("adreszoeker niet bereikbaar"))
		return
	}
	RespondOK(c, placesResponse{Places: places})
}
