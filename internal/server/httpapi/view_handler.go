package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"zorgkaart/internal/directory"
	"zorgkaart/internal/geo"
	"zorgkaart/internal/logging"
	"zorgkaart/internal/server/store"
	"zorgkaart/internal/views"
)

// ViewHandler renders the current snapshot into a view model server-side,
// for clients that want the projection instead of the raw collection.
type ViewHandler struct {
	log      logging.Logger
	mirror   *store.Mirror
	geocoder geo.Geocoder
}

func NewViewHandler(log logging.Logger, mirror *store.Mirror, geocoder geo.Geocoder) *ViewHandler {
	return &ViewHandler{log: log.With("handler", "views"), mirror: mirror, geocoder: geocoder}
}

// Render handles GET /api/views?mode=&categorie=&q=.
func (h *ViewHandler) Render(c *gin.Context) {
	mode := views.Mode(c.DefaultQuery("mode", string(views.ModeCards)))
	if !views.ValidMode(mode) {
		RespondError(c, http.StatusBadRequest, "validation", errors.New("onbekende weergave"))
		return
	}
	f := directory.Filters{
		Categorie: c.Query("categorie"),
		Query:     c.Query("q"),
	}
	if f.Categorie != "" && !directory.ValidCategorie(f.Categorie) {
		RespondError(c, http.StatusBadRequest, "validation", errors.New("onbekende categorie"))
		return
	}

	model := views.Render(c.Request.Context(), h.mirror.Current().Providers, views.State{Mode: mode, Filters: f}, h.geocoder)
	RespondOK(c, model)
}
