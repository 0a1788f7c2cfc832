package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"zorgkaart/internal/directory"
	"zorgkaart/internal/logging"
	"zorgkaart/internal/server/store"
)

// ProviderMutator is the slice of the providers service the handler needs.
type ProviderMutator interface {
	Create(ctx context.Context, p *directory.Provider) (*directory.Provider, error)
	Update(ctx context.Context, p *directory.Provider) error
	Delete(ctx context.Context, id string) error
	AppendComment(ctx context.Context, id, tekst, auteur string) error
	RemoveComment(ctx context.Context, id string, displayIndex int) error
}

// ProviderHandler serves provider reads from the mirror and forwards
// mutations to the service. Mutation responses confirm receipt only; the
// updated collection reaches clients through the snapshot stream.
type ProviderHandler struct {
	log     logging.Logger
	mirror  *store.Mirror
	service ProviderMutator
}

func NewProviderHandler(log logging.Logger, mirror *store.Mirror, service ProviderMutator) *ProviderHandler {
	return &ProviderHandler{log: log.With("handler", "providers"), mirror: mirror, service: service}
}

type listResponse struct {
	Providers []directory.Provider `json:"providers"`
	Count     int                  `json:"count"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// List filters the current snapshot with the categorie and q query
// parameters.
func (h *ProviderHandler) List(c *gin.Context) {
	f := directory.Filters{
		Categorie: c.Query("categorie"),
		Query:     c.Query("q"),
	}
	if f.Categorie != "" && !directory.ValidCategorie(f.Categorie) {
		RespondError(c, http.StatusBadRequest, "validation", errors.New("onbekende categorie"))
		return
	}

	filtered := directory.Apply(h.mirror.Current().Providers, f)
	RespondOK(c, listResponse{Providers: filtered, Count: len(filtered)})
}

func (h *ProviderHandler) Create(c *gin.Context) {
	var p directory.Provider
	if err := c.ShouldBindJSON(&p); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("ongeldige aanvraag"))
		return
	}

	created, err := h.service.Create(c.Request.Context(), &p)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ProviderHandler) Update(c *gin.Context) {
	var p directory.Provider
	if err := c.ShouldBindJSON(&p); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("ongeldige aanvraag"))
		return
	}
	p.ID = c.Param("id")

	if err := h.service.Update(c.Request.Context(), &p); err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, statusResponse{Status: "bijgewerkt"})
}

func (h *ProviderHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, statusResponse{Status: "verwijderd"})
}

type commentRequest struct {
	Tekst  string `json:"tekst"`
	Auteur string `json:"auteur"`
}

func (h *ProviderHandler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("ongeldige aanvraag"))
		return
	}

	if err := h.service.AppendComment(c.Request.Context(), c.Param("id"), req.Tekst, req.Auteur); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, statusResponse{Status: "opmerking toegevoegd"})
}

// DeleteComment removes a comment by its display position, the index the
// client rendered after newest-first sorting.
func (h *ProviderHandler) DeleteComment(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("ongeldige index"))
		return
	}

	if err := h.service.RemoveComment(c.Request.Context(), c.Param("id"), index); err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, statusResponse{Status: "opmerking verwijderd"})
}
