package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/redstonehub/laurel/internal/domain/types"
)

// HofDependencies defines the read side of the Hall of Fame.
type HofDependencies interface {
	HofListing(ctx context.Context, month, slug, search string) (types.Listing, error)
	HofMonths(ctx context.Context) ([]types.MonthTile, error)
	HofPerson(ctx context.Context, key string) (types.PersonProfile, error)
}

// HofHandler serves the public Hall of Fame views.
type HofHandler struct {
	deps HofDependencies
}

// NewHofHandler creates a new Hall of Fame handler.
func NewHofHandler(deps HofDependencies) *HofHandler {
	return &HofHandler{deps: deps}
}

// HandleListing handles GET /hof?month=&category=&q= requests.
func (h *HofHandler) HandleListing(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	listing, err := h.deps.HofListing(r.Context(),
		strings.TrimSpace(q.Get("month")),
		strings.TrimSpace(q.Get("category")),
		q.Get("q"),
	)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

// HandleMonths handles GET /hof/months requests.
func (h *HofHandler) HandleMonths(w http.ResponseWriter, r *http.Request) {
	tiles, err := h.deps.HofMonths(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tiles)
}

// HandlePerson handles GET /hof/people/{key} requests.
func (h *HofHandler) HandlePerson(w http.ResponseWriter, r *http.Request) {
	const op = "api.hof_person"
	key := strings.TrimSpace(r.PathValue("key"))
	if key == "" {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, nil))
		return
	}
	profile, err := h.deps.HofPerson(r.Context(), key)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
