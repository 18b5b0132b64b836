package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/redstonehub/laurel/internal/domain/model"
	"github.com/redstonehub/laurel/internal/domain/types"
)

// WbcDependencies defines the read side of Weekly Best Content.
type WbcDependencies interface {
	WbcMonths(ctx context.Context) ([]types.WbcMonth, error)
	WbcEntry(ctx context.Context, id model.RecordID, month, week string) (types.WbcEntry, error)
}

// WbcHandler serves the public weekly views.
type WbcHandler struct {
	deps WbcDependencies
}

// NewWbcHandler creates a new weekly handler.
func NewWbcHandler(deps WbcDependencies) *WbcHandler {
	return &WbcHandler{deps: deps}
}

// HandleMonths handles GET /wbc/months requests.
func (h *WbcHandler) HandleMonths(w http.ResponseWriter, r *http.Request) {
	months, err := h.deps.WbcMonths(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, months)
}

// HandleEntry handles GET /wbc/entry?id= and GET /wbc/entry?month=&week=.
func (h *WbcHandler) HandleEntry(w http.ResponseWriter, r *http.Request) {
	const op = "api.wbc_entry"
	q := r.URL.Query()
	id := model.RecordID(strings.TrimSpace(q.Get("id")))
	month := strings.TrimSpace(q.Get("month"))
	week := strings.TrimSpace(q.Get("week"))
	if id.IsZero() && (month == "" || week == "") {
		writeError(w, http.StatusBadRequest, "bad_request",
			wrapKind(op, ErrBadRequest, errors.New("id or month and week required")))
		return
	}
	entry, err := h.deps.WbcEntry(r.Context(), id, month, week)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
