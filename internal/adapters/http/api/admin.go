package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	service "github.com/redstonehub/laurel/internal/app"
	"github.com/redstonehub/laurel/internal/domain/model"
	"github.com/redstonehub/laurel/internal/domain/placement"
	"github.com/redstonehub/laurel/pkg/logger"
)

// IdempotencyHeader carries the client's submission key on create requests.
const IdempotencyHeader = "Idempotency-Key"

const maxBodyBytes = 1 << 20

// AdminDependencies defines the admin workflow.
type AdminDependencies interface {
	SeenAndRecord(ctx context.Context, key string) bool
	Unrecord(ctx context.Context, key string)

	AdminFilters(ctx context.Context, kind model.Kind) (model.AdminFilters, error)
	SaveAdminFilters(ctx context.Context, kind model.Kind, f model.AdminFilters) (model.AdminFilters, error)
	AdminHofEntries(ctx context.Context) (model.AdminFilters, []model.HofRecord, error)
	AdminWbcEntries(ctx context.Context) (model.AdminFilters, []model.WbcRecord, error)
	LookupProfile(ctx context.Context, kind model.Kind, discord string) (*model.Profile, error)
	PrefillHof(ctx context.Context, p model.HofPayload) (model.HofPayload, error)
	PrefillWbc(ctx context.Context, p model.WbcPayload) (model.WbcPayload, error)

	CreateHof(ctx context.Context, p model.HofPayload) (service.Outcome, error)
	UpdateHof(ctx context.Context, id model.RecordID, p model.HofPayload) (service.Outcome, error)
	UpdatePlacement(ctx context.Context, id model.RecordID, p *int) (placement.Result, error)
	DeleteHof(ctx context.Context, id model.RecordID) error

	CreateWbc(ctx context.Context, p model.WbcPayload) (service.WbcOutcome, error)
	UpdateWbc(ctx context.Context, id model.RecordID, p model.WbcPayload) (service.WbcOutcome, error)
	DeleteWbc(ctx context.Context, id model.RecordID) error
}

// AdminHandler serves the admin routes.
type AdminHandler struct {
	deps   AdminDependencies
	logger logger.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(deps AdminDependencies, l logger.Logger) *AdminHandler {
	return &AdminHandler{deps: deps, logger: l}
}

type entriesResponse[R any] struct {
	Filters  model.AdminFilters `json:"filters"`
	Entries  []R                `json:"entries"`
	HasFirst *bool              `json:"has_first,omitempty"`
}

type profileResponse struct {
	Found   bool           `json:"found"`
	Profile *model.Profile `json:"profile,omitempty"`
}

type placementRequest struct {
	Placement *int `json:"placement"`
}

// HandleGetFilters handles GET /admin/{kind}/filters requests.
func (h *AdminHandler) HandleGetFilters(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindOf(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	f, err := h.deps.AdminFilters(r.Context(), kind)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// HandlePutFilters handles PUT /admin/{kind}/filters requests.
func (h *AdminHandler) HandlePutFilters(w http.ResponseWriter, r *http.Request) {
	const op = "api.admin_put_filters"
	kind, ok := kindOf(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var f model.AdminFilters
	if err := decode(w, r, &f); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	saved, err := h.deps.SaveAdminFilters(r.Context(), kind, f)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// HandleEntries handles GET /admin/{kind}/entries requests.
func (h *AdminHandler) HandleEntries(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindOf(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch kind {
	case model.KindHof:
		f, entries, err := h.deps.AdminHofEntries(r.Context())
		if err != nil {
			writeFailure(w, err)
			return
		}
		hasFirst := placement.HasFirst(entries, "")
		writeJSON(w, http.StatusOK, entriesResponse[model.HofRecord]{Filters: f, Entries: entries, HasFirst: &hasFirst})
	case model.KindWbc:
		f, entries, err := h.deps.AdminWbcEntries(r.Context())
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, entriesResponse[model.WbcRecord]{Filters: f, Entries: entries})
	}
}

// HandleProfile handles GET /admin/{kind}/profile?discord= requests.
func (h *AdminHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	const op = "api.admin_profile"
	kind, ok := kindOf(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	discord := strings.TrimSpace(r.URL.Query().Get("discord"))
	if discord == "" {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, errors.New("discord is required")))
		return
	}
	prof, err := h.deps.LookupProfile(r.Context(), kind, discord)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{Found: prof != nil, Profile: prof})
}

// HandleCreateHof handles POST /admin/hof requests.
func (h *AdminHandler) HandleCreateHof(w http.ResponseWriter, r *http.Request) {
	const op = "api.admin_hof_create"
	ctx := r.Context()
	var p model.HofPayload
	if err := decode(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	key, ok := h.claim(w, r, model.KindHof, op)
	if !ok {
		return
	}
	if wantsPrefill(r) {
		filled, err := h.deps.PrefillHof(ctx, p)
		if err != nil {
			h.deps.Unrecord(ctx, key)
			writeFailure(w, err)
			return
		}
		p = filled
	}
	out, err := h.deps.CreateHof(ctx, p)
	if err != nil {
		h.deps.Unrecord(ctx, key)
		h.logger.Error(ctx, "hof create failed", logger.String("requestId", RequestIDFromContext(ctx)), logger.Error(err))
		writeFailure(w, err)
		return
	}
	if !out.OK {
		h.deps.Unrecord(ctx, key)
		writeJSON(w, http.StatusUnprocessableEntity, out)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// HandleUpdateHof handles PUT /admin/hof/{id} requests.
func (h *AdminHandler) HandleUpdateHof(w http.ResponseWriter, r *http.Request) {
	const op = "api.admin_hof_update"
	id, ok := recordID(w, r, op)
	if !ok {
		return
	}
	var p model.HofPayload
	if err := decode(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	out, err := h.deps.UpdateHof(r.Context(), id, p)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeResult(w, out.OK, out)
}

// HandlePlacement handles PATCH /admin/hof/{id}/placement requests.
func (h *AdminHandler) HandlePlacement(w http.ResponseWriter, r *http.Request) {
	const op = "api.admin_hof_placement"
	id, ok := recordID(w, r, op)
	if !ok {
		return
	}
	var req placementRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := h.deps.UpdatePlacement(r.Context(), id, req.Placement)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeResult(w, res.OK, res)
}

// HandleDeleteHof handles DELETE /admin/hof/{id} requests.
func (h *AdminHandler) HandleDeleteHof(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r, "api.admin_hof_delete")
	if !ok {
		return
	}
	if err := h.deps.DeleteHof(r.Context(), id); err != nil {
		writeFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateWbc handles POST /admin/wbc requests.
func (h *AdminHandler) HandleCreateWbc(w http.ResponseWriter, r *http.Request) {
	const op = "api.admin_wbc_create"
	ctx := r.Context()
	var p model.WbcPayload
	if err := decode(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	key, ok := h.claim(w, r, model.KindWbc, op)
	if !ok {
		return
	}
	if wantsPrefill(r) {
		filled, err := h.deps.PrefillWbc(ctx, p)
		if err != nil {
			h.deps.Unrecord(ctx, key)
			writeFailure(w, err)
			return
		}
		p = filled
	}
	out, err := h.deps.CreateWbc(ctx, p)
	if err != nil {
		h.deps.Unrecord(ctx, key)
		h.logger.Error(ctx, "wbc create failed", logger.String("requestId", RequestIDFromContext(ctx)), logger.Error(err))
		writeFailure(w, err)
		return
	}
	if !out.OK {
		h.deps.Unrecord(ctx, key)
		writeJSON(w, http.StatusUnprocessableEntity, out)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// HandleUpdateWbc handles PUT /admin/wbc/{id} requests.
func (h *AdminHandler) HandleUpdateWbc(w http.ResponseWriter, r *http.Request) {
	const op = "api.admin_wbc_update"
	id, ok := recordID(w, r, op)
	if !ok {
		return
	}
	var p model.WbcPayload
	if err := decode(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	out, err := h.deps.UpdateWbc(r.Context(), id, p)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeResult(w, out.OK, out)
}

// HandleDeleteWbc handles DELETE /admin/wbc/{id} requests.
func (h *AdminHandler) HandleDeleteWbc(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r, "api.admin_wbc_delete")
	if !ok {
		return
	}
	if err := h.deps.DeleteWbc(r.Context(), id); err != nil {
		writeFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// claim records the request's idempotency key. It writes 409 and returns
// false when the key was already used.
func (h *AdminHandler) claim(w http.ResponseWriter, r *http.Request, kind model.Kind, op string) (string, bool) {
	raw := strings.TrimSpace(r.Header.Get(IdempotencyHeader))
	if raw == "" {
		return "", true
	}
	key := string(kind) + ":" + raw
	if h.deps.SeenAndRecord(r.Context(), key) {
		writeError(w, http.StatusConflict, "duplicate", wrapKind(op, ErrDuplicate, nil))
		return "", false
	}
	return key, true
}

func writeResult(w http.ResponseWriter, ok bool, v any) {
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, v)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func recordID(w http.ResponseWriter, r *http.Request, op string) (model.RecordID, bool) {
	id := model.RecordID(strings.TrimSpace(r.PathValue("id")))
	if id.IsZero() {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, errors.New("missing id")))
		return "", false
	}
	return id, true
}

func kindOf(r *http.Request) (model.Kind, bool) {
	rest := strings.TrimPrefix(r.URL.Path, "/admin/")
	segment, _, _ := strings.Cut(rest, "/")
	return model.ParseKind(segment)
}

func wantsPrefill(r *http.Request) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get("prefill"))
	return err == nil && v
}
