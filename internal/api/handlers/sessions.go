package handlers

import (
	"errors"
	"log"
	"net/http"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/planner"
)

var errExtraBody = errors.New("body must contain only one JSON object")

// SessionHandler exposes the planning session lifecycle and forwards
// presentation intents to the session's orchestrator.
type SessionHandler struct {
	Store *SessionStore
}

// Create starts a new planning session.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := h.Store.Create()
	writeJSON(w, r, http.StatusCreated, dto.CreateSessionResponse{SessionID: id})
}

// Snapshot returns the current session state.
func (h *SessionHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	o, ok := h.session(w, r)
	if !ok {
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromSnapshot(o.Snapshot()))
}

// EditLocation records a keystroke-level edit of an address field.
func (h *SessionHandler) EditLocation(w http.ResponseWriter, r *http.Request) {
	o, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.LocationIntentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	which := domain.LocationField(req.Field)
	if !which.Valid() {
		writeError(w, r, http.StatusBadRequest, "field must be pickup or dropoff")
		return
	}

	o.EditLocationText(which, req.Text)
	writeJSON(w, r, http.StatusOK, dto.FromSnapshot(o.Snapshot()))
}

// CommitLocation resolves a committed (blurred) address field. The
// request blocks until the lookup finishes; a superseded lookup simply
// leaves no trace in the returned snapshot.
func (h *SessionHandler) CommitLocation(w http.ResponseWriter, r *http.Request) {
	o, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.LocationIntentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	which := domain.LocationField(req.Field)
	if !which.Valid() {
		writeError(w, r, http.StatusBadRequest, "field must be pickup or dropoff")
		return
	}

	if err := o.CommitLocation(r.Context(), which, req.Text); err != nil {
		log.Printf("commit location failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromSnapshot(o.Snapshot()))
}

// EditField sets a scalar form field.
func (h *SessionHandler) EditField(w http.ResponseWriter, r *http.Request) {
	o, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.FieldIntentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	o.EditField(domain.Field(req.Field), req.Value)
	writeJSON(w, r, http.StatusOK, dto.FromSnapshot(o.Snapshot()))
}

// Submit validates the draft and, when valid, requests a route.
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	o, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := o.Submit(r.Context()); err != nil {
		if errors.Is(err, planner.ErrBusy) {
			writeError(w, r, http.StatusConflict, "a submission is already in progress")
			return
		}
		log.Printf("submit failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromSnapshot(o.Snapshot()))
}

// GenerateLogs requests the compliance log document for the created
// trip.
func (h *SessionHandler) GenerateLogs(w http.ResponseWriter, r *http.Request) {
	o, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := o.GenerateLogs(r.Context()); err != nil {
		if errors.Is(err, planner.ErrBusy) {
			writeError(w, r, http.StatusConflict, "a submission is already in progress")
			return
		}
		log.Printf("generate logs failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromSnapshot(o.Snapshot()))
}

// Dismiss clears the transient submit-level error and success notice.
func (h *SessionHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	o, ok := h.session(w, r)
	if !ok {
		return
	}

	o.Dismiss()
	writeJSON(w, r, http.StatusOK, dto.FromSnapshot(o.Snapshot()))
}

func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*planner.Orchestrator, bool) {
	o, ok := h.Store.Get(r.PathValue("id"))
	if !ok {
		writeError(w, r, http.StatusNotFound, "session not found")
		return nil, false
	}
	return o, true
}
