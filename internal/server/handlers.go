package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/models"
)

// ErrorResponse is the body of every 4xx/5xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// SubmitResponse is returned by POST /api/trades.
type SubmitResponse struct {
	Trade   *models.Trade `json:"trade"`
	Warning string        `json:"warning,omitempty"`
}

// WarningResponse is returned instead of 204 when a change was applied but
// could not be persisted.
type WarningResponse struct {
	Warning string `json:"warning"`
}

// NotesRequest is the body of PUT /api/trades/{id}/notes.
type NotesRequest struct {
	Notes string `json:"notes"`
}

// ClearRequest is the body of POST /api/trades/clear.
type ClearRequest struct {
	Confirm bool `json:"confirm"`
}

const maxBodyBytes = 1 << 20

// APIHandler holds dependencies for the API endpoints.
type APIHandler struct {
	journal *journal.Journal
	log     *zap.Logger
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(j *journal.Journal, log *zap.Logger) *APIHandler {
	return &APIHandler{journal: j, log: log}
}

// Routes returns the API mux.
func (h *APIHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/trades", h.TradesHandler)
	mux.HandleFunc("POST /api/trades", h.SubmitHandler)
	mux.HandleFunc("POST /api/trades/clear", h.ClearHandler)
	mux.HandleFunc("DELETE /api/trades/{id}", h.DeleteHandler)
	mux.HandleFunc("PUT /api/trades/{id}/notes", h.NotesHandler)
	mux.HandleFunc("GET /api/stats", h.StatsHandler)
	mux.HandleFunc("GET /api/export", h.ExportHandler)
	mux.HandleFunc("GET /health", h.HealthHandler)
	return h.logRequests(mux)
}

func (h *APIHandler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.log.Debug("Handled request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)))
	})
}

// TradesHandler returns the filtered trade table with its summary.
func (h *APIHandler) TradesHandler(w http.ResponseWriter, r *http.Request) {
	c, ok := h.criteria(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.journal.View(c))
}

// StatsHandler returns only the summary of the filtered trades.
func (h *APIHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	c, ok := h.criteria(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.journal.View(c).Summary)
}

// SubmitHandler validates and records a new trade.
func (h *APIHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	var raw journal.RawTrade
	if !h.decode(w, r, &raw) {
		return
	}

	tr, err := h.journal.Submit(raw)
	if err != nil && !journal.IsWarning(err) {
		h.writeValidationError(w, err)
		return
	}

	resp := SubmitResponse{Trade: tr}
	if err != nil {
		resp.Warning = err.Error()
	}
	h.writeJSON(w, http.StatusCreated, resp)
}

// DeleteHandler removes a trade. Unknown ids succeed.
func (h *APIHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	h.writeMutation(w, h.journal.Delete(id))
}

// NotesHandler replaces the notes of a trade. Unknown ids succeed.
func (h *APIHandler) NotesHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req NotesRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.writeMutation(w, h.journal.UpdateNotes(id, req.Notes))
}

// ClearHandler removes every trade once the request confirms it.
func (h *APIHandler) ClearHandler(w http.ResponseWriter, r *http.Request) {
	var req ClearRequest
	if !h.decode(w, r, &req) {
		return
	}
	err := h.journal.Clear(req.Confirm)
	if errors.Is(err, journal.ErrConfirmationRequired) {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: "confirm"})
		return
	}
	h.writeMutation(w, err)
}

// ExportHandler downloads every trade as CSV.
func (h *APIHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := h.journal.Export(&buf)
	if errors.Is(err, journal.ErrNothingToExport) {
		h.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		h.log.Error("Failed to export trades", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to export trades"})
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", journal.ExportFilename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (h *APIHandler) criteria(w http.ResponseWriter, r *http.Request) (journal.Criteria, bool) {
	q := r.URL.Query()
	result, err := journal.ParseResult(q.Get("result"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: "result"})
		return journal.Criteria{}, false
	}

	c := journal.Criteria{Result: result, StartDate: q.Get("start"), EndDate: q.Get("end")}
	for field, v := range map[string]string{"start": c.StartDate, "end": c.EndDate} {
		if v == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", v); err != nil {
			h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: journal.ErrInvalidDate.Error(), Field: field})
			return journal.Criteria{}, false
		}
	}
	return c, true
}

func (h *APIHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid trade id", Field: "id"})
		return 0, false
	}
	return id, true
}

func (h *APIHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

// writeMutation answers a delete, notes or clear request. A persistence
// failure still counts as success.
func (h *APIHandler) writeMutation(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case journal.IsWarning(err):
		h.writeJSON(w, http.StatusOK, WarningResponse{Warning: err.Error()})
	default:
		h.log.Error("Journal update failed", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}

func (h *APIHandler) writeValidationError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}
	var nerr *journal.InvalidNumericFieldError
	switch {
	case errors.As(err, &nerr):
		resp.Field = nerr.Field
	case errors.Is(err, journal.ErrInvalidDate):
		resp.Field = "date"
	case errors.Is(err, journal.ErrInvalidDirection):
		resp.Field = "direction"
	case errors.Is(err, journal.ErrMissingSymbol):
		resp.Field = "symbol"
	}
	h.writeJSON(w, http.StatusBadRequest, resp)
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("Failed to write response", zap.Error(err))
	}
}
