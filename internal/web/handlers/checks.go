package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/iskolar-ocr/internal/audit"
	"github.com/iskolar-ocr/internal/catalog"
	"github.com/iskolar-ocr/internal/crossdoc"
	"github.com/iskolar-ocr/internal/eligibility"
	"github.com/iskolar-ocr/internal/metrics"
)

// Config carries the settings handlers need
type Config struct {
	Policy      eligibility.PolicyConfig
	BatchLimit  int
	Parallelism int
}

// ChecksHandler runs eligibility checks and serves their history
type ChecksHandler struct {
	Engine  *eligibility.Engine
	Store   audit.Store
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	Config  *Config
}

// ValidateRequest is the body of POST /api/validate
type ValidateRequest struct {
	ApplicantRef string                       `json:"applicant_ref"`
	Text         string                       `json:"text"`
	Metadata     eligibility.DeclaredMetadata `json:"metadata"`
	// Policy replaces the server default policy when present
	Policy *eligibility.PolicyConfig `json:"policy,omitempty"`
}

// ValidateResponse is returned for every validated document
type ValidateResponse struct {
	CheckID uuid.UUID          `json:"check_id"`
	Result  eligibility.Result `json:"result"`
}

// BatchRequest is the body of POST /api/validate/batch
type BatchRequest struct {
	Documents []ValidateRequest `json:"documents"`
}

// DetectRequest is the body of POST /api/detect
type DetectRequest struct {
	Text     string `json:"text"`
	Expected string `json:"expected"`
}

// Validate runs one check and records it
func (h *ChecksHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "text is required")
		return
	}

	start := time.Now()
	res := h.Engine.Validate(h.request(req))
	h.Metrics.ObserveResult(req.Metadata, res, time.Since(start))

	check := audit.NewCheck(req.ApplicantRef, checkedBy(r), req.Metadata, res)
	if err := h.Store.Record(r.Context(), check); err != nil {
		h.Logger.ErrorContext(r.Context(), "failed to record check", "error", err)
		writeError(w, http.StatusInternalServerError, "store_failed", "check could not be recorded")
		return
	}
	if res.Diagnostic != "" {
		h.Logger.InfoContext(r.Context(), "extraction diagnostic",
			"check_id", check.ID, "diagnostic", res.Diagnostic)
	}

	writeJSON(w, http.StatusOK, ValidateResponse{CheckID: check.ID, Result: res})
}

// ValidateBatch runs many checks in parallel, keeping request order
func (h *ChecksHandler) ValidateBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Documents) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "documents is empty")
		return
	}
	if h.Config.BatchLimit > 0 && len(req.Documents) > h.Config.BatchLimit {
		writeError(w, http.StatusRequestEntityTooLarge, "batch_too_large",
			fmt.Sprintf("at most %d documents per batch", h.Config.BatchLimit))
		return
	}

	reqs := make([]eligibility.Request, len(req.Documents))
	for i, doc := range req.Documents {
		reqs[i] = h.request(doc)
	}

	start := time.Now()
	results, err := h.Engine.ValidateBatch(r.Context(), reqs, h.Config.Parallelism)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "cancelled", err.Error())
		return
	}
	perDoc := time.Since(start) / time.Duration(len(results))

	out := make([]ValidateResponse, len(results))
	for i, res := range results {
		doc := req.Documents[i]
		h.Metrics.ObserveResult(doc.Metadata, res, perDoc)
		check := audit.NewCheck(doc.ApplicantRef, checkedBy(r), doc.Metadata, res)
		if err := h.Store.Record(r.Context(), check); err != nil {
			h.Logger.ErrorContext(r.Context(), "failed to record check", "error", err, "index", i)
			writeError(w, http.StatusInternalServerError, "store_failed", "check could not be recorded")
			return
		}
		out[i] = ValidateResponse{CheckID: check.ID, Result: res}
	}
	writeJSON(w, http.StatusOK, out)
}

// Detect runs only the cross-document detector
func (h *ChecksHandler) Detect(w http.ResponseWriter, r *http.Request) {
	var req DetectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !knownDocumentType(req.Expected) {
		writeError(w, http.StatusBadRequest, "invalid_request",
			fmt.Sprintf("expected must be one of %v", catalog.DocumentTypes()))
		return
	}
	writeJSON(w, http.StatusOK, crossdoc.Detect(h.Engine.Catalog(), req.Text, req.Expected))
}

// GetCheck returns a recorded check
func (h *ChecksHandler) GetCheck(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "check id must be a UUID")
		return
	}

	check, err := h.Store.Get(r.Context(), id)
	if errors.Is(err, audit.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "failed to load check", "check_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "store_failed", "check could not be loaded")
		return
	}
	writeJSON(w, http.StatusOK, check)
}

// ListApplicantChecks returns an applicant's check history, newest first
func (h *ChecksHandler) ListApplicantChecks(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]
	limit := parseIntParam(r.URL.Query().Get("limit"), 20)

	checks, err := h.Store.ListByApplicant(r.Context(), ref, limit)
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "failed to list checks", "applicant_ref", ref, "error", err)
		writeError(w, http.StatusInternalServerError, "store_failed", "checks could not be listed")
		return
	}
	writeJSON(w, http.StatusOK, checks)
}

// Health reports liveness
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ChecksHandler) request(req ValidateRequest) eligibility.Request {
	policy := h.Config.Policy
	if req.Policy != nil {
		policy = *req.Policy
	}
	return eligibility.Request{Text: req.Text, Metadata: req.Metadata, Policy: policy.WithDefaults()}
}

func checkedBy(r *http.Request) string {
	if key := r.Header.Get("X-API-Key"); len(key) > 4 {
		return "key:" + key[:4]
	}
	return "anonymous"
}

func knownDocumentType(s string) bool {
	for _, d := range catalog.DocumentTypes() {
		if string(d) == s {
			return true
		}
	}
	return false
}

func parseIntParam(s string, defaultVal int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}
