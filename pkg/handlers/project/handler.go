package project

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/maturity-atlas/pkg/adapters"
	"github.com/de-tools/maturity-atlas/pkg/models/api"
	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/services/analytics"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	analytics     analytics.Service
	defaultPeriod domain.Period
}

func NewHandler(svc analytics.Service, defaultPeriod domain.Period) *Handler {
	if defaultPeriod == "" {
		defaultPeriod = domain.Period6Months
	}
	return &Handler{
		analytics:     svc,
		defaultPeriod: defaultPeriod,
	}
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.analytics.ListProjects(r.Context())
	if err != nil {
		writeError(w, r, err, "failed to list projects")
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapProjectsDomainToApi(projects))
}

func (h *Handler) GetGapReport(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project")

	kind := domain.ItemKindRequirement
	if raw := r.URL.Query().Get("kind"); raw != "" {
		parsed, err := domain.ParseItemKind(raw)
		if err != nil {
			writeError(w, r, err, "invalid gap report kind")
			return
		}
		kind = parsed
	}

	report, err := h.analytics.GapReport(r.Context(), projectID, kind)
	if err != nil {
		writeError(w, r, err, "failed to build gap report")
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapGapReportDomainToApi(report))
}

func (h *Handler) GetSoA(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project")

	statement, err := h.analytics.SoAStatement(r.Context(), projectID)
	if err != nil {
		writeError(w, r, err, "failed to build statement of applicability")
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapSoAStatementDomainToApi(statement))
}

func (h *Handler) GenerateSoA(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project")

	created, err := h.analytics.GenerateSoA(r.Context(), projectID)
	if err != nil {
		writeError(w, r, err, "failed to generate statement of applicability")
		return
	}
	writeJSON(w, r, http.StatusOK, api.SoAGenerateResult{ProjectID: projectID, Created: created})
}

func (h *Handler) PatchSoAEntry(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project")
	controlID := chi.URLParam(r, "control")

	var patch api.SoAEntryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, r, domain.InvalidField("body", err.Error()), "invalid soa patch")
		return
	}
	update, err := toSoAUpdate(patch)
	if err != nil {
		writeError(w, r, err, "invalid soa patch")
		return
	}

	entry, err := h.analytics.UpdateSoAEntry(r.Context(), projectID, controlID, update)
	if err != nil {
		writeError(w, r, err, "failed to update soa entry")
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapSoAEntryDomainToApi(entry))
}

func toSoAUpdate(patch api.SoAEntryPatch) (analytics.SoAUpdate, error) {
	update := analytics.SoAUpdate{
		Applicable:    patch.Applicable,
		Justification: patch.Justification,
	}
	switch {
	case patch.ClearStatus && patch.ImplementationStatus != nil:
		return analytics.SoAUpdate{}, domain.InvalidField("clear_status", "set together with implementation_status")
	case patch.ClearStatus:
		update.SetStatus = true
	case patch.ImplementationStatus != nil:
		status, err := domain.ParseImplementationStatus(*patch.ImplementationStatus)
		if err != nil {
			return analytics.SoAUpdate{}, err
		}
		update.SetStatus = true
		update.Status = &status
	}
	return update, nil
}

func (h *Handler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project")

	report, err := h.analytics.Readiness(r.Context(), projectID)
	if err != nil {
		writeError(w, r, err, "failed to score readiness")
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapReadinessReportDomainToApi(report))
}

func (h *Handler) ListReadiness(w http.ResponseWriter, r *http.Request) {
	reports, err := h.analytics.ReadinessAll(r.Context())
	if err != nil {
		writeError(w, r, err, "failed to score readiness")
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapReadinessReportsDomainToApi(reports))
}

func (h *Handler) GetTrends(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	period := h.defaultPeriod
	if raw := query.Get("period"); raw != "" {
		parsed, err := domain.ParsePeriod(raw)
		if err != nil {
			writeError(w, r, err, "invalid trend period")
			return
		}
		period = parsed
	}

	rows, err := h.analytics.Trends(r.Context(), period, query.Get("project"))
	if err != nil {
		writeError(w, r, err, "failed to build trends")
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapTrendRowsDomainToApi(rows))
}

func (h *Handler) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	cells, err := h.analytics.Heatmap(r.Context())
	if err != nil {
		writeError(w, r, err, "failed to build heatmap")
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapHeatmapDomainToApi(cells))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := statusFor(err)
	event := zerolog.Ctx(r.Context()).Warn()
	if status == http.StatusInternalServerError {
		event = zerolog.Ctx(r.Context()).Error()
	}
	event.Err(err).Int("status", status).Msg(msg)

	body := api.Error{Error: err.Error()}
	if status == http.StatusInternalServerError {
		body.Error = http.StatusText(status)
	}
	writeJSON(w, r, status, body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
