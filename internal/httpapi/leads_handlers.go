package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/prospect"
)

type LeadsHandler struct {
	Engine *prospect.Engine
}

// Search validates the filter set first; the provider is never touched
// for a malformed query.
func (h LeadsHandler) Search(w http.ResponseWriter, r *http.Request) {
	var q domain.LeadQuery
	if err := decodeStrict(r, &q); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	candidates, err := h.Engine.LeadsSearch(r.Context(), q)
	if err != nil {
		var verr *prospect.ValidationError
		if errors.As(err, &verr) {
			WriteError(w, r, http.StatusBadRequest, "invalid_query", verr.Error())
			return
		}
		WriteError(w, r, http.StatusBadGateway, "search_failed", err.Error())
		return
	}
	if candidates == nil {
		candidates = []domain.CompanyCandidate{}
	}

	// lead searches download like lookups do
	label := strings.TrimSpace(q.IndustryFocus)
	snap, err := h.Engine.ExportCandidates(r.Context(), label, candidates)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "export_failed", err.Error())
		return
	}

	writeJSON(w, map[string]any{
		"ok":           true,
		"request_id":   RequestIDFrom(r.Context()),
		"total":        len(candidates),
		"candidates":   candidates,
		"download_url": "/download/" + snap.Name,
	})
}

type contactsReq struct {
	Company string   `json:"company"`
	Roles   []string `json:"roles,omitempty"`
}

func (h LeadsHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	var req contactsReq
	if err := decodeStrict(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	people, err := h.Engine.Contacts(r.Context(), req.Company, req.Roles)
	if err != nil {
		var verr *prospect.ValidationError
		if errors.As(err, &verr) {
			WriteError(w, r, http.StatusBadRequest, "invalid_query", verr.Error())
			return
		}
		WriteError(w, r, http.StatusBadGateway, "search_failed", err.Error())
		return
	}
	if people == nil {
		people = []domain.PersonLead{}
	}
	writeJSON(w, map[string]any{"ok": true, "contacts": people})
}
