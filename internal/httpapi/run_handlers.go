package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"leadscout-engine/internal/prospect"
)

type RunHandler struct {
	Engine    *prospect.Engine
	RunStatus *atomic.Value // httpapi.RunStatus
}

type runReq struct {
	Query    string `json:"query"`
	Location string `json:"location,omitempty"`
}

type enrichReq struct {
	Company  string `json:"company"`
	Website  string `json:"website,omitempty"`
	Location string `json:"location,omitempty"`
}

func (h RunHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.RunStatus.Load().(RunStatus)
	writeJSON(w, st)
}

// Run executes the full lookup pipeline for one query and returns the
// merged record synchronously. The actors take tens of seconds; clients
// that want progress watch /events instead of polling.
func (h RunHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req runReq
	if err := decodeStrict(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	h.lookup(w, r, req.Query, req.Location, "")
}

// Enrich is Run for a known company name. A supplied website skips the
// search actor outright; otherwise the cached official site is honored so
// repeat enrichments skip it too.
func (h RunHandler) Enrich(w http.ResponseWriter, r *http.Request) {
	var req enrichReq
	if err := decodeStrict(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	h.lookup(w, r, req.Company, req.Location, req.Website)
}

func (h RunHandler) lookup(w http.ResponseWriter, r *http.Request, query, location, site string) {
	query = strings.TrimSpace(query)
	if query == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_query", "query must not be empty")
		return
	}

	st := h.RunStatus.Load().(RunStatus)
	if st.Running {
		WriteError(w, r, http.StatusConflict, "already_running", "a lookup is already running")
		return
	}
	st.Running = true
	st.LastRunAt = time.Now().UTC().Format(time.RFC3339)
	st.LastQuery = query
	st.LastError = ""
	h.RunStatus.Store(st)

	reqID := RequestIDFrom(r.Context())
	res, err := h.Engine.LookupWithSite(r.Context(), reqID, query, location, site)

	now := time.Now().UTC().Format(time.RFC3339)
	next := h.RunStatus.Load().(RunStatus)
	next.Running = false
	next.LastRunAt = now
	if err != nil {
		next.LastError = err.Error()
		h.RunStatus.Store(next)
		if errors.Is(err, prospect.ErrNothingFound) {
			WriteError(w, r, http.StatusNotFound, "nothing_found", err.Error())
			return
		}
		WriteError(w, r, http.StatusBadGateway, "lookup_failed", err.Error())
		return
	}
	next.LastOkAt = now
	next.LastExport = res.Snapshot.Name
	next.LastRecords = res.Snapshot.Count
	h.RunStatus.Store(next)

	writeJSON(w, map[string]any{
		"ok":           true,
		"record":       res.Record,
		"snapshot":     res.Snapshot,
		"download_url": "/download/" + res.Snapshot.Name,
	})
}
