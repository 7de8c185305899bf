package httpapi

import (
	"database/sql"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"leadscout-engine/internal/store"
)

type SnapshotsHandler struct {
	DB        *sql.DB
	ExportDir string
}

func (h SnapshotsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := store.ListSnapshots(r.Context(), h.DB, limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if rows == nil {
		rows = []store.SnapshotRow{}
	}
	writeJSON(w, map[string]any{"ok": true, "snapshots": rows})
}

// Download streams one snapshot file by name, e.g.
// /download/lead_20260824_101500.json. The name must match an indexed
// snapshot; path traversal never reaches the filesystem.
func (h SnapshotsHandler) Download(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/download/")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		WriteError(w, r, http.StatusBadRequest, "invalid_name", "invalid snapshot name")
		return
	}

	row, err := store.GetSnapshot(r.Context(), h.DB, name)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if row == nil {
		WriteError(w, r, http.StatusNotFound, "not_found", "unknown snapshot "+name)
		return
	}

	path := filepath.Join(h.ExportDir, name)
	if _, err := os.Stat(path); err != nil {
		WriteError(w, r, http.StatusNotFound, "not_found", "snapshot file missing on disk")
		return
	}

	if strings.HasSuffix(name, ".csv") {
		w.Header().Set("Content-Type", "text/csv")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	http.ServeFile(w, r, path)
}
