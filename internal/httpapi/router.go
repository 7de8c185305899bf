package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/api/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Lookup runs
	rh := RunHandler{Engine: d.Engine, RunStatus: d.RunStatus}
	mux.HandleFunc("/api/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.Run,
	}))
	mux.HandleFunc("/api/enrich", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.Enrich,
	}))
	mux.HandleFunc("/api/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Status,
	}))

	// Lead discovery
	lh := LeadsHandler{Engine: d.Engine}
	mux.HandleFunc("/api/leads/search", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: lh.Search,
	}))
	mux.HandleFunc("/api/contacts", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: lh.Contacts,
	}))

	// Exports
	sh := SnapshotsHandler{DB: d.DB, ExportDir: d.ExportDir}
	mux.HandleFunc("/api/snapshots", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.List,
	}))
	mux.HandleFunc("/download/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Download,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/api/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/api/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/api/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets (keychain-backed, never echoed back)
	sec := SecretsHandler{}
	mux.HandleFunc("/api/secrets/token", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sec.SetActorToken,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
