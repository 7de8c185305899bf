package httpapi

type RunStatus struct {
	LastRunAt   string `json:"last_run_at"`
	LastOkAt    string `json:"last_ok_at"`
	LastError   string `json:"last_error"`
	LastQuery   string `json:"last_query"`
	LastExport  string `json:"last_export"`
	LastRecords int    `json:"last_records"`
	Running     bool   `json:"running"`
}
