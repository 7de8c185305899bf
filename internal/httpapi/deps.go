package httpapi

import (
	"database/sql"
	"sync/atomic"

	"leadscout-engine/internal/config"
	"leadscout-engine/internal/events"
	"leadscout-engine/internal/prospect"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	Engine *prospect.Engine

	// Atomic stores
	CfgVal    *atomic.Value // stores config.Config
	RunStatus *atomic.Value // stores httpapi.RunStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Where snapshot files live, for /download
	ExportDir string
}
