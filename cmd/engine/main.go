package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"leadscout-engine/internal/config"
	"leadscout-engine/internal/events"
	"leadscout-engine/internal/export"
	"leadscout-engine/internal/httpapi"
	"leadscout-engine/internal/prospect"
	"leadscout-engine/internal/provider"
	"leadscout-engine/internal/provider/crawler"
	"leadscout-engine/internal/provider/directory"
	"leadscout-engine/internal/provider/mock"
	"leadscout-engine/internal/provider/search"
	"leadscout-engine/internal/secrets"
	"leadscout-engine/internal/store"
)

func main() {
	// .env is optional; real deployments use the keychain or environment.
	_ = godotenv.Load()

	dataDir := os.Getenv("LEADSCOUT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		if err := config.OverlayVocabularies(&cfg, filepath.Join(dataDir, "vocabularies.yml")); err != nil {
			return cfg, fmt.Errorf("vocabularies overlay: %w", err)
		}
		norm, vr := config.NormalizeAndValidate(cfg)
		for _, wmsg := range vr.Warnings {
			log.Printf("level=warn msg=\"config\" warning=%q", wmsg)
		}
		if !vr.OK() {
			return cfg, fmt.Errorf("config invalid: %v", vr.Errors)
		}
		return norm, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)
	currentCfg := func() config.Config { return cfgVal.Load().(config.Config) }

	dbPath := filepath.Join(dataDir, "leadscout.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	hub := events.NewHub()

	exportDir := cfg.App.ExportDir
	if exportDir == "" {
		exportDir = filepath.Join(dataDir, "exports")
	}

	engine := &prospect.Engine{
		DB:       db,
		Exporter: export.NewWriter(exportDir, cfg.Export.Format),
		Hub:      hub,
		Cfg:      currentCfg,
	}
	if err := wireProviders(engine, cfg); err != nil {
		log.Fatal(err)
	}

	var runStatus atomic.Value
	runStatus.Store(httpapi.RunStatus{})

	mux := httpapi.NewMux(httpapi.Deps{
		DB:          db.Pool,
		Hub:         hub,
		Engine:      engine,
		CfgVal:      &cfgVal,
		RunStatus:   &runStatus,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		ExportDir:   exportDir,
	})

	// Shutdown needs the server handle, so it's attached here rather than
	// in the router. The token keeps other local processes from killing us.
	shutdownCh := make(chan struct{})
	shutdownToken := newToken()
	mux.HandleFunc("/shutdown", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		if r.URL.Query().Get("token") != shutdownToken {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		close(shutdownCh)
	})

	port := cfg.App.Port
	if port == 0 {
		port = 38501
	}
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("level=info msg=\"engine listening\" addr=http://%s db=%s shutdown_token=%s", addr, dbPath, shutdownToken)

	srv := &http.Server{
		Handler:           httpapi.Chain(mux, httpapi.Cors, httpapi.RequestID, httpapi.Recover, httpapi.AccessLog),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-shutdownCh:
		}
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	log.Printf("level=info msg=\"engine stopped\"")
}

// wireProviders picks real actors or the deterministic mocks. The three
// actors share one rate-limited platform client family; the token comes
// from the environment or the OS keychain.
func wireProviders(e *prospect.Engine, cfg config.Config) error {
	if cfg.Provider.UseMock {
		e.Search = mock.Search{}
		e.Crawler = mock.Crawler{}
		e.Directory = mock.Directory{}
		log.Printf("level=info msg=\"providers in mock mode\"")
		return nil
	}

	token, err := secrets.GetActorToken()
	if err != nil {
		return err
	}

	limiter := provider.NewHostLimiter(cfg.Provider.RatePerHost, cfg.Provider.RateBurst)
	opts := provider.ClientOptions{
		BaseURL:      cfg.Provider.BaseURL,
		Token:        token,
		PollInterval: time.Duration(cfg.Provider.PollSeconds) * time.Second,
		Retries:      cfg.Provider.Retries,
		Backoff:      time.Duration(cfg.Provider.BackoffSeconds) * time.Second,
		Limiter:      limiter,
	}

	if cfg.Provider.SearchActor != "" {
		e.Search = search.NewActor(
			provider.NewClient("search", opts),
			cfg.Provider.SearchActor,
			time.Duration(cfg.Provider.SearchTimeoutSeconds)*time.Second,
		)
	} else {
		// no search actor configured; scrape the tokenless html endpoint
		e.Search = search.NewDDG()
	}
	e.Crawler = crawler.NewActor(
		provider.NewClient("crawler", opts),
		cfg.Provider.CrawlerActor,
		time.Duration(cfg.Provider.CrawlTimeoutSeconds)*time.Second,
	)
	e.Directory = directory.NewActor(
		provider.NewClient("directory", opts),
		cfg.Provider.MapsActor,
		time.Duration(cfg.Provider.MapsTimeoutSeconds)*time.Second,
	)
	return nil
}

func newToken() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
