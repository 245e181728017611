package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"Barnframe/internal/auth"
	"Barnframe/internal/calc/batch"
	"Barnframe/internal/calc/beam"
	"Barnframe/internal/calc/column"
	"Barnframe/internal/calc/frame"
	"Barnframe/internal/calc/opening"
	"Barnframe/internal/calc/placement"
	"Barnframe/internal/calc/report"
	"Barnframe/internal/calc/roof"
	"Barnframe/internal/calc/sheet"
	"Barnframe/internal/config"
	"Barnframe/internal/library"
	"Barnframe/internal/repo"
)

var wg sync.WaitGroup

func CORS(origin string, mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg *config.Config, users repo.UserRepository, designs repo.DesignRepository) {
	authEnv := &auth.Authenv{JWTkey: []byte(cfg.TokenKey), Repo: users, Insecure: cfg.TLSCert == ""}
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods("GET")

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	openingH := &opening.Handler{}
	columnH := &column.Handler{}
	beamH := &beam.Handler{}
	roofH := &roof.Handler{}
	placementH := &placement.Handler{}
	frameH := &frame.Handler{Settings: cfg.Frame}
	batchH := &batch.Handler{Settings: cfg.Frame}
	reportH := &report.Handler{Settings: cfg.Frame}
	sheetH := &sheet.Handler{Settings: cfg.Frame}

	secureApi.HandleFunc("/tools/frame/openings", openingH.Project).Methods("POST")
	secureApi.HandleFunc("/tools/frame/columns", columnH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/frame/rails", beamH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/frame/roof", roofH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/frame/layout", frameH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/frame/place", placementH.Place).Methods("POST")
	secureApi.HandleFunc("/tools/frame/batch", batchH.Layout).Methods("POST")
	secureApi.HandleFunc("/tools/frame/report/pdf", reportH.Generate).Methods("POST")
	secureApi.HandleFunc("/tools/frame/export/xlsx", sheetH.Export).Methods("POST")
	secureApi.HandleFunc("/tools/frame/import/xlsx", sheetH.Import).Methods("POST")

	libraryH := &library.Handler{Repo: designs}
	libraryH.Register(secureApi)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config", "err", err)
	}
	if cfg.TokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	db, err := repo.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database", "err", err)
	}
	defer db.Close()

	designs := repo.NewPostgresDesignDB(db)
	if err := designs.Migrate(ctx); err != nil {
		log.Fatal("migrate designs", "err", err)
	}

	mux := mux.NewRouter()
	HandleList(mux, cfg, repo.NewPostgresUserDB(db), designs)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           CORS(cfg.AllowOrigin, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("Starting server", "addr", cfg.Addr, "tls", cfg.TLSCert != "")
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLSCert != "" && cfg.TLSKey != "" {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received, closing active connections")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server shutdown failed", "err", err)
	}
	log.Info("Server stopped")

	wg.Wait()
}
